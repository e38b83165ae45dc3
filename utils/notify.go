package utils

import (
	"log"

	"github.com/bwmarrin/discordgo"
)

// Notifier is the fire-and-forget delivery sink for game announcements and
// reminders. Delivery failures are logged and swallowed: they must never
// affect game state or block other guilds.
type Notifier struct {
	session *discordgo.Session
}

func NewNotifier(session *discordgo.Session) *Notifier {
	return &Notifier{session: session}
}

// Announce posts a public message to the given channel. When channelID is
// empty the message is dropped (the guild has not configured a channel yet).
func (n *Notifier) Announce(channelID, content string) {
	if channelID == "" {
		return
	}
	if _, err := n.session.ChannelMessageSend(channelID, content); err != nil {
		log.Printf("Error delivering announcement to channel %s: %v", channelID, err)
	}
}

// DirectMessage sends a DM to a user. Users with DMs disabled are logged and
// skipped.
func (n *Notifier) DirectMessage(userID, content string) {
	channel, err := n.session.UserChannelCreate(userID)
	if err != nil {
		log.Printf("Error opening DM channel for user %s: %v", userID, err)
		return
	}
	if _, err := n.session.ChannelMessageSend(channel.ID, content); err != nil {
		log.Printf("Error delivering DM to user %s: %v", userID, err)
	}
}
