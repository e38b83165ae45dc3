package handlers

import (
	"fmt"
	"ritual-war/bot"
	"ritual-war/utils"
	"time"

	"github.com/bwmarrin/discordgo"
)

func HandleSetChannel(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	opt, ok := optionMap(i)["channel"]
	if !ok {
		utils.SendErrorResponse(s, i, "A channel is required.")
		return
	}
	channel := opt.ChannelValue(nil)
	if err := b.Engine.SetChannel(i.GuildID, channel.ID, time.Now()); err != nil {
		respondGameError(s, i, err, "admin_setchannel")
		return
	}
	utils.SendEphemeralResponse(s, i, fmt.Sprintf("Public game messages will now go to <#%s>.", channel.ID))
}

func HandleResetGame(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	if err := b.Engine.ResetGame(i.GuildID, time.Now()); err != nil {
		respondGameError(s, i, err, "admin_reset_game")
		return
	}
	utils.SendPublicResponse(s, i, "🔄 The Ritual War has been reset. Use /join to start a new game!")
}

func HandleForceWinner(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	opt, ok := optionMap(i)["player"]
	if !ok {
		utils.SendErrorResponse(s, i, "A player is required.")
		return
	}
	winner := opt.UserValue(nil)
	if err := b.Engine.ForceWinner(i.GuildID, winner.ID, time.Now()); err != nil {
		respondGameError(s, i, err, "admin_force_winner")
		return
	}
	utils.SendEphemeralResponse(s, i, fmt.Sprintf("Forced victory for <@%s>.", winner.ID))
	announce(b, i, fmt.Sprintf("🎉 **RITUAL WAR COMPLETE!** 🎉\n<@%s> is declared the winner!", winner.ID))
}

func HandleAdvanceDay(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	day, err := b.Engine.AdvanceDay(i.GuildID, time.Now())
	if err != nil {
		respondGameError(s, i, err, "admin_advance_day")
		return
	}
	utils.SendEphemeralResponse(s, i, fmt.Sprintf("📅 Advanced to game-day %d. Everyone can act again.", day))
}
