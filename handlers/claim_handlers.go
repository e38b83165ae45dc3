package handlers

import (
	"fmt"
	"ritual-war/bot"
	"ritual-war/utils"
	"time"

	"github.com/bwmarrin/discordgo"
)

func HandleClaim(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot, claimType string) {
	authorID := i.Member.User.ID
	target := targetID(i)
	if err := b.Engine.ClaimTrain(i.GuildID, authorID, target, claimType, time.Now()); err != nil {
		respondGameError(s, i, err, "claim"+claimType)
		return
	}
	action := "hexed"
	if claimType == "mend" {
		action = "mended"
	}
	utils.SendEphemeralResponse(s, i, fmt.Sprintf("You have publicly claimed to have %s <@%s>.", action, target))
	announce(b, i, fmt.Sprintf("<@%s> claims to have %s <@%s>.", authorID, action, target))
}

func HandleUnclaim(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	authorID := i.Member.User.ID
	target := targetID(i)
	claimType := ""
	if opt, ok := optionMap(i)["spell"]; ok {
		claimType = opt.StringValue()
	}
	if err := b.Engine.UnclaimTrain(i.GuildID, authorID, target, claimType); err != nil {
		respondGameError(s, i, err, "unclaim")
		return
	}
	utils.SendEphemeralResponse(s, i, fmt.Sprintf("You have withdrawn your %s claim on <@%s>.", claimType, target))
}
