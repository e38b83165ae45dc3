package commands

import (
	"github.com/bwmarrin/discordgo"
)

// GenerateCommands returns the full slash command set of the ritual war.
func GenerateCommands() []*discordgo.ApplicationCommand {
	targetOption := func(required bool, description string) *discordgo.ApplicationCommandOption {
		return &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "target",
			Description: description,
			Required:    required,
		}
	}

	return []*discordgo.ApplicationCommand{
		{
			Name:        "join",
			Description: "Join the ritual war.",
		},
		{
			Name:        "leave",
			Description: "Leave the ritual war.",
		},
		{
			Name:        "hex",
			Description: "Cast a Hex on another mage, raising their Doom.",
			Options: []*discordgo.ApplicationCommandOption{
				targetOption(true, "The mage to hex."),
			},
		},
		{
			Name:        "shield",
			Description: "Cast Shield on yourself: cleanse Doom and raise a Veil.",
		},
		{
			Name:        "mend",
			Description: "Cast a Mend on another mage, lowering their Doom.",
			Options: []*discordgo.ApplicationCommandOption{
				targetOption(true, "The mage to mend."),
			},
		},
		{
			Name:        "inspect",
			Description: "Inspect a mage's Doom, veil and active trains.",
			Options: []*discordgo.ApplicationCommandOption{
				targetOption(false, "The mage to inspect (defaults to yourself)."),
			},
		},
		{
			Name:        "leaderboard",
			Description: "Show all mages sorted by Doom.",
		},
		{
			Name:        "claimhex",
			Description: "Publicly claim you contributed to the hex train on a target.",
			Options: []*discordgo.ApplicationCommandOption{
				targetOption(true, "The target of the claimed hex."),
			},
		},
		{
			Name:        "claimmend",
			Description: "Publicly claim you contributed to the mend train on a target.",
			Options: []*discordgo.ApplicationCommandOption{
				targetOption(true, "The target of the claimed mend."),
			},
		},
		{
			Name:        "unclaim",
			Description: "Withdraw one of your public claims.",
			Options: []*discordgo.ApplicationCommandOption{
				targetOption(true, "The target of the claim to withdraw."),
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "spell",
					Description: "Which claim to withdraw.",
					Required:    true,
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "hex", Value: "hex"},
						{Name: "mend", Value: "mend"},
					},
				},
			},
		},
		{
			Name:        "admin_setchannel",
			Description: "[ADMIN] Set the public announcement channel.",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionChannel,
					Name:        "channel",
					Description: "Channel for public game messages.",
					Required:    true,
				},
			},
		},
		{
			Name:        "admin_reset_game",
			Description: "[OWNER] Reset the entire game state for this guild.",
		},
		{
			Name:        "admin_force_winner",
			Description: "[OWNER] Conclude the game with a chosen winner.",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "player",
					Description: "The winner.",
					Required:    true,
				},
			},
		},
		{
			Name:        "admin_advance_day",
			Description: "[OWNER] Advance the game-day counter immediately.",
		},
		{
			Name:        "status",
			Description: "[OWNER] Show bot host and game statistics.",
		},
	}
}
