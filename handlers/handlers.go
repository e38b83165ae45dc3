package handlers

import (
	"log"
	"ritual-war/bot"
	"ritual-war/utils"

	"github.com/bwmarrin/discordgo"
)

func Register(b *bot.Bot) {
	b.CommandHandlers = commandHandlers(b)
	addHandlers(b)
}

func commandHandlers(b *bot.Bot) map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate) {
	return map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate){
		"join": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleJoin(s, i, b)
		},
		"leave": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleLeave(s, i, b)
		},
		"hex": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleCast(s, i, b, "hex")
		},
		"shield": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleCast(s, i, b, "shield")
		},
		"mend": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleCast(s, i, b, "mend")
		},
		"inspect": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleInspect(s, i, b)
		},
		"leaderboard": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleLeaderboard(s, i, b)
		},
		"claimhex": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleClaim(s, i, b, "hex")
		},
		"claimmend": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleClaim(s, i, b, "mend")
		},
		"unclaim": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleUnclaim(s, i, b)
		},
		"admin_setchannel": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			if !requirePermission(s, i, b, utils.AdminPermission) {
				return
			}
			HandleSetChannel(s, i, b)
		},
		"admin_reset_game": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			if !requirePermission(s, i, b, utils.OwnerPermission) {
				return
			}
			HandleResetGame(s, i, b)
		},
		"admin_force_winner": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			if !requirePermission(s, i, b, utils.OwnerPermission) {
				return
			}
			HandleForceWinner(s, i, b)
		},
		"admin_advance_day": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			if !requirePermission(s, i, b, utils.OwnerPermission) {
				return
			}
			HandleAdvanceDay(s, i, b)
		},
		"status": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			if !requirePermission(s, i, b, utils.OwnerPermission) {
				return
			}
			HandleStatus(s, i, b)
		},
	}
}

// requirePermission gates a command on the invoker's permission level.
// Refusals are security-relevant and logged.
func requirePermission(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot, required string) bool {
	level := utils.CheckPermission(i.Member, b.Config.OwnerUserIDs)
	allowed := level == utils.OwnerPermission || (required == utils.AdminPermission && level == utils.AdminPermission)
	if !allowed {
		userID := ""
		if i.Member != nil && i.Member.User != nil {
			userID = i.Member.User.ID
		}
		log.Printf("Security: user %s denied %s in guild %s", userID, i.ApplicationCommandData().Name, i.GuildID)
		utils.SendErrorResponse(s, i, "You do not have permission to use this command.")
		return false
	}
	return true
}

func addHandlers(b *bot.Bot) {
	b.Session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		log.Printf("Logged in as: %v#%v", r.User.Username, r.User.Discriminator)
	})
	b.Session.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		if i.Type != discordgo.InteractionApplicationCommand {
			return
		}
		if i.GuildID == "" {
			utils.SendErrorResponse(s, i, "The ritual war can only be played inside a server.")
			return
		}
		if h, ok := b.CommandHandlers[i.ApplicationCommandData().Name]; ok {
			h(s, i)
		}
	})
}

// optionMap indexes an interaction's options by name.
func optionMap(i *discordgo.InteractionCreate) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	options := i.ApplicationCommandData().Options
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(options))
	for _, opt := range options {
		m[opt.Name] = opt
	}
	return m
}

// targetID extracts the "target" user option, or empty when absent.
func targetID(i *discordgo.InteractionCreate) string {
	if opt, ok := optionMap(i)["target"]; ok {
		if user := opt.UserValue(nil); user != nil {
			return user.ID
		}
	}
	return ""
}
