package handlers

import (
	"fmt"
	"log"
	"ritual-war/bot"
	"ritual-war/game"
	"ritual-war/model"
	"ritual-war/utils"
	"ritual-war/utils/database"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
)

func HandleJoin(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	userID := i.Member.User.ID
	if err := b.Engine.Join(i.GuildID, userID, time.Now()); err != nil {
		respondGameError(s, i, err, "join")
		return
	}
	utils.SendEphemeralResponse(s, i, "You have joined the Ritual War! Use /leaderboard to see the current state.")
	announce(b, i, fmt.Sprintf("<@%s> has joined the Ritual War!", userID))
}

func HandleLeave(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	userID := i.Member.User.ID
	if err := b.Engine.Leave(i.GuildID, userID, time.Now()); err != nil {
		respondGameError(s, i, err, "leave")
		return
	}
	utils.SendEphemeralResponse(s, i, "You have left the Ritual War.")
	announce(b, i, fmt.Sprintf("<@%s> has left the Ritual War!", userID))
}

func HandleCast(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot, spell string) {
	casterID := i.Member.User.ID
	outcome, err := b.Engine.CastSpell(i.GuildID, casterID, spell, targetID(i), time.Now())
	if err != nil {
		respondGameError(s, i, err, spell)
		return
	}
	utils.SendEphemeralResponse(s, i, casterMessage(outcome, b.Engine.Config().Threshold))
	announce(b, i, publicMessage(outcome, b.Engine.Config().Threshold))
}

func HandleInspect(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	target := targetID(i)
	if target == "" {
		target = i.Member.User.ID
	}
	status, err := b.Engine.Inspect(i.GuildID, target, time.Now())
	if err != nil {
		respondGameError(s, i, err, "inspect")
		return
	}

	var sb strings.Builder
	threshold := b.Engine.Config().Threshold
	fmt.Fprintf(&sb, "<@%s> — Doom %d/%d", status.UserID, status.Doom, threshold)
	if !status.Alive {
		sb.WriteString(" (eliminated)")
	}
	if status.VeilHoursLeft > 0 {
		fmt.Fprintf(&sb, " — Veil active for %.1f more hours", status.VeilHoursLeft)
	}
	fmt.Fprintf(&sb, "\n%s. %s.", trainText("Hex", status.HexTrain), trainText("Mend", status.MendTrain))
	utils.SendEphemeralResponse(s, i, sb.String())
}

func HandleLeaderboard(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	players, err := b.Engine.Leaderboard(i.GuildID)
	if err != nil {
		respondGameError(s, i, err, "leaderboard")
		return
	}
	if len(players) == 0 {
		utils.SendEphemeralResponse(s, i, "Nobody has joined the Ritual War yet. Use /join to start.")
		return
	}

	var sb strings.Builder
	sb.WriteString("**Ritual War standings**\n")
	threshold := b.Engine.Config().Threshold
	for rank, player := range players {
		mark := ""
		if player.Active == 0 {
			mark = " 💀"
		}
		fmt.Fprintf(&sb, "%d. <@%s> — %d/%d Doom%s\n", rank+1, player.UserID, player.Doom, threshold, mark)
	}
	utils.SendPublicResponse(s, i, sb.String())
}

// respondGameError turns a validation error into an ephemeral rejection.
// Storage errors get a generic message; the operation already rolled back, so
// retrying is safe.
func respondGameError(s *discordgo.Session, i *discordgo.InteractionCreate, err error, action string) {
	if game.IsValidation(err) {
		utils.SendErrorResponse(s, i, capitalize(err.Error())+".")
		return
	}
	log.Printf("Error handling %s in guild %s: %v", action, i.GuildID, err)
	utils.SendErrorResponse(s, i, "Something went wrong. Please try again.")
}

// announce delivers a public game message to the guild's configured channel,
// falling back to the channel the command was used in.
func announce(b *bot.Bot, i *discordgo.InteractionCreate, content string) {
	channelID := i.ChannelID
	state, err := database.GetGameState(b.DB, i.GuildID)
	if err != nil {
		log.Printf("Error loading game state for announcement in guild %s: %v", i.GuildID, err)
	} else if state != nil && state.ChannelID != "" {
		channelID = state.ChannelID
	}
	b.Notifier.Announce(channelID, content)
}

func casterMessage(o *model.Outcome, threshold int) string {
	switch o.Spell {
	case model.SpellShield:
		return fmt.Sprintf("Shield cleanses %d Doom and grants you Veil. You are now at %d/%d Doom.", -o.DoomDelta, o.NewDoom, threshold)
	case model.SpellMend:
		return fmt.Sprintf("Your Mend heals %d Doom from <@%s>. They are now at %d/%d Doom.", -o.DoomDelta, o.TargetID, o.NewDoom, threshold)
	default:
		msg := fmt.Sprintf("Your Hex deals %d damage to <@%s>. They are now at %d/%d Doom.", o.DoomDelta, o.TargetID, o.NewDoom, threshold)
		if o.VeilApplied {
			msg += " (Veil reduced the damage.)"
		}
		if o.ReflexShield {
			msg += " Your target triggered a Reflex Shield before your Hex resolved!"
		}
		if o.Eliminated {
			msg += fmt.Sprintf(" <@%s> has been eliminated!", o.TargetID)
		}
		return msg
	}
}

func publicMessage(o *model.Outcome, threshold int) string {
	var msg string
	switch o.Spell {
	case model.SpellShield:
		msg = fmt.Sprintf("<@%s> casts Shield and is now at %d/%d Doom.", o.CasterID, o.NewDoom, threshold)
	case model.SpellMend:
		msg = fmt.Sprintf("A Mend heals <@%s> for %d Doom. <@%s> is now %d/%d. %s. %s.",
			o.TargetID, -o.DoomDelta, o.TargetID, o.NewDoom, threshold,
			trainText("Hex", o.HexTrain), trainText("Mend", o.MendTrain))
	default:
		msg = fmt.Sprintf("A Hex strikes <@%s> for %d Doom. <@%s> is now %d/%d. %s. %s.",
			o.TargetID, o.DoomDelta, o.TargetID, o.NewDoom, threshold,
			trainText("Hex", o.HexTrain), trainText("Mend", o.MendTrain))
		if o.Eliminated {
			msg += fmt.Sprintf(" <@%s> has been eliminated from the Ritual War!", o.TargetID)
		}
	}
	if o.Concluded {
		if o.WinnerID != "" {
			msg += fmt.Sprintf("\n\n🎉 **RITUAL WAR COMPLETE!** 🎉\n<@%s> is the last Mage standing and wins the game!", o.WinnerID)
		} else {
			msg += "\n\n**RITUAL WAR COMPLETE!** No mage survived: the war ends in a draw."
		}
	}
	return msg
}

func trainText(name string, train model.TrainStatus) string {
	plural := "s"
	if train.Count == 1 {
		plural = ""
	}
	text := fmt.Sprintf("%d %s Mark%s", train.Count, name, plural)
	if train.Count > 0 {
		text += fmt.Sprintf(" (%s)", train.Freshness)
	}
	return text
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
