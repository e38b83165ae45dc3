package bot

import (
	"log"
	"ritual-war/game"
	"ritual-war/model"
	"ritual-war/utils"

	"github.com/bwmarrin/discordgo"
	"github.com/jmoiron/sqlx"
)

type Bot struct {
	Session            *discordgo.Session
	Config             *model.Config
	DB                 *sqlx.DB
	Engine             *game.Engine
	Notifier           *utils.Notifier
	CommandHandlers    map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate)
	RegisteredCommands []*discordgo.ApplicationCommand
	scheduler          *Scheduler
}

func New(cfg *model.Config, db *sqlx.DB, engine *game.Engine) (*Bot, error) {
	dg, err := discordgo.New("Bot " + cfg.BotToken)
	if err != nil {
		return nil, err
	}
	dg.Identify.Intents = discordgo.IntentsGuilds
	dg.StateEnabled = false

	b := &Bot{
		Session:  dg,
		Config:   cfg,
		DB:       db,
		Engine:   engine,
		Notifier: utils.NewNotifier(dg),
	}
	b.scheduler = NewScheduler(engine, b.Notifier)
	return b, nil
}

func (b *Bot) Close() {
	log.Println("Gracefully shutting down.")
	b.scheduler.Stop()
	b.Session.Close()
}
