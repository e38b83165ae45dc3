package main

import (
	"log"
	"os"
	"path/filepath"
	"ritual-war/bot"
	"ritual-war/config"
	"ritual-war/game"
	"ritual-war/handlers"
	"ritual-war/utils/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	if err := os.MkdirAll(cfg.DataDir, os.ModePerm); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}
	db, err := database.Init(filepath.Join(cfg.DataDir, "ritual_war.db"))
	if err != nil {
		log.Fatalf("Error initializing database: %v", err)
	}

	engine, err := game.NewEngine(db, cfg.Game)
	if err != nil {
		log.Fatalf("Error creating resolution engine: %v", err)
	}

	b, err := bot.New(cfg, db, engine)
	if err != nil {
		log.Fatalf("Error creating bot: %v", err)
	}

	handlers.Register(b)

	b.Run()

	defer b.Close()
}
