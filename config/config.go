package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"ritual-war/model"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load loads the configuration from environment variables and the optional
// game_config.yaml tuning file.
func Load() (*model.Config, error) {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("Info: .env file not found, relying on environment variables")
	}

	token := os.Getenv("BOT_TOKEN")
	if token == "" {
		log.Fatal("Error: BOT_TOKEN environment variable not set")
	}

	appID := os.Getenv("APP_ID")
	if appID == "" {
		log.Fatal("Error: APP_ID environment variable not set")
	}

	logChannelID := os.Getenv("LOG_CHANNEL_ID")
	if logChannelID == "" {
		log.Println("Warning: LOG_CHANNEL_ID not set, log channel reporting will be disabled")
	}

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}

	var ownerIDs []string
	for _, id := range strings.Split(os.Getenv("OWNER_USER_IDS"), ",") {
		if id = strings.TrimSpace(id); id != "" {
			ownerIDs = append(ownerIDs, id)
		}
	}
	if len(ownerIDs) == 0 {
		log.Println("Warning: OWNER_USER_IDS not set, owner commands will be rejected for everyone")
	}

	game, err := loadGameConfig(dataDir)
	if err != nil {
		return nil, err
	}

	return &model.Config{
		BotToken:     token,
		AppID:        appID,
		LogChannelID: logChannelID,
		OwnerUserIDs: ownerIDs,
		DataDir:      dataDir,
		Game:         game,
	}, nil
}

func loadGameConfig(dataDir string) (model.GameConfig, error) {
	v := viper.New()
	v.SetDefault("threshold", 12)
	v.SetDefault("shield_cleanse", 2)
	v.SetDefault("signature_ttl_hours", 24)
	v.SetDefault("veil_reduction", 0.5)
	v.SetDefault("hex_min", 2)
	v.SetDefault("hex_max", 4)
	v.SetDefault("mend_min", 2)
	v.SetDefault("mend_max", 4)
	v.SetDefault("timezone", "America/Los_Angeles")

	v.SetConfigFile(filepath.Join(dataDir, "game_config.yaml"))
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); !ok {
			return model.GameConfig{}, fmt.Errorf("failed to read game config: %w", err)
		}
		log.Println("Info: no game_config.yaml found, using default game rules")
	}

	var game model.GameConfig
	if err := v.Unmarshal(&game); err != nil {
		return model.GameConfig{}, fmt.Errorf("failed to unmarshal game config: %w", err)
	}

	if game.Threshold <= 0 || game.HexMin <= 0 || game.HexMax < game.HexMin ||
		game.MendMin <= 0 || game.MendMax < game.MendMin {
		return model.GameConfig{}, fmt.Errorf("invalid game config: threshold=%d hex=[%d,%d] mend=[%d,%d]",
			game.Threshold, game.HexMin, game.HexMax, game.MendMin, game.MendMax)
	}

	return game, nil
}
