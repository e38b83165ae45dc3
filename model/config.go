package model

import "time"

// Config holds process-level settings loaded from the environment.
type Config struct {
	BotToken     string
	AppID        string
	LogChannelID string
	OwnerUserIDs []string
	DataDir      string
	Game         GameConfig
}

// GameConfig holds the tunable rules of the ritual war. Defaults live in
// config.Load; a data/game_config.yaml file can override any of them.
type GameConfig struct {
	Threshold         int     `mapstructure:"threshold"`
	ShieldCleanse     int     `mapstructure:"shield_cleanse"`
	SignatureTTLHours int     `mapstructure:"signature_ttl_hours"`
	VeilReduction     float64 `mapstructure:"veil_reduction"`
	HexMin            int     `mapstructure:"hex_min"`
	HexMax            int     `mapstructure:"hex_max"`
	MendMin           int     `mapstructure:"mend_min"`
	MendMax           int     `mapstructure:"mend_max"`
	Timezone          string  `mapstructure:"timezone"`
}

func (g GameConfig) SignatureTTL() time.Duration {
	return time.Duration(g.SignatureTTLHours) * time.Hour
}
