package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGameConfigDefaults(t *testing.T) {
	game, err := loadGameConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 12, game.Threshold)
	assert.Equal(t, 2, game.ShieldCleanse)
	assert.Equal(t, 24, game.SignatureTTLHours)
	assert.Equal(t, 0.5, game.VeilReduction)
	assert.Equal(t, 2, game.HexMin)
	assert.Equal(t, 4, game.HexMax)
	assert.Equal(t, "America/Los_Angeles", game.Timezone)
	assert.Equal(t, 24*time.Hour, game.SignatureTTL())
}

func TestGameConfigFileOverrides(t *testing.T) {
	dir := t.TempDir()
	yaml := "threshold: 20\nhex_min: 1\nhex_max: 6\ntimezone: Europe/Berlin\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "game_config.yaml"), []byte(yaml), 0o644))

	game, err := loadGameConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, 20, game.Threshold)
	assert.Equal(t, 1, game.HexMin)
	assert.Equal(t, 6, game.HexMax)
	assert.Equal(t, "Europe/Berlin", game.Timezone)
	// Untouched keys keep their defaults.
	assert.Equal(t, 2, game.ShieldCleanse)
}

func TestGameConfigRejectsBadRanges(t *testing.T) {
	dir := t.TempDir()
	yaml := "hex_min: 5\nhex_max: 2\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "game_config.yaml"), []byte(yaml), 0o644))

	_, err := loadGameConfig(dir)
	assert.Error(t, err)
}
