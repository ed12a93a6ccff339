package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"raidbot/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	filename := filepath.Join(t.TempDir(), "raidbot.yml")
	require.NoError(t, os.WriteFile(filename, []byte(content), 0o644))
	return filename
}

func TestLoad(t *testing.T) {
	t.Setenv("DISCORD_BOT_TOKEN", "token")
	filename := writeConfig(t, `
prefix: "!raid"
summary_timeout: 30m
roster:
  - name: Alex Thunder
    role: Tank - Shield Bearer
    emoji: "🛡️"
  - name: Sarah Lightbringer
    role: Healer - Divine Support
    emoji: "✨"
`)

	cfg, err := config.Load(filename)
	require.NoError(t, err)

	assert.Equal(t, "token", cfg.Token)
	assert.Equal(t, "!raid", cfg.Prefix)
	assert.Equal(t, 30*time.Minute, cfg.SummaryTimeout)
	require.Len(t, cfg.Roster, 2)
	assert.Equal(t, "Alex Thunder", cfg.Roster[0].Name)
	assert.Equal(t, "Tank - Shield Bearer", cfg.Roster[0].Role)
	assert.Equal(t, []string{"🛡️", "✨"}, cfg.Emojis())
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DISCORD_BOT_TOKEN", "token")
	filename := writeConfig(t, "roster: []\n")

	cfg, err := config.Load(filename)
	require.NoError(t, err)

	assert.Equal(t, "!raid", cfg.Prefix)
	assert.Equal(t, 5*time.Second, cfg.MainCycle)
	assert.Equal(t, time.Hour, cfg.SummaryTimeout)
	assert.Equal(t, 1, cfg.ReactionRequests)
	assert.Equal(t, 500*time.Millisecond, cfg.ReactionWindow)
	assert.Empty(t, cfg.Emojis())
}

func TestLoadRejectsDuplicateMembers(t *testing.T) {
	t.Setenv("DISCORD_BOT_TOKEN", "token")
	filename := writeConfig(t, `
roster:
  - name: Alex Thunder
    role: Tank
  - name: Alex Thunder
    role: Healer
`)

	_, err := config.Load(filename)
	assert.ErrorContains(t, err, "duplicate roster member")
}

func TestLoadRequiresToken(t *testing.T) {
	t.Setenv("DISCORD_BOT_TOKEN", "")
	filename := writeConfig(t, "roster: []\n")

	_, err := config.Load(filename)
	assert.ErrorContains(t, err, "DISCORD_BOT_TOKEN")
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("DISCORD_BOT_TOKEN", "token")

	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}
