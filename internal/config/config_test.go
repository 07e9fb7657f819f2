package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/constants"
	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/engine"
)

func TestParse_OverridesDefaults(t *testing.T) {
	doc := []byte(`
server:
  address: ":9090"
database:
  path: /tmp/nw.db
logging:
  level: debug
  pretty: true
inactivity_timeout: 5m
solo:
  ai_delay: 250ms
remote:
  relay_url: " ws://relay.local:8080 "
rules:
  max_rounds: 12
  tie_break: draw
  fertilizer_cooldown: 2
`)
	cfg, err := Parse(doc, "inline")
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.ServerAddress)
	require.Equal(t, "/tmp/nw.db", cfg.DatabasePath)
	require.Equal(t, "debug", cfg.LogLevel)
	require.True(t, cfg.LogPretty)
	require.Equal(t, 5*time.Minute, cfg.InactivityTimeout)
	require.Equal(t, 250*time.Millisecond, cfg.AIDelay)
	require.Equal(t, "ws://relay.local:8080", cfg.RelayURL)
	require.Equal(t, 12, cfg.Rules.MaxRounds)
	require.Equal(t, engine.TieBreakDraw, cfg.Rules.TieBreak)
	require.Equal(t, 2, cfg.Rules.FertilizerCooldown)
	// untouched rules keep their defaults
	require.Equal(t, 3, cfg.Rules.GardenHoseCooldown)
	require.Equal(t, 5, cfg.Rules.RelocationCooldown)
}

func TestParse_EmptyDocumentUsesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(""), "empty")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestParse_RejectsBadValues(t *testing.T) {
	for _, doc := range []string{
		"inactivity_timeout: soon",
		"solo:\n  ai_delay: -1s",
		"rules:\n  tie_break: coin",
		"rules:\n  max_rounds: 0",
		"server: [",
	} {
		_, err := Parse([]byte(doc), "bad")
		require.Error(t, err, doc)
	}
}

func TestFromEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nw.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  address: \":7000\"\n"), 0o600))

	t.Setenv(constants.EnvConfigPath, path)
	t.Setenv(constants.EnvDBPath, "override.db")
	t.Setenv(constants.EnvAddr, "")
	cfg, err := FromEnv()
	require.NoError(t, err)
	require.Equal(t, ":7000", cfg.ServerAddress)
	require.Equal(t, "override.db", cfg.DatabasePath)

	t.Setenv(constants.EnvConfigPath, filepath.Join(dir, "missing.yaml"))
	_, err = FromEnv()
	require.Error(t, err)
}
