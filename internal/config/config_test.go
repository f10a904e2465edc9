package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("Reads the file and fills defaults", func(t *testing.T) {
		// Given: a config file that only sets a few keys
		path := filepath.Join(t.TempDir(), "config.yml")
		content := "log-level: debug\nredis:\n  host: cache\ngame:\n  tier: heuristic\n  ai-delay: 250ms\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		// When: loading it
		conf, err := Load(path)

		// Then: file values win and the rest come from defaults
		require.NoError(t, err)
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, "9090", conf.HTTPPort)
		assert.Equal(t, "7777", conf.SocketPort)
		assert.Equal(t, "cache:6379", conf.Redis.GetRedisAddr())
		assert.Equal(t, time.Hour, conf.Redis.RoundTTL)
		assert.Equal(t, Game{Tier: "heuristic", HumanMark: "X", AIDelay: 250 * time.Millisecond}, conf.Game)
	})

	t.Run("Environment overrides the file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(path, []byte("game:\n  tier: random\n"), 0o600))
		t.Setenv("GAME_TIER", "minimax")
		t.Setenv("GAME_SEED", "42")

		conf, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, "minimax", conf.Game.Tier)
		assert.Equal(t, int64(42), conf.Game.Seed)
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yml"))

		require.Error(t, err)
		assert.Panics(t, func() { MustLoad(filepath.Join(t.TempDir(), "absent.yml")) })
	})
}

func TestRedis_GetRedisAddr(t *testing.T) {
	assert.Equal(t, "localhost:6379", (&Redis{Host: "localhost", Port: "6379"}).GetRedisAddr())
	assert.Empty(t, (&Redis{Port: "6379"}).GetRedisAddr())
}

func TestLoadDotEnv(t *testing.T) {
	// Given: one existing .env file and one missing
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("TICTACTOE_DOTENV_CHECK=loaded\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("TICTACTOE_DOTENV_CHECK") })

	// When: loading both
	err := LoadDotEnv(filepath.Join(dir, "missing.env"), path)

	// Then: the missing file is skipped and the other is exported
	require.NoError(t, err)
	assert.Equal(t, "loaded", os.Getenv("TICTACTOE_DOTENV_CHECK"))
}
