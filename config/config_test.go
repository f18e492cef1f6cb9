package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("Should apply defaults without a config file", func(t *testing.T) {
		t.Chdir(t.TempDir())

		cfg, err := Load(viper.New(), "")
		require.NoError(t, err)

		assert.Equal(t, "0.0.0.0", cfg.Server.Host)
		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
		assert.Equal(t, 15*time.Second, cfg.Server.WriteTimeout)
		assert.Equal(t, 60*time.Second, cfg.Server.IdleTimeout)
		assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
		assert.Equal(t, int64(10<<20), cfg.Server.MaxBodyBytes)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.False(t, cfg.Log.JSON)
		assert.Equal(t, 30*time.Second, cfg.Fetch.Timeout)
		assert.Equal(t, "http://localhost:11434/api/embeddings", cfg.Embeddings.URL)
		assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
	})

	t.Run("Should read a YAML config file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "chunkpipe.yaml")
		body := "server:\n  port: 9090\n  read_timeout: 5s\nlog:\n  level: debug\n  json: true\noutput:\n  dir: out\n"
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

		cfg, err := Load(viper.New(), path)
		require.NoError(t, err)

		assert.Equal(t, 9090, cfg.Server.Port)
		assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
		assert.Equal(t, "debug", cfg.Log.Level)
		assert.True(t, cfg.Log.JSON)
		assert.Equal(t, "out", cfg.Output.Dir)
	})

	t.Run("Should let environment variables override the file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "chunkpipe.yaml")
		require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 9090\n"), 0o644))
		t.Setenv("CHUNKPIPE_SERVER_PORT", "7070")
		t.Setenv("CHUNKPIPE_EMBEDDINGS_MODEL", "nomic-embed-text")

		cfg, err := Load(viper.New(), path)
		require.NoError(t, err)

		assert.Equal(t, 7070, cfg.Server.Port)
		assert.Equal(t, "nomic-embed-text", cfg.Embeddings.Model)
	})

	t.Run("Should fail for a named file that does not exist", func(t *testing.T) {
		_, err := Load(viper.New(), filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})

	t.Run("Should reject invalid values", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("CHUNKPIPE_SERVER_PORT", "70000")

		_, err := Load(viper.New(), "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid configuration")
	})

	t.Run("Should reject an unknown log level", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("CHUNKPIPE_LOG_LEVEL", "loud")

		_, err := Load(viper.New(), "")
		assert.Error(t, err)
	})
}

func TestLoadEnvFile(t *testing.T) {
	t.Run("Should ignore an empty path and a missing file", func(t *testing.T) {
		assert.NoError(t, LoadEnvFile(""))
		assert.NoError(t, LoadEnvFile(filepath.Join(t.TempDir(), ".env")))
	})

	t.Run("Should export variables without overriding existing ones", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("CHUNKPIPE_TEST_A=from-file\nCHUNKPIPE_TEST_B=from-file\n"), 0o644))
		t.Setenv("CHUNKPIPE_TEST_A", "preset")
		t.Setenv("CHUNKPIPE_TEST_B", "")
		require.NoError(t, os.Unsetenv("CHUNKPIPE_TEST_B"))

		require.NoError(t, LoadEnvFile(path))

		assert.Equal(t, "preset", os.Getenv("CHUNKPIPE_TEST_A"))
		assert.Equal(t, "from-file", os.Getenv("CHUNKPIPE_TEST_B"))
	})
}
