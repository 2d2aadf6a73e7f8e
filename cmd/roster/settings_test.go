package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestLoadSettings(t *testing.T) {
	t.Run("defaults without a dotenv file", func(t *testing.T) {
		t.Setenv("ROSTER_DB", "")
		t.Setenv("ROSTER_PAGE_SIZE", "")
		t.Setenv("ROSTER_LOG_LEVEL", "")

		s, err := loadSettings(filepath.Join(t.TempDir(), "missing.env"))
		require.NoError(t, err)
		assert.Equal(t, settings{DBPath: defaultDBPath, LogLevel: zapcore.InfoLevel}, s)
	})

	t.Run("environment wins over the dotenv file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("ROSTER_DB=from-file.json\nROSTER_PAGE_SIZE=25\n"), 0o600))

		t.Setenv("ROSTER_DB", "from-env.json")
		t.Setenv("ROSTER_PAGE_SIZE", "")
		t.Setenv("ROSTER_LOG_LEVEL", "debug")
		os.Unsetenv("ROSTER_PAGE_SIZE")

		s, err := loadSettings(path)
		require.NoError(t, err)
		assert.Equal(t, "from-env.json", s.DBPath)
		assert.Equal(t, 25, s.PageSize)
		assert.Equal(t, zapcore.DebugLevel, s.LogLevel)
	})

	t.Run("it rejects a bad page size", func(t *testing.T) {
		t.Setenv("ROSTER_PAGE_SIZE", "ten")

		_, err := loadSettings("")
		assert.Error(t, err)
	})
}
