package main

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"go.uber.org/zap/zapcore"
)

const defaultDBPath = "roster.json"

type settings struct {
	DBPath   string
	PageSize int
	LogLevel zapcore.Level
}

// loadSettings reads ROSTER_* variables. Values from path only fill
// variables the environment does not already set, and a missing file is
// not an error.
func loadSettings(path string) (settings, error) {
	if path != "" {
		if err := godotenv.Load(path); err != nil && !os.IsNotExist(errors.Cause(err)) {
			return settings{}, errors.Wrapf(err, "could not load %s", path)
		}
	}

	s := settings{DBPath: defaultDBPath, LogLevel: zapcore.InfoLevel}

	if v := os.Getenv("ROSTER_DB"); v != "" {
		s.DBPath = v
	}

	if v := os.Getenv("ROSTER_PAGE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return settings{}, errors.Wrapf(err, "ROSTER_PAGE_SIZE %q", v)
		}
		s.PageSize = n
	}

	if v := os.Getenv("ROSTER_LOG_LEVEL"); v != "" {
		lvl, err := zapcore.ParseLevel(v)
		if err != nil {
			return settings{}, errors.Wrapf(err, "ROSTER_LOG_LEVEL %q", v)
		}
		s.LogLevel = lvl
	}

	return s, nil
}
