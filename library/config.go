package library

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Environment keys read by LoadConfig.
const (
	EnvStore    = "LIBRARY_STORE"
	EnvLogLevel = "LIBRARY_LOG_LEVEL"
	EnvQuiet    = "LIBRARY_QUIET"
	EnvSeed     = "LIBRARY_SEED"
)

// Config holds the runtime settings of the catalog console.
type Config struct {
	Store    string
	LogLevel string
	Quiet    bool
	Seed     string // optional CSV of books loaded before the menu starts
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Store:    StoreMemory,
		LogLevel: "warn",
	}
}

// LoadConfig reads envFile (if it exists) into the environment and then
// overlays the LIBRARY_* variables onto the defaults. The result is not
// validated so that command-line flags can still override it.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	cfg := DefaultConfig()
	if v := strings.TrimSpace(os.Getenv(EnvStore)); v != "" {
		cfg.Store = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvQuiet)); v != "" {
		quiet, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvQuiet, err)
		}
		cfg.Quiet = quiet
	}
	cfg.Seed = strings.TrimSpace(os.Getenv(EnvSeed))
	return cfg, nil
}

// Validate rejects unknown store backends and log levels.
func (c Config) Validate() error {
	switch c.Store {
	case StoreMemory, StoreSQLite:
	default:
		return fmt.Errorf("unknown store %q (want %s or %s)", c.Store, StoreMemory, StoreSQLite)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}
