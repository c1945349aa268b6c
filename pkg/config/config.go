// Package config reads environment-level defaults for filebundler.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvAuthor     = "BUNDLER_AUTHOR"
	EnvDebug      = "BUNDLER_DEBUG"
	EnvIgnoreFile = "BUNDLER_IGNORE_FILE"
)

// Config holds defaults that command-line flags may override.
type Config struct {
	Author     string // Default author header when --author is not given.
	Debug      bool   // Enables development logging.
	IgnoreFile string // Path to a file of exclude patterns.
}

// Load reads an optional .env file from the working directory and then the
// process environment. Variables already set in the environment are not
// overwritten by .env.
func Load() Config {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from the current process environment only.
func FromEnv() Config {
	return Config{
		Author:     strings.TrimSpace(os.Getenv(EnvAuthor)),
		Debug:      parseBool(os.Getenv(EnvDebug)),
		IgnoreFile: strings.TrimSpace(os.Getenv(EnvIgnoreFile)),
	}
}

func parseBool(v string) bool {
	v = strings.TrimSpace(v)
	if v == "" {
		return false
	}
	if b, err := strconv.ParseBool(v); err == nil {
		return b
	}
	switch strings.ToLower(v) {
	case "yes", "y", "on":
		return true
	}
	return false
}
