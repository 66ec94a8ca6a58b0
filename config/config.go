// Package config reads process configuration from the environment,
// loading a .env file first when one is present.
package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load(".env")
}

// Get returns the trimmed value of an environment variable, or the
// fallback when the variable is unset or blank.
func Get(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

// FiguresDir returns the root directory under which figures are saved.
func FiguresDir() string {
	return Get("FIGS_PATH", "figures")
}

// DataDir returns the root directory for input data files.
func DataDir() string {
	return Get("DATA_PATH", "data")
}
