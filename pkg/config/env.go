package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// LoadEnv loads the given dotenv files into the process environment,
// overriding values that are already set. Later files take precedence.
// Without arguments it loads ./.env.
//
// Configs already cached by Load are not re-parsed; call ResetCache or
// ForceReloadConfig to pick up the new values.
func LoadEnv(paths ...string) error {
	if err := godotenv.Overload(paths...); err != nil {
		return errors.Join(ErrLoadingEnvFile, err)
	}
	return nil
}

// MustLoadEnv works like LoadEnv but panics on failure.
func MustLoadEnv(paths ...string) {
	if err := LoadEnv(paths...); err != nil {
		panic(fmt.Sprintf("failed to load env files: %v", err))
	}
}

// LoadEnvFor loads dir/.env.<appEnv> and then dir/.env. Variables already
// present in the environment are kept, so the precedence is: process
// environment, then the environment-specific file, then .env. Missing files
// are skipped.
func LoadEnvFor(dir, appEnv string) error {
	for _, path := range EnvFiles(dir, appEnv) {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return errors.Join(ErrLoadingEnvFile, fmt.Errorf("%s: %w", path, err))
		}
	}
	return nil
}

// EnvFiles lists the dotenv files LoadEnvFor reads, highest precedence first.
func EnvFiles(dir, appEnv string) []string {
	files := make([]string, 0, 2)
	if appEnv = strings.ToLower(strings.TrimSpace(appEnv)); appEnv != "" {
		files = append(files, filepath.Join(dir, ".env."+appEnv))
	}
	return append(files, filepath.Join(dir, ".env"))
}
