package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/fruit-catch/internal/config"
	"github.com/vovakirdan/fruit-catch/internal/core"
	"github.com/vovakirdan/fruit-catch/internal/games/fruitcatch"
	"github.com/vovakirdan/fruit-catch/internal/storage"
)

// newLogger returns the command logger. With --log-file logs go to that
// file; otherwise they go to fallback, which may be io.Discard for the
// interactive UI. The returned func closes the file.
func newLogger(prefix string, fallback io.Writer) (*log.Logger, func()) {
	out := fallback
	closeFn := func() {}

	if flagLogFile != "" {
		//#nosec G302 G304 -- log file path comes from the user
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
		} else {
			out = f
			closeFn = func() { f.Close() }
		}
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if level, err := log.ParseLevel(flagLogLevel); err == nil {
		logger.SetLevel(level)
	}
	return logger, closeFn
}

// runtimeConfig builds the runtime config from the terminal size and the
// global flags.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the score database. The game still works without it.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("no score database", "path", flagDBPath, "err", err)
		return nil
	}
	return store
}

// openProfile loads the saved player profile, falling back to memory.
func openProfile(logger *log.Logger) *storage.ProfileStore {
	profile, err := storage.OpenProfileStore(storage.DefaultAppName)
	if err != nil {
		logger.Warn("profile not persisted", "err", err)
	}
	return profile
}

// resolveDifficulty picks the --difficulty flag, then the profile's last
// choice. The result is empty or a known preset; only a bad flag is an
// error.
func resolveDifficulty(profile *storage.ProfileStore) (string, error) {
	if preset := strings.TrimSpace(flagDifficulty); preset != "" {
		if _, ok := config.ParsePreset(preset); !ok {
			return "", fmt.Errorf("unknown difficulty %q (expected easy, normal, hard or fixed)", preset)
		}
		return preset, nil
	}
	if profile != nil {
		if _, ok := config.ParsePreset(profile.Profile().Difficulty); ok {
			return profile.Profile().Difficulty, nil
		}
	}
	return "", nil
}

// applyGameFlags passes --config and the difficulty to the game package
// before games are created.
func applyGameFlags(preset string) {
	fruitcatch.SetConfigPath(flagConfig)
	fruitcatch.SetDifficultyPreset(preset)
}
