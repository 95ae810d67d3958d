package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/fruit-catch/internal/games/fruitcatch"
	"github.com/vovakirdan/fruit-catch/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a game and difficulty picker",
	Long: `Start Fruit Catch in interactive menu mode.

Pick a mode with Up/Down and a difficulty with Left/Right, then press
Enter. Leaving a finished game with Esc returns to the menu. The chosen
difficulty is remembered for next time.

Controls:
  Up/Down/j/k     - Choose mode
  Left/Right/h/l  - Choose difficulty
  Enter/Space     - Play
  Tab             - High scores
  Q               - Quit

Examples:
  fruitcatch menu
  fruitcatch menu --fps 30
  fruitcatch menu --db ./scores.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	logger, closeLog := newLogger("fruitcatch", io.Discard)
	defer closeLog()

	profile := openProfile(logger)
	preset, err := resolveDifficulty(profile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	applyGameFlags(preset)

	store := openStore(logger)
	cfg := runtimeConfig()

	var lastSaved tui.SavedScore
	rememberSaved := func(s tui.SavedScore) { lastSaved = s }

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(store, cfg, preset)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		cfg = menuResult.Config
		preset = string(menuResult.Difficulty)

		if menuResult.Quit {
			break
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, lastSaved, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue // Back to menu
			}
			break // User quit from scoreboard
		}

		if menuResult.GameID == "" {
			break
		}

		profile.SetDifficulty(preset)
		if err := profile.Save(); err != nil {
			logger.Warn("cannot save profile", "err", err)
		}

		game, err := fruitcatch.NewWithPreset(menuResult.GameID, menuResult.Difficulty)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		deps := tui.Deps{
			Store:        store,
			Profile:      profile,
			Logger:       logger,
			OnScoreSaved: rememberSaved,
		}
		backToMenu, err := tui.Run(game, deps, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
		if !backToMenu {
			break
		}
	}

	// Cleanup
	if store != nil {
		store.Close()
	}
}
