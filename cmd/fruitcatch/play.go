package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/fruit-catch/internal/platform/tui"
	"github.com/vovakirdan/fruit-catch/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a game",
	Long: `Start playing Fruit Catch. The game defaults to "fruitcatch";
"fruitcatch_strict" only counts caught fruit toward the round quota.

Controls:
  Left/Right, A/D  - Move the basket (the mouse works too)
  Enter/Space      - Spin the wheel / play the next round
  B/Esc            - Bank the score on the result screen
  P                - Pause
  R                - Restart (after game over)
  Ctrl+S           - Save a screenshot
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - 5 lives, wide basket, gentle start
  normal - 3 lives, starts one step faster
  hard   - 2 lives, narrow basket, fast and bomb-heavy
  fixed  - No progression, every round plays like the first

Examples:
  fruitcatch play
  fruitcatch play fruitcatch_strict
  fruitcatch play --difficulty hard
  fruitcatch play --config ./my-fruitcatch.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := "fruitcatch"
	if len(args) > 0 {
		gameID = args[0]
	}

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'fruitcatch list' to see available games.")
		os.Exit(1)
	}

	logger, closeLog := newLogger("fruitcatch", io.Discard)
	defer closeLog()

	profile := openProfile(logger)
	preset, err := resolveDifficulty(profile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	applyGameFlags(preset)

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store := openStore(logger)

	deps := tui.Deps{
		Store:   store,
		Profile: profile,
		Logger:  logger,
	}
	_, runErr := tui.Run(game, deps, runtimeConfig())

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
