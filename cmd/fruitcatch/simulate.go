package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/fruit-catch/internal/config"
	"github.com/vovakirdan/fruit-catch/internal/core"
	"github.com/vovakirdan/fruit-catch/internal/games/fruitcatch"
	"github.com/vovakirdan/fruit-catch/internal/loop"
)

var (
	flagSimTicks     int
	flagSimWidth     int
	flagSimHeight    int
	flagSimAutopilot bool
	flagSimRounds    int
)

var simulateCmd = &cobra.Command{
	Use:   "simulate [game]",
	Short: "Run a game headless and print the final state",
	Long: `Run the simulation without a terminal UI. Ticks run back to back
instead of in real time, so a long game finishes in milliseconds.

With --autopilot the basket chases the lowest fruit and ignores bombs.
The wheel is spun as soon as it appears; after --rounds rounds the score
is banked, otherwise play continues until game over or --ticks run out.

Examples:
  fruitcatch simulate --seed 7
  fruitcatch simulate fruitcatch_strict --ticks 36000 --rounds 5
  fruitcatch simulate --difficulty hard --log-level debug`,
	Args: cobra.MaximumNArgs(1),
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagSimTicks, "ticks", 60*60*5, "Maximum number of ticks to run")
	simulateCmd.Flags().IntVar(&flagSimWidth, "width", 80, "Simulated screen width")
	simulateCmd.Flags().IntVar(&flagSimHeight, "height", 24, "Simulated screen height")
	simulateCmd.Flags().BoolVar(&flagSimAutopilot, "autopilot", true, "Steer the basket toward falling fruit")
	simulateCmd.Flags().IntVar(&flagSimRounds, "rounds", 0, "Bank the score after this many rounds (0 = never)")
}

// simStats accumulates per-tick results of a headless run.
type simStats struct {
	ticks  int
	caught int
	missed int
	spins  int
}

func runSimulate(_ *cobra.Command, args []string) {
	gameID := "fruitcatch"
	if len(args) > 0 {
		gameID = args[0]
	}

	logger, closeLog := newLogger("fruitcatch-sim", os.Stderr)
	defer closeLog()

	preset, err := resolveDifficulty(nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	applyGameFlags(preset)

	game, err := fruitcatch.NewWithPreset(gameID, config.DifficultyPreset(preset))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	game.SetLogger(logger)

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	game.Reset(core.RuntimeConfig{
		ScreenW:  flagSimWidth,
		ScreenH:  flagSimHeight,
		TickRate: flagFPS,
		Seed:     seed,
	})

	l := loop.New(game, flagFPS)
	l.SetLogger(logger)

	start := time.Now()
	var stats simStats
	for stats.ticks < flagSimTicks {
		frame := game.Frame()
		if frame.Round.Phase == fruitcatch.PhaseGameOver {
			break
		}
		if steer(l, frame) {
			stats.spins++
		}

		u := l.Tick()
		stats.ticks++
		stats.caught += u.Result.Caught
		stats.missed += u.Result.Missed
	}

	final := game.RoundState()
	simulated := time.Duration(stats.ticks) * time.Second / time.Duration(max(flagFPS, 1))

	fmt.Printf("Game:       %s (%s)\n", game.Title(), gameID)
	fmt.Printf("Seed:       %d\n", seed)
	fmt.Printf("Ticks:      %d (%s simulated, %s wall)\n", stats.ticks, simulated, time.Since(start).Round(time.Millisecond))
	fmt.Printf("Phase:      %s\n", final.Phase)
	fmt.Printf("Score:      %d\n", final.Score)
	fmt.Printf("Round:      %d\n", final.Round)
	fmt.Printf("Lives:      %d\n", final.Lives)
	fmt.Printf("Caught:     %d\n", stats.caught)
	fmt.Printf("Missed:     %d\n", stats.missed)
	fmt.Printf("Spins:      %d\n", stats.spins)
}

// steer queues the input a player would give for frame. It reports whether
// a wheel spin was requested.
func steer(l *loop.Loop, frame fruitcatch.Frame) bool {
	switch frame.Round.Phase {
	case fruitcatch.PhasePlaying:
		if !flagSimAutopilot {
			return false
		}
		if target, ok := lowestFruit(frame.Objects); ok {
			l.SetPointer(target.X + target.Size/2)
		}

	case fruitcatch.PhaseWheel:
		if !frame.Wheel.Spinning && !frame.Wheel.HasResult {
			l.Send(core.ActionConfirm)
			return true
		}

	case fruitcatch.PhaseResult:
		if flagSimRounds > 0 && frame.Round.Round >= flagSimRounds {
			l.Send(core.ActionBack)
		} else {
			l.Send(core.ActionConfirm)
		}
	}
	return false
}

// lowestFruit returns the non-bomb object closest to the basket.
func lowestFruit(objects []fruitcatch.FallingObject) (fruitcatch.FallingObject, bool) {
	var best fruitcatch.FallingObject
	found := false
	for _, o := range objects {
		if o.Kind.IsBomb() {
			continue
		}
		if !found || o.Y > best.Y {
			best, found = o, true
		}
	}
	return best, found
}
