// fruitcatch is a terminal arcade game: catch falling fruit, dodge bombs and
// spin the reward wheel between rounds.
//
// Usage:
//
//	fruitcatch play [game]      - Play a game (default: fruitcatch)
//	fruitcatch menu             - Start menu to pick a mode and difficulty
//	fruitcatch scores [game]    - Show high scores
//	fruitcatch serve            - Start SSH server for remote play
//	fruitcatch web              - Serve the leaderboard as JSON over HTTP
//	fruitcatch simulate         - Run a game headless and print the result
//	fruitcatch wheel            - Print the reward wheel and resolve spins
//	fruitcatch list             - List available games
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.fruitcatch/scores.db)
//	--config <path>       - Custom game config YAML
//	--difficulty <preset> - easy, normal, hard or fixed
//	--log-file <path>     - Write logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/fruit-catch/internal/games/fruitcatch"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogFile    string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "fruitcatch",
	Short: "Fruit Catch - catch fruit, dodge bombs, spin the wheel",
	Long: `Fruit Catch is a terminal arcade game. Move the basket to catch
falling fruit and avoid bombs. Fill the round quota to spin the reward
wheel, then bank your score or risk it on the next round.

Available commands:
  play      - Play a game directly
  menu      - Interactive game and difficulty picker
  scores    - View high scores
  serve     - Start SSH server for remote play
  web       - Serve the leaderboard over HTTP
  simulate  - Run a headless game
  wheel     - Inspect the reward wheel
  list      - Show all available games

Examples:
  fruitcatch play
  fruitcatch play fruitcatch_strict --difficulty hard
  fruitcatch menu
  fruitcatch serve --ssh :2222
  fruitcatch web --addr :8080
  fruitcatch simulate --ticks 3600 --seed 7`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.fruitcatch/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(wheelCmd)
}
