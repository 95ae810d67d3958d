package fruitcatch

import (
	"errors"
	"strings"

	"github.com/vovakirdan/fruit-catch/internal/storage"
)

// DefaultPlayerName is used when the player leaves the name blank.
const DefaultPlayerName = "Player"

// MaxPlayerNameLen is the longest stored name, in runes.
const MaxPlayerNameLen = 16

// ErrNoLeaderboard is returned when scores cannot be persisted.
var ErrNoLeaderboard = errors.New("fruitcatch: no leaderboard")

// Leaderboard persists and ranks final scores for one game.
type Leaderboard interface {
	SubmitScore(name string, score int) (int64, error)
	TopScores(limit int) ([]storage.ScoreEntry, error)
	HighestScore() (int, bool, error)
}

// NormalizePlayerName trims the name, substitutes the default for blank
// names and truncates to MaxPlayerNameLen runes.
func NormalizePlayerName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultPlayerName
	}
	if r := []rune(name); len(r) > MaxPlayerNameLen {
		name = strings.TrimSpace(string(r[:MaxPlayerNameLen]))
	}
	return name
}

// SubmitFinalScore records one save action.
func SubmitFinalScore(lb Leaderboard, name string, score int) (int64, error) {
	if lb == nil {
		return 0, ErrNoLeaderboard
	}
	return lb.SubmitScore(NormalizePlayerName(name), max(score, 0))
}
