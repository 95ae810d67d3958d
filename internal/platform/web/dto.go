package web

import "github.com/vovakirdan/fruit-catch/internal/storage"

// GameResponse describes a registered game and its aggregate stats.
type GameResponse struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	GamesPlayed  int     `json:"games_played"`
	HighScore    int     `json:"high_score"`
	AvgScore     float64 `json:"avg_score"`
	LastPlayedMs int64   `json:"last_played_ms,omitempty"`
}

// ScoreResponse is one leaderboard row.
type ScoreResponse struct {
	Rank        int    `json:"rank"`
	Player      string `json:"player"`
	Score       int    `json:"score"`
	TimestampMs int64  `json:"timestamp_ms"`
}

// BestResponse is the highest score of a game.
type BestResponse struct {
	GameID string `json:"game_id"`
	Score  int    `json:"score"`
	Exists bool   `json:"exists"`
}

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

func toScoreResponses(entries []storage.ScoreEntry) []ScoreResponse {
	out := make([]ScoreResponse, len(entries))
	for i, e := range entries {
		out[i] = ScoreResponse{
			Rank:        i + 1,
			Player:      e.PlayerName,
			Score:       e.Score,
			TimestampMs: e.TimestampMs(),
		}
	}
	return out
}
