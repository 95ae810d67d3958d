// Package web exports the leaderboard as read-only JSON over HTTP.
package web

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/vovakirdan/fruit-catch/internal/registry"
	"github.com/vovakirdan/fruit-catch/internal/storage"
)

// Limits for the scores endpoint.
const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// ScoreStore is the read side of the score database.
type ScoreStore interface {
	TopScores(gameID string, limit int) ([]storage.ScoreEntry, error)
	HighScore(gameID string) (int, bool, error)
	GetAllGamesStats() (map[string]*storage.GameStats, error)
}

// HandlerDeps are the collaborators of Handler.
type HandlerDeps struct {
	Store  ScoreStore
	Logger *log.Logger
}

// Handler serves the leaderboard endpoints.
type Handler struct {
	store  ScoreStore
	logger *log.Logger
}

// NewHandler creates a handler.
func NewHandler(deps HandlerDeps) *Handler {
	logger := deps.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Handler{store: deps.Store, logger: logger}
}

// ListGames handles GET /api/games.
func (h *Handler) ListGames(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.GetAllGamesStats()
	if err != nil {
		h.fail(w, r, http.StatusInternalServerError, err)
		return
	}

	games := registry.List()
	out := make([]GameResponse, 0, len(games))
	for _, g := range games {
		resp := GameResponse{ID: g.ID, Title: g.Title}
		if s, ok := stats[g.ID]; ok {
			resp.GamesPlayed = s.GamesCount
			resp.HighScore = s.HighScore
			resp.AvgScore = s.AvgScore
			if !s.LastPlayed.IsZero() {
				resp.LastPlayedMs = s.LastPlayed.UnixMilli()
			}
		}
		out = append(out, resp)
	}
	writeJSON(w, http.StatusOK, out)
}

// Scores handles GET /api/games/{id}/scores?limit=N.
func (h *Handler) Scores(w http.ResponseWriter, r *http.Request) {
	id, ok := h.gameID(w, r)
	if !ok {
		return
	}

	limit := DefaultLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "limit must be a positive integer"})
			return
		}
		limit = min(n, MaxLimit)
	}

	entries, err := h.store.TopScores(id, limit)
	if err != nil {
		h.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, toScoreResponses(entries))
}

// Best handles GET /api/games/{id}/best.
func (h *Handler) Best(w http.ResponseWriter, r *http.Request) {
	id, ok := h.gameID(w, r)
	if !ok {
		return
	}

	best, exists, err := h.store.HighScore(id)
	if err != nil {
		h.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, BestResponse{GameID: id, Score: best, Exists: exists})
}

func (h *Handler) gameID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	if !registry.Exists(id) {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "unknown game " + strconv.Quote(id)})
		return "", false
	}
	return id, true
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, status int, err error) {
	h.logger.Error("request failed", "path", r.URL.Path, "err", err)
	writeJSON(w, status, ErrorResponse{Error: http.StatusText(status)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // The client may have gone away
	json.NewEncoder(w).Encode(v)
}
