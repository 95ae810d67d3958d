package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/fruit-catch/internal/storage"
)

func newTestBoardStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func saveScores(t *testing.T, store *storage.Store, gameID string, scores ...int) []int64 {
	t.Helper()
	ids := make([]int64, len(scores))
	for i, s := range scores {
		id, err := store.SaveScore(gameID, "alice", s)
		if err != nil {
			t.Fatalf("SaveScore error: %v", err)
		}
		ids[i] = id
	}
	return ids
}

func TestScoreboardTogglesMode(t *testing.T) {
	store := newTestBoardStore(t)
	saveScores(t, store, "fruitcatch", 30, 90, 60)

	m := NewScoreboardModel(store, SavedScore{}, 100, 30)
	if m.gameID() != "fruitcatch" || len(m.scores) != 3 || m.scores[0].Score != 90 {
		t.Fatalf("mode=%s scores=%+v", m.gameID(), m.scores)
	}
	view := m.View()
	if !strings.Contains(view, "TOP RANKS") || !strings.Contains(view, "#1 alice 90") {
		t.Errorf("view should show the title and the podium:\n%s", view)
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	if m.gameID() != "fruitcatch_strict" || len(m.scores) != 0 {
		t.Errorf("after tab: mode=%s scores=%d", m.gameID(), len(m.scores))
	}
	if !strings.Contains(m.View(), "NO HIGH SCORES YET") {
		t.Error("empty mode should show the placeholder")
	}

	next, _ = m.Update(runeKey("m"))
	m = next.(ScoreboardModel)
	if m.gameID() != "fruitcatch" {
		t.Errorf("toggle should wrap around, mode=%s", m.gameID())
	}
}

func TestScoreboardSelectsSavedEntry(t *testing.T) {
	store := newTestBoardStore(t)
	saveScores(t, store, "fruitcatch", 500)
	ids := saveScores(t, store, "fruitcatch_strict", 90, 60, 30)
	saved := SavedScore{GameID: "fruitcatch_strict", ID: ids[1], Score: 60}

	m := NewScoreboardModel(store, saved, 100, 30)
	if m.gameID() != "fruitcatch_strict" {
		t.Fatalf("board should open on the saved mode, got %s", m.gameID())
	}
	if m.SavedRank() != 2 || m.table.Cursor() != 1 {
		t.Errorf("rank=%d cursor=%d, expected 2/1", m.SavedRank(), m.table.Cursor())
	}
	if row := m.table.SelectedRow(); len(row) == 0 || row[0] != "#2 "+newEntryMark {
		t.Errorf("selected row = %v", row)
	}
	if !strings.Contains(m.View(), "Your score 60 ranks #2 of 3") {
		t.Error("view should report the saved rank")
	}

	// The other mode does not mention the saved entry.
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	if m.SavedRank() != 0 || strings.Contains(m.View(), "Your score") {
		t.Errorf("saved entry leaked into %s", m.gameID())
	}
}

func TestScoreboardSavedEntryOutsideTop(t *testing.T) {
	store := newTestBoardStore(t)
	saveScores(t, store, "fruitcatch", 10)

	m := NewScoreboardModel(store, SavedScore{GameID: "fruitcatch", ID: 9999, Score: 5}, 100, 30)
	if m.SavedRank() != 0 || m.table.Cursor() != 0 {
		t.Errorf("rank=%d cursor=%d, expected nothing selected", m.SavedRank(), m.table.Cursor())
	}
	if !strings.Contains(m.View(), "outside the top") {
		t.Error("view should say the score is not listed")
	}
}

func TestFormatScoreDate(t *testing.T) {
	tests := []struct {
		name     string
		at       time.Time
		expected string
	}{
		{"zero", time.Time{}, "-"},
		{"older", time.Date(2020, 3, 4, 12, 0, 0, 0, time.Local), "Mar 04 2020"},
	}
	for _, tt := range tests {
		if got := formatScoreDate(tt.at); got != tt.expected {
			t.Errorf("%s: formatScoreDate = %q, expected %q", tt.name, got, tt.expected)
		}
	}
	if got := formatScoreDate(time.Now()); !strings.HasPrefix(got, "today ") {
		t.Errorf("formatScoreDate(now) = %q, expected today prefix", got)
	}
}

func TestScoreboardBackAndQuit(t *testing.T) {
	m := NewScoreboardModel(nil, SavedScore{}, 60, 20)

	back, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !back.(ScoreboardModel).IsGoingBack() || cmd == nil {
		t.Error("esc should go back")
	}

	quit, cmd := m.Update(runeKey("q"))
	if !quit.(ScoreboardModel).IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
}
