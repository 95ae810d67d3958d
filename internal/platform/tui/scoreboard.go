package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/fruit-catch/internal/registry"
	"github.com/vovakirdan/fruit-catch/internal/storage"
)

const (
	maxScores     = 100 // Rows loaded per mode
	boardMaxWidth = 60
	newEntryMark  = "new"
)

// Rank colors of the podium, then everyone else.
var (
	rankGold   = lipgloss.Color("220")
	rankSilver = lipgloss.Color("252")
	rankBronze = lipgloss.Color("208")
	rankOther  = lipgloss.Color("48")
)

// SavedScore identifies the score saved at the end of the last game.
// The zero value means nothing was saved.
type SavedScore struct {
	GameID string
	ID     int64
	Score  int
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Mode key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Mode, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Mode}, {k.Back, k.Quit}}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Mode: key.NewBinding(
			key.WithKeys("tab", "m"),
			key.WithHelp("tab/m", "classic/strict"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel lists the top scores of one quota mode. The entry saved
// at the end of the last game is selected and marked.
type ScoreboardModel struct {
	modes   []registry.GameInfo
	mode    int
	store   *storage.Store
	saved   SavedScore
	scores  []storage.ScoreEntry
	savedAt int // Row of the saved entry, -1 when not listed
	loadErr error

	table table.Model
	help  help.Model
	keys  ScoreboardKeyMap

	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a scoreboard. It opens on the mode of saved
// when set, otherwise on classic.
func NewScoreboardModel(store *storage.Store, saved SavedScore, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		modes:  registry.List(),
		store:  store,
		saved:  saved,
		help:   help.New(),
		keys:   DefaultScoreboardKeyMap(),
		width:  width,
		height: height,
	}
	for i, info := range m.modes {
		if info.ID == saved.GameID {
			m.mode = i
		}
	}
	m.table = m.newTable()
	m.reload()
	return m
}

func (m ScoreboardModel) newTable() table.Model {
	nameWidth := min(max(m.width-4-34, 10), 18)
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Rank", Width: 8},
			{Title: "Player", Width: nameWidth},
			{Title: "Score", Width: 8},
			{Title: "Date", Width: 14},
		}),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(true)
	t.SetStyles(s)
	return t
}

func (m ScoreboardModel) gameID() string {
	if len(m.modes) == 0 {
		return ""
	}
	return m.modes[m.mode].ID
}

// reload fetches the current mode and selects the saved entry if listed.
func (m *ScoreboardModel) reload() {
	m.scores, m.loadErr, m.savedAt = nil, nil, -1
	if m.store != nil && m.gameID() != "" {
		m.scores, m.loadErr = m.store.Leaderboard(m.gameID()).TopScores(maxScores)
	}

	rows := make([]table.Row, len(m.scores))
	for i, s := range m.scores {
		rank := fmt.Sprintf("#%d", i+1)
		if m.isSaved(s) {
			m.savedAt = i
			rank += " " + newEntryMark
		}
		rows[i] = table.Row{rank, s.PlayerName, fmt.Sprintf("%d", s.Score), formatScoreDate(s.CreatedAt)}
	}
	m.table.SetRows(rows)

	if m.savedAt >= 0 {
		m.table.SetCursor(m.savedAt)
	} else {
		m.table.GotoTop()
	}
}

func (m ScoreboardModel) isSaved(s storage.ScoreEntry) bool {
	return m.saved.ID != 0 && s.ID == m.saved.ID && s.GameID == m.saved.GameID
}

// formatScoreDate prints today's entries as a time and older ones as a date.
func formatScoreDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	local := t.Local()
	now := time.Now()
	if local.Year() == now.Year() && local.YearDay() == now.YearDay() {
		return "today " + local.Format("15:04")
	}
	return local.Format("Jan 02 2006")
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Mode):
			if len(m.modes) > 1 {
				m.mode = (m.mode + 1) % len(m.modes)
				m.reload()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		cursor := m.table.Cursor()
		m.table = m.newTable()
		m.reload()
		m.table.SetCursor(cursor)
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	title := lipgloss.NewStyle().Bold(true).Foreground(rankGold)
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1).
		MaxWidth(boardMaxWidth + 4)

	var b strings.Builder
	b.WriteString(centerText(title.Render("TOP RANKS"), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(m.modeTabs(), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(frame.Render(m.body()), m.width))
	b.WriteString("\n")
	if line := m.savedLine(); line != "" {
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}
	b.WriteString(dim.Render(m.help.View(m.keys)))
	return b.String()
}

func (m ScoreboardModel) modeTabs() string {
	active := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1)
	idle := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)

	tabs := make([]string, len(m.modes))
	for i, info := range m.modes {
		if i == m.mode {
			tabs[i] = active.Render(info.Title)
		} else {
			tabs[i] = idle.Render(info.Title)
		}
	}
	return strings.Join(tabs, " ")
}

// body renders the podium above the full table, or a placeholder.
func (m ScoreboardModel) body() string {
	if m.loadErr != nil {
		return lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Padding(1, 2).
			Render("Could not load scores:\n" + m.loadErr.Error())
	}
	if len(m.scores) == 0 {
		return lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(1, 2).
			Render("NO HIGH SCORES YET\nPLAY A GAME TO RANK UP!")
	}
	return m.podium() + "\n\n" + m.table.View()
}

// podium shows the first three entries in their rank colors.
func (m ScoreboardModel) podium() string {
	colors := []lipgloss.Color{rankGold, rankSilver, rankBronze}
	parts := make([]string, 0, len(colors))
	for i := 0; i < len(colors) && i < len(m.scores); i++ {
		style := lipgloss.NewStyle().Foreground(colors[i])
		if i == 0 {
			style = style.Bold(true)
		}
		parts = append(parts, style.Render(fmt.Sprintf("#%d %s %d", i+1, m.scores[i].PlayerName, m.scores[i].Score)))
	}
	return strings.Join(parts, "   ")
}

// savedLine reports where the last saved score landed in this mode.
func (m ScoreboardModel) savedLine() string {
	if m.saved.ID == 0 || m.saved.GameID != m.gameID() || m.loadErr != nil {
		return ""
	}
	style := lipgloss.NewStyle().Foreground(rankOther)
	if m.savedAt < 0 {
		return style.Render(fmt.Sprintf("Your score %d is outside the top %d", m.saved.Score, maxScores))
	}
	return style.Render(fmt.Sprintf("Your score %d ranks #%d of %d", m.saved.Score, m.savedAt+1, len(m.scores)))
}

// SavedRank returns the 1-based rank of the saved entry in the shown mode,
// or 0 when it is not listed.
func (m ScoreboardModel) SavedRank() int {
	return m.savedAt + 1
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, saved SavedScore, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(
		NewScoreboardModel(store, saved, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
