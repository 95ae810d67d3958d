package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/fruit-catch/internal/core"
	"github.com/vovakirdan/fruit-catch/internal/games/fruitcatch"
	"github.com/vovakirdan/fruit-catch/internal/loop"
	"github.com/vovakirdan/fruit-catch/internal/registry"
	"github.com/vovakirdan/fruit-catch/internal/storage"
)

// Deps are the collaborators of a game session. Every field is optional.
type Deps struct {
	Store   *storage.Store
	Profile *storage.ProfileStore
	Logger  *log.Logger

	// PlayerName prefills the name entry when there is no profile.
	PlayerName string

	// Renderer is the lipgloss renderer of an SSH session.
	Renderer *lipgloss.Renderer

	// Context bounds the game loop, e.g. to the lifetime of an SSH session.
	Context context.Context

	// OnScoreSaved is called after the final score has been stored.
	OnScoreSaved func(SavedScore)
}

func (d Deps) logger() *log.Logger {
	if d.Logger == nil {
		return log.New(io.Discard)
	}
	return d.Logger
}

func (d Deps) defaultName() string {
	if d.Profile != nil {
		if name := d.Profile.Profile().PlayerName; name != "" {
			return name
		}
	}
	if d.PlayerName != "" {
		return d.PlayerName
	}
	return fruitcatch.DefaultPlayerName
}

// GameModel runs one game on a loop goroutine and renders the frames it
// publishes. On game over it asks for a name and saves the score once.
type GameModel struct {
	game      registry.Game
	deps      Deps
	config    core.RuntimeConfig
	screen    *core.Screen
	palette   Palette
	keyMapper *KeyMapper

	loop   *loop.Loop
	ctx    context.Context
	cancel context.CancelFunc

	frame registry.Frame
	state core.GameState

	nameInput textinput.Model
	entering  bool   // Name entry is open
	handled   bool   // Current game over has been saved or skipped
	message   string // Result of the last save
	best      int
	hasBest   bool
	saved     SavedScore

	quitOnExit bool // Standalone program: leaving the game quits it
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a model for game. The loop starts in Init.
func NewGameModel(game registry.Game, deps Deps, cfg core.RuntimeConfig) GameModel {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = loop.DefaultTickRate
	}

	if lg, ok := game.(interface{ SetLogger(*log.Logger) }); ok {
		lg.SetLogger(deps.logger())
	}

	l := loop.New(game, cfg.TickRate)
	l.SetLogger(deps.logger())
	parent := deps.Context
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)

	ti := textinput.New()
	ti.Placeholder = fruitcatch.DefaultPlayerName
	ti.CharLimit = fruitcatch.MaxPlayerNameLen
	ti.Width = fruitcatch.MaxPlayerNameLen + 1
	ti.Prompt = "> "

	return GameModel{
		game:      game,
		deps:      deps,
		config:    cfg,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		palette:   NewPalette(deps.Renderer),
		keyMapper: NewKeyMapper(),
		loop:      l,
		ctx:       ctx,
		cancel:    cancel,
		nameInput: ti,
	}
}

// Init resets the game and starts the loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	go func() {
		if err := m.loop.Run(m.ctx); err != nil && m.ctx.Err() == nil {
			m.deps.logger().Error("loop stopped", "err", err)
		}
	}()
	return waitForFrame(m.loop)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if x, ok := m.keyMapper.MapMouse(msg); ok && !m.entering {
			m.loop.SetPointer(x)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		m.loop.Resize(msg.Width, msg.Height)
		return m, nil

	case FrameMsg:
		return m.handleFrame(loop.Update(msg))

	case loopStoppedMsg:
		return m, nil
	}

	if m.entering {
		var cmd tea.Cmd
		m.nameInput, cmd = m.nameInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m GameModel) handleFrame(u loop.Update) (tea.Model, tea.Cmd) {
	m.frame = u.Frame
	m.state = u.Frame.State()

	var cmd tea.Cmd
	switch {
	case m.state.GameOver && !m.handled && !m.entering:
		cmd = m.openNameEntry()
	case !m.state.GameOver && m.handled:
		// A new game started after restart.
		m.handled = false
		m.message = ""
	}
	return m, tea.Batch(waitForFrame(m.loop), cmd)
}

// openNameEntry starts the save flow for a finished game. Games without
// points or without a leaderboard skip straight to the result screen.
func (m *GameModel) openNameEntry() tea.Cmd {
	m.recordGame()
	lb := m.leaderboard()
	if lb == nil || m.state.Score <= 0 {
		m.handled = true
		return nil
	}
	if best, ok, err := lb.HighestScore(); err == nil {
		m.best, m.hasBest = best, ok
	}
	m.entering = true
	m.nameInput.SetValue(m.deps.defaultName())
	m.nameInput.CursorEnd()
	return m.nameInput.Focus()
}

func (m GameModel) leaderboard() fruitcatch.Leaderboard {
	if m.deps.Store == nil {
		return nil
	}
	return m.deps.Store.Leaderboard(m.game.ID())
}

func (m *GameModel) recordGame() {
	if m.deps.Profile == nil {
		return
	}
	m.deps.Profile.RecordGame()
	if err := m.deps.Profile.Save(); err != nil {
		m.deps.logger().Warn("cannot save profile", "err", err)
	}
}

// saveScore submits the entered name once and closes the entry.
func (m *GameModel) saveScore() {
	name := fruitcatch.NormalizePlayerName(m.nameInput.Value())
	id, err := fruitcatch.SubmitFinalScore(m.leaderboard(), name, m.state.Score)
	if err != nil {
		m.deps.logger().Error("cannot save score", "game", m.game.ID(), "err", err)
		m.message = "Could not save score"
	} else {
		m.saved = SavedScore{GameID: m.game.ID(), ID: id, Score: m.state.Score}
		if m.deps.OnScoreSaved != nil {
			m.deps.OnScoreSaved(m.saved)
		}
		m.message = fmt.Sprintf("Saved %d for %s", m.state.Score, name)
		if !m.hasBest || m.state.Score > m.best {
			m.message += " - new high score!"
		}
	}

	if m.deps.Profile != nil {
		m.deps.Profile.SetPlayerName(name)
		if err := m.deps.Profile.Save(); err != nil {
			m.deps.logger().Warn("cannot save profile", "err", err)
		}
	}
	m.closeNameEntry()
}

func (m *GameModel) closeNameEntry() {
	m.entering = false
	m.handled = true
	m.nameInput.Blur()
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.entering {
		switch msg.String() {
		case "ctrl+c":
			return m.stop(true)
		case "enter":
			m.saveScore()
			return m, nil
		case "esc":
			m.message = "Score not saved"
			m.closeNameEntry()
			return m, nil
		}
		var cmd tea.Cmd
		m.nameInput, cmd = m.nameInput.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		return m.stop(true)
	}

	// Back leaves the game when it is over or paused; in RESULT it banks
	// the score instead.
	if action == core.ActionBack && (m.state.GameOver || m.state.Paused) {
		return m.stop(false)
	}

	m.loop.Send(action)
	return m, nil
}

// stop cancels the loop and leaves the game, either quitting or going
// back to the menu.
func (m GameModel) stop(quit bool) (tea.Model, tea.Cmd) {
	m.cancel()
	if quit {
		m.quitting = true
	} else {
		m.backToMenu = true
	}
	if quit || m.quitOnExit {
		return m, tea.Quit
	}
	return m, nil
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	if m.frame == nil {
		return
	}
	m.frame.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".fruitcatch", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the latest frame, or the name entry panel on game over.
func (m GameModel) View() string {
	if m.quitting || m.backToMenu || m.frame == nil {
		return ""
	}

	if m.entering {
		return m.viewNameEntry()
	}

	m.frame.Render(m.screen)
	view := m.palette.RenderScreen(m.screen)
	if m.message != "" && m.state.GameOver {
		lines := strings.Split(view, "\n")
		last := len(lines) - 1
		lines[last] = m.palette.Style(core.ColorBrightYellow).Render(centerText(m.message, m.screen.Width()))
		view = strings.Join(lines, "\n")
	}
	return view
}

func (m GameModel) viewNameEntry() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	var b strings.Builder
	b.WriteString(title.Render("GAME OVER"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Score %d  Round %d\n", m.state.Score, m.state.Round)
	if m.hasBest {
		fmt.Fprintf(&b, "Best %d\n", m.best)
	}
	b.WriteString("\nEnter your name:\n")
	b.WriteString(m.nameInput.View())
	b.WriteString("\n\n")
	b.WriteString(dim.Render("Enter: save  Esc: skip"))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(1, 3).
		Render(b.String())

	return lipgloss.Place(m.screen.Width(), m.screen.Height(), lipgloss.Center, lipgloss.Center, box)
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Saved returns the score stored at the end of this game, if any.
func (m GameModel) Saved() SavedScore {
	return m.saved
}

// State returns the state of the last rendered frame.
func (m GameModel) State() core.GameState {
	return m.state
}

// Run starts a standalone Bubble Tea program for game. It returns true if
// the player went back to the menu instead of quitting.
func Run(game registry.Game, deps Deps, cfg core.RuntimeConfig) (backToMenu bool, err error) {
	model := NewGameModel(game, deps, cfg)
	model.quitOnExit = true
	defer model.cancel()

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := finalModel.(GameModel)
	if !ok {
		return false, nil
	}
	return m.BackToMenu(), nil
}
