package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/asciiman/internal/core"
	"github.com/vovakirdan/asciiman/internal/leaderboard"
	"github.com/vovakirdan/asciiman/internal/registry"
	"github.com/vovakirdan/asciiman/internal/storage"
)

// Options carries the optional services a game model talks to.
type Options struct {
	Store       *storage.Store      // Local score history and records; nil disables saving
	Leaderboard *leaderboard.Client // Remote leaderboard; nil disables submission
	Player      string              // Default name offered in the submit dialog
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game        registry.Game
	screen      *core.Screen
	opts        Options
	config      core.RuntimeConfig
	inputFrame  core.InputFrame
	gameState   core.GameState
	keyMapper   *KeyMapper
	submit      *submitDialog
	status      string
	embedded    bool // Back returns to the menu instead of quitting
	quitting    bool
	backToMenu  bool
	resultSaved bool // Whether the result has been saved for current game over
	newBest     bool
	submitted   bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	if opts.Store != nil && cfg.BestScore == 0 {
		if rec, err := opts.Store.Records(cfg.Difficulty); err == nil {
			cfg.BestScore = rec.BestScore
		}
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		opts:       opts,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	logger().Info("game started", "game", m.game.ID(), "mode", m.game.State().Mode, "seed", m.config.Seed)

	// Start the tick loop
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.submit != nil {
			return m.updateSubmit(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()

	case submitResultMsg:
		return m.handleSubmitResult(msg)
	}

	if m.submit != nil {
		var cmd tea.Cmd
		m.submit.input, cmd = m.submit.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey processes keyboard input. Gameplay keys go straight to games
// that accept discrete actions so presses between ticks keep their order.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionNone, core.ActionConfirm:
		return m, nil
	case core.ActionBack:
		if !m.gameState.GameOver && !m.gameState.Paused {
			return m, nil
		}
		if m.embedded {
			m.backToMenu = true
			return m, tea.Quit
		}
		m.quitting = true
		return m, tea.Quit
	case core.ActionSubmit:
		return m.openSubmit()
	}

	if h, ok := m.game.(registry.ActionHandler); ok {
		m.applyState(h.HandleAction(action).State)
		return m, nil
	}
	m.inputFrame.Set(action)
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.applyState(result.State)

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// applyState records a new game state, saving the result the first time a
// game is seen finished.
func (m *Model) applyState(st core.GameState) {
	if m.gameState.GameOver && !st.GameOver {
		m.resultSaved = false
		m.newBest = false
		m.submitted = false
		m.status = ""
	}
	m.gameState = st

	if st.GameOver && !m.resultSaved {
		m.saveResult()
	}
}

// saveResult writes the finished game to the local store.
func (m *Model) saveResult() {
	m.resultSaved = true
	st := m.gameState
	logger().Info("game over", "mode", st.Mode, "score", st.Score, "time", st.Elapsed, "won", st.Won)

	if m.opts.Store == nil {
		return
	}
	if _, err := m.opts.Store.SaveScore(st.Mode, st.Score, st.Elapsed, st.Won); err != nil {
		logger().Warn("could not save score", "error", err)
	}
	newBest, err := m.opts.Store.RecordResult(st.Mode, st.Score, st.Elapsed)
	if err != nil {
		logger().Warn("could not update record", "error", err)
		return
	}
	m.newBest = newBest
}

// openSubmit shows the name dialog after a finished game.
func (m Model) openSubmit() (tea.Model, tea.Cmd) {
	if !m.gameState.GameOver || m.opts.Leaderboard == nil || m.submitted {
		return m, nil
	}
	m.submit = newSubmitDialog(m.opts.Player)
	return m, textinput.Blink
}

// updateSubmit routes keys to the open submit dialog.
func (m Model) updateSubmit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "esc":
		m.submit = nil
		return m, nil
	case "enter":
		if m.submit.pending {
			return m, nil
		}
		st := m.gameState
		sub := leaderboard.Prepare(m.submit.input.Value(), st.Score, st.Elapsed, st.Mode)
		if sub.Name == "" {
			m.submit.err = "Name must contain letters or digits"
			return m, nil
		}
		if err := leaderboard.Validate(sub); err != nil {
			m.submit.err = "This game cannot be submitted"
			logger().Warn("submission invalid", "error", err)
			return m, nil
		}
		m.submit.pending = true
		m.submit.err = ""
		m.opts.Player = sub.Name
		return m, submitCmd(m.opts.Leaderboard, sub)
	}

	var cmd tea.Cmd
	m.submit.input, cmd = m.submit.input.Update(msg)
	return m, cmd
}

// handleSubmitResult closes the dialog and reports the outcome.
func (m Model) handleSubmitResult(msg submitResultMsg) (tea.Model, tea.Cmd) {
	m.submit = nil
	switch {
	case msg.err == nil:
		m.submitted = true
		m.status = fmt.Sprintf("Submitted as %s", msg.entry.Name)
		logger().Info("score submitted", "id", msg.entry.ID, "mode", msg.entry.Mode, "score", msg.entry.Score)
	case errors.Is(msg.err, leaderboard.ErrRateLimited):
		m.status = "Too many submissions, try later"
		logger().Warn("submission rate limited")
	case errors.Is(msg.err, leaderboard.ErrInvalidSubmission):
		m.submitted = true
		m.status = "Submission rejected"
		logger().Warn("submission rejected", "error", msg.err)
	default:
		m.status = "Leaderboard unavailable"
		logger().Warn("submission failed", "error", msg.err)
	}
	return m, nil
}

// statusLine is drawn on the bottom row once the game is over.
func (m Model) statusLine() string {
	if !m.gameState.GameOver {
		return ""
	}
	var parts []string
	if m.newBest {
		parts = append(parts, "New best!")
	}
	switch {
	case m.status != "":
		parts = append(parts, m.status)
	case m.opts.Leaderboard != nil && !m.submitted:
		parts = append(parts, "U: submit")
	}
	parts = append(parts, "R: restart")
	if m.embedded {
		parts = append(parts, "Esc: menu")
	}
	return strings.Join(parts, "  ")
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	// Render current state
	m.game.Render(m.screen)

	// Create screenshots directory
	dir := filepath.Join(os.Getenv("HOME"), ".asciiman", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	// Generate filename with timestamp
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.submit != nil {
		return m.submit.View(m.gameState, m.config.ScreenW, m.config.ScreenH)
	}

	// Render game to screen buffer
	m.game.Render(m.screen)
	if line := m.statusLine(); line != "" && m.screen.Height() > 0 {
		m.screen.DrawTextCentered(m.screen.Height()-1, line)
	}

	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// State returns the last game state seen by the model.
func (m Model) State() core.GameState {
	return m.gameState
}

// Player returns the name last used for a submission, or the default.
func (m Model) Player() string {
	return m.opts.Player
}

// Run starts the Bubble Tea program with the given model.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}

// RunModel runs a game that can hand control back to a menu and returns the
// final model so the caller can check BackToMenu.
func RunModel(game registry.Game, cfg core.RuntimeConfig, opts Options) (Model, error) {
	model := NewModel(game, cfg, opts)
	model.embedded = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return model, err
	}
	m, ok := finalModel.(Model)
	if !ok {
		return model, nil
	}
	return m, nil
}
