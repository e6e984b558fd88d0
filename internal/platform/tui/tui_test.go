package tui

import (
	"context"
	"io"
	"net/http/httptest"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/asciiman/internal/core"
	"github.com/vovakirdan/asciiman/internal/leaderboard"
	"github.com/vovakirdan/asciiman/internal/registry"
	"github.com/vovakirdan/asciiman/internal/storage"
)

const stubID = "tui-stub"

// stubGame reports whatever state the test sets and records actions.
type stubGame struct {
	state   core.GameState
	actions []core.Action
	steps   int
	resets  int
}

func (g *stubGame) ID() string { return stubID }
func (g *stubGame) Title() string { return "Stub" }

func (g *stubGame) Reset(cfg core.RuntimeConfig) {
	g.resets++
	g.state = core.GameState{Mode: cfg.Difficulty}
}

func (g *stubGame) Step(core.InputFrame) core.StepResult {
	g.steps++
	return core.StepResult{State: g.state}
}

func (g *stubGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "stub") }
func (g *stubGame) State() core.GameState { return g.state }

func (g *stubGame) HandleAction(a core.Action) core.StepResult {
	g.actions = append(g.actions, a)
	return core.StepResult{State: g.state}
}

func init() {
	registry.Register(stubID, func() registry.Game { return &stubGame{} })
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	mm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return mm, cmd
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 60, ScreenH: 34, TickRate: 10, Seed: 1, Difficulty: "hard"}
}

func TestKeyMapper(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		msg  tea.KeyMsg
		want core.Action
		quit bool
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, false},
		{runeKey("w"), core.ActionUp, false},
		{tea.KeyMsg{Type: tea.KeyDown}, core.ActionDown, false},
		{runeKey("s"), core.ActionDown, false},
		{tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{runeKey("a"), core.ActionLeft, false},
		{tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{runeKey("d"), core.ActionRight, false},
		{runeKey("1"), core.ActionMode1, false},
		{runeKey("4"), core.ActionMode4, false},
		{runeKey("r"), core.ActionRestart, false},
		{runeKey("p"), core.ActionPause, false},
		{runeKey("u"), core.ActionSubmit, false},
		{tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, false},
		{runeKey("q"), core.ActionQuit, true},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{runeKey("z"), core.ActionNone, false},
	}

	for _, tt := range tests {
		got, quit := km.MapKey(tt.msg)
		if got != tt.want || quit != tt.quit {
			t.Errorf("MapKey(%q) = %v, %v; want %v, %v", tt.msg.String(), got, quit, tt.want, tt.quit)
		}
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()
	if got := km.MapKeyToMenuAction(tea.KeyMsg{Type: tea.KeyTab}); got != MenuActionScoreboard {
		t.Errorf("tab = %v, want MenuActionScoreboard", got)
	}
	if got := km.MapKeyToMenuAction(runeKey("j")); got != MenuActionDown {
		t.Errorf("j = %v, want MenuActionDown", got)
	}
}

func TestModelSendsKeysImmediately(t *testing.T) {
	game := &stubGame{}
	m := NewModel(game, testConfig(), Options{})
	m.Init()

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m, _ = update(t, m, runeKey("a"))
	m, _ = update(t, m, runeKey("2"))

	want := []core.Action{core.ActionUp, core.ActionLeft, core.ActionMode2}
	if !slices.Equal(game.actions, want) {
		t.Errorf("actions = %v, want %v", game.actions, want)
	}
	if game.steps != 0 {
		t.Errorf("steps = %d, want no ticks from key presses", game.steps)
	}

	_, cmd := update(t, m, TickMsg{})
	if game.steps != 1 || cmd == nil {
		t.Errorf("tick should step once and schedule the next tick")
	}
}

func TestModelSavesResultOnce(t *testing.T) {
	store := openStore(t)
	game := &stubGame{}
	m := NewModel(game, testConfig(), Options{Store: store})
	m.Init()

	m, _ = update(t, m, TickMsg{})
	game.state = core.GameState{Score: 120, Elapsed: 42, Mode: "hard", GameOver: true}
	m, _ = update(t, m, TickMsg{})
	m, _ = update(t, m, TickMsg{})

	scores, err := store.TopScores("hard", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 1 || scores[0].Score != 120 || scores[0].TimeSecs != 42 {
		t.Errorf("scores = %+v, want one 120 point game", scores)
	}

	rec, _ := store.Records("hard")
	if rec.BestScore != 120 || rec.LastTime != 42 {
		t.Errorf("record = %+v", rec)
	}
	if !strings.Contains(m.statusLine(), "New best!") {
		t.Errorf("status line %q should announce the new best", m.statusLine())
	}

	// A new game clears the saved flag, so the next finish is recorded too.
	game.state = core.GameState{Mode: "hard"}
	m, _ = update(t, m, TickMsg{})
	game.state = core.GameState{Score: 60, Elapsed: 10, Mode: "hard", GameOver: true}
	m, _ = update(t, m, TickMsg{})

	rec, _ = store.Records("hard")
	if rec.BestScore != 120 || rec.LastScore != 60 {
		t.Errorf("record after second game = %+v", rec)
	}
	if strings.Contains(m.statusLine(), "New best!") {
		t.Error("second game should not be a new best")
	}
}

func TestModelSeedsBestFromStore(t *testing.T) {
	store := openStore(t)
	if _, err := store.RecordResult("hard", 900, 100); err != nil {
		t.Fatalf("RecordResult() failed: %v", err)
	}
	m := NewModel(&stubGame{}, testConfig(), Options{Store: store})
	if m.config.BestScore != 900 {
		t.Errorf("BestScore = %d, want 900", m.config.BestScore)
	}
}

func TestModelBackOnlyWhenStopped(t *testing.T) {
	game := &stubGame{}
	m := NewModel(game, testConfig(), Options{})
	m.embedded = true
	m.Init()

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.BackToMenu() {
		t.Fatal("back while playing should be ignored")
	}

	game.state.GameOver = true
	m, _ = update(t, m, TickMsg{})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Error("back after game over should return to the menu")
	}
}

func TestModelQuit(t *testing.T) {
	m := NewModel(&stubGame{}, testConfig(), Options{})
	m, cmd := update(t, m, runeKey("q"))
	if !m.IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
	if m.View() != "" {
		t.Error("quitting model should render nothing")
	}
}

func TestModelSubmitFlow(t *testing.T) {
	store := openStore(t)
	srv := leaderboard.NewServer(store, log.New(io.Discard))
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	game := &stubGame{}
	client := leaderboard.NewClient(ts.URL, ts.Client())
	m := NewModel(game, testConfig(), Options{Leaderboard: client, Player: "Rex!"})
	m.Init()

	// Submit is ignored while playing.
	m, _ = update(t, m, runeKey("u"))
	if m.submit != nil {
		t.Fatal("submit dialog opened during play")
	}

	game.state = core.GameState{Score: 300, Elapsed: 75, Mode: "hard", GameOver: true}
	m, _ = update(t, m, TickMsg{})
	if !strings.Contains(m.statusLine(), "U: submit") {
		t.Errorf("status line %q should offer submission", m.statusLine())
	}

	m, _ = update(t, m, runeKey("u"))
	if m.submit == nil {
		t.Fatal("submit dialog did not open")
	}
	if got := m.submit.input.Value(); got != "Rex" {
		t.Errorf("prefilled name = %q, want Rex", got)
	}
	if !strings.Contains(m.View(), "Submit score") {
		t.Error("dialog view missing title")
	}

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter should start the submission")
	}
	m, _ = update(t, m, cmd())

	if m.submit != nil {
		t.Error("dialog should close after the result")
	}
	if !strings.Contains(m.statusLine(), "Submitted as Rex") {
		t.Errorf("status line = %q", m.statusLine())
	}

	entries, err := store.TopEntries(context.Background(), "hard", 10)
	if err != nil {
		t.Fatalf("TopEntries() failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "Rex" || entries[0].Score != 300 || entries[0].Time != 75 {
		t.Errorf("entries = %+v", entries)
	}

	// Only one submission per finished game.
	m, _ = update(t, m, runeKey("u"))
	if m.submit != nil {
		t.Error("second submission should not open the dialog")
	}
}

func TestModelSubmitUnavailable(t *testing.T) {
	game := &stubGame{}
	client := leaderboard.NewClient("http://127.0.0.1:1", nil)
	m := NewModel(game, testConfig(), Options{Leaderboard: client, Player: "Ann"})
	m.Init()
	game.state = core.GameState{Score: 10, Mode: "easy", GameOver: true}
	m, _ = update(t, m, TickMsg{})

	m, _ = update(t, m, runeKey("u"))
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(t, m, cmd())

	if !strings.Contains(m.statusLine(), "Leaderboard unavailable") {
		t.Errorf("status line = %q", m.statusLine())
	}
	if m.submitted {
		t.Error("failed submission should allow a retry")
	}
}

func TestSubmitRejectsEmptyName(t *testing.T) {
	game := &stubGame{}
	client := leaderboard.NewClient("http://127.0.0.1:1", nil)
	m := NewModel(game, testConfig(), Options{Leaderboard: client, Player: "!!"})
	m.Init()
	game.state = core.GameState{Score: 10, Mode: "easy", GameOver: true}
	m, _ = update(t, m, TickMsg{})
	m, _ = update(t, m, runeKey("u"))

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("empty name should not be sent")
	}
	if m.submit == nil || m.submit.err == "" {
		t.Error("dialog should stay open with an error")
	}
}

func TestMenuNumberKeySelects(t *testing.T) {
	store := openStore(t)
	if _, err := store.RecordResult("medium", 450, 80); err != nil {
		t.Fatalf("RecordResult() failed: %v", err)
	}
	modes := []string{"easy", "medium", "hard", "insane"}
	menu := NewMenuModel(store, testConfig(), modes)
	if menu.cursor != 2 {
		t.Errorf("cursor = %d, want it on the configured difficulty", menu.cursor)
	}
	if !strings.Contains(menu.View(), "medium") {
		t.Error("menu view should list modes")
	}

	next, cmd := menu.Update(runeKey("2"))
	menu = next.(MenuModel)
	if cmd == nil || menu.Selected() == nil {
		t.Fatal("number key should select")
	}
	cfg := menu.Config()
	if cfg.Difficulty != "medium" || cfg.BestScore != 450 {
		t.Errorf("config = %+v", cfg)
	}
}

func TestSessionFlow(t *testing.T) {
	modes := []string{"easy", "medium", "hard", "insane"}
	s := NewSessionModel(stubID, testConfig(), modes, Options{})

	next, _ := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	s = next.(SessionModel)
	if s.screen != screenGame {
		t.Fatalf("screen = %v, want game", s.screen)
	}
	game := s.gameModel.game.(*stubGame)
	if game.resets != 1 || game.state.Mode != "hard" {
		t.Errorf("game not started on chosen mode: %+v", game)
	}

	game.state.GameOver = true
	next, _ = s.Update(TickMsg{})
	s = next.(SessionModel)
	next, _ = s.Update(tea.KeyMsg{Type: tea.KeyEsc})
	s = next.(SessionModel)
	if s.screen != screenMenu {
		t.Fatalf("screen = %v, want menu", s.screen)
	}

	next, _ = s.Update(tea.KeyMsg{Type: tea.KeyTab})
	s = next.(SessionModel)
	if s.screen != screenScores {
		t.Fatalf("screen = %v, want scores", s.screen)
	}
	next, _ = s.Update(tea.KeyMsg{Type: tea.KeyEsc})
	s = next.(SessionModel)
	if s.screen != screenMenu {
		t.Errorf("screen = %v, want menu after leaving scores", s.screen)
	}
}

func TestScoreboardLocal(t *testing.T) {
	store := openStore(t)
	store.SaveScore("easy", 70, 20, false)
	store.SaveScore("easy", 90, 30, true)
	store.RecordResult("easy", 90, 30)

	sb := NewScoreboardModel(store, nil, []string{"easy", "medium"}, 100, 30)
	view := sb.View()
	if !strings.Contains(view, "LOCAL HIGH SCORES - easy") {
		t.Errorf("missing title in view:\n%s", view)
	}
	if !strings.Contains(view, "Best 90 (0:30)") {
		t.Errorf("missing record line in view:\n%s", view)
	}

	// Global toggle is disabled without a client.
	next, _ := sb.Update(runeKey("g"))
	sb = next.(ScoreboardModel)
	if sb.global {
		t.Error("global view should need a leaderboard client")
	}

	next, _ = sb.Update(tea.KeyMsg{Type: tea.KeyTab})
	sb = next.(ScoreboardModel)
	if sb.currentMode() != "medium" || len(sb.scores) != 0 {
		t.Errorf("mode = %s with %d scores", sb.currentMode(), len(sb.scores))
	}
}

func TestScoreboardGlobal(t *testing.T) {
	store := openStore(t)
	srv := leaderboard.NewServer(store, log.New(io.Discard))
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	client := leaderboard.NewClient(ts.URL, ts.Client())
	if _, err := client.Submit(context.Background(), leaderboard.Prepare("Ann", 500, 60, "easy")); err != nil {
		t.Fatalf("Submit() failed: %v", err)
	}

	sb := NewScoreboardModel(nil, client, []string{"easy"}, 100, 30)
	next, cmd := sb.Update(runeKey("g"))
	sb = next.(ScoreboardModel)
	if !sb.global || cmd == nil {
		t.Fatal("g should switch to the global list and fetch it")
	}
	next, _ = sb.Update(cmd())
	sb = next.(ScoreboardModel)
	if len(sb.entries) != 1 || sb.entries[0].Name != "Ann" {
		t.Errorf("entries = %+v", sb.entries)
	}
	if !strings.Contains(sb.View(), "Ann") {
		t.Error("global view should list names")
	}
}
