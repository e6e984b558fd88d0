package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/asciiman/internal/core"
	"github.com/vovakirdan/asciiman/internal/leaderboard"
)

const submitTimeout = 10 * time.Second

// submitDialog asks for a name before posting a score.
type submitDialog struct {
	input   textinput.Model
	pending bool
	err     string
}

// submitResultMsg carries the outcome of a leaderboard submission.
type submitResultMsg struct {
	entry leaderboard.Entry
	err   error
}

func newSubmitDialog(name string) *submitDialog {
	ti := textinput.New()
	ti.Placeholder = "your name"
	ti.CharLimit = leaderboard.MaxNameLen
	ti.Width = leaderboard.MaxNameLen + 1
	ti.SetValue(leaderboard.SanitizeName(name))
	ti.Focus()
	return &submitDialog{input: ti}
}

func submitCmd(c *leaderboard.Client, s leaderboard.Submission) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
		defer cancel()
		entry, err := c.Submit(ctx, s)
		return submitResultMsg{entry: entry, err: err}
	}
}

// View draws the dialog centered in a width x height area.
func (d *submitDialog) View(st core.GameState, width, height int) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	hintStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	errStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("9"))
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(1, 3)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Submit score"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Mode: %s  Score: %d  Time: %s\n\n", st.Mode, st.Score, formatSecs(st.Elapsed))
	b.WriteString(d.input.View())
	b.WriteString("\n\n")

	switch {
	case d.pending:
		b.WriteString(hintStyle.Render("Submitting..."))
	case d.err != "":
		b.WriteString(errStyle.Render(d.err))
	default:
		b.WriteString(hintStyle.Render("Enter: submit  Esc: cancel"))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, boxStyle.Render(b.String()))
}

// formatSecs renders whole seconds as m:ss.
func formatSecs(secs int) string {
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
