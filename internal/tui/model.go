// Package tui renders the game in a terminal with bubbletea.
//
// The model drives a single game.Session: key presses play rounds or reset,
// and the session's notification is shown in a status line that clears
// itself after a few seconds.
package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/robalobadob/rps/internal/game"
	"github.com/robalobadob/rps/internal/labels"
)

// statusTTL is how long a notification stays in the status line.
const statusTTL = 3 * time.Second

// clearStatusMsg expires the notification with the matching sequence number.
type clearStatusMsg struct{ seq int }

// Model is the bubbletea model for the game screen.
type Model struct {
	session *game.Session
	keys    keyMap
	help    help.Model

	status    *game.Notification
	statusSeq int
}

// New builds a Model over s.
func New(s *game.Session) Model {
	return Model{session: s, keys: defaultKeys(), help: help.New()}
}

// AsTeaModel returns m as a tea.Model for tea.NewProgram.
func (m Model) AsTeaModel() tea.Model { return m }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.status = nil
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Scissors):
			m.session.PlayRound(game.Scissors)
		case key.Matches(msg, m.keys.Rock):
			m.session.PlayRound(game.Rock)
		case key.Matches(msg, m.keys.Paper):
			m.session.PlayRound(game.Paper)
		case key.Matches(msg, m.keys.Reset):
			m.session.Reset()
		default:
			return m, nil
		}
		return m.takeStatus()
	}
	return m, nil
}

// takeStatus moves the session's notification into the status line and
// schedules its expiry.
func (m Model) takeStatus() (tea.Model, tea.Cmd) {
	n, ok := m.session.TakeNotification()
	if !ok {
		return m, nil
	}
	m.status = &n
	m.statusSeq++
	seq := m.statusSeq
	return m, tea.Tick(statusTTL, func(time.Time) tea.Msg { return clearStatusMsg{seq: seq} })
}

func (m Model) View() string {
	snap := m.session.Snapshot()
	var b strings.Builder

	b.WriteString(styles.Title.Render(labels.Title))
	b.WriteString("\n\n")
	b.WriteString(styles.Label.Render(labels.You+": ") + labels.Pick(snap.User))
	b.WriteString("    ")
	b.WriteString(styles.Label.Render(labels.Computer+": ") + labels.Pick(snap.Computer))
	b.WriteString("\n\n")
	b.WriteString(outcomeStyle(snap.Outcome).Render(labels.Outcome(snap.Outcome)))
	b.WriteString("\n\n")

	b.WriteString(styles.Muted.Render(labels.HistoryHeading))
	b.WriteString("\n")
	if len(snap.History) == 0 {
		b.WriteString(styles.Muted.Render(labels.NoHistory))
		b.WriteString("\n")
	}
	for _, e := range snap.History {
		row := lipgloss.JoinHorizontal(lipgloss.Top,
			lipgloss.NewStyle().Width(18).Render(labels.You+": "+labels.Pick(e.User)),
			lipgloss.NewStyle().Width(22).Render(labels.Computer+": "+labels.Pick(e.Computer)),
			outcomeStyle(e.Outcome).Render(labels.Outcome(e.Outcome)),
		)
		b.WriteString(row)
		b.WriteString("\n")
	}

	out := styles.Card.Render(strings.TrimRight(b.String(), "\n"))
	if m.status != nil {
		st := styles.Info
		if m.status.Level == game.LevelSuccess {
			st = styles.Success
		}
		out += "\n" + st.Render(m.status.Message)
	}
	return out + "\n" + m.help.View(m.keys)
}

func outcomeStyle(o game.Outcome) lipgloss.Style {
	switch o {
	case game.OutcomeWin:
		return styles.Win
	case game.OutcomeLose:
		return styles.Lose
	}
	return styles.Tie
}
