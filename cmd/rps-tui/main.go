package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/robalobadob/rps/internal/game"
	"github.com/robalobadob/rps/internal/labels"
	"github.com/robalobadob/rps/internal/tui"
)

func main() {
	session := game.NewSession(game.RandomPicker{}, labels.Messages{})
	p := tea.NewProgram(tui.New(session).AsTeaModel(), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
