package view

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type CommonModel struct {
	Width  int
	Height int
}

// Screen is a view reachable from the main menu.
type Screen interface {
	tea.Model
	Title() string
	ShortHelp() string
}

var titleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("229")).
	Background(lipgloss.Color("57")).
	Padding(0, 1)

// Frame renders a screen under its title with its key help below.
func Frame(s Screen) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(s.Title()),
		s.View(),
		faintStyle.PaddingLeft(1).Render(s.ShortHelp()),
	)
}

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}
