// Package tui is the terminal version of the photo page: pick a teacher from
// a list and see which photo resolves, or why none does.
package tui

import (
	"teachersday/internal/gallery"

	tea "github.com/charmbracelet/bubbletea"
)

func Run(g *gallery.Gallery) error {
	_, err := tea.NewProgram(newModel(g), tea.WithAltScreen()).Run()
	return err
}
