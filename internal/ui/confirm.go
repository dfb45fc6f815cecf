package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// confirmModel is a minimal y/n prompt.
type confirmModel struct {
	prompt    string
	confirmed bool
	done      bool
}

// Init implements tea.Model
func (m confirmModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.done = true
		return m, tea.Quit
	case tea.KeyRunes:
		switch string(keyMsg.Runes) {
		case "y", "Y":
			m.confirmed = true
			m.done = true
			return m, tea.Quit
		case "n", "N":
			m.done = true
			return m, tea.Quit
		}
	}

	return m, nil
}

// View implements tea.Model
func (m confirmModel) View() string {
	if m.done {
		return ""
	}
	return fmt.Sprintf("%s %s ", m.prompt, HintStyle.Render("[y/N]"))
}

// Confirm shows a y/n prompt and reports the choice. Esc, Ctrl-C and
// anything but "y" decline.
func Confirm(prompt string) (bool, error) {
	p := tea.NewProgram(confirmModel{prompt: prompt})

	finalModel, err := p.Run()
	if err != nil {
		return false, fmt.Errorf("error running confirmation prompt: %w", err)
	}

	return finalModel.(confirmModel).confirmed, nil
}
