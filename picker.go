package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pwrate/rate"
)

var (
	pickerTitleStyle    = lipgloss.NewStyle().Bold(true)
	pickerSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	pickerHelpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

type pickerModel struct {
	rates   rate.Set
	current int
	cursor  int
	chosen  bool
	done    bool
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.rates)-1 {
			m.cursor++
		}
	case "enter":
		m.chosen = true
		m.done = true
		return m, tea.Quit
	case "q", "esc", "ctrl+c":
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m pickerModel) View() string {
	if m.done {
		return ""
	}
	s := pickerTitleStyle.Render("Select sample rate") + "\n\n"
	for i, r := range m.rates {
		line := fmt.Sprintf("%d Hz", r)
		if r == m.current {
			line += " (current)"
		}
		if i == m.cursor {
			s += pickerSelectedStyle.Render("> "+line) + "\n"
		} else {
			s += "  " + line + "\n"
		}
	}
	s += "\n" + pickerHelpStyle.Render("enter: apply • q: abort")
	return s
}

// pickRate runs the interactive selector. ok is false when the user
// aborted.
func pickRate(allowed rate.Set, current int) (selected int, ok bool, err error) {
	m := pickerModel{rates: allowed, current: current}
	for i, r := range allowed {
		if r == current {
			m.cursor = i
		}
	}

	out, err := tea.NewProgram(m).Run()
	if err != nil {
		return 0, false, fmt.Errorf("picker: %w", err)
	}
	final := out.(pickerModel)
	if !final.chosen {
		return 0, false, nil
	}
	return final.rates[final.cursor], true, nil
}
