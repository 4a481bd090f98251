package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/langtrainer/internal/ui/theme"
)

// MenuItem is one entry of a Menu. Key, when set, activates the item
// directly.
type MenuItem struct {
	Label    string
	Key      string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical list of actions. Disabled items are skipped by the
// cursor and cannot be activated.
type Menu struct {
	Items    []MenuItem
	Selected int
}

func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items, Selected: -1}
	m.step(1)
	return m
}

// step moves the cursor to the next enabled item in direction dir and
// stays put when there is none.
func (m *Menu) step(dir int) {
	for i := m.Selected + dir; i >= 0 && i < len(m.Items); i += dir {
		if !m.Items[i].Disabled {
			m.Selected = i
			return
		}
	}
	if m.Selected < 0 {
		m.Selected = 0
	}
}

func (m Menu) activate(i int) tea.Cmd {
	if i < 0 || i >= len(m.Items) {
		return nil
	}
	item := m.Items[i]
	if item.Disabled || item.Action == nil {
		return nil
	}
	return item.Action()
}

func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		m.step(-1)
	case "down", "j":
		m.step(1)
	case "enter":
		return m, m.activate(m.Selected)
	default:
		for i, item := range m.Items {
			if item.Key != "" && item.Key == key && !item.Disabled {
				m.Selected = i
				return m, m.activate(i)
			}
		}
	}
	return m, nil
}

func (m Menu) View() string {
	lines := make([]string, 0, len(m.Items))
	for i, item := range m.Items {
		if item.Disabled {
			lines = append(lines, theme.Dim.Render("    "+item.Label))
			continue
		}
		var line string
		if i == m.Selected {
			line = theme.Selected.Render("  ▸ " + item.Label)
		} else {
			line = theme.Unselected.Render("    " + item.Label)
		}
		if item.Key != "" {
			line += theme.Dim.Render("  " + item.Key)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n") + "\n"
}
