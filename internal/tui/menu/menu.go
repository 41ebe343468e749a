// ABOUTME: Keyboard-driven selection list for service and navigation menus
// ABOUTME: Emits the chosen item so the app can route to the next screen

package menu

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mash20-dot/nkwabiz-frontend-sub000/internal/tui/styles"
)

// Item is one selectable entry. Key is an optional single-key shortcut.
type Item struct {
	Key         string
	Label       string
	Description string
	Value       string
}

// SelectedMsg is sent when an item is chosen
type SelectedMsg struct {
	Item Item
}

// CancelledMsg is sent when the menu is dismissed
type CancelledMsg struct{}

// Menu is a vertical list with a cursor
type Menu struct {
	title  string
	items  []Item
	cursor int
}

// New creates a menu over items
func New(title string, items []Item) *Menu {
	return &Menu{title: title, items: items}
}

// Items returns the menu entries
func (m *Menu) Items() []Item {
	return m.items
}

// Cursor returns the highlighted row
func (m *Menu) Cursor() int {
	return m.cursor
}

// Init implements tea.Model
func (m *Menu) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m *Menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || len(m.items) == 0 {
		return m, nil
	}

	switch key.String() {
	case "up", "k":
		m.cursor = (m.cursor - 1 + len(m.items)) % len(m.items)
	case "down", "j":
		m.cursor = (m.cursor + 1) % len(m.items)
	case "enter":
		return m, selected(m.items[m.cursor])
	case "esc":
		return m, func() tea.Msg { return CancelledMsg{} }
	default:
		for i, item := range m.items {
			if item.Key != "" && key.String() == item.Key {
				m.cursor = i
				return m, selected(item)
			}
		}
	}
	return m, nil
}

func selected(item Item) tea.Cmd {
	return func() tea.Msg { return SelectedMsg{Item: item} }
}

// View implements tea.Model
func (m *Menu) View() string {
	var sb strings.Builder

	if m.title != "" {
		sb.WriteString(styles.Title.Render(m.title))
		sb.WriteString("\n")
	}

	keyStyle := styles.KeyStyle
	descStyle := lipgloss.NewStyle().Foreground(styles.Muted)

	for i, item := range m.items {
		pointer := "  "
		label := item.Label
		if i == m.cursor {
			pointer = styles.Selected.Render("> ")
			label = styles.Selected.Render(label)
		}

		shortcut := "   "
		if item.Key != "" {
			shortcut = keyStyle.Render(fmt.Sprintf("[%s]", item.Key))
		}

		sb.WriteString(fmt.Sprintf("%s%s %s", pointer, shortcut, label))
		if item.Description != "" {
			sb.WriteString("  " + descStyle.Render(item.Description))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
