// ABOUTME: Tests for the selection menu
// ABOUTME: Validates cursor movement, shortcuts, and emitted messages

package menu

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func testItems() []Item {
	return []Item{
		{Key: "s", Label: "SMS", Value: "sms"},
		{Key: "i", Label: "Inventory", Value: "inventory"},
	}
}

func press(m *Menu, key string) tea.Msg {
	var msg tea.KeyMsg
	switch key {
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	_, cmd := m.Update(msg)
	if cmd == nil {
		return nil
	}
	return cmd()
}

func TestMenuCursorWraps(t *testing.T) {
	m := New("Choose", testItems())

	press(m, "up")
	if m.Cursor() != 1 {
		t.Errorf("expected cursor to wrap to 1, got %d", m.Cursor())
	}
	press(m, "down")
	if m.Cursor() != 0 {
		t.Errorf("expected cursor to wrap to 0, got %d", m.Cursor())
	}
}

func TestMenuEnterSelects(t *testing.T) {
	m := New("Choose", testItems())
	press(m, "down")

	msg := press(m, "enter")
	sel, ok := msg.(SelectedMsg)
	if !ok {
		t.Fatalf("expected SelectedMsg, got %T", msg)
	}
	if sel.Item.Value != "inventory" {
		t.Errorf("expected inventory, got %s", sel.Item.Value)
	}
}

func TestMenuShortcutSelects(t *testing.T) {
	m := New("Choose", testItems())

	msg := press(m, "s")
	sel, ok := msg.(SelectedMsg)
	if !ok {
		t.Fatalf("expected SelectedMsg, got %T", msg)
	}
	if sel.Item.Value != "sms" {
		t.Errorf("expected sms, got %s", sel.Item.Value)
	}
}

func TestMenuEscCancels(t *testing.T) {
	m := New("Choose", testItems())
	if _, ok := press(m, "esc").(CancelledMsg); !ok {
		t.Error("expected CancelledMsg on esc")
	}
}

func TestMenuUnknownKeyIgnored(t *testing.T) {
	m := New("Choose", testItems())
	if msg := press(m, "z"); msg != nil {
		t.Errorf("expected no message, got %T", msg)
	}
}

func TestMenuView(t *testing.T) {
	m := New("Choose a service", testItems())
	view := m.View()
	for _, want := range []string{"Choose a service", "SMS", "Inventory", "[s]"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q\n%s", want, view)
		}
	}
}

func TestMenuEmpty(t *testing.T) {
	m := New("", nil)
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter}); cmd != nil {
		t.Error("expected no command from empty menu")
	}
}
