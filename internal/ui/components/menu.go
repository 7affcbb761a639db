package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/cogniq/internal/ui/theme"
)

// MenuItem is one entry of a Menu. Key is an optional single-key shortcut
// that selects and activates the item.
type MenuItem struct {
	Label    string
	Key      string
	Hint     string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical list of actions. Navigation wraps around and skips
// disabled items.
type Menu struct {
	Items    []MenuItem
	Selected int
}

func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items, Selected: -1}
	m.Selected = m.step(-1, 1)
	if m.Selected < 0 {
		m.Selected = 0
	}
	return m
}

// step returns the next enabled index from "from" in direction dir, or
// from itself when every other item is disabled.
func (m Menu) step(from, dir int) int {
	n := len(m.Items)
	for i := 1; i <= n; i++ {
		j := ((from+dir*i)%n + n) % n
		if !m.Items[j].Disabled {
			return j
		}
	}
	return from
}

// Current returns the selected item.
func (m Menu) Current() (MenuItem, bool) {
	if m.Selected < 0 || m.Selected >= len(m.Items) {
		return MenuItem{}, false
	}
	return m.Items[m.Selected], true
}

// Labels returns the item labels in order.
func (m Menu) Labels() []string {
	out := make([]string, len(m.Items))
	for i, it := range m.Items {
		out[i] = it.Label
	}
	return out
}

func (m Menu) activate() tea.Cmd {
	item, ok := m.Current()
	if !ok || item.Disabled || item.Action == nil {
		return nil
	}
	return item.Action()
}

func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || len(m.Items) == 0 {
		return m, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k", "shift+tab":
		m.Selected = m.step(m.Selected, -1)
	case "down", "j", "tab":
		m.Selected = m.step(m.Selected, 1)
	case "home":
		m.Selected = m.step(-1, 1)
	case "end":
		m.Selected = m.step(len(m.Items), -1)
	case "enter", "space":
		return m, m.activate()
	default:
		for i, it := range m.Items {
			if it.Key != "" && it.Key == key && !it.Disabled {
				m.Selected = i
				return m, m.activate()
			}
		}
	}
	return m, nil
}

// View renders the items one per line with the selected item's hint below.
func (m Menu) View() string {
	var b strings.Builder
	for i, item := range m.Items {
		key := "   "
		if item.Key != "" {
			key = "[" + item.Key + "]"
		}
		switch {
		case item.Disabled:
			b.WriteString(theme.Muted.Render("    " + key + " " + item.Label))
		case i == m.Selected:
			b.WriteString(theme.Selected.Render("  ▸ " + key + " " + item.Label))
		default:
			b.WriteString(theme.Unselected.Render("    " + key + " " + item.Label))
		}
		b.WriteString("\n")
	}
	if item, ok := m.Current(); ok && item.Hint != "" {
		b.WriteString("\n" + theme.Hint.Render("    "+item.Hint) + "\n")
	}
	return b.String()
}
