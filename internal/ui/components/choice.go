package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cogniq/internal/ui/theme"
)

// ChoiceMark is how an option is highlighted once an answer is in.
type ChoiceMark int

const (
	MarkNone ChoiceMark = iota
	MarkCorrect
	MarkIncorrect
)

// ChoiceList is a keyboard-driven single-choice selector. Number keys pick
// an option directly; arrows move the cursor.
type ChoiceList struct {
	Options  []string
	Selected int

	// Locked ignores input while feedback is displayed.
	Locked bool
	Marks  map[int]ChoiceMark
}

// ChosenMsg is emitted when the learner picks an option.
type ChosenMsg struct {
	Index int
}

// NewChoiceList creates a selector over options.
func NewChoiceList(options []string) ChoiceList {
	return ChoiceList{Options: options, Marks: map[int]ChoiceMark{}}
}

// Update handles navigation and selection.
func (c ChoiceList) Update(msg tea.Msg) (ChoiceList, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || c.Locked || len(c.Options) == 0 {
		return c, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if c.Selected > 0 {
			c.Selected--
		}
		return c, nil
	case "down", "j":
		if c.Selected < len(c.Options)-1 {
			c.Selected++
		}
		return c, nil
	case "enter":
		return c, choose(c.Selected)
	}

	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		if i := int(key[0] - '1'); i < len(c.Options) {
			c.Selected = i
			return c, choose(i)
		}
	}
	return c, nil
}

func choose(i int) tea.Cmd {
	return func() tea.Msg { return ChosenMsg{Index: i} }
}

// View renders the options.
func (c ChoiceList) View() string {
	var b strings.Builder
	for i, opt := range c.Options {
		prefix := "  "
		if i == c.Selected && !c.Locked {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d)  %s", prefix, i+1, opt)

		var st lipgloss.Style
		switch {
		case c.Marks[i] == MarkCorrect:
			st = theme.Correct
		case c.Marks[i] == MarkIncorrect:
			st = theme.Incorrect
		case c.Locked:
			st = theme.Muted
		case i == c.Selected:
			st = theme.Selected
		default:
			st = theme.Unselected
		}
		b.WriteString(st.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
