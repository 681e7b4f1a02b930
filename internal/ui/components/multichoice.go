package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/academy/internal/ui/theme"
)

// MultiChoice renders one multiple-choice question with a movable cursor.
// Choosing an answer is left to the owner; Chosen only marks it.
type MultiChoice struct {
	Question string
	Options  []string
	Cursor   int
	Chosen   int // -1 when nothing is chosen
	Locked   bool
}

// NewMultiChoice creates a multiple-choice view with no answer chosen.
func NewMultiChoice(question string, options []string) MultiChoice {
	return MultiChoice{
		Question: question,
		Options:  options,
		Chosen:   -1,
	}
}

// Update moves the cursor with the arrow keys, j/k, or the option number.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Locked {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Options)-1 {
			m.Cursor++
		}
	default:
		if i, ok := OptionIndex(key); ok && i < len(m.Options) {
			m.Cursor = i
		}
	}

	return m, nil
}

// OptionIndex maps "1".."9" to an option index.
func OptionIndex(key string) (int, bool) {
	if len(key) != 1 || key[0] < '1' || key[0] > '9' {
		return 0, false
	}
	return int(key[0] - '1'), true
}

// View renders the question and its options.
func (m MultiChoice) View() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(m.Question))
	b.WriteString("\n\n")

	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Cursor && !m.Locked {
			prefix = "▸ "
		}
		mark := "○"
		if i == m.Chosen {
			mark = "●"
		}
		line := fmt.Sprintf("%s%s %d)  %s", prefix, mark, i+1, opt)

		switch {
		case i == m.Chosen:
			b.WriteString(theme.Selected.Render(line))
		case i == m.Cursor && !m.Locked:
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(line))
		default:
			b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(line))
		}
		b.WriteString("\n")
	}

	return b.String()
}
