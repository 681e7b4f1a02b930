package components

import (
	"fmt"
	"math"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/academy/internal/ui/theme"
)

// Meter is a one-line fill bar showing Done out of Total.
type Meter struct {
	Label       string
	Done, Total int
	Width       int
	ShowPercent bool
}

// Percent is Done/Total rounded and clamped to 0..100. An empty Total
// reads as 0.
func (m Meter) Percent() int {
	if m.Total <= 0 {
		return 0
	}
	pct := int(math.Round(float64(m.Done) * 100 / float64(m.Total)))
	return min(max(pct, 0), 100)
}

func (m Meter) View() string {
	var head, tail string
	if m.Label != "" {
		head = lipgloss.NewStyle().Foreground(theme.Text).Render(m.Label) + "  "
	}
	if m.ShowPercent {
		tail = lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("%5d%%", m.Percent()))
	}

	cells := max(m.Width-lipgloss.Width(head)-lipgloss.Width(tail), 4)
	lit := cells * m.Percent() / 100

	fill := lipgloss.NewStyle().Foreground(theme.Primary).Render(strings.Repeat("█", lit))
	rest := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("░", cells-lit))
	return head + fill + rest + tail
}
