// Package layout renders the chrome around every screen: header, footer
// and the size guard.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/academy/internal/ui/theme"
)

const (
	MinWidth  = 80
	MinHeight = 24

	// CompactWidthThreshold is the width below which side panels stack
	// under the main column.
	CompactWidthThreshold = 110
)

// KeyHint is one "key description" pair in the footer.
type KeyHint struct {
	Key         string
	Description string
}

func IsCompactWidth(width int) bool {
	return width < CompactWidthThreshold
}

func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage fills the terminal with a resize prompt.
func RenderMinSizeMessage(width, height int) string {
	body := fmt.Sprintf("This window is %d×%d.\nAcademy needs at least %d×%d.\n\nResize to continue, or press Ctrl+C.",
		width, height, MinWidth, MinHeight)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Text).Align(lipgloss.Center).Render(body))
}

var bar = lipgloss.NewStyle().
	Background(theme.BgCard).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(theme.Border).
	Padding(0, 1)

// spread places left and right at the edges of a line width cells wide.
func spread(left, right string, width int) string {
	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}

// RenderHeader shows the app name and screen title on the left and the
// learner's streak and overall completion on the right.
func RenderHeader(title string, streak, percent int, width int) string {
	left := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("Academy")
	if title != "" {
		left += lipgloss.NewStyle().Foreground(theme.TextDim).Render("  /  ") +
			lipgloss.NewStyle().Foreground(theme.Text).Render(title)
	}
	right := lipgloss.NewStyle().Foreground(theme.Accent).Render("🔥 "+StreakLabel(streak)) +
		"   " +
		lipgloss.NewStyle().Foreground(theme.Success).Render(fmt.Sprintf("%d%% complete", percent))

	inner := max(width-bar.GetHorizontalFrameSize(), 0)
	return bar.Width(width).Render(spread(left, right, inner))
}

// StreakLabel formats a streak count as "1 day" or "N days".
func StreakLabel(streak int) string {
	if streak == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", streak)
}

func RenderFooter(hints []KeyHint, width int) string {
	key := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	desc := lipgloss.NewStyle().Foreground(theme.TextDim)

	var b strings.Builder
	for i, h := range hints {
		if i > 0 {
			b.WriteString("   ")
		}
		b.WriteString(key.Render(h.Key) + " " + desc.Render(h.Description))
	}
	return bar.Width(width).Render(b.String())
}

// RenderFrame stacks header, body and footer. body is called with the
// space left between the two bars.
func RenderFrame(header, footer string, width, height int, body func(w, h int) string) string {
	h := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := lipgloss.NewStyle().Width(width).Height(h).MaxHeight(h).Render(body(width, h))
	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}
