package dashboard

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/dustin/go-humanize"

	"github.com/abhisek/academy/internal/catalog"
	"github.com/abhisek/academy/internal/progress"
	"github.com/abhisek/academy/internal/ui/components"
	"github.com/abhisek/academy/internal/ui/layout"
	"github.com/abhisek/academy/internal/ui/theme"
)

func (d *DashboardScreen) View(width, height int) string {
	p := d.store.Snapshot()
	lessons := d.catalog.Lessons()
	cw := min(width-4, 100)

	var sections []string
	sections = append(sections, renderHero(p, len(lessons), cw))
	sections = append(sections, renderUpNext(p, lessons, cw))

	used := lipgloss.Height(strings.Join(sections, "\n\n")) + 4
	sections = append(sections, d.renderTimeline(p, lessons, cw, max(height-used, 3)))

	content := strings.Join(sections, "\n\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, content)
}

func renderHero(p progress.Progress, total, width int) string {
	badge := theme.Badge.Render("Neural Networks: Zero to Hero")
	title := theme.Title.Render("Academy")

	bar := components.Meter{Label: "Course progress", Done: p.CompletedCount(), Total: total, Width: width, ShowPercent: true}.View()
	count := theme.Subtitle.Render(fmt.Sprintf("%d / %d modules", p.CompletedCount(), total))

	streak := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).
		Render("🔥 " + layout.StreakLabel(p.Streak) + " streak")
	if p.Streak > 0 {
		streak += theme.Hint.Render(fmt.Sprintf("   next milestone: %d days", progress.NextMilestone(p.Streak)))
	}

	last := ""
	if !p.LastCompletion.IsZero() {
		last = theme.Hint.Render("last completion " + humanize.Time(p.LastCompletion))
	}

	lines := []string{badge, title, bar, count, streak}
	if last != "" {
		lines = append(lines, last)
	}
	return strings.Join(lines, "\n")
}

func renderUpNext(p progress.Progress, lessons []catalog.Lesson, width int) string {
	next, _, ok := p.NextLesson(lessons)
	if !ok {
		body := theme.Correct.Render("Course completed!") + "\n" +
			theme.Body.Render("From scalars to Transformers, you are ready to build.")
		return theme.AccentCard.Width(width).BorderForeground(theme.Success).Render(body)
	}

	meta := theme.Hint.Render(strings.Join(nonEmpty(next.Duration, strings.ToUpper(next.Kind.Label())), " · "))
	body := theme.Badge.Render("UP NEXT") + "\n" +
		theme.Heading.Render(next.Title) + "\n" +
		theme.Subtitle.Width(width-4).Render(next.Description) + "\n" +
		meta + "   " + theme.ButtonActive.Render("N  Resume learning")
	return theme.AccentCard.Width(width).Render(body)
}

func (d *DashboardScreen) renderTimeline(p progress.Progress, lessons []catalog.Lesson, width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Heading.Render("Timeline"))
	b.WriteString("\n")

	rows := make([]string, 0, len(lessons))
	cursorRow := 0
	for i, l := range lessons {
		if i == d.cursor {
			cursorRow = len(rows)
		}
		rows = append(rows, d.renderRow(p, lessons, i, l, width))
		if l.ID == d.loadingID && i == d.cursor {
			rows = append(rows, "      "+d.spinner.View()+theme.Hint.Render(" explaining..."))
		}
		if l.ID == d.explainedID {
			rows = append(rows, renderExplanation(d.explanation, width))
		}
	}

	start, end := window(len(rows), cursorRow, height-1)
	b.WriteString(strings.Join(rows[start:end], "\n"))
	return b.String()
}

func (d *DashboardScreen) renderRow(p progress.Progress, lessons []catalog.Lesson, i int, l catalog.Lesson, width int) string {
	locked := progress.IsLocked(lessons, i, p)

	prefix := "  "
	if i == d.cursor {
		prefix = "▸ "
	}

	var icon string
	switch {
	case p.IsCompleted(l.ID):
		icon = theme.Completed.Render("✓")
	case locked:
		icon = theme.Locked.Render("🔒")
	default:
		icon = theme.Badge.Render("●")
	}

	unit := fmt.Sprintf("UNIT %02d", i+1)
	label := fmt.Sprintf("%s  %-8s %s", unit, l.Kind.Label(), l.Title)
	if l.Duration != "" {
		label += "  " + l.Duration
	}
	label = truncate(label, width-6)

	var style lipgloss.Style
	switch {
	case locked:
		style = theme.Locked
	case i == d.cursor:
		style = theme.Selected
	case p.IsCompleted(l.ID):
		style = theme.Subtitle
	default:
		style = theme.Unselected
	}
	return prefix + icon + " " + style.Render(label)
}

func renderExplanation(text string, width int) string {
	body := theme.ChatModel.Bold(true).Render("Why this matters: ") + theme.Body.Render(text)
	return lipgloss.NewStyle().
		PaddingLeft(6).
		Width(width).
		Render(body)
}

// window returns the [start, end) slice of n rows that keeps cursor visible
// within size rows.
func window(n, cursor, size int) (int, int) {
	if size <= 0 || n <= size {
		return 0, n
	}
	start := cursor - size/2
	start = max(0, min(start, n-size))
	return start, start + size
}

func truncate(s string, w int) string {
	if w <= 1 || lipgloss.Width(s) <= w {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r))+1 > w {
		r = r[:len(r)-1]
	}
	return string(r) + "…"
}

func nonEmpty(parts ...string) []string {
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
