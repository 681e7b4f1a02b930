package curriculum

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/academy/internal/catalog"
	"github.com/abhisek/academy/internal/progress"
	"github.com/abhisek/academy/internal/router"
	"github.com/abhisek/academy/internal/screen"
	"github.com/abhisek/academy/internal/ui/components"
	"github.com/abhisek/academy/internal/ui/layout"
	"github.com/abhisek/academy/internal/ui/theme"
)

// CurriculumScreen lists every lesson with search and a kind filter.
type CurriculumScreen struct {
	store   *progress.Store
	catalog *catalog.Catalog

	search  components.TextInput
	filter  catalog.KindFilter
	entries []catalog.Entry
	cursor  int
}

var _ screen.Screen = (*CurriculumScreen)(nil)
var _ screen.KeyHintProvider = (*CurriculumScreen)(nil)
var _ screen.InputCapturer = (*CurriculumScreen)(nil)

// New creates the curriculum screen with an empty search and no filter.
func New(st *progress.Store, cat *catalog.Catalog) *CurriculumScreen {
	c := &CurriculumScreen{
		store:   st,
		catalog: cat,
		search:  components.NewTextInput("Search", "topics, e.g. backprop, GPT, Software 2.0", 64),
	}
	c.refilter()
	return c
}

func (c *CurriculumScreen) Init() tea.Cmd {
	c.refilter()
	return nil
}

func (c *CurriculumScreen) Title() string {
	return "Curriculum"
}

func (c *CurriculumScreen) CapturingInput() bool {
	return c.search.Focused()
}

func (c *CurriculumScreen) KeyHints() []layout.KeyHint {
	if c.search.Focused() {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Done"},
			{Key: "Esc", Description: "Clear"},
		}
	}
	return []layout.KeyHint{
		{Key: "/", Description: "Search"},
		{Key: "F", Description: "Filter: " + c.filter.String()},
		{Key: "Enter", Description: "Open"},
		{Key: "Tab", Description: "Dashboard"},
		{Key: "Q", Description: "Quit"},
	}
}

// Entries returns the lessons currently listed.
func (c *CurriculumScreen) Entries() []catalog.Entry {
	return c.entries
}

func (c *CurriculumScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, isKey := msg.(tea.KeyPressMsg)

	if c.search.Focused() {
		if isKey {
			switch kmsg.String() {
			case "enter":
				c.search.Blur()
				return c, nil
			case "esc":
				c.search.Reset()
				c.search.Blur()
				c.refilter()
				return c, nil
			}
		}
		var cmd tea.Cmd
		c.search, cmd = c.search.Update(msg)
		c.refilter()
		return c, cmd
	}

	if !isKey {
		return c, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if c.cursor > 0 {
			c.cursor--
		}
	case "down", "j":
		if c.cursor < len(c.entries)-1 {
			c.cursor++
		}
	case "/":
		return c, c.search.Focus()
	case "f":
		c.filter = c.filter.Next()
		c.refilter()
	case "enter":
		return c, c.open()
	case "tab", "1":
		return c, func() tea.Msg { return router.NavigateMsg{View: progress.ViewDashboard} }
	}
	return c, nil
}

func (c *CurriculumScreen) refilter() {
	c.entries = c.catalog.Filter(c.filter, c.search.Value())
	if c.cursor >= len(c.entries) {
		c.cursor = max(len(c.entries)-1, 0)
	}
}

func (c *CurriculumScreen) open() tea.Cmd {
	if c.cursor >= len(c.entries) {
		return nil
	}
	e := c.entries[c.cursor]
	if progress.IsLocked(c.catalog.Lessons(), e.Position, c.store.Snapshot()) {
		return nil
	}
	return func() tea.Msg { return router.OpenLessonMsg{LessonID: e.Lesson.ID} }
}

func (c *CurriculumScreen) View(width, height int) string {
	cw := min(width-4, 100)
	c.search.SetWidth(max(cw-12, 10))

	var b strings.Builder
	b.WriteString(theme.Title.Render("Curriculum & Resources"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render("The complete library of lessons, essays and prerequisites."))
	b.WriteString("\n\n")
	b.WriteString(c.search.View())
	b.WriteString("\n")
	b.WriteString(c.renderFilters())
	b.WriteString("\n\n")

	header := b.String()
	listHeight := max(height-lipgloss.Height(header)-1, 3)

	if len(c.entries) == 0 {
		b.WriteString(theme.Hint.Render("No lessons found matching your search."))
	} else {
		b.WriteString(c.renderList(cw, listHeight))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top,
		lipgloss.NewStyle().Width(cw).Render(b.String()))
}

func (c *CurriculumScreen) renderFilters() string {
	parts := make([]string, 0, len(catalog.KindFilters))
	for _, f := range catalog.KindFilters {
		if f == c.filter {
			parts = append(parts, theme.TabActive.Render(f.String()))
		} else {
			parts = append(parts, theme.TabInactive.Render(f.String()))
		}
	}
	return strings.Join(parts, " ")
}

// renderList shows two lines per entry and scrolls to keep the cursor visible.
func (c *CurriculumScreen) renderList(width, height int) string {
	p := c.store.Snapshot()
	lessons := c.catalog.Lessons()

	perPage := max(height/2, 1)
	start := 0
	if c.cursor >= perPage {
		start = c.cursor - perPage + 1
	}
	end := min(start+perPage, len(c.entries))

	var lines []string
	for i := start; i < end; i++ {
		e := c.entries[i]
		locked := progress.IsLocked(lessons, e.Position, p)
		completed := p.IsCompleted(e.Lesson.ID)

		prefix := "  "
		if i == c.cursor {
			prefix = "▸ "
		}

		status := theme.Badge.Render("●")
		switch {
		case completed:
			status = theme.Completed.Render("✓")
		case locked:
			status = theme.Locked.Render("🔒")
		}

		title := fmt.Sprintf("%-8s %s", e.Lesson.Kind.Label(), e.Lesson.Title)
		if e.Lesson.Duration != "" {
			title += "  " + e.Lesson.Duration
		}

		var style lipgloss.Style
		switch {
		case locked:
			style = theme.Locked
		case i == c.cursor:
			style = theme.Selected
		case completed:
			style = theme.Subtitle
		default:
			style = theme.Unselected
		}

		tags := e.Lesson.Tags
		if len(tags) > 3 {
			tags = tags[:3]
		}
		sub := make([]string, len(tags))
		for j, t := range tags {
			sub[j] = "#" + t
		}

		lines = append(lines, prefix+status+" "+style.Render(title))
		lines = append(lines, "     "+theme.Hint.Width(width-5).MaxHeight(1).Render(strings.Join(sub, " ")))
	}
	return strings.Join(lines, "\n")
}
