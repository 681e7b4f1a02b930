package dashboard

import (
	"context"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/academy/internal/catalog"
	"github.com/abhisek/academy/internal/llm"
	"github.com/abhisek/academy/internal/progress"
	"github.com/abhisek/academy/internal/router"
	"github.com/abhisek/academy/internal/screen"
	"github.com/abhisek/academy/internal/ui/layout"
	"github.com/abhisek/academy/internal/ui/theme"
)

// Explainer produces the short "why this matters" blurb for a lesson.
type Explainer interface {
	ExplainLesson(ctx context.Context, title, description string) string
}

// explanationMsg carries a finished explanation back to the screen.
type explanationMsg struct {
	LessonID string
	Text     string
}

// DashboardScreen shows overall progress, the next lesson and the timeline.
type DashboardScreen struct {
	ctx       context.Context
	store     *progress.Store
	catalog   *catalog.Catalog
	explainer Explainer

	cursor int

	// explanation is shown under explainedID; loadingID is the lesson whose
	// explanation is in flight.
	explainedID string
	explanation string
	loadingID   string
	spinner     spinner.Model
}

var _ screen.Screen = (*DashboardScreen)(nil)
var _ screen.KeyHintProvider = (*DashboardScreen)(nil)

// New creates the dashboard. explainer may be nil, which disables the
// explain action.
func New(ctx context.Context, st *progress.Store, cat *catalog.Catalog, explainer Explainer) *DashboardScreen {
	return &DashboardScreen{
		ctx:       ctx,
		store:     st,
		catalog:   cat,
		explainer: explainer,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.MiniDot),
			spinner.WithStyle(theme.ChatModel),
		),
	}
}

// Init moves the cursor to the next lesson.
func (d *DashboardScreen) Init() tea.Cmd {
	if _, i, ok := d.store.Snapshot().NextLesson(d.catalog.Lessons()); ok {
		d.cursor = i
	}
	return nil
}

func (d *DashboardScreen) Title() string {
	return "Dashboard"
}

func (d *DashboardScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Timeline"},
		{Key: "Enter", Description: "Open"},
		{Key: "N", Description: "Up next"},
	}
	if d.explainer != nil {
		hints = append(hints, layout.KeyHint{Key: "E", Description: "Explain"})
	}
	return append(hints,
		layout.KeyHint{Key: "Tab", Description: "Curriculum"},
		layout.KeyHint{Key: "Q", Description: "Quit"},
	)
}

func (d *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case explanationMsg:
		if msg.LessonID != d.loadingID {
			return d, nil
		}
		d.loadingID = ""
		d.explainedID = msg.LessonID
		d.explanation = msg.Text
		return d, nil

	case spinner.TickMsg:
		if d.loadingID == "" {
			return d, nil
		}
		var cmd tea.Cmd
		d.spinner, cmd = d.spinner.Update(msg)
		return d, cmd

	case tea.KeyPressMsg:
		return d.handleKey(msg)
	}
	return d, nil
}

func (d *DashboardScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	lessons := d.catalog.Lessons()

	switch msg.String() {
	case "up", "k":
		if d.cursor > 0 {
			d.cursor--
		}
	case "down", "j":
		if d.cursor < len(lessons)-1 {
			d.cursor++
		}
	case "enter":
		return d, d.open(d.cursor)
	case "n":
		if _, i, ok := d.store.Snapshot().NextLesson(lessons); ok {
			return d, d.open(i)
		}
	case "e":
		return d, d.toggleExplain()
	case "tab", "2":
		return d, navigate(progress.ViewCurriculum)
	}
	return d, nil
}

// open emits an open message for an unlocked lesson.
func (d *DashboardScreen) open(i int) tea.Cmd {
	lessons := d.catalog.Lessons()
	if i < 0 || i >= len(lessons) || progress.IsLocked(lessons, i, d.store.Snapshot()) {
		return nil
	}
	id := lessons[i].ID
	return func() tea.Msg { return router.OpenLessonMsg{LessonID: id} }
}

// toggleExplain hides a shown explanation or requests one for the lesson
// under the cursor.
func (d *DashboardScreen) toggleExplain() tea.Cmd {
	lessons := d.catalog.Lessons()
	if d.explainer == nil || d.cursor >= len(lessons) {
		return nil
	}
	if progress.IsLocked(lessons, d.cursor, d.store.Snapshot()) {
		return nil
	}

	lesson := lessons[d.cursor]
	if d.explainedID == lesson.ID {
		d.explainedID = ""
		d.explanation = ""
		return nil
	}
	if d.loadingID == lesson.ID {
		return nil
	}

	startSpinner := d.loadingID == ""
	d.loadingID = lesson.ID

	fetch := d.explainCmd(lesson)
	if startSpinner {
		return tea.Batch(fetch, d.spinner.Tick)
	}
	return fetch
}

func (d *DashboardScreen) explainCmd(lesson catalog.Lesson) tea.Cmd {
	ctx := llm.WithLesson(d.ctx, lesson.ID)
	explainer := d.explainer
	return func() tea.Msg {
		return explanationMsg{
			LessonID: lesson.ID,
			Text:     explainer.ExplainLesson(ctx, lesson.Title, lesson.Description),
		}
	}
}

func navigate(v progress.View) tea.Cmd {
	return func() tea.Msg { return router.NavigateMsg{View: v} }
}
