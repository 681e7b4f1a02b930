package router

import (
	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/academy/internal/catalog"
	"github.com/abhisek/academy/internal/progress"
	"github.com/abhisek/academy/internal/screen"
)

// NavigateMsg switches to the dashboard or the curriculum.
type NavigateMsg struct {
	View progress.View
}

// OpenLessonMsg requests the lesson room for a lesson. Locked or unknown
// lessons are refused.
type OpenLessonMsg struct {
	LessonID string
}

// BackMsg leaves the current view: lesson room and curriculum return to
// the dashboard.
type BackMsg struct{}

// CompleteLessonMsg reports a passed quiz.
type CompleteLessonMsg struct {
	LessonID string
	Score    int
}

// CompletedMsg is broadcast after a completion changed progress.
type CompletedMsg struct {
	LessonID string
	Streak   int
}

// LessonScreen is the lesson room presentation. Open discards any previous
// lesson state.
type LessonScreen interface {
	screen.Screen
	Open(lesson catalog.Lesson) tea.Cmd
}

// Screens holds one screen per view.
type Screens struct {
	Dashboard  screen.Screen
	Curriculum screen.Screen
	Lesson     LessonScreen
}

// Router renders the screen for the store's current view and applies
// navigation and completion messages to the store.
type Router struct {
	store   *progress.Store
	catalog *catalog.Catalog
	screens Screens
	logger  *zap.Logger
}

// New creates a Router. The store's current view becomes active.
func New(st *progress.Store, cat *catalog.Catalog, screens Screens, logger *zap.Logger) *Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Router{
		store:   st,
		catalog: cat,
		screens: screens,
		logger:  logger.Named("router"),
	}
}

// Init initializes the active screen.
func (r *Router) Init() tea.Cmd {
	if a := r.Active(); a != nil {
		return a.Init()
	}
	return nil
}

// Active returns the screen for the current view.
func (r *Router) Active() screen.Screen {
	switch r.store.Navigation().View {
	case progress.ViewCurriculum:
		return r.screens.Curriculum
	case progress.ViewLesson:
		if r.screens.Lesson == nil {
			return nil
		}
		return r.screens.Lesson
	default:
		return r.screens.Dashboard
	}
}

// Navigate switches to v and initializes its screen.
func (r *Router) Navigate(v progress.View) tea.Cmd {
	if v == progress.ViewLesson {
		return nil
	}
	if r.store.Navigation().View == v {
		return nil
	}
	r.store.SelectView(v)
	r.logger.Debug("navigate", zap.Stringer("view", v))
	if a := r.Active(); a != nil {
		return a.Init()
	}
	return nil
}

// OpenLesson opens the lesson room on id if the lesson exists and is
// unlocked. It reports whether the lesson was opened.
func (r *Router) OpenLesson(id string) (tea.Cmd, bool) {
	lesson, idx, ok := r.catalog.Lookup(id)
	if !ok {
		r.logger.Warn("open unknown lesson", zap.String("lesson", id))
		return nil, false
	}
	if progress.IsLocked(r.catalog.Lessons(), idx, r.store.Snapshot()) {
		r.logger.Info("open locked lesson refused", zap.String("lesson", id))
		return nil, false
	}
	r.store.SelectLesson(id)
	r.logger.Debug("open lesson", zap.String("lesson", id))
	if r.screens.Lesson == nil {
		return nil, true
	}
	return r.screens.Lesson.Open(lesson), true
}

// Update handles navigation messages and forwards the rest. Key and paste
// input goes to the active screen only; every other message is delivered
// to all screens so async results reach the screen that requested them.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case NavigateMsg:
		return r.Navigate(msg.View)
	case OpenLessonMsg:
		cmd, _ := r.OpenLesson(msg.LessonID)
		return cmd
	case BackMsg:
		return r.Navigate(progress.ViewDashboard)
	case CompleteLessonMsg:
		return r.complete(msg)
	case tea.KeyMsg, tea.PasteMsg:
		return r.updateActive(msg)
	}
	return r.broadcast(msg)
}

func (r *Router) complete(msg CompleteLessonMsg) tea.Cmd {
	if !r.store.RecordCompletion(msg.LessonID, msg.Score) {
		return nil
	}
	streak := r.store.Snapshot().Streak
	r.logger.Info("lesson completed",
		zap.String("lesson", msg.LessonID),
		zap.Int("score", msg.Score),
		zap.Int("streak", streak),
	)
	done := CompletedMsg{LessonID: msg.LessonID, Streak: streak}
	return func() tea.Msg { return done }
}

func (r *Router) updateActive(msg tea.Msg) tea.Cmd {
	switch r.store.Navigation().View {
	case progress.ViewCurriculum:
		return update(&r.screens.Curriculum, msg)
	case progress.ViewLesson:
		if r.screens.Lesson == nil {
			return nil
		}
		updated, cmd := r.screens.Lesson.Update(msg)
		if ls, ok := updated.(LessonScreen); ok {
			r.screens.Lesson = ls
		}
		return cmd
	default:
		return update(&r.screens.Dashboard, msg)
	}
}

func (r *Router) broadcast(msg tea.Msg) tea.Cmd {
	cmds := []tea.Cmd{
		update(&r.screens.Dashboard, msg),
		update(&r.screens.Curriculum, msg),
	}
	if r.screens.Lesson != nil {
		updated, cmd := r.screens.Lesson.Update(msg)
		if ls, ok := updated.(LessonScreen); ok {
			r.screens.Lesson = ls
		}
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func update(s *screen.Screen, msg tea.Msg) tea.Cmd {
	if *s == nil {
		return nil
	}
	updated, cmd := (*s).Update(msg)
	*s = updated
	return cmd
}

// View renders the active screen.
func (r *Router) View(width, height int) string {
	active := r.Active()
	if active == nil {
		return ""
	}
	return active.View(width, height)
}
