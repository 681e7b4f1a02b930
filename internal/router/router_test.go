package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/academy/internal/catalog"
	"github.com/abhisek/academy/internal/progress"
	"github.com/abhisek/academy/internal/screen"
)

// stubScreen is a minimal screen for testing.
type stubScreen struct {
	title    string
	initRuns int
	msgs     []tea.Msg
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRuns++
	return nil
}
func (s *stubScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	s.msgs = append(s.msgs, msg)
	return s, nil
}
func (s *stubScreen) View(int, int) string { return s.title }
func (s *stubScreen) Title() string        { return s.title }

type stubLesson struct {
	stubScreen
	opened []string
}

func (s *stubLesson) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	s.msgs = append(s.msgs, msg)
	return s, nil
}

func (s *stubLesson) Open(l catalog.Lesson) tea.Cmd {
	s.opened = append(s.opened, l.ID)
	return nil
}

type fixture struct {
	router     *Router
	store      *progress.Store
	dashboard  *stubScreen
	curriculum *stubScreen
	lesson     *stubLesson
}

func newFixture() fixture {
	f := fixture{
		store:      progress.NewStore(),
		dashboard:  &stubScreen{title: "dashboard"},
		curriculum: &stubScreen{title: "curriculum"},
		lesson:     &stubLesson{stubScreen: stubScreen{title: "lesson"}},
	}
	cat := catalog.New([]catalog.Lesson{
		{ID: "l0", Title: "L0", Kind: catalog.KindVideo, Source: "a"},
		{ID: "l1", Title: "L1", Kind: catalog.KindVideo, Source: "b"},
		{ID: "l2", Title: "L2", Kind: catalog.KindVideo, Source: "c"},
	})
	f.router = New(f.store, cat, Screens{
		Dashboard:  f.dashboard,
		Curriculum: f.curriculum,
		Lesson:     f.lesson,
	}, nil)
	return f
}

func TestActiveFollowsStore(t *testing.T) {
	f := newFixture()

	if got := f.router.Active().Title(); got != "dashboard" {
		t.Errorf("expected dashboard initially, got %q", got)
	}

	f.router.Update(NavigateMsg{View: progress.ViewCurriculum})
	if got := f.router.Active().Title(); got != "curriculum" {
		t.Errorf("expected curriculum, got %q", got)
	}
	if f.curriculum.initRuns != 1 {
		t.Errorf("expected curriculum Init once, got %d", f.curriculum.initRuns)
	}

	f.router.Update(NavigateMsg{View: progress.ViewCurriculum})
	if f.curriculum.initRuns != 1 {
		t.Error("navigating to the active view should not re-init it")
	}
}

func TestOpenLesson_RespectsLock(t *testing.T) {
	f := newFixture()

	if _, ok := f.router.OpenLesson("l1"); ok {
		t.Fatal("expected l1 to be locked initially")
	}
	if _, ok := f.router.OpenLesson("missing"); ok {
		t.Fatal("expected unknown lesson to be refused")
	}
	if nav := f.store.Navigation(); nav.View != progress.ViewDashboard {
		t.Errorf("refused open must not navigate, got %v", nav.View)
	}

	f.router.Update(OpenLessonMsg{LessonID: "l0"})
	nav := f.store.Navigation()
	if nav.View != progress.ViewLesson || nav.LessonID != "l0" {
		t.Errorf("expected lesson l0, got %+v", nav)
	}
	if got := f.router.Active().Title(); got != "lesson" {
		t.Errorf("expected lesson screen active, got %q", got)
	}
	if len(f.lesson.opened) != 1 || f.lesson.opened[0] != "l0" {
		t.Errorf("expected lesson screen opened on l0, got %v", f.lesson.opened)
	}
}

func TestCompletionUnlocksNext(t *testing.T) {
	f := newFixture()
	f.router.OpenLesson("l0")

	cmd := f.router.Update(CompleteLessonMsg{LessonID: "l0", Score: 3})
	if cmd == nil {
		t.Fatal("expected a CompletedMsg command")
	}
	done, ok := cmd().(CompletedMsg)
	if !ok || done.LessonID != "l0" || done.Streak != 1 {
		t.Errorf("unexpected completion message %+v", done)
	}

	p := f.store.Snapshot()
	if !p.IsCompleted("l0") || p.Scores["l0"] != 3 || p.Streak != 1 {
		t.Errorf("unexpected progress %+v", p)
	}

	if cmd := f.router.Update(CompleteLessonMsg{LessonID: "l0", Score: 1}); cmd != nil {
		t.Error("repeat completion should be a no-op")
	}
	if f.store.Snapshot().Scores["l0"] != 3 {
		t.Error("repeat completion must not overwrite the score")
	}

	if _, ok := f.router.OpenLesson("l1"); !ok {
		t.Error("expected l1 unlocked after completing l0")
	}
	if _, ok := f.router.OpenLesson("l2"); ok {
		t.Error("expected l2 still locked")
	}
}

func TestBackReturnsToDashboard(t *testing.T) {
	f := newFixture()
	f.router.OpenLesson("l0")

	f.router.Update(BackMsg{})
	nav := f.store.Navigation()
	if nav.View != progress.ViewDashboard || nav.LessonID != "" {
		t.Errorf("expected dashboard with no lesson, got %+v", nav)
	}
}

func TestKeysGoToActiveOnly(t *testing.T) {
	f := newFixture()

	f.router.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})
	if len(f.dashboard.msgs) != 1 {
		t.Errorf("expected dashboard to get the key, got %d msgs", len(f.dashboard.msgs))
	}
	if len(f.curriculum.msgs) != 0 || len(f.lesson.msgs) != 0 {
		t.Error("inactive screens must not receive keys")
	}

	type result struct{}
	f.router.Update(result{})
	if len(f.curriculum.msgs) != 1 || len(f.lesson.msgs) != 1 || len(f.dashboard.msgs) != 2 {
		t.Error("non-input messages should reach every screen")
	}
}

func TestView(t *testing.T) {
	f := newFixture()
	if got := f.router.View(80, 24); got != "dashboard" {
		t.Errorf("expected dashboard view, got %q", got)
	}
}
