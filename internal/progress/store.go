package progress

import (
	"maps"
	"math"
	"sync"
	"time"

	"github.com/abhisek/academy/internal/catalog"
)

// Progress is the learner's state for the current session.
type Progress struct {
	// Completed holds the ids of lessons whose quiz was passed.
	Completed map[string]bool

	// Scores maps a completed lesson id to the quiz score that completed it.
	Scores map[string]int

	// Streak counts consecutive calendar days with at least one completion.
	Streak int

	// LastCompletion is zero until the first completion.
	LastCompletion time.Time
}

// IsCompleted reports whether the lesson has been completed.
func (p Progress) IsCompleted(id string) bool {
	return p.Completed[id]
}

// CompletedCount returns the number of completed lessons.
func (p Progress) CompletedCount() int {
	return len(p.Completed)
}

// Percent returns the rounded share of total lessons completed, 0-100.
func (p Progress) Percent(total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(len(p.Completed)) / float64(total) * 100))
}

// NextLesson returns the first lesson in catalog order that is not completed.
func (p Progress) NextLesson(lessons []catalog.Lesson) (catalog.Lesson, int, bool) {
	for i, l := range lessons {
		if !p.Completed[l.ID] {
			return l, i, true
		}
	}
	return catalog.Lesson{}, -1, false
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used for streak computation.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Store owns Progress and Navigation. All mutation goes through its methods;
// readers get copies.
type Store struct {
	mu       sync.RWMutex
	now      func() time.Time
	progress Progress
	nav      Navigation
}

// NewStore returns an empty store on the dashboard.
func NewStore(opts ...Option) *Store {
	s := &Store{
		now: time.Now,
		progress: Progress{
			Completed: make(map[string]bool),
			Scores:    make(map[string]int),
		},
		nav: Navigation{View: ViewDashboard},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SelectView switches the active view. Leaving for the dashboard or the
// curriculum clears the selected lesson.
func (s *Store) SelectView(v View) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nav.View = v
	if v == ViewDashboard || v == ViewCurriculum {
		s.nav.LessonID = ""
	}
}

// SelectLesson opens the lesson room on id. The caller guarantees id exists
// in the catalog and is unlocked.
func (s *Store) SelectLesson(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nav = Navigation{View: ViewLesson, LessonID: id}
}

// RecordCompletion marks a lesson completed with its quiz score and updates
// the streak. It returns false and changes nothing if the lesson was already
// completed.
func (s *Store) RecordCompletion(lessonID string, score int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.progress.Completed[lessonID] {
		return false
	}

	now := s.now()
	s.progress.Completed[lessonID] = true
	s.progress.Scores[lessonID] = score
	s.progress.Streak = nextStreak(s.progress.Streak, s.progress.LastCompletion, now)
	s.progress.LastCompletion = now
	return true
}

// Snapshot returns a deep copy of the current progress.
func (s *Store) Snapshot() Progress {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p := s.progress
	p.Completed = maps.Clone(s.progress.Completed)
	p.Scores = maps.Clone(s.progress.Scores)
	return p
}

// Navigation returns the current navigation state.
func (s *Store) Navigation() Navigation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nav
}

// IsLocked reports whether the lesson at position i cannot be opened yet.
// The first lesson is always open; every other lesson opens once its
// predecessor is completed.
func IsLocked(lessons []catalog.Lesson, i int, p Progress) bool {
	if i <= 0 {
		return false
	}
	if i >= len(lessons) {
		return true
	}
	return !p.Completed[lessons[i-1].ID]
}
