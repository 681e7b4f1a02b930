package progress

// View is the top-level screen the learner is on.
type View int

const (
	ViewDashboard View = iota
	ViewCurriculum
	ViewLesson
)

func (v View) String() string {
	switch v {
	case ViewDashboard:
		return "dashboard"
	case ViewCurriculum:
		return "curriculum"
	case ViewLesson:
		return "lesson"
	default:
		return "unknown"
	}
}

// Navigation is the current view plus the lesson open in the lesson room.
// LessonID is empty unless View is ViewLesson.
type Navigation struct {
	View     View
	LessonID string
}
