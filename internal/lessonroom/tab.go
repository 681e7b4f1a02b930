package lessonroom

// Tab is a section of the lesson room.
type Tab int

const (
	TabOverview Tab = iota
	TabAssignment
	TabQuiz
)

// Tabs lists every tab in display order.
var Tabs = []Tab{TabOverview, TabAssignment, TabQuiz}

func (t Tab) String() string {
	switch t {
	case TabOverview:
		return "Overview"
	case TabAssignment:
		return "Assignment"
	case TabQuiz:
		return "Quiz"
	default:
		return "Unknown"
	}
}

// Next returns the following tab, wrapping around.
func (t Tab) Next() Tab {
	return Tab((int(t) + 1) % len(Tabs))
}

// Prev returns the preceding tab, wrapping around.
func (t Tab) Prev() Tab {
	return Tab((int(t) + len(Tabs) - 1) % len(Tabs))
}
