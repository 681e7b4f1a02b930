package catalog

import (
	"strings"

	"golang.org/x/text/cases"
)

// KindFilter restricts a listing to one content kind.
type KindFilter int

const (
	FilterAll KindFilter = iota
	FilterVideo
	FilterArticle
)

// KindFilters lists the filters in display order.
var KindFilters = []KindFilter{FilterAll, FilterVideo, FilterArticle}

// String returns the filter label.
func (f KindFilter) String() string {
	switch f {
	case FilterVideo:
		return "Videos"
	case FilterArticle:
		return "Articles"
	default:
		return "All"
	}
}

// Next cycles to the following filter.
func (f KindFilter) Next() KindFilter {
	return KindFilters[(int(f)+1)%len(KindFilters)]
}

// ParseKindFilter maps a CLI value ("all", "video", "article") to a filter.
func ParseKindFilter(s string) (KindFilter, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return FilterAll, true
	case "video", "videos":
		return FilterVideo, true
	case "article", "articles", "blog":
		return FilterArticle, true
	}
	return FilterAll, false
}

func (f KindFilter) matches(k Kind) bool {
	switch f {
	case FilterVideo:
		return k == KindVideo
	case FilterArticle:
		return k == KindArticle
	default:
		return true
	}
}

// Entry is a lesson together with its position in the full catalog.
// Lock state is always computed from Position, never from the filtered index.
type Entry struct {
	Position int
	Lesson   Lesson
}

// Filter returns the lessons matching kind whose title or any tag contains
// query, compared case-insensitively. An empty query matches everything.
func (c *Catalog) Filter(kind KindFilter, query string) []Entry {
	fold := cases.Fold()
	q := fold.String(strings.TrimSpace(query))

	var out []Entry
	for i, l := range c.lessons {
		if !kind.matches(l.Kind) {
			continue
		}
		if q != "" && !matchesQuery(fold, l, q) {
			continue
		}
		out = append(out, Entry{Position: i, Lesson: l})
	}
	return out
}

func matchesQuery(fold cases.Caser, l Lesson, q string) bool {
	if strings.Contains(fold.String(l.Title), q) {
		return true
	}
	for _, tag := range l.Tags {
		if strings.Contains(fold.String(tag), q) {
			return true
		}
	}
	return false
}
