package catalog

import "fmt"

// Kind is the content format of a lesson.
type Kind string

const (
	KindVideo   Kind = "video"
	KindArticle Kind = "article"
)

// Label returns the display name for the kind.
func (k Kind) Label() string {
	switch k {
	case KindVideo:
		return "Video"
	case KindArticle:
		return "Article"
	default:
		return string(k)
	}
}

// Lesson is one immutable curriculum entry.
type Lesson struct {
	ID          string   `yaml:"id" validate:"required"`
	Title       string   `yaml:"title" validate:"required"`
	Description string   `yaml:"description" validate:"required"`
	Kind        Kind     `yaml:"kind" validate:"required,oneof=video article"`
	Source      string   `yaml:"source" validate:"required"` // YouTube video id or article URL
	Thumbnail   string   `yaml:"thumbnail" validate:"omitempty,url"`
	Duration    string   `yaml:"duration"`
	Tags        []string `yaml:"tags" validate:"dive,required"`
}

// EmbedURL returns the embeddable player URL for a video lesson.
func (l Lesson) EmbedURL() string {
	if l.Kind != KindVideo {
		return ""
	}
	return fmt.Sprintf("https://www.youtube.com/embed/%s", l.Source)
}

// WatchURL returns the page a learner can open directly when the embed
// does not play. Articles return their own URL.
func (l Lesson) WatchURL() string {
	if l.Kind != KindVideo {
		return l.Source
	}
	return fmt.Sprintf("https://www.youtube.com/watch?v=%s", l.Source)
}
