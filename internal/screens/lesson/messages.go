package lesson

import (
	"github.com/abhisek/academy/internal/gateway"
	"github.com/abhisek/academy/internal/lessonroom"
)

// assignmentMsg is sent when an assignment has been generated.
type assignmentMsg struct {
	Token lessonroom.Token
	Text  string
}

// quizMsg is sent when a quiz has been generated.
type quizMsg struct {
	Token lessonroom.Token
	Quiz  gateway.Quiz
}

// chatReplyMsg carries the tutor's reply.
type chatReplyMsg struct {
	Token lessonroom.Token
	Text  string
}

// summaryMsg carries the notes summary.
type summaryMsg struct {
	Token lessonroom.Token
	Text  string
}

// clipboardMsg reports the result of copying a link.
type clipboardMsg struct {
	Text string
	Err  error
}
