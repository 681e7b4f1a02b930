// Package lessonroom holds the per-lesson state of the lesson room: tab
// selection, lazily fetched content, the quiz, the video player, the tutor
// chat and personal notes.
//
// Generated content arrives asynchronously. Every request carries a Token
// taken when it was issued; results whose token no longer matches the room
// are dropped, so a late reply never lands in a different lesson.
package lessonroom

import (
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/academy/internal/catalog"
	"github.com/abhisek/academy/internal/gateway"
)

// Token identifies the room state a request was issued for.
type Token struct {
	LessonID   string
	Generation uint64
}

// FetchKind names the content a tab needs.
type FetchKind int

const (
	FetchNone FetchKind = iota
	FetchAssignment
	FetchQuiz
)

// Fetch is a content request the caller should dispatch.
type Fetch struct {
	Kind  FetchKind
	Token Token
}

// ChatRequest is a tutor question the caller should dispatch.
type ChatRequest struct {
	Token   Token
	History []gateway.ChatMessage
	Message string
}

// Option configures a Room.
type Option func(*Room)

// WithClock overrides the time source for chat timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *Room) { r.now = now }
}

// Room is the lesson room controller. It is not safe for concurrent use;
// the UI update loop owns it.
type Room struct {
	now        func() time.Time
	lesson     catalog.Lesson
	generation uint64
	tab        Tab

	assignment        string
	assignmentLoading bool

	quiz        *gateway.Quiz
	quizLoading bool
	session     *QuizSession

	video Video

	chat        []gateway.ChatMessage
	chatPending bool

	notes          string
	summary        string
	summaryPending bool
}

// New creates a room showing lesson.
func New(lesson catalog.Lesson, opts ...Option) *Room {
	r := &Room{now: time.Now}
	for _, o := range opts {
		o(r)
	}
	r.Reset(lesson)
	return r
}

// Reset switches the room to lesson and discards all state from the
// previous one. Outstanding requests become stale.
func (r *Room) Reset(lesson catalog.Lesson) {
	r.generation++
	r.lesson = lesson
	r.tab = TabOverview

	r.assignment = ""
	r.assignmentLoading = false
	r.quiz = nil
	r.quizLoading = false
	r.session = nil
	r.video = Video{}

	r.chat = []gateway.ChatMessage{greeting(lesson, r.now())}
	r.chatPending = false

	r.notes = ""
	r.summary = ""
	r.summaryPending = false
}

func greeting(lesson catalog.Lesson, at time.Time) gateway.ChatMessage {
	return gateway.ChatMessage{
		Role: gateway.ChatModel,
		Text: fmt.Sprintf("Ready to help with %q.", lesson.Title),
		At:   at,
	}
}

// Lesson returns the lesson on display.
func (r *Room) Lesson() catalog.Lesson { return r.lesson }

// Tab returns the active tab.
func (r *Room) Tab() Tab { return r.tab }

// Token returns the token for requests issued now.
func (r *Room) Token() Token {
	return Token{LessonID: r.lesson.ID, Generation: r.generation}
}

// Current reports whether tok still matches the room.
func (r *Room) Current(tok Token) bool {
	return tok == r.Token()
}

// SelectTab activates t. Entering the assignment or quiz tab for the first
// time returns the fetch to dispatch; it returns FetchNone when the
// content is cached or already loading.
func (r *Room) SelectTab(t Tab) Fetch {
	r.tab = t

	switch t {
	case TabAssignment:
		if r.assignment == "" && !r.assignmentLoading {
			r.assignmentLoading = true
			return Fetch{Kind: FetchAssignment, Token: r.Token()}
		}
	case TabQuiz:
		if r.quiz == nil && !r.quizLoading {
			r.quizLoading = true
			return Fetch{Kind: FetchQuiz, Token: r.Token()}
		}
	}
	return Fetch{Kind: FetchNone}
}

// Loading reports whether the active tab is waiting for content.
func (r *Room) Loading() bool {
	switch r.tab {
	case TabAssignment:
		return r.assignmentLoading
	case TabQuiz:
		return r.quizLoading
	}
	return false
}

// ApplyAssignment stores a fetched assignment. Stale results are dropped.
func (r *Room) ApplyAssignment(tok Token, text string) bool {
	if !r.Current(tok) || !r.assignmentLoading {
		return false
	}
	r.assignment = text
	r.assignmentLoading = false
	return true
}

// Assignment returns the cached assignment markdown.
func (r *Room) Assignment() (string, bool) {
	return r.assignment, r.assignment != ""
}

// ApplyQuiz stores a fetched quiz and starts a session. Stale results are
// dropped.
func (r *Room) ApplyQuiz(tok Token, quiz gateway.Quiz) bool {
	if !r.Current(tok) || !r.quizLoading {
		return false
	}
	r.quiz = &quiz
	r.quizLoading = false
	r.session = NewQuizSession(quiz)
	return true
}

// Session returns the quiz session, or nil before the quiz has loaded.
func (r *Room) Session() *QuizSession { return r.session }

// AdvanceQuiz advances the quiz session. The outcome carries the lesson id
// so a pass can be recorded.
func (r *Room) AdvanceQuiz() (Outcome, bool) {
	if r.session == nil {
		return Outcome{}, false
	}
	out, ok := r.session.Advance()
	out.LessonID = r.lesson.ID
	return out, ok
}

// RetryQuiz restarts a failed quiz without refetching it.
func (r *Room) RetryQuiz() bool {
	return r.session != nil && r.session.Retry()
}

// Video returns the player state. Articles never leave VideoNotStarted.
func (r *Room) Video() *Video { return &r.video }

// PlayVideo starts the player for video lessons.
func (r *Room) PlayVideo() bool {
	return r.lesson.Kind == catalog.KindVideo && r.video.Play()
}

// Transcript returns the chat messages, oldest first.
func (r *Room) Transcript() []gateway.ChatMessage { return r.chat }

// ChatPending reports whether a tutor reply is outstanding.
func (r *Room) ChatPending() bool { return r.chatPending }

// BeginChat appends a user message and returns the request to dispatch.
// Blank messages and sends while a reply is pending are rejected.
func (r *Room) BeginChat(text string) (ChatRequest, bool) {
	text = strings.TrimSpace(text)
	if text == "" || r.chatPending {
		return ChatRequest{}, false
	}

	history := make([]gateway.ChatMessage, len(r.chat))
	copy(history, r.chat)

	r.chat = append(r.chat, gateway.ChatMessage{Role: gateway.ChatUser, Text: text, At: r.now()})
	r.chatPending = true
	return ChatRequest{Token: r.Token(), History: history, Message: text}, true
}

// ApplyChatReply appends the tutor reply. Stale replies are dropped.
func (r *Room) ApplyChatReply(tok Token, reply string) bool {
	if !r.Current(tok) || !r.chatPending {
		return false
	}
	r.chat = append(r.chat, gateway.ChatMessage{Role: gateway.ChatModel, Text: reply, At: r.now()})
	r.chatPending = false
	return true
}

// SetNotes replaces the personal notes for the lesson.
func (r *Room) SetNotes(notes string) { r.notes = notes }

// Notes returns the personal notes.
func (r *Room) Notes() string { return r.notes }

// Summary returns the last notes summary.
func (r *Room) Summary() string { return r.summary }

// SummaryPending reports whether a summary is outstanding.
func (r *Room) SummaryPending() bool { return r.summaryPending }

// BeginSummary marks a notes summary as outstanding. It is rejected when
// the notes are blank or a summary is already pending.
func (r *Room) BeginSummary() (Token, bool) {
	if strings.TrimSpace(r.notes) == "" || r.summaryPending {
		return Token{}, false
	}
	r.summaryPending = true
	return r.Token(), true
}

// ApplyNotesSummary stores a summary. Stale results are dropped.
func (r *Room) ApplyNotesSummary(tok Token, summary string) bool {
	if !r.Current(tok) || !r.summaryPending {
		return false
	}
	r.summary = summary
	r.summaryPending = false
	return true
}
