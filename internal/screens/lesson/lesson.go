package lesson

import (
	"context"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"github.com/atotto/clipboard"

	"github.com/abhisek/academy/internal/catalog"
	"github.com/abhisek/academy/internal/gateway"
	"github.com/abhisek/academy/internal/lessonroom"
	"github.com/abhisek/academy/internal/llm"
	"github.com/abhisek/academy/internal/router"
	"github.com/abhisek/academy/internal/screen"
	"github.com/abhisek/academy/internal/ui/components"
	"github.com/abhisek/academy/internal/ui/layout"
	"github.com/abhisek/academy/internal/ui/theme"
)

// Gateway is the generated content the lesson room needs.
type Gateway interface {
	GenerateQuiz(ctx context.Context, title string) gateway.Quiz
	GenerateAssignment(ctx context.Context, title string) string
	Chat(ctx context.Context, history []gateway.ChatMessage, message, title string) string
	SummarizeNotes(ctx context.Context, title, notes string) string
}

type focus int

const (
	focusMain focus = iota
	focusChat
	focusNotes
)

// LessonScreen presents one lesson: player, tabs, tutor chat and notes.
type LessonScreen struct {
	ctx      context.Context
	gw       Gateway
	copy     func(string) error
	roomOpts []lessonroom.Option

	room   *lessonroom.Room
	cursor int // quiz option under the cursor
	focus  focus
	status string

	chatInput  components.TextInput
	notes      textarea.Model
	assignment viewport.Model
	spinner    spinner.Model
}

var _ router.LessonScreen = (*LessonScreen)(nil)
var _ screen.KeyHintProvider = (*LessonScreen)(nil)
var _ screen.InputCapturer = (*LessonScreen)(nil)

// Option configures a LessonScreen.
type Option func(*LessonScreen)

// WithClipboard replaces the system clipboard writer.
func WithClipboard(fn func(string) error) Option {
	return func(s *LessonScreen) { s.copy = fn }
}

// WithRoomOptions passes options to the lesson room controller.
func WithRoomOptions(opts ...lessonroom.Option) Option {
	return func(s *LessonScreen) { s.roomOpts = append(s.roomOpts, opts...) }
}

// New creates the lesson screen. It shows nothing until Open is called.
func New(ctx context.Context, gw Gateway, opts ...Option) *LessonScreen {
	notes := textarea.New()
	notes.Placeholder = "Jot down your key takeaways from the lesson here..."
	notes.ShowLineNumbers = false
	notes.CharLimit = 4000

	vp := viewport.New()
	vp.SoftWrap = true

	s := &LessonScreen{
		ctx:        ctx,
		gw:         gw,
		copy:       clipboard.WriteAll,
		chatInput:  components.NewTextInput("", "Ask about the lesson...", 500),
		notes:      notes,
		assignment: vp,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(theme.Badge),
		),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Open shows lesson, discarding everything from the previous one.
func (s *LessonScreen) Open(lesson catalog.Lesson) tea.Cmd {
	if s.room == nil {
		s.room = lessonroom.New(lesson, s.roomOpts...)
	} else {
		s.room.Reset(lesson)
	}
	s.cursor = 0
	s.focus = focusMain
	s.status = ""
	s.chatInput.Reset()
	s.chatInput.Blur()
	s.notes.Reset()
	s.notes.Blur()
	s.assignment.SetContent("")
	s.assignment.GotoTop()
	return nil
}

// Room returns the controller for the open lesson, or nil.
func (s *LessonScreen) Room() *lessonroom.Room {
	return s.room
}

func (s *LessonScreen) Init() tea.Cmd {
	return nil
}

func (s *LessonScreen) Title() string {
	if s.room == nil {
		return "Lesson"
	}
	return s.room.Lesson().Title
}

func (s *LessonScreen) CapturingInput() bool {
	return s.focus != focusMain
}

func (s *LessonScreen) KeyHints() []layout.KeyHint {
	switch s.focus {
	case focusChat:
		return []layout.KeyHint{{Key: "Enter", Description: "Send"}, {Key: "Esc", Description: "Done"}}
	case focusNotes:
		return []layout.KeyHint{{Key: "Ctrl+S", Description: "Summarize"}, {Key: "Esc", Description: "Done"}}
	}

	hints := []layout.KeyHint{{Key: "Tab", Description: "Switch tab"}}
	if s.room != nil && s.room.Tab() == lessonroom.TabQuiz {
		hints = append(hints, layout.KeyHint{Key: "1-4", Description: "Answer"}, layout.KeyHint{Key: "Enter", Description: "Next"})
	}
	if s.room != nil && s.room.Lesson().Kind == catalog.KindVideo {
		hints = append(hints, layout.KeyHint{Key: "P", Description: "Play"})
	}
	return append(hints,
		layout.KeyHint{Key: "Y", Description: "Copy link"},
		layout.KeyHint{Key: "C", Description: "Chat"},
		layout.KeyHint{Key: "N", Description: "Notes"},
		layout.KeyHint{Key: "Esc", Description: "Dashboard"},
	)
}

func (s *LessonScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if s.room == nil {
		return s, nil
	}

	switch msg := msg.(type) {
	case assignmentMsg:
		if s.room.ApplyAssignment(msg.Token, msg.Text) {
			s.assignment.SetContent(msg.Text)
			s.assignment.GotoTop()
		}
		return s, nil

	case quizMsg:
		if s.room.ApplyQuiz(msg.Token, msg.Quiz) {
			s.cursor = 0
		}
		return s, nil

	case chatReplyMsg:
		s.room.ApplyChatReply(msg.Token, msg.Text)
		return s, nil

	case summaryMsg:
		s.room.ApplyNotesSummary(msg.Token, msg.Text)
		return s, nil

	case clipboardMsg:
		if msg.Err != nil {
			s.status = "Could not copy link: " + msg.Err.Error()
		} else {
			s.status = "Copied " + msg.Text
		}
		return s, nil

	case spinner.TickMsg:
		if !s.busy() {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyPressMsg:
		wasBusy := s.busy()
		cmd := s.handleKey(msg)
		return s, s.withSpinner(wasBusy, cmd)

	case tea.PasteMsg:
		return s, s.forwardInput(msg)
	}
	return s, nil
}

func (s *LessonScreen) busy() bool {
	return s.room != nil && (s.room.Loading() || s.room.ChatPending() || s.room.SummaryPending())
}

// withSpinner starts the spinner when cmd made the screen busy.
func (s *LessonScreen) withSpinner(wasBusy bool, cmd tea.Cmd) tea.Cmd {
	if wasBusy || !s.busy() {
		return cmd
	}
	return tea.Batch(cmd, s.spinner.Tick)
}

func (s *LessonScreen) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	key := msg.String()

	switch s.focus {
	case focusChat:
		switch key {
		case "enter":
			return s.sendChat()
		case "esc":
			s.focus = focusMain
			s.chatInput.Blur()
			return nil
		}
		return s.forwardInput(msg)

	case focusNotes:
		switch key {
		case "esc":
			s.focus = focusMain
			s.notes.Blur()
			return nil
		case "ctrl+s":
			s.focus = focusMain
			s.notes.Blur()
			return s.summarize()
		}
		return s.forwardInput(msg)
	}

	switch key {
	case "tab":
		return s.selectTab(s.room.Tab().Next())
	case "shift+tab":
		return s.selectTab(s.room.Tab().Prev())
	case "p":
		s.room.PlayVideo()
		return nil
	case "x":
		s.room.Video().ForceError()
		return nil
	case "v":
		s.room.Video().Retry()
		return nil
	case "y":
		return s.copyLink()
	case "c":
		s.focus = focusChat
		return s.chatInput.Focus()
	case "n":
		s.focus = focusNotes
		return s.notes.Focus()
	case "s":
		return s.summarize()
	}

	switch s.room.Tab() {
	case lessonroom.TabQuiz:
		return s.handleQuizKey(key)
	case lessonroom.TabAssignment:
		var cmd tea.Cmd
		s.assignment, cmd = s.assignment.Update(msg)
		return cmd
	}
	return nil
}

func (s *LessonScreen) forwardInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch s.focus {
	case focusChat:
		s.chatInput, cmd = s.chatInput.Update(msg)
	case focusNotes:
		s.notes, cmd = s.notes.Update(msg)
		s.room.SetNotes(s.notes.Value())
	}
	return cmd
}

func (s *LessonScreen) handleQuizKey(key string) tea.Cmd {
	sess := s.room.Session()
	if sess == nil {
		return nil
	}

	if sess.Submitted() {
		switch {
		case key == "r" && !sess.Passed():
			s.room.RetryQuiz()
			s.cursor = 0
		case key == "enter" && sess.Passed():
			return func() tea.Msg { return router.BackMsg{} }
		}
		return nil
	}

	q, _ := sess.Question()
	switch key {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(q.Options)-1 {
			s.cursor++
		}
	case "space":
		sess.Select(s.cursor)
	case "enter":
		return s.advance()
	default:
		if i, ok := components.OptionIndex(key); ok && sess.Select(i) {
			s.cursor = i
		}
	}
	return nil
}

// advance scores the current answer. A passed quiz reports the completion.
func (s *LessonScreen) advance() tea.Cmd {
	out, ok := s.room.AdvanceQuiz()
	if !ok {
		return nil
	}
	s.cursor = 0
	if !out.Finished || !out.Passed {
		return nil
	}
	done := router.CompleteLessonMsg{LessonID: out.LessonID, Score: out.Score}
	return func() tea.Msg { return done }
}

func (s *LessonScreen) selectTab(t lessonroom.Tab) tea.Cmd {
	f := s.room.SelectTab(t)
	if f.Kind == lessonroom.FetchNone {
		return nil
	}

	title := s.room.Lesson().Title
	ctx := s.lessonCtx()
	gw := s.gw
	switch f.Kind {
	case lessonroom.FetchAssignment:
		return func() tea.Msg {
			return assignmentMsg{Token: f.Token, Text: gw.GenerateAssignment(ctx, title)}
		}
	case lessonroom.FetchQuiz:
		return func() tea.Msg {
			return quizMsg{Token: f.Token, Quiz: gw.GenerateQuiz(ctx, title)}
		}
	}
	return nil
}

func (s *LessonScreen) sendChat() tea.Cmd {
	req, ok := s.room.BeginChat(s.chatInput.Value())
	if !ok {
		return nil
	}
	s.chatInput.Reset()

	title := s.room.Lesson().Title
	ctx := s.lessonCtx()
	gw := s.gw
	return func() tea.Msg {
		return chatReplyMsg{Token: req.Token, Text: gw.Chat(ctx, req.History, req.Message, title)}
	}
}

func (s *LessonScreen) summarize() tea.Cmd {
	tok, ok := s.room.BeginSummary()
	if !ok {
		return nil
	}
	title := s.room.Lesson().Title
	notes := s.room.Notes()
	ctx := s.lessonCtx()
	gw := s.gw
	return func() tea.Msg {
		return summaryMsg{Token: tok, Text: gw.SummarizeNotes(ctx, title, notes)}
	}
}

func (s *LessonScreen) copyLink() tea.Cmd {
	link := s.link()
	if link == "" {
		return nil
	}
	write := s.copy
	return func() tea.Msg {
		return clipboardMsg{Text: link, Err: write(link)}
	}
}

// link is the external URL for the lesson: the watch page for videos, the
// article itself otherwise.
func (s *LessonScreen) link() string {
	return s.room.Lesson().WatchURL()
}

func (s *LessonScreen) lessonCtx() context.Context {
	return llm.WithLesson(s.ctx, s.room.Lesson().ID)
}
