package lesson

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/academy/internal/catalog"
	"github.com/abhisek/academy/internal/gateway"
	"github.com/abhisek/academy/internal/lessonroom"
	"github.com/abhisek/academy/internal/ui/components"
	"github.com/abhisek/academy/internal/ui/layout"
	"github.com/abhisek/academy/internal/ui/theme"
)

const sidePanelWidth = 44

func (s *LessonScreen) View(width, height int) string {
	if s.room == nil {
		return ""
	}

	if layout.IsCompactWidth(width) {
		mainW := width - 2
		if s.focus != focusMain {
			return s.renderSidePanel(mainW, height)
		}
		return s.renderMain(mainW, height)
	}

	mainW := width - sidePanelWidth - 3
	main := s.renderMain(mainW, height)
	side := s.renderSidePanel(sidePanelWidth, height)
	divider := lipgloss.NewStyle().Foreground(theme.Border).
		Render(strings.TrimSuffix(strings.Repeat("│\n", max(height, 1)), "\n"))
	return lipgloss.JoinHorizontal(lipgloss.Top, main, " ", divider, " ", side)
}

func (s *LessonScreen) renderMain(width, height int) string {
	lesson := s.room.Lesson()

	var sections []string
	sections = append(sections, theme.Badge.Render(strings.ToUpper(lesson.Kind.Label()))+"  "+theme.Heading.Render(lesson.Title))
	sections = append(sections, s.renderPlayer(width))

	labels := make([]string, len(lessonroom.Tabs))
	for i, t := range lessonroom.Tabs {
		labels[i] = t.String()
	}
	sections = append(sections, components.TabBar(labels, int(s.room.Tab()), width))

	if s.status != "" {
		sections = append(sections, theme.Hint.Render(s.status))
	}

	top := strings.Join(sections, "\n")
	bodyHeight := max(height-lipgloss.Height(top)-1, 3)

	var body string
	switch s.room.Tab() {
	case lessonroom.TabAssignment:
		body = s.renderAssignment(width, bodyHeight)
	case lessonroom.TabQuiz:
		body = s.renderQuiz(width)
	default:
		body = renderOverview(lesson, width)
	}

	return lipgloss.NewStyle().Width(width).MaxHeight(height).Render(top + "\n" + body)
}

func (s *LessonScreen) renderPlayer(width int) string {
	lesson := s.room.Lesson()
	card := theme.Card.Width(width)

	if lesson.Kind != catalog.KindVideo {
		body := theme.Heading.Render("Required reading") + "\n" +
			theme.Body.Render(lesson.Source) + "\n" +
			theme.Hint.Render("Y copy link")
		return card.Render(body)
	}

	video := s.room.Video()
	switch video.State() {
	case lessonroom.VideoPlaying:
		body := theme.Correct.Render("▶ Now playing") + "\n" +
			theme.Body.Render(video.PlayerURL(lesson.EmbedURL())) + "\n" +
			theme.Hint.Render("Y copy link · X player not working?")
		return theme.AccentCard.Width(width).Render(body)
	case lessonroom.VideoErrored:
		body := theme.Incorrect.Render("⚠ Video playback issue") + "\n" +
			theme.Subtitle.Render("The embedded player failed to load. Watch on YouTube instead:") + "\n" +
			theme.Body.Render(lesson.WatchURL()) + "\n" +
			theme.Hint.Render("Y copy link · V try to load again")
		return card.BorderForeground(theme.Error).Render(body)
	default:
		meta := lesson.Duration
		if meta != "" {
			meta = " · " + meta
		}
		body := theme.Heading.Render("VIDEO LESSON"+meta) + "\n" +
			theme.Hint.Render("P start watching")
		return card.Render(body)
	}
}

func renderOverview(lesson catalog.Lesson, width int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render(lesson.Title))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render(lesson.Description))
	if len(lesson.Tags) > 0 {
		tags := make([]string, len(lesson.Tags))
		for i, t := range lesson.Tags {
			tags[i] = "#" + t
		}
		b.WriteString("\n\n")
		b.WriteString(theme.Hint.Render("KEYWORDS"))
		b.WriteString("\n")
		b.WriteString(theme.Badge.Width(width).Render(strings.Join(tags, "  ")))
	}
	return b.String()
}

func (s *LessonScreen) renderAssignment(width, height int) string {
	if _, ok := s.room.Assignment(); !ok {
		return s.spinner.View() + theme.Hint.Render(" Designing a coding challenge for you...")
	}
	s.assignment.SetWidth(width)
	s.assignment.SetHeight(height)
	return s.assignment.View()
}

func (s *LessonScreen) renderQuiz(width int) string {
	sess := s.room.Session()
	if sess == nil {
		return s.spinner.View() + theme.Hint.Render(" Generating questions based on the lecture...")
	}

	if sess.Submitted() {
		score := fmt.Sprintf("You scored %d/%d.", sess.Score(), sess.Total())
		if sess.Passed() {
			body := theme.Correct.Render("✓ Lesson completed!") + "\n" +
				theme.Body.Render(score+" Excellent work.") + "\n\n" +
				theme.ButtonActive.Render("Enter  Return to dashboard")
			return theme.Card.Width(width).BorderForeground(theme.Success).Render(body)
		}
		body := theme.Incorrect.Render("Keep trying") + "\n" +
			theme.Body.Render(fmt.Sprintf("%s %d needed to pass.", score, lessonroom.PassThreshold(sess.Total()))) + "\n\n" +
			theme.ButtonActive.Render("R  Retry quiz")
		return theme.Card.Width(width).BorderForeground(theme.Error).Render(body)
	}

	q, ok := sess.Question()
	if !ok {
		return ""
	}

	bar := components.Meter{
		Label: fmt.Sprintf("Question %d / %d", sess.Index()+1, sess.Total()),
		Done:  sess.Index() + 1,
		Total: sess.Total(),
		Width: width,
	}.View()

	mc := components.NewMultiChoice(q.Question, q.Options)
	mc.Cursor = s.cursor
	if sel, ok := sess.Selected(); ok {
		mc.Chosen = sel
	}

	action := "Next question"
	if sess.IsLast() {
		action = "Finish quiz"
	}
	button := theme.Locked.Render("Enter  " + action)
	if _, ok := sess.Selected(); ok {
		button = theme.ButtonActive.Render("Enter  " + action)
	}

	return bar + "\n\n" + mc.View() + "\n" + button
}

func (s *LessonScreen) renderSidePanel(width, height int) string {
	notesHeight := 5
	if s.room.Summary() != "" || s.room.SummaryPending() {
		notesHeight += 4
	}
	chatHeight := max(height-notesHeight-6, 4)

	var b strings.Builder
	b.WriteString(theme.Completed.Render("●") + " " + theme.Heading.Render("AI TUTOR"))
	b.WriteString("\n")
	b.WriteString(s.renderTranscript(width, chatHeight))
	b.WriteString("\n")
	s.chatInput.SetWidth(width - 4)
	b.WriteString(s.chatInput.View())
	b.WriteString("\n\n")

	b.WriteString(theme.Heading.Render("MY NOTES"))
	b.WriteString("\n")
	s.notes.SetWidth(width)
	s.notes.SetHeight(3)
	b.WriteString(s.notes.View())

	switch {
	case s.room.SummaryPending():
		b.WriteString("\n" + s.spinner.View() + theme.Hint.Render(" Generating..."))
	case s.room.Summary() != "":
		b.WriteString("\n" + theme.ChatModel.Bold(true).Render("Summary: "))
		b.WriteString(theme.Body.Width(width).Render(s.room.Summary()))
	default:
		b.WriteString("\n" + theme.Hint.Render("S AI summary"))
	}

	return lipgloss.NewStyle().Width(width).MaxHeight(height).Render(b.String())
}

// renderTranscript renders the chat bottom-up so the latest turns stay
// visible in height rows.
func (s *LessonScreen) renderTranscript(width, height int) string {
	var lines []string
	for _, m := range s.room.Transcript() {
		lines = append(lines, strings.Split(renderChatMessage(m, width), "\n")...)
	}
	if s.room.ChatPending() {
		lines = append(lines, s.spinner.View()+theme.Hint.Render(" Thinking..."))
	}
	if len(lines) > height {
		lines = lines[len(lines)-height:]
	}
	return strings.Join(lines, "\n")
}

func renderChatMessage(m gateway.ChatMessage, width int) string {
	if m.Role == gateway.ChatUser {
		return theme.ChatUser.Width(width).Align(lipgloss.Right).Render(m.Text + " ‹ You")
	}
	return theme.ChatModel.Width(width).Render("Tutor › " + m.Text)
}
