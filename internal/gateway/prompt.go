package gateway

import (
	"fmt"
	"strings"
)

const quizSystemPrompt = `You write quizzes for a deep learning course taught in the style of Andrej Karpathy. Questions test conceptual understanding and technical detail, never trivia about the video itself.`

func buildQuizUserMessage(title string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Lesson: %q\n", title)
	fmt.Fprintf(&b, `
Instructions:
Create a challenging 3-question multiple choice quiz for this lesson.
1. Each question has exactly %d options.
2. Exactly one option is correct; give its zero-based index in correctOptionIndex.
3. Number the questions with id starting at 1.
4. Focus on conceptual understanding and the technical details taught in the lesson.`, OptionsPerQuestion)

	return b.String()
}

const assignmentSystemPrompt = `You design programming labs for a deep learning course. Labs read like a Stanford CS231n notebook: academic yet accessible, in Karpathy style.`

func buildAssignmentUserMessage(title string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Lesson: %q\n", title)
	b.WriteString(`
Instructions:
Design a comprehensive programming assignment (Lab) for this lesson.
Structure the response in Markdown with these sections:
1. **Introduction**: Brief context.
2. **Learning Objectives**: Bullet points.
3. **Setup**: Dependencies to install.
4. **Part 1: [Concept Name]**: Explanation followed by a coding exercise. Include a code block with TODO comments.
5. **Part 2: [Next Concept]**: Advanced step.
6. **Submission**: Instructions.

Use distinct headers. Make the code blocks look like Python notebook cells.`)

	return b.String()
}

func buildExplainUserMessage(title, description string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Provide a short, 2-sentence exciting summary of why a student must learn %q.\n", title)
	fmt.Fprintf(&b, "Context: %s\n", description)
	b.WriteString("Style: Technical but enthusiastic, like Andrej Karpathy.\n")
	b.WriteString("Mention the key technical 'aha' moment they will get.")

	return b.String()
}

func chatSystemPrompt(title string) string {
	return fmt.Sprintf(`You are an expert AI Teaching Assistant for Andrej Karpathy's Deep Learning courses.
The user is currently studying: %q.
Answer their questions clearly, concisely, and using Python examples where relevant.
Be encouraging but technically rigorous.`, title)
}

// buildChatUserMessage flattens the transcript into one prompt so every
// backend sees the same turn structure regardless of its role rules.
func buildChatUserMessage(history []ChatMessage, message string) string {
	var b strings.Builder

	b.WriteString("Conversation History:\n")
	for _, m := range history {
		speaker := "User"
		if m.Role == ChatModel {
			speaker = "Model"
		}
		fmt.Fprintf(&b, "%s: %s\n", speaker, m.Text)
	}
	fmt.Fprintf(&b, "\nUser: %s\nModel:", message)

	return b.String()
}

const summarySystemPrompt = `You condense a student's personal study notes. Keep their wording where possible and never add facts that are not in the notes.`

func buildSummaryUserMessage(title, notes string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Lesson: %q\n\nNotes:\n%s\n", title, notes)
	b.WriteString(`
Instructions:
Summarize these notes in 2-3 sentences focused on the key takeaways.`)

	return b.String()
}
