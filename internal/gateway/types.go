package gateway

import (
	"fmt"
	"time"
)

// OptionsPerQuestion is the number of choices every quiz question offers.
const OptionsPerQuestion = 4

// Quiz is a generated multiple-choice quiz for one lesson.
type Quiz struct {
	Questions []Question `json:"questions"`
}

// Question is a single multiple-choice question.
type Question struct {
	ID                 int      `json:"id"`
	Question           string   `json:"question"`
	Options            []string `json:"options"`
	CorrectOptionIndex int      `json:"correctOptionIndex"`
}

// Len returns the number of questions.
func (q Quiz) Len() int { return len(q.Questions) }

// Check reports the first structural problem with a decoded quiz.
func (q Quiz) Check() error {
	if len(q.Questions) == 0 {
		return fmt.Errorf("quiz has no questions")
	}
	for i, question := range q.Questions {
		if question.Question == "" {
			return fmt.Errorf("question %d has no text", i+1)
		}
		if len(question.Options) != OptionsPerQuestion {
			return fmt.Errorf("question %d has %d options, want %d", i+1, len(question.Options), OptionsPerQuestion)
		}
		if question.CorrectOptionIndex < 0 || question.CorrectOptionIndex >= len(question.Options) {
			return fmt.Errorf("question %d correct index %d out of range", i+1, question.CorrectOptionIndex)
		}
	}
	return nil
}

// ChatRole identifies who wrote a chat message.
type ChatRole string

const (
	ChatUser  ChatRole = "user"
	ChatModel ChatRole = "model"
)

// ChatMessage is one turn of a tutor conversation.
type ChatMessage struct {
	Role ChatRole
	Text string
	At   time.Time
}
