package lessonroom

import "github.com/abhisek/academy/internal/gateway"

// PassThreshold returns the minimum score that passes a quiz of n
// questions: ceil(n * 0.6).
func PassThreshold(n int) int {
	if n <= 0 {
		return 0
	}
	return (n*6 + 9) / 10
}

// Outcome describes the state after advancing a quiz.
type Outcome struct {
	LessonID string
	Finished bool
	Passed   bool
	Score    int
	Total    int
}

// QuizSession tracks progress through one quiz. It is discarded when the
// lesson changes; Retry keeps the question set.
type QuizSession struct {
	quiz      gateway.Quiz
	index     int
	selected  int // -1 when nothing is selected
	score     int
	submitted bool
	passed    bool
}

// NewQuizSession starts a session at the first question.
func NewQuizSession(quiz gateway.Quiz) *QuizSession {
	return &QuizSession{quiz: quiz, selected: -1}
}

// Quiz returns the question set.
func (s *QuizSession) Quiz() gateway.Quiz { return s.quiz }

// Index returns the zero-based current question index.
func (s *QuizSession) Index() int { return s.index }

// Total returns the number of questions.
func (s *QuizSession) Total() int { return s.quiz.Len() }

// Score returns the running score.
func (s *QuizSession) Score() int { return s.score }

// Submitted reports whether the last question has been answered.
func (s *QuizSession) Submitted() bool { return s.submitted }

// Passed reports whether the submitted score met the threshold.
func (s *QuizSession) Passed() bool { return s.passed }

// Selected returns the selected option of the current question.
func (s *QuizSession) Selected() (int, bool) {
	return s.selected, s.selected >= 0
}

// Question returns the current question.
func (s *QuizSession) Question() (gateway.Question, bool) {
	if s.index >= s.quiz.Len() {
		return gateway.Question{}, false
	}
	return s.quiz.Questions[s.index], true
}

// IsLast reports whether the current question is the final one.
func (s *QuizSession) IsLast() bool {
	return s.index == s.quiz.Len()-1
}

// Select picks an option for the current question. It is rejected once
// the quiz is submitted or when i is not an option.
func (s *QuizSession) Select(i int) bool {
	if s.submitted {
		return false
	}
	q, ok := s.Question()
	if !ok || i < 0 || i >= len(q.Options) {
		return false
	}
	s.selected = i
	return true
}

// Advance scores the selected answer and moves on. On the last question
// the quiz is finalized and the outcome reports whether it passed. It
// returns false when nothing is selected or the quiz is already submitted.
func (s *QuizSession) Advance() (Outcome, bool) {
	if s.submitted || s.selected < 0 {
		return Outcome{}, false
	}
	q, ok := s.Question()
	if !ok {
		return Outcome{}, false
	}

	if s.selected == q.CorrectOptionIndex {
		s.score++
	}

	if !s.IsLast() {
		s.index++
		s.selected = -1
		return Outcome{Score: s.score, Total: s.Total()}, true
	}

	s.submitted = true
	s.passed = s.score >= PassThreshold(s.Total())
	return Outcome{Finished: true, Passed: s.passed, Score: s.score, Total: s.Total()}, true
}

// Retry restarts a failed quiz with the same questions.
func (s *QuizSession) Retry() bool {
	if !s.submitted || s.passed {
		return false
	}
	s.index = 0
	s.selected = -1
	s.score = 0
	s.submitted = false
	return true
}
