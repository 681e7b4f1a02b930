// Package gateway produces generated learning aids for a lesson: quizzes,
// assignments, explanations, tutor replies and note summaries.
//
// Every operation is fail-soft. Errors are logged and replaced with fixed
// fallback content so callers never handle a generation failure.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/abhisek/academy/internal/llm"
)

var (
	errNoProvider = errors.New("no provider configured")
	errEmpty      = errors.New("empty response")
)

// Service generates lesson content through an llm.Provider.
type Service struct {
	provider llm.Provider
	cfg      Config
	logger   *zap.Logger
}

// NewService creates a gateway. A nil provider is valid: every call then
// returns fallback content without touching the network.
func NewService(provider llm.Provider, cfg Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{provider: provider, cfg: cfg, logger: logger.Named("gateway")}
}

// Available reports whether a provider is configured.
func (s *Service) Available() bool {
	return s != nil && s.provider != nil
}

// GenerateQuiz returns a multiple-choice quiz for the lesson title, or the
// canned fallback quiz on any failure.
func (s *Service) GenerateQuiz(ctx context.Context, title string) Quiz {
	quiz, err := s.generateQuiz(ctx, title)
	if err != nil {
		s.logFailure("quiz", title, err)
		return FallbackQuiz()
	}
	return quiz
}

func (s *Service) generateQuiz(ctx context.Context, title string) (Quiz, error) {
	if !s.Available() {
		return Quiz{}, errNoProvider
	}

	ctx = llm.WithPurpose(ctx, "quiz")
	resp, err := s.provider.Generate(ctx, llm.Request{
		System:      quizSystemPrompt,
		Messages:    llm.Ask(buildQuizUserMessage(title)),
		Schema:      QuizSchema,
		MaxTokens:   s.cfg.QuizMaxTokens,
		Temperature: s.cfg.QuizTemperature,
	})
	if err != nil {
		return Quiz{}, fmt.Errorf("quiz generation: %w", err)
	}

	var quiz Quiz
	if err := resp.Decode(&quiz); err != nil {
		return Quiz{}, err
	}
	if err := quiz.Check(); err != nil {
		return Quiz{}, fmt.Errorf("check quiz: %w", err)
	}
	return quiz, nil
}

// GenerateAssignment returns a markdown programming lab for the lesson.
func (s *Service) GenerateAssignment(ctx context.Context, title string) string {
	return s.text(ctx, "assignment", title, llm.Request{
		System:    assignmentSystemPrompt,
		Messages:  llm.Ask(buildAssignmentUserMessage(title)),
		MaxTokens: s.cfg.AssignmentMaxTokens,
	}, AssignmentErrorText, AssignmentEmptyText)
}

// ExplainLesson returns a two-sentence pitch for why the lesson matters.
func (s *Service) ExplainLesson(ctx context.Context, title, description string) string {
	return s.text(ctx, "explain", title, llm.Request{
		Messages:  llm.Ask(buildExplainUserMessage(title, description)),
		MaxTokens: s.cfg.ExplainMaxTokens,
	}, ExplainErrorText, ExplainEmptyText)
}

// Chat continues a tutor conversation about the lesson. history holds the
// prior turns; message is the new user question.
func (s *Service) Chat(ctx context.Context, history []ChatMessage, message, title string) string {
	return s.text(ctx, "chat", title, llm.Request{
		System:    chatSystemPrompt(title),
		Messages:  llm.Ask(buildChatUserMessage(history, message)),
		MaxTokens: s.cfg.ChatMaxTokens,
	}, ChatErrorText, ChatEmptyText)
}

// SummarizeNotes condenses the student's notes for the lesson. Blank notes
// are answered locally.
func (s *Service) SummarizeNotes(ctx context.Context, title, notes string) string {
	if strings.TrimSpace(notes) == "" {
		return SummaryEmptyText
	}
	return s.text(ctx, "notes", title, llm.Request{
		System:    summarySystemPrompt,
		Messages:  llm.Ask(buildSummaryUserMessage(title, notes)),
		MaxTokens: s.cfg.SummaryMaxTokens,
	}, SummaryErrorText, SummaryEmptyText)
}

// text runs a free-text request. An error yields onError; an empty reply
// yields onEmpty.
func (s *Service) text(ctx context.Context, purpose, title string, req llm.Request, onError, onEmpty string) string {
	if !s.Available() {
		s.logFailure(purpose, title, errNoProvider)
		return onError
	}

	resp, err := s.provider.Generate(llm.WithPurpose(ctx, purpose), req)
	if err != nil {
		s.logFailure(purpose, title, err)
		return onError
	}

	text := resp.Text()
	if text == "" {
		s.logFailure(purpose, title, errEmpty)
		return onEmpty
	}
	return text
}

func (s *Service) logFailure(purpose, title string, err error) {
	if errors.Is(err, errNoProvider) {
		s.logger.Debug("using fallback content",
			zap.String("purpose", purpose),
			zap.String("lesson", title),
		)
		return
	}
	var auth *llm.ErrUnauthorized
	if errors.As(err, &auth) {
		s.logger.Error("provider rejected the API key, using fallback content",
			zap.String("purpose", purpose),
			zap.String("lesson", title),
			zap.String("provider", auth.Provider),
		)
		return
	}
	s.logger.Warn("generation failed, using fallback content",
		zap.String("purpose", purpose),
		zap.String("lesson", title),
		zap.Error(err),
	)
}
