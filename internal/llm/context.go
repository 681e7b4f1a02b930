package llm

import "context"

type contextKey string

const (
	purposeKey contextKey = "llm_purpose"
	lessonKey  contextKey = "llm_lesson"
	sessionKey contextKey = "llm_session"
)

// WithPurpose attaches a purpose label ("quiz", "chat", ...) for call logging.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey, purpose)
}

// PurposeFrom extracts the purpose label from the context.
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey).(string); ok {
		return v
	}
	return "unknown"
}

// WithLesson tags the context with the lesson a call is made for.
func WithLesson(ctx context.Context, lessonID string) context.Context {
	return context.WithValue(ctx, lessonKey, lessonID)
}

// LessonFrom returns the lesson id tagged on the context, or "".
func LessonFrom(ctx context.Context) string {
	v, _ := ctx.Value(lessonKey).(string)
	return v
}

// WithSession tags the context with the app session id.
func WithSession(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionKey, sessionID)
}

// SessionFrom returns the session id tagged on the context, or "".
func SessionFrom(ctx context.Context) string {
	v, _ := ctx.Value(sessionKey).(string)
	return v
}
