package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/academy/internal/store"
)

// LoggingProvider is a decorator that records every call in the call log
// and emits a structured log line.
type LoggingProvider struct {
	inner    Provider
	provider string
	calls    store.CallLog
	logger   *zap.Logger
}

// WithLogging wraps a Provider with call logging. name is the backend name
// ("gemini", "openai", ...) recorded alongside the model.
func WithLogging(p Provider, name string, calls store.CallLog, logger *zap.Logger) Provider {
	if calls == nil {
		calls = store.NopCallLog{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoggingProvider{inner: p, provider: name, calls: calls, logger: logger}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)
	latency := time.Since(start)

	call := store.Call{
		Timestamp:   start,
		SessionID:   SessionFrom(ctx),
		Provider:    l.provider,
		Model:       l.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LessonID:    LessonFrom(ctx),
		LatencyMs:   latency.Milliseconds(),
		Success:     err == nil,
		RequestBody: serializeRequest(req),
	}
	if resp != nil {
		call.InputTokens = resp.Usage.InputTokens
		call.OutputTokens = resp.Usage.OutputTokens
		call.ResponseBody = string(resp.Content)
		if resp.Model != "" {
			call.Model = resp.Model
		}
	}
	if err != nil {
		call.ErrorMessage = err.Error()
	}

	fields := []zap.Field{
		zap.String("provider", call.Provider),
		zap.String("model", call.Model),
		zap.String("purpose", call.Purpose),
		zap.String("lesson", call.LessonID),
		zap.Duration("latency", latency),
		zap.Int("input_tokens", call.InputTokens),
		zap.Int("output_tokens", call.OutputTokens),
	}
	if err != nil {
		l.logger.Warn("generation failed", append(fields, zap.Error(err))...)
	} else {
		l.logger.Debug("generation done", fields...)
	}

	// A failed write never fails the request.
	if logErr := l.calls.Append(context.WithoutCancel(ctx), call); logErr != nil {
		l.logger.Warn("record generation call", zap.Error(logErr))
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// serializeRequest builds a readable representation of the request.
func serializeRequest(req Request) string {
	var b strings.Builder

	if req.System != "" {
		b.WriteString("[system]\n")
		b.WriteString(req.System)
		b.WriteString("\n\n")
	}

	for _, m := range req.Messages {
		fmt.Fprintf(&b, "[%s]\n", m.Role)
		b.WriteString(m.Content)
		b.WriteString("\n\n")
	}

	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			fmt.Fprintf(&b, "[schema: %s]\n", req.Schema.Name)
			b.Write(def)
			b.WriteString("\n")
		}
	}

	return b.String()
}
