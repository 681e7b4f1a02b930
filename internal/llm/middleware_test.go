package llm

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/academy/internal/store"
)

type recordingCallLog struct {
	store.NopCallLog
	mu    sync.Mutex
	calls []store.Call
	err   error
}

func (r *recordingCallLog) Append(_ context.Context, c store.Call) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, c)
	return r.err
}

func TestLoggingProvider_RecordsSuccess(t *testing.T) {
	mock := NewMockProvider(MockResponse{
		Content: json.RawMessage(`Backprop is the chain rule.`),
		Usage:   Usage{InputTokens: 12, OutputTokens: 7},
	})
	calls := &recordingCallLog{}
	p := WithLogging(mock, "mock", calls, zap.NewNop())

	ctx := WithSession(WithLesson(WithPurpose(context.Background(), "chat"), "micrograd"), "sess-9")
	if _, err := p.Generate(ctx, Request{System: "sys", Messages: []Message{{Role: RoleUser, Content: "why?"}}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(calls.calls) != 1 {
		t.Fatalf("expected 1 recorded call, got %d", len(calls.calls))
	}
	c := calls.calls[0]
	if c.Purpose != "chat" || c.LessonID != "micrograd" || c.SessionID != "sess-9" {
		t.Fatalf("context tags not recorded: %+v", c)
	}
	if !c.Success || c.InputTokens != 12 || c.OutputTokens != 7 {
		t.Fatalf("unexpected call record: %+v", c)
	}
	if c.Provider != "mock" || c.Model != "mock" {
		t.Fatalf("unexpected provider/model: %q %q", c.Provider, c.Model)
	}
	if c.ResponseBody != "Backprop is the chain rule." {
		t.Fatalf("unexpected response body %q", c.ResponseBody)
	}
	if c.RequestBody == "" {
		t.Fatal("expected request body to be recorded")
	}
}

func TestLoggingProvider_RecordsFailureAndIgnoresLogErrors(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("offline")}})
	calls := &recordingCallLog{err: errors.New("disk full")}
	p := WithLogging(mock, "mock", calls, nil)

	_, err := p.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected provider error to pass through, got %v", err)
	}
	if len(calls.calls) != 1 {
		t.Fatalf("expected 1 recorded call, got %d", len(calls.calls))
	}
	if calls.calls[0].Success || calls.calls[0].ErrorMessage == "" {
		t.Fatalf("expected failed call with message, got %+v", calls.calls[0])
	}
	if calls.calls[0].Purpose != "unknown" {
		t.Fatalf("expected default purpose, got %q", calls.calls[0].Purpose)
	}
}

type blockingProvider struct{}

func (blockingProvider) Generate(ctx context.Context, _ Request) (*Response, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (blockingProvider) ModelID() string { return "blocking" }

func TestTimeoutProvider(t *testing.T) {
	p := WithTimeout(blockingProvider{}, 20*time.Millisecond)

	start := time.Now()
	_, err := p.Generate(context.Background(), Request{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if time.Since(start) > 2*time.Second {
		t.Fatal("timeout did not fire")
	}
	if p.ModelID() != "blocking" {
		t.Fatalf("unexpected model id %q", p.ModelID())
	}
}

func TestWithTimeout_DisabledReturnsInner(t *testing.T) {
	inner := NewMockProvider()
	if got := WithTimeout(inner, 0); got != Provider(inner) {
		t.Fatal("expected inner provider for zero timeout")
	}
}

func TestNewProvider_Mock(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{Provider: "mock", Timeout: time.Second}, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "mock" {
		t.Fatalf("expected mock model, got %q", p.ModelID())
	}
}

func TestNewProvider_RejectsMissingKey(t *testing.T) {
	if _, err := NewProvider(context.Background(), Config{Provider: "gemini"}, nil, nil); err == nil {
		t.Fatal("expected error for gemini without key")
	}
}
