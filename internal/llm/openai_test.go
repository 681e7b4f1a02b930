package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOpenAIProvider(t *testing.T, handler http.HandlerFunc) *OpenAIProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "test-key", Model: "gpt-4o-mini", BaseURL: server.URL + "/v1/"})
	require.NoError(t, err)
	return p
}

func chatReply(content, finish string) map[string]any {
	return map[string]any{
		"id":     "chatcmpl-test",
		"object": "chat.completion",
		"model":  "gpt-4o-mini",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": content},
			"finish_reason": finish,
		}},
		"usage": map[string]any{"prompt_tokens": 40, "completion_tokens": 25, "total_tokens": 65},
	}
}

func TestOpenAIProvider_StructuredQuiz(t *testing.T) {
	// ChatCompletionRequest cannot be decoded once a JSON schema is set,
	// so the body is inspected loosely.
	var got struct {
		User           string `json:"user"`
		ResponseFormat struct {
			Type       string `json:"type"`
			JSONSchema struct {
				Name   string `json:"name"`
				Strict bool   `json:"strict"`
			} `json:"json_schema"`
		} `json:"response_format"`
	}
	p := newTestOpenAIProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatReply(`{"question":"What does backprop compute?","options":["loss","gradients"],"correctOptionIndex":1}`, "stop"))
	})

	resp, err := p.Generate(context.Background(), Request{
		System:    "You are a teaching assistant for a deep learning course.",
		Messages:  Ask("Create a quiz for: Intro to Neural Networks."),
		MaxTokens: 256,
		Schema:    questionSchema(),
	})
	require.NoError(t, err)

	assert.Equal(t, Usage{InputTokens: 40, OutputTokens: 25, TotalTokens: 65}, resp.Usage)
	assert.Equal(t, "end", resp.StopReason)
	assert.Equal(t, "json_schema", got.ResponseFormat.Type)
	assert.Equal(t, "test-question", got.ResponseFormat.JSONSchema.Name)
	assert.True(t, got.ResponseFormat.JSONSchema.Strict)
	assert.Empty(t, got.User, "no session on the context")
}

func TestOpenAIProvider_LengthFinishIsTruncation(t *testing.T) {
	p := newTestOpenAIProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatReply(`{"question":"q","opt`, "length"))
	})

	_, err := p.Generate(context.Background(), Request{Messages: Ask("quiz"), Schema: questionSchema()})
	var maxTok *ErrMaxTokensExceeded
	assert.ErrorAs(t, err, &maxTok)
}

func TestOpenAIProvider_Errors(t *testing.T) {
	tests := []struct {
		status int
		want   any
	}{
		{http.StatusUnauthorized, new(*ErrUnauthorized)},
		{http.StatusTooManyRequests, new(*ErrRateLimit)},
		{http.StatusInternalServerError, new(*ErrProviderUnavailable)},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			p := newTestOpenAIProvider(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				json.NewEncoder(w).Encode(map[string]any{
					"error": map[string]any{"type": "server_error", "message": "nope"},
				})
			})

			_, err := p.Generate(context.Background(), Request{Messages: Ask("test"), MaxTokens: 100})
			require.Error(t, err)
			assert.ErrorAs(t, err, tt.want)
		})
	}
}

func TestOpenAIProvider_UnauthorizedNamesProvider(t *testing.T) {
	p := newTestOpenAIProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := p.Generate(context.Background(), Request{Messages: Ask("test")})
	var auth *ErrUnauthorized
	require.ErrorAs(t, err, &auth)
	assert.Equal(t, "openai", auth.Provider)
}

func TestOpenAIProvider_ChatHistoryAndSession(t *testing.T) {
	var got openai.ChatCompletionRequest
	p := newTestOpenAIProvider(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatReply("  Gradients flow backwards.  ", "stop"))
	})

	ctx := WithSession(context.Background(), "sess-7")
	resp, err := p.Generate(ctx, Request{
		System: "You are a teaching assistant.",
		Messages: []Message{
			{Role: RoleUser, Content: "What is backprop?"},
			{Role: RoleAssistant, Content: "The chain rule, applied."},
			{Role: RoleUser, Content: "Which direction?"},
		},
		MaxTokens: 256,
	})
	require.NoError(t, err)
	assert.Equal(t, "Gradients flow backwards.", resp.Text())

	roles := make([]string, len(got.Messages))
	for i, m := range got.Messages {
		roles[i] = m.Role
	}
	assert.Equal(t, []string{
		openai.ChatMessageRoleSystem,
		openai.ChatMessageRoleUser,
		openai.ChatMessageRoleAssistant,
		openai.ChatMessageRoleUser,
	}, roles)
	assert.Equal(t, "sess-7", got.User)
	assert.Nil(t, got.ResponseFormat, "free text must not request a format")
}

func TestNewOpenAIProvider(t *testing.T) {
	_, err := NewOpenAIProvider(OpenAIConfig{})
	assert.Error(t, err)

	p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "k", Model: "gpt-4o"})
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", p.ModelID())
}
