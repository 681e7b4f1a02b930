package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Provider generates text or schema-validated JSON from a prompt.
type Provider interface {
	// Generate runs req. When req.Schema is set the returned Content has
	// already been validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	ModelID() string
}

type Request struct {
	System   string
	Messages []Message

	// Schema requests structured output. Nil means free text.
	Schema *Schema

	MaxTokens int

	// Temperature in [0, 1]. Zero leaves the provider default.
	Temperature float64
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role
	Content string
}

// Ask is a conversation of a single user turn.
func Ask(prompt string) []Message {
	return []Message{{Role: RoleUser, Content: prompt}}
}

// Prompt returns the last user turn of the request.
func (r Request) Prompt() string {
	for i := len(r.Messages) - 1; i >= 0; i-- {
		if r.Messages[i].Role == RoleUser {
			return r.Messages[i].Content
		}
	}
	return ""
}

// Schema is a named JSON Schema. Name doubles as the compile cache key and
// the OpenAI response format name, so it must be unique per shape.
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

type Response struct {
	// Content holds validated JSON for structured requests and raw text
	// bytes otherwise.
	Content json.RawMessage
	Usage   Usage
	Model   string

	// StopReason is "end" or "max_tokens".
	StopReason string
}

type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// Text returns the body as trimmed plain text.
func (r *Response) Text() string {
	if r == nil {
		return ""
	}
	return strings.TrimSpace(string(r.Content))
}

// Decode unmarshals structured content into v.
func (r *Response) Decode(v any) error {
	if r == nil || len(r.Content) == 0 {
		return fmt.Errorf("decode: empty response")
	}
	if err := json.Unmarshal(r.Content, v); err != nil {
		return fmt.Errorf("decode %s response: %w", r.Model, err)
	}
	return nil
}
