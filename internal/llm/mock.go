package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// MockResponse is a canned response for the MockProvider.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockProvider is a deterministic Provider. Queued responses are returned
// in FIFO order; once the queue is empty Script answers, if set. Every
// request is recorded.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse
	Calls     []Request

	// Script answers requests after the queue runs dry. Nil means
	// ErrProviderUnavailable.
	Script func(Request) MockResponse
}

// NewMockProvider creates a MockProvider with the given canned responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

// NewOfflineProvider returns the provider behind `--provider mock`. It
// answers structured requests with a sample document shaped by the schema
// and text requests with a short placeholder, so the app can be driven
// end to end without network access.
func NewOfflineProvider() *MockProvider {
	return &MockProvider{Script: offlineReply}
}

func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	var resp MockResponse
	switch {
	case len(m.responses) > 0:
		resp = m.responses[0]
		m.responses = m.responses[1:]
	case m.Script != nil:
		resp = m.Script(req)
	default:
		return nil, &ErrProviderUnavailable{}
	}

	if resp.Err != nil {
		return nil, resp.Err
	}
	content, err := checkStructured(req.Schema, "end", resp.Content)
	if err != nil {
		return nil, err
	}

	return &Response{
		Content:    content,
		Usage:      resp.Usage,
		Model:      "mock",
		StopReason: "end",
	}, nil
}

// ModelID returns "mock".
func (m *MockProvider) ModelID() string {
	return "mock"
}

// AddResponse appends a canned response to the queue.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// CallCount returns the number of Generate calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

func offlineReply(req Request) MockResponse {
	usage := Usage{InputTokens: len(strings.Fields(req.System + " " + req.Prompt()))}

	if req.Schema != nil {
		doc, err := json.Marshal(sampleFor(req.Schema.Definition, 0))
		if err != nil {
			return MockResponse{Err: fmt.Errorf("offline sample: %w", err)}
		}
		return MockResponse{Content: doc, Usage: usage}
	}

	text := "Offline mode: no model is connected, so this is a placeholder answer."
	usage.OutputTokens = len(strings.Fields(text))
	return MockResponse{Content: json.RawMessage(text), Usage: usage}
}

// sampleFor builds a value satisfying the JSON schema def. i is the index
// of the enclosing array item and varies strings and integers between
// siblings.
func sampleFor(def map[string]any, i int) any {
	if enum, ok := def["enum"].([]any); ok && len(enum) > 0 {
		return enum[i%len(enum)]
	}

	switch def["type"] {
	case "object":
		props, _ := def["properties"].(map[string]any)
		keys := make([]string, 0, len(props))
		for k := range props {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		out := make(map[string]any, len(props))
		for _, k := range keys {
			sub, _ := props[k].(map[string]any)
			v := sampleFor(sub, i)
			if s, ok := v.(string); ok && s == "" {
				v = fmt.Sprintf("Sample %s %d", k, i+1)
			}
			out[k] = v
		}
		return out

	case "array":
		n := 3
		if lo, ok := schemaInt(def["minItems"]); ok && int(lo) > n {
			n = int(lo)
		}
		if hi, ok := schemaInt(def["maxItems"]); ok && int(hi) < n {
			n = int(hi)
		}
		items, _ := def["items"].(map[string]any)
		out := make([]any, n)
		for j := range out {
			v := sampleFor(items, j)
			if s, ok := v.(string); ok && s == "" {
				v = fmt.Sprintf("Option %d", j+1)
			}
			out[j] = v
		}
		return out

	case "integer", "number":
		v := int64(i)
		if lo, ok := schemaInt(def["minimum"]); ok && v < lo {
			v = lo
		}
		if hi, ok := schemaInt(def["maximum"]); ok && v > hi {
			v = hi
		}
		return v

	case "boolean":
		return i%2 == 0

	default:
		return ""
	}
}
