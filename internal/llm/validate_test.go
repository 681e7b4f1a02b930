package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func questionSchema() *Schema {
	return &Schema{
		Name:        "test-question",
		Description: "One multiple choice question",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"question": map[string]any{"type": "string"},
				"options": map[string]any{
					"type":     "array",
					"minItems": 2,
					"items":    map[string]any{"type": "string"},
				},
				"correctOptionIndex": map[string]any{"type": "integer", "minimum": 0},
				"difficulty":         map[string]any{"type": "string", "enum": []any{"easy", "hard"}},
			},
			"required": []any{"question", "options", "correctOptionIndex"},
		},
	}
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", `{"question":"What is a tensor?","options":["array","graph"],"correctOptionIndex":0,"difficulty":"easy"}`, false},
		{"valid without optional", `{"question":"q","options":["a","b"],"correctOptionIndex":1}`, false},
		{"missing required", `{"question":"q","options":["a","b"]}`, true},
		{"wrong type", `{"question":"q","options":["a","b"],"correctOptionIndex":"one"}`, true},
		{"negative index", `{"question":"q","options":["a","b"],"correctOptionIndex":-1}`, true},
		{"too few options", `{"question":"q","options":["a"],"correctOptionIndex":0}`, true},
		{"invalid enum", `{"question":"q","options":["a","b"],"correctOptionIndex":0,"difficulty":"medium"}`, true},
		{"malformed JSON", `{not json}`, true},
		{"empty", ``, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(questionSchema(), json.RawMessage(tt.raw))
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("expected no error, got: %v", err)
				}
				return
			}
			var invErr *ErrInvalidResponse
			if !errors.As(err, &invErr) {
				t.Fatalf("expected ErrInvalidResponse, got: %T (%v)", err, err)
			}
		})
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`plain text reply`)); err != nil {
		t.Fatalf("expected no error with nil schema, got: %v", err)
	}
}

func TestValidateResponse_NamesSchema(t *testing.T) {
	err := validateResponse(questionSchema(), json.RawMessage(`{}`))
	var invErr *ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrInvalidResponse, got %T", err)
	}
	if invErr.Schema != "test-question" {
		t.Errorf("Schema = %q, want test-question", invErr.Schema)
	}
}

func TestCheckStructured(t *testing.T) {
	raw := json.RawMessage(`{"question":"q","options":["a","b"],"correctOptionIndex":0}`)

	got, err := checkStructured(questionSchema(), "end", raw)
	if err != nil {
		t.Fatalf("expected valid response, got %v", err)
	}
	if string(got) != string(raw) {
		t.Errorf("content changed: %s", got)
	}

	_, err = checkStructured(questionSchema(), "max_tokens", json.RawMessage(`{"question":"q","opt`))
	var maxTok *ErrMaxTokensExceeded
	if !errors.As(err, &maxTok) {
		t.Fatalf("expected ErrMaxTokensExceeded, got %T (%v)", err, err)
	}

	text, err := checkStructured(nil, "max_tokens", json.RawMessage(`cut off`))
	if err != nil || string(text) != "cut off" {
		t.Fatalf("free text is never rejected, got %q, %v", text, err)
	}
}

func TestCheckStructured_StripsFence(t *testing.T) {
	fenced := "```json\n{\"question\":\"q\",\"options\":[\"a\",\"b\"],\"correctOptionIndex\":1}\n```"
	got, err := checkStructured(questionSchema(), "end", json.RawMessage(fenced))
	if err != nil {
		t.Fatalf("fenced JSON rejected: %v", err)
	}
	if got[0] != '{' || got[len(got)-1] != '}' {
		t.Errorf("fence not stripped: %s", got)
	}
}
