package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestValidateResponse(t *testing.T) {
	schema := &Schema{
		Name: "validate-review",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"summary":   map[string]any{"type": "string"},
				"strengths": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
				"missing": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "string", "enum": []any{"situation", "task", "action", "result", "reflection"}},
				},
			},
			"required":             []any{"summary"},
			"additionalProperties": false,
		},
	}

	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"full", `{"summary":"Sterk","strengths":["concreet"],"missing":["result"]}`, false},
		{"required only", `{"summary":"Sterk"}`, false},
		{"missing required", `{"strengths":["concreet"]}`, true},
		{"wrong type", `{"summary":3}`, true},
		{"enum violation", `{"summary":"x","missing":["outcome"]}`, true},
		{"extra field", `{"summary":"x","score":9}`, true},
		{"not json", `Hier is mijn feedback: ...`, true},
		{"empty", ``, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(schema, json.RawMessage(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("validateResponse() = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var inv *ErrInvalidResponse
				if !errors.As(err, &inv) {
					t.Errorf("got %T, want *ErrInvalidResponse", err)
				} else if string(inv.Content) != tt.raw {
					t.Errorf("Content = %q, want the raw answer", inv.Content)
				}
			}
		})
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`plain text`)); err != nil {
		t.Errorf("nil schema rejected answer: %v", err)
	}
}

func TestSchema_BadDefinition(t *testing.T) {
	bad := &Schema{Name: "bad", Definition: map[string]any{"type": 12}}
	if err := validateResponse(bad, json.RawMessage(`{}`)); err == nil {
		t.Fatal("expected compile error")
	}
	// The failure is cached on the schema value.
	if _, err := bad.compile(); err == nil {
		t.Error("second compile succeeded")
	}
}
