// Package llm talks to the hosted language models behind the reflection
// coach. Every backend answers a single-turn prompt with JSON that is checked
// against the schema the caller asked for.
package llm

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Provider generates a structured answer for one prompt.
type Provider interface {
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID is the resolved model identifier, e.g. "gpt-4o-mini".
	ModelID() string

	// ProviderName is the backend family, e.g. "anthropic".
	ProviderName() string
}

// Request is a single-turn prompt.
type Request struct {
	System string
	Prompt string

	// Schema, when set, asks the backend for JSON matching it. The answer is
	// validated before it is returned.
	Schema *Schema

	MaxTokens   int
	Temperature float64
}

// Schema is a named JSON Schema. It is compiled on first use.
type Schema struct {
	// Name is kebab-case, e.g. "reflection-review". Backends that need a
	// tool or format name use it verbatim.
	Name        string
	Description string
	Definition  map[string]any

	once     sync.Once
	compiled *jsonschema.Schema
	err      error
}

// Stop reasons normalized across backends.
const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
)

// Response is what a backend produced.
type Response struct {
	// Content is JSON. Without a schema it is whatever text the model
	// returned.
	Content    json.RawMessage
	Usage      Usage
	Model      string
	StopReason string
}

// Usage is the token count of one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Total is input plus output tokens.
func (u Usage) Total() int { return u.InputTokens + u.OutputTokens }

// finish turns a raw backend answer into a Response. A truncated answer is
// never validated; it is reported as ErrMaxTokensExceeded.
func finish(req Request, resp *Response) (*Response, error) {
	if resp.StopReason == StopMaxTokens {
		return nil, &ErrMaxTokensExceeded{Content: resp.Content}
	}
	if err := validateResponse(req.Schema, resp.Content); err != nil {
		return nil, err
	}
	return resp, nil
}
