package coach

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/rolwijzer/internal/catalog"
	"github.com/abhisek/rolwijzer/internal/llm"
)

// ErrDisabled is returned when the coach has no provider.
var ErrDisabled = errors.New("coach is not configured")

// ErrEmptyText is returned when there is nothing to review.
var ErrEmptyText = errors.New("reflection is empty")

// Input is the reflection to review together with its context.
type Input struct {
	Role      catalog.Role
	Situation catalog.Situation
	// Question is nil for the closing reflection of a situation.
	Question *catalog.Question
	Text     string
}

// Feedback is the coach's structured review.
type Feedback struct {
	Summary      string
	Strengths    []string
	Suggestions  []string
	MissingSTARR []catalog.STARRPart
}

// Service reviews reflections with an LLM. A nil provider disables it.
type Service struct {
	provider llm.Provider
	cfg      Config
}

// NewService creates a coach. provider may be nil.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

// Enabled reports whether a provider is configured.
func (s *Service) Enabled() bool {
	return s != nil && s.provider != nil
}

type reviewOutput struct {
	Summary      string   `json:"summary"`
	Strengths    []string `json:"strengths"`
	Suggestions  []string `json:"suggestions"`
	MissingSTARR []string `json:"missing_starr"`
}

// Review asks the LLM for feedback on a reflection. It blocks until the
// provider answers; the TUI runs it inside a tea.Cmd.
func (s *Service) Review(ctx context.Context, in Input) (*Feedback, error) {
	if !s.Enabled() {
		return nil, ErrDisabled
	}
	if strings.TrimSpace(in.Text) == "" {
		return nil, ErrEmptyText
	}

	ctx = llm.WithPurpose(ctx, "coach")

	req := llm.Request{
		System:      systemPrompt,
		Prompt:      buildUserMessage(in),
		Schema:      ReviewSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("reflection review: %w", err)
	}

	var out reviewOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse review response: %w", err)
	}

	fb := &Feedback{
		Summary:     out.Summary,
		Strengths:   out.Strengths,
		Suggestions: out.Suggestions,
	}
	for _, key := range out.MissingSTARR {
		if part, ok := starrPart(key); ok {
			fb.MissingSTARR = append(fb.MissingSTARR, part)
		}
	}
	return fb, nil
}

func starrPart(key string) (catalog.STARRPart, bool) {
	for _, p := range catalog.STARRParts {
		if p.Key == key {
			return p, true
		}
	}
	return catalog.STARRPart{}, false
}
