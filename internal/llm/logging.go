package llm

import (
	"context"
	"encoding/json"
	"time"

	"github.com/abhisek/rolwijzer/internal/logging"
	"github.com/abhisek/rolwijzer/internal/store"
)

type purposeKey struct{}

// WithPurpose labels the requests made with ctx, e.g. "coach".
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the label set by WithPurpose, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok && v != "" {
		return v
	}
	return "unknown"
}

// WithLogging writes a log line and, when repo is not nil, a stored event
// for every request. A failed event write is logged and otherwise ignored.
func WithLogging(p Provider, repo store.EventRepo, log *logging.Logger) Provider {
	if log == nil {
		log = logging.Nop()
	}
	return &loggingProvider{Provider: p, repo: repo, log: log}
}

type loggingProvider struct {
	Provider
	repo store.EventRepo
	log  *logging.Logger
}

func (l *loggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.Provider.Generate(ctx, req)

	ev := store.LLMRequestEventData{
		Provider:    l.ProviderName(),
		Model:       l.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: requestBody(req),
	}
	if resp != nil {
		ev.Model = resp.Model
		ev.InputTokens = resp.Usage.InputTokens
		ev.OutputTokens = resp.Usage.OutputTokens
		ev.ResponseBody = string(resp.Content)
	}

	fields := []any{"provider", ev.Provider, "model", ev.Model, "purpose", ev.Purpose, "latency_ms", ev.LatencyMs}
	if err != nil {
		ev.ErrorMessage = err.Error()
		l.log.Warn("llm request failed", append(fields, "error", err)...)
	} else {
		l.log.Info("llm request", append(fields, "input_tokens", ev.InputTokens, "output_tokens", ev.OutputTokens)...)
	}

	if l.repo != nil {
		if werr := l.repo.AppendLLMRequest(ctx, ev); werr != nil {
			l.log.Error("record llm request", "error", werr)
		}
	}
	return resp, err
}

type storedRequest struct {
	System string         `json:"system,omitempty"`
	Prompt string         `json:"prompt"`
	Schema string         `json:"schema,omitempty"`
	Format map[string]any `json:"format,omitempty"`
}

// requestBody is the stored form of a request: indented JSON so that
// `rolwijzer llm view` can print it as is.
func requestBody(req Request) string {
	sr := storedRequest{System: req.System, Prompt: req.Prompt}
	if req.Schema != nil {
		sr.Schema = req.Schema.Name
		sr.Format = req.Schema.Definition
	}
	b, err := json.MarshalIndent(sr, "", "  ")
	if err != nil {
		return req.Prompt
	}
	return string(b)
}
