package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/edututor/edututor/internal/store"
)

// usageLogger records every request in the event repo with its token
// counts and estimated cost, and writes one log line per request.
type usageLogger struct {
	Provider
	events store.EventRepo
	logger *slog.Logger
}

// WithUsageLog wraps p so each request is recorded in events.
func WithUsageLog(p Provider, events store.EventRepo, logger *slog.Logger) Provider {
	if logger == nil {
		logger = slog.Default()
	}
	return &usageLogger{Provider: p, events: events, logger: logger}
}

func (u *usageLogger) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := u.Provider.Generate(ctx, req)
	latency := time.Since(start).Milliseconds()

	purpose := string(req.Purpose)
	if purpose == "" {
		purpose = "unknown"
	}
	ev := store.LLMRequestEventData{
		Provider:    u.Name(),
		Model:       u.ModelID(),
		Purpose:     purpose,
		LatencyMs:   latency,
		Success:     err == nil,
		RequestBody: transcript(req),
	}
	if resp != nil {
		ev.Model = resp.Model
		ev.InputTokens = resp.Usage.InputTokens
		ev.OutputTokens = resp.Usage.OutputTokens
		ev.ResponseBody = string(resp.Content)
	}
	if cost := LookupCost(ev.Model); cost != nil {
		ev.CostUSD = cost.Cost(ev.InputTokens, ev.OutputTokens)
		ev.CostKnown = true
	}

	log := u.logger.With("provider", ev.Provider, "model", ev.Model, "purpose", purpose, "latency_ms", latency)
	if err != nil {
		ev.ErrorMessage = err.Error()
		log.Warn("llm request failed", "error", err)
	} else {
		log.Info("llm request", "input_tokens", ev.InputTokens, "output_tokens", ev.OutputTokens)
	}

	// A lost usage record never fails the request.
	if lerr := u.events.AppendLLMRequest(ctx, ev); lerr != nil {
		u.logger.Warn("recording llm request", "error", lerr)
	}
	return resp, err
}

// transcript renders a request the way it is shown in the usage log.
func transcript(req Request) string {
	var b strings.Builder
	if req.System != "" {
		fmt.Fprintf(&b, "[system]\n%s\n\n", req.System)
	}
	for _, m := range req.Messages {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", m.Role, m.Content)
	}
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			fmt.Fprintf(&b, "[schema: %s]\n%s\n", req.Schema.Name, def)
		}
	}
	return b.String()
}
