package store

import (
	"context"
	"sort"
)

// eventRepo implements EventRepo over the store's event slice.
type eventRepo struct {
	s *Store
}

func (r *eventRepo) AppendLLMRequest(_ context.Context, data LLMRequestEventData) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.events = append(r.s.events, LLMRequestEventRecord{
		ID:                  len(r.s.events) + 1,
		Sequence:            r.s.seq.Next(),
		Timestamp:           r.s.now(),
		LLMRequestEventData: data,
	})
	return nil
}

func (r *eventRepo) QueryLLMEvents(_ context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []LLMRequestEventRecord
	for i := len(r.s.events) - 1; i >= 0; i-- {
		e := r.s.events[i]
		if opts.After > 0 && e.Sequence <= opts.After {
			continue
		}
		if opts.Before > 0 && e.Sequence >= opts.Before {
			continue
		}
		if !opts.From.IsZero() && e.Timestamp.Before(opts.From) {
			continue
		}
		if !opts.To.IsZero() && e.Timestamp.After(opts.To) {
			continue
		}
		out = append(out, e)
		if opts.Limit > 0 && len(out) == opts.Limit {
			break
		}
	}
	return out, nil
}

func (r *eventRepo) LLMUsageByPurpose(_ context.Context) ([]LLMUsageStats, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	byPurpose := make(map[string]*LLMUsageStats)
	latency := make(map[string]int64)
	for _, e := range r.s.events {
		st, ok := byPurpose[e.Purpose]
		if !ok {
			st = &LLMUsageStats{Purpose: e.Purpose}
			byPurpose[e.Purpose] = st
		}
		st.Calls++
		st.InputTokens += e.InputTokens
		st.OutputTokens += e.OutputTokens
		latency[e.Purpose] += e.LatencyMs
	}

	out := make([]LLMUsageStats, 0, len(byPurpose))
	for p, st := range byPurpose {
		st.AvgLatencyMs = latency[p] / int64(st.Calls)
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Purpose < out[j].Purpose })
	return out, nil
}

func (r *eventRepo) LLMUsageByModel(_ context.Context) ([]LLMModelUsage, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	byModel := make(map[string]*LLMModelUsage)
	for _, e := range r.s.events {
		mu, ok := byModel[e.Model]
		if !ok {
			mu = &LLMModelUsage{Model: e.Model, CostKnown: true}
			byModel[e.Model] = mu
		}
		mu.Calls++
		mu.InputTokens += e.InputTokens
		mu.OutputTokens += e.OutputTokens
		mu.CostUSD += e.CostUSD
		if !e.CostKnown {
			mu.CostKnown = false
		}
	}

	out := make([]LLMModelUsage, 0, len(byModel))
	for _, mu := range byModel {
		out = append(out, *mu)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Model < out[j].Model })
	return out, nil
}
