package store

import (
	"context"
	"errors"
	"testing"
	"time"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestUserCreateAndGet(t *testing.T) {
	s := New()
	repo := s.UserRepo()
	ctx := context.Background()

	if err := repo.Create(ctx, User{Username: "alice", Email: "a@example.com", Password: "secret1"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	u, err := repo.Get(ctx, "alice")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if u.Email != "a@example.com" {
		t.Errorf("email = %q, want a@example.com", u.Email)
	}
	if u.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestUserCreateDuplicate(t *testing.T) {
	s := New()
	repo := s.UserRepo()
	ctx := context.Background()

	if err := repo.Create(ctx, User{Username: "bob"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	err := repo.Create(ctx, User{Username: "bob"})
	if !errors.Is(err, ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestUserGetMissing(t *testing.T) {
	s := New()
	_, err := s.UserRepo().Get(context.Background(), "nobody")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAttemptAppendAssignsIDAndSequence(t *testing.T) {
	s := New()
	repo := s.AttemptRepo()
	ctx := context.Background()

	a := &Attempt{Username: "alice", Subject: "Mathematics", Score: 80}
	if err := repo.Append(ctx, a); err != nil {
		t.Fatalf("append: %v", err)
	}
	if a.ID == "" {
		t.Error("expected ID to be assigned")
	}
	if a.Sequence != 1 {
		t.Errorf("sequence = %d, want 1", a.Sequence)
	}
	if a.Timestamp.IsZero() {
		t.Error("expected Timestamp to be set")
	}
}

func TestAttemptListByUserOldestFirst(t *testing.T) {
	s := New()
	repo := s.AttemptRepo()
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	attempts := []*Attempt{
		{Username: "alice", Subject: "B", Timestamp: base.Add(2 * time.Hour)},
		{Username: "bob", Subject: "X", Timestamp: base},
		{Username: "alice", Subject: "A", Timestamp: base},
	}
	for i, a := range attempts {
		if err := repo.Append(ctx, a); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	got, err := repo.ListByUser(ctx, "alice")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d attempts, want 2", len(got))
	}
	if got[0].Subject != "A" || got[1].Subject != "B" {
		t.Errorf("order = [%s %s], want [A B]", got[0].Subject, got[1].Subject)
	}
}

func TestAttemptListIsACopy(t *testing.T) {
	s := New()
	repo := s.AttemptRepo()
	ctx := context.Background()

	a := &Attempt{Username: "alice", Answers: []AnswerRecord{{QuestionID: 1, Selected: "A"}}}
	if err := repo.Append(ctx, a); err != nil {
		t.Fatalf("append: %v", err)
	}
	a.Answers[0].Selected = "B"

	got, _ := repo.ListByUser(ctx, "alice")
	if got[0].Answers[0].Selected != "A" {
		t.Errorf("stored answer mutated through caller slice: %q", got[0].Answers[0].Selected)
	}
}

func TestLLMEventsNewestFirst(t *testing.T) {
	s := New(WithClock(fixedClock(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))))
	repo := s.EventRepo()
	ctx := context.Background()

	for _, purpose := range []string{"quiz-gen", "ping", "quiz-gen"} {
		if err := repo.AppendLLMRequest(ctx, LLMRequestEventData{Purpose: purpose, Model: "m"}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 2})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].ID != 3 || events[1].ID != 2 {
		t.Errorf("ids = [%d %d], want [3 2]", events[0].ID, events[1].ID)
	}
}

func TestLLMUsageAggregation(t *testing.T) {
	s := New()
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Model: "ibm/granite-3-8b-instruct", Purpose: "quiz-gen", InputTokens: 100, OutputTokens: 50, LatencyMs: 100, CostUSD: 0.01, CostKnown: true},
		{Model: "ibm/granite-3-8b-instruct", Purpose: "quiz-gen", InputTokens: 200, OutputTokens: 50, LatencyMs: 300, CostUSD: 0.02, CostKnown: true},
		{Model: "custom", Purpose: "ping", InputTokens: 5, OutputTokens: 1, LatencyMs: 10},
	}
	for _, e := range events {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("by purpose: %v", err)
	}
	if len(byPurpose) != 2 {
		t.Fatalf("got %d purposes, want 2", len(byPurpose))
	}
	if byPurpose[1].Purpose != "quiz-gen" || byPurpose[1].Calls != 2 || byPurpose[1].AvgLatencyMs != 200 {
		t.Errorf("quiz-gen stats = %+v", byPurpose[1])
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("by model: %v", err)
	}
	if len(byModel) != 2 {
		t.Fatalf("got %d models, want 2", len(byModel))
	}
	if byModel[0].Model != "custom" || byModel[0].CostKnown {
		t.Errorf("custom usage = %+v, want unknown cost", byModel[0])
	}
	granite := byModel[1]
	if granite.InputTokens != 300 || !granite.CostKnown {
		t.Errorf("granite usage = %+v", granite)
	}
	if granite.CostUSD < 0.0299 || granite.CostUSD > 0.0301 {
		t.Errorf("granite cost = %f, want 0.03", granite.CostUSD)
	}
}

func TestSequenceSharedAcrossRepos(t *testing.T) {
	s := New()
	ctx := context.Background()

	if err := s.EventRepo().AppendLLMRequest(ctx, LLMRequestEventData{}); err != nil {
		t.Fatalf("append event: %v", err)
	}
	a := &Attempt{Username: "alice"}
	if err := s.AttemptRepo().Append(ctx, a); err != nil {
		t.Fatalf("append attempt: %v", err)
	}
	if a.Sequence != 2 {
		t.Errorf("attempt sequence = %d, want 2", a.Sequence)
	}
}
