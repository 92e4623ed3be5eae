package sched

import (
	"context"
	"testing"
	"time"

	"github.com/oppbot/oppbot/internal/store"
)

type memStore struct {
	items  map[int64]store.Opportunity
	scored map[int64]float64
}

func newMemStore() *memStore {
	return &memStore{items: map[int64]store.Opportunity{}, scored: map[int64]float64{}}
}

func (m *memStore) Save(_ context.Context, opp store.Opportunity) (int64, error) {
	id := int64(len(m.items) + 1)
	opp.ID = id
	m.items[id] = opp
	return id, nil
}

func (m *memStore) Get(_ context.Context, id int64) (store.Opportunity, error) {
	opp, ok := m.items[id]
	if !ok {
		return store.Opportunity{}, store.ErrNotFound
	}
	return opp, nil
}

func (m *memStore) List(_ context.Context, f store.ListFilter) ([]store.Opportunity, error) {
	var out []store.Opportunity
	for _, opp := range m.items {
		if f.Status != "" && string(opp.Status) != f.Status {
			continue
		}
		out = append(out, opp)
	}
	return out, nil
}

func (m *memStore) UpdateStatus(_ context.Context, id int64, status store.Status) error {
	opp, ok := m.items[id]
	if !ok {
		return store.ErrNotFound
	}
	opp.Status = status
	m.items[id] = opp
	return nil
}

func (m *memStore) UpdateScore(_ context.Context, id int64, score float64) error {
	opp, ok := m.items[id]
	if !ok {
		return store.ErrNotFound
	}
	opp.PriorityScore = score
	m.items[id] = opp
	m.scored[id] = score
	return nil
}

func (m *memStore) Stats(_ context.Context, _ time.Time) (store.Stats, error) {
	return store.Stats{}, nil
}

func (m *memStore) Close() error { return nil }

func seed(m *memStore, content string, score float64, status store.Status) int64 {
	id, _ := m.Save(context.Background(), store.Opportunity{
		Content:       content,
		PriorityScore: score,
		Status:        status,
		Deadline:      "2025-03-01",
	})
	return id
}

func TestRunRescoresApproachingDeadline(t *testing.T) {
	m := newMemStore()
	// Scored a month out: deadline tier was +0.5 then.
	id := seed(m, "urgent: apply by 2025-03-01", 7.5, store.StatusNew)

	// Two days before the deadline the tier is +2.0.
	now := func() time.Time { return time.Date(2025, 2, 27, 8, 0, 0, 0, time.UTC) }
	r := New(m, nil, "@daily", now)
	r.Run(context.Background())

	got, ok := m.scored[id]
	if !ok {
		t.Fatal("expected score update for approaching deadline")
	}
	if got != 9.0 {
		t.Errorf("score = %v, want 9.0", got)
	}
}

func TestRunSkipsClosedStatuses(t *testing.T) {
	m := newMemStore()
	seed(m, "urgent: apply by 2025-03-01", 7.5, store.StatusCompleted)
	seed(m, "urgent: apply by 2025-03-01", 7.5, store.StatusRejected)

	now := func() time.Time { return time.Date(2025, 2, 27, 8, 0, 0, 0, time.UTC) }
	r := New(m, nil, "@daily", now)
	r.Run(context.Background())

	if len(m.scored) != 0 {
		t.Errorf("closed opportunities must keep their score, got updates: %v", m.scored)
	}
}

func TestRunLeavesUnchangedScores(t *testing.T) {
	m := newMemStore()
	// Already carries the score Analyze would produce now.
	seed(m, "urgent: apply by 2025-03-01", 9.0, store.StatusNew)

	now := func() time.Time { return time.Date(2025, 2, 27, 8, 0, 0, 0, time.UTC) }
	r := New(m, nil, "@daily", now)
	r.Run(context.Background())

	if len(m.scored) != 0 {
		t.Errorf("unchanged scores must not be rewritten, got: %v", m.scored)
	}
}

func TestStartRejectsBadSpec(t *testing.T) {
	r := New(newMemStore(), nil, "not a cron spec", nil)
	if err := r.Start(context.Background()); err == nil {
		t.Error("expected error for invalid cron spec")
	}
}

func TestDaysLeft(t *testing.T) {
	now := time.Date(2025, 2, 27, 8, 0, 0, 0, time.UTC)

	days, ok := daysLeft("2025-03-01", now)
	if !ok || days != 1 {
		t.Errorf("daysLeft = %d,%v, want 1,true", days, ok)
	}

	days, ok = daysLeft("2025-02-01", now)
	if !ok || days != 0 {
		t.Errorf("past deadline = %d,%v, want 0,true", days, ok)
	}

	if _, ok := daysLeft("soonish", now); ok {
		t.Error("unparseable deadline must return ok=false")
	}
}
