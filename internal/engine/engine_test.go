package engine

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"levelup/internal/period"
	"levelup/internal/storage"
)

// Monday of ISO week 2025-W11.
var testNow = time.Date(2025, time.March, 10, 10, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*Service, *period.FixedClock, *storage.SlotStore) {
	t.Helper()
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := storage.Open(ctx, path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	store := storage.NewSlotStore(db)
	clock := period.NewFixedClock(testNow)
	svc := NewService(store, WithClock(clock), WithIDs(sequentialIDs()))
	svc.Bootstrap(ctx)
	return svc, clock, store
}

func newMemoryService(t *testing.T, opts ...Option) (*Service, *period.FixedClock, *storage.MemoryKV) {
	t.Helper()
	kv := storage.NewMemoryKV()
	clock := period.NewFixedClock(testNow)
	opts = append([]Option{WithClock(clock), WithIDs(sequentialIDs())}, opts...)
	svc := NewService(kv, opts...)
	svc.Bootstrap(context.Background())
	return svc, clock, kv
}

func newTestSession(st *State, now time.Time) *session {
	return newSession(st, now, sequentialIDs())
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("t%d", n)
	}
}

func completeAllDaily(t *testing.T, svc *Service) CompleteResult {
	t.Helper()
	ctx := context.Background()
	var last CompleteResult
	for _, q := range defaultDailyQuests() {
		last = svc.CompleteQuest(ctx, q.ID)
		if !last.Completed {
			t.Fatalf("complete %s: no-op", q.ID)
		}
	}
	return last
}

func eventKinds(events []Event) []EventKind {
	out := make([]EventKind, 0, len(events))
	for _, e := range events {
		out = append(out, e.Kind)
	}
	return out
}

func indexOfKind(events []Event, kind EventKind) int {
	for i, e := range events {
		if e.Kind == kind {
			return i
		}
	}
	return -1
}

func newFixed() *period.FixedClock { return period.NewFixedClock(testNow) }
