package engine

import (
	"context"
	"errors"
	"testing"
)

func TestCompleteQuestIsIdempotent(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	first := svc.CompleteQuest(ctx, "dq1")
	if !first.Completed || first.XPAwarded != 15 {
		t.Fatalf("first completion: %+v", first)
	}
	second := svc.CompleteQuest(ctx, "dq1")
	if second.Completed || len(second.Events) != 0 {
		t.Fatalf("second completion should be a no-op: %+v", second)
	}

	st := svc.Snapshot()
	if st.Player.XP != 15 {
		t.Fatalf("xp=%d, want 15", st.Player.XP)
	}
	if st.TotalQuestsCompleted != 1 {
		t.Fatalf("totalQuestsCompleted=%d, want 1", st.TotalQuestsCompleted)
	}
	if got := st.DailyLogs["2025-03-10"].Quests; len(got) != 1 || got[0] != "dq1" {
		t.Fatalf("log quests=%v, want [dq1]", got)
	}
}

func TestCompleteQuestSideEffects(t *testing.T) {
	svc, _, _ := newMemoryService(t)
	ctx := context.Background()

	svc.CompleteQuest(ctx, "dq2")
	st := svc.Snapshot()
	if st.Player.MP != 45 {
		t.Fatalf("mp=%d, want 45", st.Player.MP)
	}
	if st.Player.Fatigue != 2 {
		t.Fatalf("fatigue=%d, want 2", st.Player.Fatigue)
	}
	if st.BonusStats.Int != 2 {
		t.Fatalf("bonus int=%d, want 2", st.BonusStats.Int)
	}
}

func TestCompleteQuestClampsMPAndFatigue(t *testing.T) {
	st := DefaultState()
	st.Player.MP = 3
	st.Player.Fatigue = 99
	s := newTestSession(st, testNow)

	var res CompleteResult
	s.completeQuest("dq3", &res)

	if st.Player.MP != 0 {
		t.Fatalf("mp=%d, want 0", st.Player.MP)
	}
	if st.Player.Fatigue != 100 {
		t.Fatalf("fatigue=%d, want 100", st.Player.Fatigue)
	}
}

func TestCompleteUnknownQuestIsNoop(t *testing.T) {
	svc, _, _ := newMemoryService(t)
	before := svc.Snapshot()

	res := svc.CompleteQuest(context.Background(), "nope")
	if res.Completed {
		t.Fatalf("unknown quest completed")
	}
	after := svc.Snapshot()
	if after.Player.XP != before.Player.XP || after.TotalQuestsCompleted != before.TotalQuestsCompleted {
		t.Fatalf("state changed on unknown id")
	}
}

func TestUncompleteKeepsRewards(t *testing.T) {
	svc, _, _ := newMemoryService(t)
	ctx := context.Background()

	svc.CompleteQuest(ctx, "dq1")
	if !svc.UncompleteQuest(ctx, "dq1") {
		t.Fatalf("uncomplete returned false")
	}
	if svc.UncompleteQuest(ctx, "dq1") {
		t.Fatalf("second uncomplete should be a no-op")
	}

	st := svc.Snapshot()
	if st.DailyQuests[0].Completed {
		t.Fatalf("dq1 still completed")
	}
	if st.Player.XP != 15 || st.TotalQuestsCompleted != 1 {
		t.Fatalf("rewards reversed: xp=%d total=%d", st.Player.XP, st.TotalQuestsCompleted)
	}

	// Completing again pays again; the day log keeps the id once.
	svc.CompleteQuest(ctx, "dq1")
	st = svc.Snapshot()
	if st.Player.XP != 30 {
		t.Fatalf("xp=%d, want 30", st.Player.XP)
	}
	if got := st.DailyLogs["2025-03-10"].Quests; len(got) != 1 {
		t.Fatalf("log quests=%v, want one entry", got)
	}
}

func TestAllDailyCompleteAdvancesConsistency(t *testing.T) {
	svc, _, _ := newMemoryService(t)

	last := completeAllDaily(t, svc)
	if !last.DayCompleted {
		t.Fatalf("last daily completion should complete the day")
	}
	st := svc.Snapshot()
	if st.TotalDaysCompleted != 1 {
		t.Fatalf("totalDaysCompleted=%d, want 1", st.TotalDaysCompleted)
	}
	if p := st.WeeklyQuests[0].Progress; p == nil || *p != 1 {
		t.Fatalf("consistency progress=%v, want 1", p)
	}
}

func TestCustomQuestGatesDayCompletion(t *testing.T) {
	svc, _, _ := newMemoryService(t)
	ctx := context.Background()

	q, err := svc.AddCustomQuest(ctx, "  Read a paper ", StatINT, 25)
	if err != nil {
		t.Fatalf("AddCustomQuest: %v", err)
	}
	if q.Name != "Read a paper" || q.ID != "cq_t1" || q.Icon != CustomQuestIcon {
		t.Fatalf("unexpected quest: %+v", q)
	}
	if q.Desc != "Custom quest (+25 INT XP)" {
		t.Fatalf("desc=%q", q.Desc)
	}

	last := completeAllDaily(t, svc)
	if last.DayCompleted {
		t.Fatalf("day completed with a custom quest open")
	}
	res := svc.CompleteQuest(ctx, q.ID)
	if !res.DayCompleted {
		t.Fatalf("custom completion should complete the day")
	}
	if p := svc.Snapshot().WeeklyQuests[0].Progress; *p != 1 {
		t.Fatalf("consistency progress=%d, want 1", *p)
	}
}

func TestWeeklyConsistencyCompletesOnce(t *testing.T) {
	svc, clock, _ := newTestService(t)
	ctx := context.Background()

	var seventh CompleteResult
	for day := 0; day < 7; day++ {
		if day > 0 {
			clock.AddDays(1)
			res := svc.Bootstrap(ctx)
			if !res.DailyReset || res.WeeklyReset {
				t.Fatalf("day %d: unexpected bootstrap %+v", day, res)
			}
		}
		seventh = completeAllDaily(t, svc)
	}
	if !seventh.ConsistencyCompleted {
		t.Fatalf("seventh day should complete the consistency quest")
	}

	st := svc.Snapshot()
	wq := st.WeeklyQuests[0]
	if !wq.Completed || *wq.Progress != 7 {
		t.Fatalf("consistency quest: completed=%v progress=%d", wq.Completed, *wq.Progress)
	}
	if st.TotalXPEarned != 7*80+100 {
		t.Fatalf("totalXPEarned=%d, want %d", st.TotalXPEarned, 7*80+100)
	}
	if st.TotalDaysCompleted != 7 {
		t.Fatalf("totalDaysCompleted=%d, want 7", st.TotalDaysCompleted)
	}
	if st.Streak != 6 {
		t.Fatalf("streak=%d, want 6", st.Streak)
	}

	if svc.CompleteQuest(ctx, ConsistencyQuestID).Completed {
		t.Fatalf("consistency quest paid twice")
	}
}

func TestAddCustomQuestValidation(t *testing.T) {
	var events []Event
	svc, _, _ := newMemoryService(t, WithEventSink(func(e Event) { events = append(events, e) }))
	ctx := context.Background()

	_, err := svc.AddCustomQuest(ctx, "   ", StatSTR, 10)
	var verr ValidationError
	if !errors.As(err, &verr) || verr.Field != "name" {
		t.Fatalf("want name validation error, got %v", err)
	}
	if len(events) != 1 || events[0].Message != "Please enter a quest name" {
		t.Fatalf("unexpected events: %+v", events)
	}

	q, err := svc.AddCustomQuest(ctx, "Stretch", StatAGI, 0)
	if err != nil {
		t.Fatalf("AddCustomQuest: %v", err)
	}
	if q.XP != DefaultCustomXP {
		t.Fatalf("xp=%d, want %d", q.XP, DefaultCustomXP)
	}
}

func TestDeleteQuestOnlyRemovesCustom(t *testing.T) {
	svc, _, _ := newMemoryService(t)
	ctx := context.Background()

	q, err := svc.AddCustomQuest(ctx, "Stretch", StatAGI, 5)
	if err != nil {
		t.Fatalf("AddCustomQuest: %v", err)
	}
	if svc.DeleteQuest(ctx, "dq1") {
		t.Fatalf("catalog quest deleted")
	}
	if !svc.DeleteQuest(ctx, q.ID) {
		t.Fatalf("custom quest not deleted")
	}
	if svc.DeleteQuest(ctx, q.ID) {
		t.Fatalf("second delete should be a no-op")
	}
	if n := len(svc.Snapshot().CustomQuests); n != 0 {
		t.Fatalf("custom quests=%d, want 0", n)
	}
}
