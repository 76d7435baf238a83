package engine

import (
	"context"
	"testing"
	"time"
)

func TestActivityLevelForXP(t *testing.T) {
	cases := map[int]int{0: 0, 1: 1, 29: 1, 30: 2, 59: 2, 60: 3, 99: 3, 100: 4, 500: 4}
	for xp, want := range cases {
		if got := ActivityLevelForXP(xp); got != want {
			t.Fatalf("ActivityLevelForXP(%d)=%d, want %d", xp, got, want)
		}
	}
}

func TestXPSeriesWindow(t *testing.T) {
	st := DefaultState()
	st.DailyLogs["2025-03-10"] = &DailyLog{XP: 45, Quests: []string{}}
	st.DailyLogs["2025-02-09"] = &DailyLog{XP: 5, Quests: []string{}}
	st.DailyLogs["2025-02-08"] = &DailyLog{XP: 999, Quests: []string{}}

	series := XPSeries(st, testNow, 30)
	if len(series) != 30 {
		t.Fatalf("len=%d, want 30", len(series))
	}
	if series[0].Date != "2025-02-09" || series[0].XP != 5 {
		t.Fatalf("first=%+v", series[0])
	}
	last := series[29]
	if last.Date != "2025-03-10" || last.Day != 10 || last.XP != 45 {
		t.Fatalf("last=%+v", last)
	}
	for _, d := range series[1:29] {
		if d.XP != 0 {
			t.Fatalf("unlogged day %s has xp %d", d.Date, d.XP)
		}
	}

	if got := XPSeries(st, testNow, 0); len(got) != 0 {
		t.Fatalf("empty window returned %d days", len(got))
	}
}

func TestXPWindowStopsEarly(t *testing.T) {
	st := DefaultState()
	n := 0
	for range XPWindow(st, testNow, 10) {
		n++
		if n == 3 {
			break
		}
	}
	if n != 3 {
		t.Fatalf("iterated %d days, want 3", n)
	}
}

func TestCalendarMonthLayout(t *testing.T) {
	st := DefaultState()
	st.DailyLogs["2025-03-02"] = &DailyLog{XP: 65, Quests: []string{}}

	cal := CalendarMonth(st, 2025, time.March, "2025-03-10")
	// March 1st 2025 is a Saturday.
	if len(cal.Cells) != 6+31 {
		t.Fatalf("cells=%d, want 37", len(cal.Cells))
	}
	for i := 0; i < 6; i++ {
		if !cal.Cells[i].Blank {
			t.Fatalf("cell %d should be blank", i)
		}
	}
	first := cal.Cells[6]
	if first.Blank || first.Day != 1 || first.Date != "2025-03-01" {
		t.Fatalf("first day cell=%+v", first)
	}
	second := cal.Cells[7]
	if second.XP != 65 || second.Level != 3 {
		t.Fatalf("2nd=%+v, want xp 65 level 3", second)
	}
	todays := 0
	for _, c := range cal.Cells {
		if c.Today {
			todays++
			if c.Day != 10 {
				t.Fatalf("today flag on day %d", c.Day)
			}
		}
	}
	if todays != 1 {
		t.Fatalf("today flagged %d times", todays)
	}
}

func TestDayDetailFor(t *testing.T) {
	svc, _, _ := newMemoryService(t)
	ctx := context.Background()

	q, err := svc.AddCustomQuest(ctx, "Walk", StatAGI, 20)
	if err != nil {
		t.Fatalf("AddCustomQuest: %v", err)
	}
	svc.CompleteQuest(ctx, "dq1")
	svc.CompleteQuest(ctx, q.ID)
	svc.DeleteQuest(ctx, q.ID)

	d := svc.DayDetail("2025-03-10")
	if !d.Active() || d.XP != 35 {
		t.Fatalf("detail xp=%d", d.XP)
	}
	if d.QuestCount != 2 || len(d.Quests) != 1 || d.Quests[0].ID != "dq1" {
		t.Fatalf("quests: count=%d refs=%+v", d.QuestCount, d.Quests)
	}
	want := []StatAmount{{StatSTR, 1}, {StatAGI, 2}}
	if len(d.StatBonuses) != len(want) {
		t.Fatalf("stat bonuses=%+v", d.StatBonuses)
	}
	for i := range want {
		if d.StatBonuses[i] != want[i] {
			t.Fatalf("stat bonuses=%+v, want %+v", d.StatBonuses, want)
		}
	}

	if svc.DayDetail("2025-03-09").Active() {
		t.Fatalf("empty day reported active")
	}
}

func TestStatDistributionAndSummary(t *testing.T) {
	svc, _, _ := newMemoryService(t)
	ctx := context.Background()
	svc.CompleteQuest(ctx, "dq2")

	dist := svc.StatDistribution()
	if len(dist) != len(AllStats) {
		t.Fatalf("len=%d", len(dist))
	}
	total := 0.0
	for _, s := range dist {
		total += s.Percent
	}
	if total < 99.99 || total > 100.01 {
		t.Fatalf("shares sum to %.2f", total)
	}
	if dist[3].Stat != StatINT || dist[3].Value != 12 {
		t.Fatalf("int share=%+v", dist[3])
	}

	sum := svc.Summary()
	if sum.TotalXPEarned != 20 || sum.TotalQuestsCompleted != 1 || sum.ActiveDays != 1 {
		t.Fatalf("summary=%+v", sum)
	}
}

func TestMilestones(t *testing.T) {
	st := DefaultState()
	if n := NewMilestoneChecker(st).CountEarned(); n != 0 {
		t.Fatalf("fresh save earned %d milestones", n)
	}

	st.Player.Level = 5
	st.TotalQuestsCompleted = 30
	st.Streak = 7
	st.BonusStats.Int = 15
	st.Inventory.Books = append(st.Inventory.Books, Item{ID: "inv_1", Name: "SICP"})

	earned := map[string]bool{}
	for _, m := range NewMilestoneChecker(st).Milestones() {
		earned[m.ID] = m.Earned
	}
	for _, id := range []string{"awakened", "apprentice", "persistent", "first_quest", "productive", "streak_7", "smart", "bookworm"} {
		if !earned[id] {
			t.Fatalf("%s not earned", id)
		}
	}
	for _, id := range []string{"dedicated", "achiever", "streak_30", "strong", "builder", "full_day"} {
		if earned[id] {
			t.Fatalf("%s earned too early", id)
		}
	}
}
