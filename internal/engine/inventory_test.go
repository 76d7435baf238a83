package engine

import (
	"context"
	"errors"
	"testing"
)

func TestParseCategory(t *testing.T) {
	cases := map[string]Category{
		"books":         CategoryBooks,
		"Book":          CategoryBooks,
		"project":       CategoryProjects,
		"certification": CategoryCertifications,
		"achievements":  CategoryAchievements,
	}
	for in, want := range cases {
		got, err := ParseCategory(in)
		if err != nil || got != want {
			t.Fatalf("ParseCategory(%q)=%q,%v want %q", in, got, err, want)
		}
	}
	if _, err := ParseCategory("weapons"); err == nil {
		t.Fatalf("expected error for unknown category")
	}
}

func TestAddItemGrantsTaggedXP(t *testing.T) {
	svc, _, _ := newMemoryService(t)
	ctx := context.Background()

	it, err := svc.AddItem(ctx, CategoryCertifications, "Cloud Practitioner")
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if it.ID != "inv_t1" || it.Icon != "📜" {
		t.Fatalf("item=%+v", it)
	}

	st := svc.Snapshot()
	if st.Player.XP != 50 {
		t.Fatalf("xp=%d, want 50", st.Player.XP)
	}
	if st.BonusStats.Int != 5 {
		t.Fatalf("bonus int=%d, want 5", st.BonusStats.Int)
	}
	l := st.DailyLogs["2025-03-10"]
	if l == nil || l.XP != 50 || l.Stats.Int != 5 {
		t.Fatalf("reward not logged: %+v", l)
	}
	if len(st.Inventory.Certifications) != 1 {
		t.Fatalf("certifications=%d, want 1", len(st.Inventory.Certifications))
	}

	if _, err := svc.AddItem(ctx, CategoryAchievements, "Won a hackathon"); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if xp := svc.Snapshot().Player.XP; xp != 50 {
		t.Fatalf("achievements should not pay xp, xp=%d", xp)
	}
}

func TestAddItemRejectsBlankName(t *testing.T) {
	svc, _, _ := newMemoryService(t)
	_, err := svc.AddItem(context.Background(), CategoryBooks, " ")
	var verr ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("want ValidationError, got %v", err)
	}
	if n := len(svc.Snapshot().Inventory.Books); n != 0 {
		t.Fatalf("books=%d, want 0", n)
	}
}

func TestDeleteItem(t *testing.T) {
	svc, _, _ := newMemoryService(t)
	ctx := context.Background()

	it, err := svc.AddItem(ctx, CategoryBooks, "SICP")
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if svc.DeleteItem(ctx, CategoryProjects, it.ID) {
		t.Fatalf("deleted from the wrong category")
	}
	if !svc.DeleteItem(ctx, CategoryBooks, it.ID) {
		t.Fatalf("delete failed")
	}
	if svc.DeleteItem(ctx, CategoryBooks, it.ID) {
		t.Fatalf("second delete should be a no-op")
	}
	if xp := svc.Snapshot().Player.XP; xp != 20 {
		t.Fatalf("deleting must not reverse xp, xp=%d", xp)
	}
}

func TestAllocateStat(t *testing.T) {
	var events []Event
	svc, _, _ := newMemoryService(t, WithEventSink(func(e Event) { events = append(events, e) }))
	ctx := context.Background()

	if err := svc.AllocateStat(ctx, StatVIT); !errors.Is(err, ErrNoPoints) {
		t.Fatalf("want ErrNoPoints, got %v", err)
	}
	if indexOfKind(events, EventStatPointDenied) < 0 {
		t.Fatalf("missing denial event: %v", eventKinds(events))
	}
	if st := svc.Snapshot(); st.Stats.Vit != 10 || st.AvailablePoints != 0 {
		t.Fatalf("denied allocation changed state")
	}

	if _, err := svc.GainXP(ctx, 100, ""); err != nil {
		t.Fatalf("GainXP: %v", err)
	}
	if err := svc.AllocateStat(ctx, StatVIT); err != nil {
		t.Fatalf("AllocateStat: %v", err)
	}
	if err := svc.AllocateStat(ctx, StatINT); err != nil {
		t.Fatalf("AllocateStat: %v", err)
	}
	st := svc.Snapshot()
	if st.Stats.Vit != 11 || st.Stats.Int != 11 || st.AvailablePoints != 1 {
		t.Fatalf("stats=%+v points=%d", st.Stats, st.AvailablePoints)
	}
	if st.Player.MaxHP != 125 || st.Player.HP != 125 {
		t.Fatalf("hp=%d/%d, want 125/125", st.Player.HP, st.Player.MaxHP)
	}
	if st.Player.MaxMP != 63 || st.Player.MP != 63 {
		t.Fatalf("mp=%d/%d, want 63/63", st.Player.MP, st.Player.MaxMP)
	}

	if err := svc.AllocateStat(ctx, StatAll); err == nil {
		t.Fatalf("'all' is not allocatable")
	}
}
