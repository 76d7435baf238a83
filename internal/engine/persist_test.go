package engine

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"levelup/internal/storage"
)

func TestExportImportRoundTrip(t *testing.T) {
	svc, _, kv := newMemoryService(t)
	ctx := context.Background()

	svc.CompleteQuest(ctx, "dq1")
	if _, err := svc.AddCustomQuest(ctx, "Journal", StatPER, 15); err != nil {
		t.Fatalf("AddCustomQuest: %v", err)
	}
	if _, err := svc.AddItem(ctx, CategoryBooks, "Dune"); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	svc.SetName(ctx, "Jin")

	name, data, err := svc.Export()
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if name != "solo-levelup-save-2025-03-10.json" {
		t.Fatalf("export name=%q", name)
	}
	stored, _, _ := kv.Get(ctx, DefaultSlot)
	if !bytes.Equal(stored, data) {
		t.Fatalf("export differs from the stored document")
	}

	other, _, _ := newMemoryService(t)
	if err := other.Import(ctx, data); err != nil {
		t.Fatalf("Import: %v", err)
	}
	_, again, err := other.Export()
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if !bytes.Equal(data, again) {
		t.Fatalf("round trip changed the document:\n%s\n---\n%s", data, again)
	}
	if got := other.Snapshot().Player.Name; got != "Jin" {
		t.Fatalf("name=%q, want Jin", got)
	}
}

func TestImportMalformedLeavesState(t *testing.T) {
	var events []Event
	svc, _, _ := newMemoryService(t, WithEventSink(func(e Event) { events = append(events, e) }))
	ctx := context.Background()
	svc.CompleteQuest(ctx, "dq1")
	_, before, _ := svc.Export()

	for _, doc := range []string{"{not json", "null", "[1,2]", `"text"`} {
		err := svc.Import(ctx, []byte(doc))
		var ierr ImportError
		if !errors.As(err, &ierr) {
			t.Fatalf("Import(%q): want ImportError, got %v", doc, err)
		}
	}
	_, after, _ := svc.Export()
	if !bytes.Equal(before, after) {
		t.Fatalf("rejected import changed state")
	}
	if events[len(events)-1].Severity != SeveritySuccess || events[len(events)-2].Message != "Error importing data!" {
		t.Fatalf("unexpected events: %+v", events[len(events)-2:])
	}
}

func TestImportPartialDocumentMergesDefaults(t *testing.T) {
	svc, _, _ := newMemoryService(t)
	doc := `{"player":{"name":"Old","level":4,"xp":12,"xpToLevel":172},"streak":3,"settings":{"volume":"80"}}`
	if err := svc.Import(context.Background(), []byte(doc)); err != nil {
		t.Fatalf("Import: %v", err)
	}
	st := svc.Snapshot()
	if st.Player.Name != "Old" || st.Player.Level != 4 || st.Player.HP != 100 {
		t.Fatalf("player=%+v", st.Player)
	}
	if st.Player.Job != DefaultPlayerJob {
		t.Fatalf("job=%q, want default", st.Player.Job)
	}
	if len(st.DailyQuests) != 6 || st.DailyQuests[0].Kind != QuestDaily {
		t.Fatalf("daily catalog not merged: %+v", st.DailyQuests)
	}
	if len(st.Skills) != 8 || st.Streak != 3 {
		t.Fatalf("skills=%d streak=%d", len(st.Skills), st.Streak)
	}
	if st.Settings.Volume != 80 || st.Settings.MusicVolume != DefaultMusicVolume {
		t.Fatalf("settings=%+v", st.Settings)
	}
}

func TestImportArrayReplacesCatalog(t *testing.T) {
	svc, _, _ := newMemoryService(t)
	doc := `{"dailyQuests":[{"id":"dq9","name":"Swim","stat":"str","xp":40}]}`
	if err := svc.Import(context.Background(), []byte(doc)); err != nil {
		t.Fatalf("Import: %v", err)
	}
	st := svc.Snapshot()
	if len(st.DailyQuests) != 1 || st.DailyQuests[0].ID != "dq9" || st.DailyQuests[0].Kind != QuestDaily {
		t.Fatalf("daily quests=%+v", st.DailyQuests)
	}
}

func TestBootstrapLoadsSavedDocument(t *testing.T) {
	kv := storage.NewMemoryKV()
	ctx := context.Background()
	if err := kv.Set(ctx, DefaultSlot, []byte(`{"player":{"name":"Saved"},"totalXPEarned":900}`)); err != nil {
		t.Fatalf("seed: %v", err)
	}
	svc := NewService(kv, WithClock(newFixed()))
	res := svc.Bootstrap(ctx)
	if !res.Loaded {
		t.Fatalf("saved document not loaded")
	}
	st := svc.Snapshot()
	if st.Player.Name != "Saved" || st.TotalXPEarned != 900 {
		t.Fatalf("state=%+v", st.Player)
	}
}

func TestBootstrapGarbageFallsBackToDefaults(t *testing.T) {
	kv := storage.NewMemoryKV()
	ctx := context.Background()
	if err := kv.Set(ctx, DefaultSlot, []byte("garbage")); err != nil {
		t.Fatalf("seed: %v", err)
	}
	svc := NewService(kv, WithClock(newFixed()))
	if svc.Bootstrap(ctx).Loaded {
		t.Fatalf("garbage reported as loaded")
	}
	if name := svc.Snapshot().Player.Name; name != DefaultPlayerName {
		t.Fatalf("name=%q, want default", name)
	}

	b, err := kv.LatestBackup(ctx, DefaultSlot)
	if err != nil {
		t.Fatalf("LatestBackup: %v", err)
	}
	if b == nil || string(b.Doc) != "garbage" || b.Reason != "unreadable" {
		t.Fatalf("unreadable save was not backed up: %+v", b)
	}
}

func TestBootstrapRepairsMistypedFields(t *testing.T) {
	kv := storage.NewMemoryKV()
	ctx := context.Background()
	doc := `{"player":{"name":"Jin","level":12,"xp":"40"},"totalXPEarned":5000,` +
		`"dailyLogs":{"2025-03-01":{"xp":"lots"},"2025-03-02":{"xp":30}}}`
	if err := kv.Set(ctx, DefaultSlot, []byte(doc)); err != nil {
		t.Fatalf("seed: %v", err)
	}
	svc := NewService(kv, WithClock(newFixed()))
	if !svc.Bootstrap(ctx).Loaded {
		t.Fatalf("repairable save reported as not loaded")
	}

	st := svc.Snapshot()
	if st.Player.Name != "Jin" || st.Player.Level != 12 || st.Player.XP != 0 || st.TotalXPEarned != 5000 {
		t.Fatalf("player=%+v total=%d", st.Player, st.TotalXPEarned)
	}
	if log := st.DailyLogs["2025-03-02"]; log == nil || log.XP != 30 {
		t.Fatalf("intact log lost: %+v", log)
	}

	stored, _, _ := kv.Get(ctx, DefaultSlot)
	if !strings.Contains(string(stored), `"Jin"`) || !strings.Contains(string(stored), "5000") {
		t.Fatalf("repaired save not written back: %s", stored)
	}
	b, err := kv.LatestBackup(ctx, DefaultSlot)
	if err != nil {
		t.Fatalf("LatestBackup: %v", err)
	}
	if b == nil || b.Reason != "repaired" || string(b.Doc) != doc {
		t.Fatalf("original document not backed up: %+v", b)
	}
}

func TestPersistFailureIsTolerated(t *testing.T) {
	svc, _, kv := newMemoryService(t)
	ctx := context.Background()
	before, _, _ := kv.Get(ctx, DefaultSlot)

	kv.FailWrites(true)
	res := svc.CompleteQuest(ctx, "dq1")
	if !res.Completed {
		t.Fatalf("completion failed with a broken store")
	}
	if !svc.Snapshot().DailyQuests[0].Completed {
		t.Fatalf("in-memory state not updated")
	}
	after, _, _ := kv.Get(ctx, DefaultSlot)
	if !bytes.Equal(before, after) {
		t.Fatalf("store changed despite failing writes")
	}

	kv.FailWrites(false)
	svc.CompleteQuest(ctx, "dq2")
	after, _, _ = kv.Get(ctx, DefaultSlot)
	if !strings.Contains(string(after), `"totalQuestsCompleted": 2`) {
		t.Fatalf("next write did not catch up")
	}
}

func TestResetAndRestore(t *testing.T) {
	svc, _, store := newTestService(t)
	ctx := context.Background()

	svc.CompleteQuest(ctx, "dq1")
	svc.Reset(ctx)
	if st := svc.Snapshot(); st.Player.XP != 0 || st.DailyQuests[0].Completed {
		t.Fatalf("reset kept progress")
	}

	if err := svc.Restore(ctx); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if st := svc.Snapshot(); st.Player.XP != 15 || !st.DailyQuests[0].Completed {
		t.Fatalf("restore lost progress: xp=%d", st.Player.XP)
	}
	if err := svc.Restore(ctx); !errors.Is(err, ErrNoBackups) {
		t.Fatalf("want ErrNoBackups, got %v", err)
	}

	backups, err := store.ListBackups(ctx, DefaultSlot)
	if err != nil {
		t.Fatalf("ListBackups: %v", err)
	}
	if len(backups) != 0 {
		t.Fatalf("backups=%d, want 0", len(backups))
	}
}

func TestRestoreWithoutBackups(t *testing.T) {
	svc, _, _ := newMemoryService(t)
	if err := svc.Restore(context.Background()); !errors.Is(err, ErrNoBackups) {
		t.Fatalf("want ErrNoBackups, got %v", err)
	}
}

func TestRestoreUnreadableBackupCommitsNothing(t *testing.T) {
	kv := storage.NewMemoryKV()
	ctx := context.Background()
	if err := kv.Set(ctx, DefaultSlot, []byte("garbage")); err != nil {
		t.Fatalf("seed: %v", err)
	}
	svc := NewService(kv, WithClock(newFixed()))
	svc.Bootstrap(ctx)
	svc.CompleteQuest(ctx, "dq1")
	before, _, _ := kv.Get(ctx, DefaultSlot)

	if err := svc.Restore(ctx); err == nil || errors.Is(err, ErrNoBackups) {
		t.Fatalf("want a decode error, got %v", err)
	}
	after, _, _ := kv.Get(ctx, DefaultSlot)
	if !bytes.Equal(before, after) {
		t.Fatalf("failed restore changed the slot")
	}
	if !svc.Snapshot().DailyQuests[0].Completed {
		t.Fatalf("failed restore changed the state")
	}
	if b, _ := kv.LatestBackup(ctx, DefaultSlot); b == nil {
		t.Fatalf("failed restore consumed the backup")
	}
}
