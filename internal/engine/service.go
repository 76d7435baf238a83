package engine

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"levelup/internal/period"
	"levelup/internal/storage"
)

// DefaultSlot is the storage key the save lives under.
const DefaultSlot = "soloLevelUpSystem"

// Service owns one player's State. Every mutating call is applied under a
// single lock, then written through to the store; events are delivered after
// the lock is released.
type Service struct {
	mu    sync.Mutex
	st    *State
	kv    storage.KV
	slot  string
	clock period.Clock
	log   *zap.Logger
	sink  EventSink
	newID func() string
}

type Option func(*Service)

func WithClock(c period.Clock) Option { return func(s *Service) { s.clock = c } }

func WithLogger(l *zap.Logger) Option { return func(s *Service) { s.log = l } }

func WithEventSink(fn EventSink) Option { return func(s *Service) { s.sink = fn } }

// WithIDs replaces the generator used for custom quest and item ids.
func WithIDs(fn func() string) Option { return func(s *Service) { s.newID = fn } }

func WithSlot(slot string) Option {
	return func(s *Service) {
		if slot != "" {
			s.slot = slot
		}
	}
}

func NewService(kv storage.KV, opts ...Option) *Service {
	s := &Service{
		st:    DefaultState(),
		kv:    kv,
		slot:  DefaultSlot,
		clock: period.SystemClock{},
		log:   zap.NewNop(),
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Now returns the service clock's current instant.
func (s *Service) Now() time.Time { return s.clock.Now() }

// mutate runs fn against the state, persists if fn changed anything and
// delivers the produced events.
func (s *Service) mutate(ctx context.Context, fn func(ss *session)) []Event {
	s.mu.Lock()
	ss := newSession(s.st, s.clock.Now(), s.newID)
	fn(ss)
	if ss.dirty {
		s.persistLocked(ctx)
	}
	events := ss.events
	s.mu.Unlock()

	s.dispatch(events)
	return events
}

func (s *Service) dispatch(events []Event) {
	if s.sink == nil {
		return
	}
	for _, e := range events {
		s.sink(e)
	}
}

// Snapshot returns a deep copy of the current state.
func (s *Service) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.Clone()
}

// view runs fn with read access to the live state.
func (s *Service) view(fn func(st *State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.st)
}

type BootstrapResult struct {
	Loaded      bool // a saved document was found and decoded
	DailyReset  bool
	WeeklyReset bool
}

// Bootstrap loads the save (falling back to defaults), then runs the daily
// and weekly resets before anything is shown.
func (s *Service) Bootstrap(ctx context.Context) BootstrapResult {
	var res BootstrapResult

	s.mu.Lock()
	st, loaded := s.loadLocked(ctx)
	s.st = st
	res.Loaded = loaded
	s.mu.Unlock()

	var (
		date, week string
		streak     int
	)
	s.mutate(ctx, func(ss *session) {
		res.DailyReset = ss.checkDailyReset()
		res.WeeklyReset = ss.checkWeeklyReset()
		date, week, streak = ss.st.LastDailyReset, ss.st.LastWeeklyReset, ss.st.Streak
	})

	s.log.Debug("bootstrap",
		zap.Bool("loaded", res.Loaded),
		zap.Bool("daily_reset", res.DailyReset),
		zap.Bool("weekly_reset", res.WeeklyReset),
	)
	if res.DailyReset {
		s.log.Info("daily reset", zap.String("date", date), zap.Int("streak", streak))
	}
	if res.WeeklyReset {
		s.log.Info("weekly reset", zap.String("week", week))
	}
	return res
}

// CheckDailyReset runs the daily rollover check on demand (long-running hosts
// call it when the date changes under them).
func (s *Service) CheckDailyReset(ctx context.Context) bool {
	var fired bool
	s.mutate(ctx, func(ss *session) { fired = ss.checkDailyReset() })
	return fired
}

func (s *Service) CheckWeeklyReset(ctx context.Context) bool {
	var fired bool
	s.mutate(ctx, func(ss *session) { fired = ss.checkWeeklyReset() })
	return fired
}

// CompleteQuest completes a quest by id. Unknown or already completed quests
// produce a result with Completed=false and no state change.
func (s *Service) CompleteQuest(ctx context.Context, id string) CompleteResult {
	res := CompleteResult{QuestID: id}
	res.Events = s.mutate(ctx, func(ss *session) {
		res.LevelBefore = ss.st.Player.Level
		ss.completeQuest(id, &res)
		res.LevelAfter = ss.st.Player.Level
	})
	res.LevelUp = res.LevelAfter > res.LevelBefore
	return res
}

// UncompleteQuest clears a quest's completed flag without taking back its
// rewards. It reports whether the quest was completed.
func (s *Service) UncompleteQuest(ctx context.Context, id string) bool {
	var ok bool
	s.mutate(ctx, func(ss *session) { ok = ss.uncompleteQuest(id) })
	return ok
}

func (s *Service) AddCustomQuest(ctx context.Context, name string, stat Stat, xp int) (Quest, error) {
	var (
		q   Quest
		err error
	)
	s.mutate(ctx, func(ss *session) { q, err = ss.addCustomQuest(name, stat, xp) })
	return q, err
}

func (s *Service) DeleteQuest(ctx context.Context, id string) bool {
	var ok bool
	s.mutate(ctx, func(ss *session) { ok = ss.deleteQuest(id) })
	return ok
}

type XPResult struct {
	XPAwarded   int
	LevelBefore int
	LevelAfter  int
	LevelUp     bool
	Events      []Event
}

// GainXP grants XP directly, optionally tagged with a stat.
func (s *Service) GainXP(ctx context.Context, amount int, stat Stat) (XPResult, error) {
	if amount <= 0 {
		return XPResult{}, ValidationError{Field: "xp", Reason: "amount must be a positive number"}
	}
	if stat != "" && !stat.IsValid() {
		return XPResult{}, ValidationError{Field: "stat", Reason: fmt.Sprintf("unknown stat %q", stat)}
	}
	res := XPResult{XPAwarded: amount}
	res.Events = s.mutate(ctx, func(ss *session) {
		res.LevelBefore = ss.st.Player.Level
		ss.gainXP(amount, stat)
		res.LevelAfter = ss.st.Player.Level
	})
	res.LevelUp = res.LevelAfter > res.LevelBefore
	return res, nil
}

// AllocateStat spends one ability point. ErrNoPoints is returned (and a
// denial event emitted) when the balance is empty.
func (s *Service) AllocateStat(ctx context.Context, stat Stat) error {
	var err error
	s.mutate(ctx, func(ss *session) { err = ss.allocateStat(stat) })
	return err
}

func (s *Service) AddItem(ctx context.Context, c Category, name string) (Item, error) {
	var (
		it  Item
		err error
	)
	s.mutate(ctx, func(ss *session) { it, err = ss.addItem(c, name) })
	return it, err
}

func (s *Service) DeleteItem(ctx context.Context, c Category, id string) bool {
	var ok bool
	s.mutate(ctx, func(ss *session) { ok = ss.deleteItem(c, id) })
	return ok
}

// Regenerate is the passive idle tick: HP and MP each recover one point when
// below their maximum.
func (s *Service) Regenerate(ctx context.Context) bool {
	var changed bool
	s.mutate(ctx, func(ss *session) { changed = ss.regenerate() })
	return changed
}

// Tick is one beat of a long-lived host: when the calendar date moved past
// the last daily reset it runs the daily and weekly resets, then applies one
// idle regen. It reports whether the state changed.
func (s *Service) Tick(ctx context.Context) bool {
	var last string
	s.view(func(st *State) { last = st.LastDailyReset })

	changed := false
	if period.Today(s.clock) != last {
		daily := s.CheckDailyReset(ctx)
		weekly := s.CheckWeeklyReset(ctx)
		changed = daily || weekly
	}
	return s.Regenerate(ctx) || changed
}

// RunRegen calls Tick every interval until ctx is done. onTick, when set, is
// called after every tick that changed the state.
func (s *Service) RunRegen(ctx context.Context, interval time.Duration, onTick func()) error {
	if interval <= 0 {
		return ValidationError{Field: "regen interval", Reason: fmt.Sprintf("must be positive, got %s", interval)}
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			if s.Tick(ctx) && onTick != nil {
				onTick()
			}
		}
	}
}

// SetName renames the player; blank names fall back to the default.
func (s *Service) SetName(ctx context.Context, name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultPlayerName
	}
	s.mutate(ctx, func(ss *session) {
		ss.st.Player.Name = name
		ss.dirty = true
	})
}

// SetJob changes the player's job line; blank falls back to the default.
func (s *Service) SetJob(ctx context.Context, job string) {
	job = strings.TrimSpace(job)
	if job == "" {
		job = DefaultPlayerJob
	}
	s.mutate(ctx, func(ss *session) {
		ss.st.Player.Job = job
		ss.dirty = true
	})
}

func (s *Service) UpdateSettings(ctx context.Context, fn func(*Settings)) Settings {
	var out Settings
	s.mutate(ctx, func(ss *session) {
		fn(&ss.st.Settings)
		ss.st.Settings.Volume = ss.st.Settings.Volume.clamp()
		ss.st.Settings.MusicVolume = ss.st.Settings.MusicVolume.clamp()
		out = ss.st.Settings
		ss.dirty = true
	})
	return out
}

// XPSeries returns the last n days of XP ending today.
func (s *Service) XPSeries(n int) []DayXP {
	var out []DayXP
	now := s.clock.Now()
	s.view(func(st *State) { out = XPSeries(st, now, n) })
	return out
}

// Calendar lays out a month with today's cell flagged.
func (s *Service) Calendar(year int, month time.Month) Calendar {
	var out Calendar
	today := period.Today(s.clock)
	s.view(func(st *State) { out = CalendarMonth(st, year, month, today) })
	return out
}

func (s *Service) DayDetail(date string) DayDetail {
	var out DayDetail
	s.view(func(st *State) { out = DayDetailFor(st, date) })
	return out
}

func (s *Service) Summary() Summary {
	var out Summary
	s.view(func(st *State) { out = Summarize(st) })
	return out
}

func (s *Service) StatDistribution() []StatShare {
	var out []StatShare
	s.view(func(st *State) { out = StatDistribution(st) })
	return out
}
