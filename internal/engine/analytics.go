package engine

import (
	"iter"
	"slices"
	"time"

	"levelup/internal/period"
)

// Activity level thresholds by daily XP total.
const (
	activityLow     = 1
	activityMedium  = 30
	activityHigh    = 60
	activityExtreme = 100
)

func (s *session) dayLog() *DailyLog {
	key := s.today()
	l, ok := s.st.DailyLogs[key]
	if !ok || l == nil {
		l = &DailyLog{Quests: []string{}}
		if s.st.DailyLogs == nil {
			s.st.DailyLogs = map[string]*DailyLog{}
		}
		s.st.DailyLogs[key] = l
	}
	return l
}

func (s *session) logXP(amount int, stat Stat) {
	l := s.dayLog()
	l.XP += amount
	if stat.IsValid() {
		l.Stats.Add(stat, BonusFor(amount))
	}
}

// logQuest records id once per day, keeping first-completion order.
func (s *session) logQuest(id string) {
	l := s.dayLog()
	if slices.Contains(l.Quests, id) {
		return
	}
	l.Quests = append(l.Quests, id)
}

// ActivityLevelForXP buckets a day's XP into 0..4.
func ActivityLevelForXP(xp int) int {
	switch {
	case xp >= activityExtreme:
		return 4
	case xp >= activityHigh:
		return 3
	case xp >= activityMedium:
		return 2
	case xp >= activityLow:
		return 1
	default:
		return 0
	}
}

// ActivityLevel returns the activity bucket of a logged day.
func ActivityLevel(st *State, date string) int {
	return ActivityLevelForXP(dayXP(st, date))
}

func dayXP(st *State, date string) int {
	if l := st.DailyLogs[date]; l != nil {
		return l.XP
	}
	return 0
}

type DayXP struct {
	Date string
	Day  int
	XP   int
}

// XPWindow yields the n consecutive days ending at end with their logged XP,
// oldest first. Nothing is cached; every range re-reads the logs.
func XPWindow(st *State, end time.Time, n int) iter.Seq[DayXP] {
	return func(yield func(DayXP) bool) {
		for i := n - 1; i >= 0; i-- {
			d := end.AddDate(0, 0, -i)
			key := period.DateKey(d)
			if !yield(DayXP{Date: key, Day: d.Day(), XP: dayXP(st, key)}) {
				return
			}
		}
	}
}

// XPSeries collects XPWindow.
func XPSeries(st *State, end time.Time, n int) []DayXP {
	return slices.Collect(XPWindow(st, end, n))
}

type CalendarCell struct {
	Blank bool
	Date  string
	Day   int
	XP    int
	Level int
	Today bool
}

type Calendar struct {
	Year  int
	Month time.Month
	Cells []CalendarCell
}

// CalendarMonth lays a month out Sunday-first: blank cells up to the weekday
// of day 1, then one cell per day.
func CalendarMonth(st *State, year int, month time.Month, today string) Calendar {
	offset := period.FirstWeekday(year, month)
	days := period.DaysInMonth(year, month)

	cells := make([]CalendarCell, 0, offset+days)
	for i := 0; i < offset; i++ {
		cells = append(cells, CalendarCell{Blank: true})
	}
	for d := 1; d <= days; d++ {
		key := period.DateKey(time.Date(year, month, d, 0, 0, 0, 0, time.UTC))
		xp := dayXP(st, key)
		cells = append(cells, CalendarCell{
			Date:  key,
			Day:   d,
			XP:    xp,
			Level: ActivityLevelForXP(xp),
			Today: key == today,
		})
	}
	return Calendar{Year: year, Month: month, Cells: cells}
}

type StatAmount struct {
	Stat   Stat
	Amount int
}

type QuestRef struct {
	ID   string
	Name string
	Icon string
}

type DayDetail struct {
	Date        string
	XP          int
	QuestCount  int
	StatBonuses []StatAmount
	Quests      []QuestRef
}

// Active reports whether anything was earned that day.
func (d DayDetail) Active() bool { return d.XP > 0 }

// DayDetailFor resolves a day's log for display. Quest ids that no longer
// exist (deleted custom quests) are skipped in Quests but still counted.
func DayDetailFor(st *State, date string) DayDetail {
	out := DayDetail{Date: date}
	l := st.DailyLogs[date]
	if l == nil {
		return out
	}
	out.XP = l.XP
	out.QuestCount = len(l.Quests)
	for _, s := range AllStats {
		if v := l.Stats.Get(s); v > 0 {
			out.StatBonuses = append(out.StatBonuses, StatAmount{Stat: s, Amount: v})
		}
	}
	for _, id := range l.Quests {
		q := st.findQuest(id)
		if q == nil {
			continue
		}
		icon := q.Icon
		if icon == "" {
			icon = CustomQuestIcon
		}
		out.Quests = append(out.Quests, QuestRef{ID: id, Name: q.Name, Icon: icon})
	}
	return out
}

type StatShare struct {
	Stat    Stat
	Value   int
	Percent float64
}

// StatDistribution returns each stat's effective value (base + bonus) and
// its share of the total.
func StatDistribution(st *State) []StatShare {
	total := st.Stats.Total() + st.BonusStats.Total()
	out := make([]StatShare, 0, len(AllStats))
	for _, s := range AllStats {
		v := st.Stats.Get(s) + st.BonusStats.Get(s)
		pct := 0.0
		if total > 0 {
			pct = float64(v) / float64(total) * 100
		}
		out = append(out, StatShare{Stat: s, Value: v, Percent: pct})
	}
	return out
}

// EffectiveStat is base plus bonus.
func EffectiveStat(st *State, s Stat) int {
	return st.Stats.Get(s) + st.BonusStats.Get(s)
}

type Summary struct {
	Streak               int
	TotalXPEarned        int
	TotalQuestsCompleted int
	TotalDaysCompleted   int
	ActiveDays           int
}

func Summarize(st *State) Summary {
	active := 0
	for _, l := range st.DailyLogs {
		if l != nil && l.XP > 0 {
			active++
		}
	}
	return Summary{
		Streak:               st.Streak,
		TotalXPEarned:        st.TotalXPEarned,
		TotalQuestsCompleted: st.TotalQuestsCompleted,
		TotalDaysCompleted:   st.TotalDaysCompleted,
		ActiveDays:           active,
	}
}
