package engine

import "levelup/internal/period"

const (
	dailyHPRestore      = 30
	dailyMPRestore      = 20
	dailyFatigueRecover = 20
)

// checkDailyReset clears daily and custom quests on the first call of a new
// calendar day and settles the streak against the previous login. The login
// stamp is refreshed on every call.
func (s *session) checkDailyReset() bool {
	today := s.today()
	fired := false

	if s.st.LastDailyReset != today {
		for i := range s.st.DailyQuests {
			s.st.DailyQuests[i].Completed = false
		}
		for i := range s.st.CustomQuests {
			s.st.CustomQuests[i].Completed = false
		}

		if s.st.LastLogin != nil {
			switch diff := period.DaysBetween(s.now, *s.st.LastLogin); {
			case diff == 1:
				s.st.Streak++
			case diff > 1:
				s.st.Streak = 0
			}
		}

		p := &s.st.Player
		p.HP = clamp(p.HP+dailyHPRestore, 0, p.MaxHP)
		p.MP = clamp(p.MP+dailyMPRestore, 0, p.MaxMP)
		p.Fatigue = clamp(p.Fatigue-dailyFatigueRecover, 0, maxFatigue)

		s.st.LastDailyReset = today
		fired = true
	}

	now := s.now
	s.st.LastLogin = &now
	s.dirty = true
	return fired
}

// checkWeeklyReset clears weekly quests and their progress when the ISO week
// changes.
func (s *session) checkWeeklyReset() bool {
	week := period.ISOWeek(s.now)
	if s.st.LastWeeklyReset == week {
		return false
	}
	for i := range s.st.WeeklyQuests {
		q := &s.st.WeeklyQuests[i]
		q.Completed = false
		if q.Progress != nil {
			zero := 0
			q.Progress = &zero
		}
	}
	s.st.LastWeeklyReset = week
	s.dirty = true
	return true
}

const (
	regenHP = 1
	regenMP = 1
)

// regenerate is the passive idle tick.
func (s *session) regenerate() bool {
	p := &s.st.Player
	changed := false
	if p.HP < p.MaxHP {
		p.HP = clamp(p.HP+regenHP, 0, p.MaxHP)
		changed = true
	}
	if p.MP < p.MaxMP {
		p.MP = clamp(p.MP+regenMP, 0, p.MaxMP)
		changed = true
	}
	if changed {
		s.dirty = true
	}
	return changed
}
