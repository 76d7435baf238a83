package engine

import (
	"fmt"
	"strings"
)

const (
	questMPCost      = 5
	questFatigueCost = 2
	maxFatigue       = 100
)

type CompleteResult struct {
	QuestID     string
	Completed   bool // false when the call was a no-op
	XPAwarded   int
	LevelBefore int
	LevelAfter  int
	LevelUp     bool

	// DayCompleted is set when this completion finished every daily quest.
	DayCompleted bool
	// ConsistencyCompleted is set when the weekly consistency quest
	// completed as a consequence.
	ConsistencyCompleted bool

	Events []Event
}

// completeQuest moves a quest from incomplete to completed and applies its
// rewards. Unknown ids and completed quests are ignored.
func (s *session) completeQuest(id string, res *CompleteResult) {
	q := s.st.findQuest(id)
	if q == nil || q.Completed {
		return
	}
	q.Completed = true
	res.Completed = true
	res.XPAwarded = q.XP

	s.gainXP(q.XP, q.Stat)

	p := &s.st.Player
	p.MP = clamp(p.MP-questMPCost, 0, p.MaxMP)
	p.Fatigue = clamp(p.Fatigue+questFatigueCost, 0, maxFatigue)

	s.logQuest(id)
	s.st.TotalQuestsCompleted++

	done := *q
	s.emit(Event{Kind: EventQuestCompleted, Quest: &done})
	s.emit(toast(fmt.Sprintf("Quest Complete: %s (+%d XP)", q.Name, q.XP), SeveritySuccess))

	switch q.Kind {
	case QuestDaily, QuestCustom:
		if s.allDailyComplete() {
			res.DayCompleted = true
			s.st.TotalDaysCompleted++
			res.ConsistencyCompleted = s.advanceConsistency()
		}
	case QuestWeekly:
	}
	s.dirty = true
}

func (s *session) allDailyComplete() bool {
	for _, q := range s.st.DailyQuests {
		if !q.Completed {
			return false
		}
	}
	for _, q := range s.st.CustomQuests {
		if !q.Completed {
			return false
		}
	}
	return true
}

// advanceConsistency moves the consistency quest one step and completes it
// through the regular path once it reaches its target.
func (s *session) advanceConsistency() bool {
	wq := s.st.findQuest(ConsistencyQuestID)
	if wq == nil || wq.Completed {
		return false
	}
	progress := 0
	if wq.Progress != nil {
		progress = *wq.Progress
	}
	progress++
	wq.Progress = &progress
	if wq.Target == nil || progress < *wq.Target {
		return false
	}
	var nested CompleteResult
	s.completeQuest(ConsistencyQuestID, &nested)
	return nested.Completed
}

// uncompleteQuest clears the completed flag. Rewards already granted stay.
func (s *session) uncompleteQuest(id string) bool {
	q := s.st.findQuest(id)
	if q == nil || !q.Completed {
		return false
	}
	q.Completed = false
	s.dirty = true
	return true
}

func (s *session) addCustomQuest(name string, stat Stat, xp int) (Quest, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		s.emit(toast("Please enter a quest name", SeverityError))
		return Quest{}, ValidationError{Field: "name", Reason: "quest name is required"}
	}
	if !stat.IsValid() {
		s.emit(toast("Please pick a stat", SeverityError))
		return Quest{}, ValidationError{Field: "stat", Reason: fmt.Sprintf("unknown stat %q", stat)}
	}
	if xp <= 0 {
		xp = DefaultCustomXP
	}
	q := Quest{
		ID:     "cq_" + s.newID(),
		Kind:   QuestCustom,
		Name:   name,
		Desc:   fmt.Sprintf("Custom quest (+%d %s XP)", xp, stat.Label()),
		Stat:   stat,
		XP:     xp,
		Icon:   CustomQuestIcon,
		Custom: true,
	}
	s.st.CustomQuests = append(s.st.CustomQuests, q)
	s.emit(toast("Custom quest added!", SeveritySuccess))
	s.dirty = true
	return q, nil
}

// deleteQuest removes a custom quest. Catalog quests cannot be deleted.
func (s *session) deleteQuest(id string) bool {
	for i := range s.st.CustomQuests {
		if s.st.CustomQuests[i].ID != id {
			continue
		}
		s.st.CustomQuests = append(s.st.CustomQuests[:i], s.st.CustomQuests[i+1:]...)
		s.dirty = true
		return true
	}
	return false
}
