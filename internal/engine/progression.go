package engine

import "fmt"

// gainXP adds amount to the player, credits the stat bonus, logs the gain and
// applies as many level-ups as the new total pays for.
func (s *session) gainXP(amount int, stat Stat) {
	p := &s.st.Player
	p.XP += amount

	if stat.IsValid() {
		s.st.BonusStats.Add(stat, BonusFor(amount))
	}

	s.logXP(amount, stat)
	s.st.TotalXPEarned += amount

	for p.XP >= p.XPToLevel {
		p.XP -= p.XPToLevel
		s.levelUp()
	}
	s.dirty = true
}

func (s *session) levelUp() {
	p := &s.st.Player
	p.Level++
	p.XPToLevel = XPForLevel(p.Level)

	p.MaxHP += 20
	p.MaxMP += 10
	p.HP = p.MaxHP
	p.MP = p.MaxMP

	s.st.AvailablePoints += 3

	unlocked := s.unlockSkills()
	s.updateTitle()

	s.emit(Event{Kind: EventLevelUp, Level: p.Level})
	s.emit(toast(fmt.Sprintf("Level Up! You are now Level %d!", p.Level), SeveritySuccess))

	if len(unlocked) > 0 {
		s.emit(Event{Kind: EventSkillsUnlocked, Level: p.Level, Skills: unlocked, Deferred: true})
	}
}

// unlockSkills flips every locked skill the current level satisfies.
// Unlocking is one-way.
func (s *session) unlockSkills() []Skill {
	var batch []Skill
	for i := range s.st.Skills {
		sk := &s.st.Skills[i]
		if sk.Unlocked || s.st.Player.Level < sk.ReqLevel {
			continue
		}
		sk.Unlocked = true
		batch = append(batch, *sk)
	}
	return batch
}

func (s *session) updateTitle() {
	p := &s.st.Player
	next := TitleForLevel(p.Level, p.Title)
	if next == p.Title {
		return
	}
	p.Title = next
	s.emit(Event{Kind: EventTitleChanged, Title: next})
	s.emit(toast("New Title Acquired: "+next, SeveritySuccess))
}
