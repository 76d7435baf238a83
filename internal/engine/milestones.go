package engine

// Milestone is a badge derived from the save. Milestones are never stored;
// they are recomputed from counters on every read.
type Milestone struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Earned      bool
}

// MilestoneChecker evaluates milestones against one state.
type MilestoneChecker struct {
	st *State
}

func NewMilestoneChecker(st *State) *MilestoneChecker {
	return &MilestoneChecker{st: st}
}

// Milestones returns every milestone with its earned status.
func (c *MilestoneChecker) Milestones() []Milestone {
	return []Milestone{
		// Level milestones
		c.levelMilestone("awakened", "Awakened", "Reach level 2", "🌱", 2),
		c.levelMilestone("apprentice", "Apprentice", "Reach level 3", "🌿", 3),
		c.levelMilestone("persistent", "Persistent", "Reach level 5", "🌳", 5),
		c.levelMilestone("dedicated", "Dedicated", "Reach level 10", "⭐", 10),
		c.levelMilestone("rising", "Rising Star", "Reach level 15", "🌟", 15),
		c.levelMilestone("monarch", "Monarch", "Reach level 50", "👑", 50),

		// Quest completion milestones
		c.questCountMilestone("first_quest", "First Quest", "Complete 1 quest", "✓", 1),
		c.questCountMilestone("productive", "Productive", "Complete 25 quests", "📋", 25),
		c.questCountMilestone("achiever", "Achiever", "Complete 100 quests", "🏅", 100),
		c.questCountMilestone("powerhouse", "Powerhouse", "Complete 500 quests", "🏆", 500),

		// Full days and streaks
		c.daysMilestone("full_day", "Full Clear", "Finish every daily quest in a day", "🗓️", 1),
		c.daysMilestone("full_month", "Month of Clears", "Finish 30 full days", "📆", 30),
		c.streakMilestone("streak_7", "Week Streak", "Log in 7 days in a row", "🔥", 7),
		c.streakMilestone("streak_30", "Month Streak", "Log in 30 days in a row", "☄️", 30),

		// Effective stat milestones
		c.statMilestone("strong", "Strong", "STR 25", "💪", StatSTR, 25),
		c.statMilestone("tough", "Tough", "VIT 25", "❤️", StatVIT, 25),
		c.statMilestone("swift", "Swift", "AGI 25", "🏃", StatAGI, 25),
		c.statMilestone("smart", "Smart", "INT 25", "🧠", StatINT, 25),
		c.statMilestone("keen", "Keen", "PER 25", "👁️", StatPER, 25),

		// Inventory
		c.itemMilestone("builder", "Builder", "Log a project", "💼", CategoryProjects),
		c.itemMilestone("certified", "Certified", "Log a certification", "📜", CategoryCertifications),
		c.itemMilestone("bookworm", "Bookworm", "Log a book", "📚", CategoryBooks),
	}
}

// CountEarned returns how many milestones have been earned.
func (c *MilestoneChecker) CountEarned() int {
	count := 0
	for _, m := range c.Milestones() {
		if m.Earned {
			count++
		}
	}
	return count
}

func (c *MilestoneChecker) levelMilestone(id, name, desc, icon string, level int) Milestone {
	earned := c.st.Player.Level >= level
	return Milestone{ID: id, Name: name, Description: desc, Icon: icon, Earned: earned}
}

func (c *MilestoneChecker) questCountMilestone(id, name, desc, icon string, count int) Milestone {
	earned := c.st.TotalQuestsCompleted >= count
	return Milestone{ID: id, Name: name, Description: desc, Icon: icon, Earned: earned}
}

func (c *MilestoneChecker) daysMilestone(id, name, desc, icon string, days int) Milestone {
	earned := c.st.TotalDaysCompleted >= days
	return Milestone{ID: id, Name: name, Description: desc, Icon: icon, Earned: earned}
}

func (c *MilestoneChecker) streakMilestone(id, name, desc, icon string, streak int) Milestone {
	earned := c.st.Streak >= streak
	return Milestone{ID: id, Name: name, Description: desc, Icon: icon, Earned: earned}
}

func (c *MilestoneChecker) statMilestone(id, name, desc, icon string, stat Stat, value int) Milestone {
	earned := EffectiveStat(c.st, stat) >= value
	return Milestone{ID: id, Name: name, Description: desc, Icon: icon, Earned: earned}
}

func (c *MilestoneChecker) itemMilestone(id, name, desc, icon string, cat Category) Milestone {
	earned := len(c.st.Inventory.Items(cat)) > 0
	return Milestone{ID: id, Name: name, Description: desc, Icon: icon, Earned: earned}
}

// Milestones evaluates the milestones of the current state.
func (s *Service) Milestones() []Milestone {
	var out []Milestone
	s.view(func(st *State) { out = NewMilestoneChecker(st).Milestones() })
	return out
}
