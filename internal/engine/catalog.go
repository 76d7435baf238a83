package engine

const (
	DefaultPlayerName = "Player"
	DefaultPlayerJob  = "B.Tech CSE Student"

	// ConsistencyQuestID is the weekly quest advanced once per fully completed day.
	ConsistencyQuestID = "wq1"

	CustomQuestIcon     = "⭐"
	DefaultCustomXP     = 10
	DefaultVolume       = 50
	DefaultMusicVolume  = 30
	startingHP          = 100
	startingMP          = 50
	startingStatValue   = 10
	consistencyTarget   = 7
	firstAchievementID  = "a1"
	firstAchievementTag = "First Steps"
)

func defaultDailyQuests() []Quest {
	return []Quest{
		{ID: "dq1", Kind: QuestDaily, Name: "Physical Training", Desc: "Exercise for 30 minutes", Stat: StatSTR, XP: 15, Icon: "🏃"},
		{ID: "dq2", Kind: QuestDaily, Name: "Study Session", Desc: "Study for 2 hours", Stat: StatINT, XP: 20, Icon: "📚"},
		{ID: "dq3", Kind: QuestDaily, Name: "Stay Hydrated", Desc: "Drink 8 glasses of water", Stat: StatVIT, XP: 10, Icon: "💧"},
		{ID: "dq4", Kind: QuestDaily, Name: "Meditation", Desc: "Meditate for 10 minutes", Stat: StatPER, XP: 10, Icon: "🧘"},
		{ID: "dq5", Kind: QuestDaily, Name: "Code Practice", Desc: "Solve 1 coding problem", Stat: StatINT, XP: 15, Icon: "💻"},
		{ID: "dq6", Kind: QuestDaily, Name: "Early Bird", Desc: "Wake up before 7 AM", Stat: StatAGI, XP: 10, Icon: "🌅"},
	}
}

func defaultWeeklyQuests() []Quest {
	return []Quest{
		{ID: ConsistencyQuestID, Kind: QuestWeekly, Name: "Consistency Master", Desc: "Complete all daily quests for 7 days", Stat: StatAll, XP: 100, Progress: intPtr(0), Target: intPtr(consistencyTarget), Icon: "🏆"},
		{ID: "wq2", Kind: QuestWeekly, Name: "Tech Explorer", Desc: "Learn a new technology", Stat: StatINT, XP: 50, Icon: "🔬"},
		{ID: "wq3", Kind: QuestWeekly, Name: "Project Milestone", Desc: "Complete a project milestone", Stat: StatINT, XP: 75, Icon: "🎯"},
	}
}

func defaultSkills() []Skill {
	return []Skill{
		{ID: "s1", Name: "Early Bird", Desc: "Gain 10% bonus XP for tasks completed before 8 AM", Icon: "🌅", ReqLevel: 5},
		{ID: "s2", Name: "Focus Mode", Desc: "Enter deep work state - 2 hour uninterrupted sessions give 25% bonus XP", Icon: "🎯", ReqLevel: 10},
		{ID: "s3", Name: "Code Warrior", Desc: "Coding practice gives double INT XP", Icon: "⚔️", ReqLevel: 15},
		{ID: "s4", Name: "Night Owl", Desc: "Gain XP for productive late-night work (after 10 PM)", Icon: "🦉", ReqLevel: 20},
		{ID: "s5", Name: "Iron Will", Desc: "Fatigue accumulates 50% slower", Icon: "🛡️", ReqLevel: 25},
		{ID: "s6", Name: "Multitasker", Desc: "Can complete parallel quests for bonus rewards", Icon: "🔄", ReqLevel: 30},
		{ID: "s7", Name: "Knowledge Seeker", Desc: "Books and courses give triple XP", Icon: "📖", ReqLevel: 40},
		{ID: "s8", Name: "Shadow Monarch", Desc: "All stats permanently boosted by 10%", Icon: "👑", ReqLevel: 50},
	}
}

// DefaultState returns a fresh save. Loaded documents are merged onto it, so
// every field added here reaches existing saves with its default value.
func DefaultState() *State {
	base := StatBlock{Str: startingStatValue, Vit: startingStatValue, Agi: startingStatValue, Int: startingStatValue, Per: startingStatValue}
	return &State{
		Player: Player{
			Name:      DefaultPlayerName,
			Job:       DefaultPlayerJob,
			Title:     DefaultTitle,
			Level:     1,
			XP:        0,
			XPToLevel: XPForLevel(1),
			HP:        startingHP,
			MaxHP:     startingHP,
			MP:        startingMP,
			MaxMP:     startingMP,
		},
		Stats:        base,
		DailyQuests:  defaultDailyQuests(),
		WeeklyQuests: defaultWeeklyQuests(),
		CustomQuests: []Quest{},
		Skills:       defaultSkills(),
		Inventory: Inventory{
			Achievements:   []Item{{ID: firstAchievementID, Name: firstAchievementTag, Icon: "👣"}},
			Projects:       []Item{},
			Certifications: []Item{},
			Books:          []Item{},
		},
		Settings: Settings{
			SoundEnabled: true,
			Volume:       DefaultVolume,
			MusicVolume:  DefaultMusicVolume,
		},
		DailyLogs: map[string]*DailyLog{},
	}
}
