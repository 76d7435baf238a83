package engine

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// State is the whole persisted document of one player. A Service owns exactly
// one; readers get copies through Snapshot.
type State struct {
	Player               Player               `json:"player"`
	Stats                StatBlock            `json:"stats"`
	BonusStats           StatBlock            `json:"bonusStats"`
	AvailablePoints      int                  `json:"availablePoints"`
	DailyQuests          []Quest              `json:"dailyQuests"`
	WeeklyQuests         []Quest              `json:"weeklyQuests"`
	CustomQuests         []Quest              `json:"customQuests"`
	Skills               []Skill              `json:"skills"`
	Inventory            Inventory            `json:"inventory"`
	Settings             Settings             `json:"settings"`
	LastLogin            *time.Time           `json:"lastLogin"`
	LastDailyReset       string               `json:"lastDailyReset"`
	LastWeeklyReset      string               `json:"lastWeeklyReset"`
	TotalDaysCompleted   int                  `json:"totalDaysCompleted"`
	Streak               int                  `json:"streak"`
	DailyLogs            map[string]*DailyLog `json:"dailyLogs"`
	TotalXPEarned        int                  `json:"totalXPEarned"`
	TotalQuestsCompleted int                  `json:"totalQuestsCompleted"`
}

type Player struct {
	Name      string `json:"name"`
	Job       string `json:"job"`
	Title     string `json:"title"`
	Level     int    `json:"level"`
	XP        int    `json:"xp"`
	XPToLevel int    `json:"xpToLevel"`
	HP        int    `json:"hp"`
	MaxHP     int    `json:"maxHp"`
	MP        int    `json:"mp"`
	MaxMP     int    `json:"maxMp"`
	Fatigue   int    `json:"fatigue"`
}

// QuestKind discriminates the quest variants.
type QuestKind string

const (
	QuestDaily  QuestKind = "daily"
	QuestWeekly QuestKind = "weekly"
	QuestCustom QuestKind = "custom"
)

// Quest is a daily, weekly or custom quest; Kind says which. Progress and
// Target are only set on multi-step weekly quests.
type Quest struct {
	ID        string    `json:"id"`
	Kind      QuestKind `json:"kind,omitempty"`
	Name      string    `json:"name"`
	Desc      string    `json:"desc"`
	Stat      Stat      `json:"stat"`
	XP        int       `json:"xp"`
	Completed bool      `json:"completed"`
	Icon      string    `json:"icon"`
	Progress  *int      `json:"progress,omitempty"`
	Target    *int      `json:"target,omitempty"`
	Custom    bool      `json:"custom,omitempty"`
}

// ResetsDaily reports whether the quest is cleared at local midnight.
func (q Quest) ResetsDaily() bool {
	switch q.Kind {
	case QuestDaily, QuestCustom:
		return true
	case QuestWeekly:
		return false
	default:
		return false
	}
}

type Skill struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Desc     string `json:"desc"`
	Icon     string `json:"icon"`
	ReqLevel int    `json:"reqLevel"`
	Unlocked bool   `json:"unlocked"`
}

// DailyLog aggregates one calendar day of activity.
type DailyLog struct {
	XP     int       `json:"xp"`
	Quests []string  `json:"quests"`
	Stats  StatBlock `json:"stats"`
}

type Item struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

type Inventory struct {
	Achievements   []Item `json:"achievements"`
	Projects       []Item `json:"projects"`
	Certifications []Item `json:"certifications"`
	Books          []Item `json:"books"`
}

// Settings are presentation preferences persisted with the save.
type Settings struct {
	SoundEnabled bool    `json:"soundEnabled"`
	Volume       Percent `json:"volume"`
	MusicVolume  Percent `json:"musicVolume"`
}

// Percent is a 0-100 value. Older saves stored slider values as strings, so
// both "50" and 50 decode.
type Percent int

func (p *Percent) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*p = Percent(n).clamp()
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("percent: %w", err)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("percent %q: %w", s, err)
	}
	*p = Percent(n).clamp()
	return nil
}

func (p Percent) clamp() Percent {
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	default:
		return p
	}
}

// normalize repairs what a merged document may lack: quest kinds (older
// saves carry no discriminant) and nil collections.
func (st *State) normalize() {
	for i := range st.DailyQuests {
		st.DailyQuests[i].Kind = QuestDaily
	}
	for i := range st.WeeklyQuests {
		st.WeeklyQuests[i].Kind = QuestWeekly
	}
	for i := range st.CustomQuests {
		st.CustomQuests[i].Kind = QuestCustom
		st.CustomQuests[i].Custom = true
	}
	if st.DailyLogs == nil {
		st.DailyLogs = map[string]*DailyLog{}
	}
	for k, l := range st.DailyLogs {
		if l == nil {
			delete(st.DailyLogs, k)
			continue
		}
		if l.Quests == nil {
			l.Quests = []string{}
		}
	}
	if st.CustomQuests == nil {
		st.CustomQuests = []Quest{}
	}
	st.Inventory.normalize()
}

func (inv *Inventory) normalize() {
	for _, c := range AllCategories {
		if p := inv.list(c); *p == nil {
			*p = []Item{}
		}
	}
}

// findQuest looks a quest up across all three lists.
func (st *State) findQuest(id string) *Quest {
	for _, list := range []*[]Quest{&st.DailyQuests, &st.WeeklyQuests, &st.CustomQuests} {
		for i := range *list {
			if (*list)[i].ID == id {
				return &(*list)[i]
			}
		}
	}
	return nil
}

// Clone returns a deep copy.
func (st *State) Clone() State {
	out := *st
	out.DailyQuests = cloneQuests(st.DailyQuests)
	out.WeeklyQuests = cloneQuests(st.WeeklyQuests)
	out.CustomQuests = cloneQuests(st.CustomQuests)
	if st.Skills != nil {
		out.Skills = make([]Skill, len(st.Skills))
		copy(out.Skills, st.Skills)
	}
	out.Inventory = Inventory{
		Achievements:   cloneItems(st.Inventory.Achievements),
		Projects:       cloneItems(st.Inventory.Projects),
		Certifications: cloneItems(st.Inventory.Certifications),
		Books:          cloneItems(st.Inventory.Books),
	}
	if st.LastLogin != nil {
		t := *st.LastLogin
		out.LastLogin = &t
	}
	if st.DailyLogs != nil {
		out.DailyLogs = make(map[string]*DailyLog, len(st.DailyLogs))
		for k, l := range st.DailyLogs {
			if l == nil {
				continue
			}
			c := *l
			if l.Quests != nil {
				c.Quests = make([]string, len(l.Quests))
				copy(c.Quests, l.Quests)
			}
			out.DailyLogs[k] = &c
		}
	}
	return out
}

func cloneQuests(in []Quest) []Quest {
	if in == nil {
		return nil
	}
	out := make([]Quest, len(in))
	for i, q := range in {
		if q.Progress != nil {
			v := *q.Progress
			q.Progress = &v
		}
		if q.Target != nil {
			v := *q.Target
			q.Target = &v
		}
		out[i] = q
	}
	return out
}

func cloneItems(in []Item) []Item {
	if in == nil {
		return nil
	}
	out := make([]Item, len(in))
	copy(out, in)
	return out
}

func intPtr(v int) *int { return &v }
