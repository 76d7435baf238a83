package engine

type EventKind string

const (
	EventLevelUp         EventKind = "level_up"
	EventSkillsUnlocked  EventKind = "skills_unlocked"
	EventTitleChanged    EventKind = "title_changed"
	EventQuestCompleted  EventKind = "quest_completed"
	EventStatPointDenied EventKind = "stat_point_denied"
	EventToast           EventKind = "toast"
)

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Event is a semantic signal for the presentation layer. Only the fields
// relevant to Kind are set.
type Event struct {
	Kind     EventKind
	Level    int
	Skills   []Skill
	Title    string
	Quest    *Quest
	Message  string
	Severity Severity

	// Deferred events should be shown after the preceding level-up
	// animation has finished rather than on top of it.
	Deferred bool
}

// EventSink receives events after the mutation that produced them has been
// applied and persisted.
type EventSink func(Event)

func toast(msg string, sev Severity) Event {
	return Event{Kind: EventToast, Message: msg, Severity: sev}
}
