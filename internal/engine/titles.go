package engine

// DefaultTitle is held until the first title tier.
const DefaultTitle = "The Beginner"

type titleTier struct {
	level int
	title string
}

// Highest first.
var titleLadder = []titleTier{
	{50, "Shadow Monarch"},
	{40, "The Enlightened One"},
	{30, "Master of Discipline"},
	{25, "The Unstoppable"},
	{20, "Knowledge Seeker"},
	{15, "Rising Star"},
	{10, "The Dedicated"},
	{5, "The Persistent"},
	{3, "Apprentice"},
}

// TitleForLevel returns the title of the highest tier level satisfies, or
// current when no tier applies.
func TitleForLevel(level int, current string) string {
	for _, t := range titleLadder {
		if level >= t.level {
			return t.title
		}
	}
	return current
}
