package engine

import "math"

const (
	// BaseXPToLevel is the threshold at level 1.
	BaseXPToLevel = 100.0

	// LevelCurveGrowth is the per-level multiplier of the threshold.
	LevelCurveGrowth = 1.2

	// BonusStatDivisor converts earned XP into passive stat bonus.
	BonusStatDivisor = 10
)

// XPForLevel returns the XP needed to advance from level to level+1:
// floor(100 * 1.2^(level-1)).
func XPForLevel(level int) int {
	if level < 1 {
		level = 1
	}
	return int(math.Floor(BaseXPToLevel * math.Pow(LevelCurveGrowth, float64(level-1))))
}

// BonusFor is the stat bonus earned alongside an XP gain. Both the bonus
// stat pool and the daily log stat delta use it.
func BonusFor(amount int) int {
	if amount <= 0 {
		return 0
	}
	return amount / BonusStatDivisor
}
