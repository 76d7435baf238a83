package tui

import (
	"strconv"
	"strings"

	"levelup/internal/engine"
)

// parseQuestInput splits "Read a paper int 25" into name, stat and XP. The
// trailing XP and stat are optional; stat defaults to str and XP to the
// engine default.
func parseQuestInput(s string) (string, engine.Stat, int) {
	fields := strings.Fields(s)
	stat := engine.StatSTR
	xp := 0

	if n := len(fields); n > 1 {
		if v, err := strconv.Atoi(fields[n-1]); err == nil {
			xp = v
			fields = fields[:n-1]
		}
	}
	if n := len(fields); n > 1 {
		if st, err := engine.ParseStat(fields[n-1]); err == nil && st != "" {
			stat = st
			fields = fields[:n-1]
		}
	}
	return strings.Join(fields, " "), stat, xp
}
