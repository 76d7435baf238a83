package ui

import (
	"fmt"
	"strings"

	"levelup/internal/engine"
)

// StatLabel is the icon and short name of a stat.
func StatLabel(s engine.Stat) string {
	switch s {
	case engine.StatSTR:
		return "💪 STR"
	case engine.StatVIT:
		return "❤️ VIT"
	case engine.StatAGI:
		return "⚡ AGI"
	case engine.StatINT:
		return "🧠 INT"
	case engine.StatPER:
		return "👁️ PER"
	case engine.StatAll:
		return "⭐ ALL"
	default:
		return s.Label()
	}
}

// Toast renders a toast event as one styled line.
func Toast(e engine.Event) string {
	switch e.Severity {
	case engine.SeveritySuccess:
		return Good.Render(IconSparkle + " " + e.Message)
	case engine.SeverityWarning:
		return Warn.Render(IconWarn + " " + e.Message)
	case engine.SeverityError:
		return Bad.Render(IconError + " " + e.Message)
	default:
		return Muted.Render(IconInfo + " " + e.Message)
	}
}

// EventLine renders the events a terminal shows. Level and title changes
// arrive with their own toasts, so only toasts and skill unlocks print.
func EventLine(e engine.Event) string {
	switch e.Kind {
	case engine.EventToast:
		return Toast(e)
	case engine.EventSkillsUnlocked:
		names := make([]string, 0, len(e.Skills))
		for _, s := range e.Skills {
			names = append(names, s.Icon+" "+s.Name)
		}
		return Gold.Render(IconSkill + " Skills unlocked: " + strings.Join(names, ", "))
	default:
		return ""
	}
}

// RenderCalendar draws a Sunday-first month grid coloured by activity level.
func RenderCalendar(cal engine.Calendar) string {
	var b strings.Builder
	b.WriteString(H2.Render(fmt.Sprintf("%s %d", cal.Month, cal.Year)))
	b.WriteString("\n")
	b.WriteString(Muted.Render("Su Mo Tu We Th Fr Sa"))
	b.WriteString("\n")

	for i, c := range cal.Cells {
		switch {
		case c.Blank:
			b.WriteString("  ")
		case c.Today:
			b.WriteString(TodayCell.Render(fmt.Sprintf("%2d", c.Day)))
		default:
			b.WriteString(Heat(c.Level).Render(fmt.Sprintf("%2d", c.Day)))
		}
		if i%7 == 6 {
			b.WriteString("\n")
		} else {
			b.WriteString(" ")
		}
	}
	if len(cal.Cells)%7 != 0 {
		b.WriteString("\n")
	}
	b.WriteString(HeatLegend())
	return b.String()
}

// HeatLegend explains the calendar colours.
func HeatLegend() string {
	cells := make([]string, 0, len(heat))
	for i := range heat {
		cells = append(cells, Heat(i).Render("■"))
	}
	return Muted.Render("Less ") + strings.Join(cells, " ") + Muted.Render(" More")
}

// RenderBarChart draws daily XP as vertical bars, one column per day, with
// every fifth day labelled.
func RenderBarChart(days []engine.DayXP, height int) string {
	if len(days) == 0 {
		return Muted.Render("(no days)")
	}
	if height < 1 {
		height = 1
	}
	peak := 0
	total := 0
	for _, d := range days {
		total += d.XP
		if d.XP > peak {
			peak = d.XP
		}
	}
	if peak == 0 {
		return Muted.Render(fmt.Sprintf("No XP logged in the last %d days.", len(days)))
	}

	var b strings.Builder
	b.WriteString(Muted.Render(fmt.Sprintf("peak %d XP, total %d XP", peak, total)))
	b.WriteString("\n")
	for row := height; row >= 1; row-- {
		for _, d := range days {
			if barHeight(d.XP, peak, height) >= row {
				b.WriteString(Heat(engine.ActivityLevelForXP(d.XP)).Render("█"))
			} else {
				b.WriteString(" ")
			}
			b.WriteString(" ")
		}
		b.WriteString("\n")
	}
	for i, d := range days {
		if i%5 == 0 || i == len(days)-1 {
			b.WriteString(Muted.Render(fmt.Sprintf("%-2d", d.Day)))
		} else {
			b.WriteString("  ")
		}
	}
	return b.String()
}

// barHeight scales xp to rows; any positive value gets at least one row.
func barHeight(xp, peak, height int) int {
	if xp <= 0 || peak <= 0 {
		return 0
	}
	h := (xp*height + peak - 1) / peak
	if h > height {
		h = height
	}
	return h
}
