package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"levelup/internal/engine"
	"levelup/internal/ui"
)

func (m boardModel) View() string {
	if m.st == nil {
		return "Levelup: loading…\n"
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	switch m.tab {
	case tabQuests:
		b.WriteString(m.renderQuests())
	case tabStats:
		b.WriteString(m.renderStats())
	case tabAnalytics:
		b.WriteString(m.renderAnalytics())
	}
	b.WriteString("\n")

	if m.banner != "" {
		b.WriteString("\n" + m.banner)
	}
	if m.notice != "" {
		b.WriteString("\n" + m.notice)
	}
	b.WriteString("\n" + m.lastLog + "\n")
	if m.adding {
		b.WriteString("\n" + m.input.View() + "\n")
		b.WriteString(m.help.View(inputKeys{m.keys}))
	} else {
		b.WriteString("\n" + m.help.View(m.keys))
	}
	return b.String()
}

func (m boardModel) renderHeader() string {
	p := m.st.Player
	line1 := fmt.Sprintf("%s  %s  %s",
		ui.Title.Render(p.Name),
		ui.Muted.Render(p.Job),
		ui.Gold.Render("« "+p.Title+" »"),
	)
	line2 := fmt.Sprintf("Lv %d %s %d/%d XP   %s %d/%d   %s %d/%d   Fatigue %d   %s %d",
		p.Level, ui.ProgressBar(p.XP, p.XPToLevel, 20), p.XP, p.XPToLevel,
		ui.IconHeart, p.HP, p.MaxHP,
		ui.IconMana, p.MP, p.MaxMP,
		p.Fatigue,
		ui.IconFire, m.st.Streak,
	)
	return line1 + "\n" + line2
}

func (m boardModel) renderTabs() string {
	parts := make([]string, 0, tabCount)
	for t := tab(0); t < tabCount; t++ {
		label := " " + t.String() + " "
		if t == m.tab {
			parts = append(parts, ui.SelectedRow.Render(label))
		} else {
			parts = append(parts, ui.Muted.Render(label))
		}
	}
	return strings.Join(parts, " ")
}

func (m boardModel) renderQuests() string {
	var out []string
	var kind engine.QuestKind
	for i, q := range m.quests() {
		if q.Kind != kind {
			kind = q.Kind
			if i > 0 {
				out = append(out, "")
			}
			out = append(out, ui.PanelTitle.Render(questSection(kind)))
		}
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%s %s %s %s", cursor, ui.QuestMark(q.Completed), q.Icon, q.Name, ui.Muted.Render(fmt.Sprintf("+%d %s", q.XP, q.Stat.Label())))
		if q.Progress != nil && q.Target != nil {
			line += " " + ui.ProgressBar(*q.Progress, *q.Target, 7) + fmt.Sprintf(" %d/%d", *q.Progress, *q.Target)
		}
		out = append(out, line)
	}
	if len(m.st.CustomQuests) == 0 {
		out = append(out, "", ui.Muted.Render("No custom quests yet. Press a to add one."))
	}
	return strings.Join(out, "\n")
}

func questSection(k engine.QuestKind) string {
	switch k {
	case engine.QuestDaily:
		return "Daily Quests"
	case engine.QuestWeekly:
		return "Weekly Quests"
	case engine.QuestCustom:
		return "Custom Quests"
	default:
		return string(k)
	}
}

func (m boardModel) renderStats() string {
	var left []string
	left = append(left, ui.PanelTitle.Render("Stats"))
	for i, s := range engine.AllStats {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		base := m.st.Stats.Get(s)
		bonus := m.st.BonusStats.Get(s)
		left = append(left, fmt.Sprintf("%s%s %3d %s", cursor, padRight(ui.StatLabel(s), 8), base+bonus, ui.Muted.Render(fmt.Sprintf("(%d+%d)", base, bonus))))
	}
	left = append(left, "", ui.LabelValue("Ability points", m.st.AvailablePoints))

	var right []string
	right = append(right, ui.PanelTitle.Render("Skills"))
	for _, sk := range m.st.Skills {
		if sk.Unlocked {
			right = append(right, fmt.Sprintf("%s %s", sk.Icon, sk.Name))
		} else {
			right = append(right, ui.Muted.Render(fmt.Sprintf("🔒 %s (Lv %d)", sk.Name, sk.ReqLevel)))
		}
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		ui.Panel.Render(strings.Join(left, "\n")),
		"  ",
		ui.Panel.Render(strings.Join(right, "\n")),
	)
}

func (m boardModel) renderAnalytics() string {
	today := engine.DayDetailFor(m.st, m.st.LastDailyReset)
	cal := engine.CalendarMonth(m.st, m.month.Year(), m.month.Month(), m.st.LastDailyReset)
	series := engine.XPSeries(m.st, m.svc.Now(), m.opts.ChartDays)
	sum := engine.Summarize(m.st)

	summary := strings.Join([]string{
		ui.PanelTitle.Render("Totals"),
		ui.LabelValue("XP earned", sum.TotalXPEarned),
		ui.LabelValue("Quests", sum.TotalQuestsCompleted),
		ui.LabelValue("Full days", sum.TotalDaysCompleted),
		ui.LabelValue("Active days", sum.ActiveDays),
		ui.LabelValue("Today", fmt.Sprintf("%d XP, %d quests", today.XP, today.QuestCount)),
	}, "\n")

	top := lipgloss.JoinHorizontal(lipgloss.Top,
		ui.Panel.Render(ui.RenderCalendar(cal)),
		"  ",
		ui.Panel.Render(summary),
	)
	chart := ui.Panel.Render(ui.PanelTitle.Render(fmt.Sprintf("%s Last %d days", ui.IconChart, m.opts.ChartDays)) + "\n" + ui.RenderBarChart(series, 6))
	return top + "\n" + chart
}

func padRight(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
