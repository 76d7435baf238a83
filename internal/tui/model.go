package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"levelup/internal/engine"
	"levelup/internal/ui"
)

const (
	// skillNoticeDelay keeps the skill notice from covering the level-up banner.
	skillNoticeDelay = 2700 * time.Millisecond
	bannerDuration   = 2500 * time.Millisecond
)

type tab int

const (
	tabQuests tab = iota
	tabStats
	tabAnalytics
	tabCount
)

func (t tab) String() string {
	switch t {
	case tabQuests:
		return "Quests"
	case tabStats:
		return "Stats"
	case tabAnalytics:
		return "Analytics"
	default:
		return "?"
	}
}

type boardModel struct {
	ctx  context.Context
	svc  *engine.Service
	feed *Feed
	opts Options

	width  int
	height int

	st     *engine.State
	tab    tab
	cursor int
	month  time.Time

	adding bool
	input  textinput.Model
	keys   keyMap
	help   help.Model

	banner  string
	notice  string
	lastLog string
	loading bool
}

type loadedMsg struct {
	st engine.State
}

type actionMsg struct {
	log string
	err error
}

// refreshMsg reports a state change made outside the board, such as a regen
// tick or a day rollover.
type refreshMsg struct{}

type skillNoticeMsg struct {
	skills []engine.Skill
}

type clearBannerMsg struct{}

func newBoardModel(ctx context.Context, svc *engine.Service, feed *Feed, opts Options) boardModel {
	if opts.RegenInterval <= 0 {
		opts.RegenInterval = time.Minute
	}
	if opts.ChartDays <= 0 {
		opts.ChartDays = 30
	}
	in := textinput.New()
	in.Placeholder = "Quest name [str|vit|agi|int|per] [xp]"
	in.CharLimit = 80
	in.Prompt = ui.IconPlus + " "

	now := svc.Now()
	return boardModel{
		ctx:     ctx,
		svc:     svc,
		feed:    feed,
		opts:    opts,
		month:   time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()),
		input:   in,
		keys:    defaultKeys(),
		help:    help.New(),
		loading: true,
		lastLog: "Welcome back.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), m.feed.wait())
}

func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		return loadedMsg{st: m.svc.Snapshot()}
	}
}

func (m boardModel) toggleCmd(q engine.Quest) tea.Cmd {
	return func() tea.Msg {
		if q.Completed {
			m.svc.UncompleteQuest(m.ctx, q.ID)
			return actionMsg{log: "Unmarked " + q.Name + "."}
		}
		res := m.svc.CompleteQuest(m.ctx, q.ID)
		if !res.Completed {
			return actionMsg{log: "Nothing to do."}
		}
		return actionMsg{}
	}
}

func (m boardModel) addCmd(raw string) tea.Cmd {
	return func() tea.Msg {
		name, stat, xp := parseQuestInput(raw)
		_, err := m.svc.AddCustomQuest(m.ctx, name, stat, xp)
		return actionMsg{err: err}
	}
}

func (m boardModel) deleteCmd(q engine.Quest) tea.Cmd {
	return func() tea.Msg {
		if !m.svc.DeleteQuest(m.ctx, q.ID) {
			return actionMsg{log: "Only custom quests can be deleted."}
		}
		return actionMsg{log: "Deleted " + q.Name + "."}
	}
}

func (m boardModel) allocateCmd(s engine.Stat) tea.Cmd {
	return func() tea.Msg {
		err := m.svc.AllocateStat(m.ctx, s)
		if errors.Is(err, engine.ErrNoPoints) {
			// The engine already produced the warning toast.
			return actionMsg{}
		}
		if err != nil {
			return actionMsg{err: err}
		}
		return actionMsg{log: fmt.Sprintf("%s +1", ui.StatLabel(s))}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case loadedMsg:
		st := msg.st
		m.st = &st
		m.loading = false
		m.clampCursor()
		return m, nil

	case actionMsg:
		switch {
		case msg.err != nil:
			m.lastLog = ui.Bad.Render(msg.err.Error())
		case msg.log != "":
			m.lastLog = msg.log
		}
		return m, m.loadCmd()

	case refreshMsg:
		return m, m.loadCmd()

	case eventMsg:
		cmd := m.handleEvent(engine.Event(msg))
		return m, tea.Batch(cmd, m.feed.wait())

	case skillNoticeMsg:
		m.notice = ui.EventLine(engine.Event{Kind: engine.EventSkillsUnlocked, Skills: msg.skills})
		return m, nil

	case clearBannerMsg:
		m.banner = ""
		return m, nil

	case tea.KeyMsg:
		if m.adding {
			return m.updateInput(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m *boardModel) handleEvent(e engine.Event) tea.Cmd {
	switch e.Kind {
	case engine.EventToast:
		m.lastLog = ui.Toast(e)
	case engine.EventLevelUp:
		m.banner = fmt.Sprintf("%s  Level %d", ui.BadgeLevelUp, e.Level)
		return tea.Tick(bannerDuration, func(time.Time) tea.Msg { return clearBannerMsg{} })
	case engine.EventSkillsUnlocked:
		skills := e.Skills
		if !e.Deferred {
			return func() tea.Msg { return skillNoticeMsg{skills: skills} }
		}
		return tea.Tick(skillNoticeDelay, func(time.Time) tea.Msg { return skillNoticeMsg{skills: skills} })
	}
	return nil
}

func (m boardModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.adding = false
		m.input.Blur()
		m.input.SetValue("")
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		raw := m.input.Value()
		m.adding = false
		m.input.Blur()
		m.input.SetValue("")
		return m, m.addCmd(raw)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m boardModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Refresh):
		m.lastLog = "Refreshing…"
		return m, m.loadCmd()
	case key.Matches(msg, m.keys.NextTab):
		m.tab = (m.tab + 1) % tabCount
		m.cursor = 0
		return m, nil
	case key.Matches(msg, m.keys.PrevTab):
		m.tab = (m.tab + tabCount - 1) % tabCount
		m.cursor = 0
		return m, nil
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.cursor++
		m.clampCursor()
		return m, nil
	}

	switch m.tab {
	case tabQuests:
		return m.updateQuests(msg)
	case tabStats:
		if key.Matches(msg, m.keys.Toggle) && m.cursor < len(engine.AllStats) {
			return m, m.allocateCmd(engine.AllStats[m.cursor])
		}
	case tabAnalytics:
		switch {
		case key.Matches(msg, m.keys.PrevMonth):
			m.month = m.month.AddDate(0, -1, 0)
		case key.Matches(msg, m.keys.NextMonth):
			m.month = m.month.AddDate(0, 1, 0)
		}
	}
	return m, nil
}

func (m boardModel) updateQuests(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Add):
		m.adding = true
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.Toggle):
		if q, ok := m.selectedQuest(); ok {
			return m, m.toggleCmd(q)
		}
	case key.Matches(msg, m.keys.Delete):
		if q, ok := m.selectedQuest(); ok {
			return m, m.deleteCmd(q)
		}
	}
	return m, nil
}

// quests lists every quest in display order: daily, weekly, custom.
func (m boardModel) quests() []engine.Quest {
	if m.st == nil {
		return nil
	}
	out := make([]engine.Quest, 0, len(m.st.DailyQuests)+len(m.st.WeeklyQuests)+len(m.st.CustomQuests))
	out = append(out, m.st.DailyQuests...)
	out = append(out, m.st.WeeklyQuests...)
	out = append(out, m.st.CustomQuests...)
	return out
}

func (m boardModel) selectedQuest() (engine.Quest, bool) {
	qs := m.quests()
	if m.cursor < 0 || m.cursor >= len(qs) {
		return engine.Quest{}, false
	}
	return qs[m.cursor], true
}

func (m *boardModel) clampCursor() {
	n := 0
	switch m.tab {
	case tabQuests:
		n = len(m.quests())
	case tabStats:
		n = len(engine.AllStats)
	}
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}
