package tui

import (
	"context"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"levelup/internal/engine"
)

// Feed carries engine events into the running program. Install Sink on the
// service with engine.WithEventSink before calling RunBoard.
type Feed struct {
	ch chan engine.Event
}

func NewFeed() *Feed {
	return &Feed{ch: make(chan engine.Event, 64)}
}

// Sink never blocks the engine; events beyond the buffer are dropped.
func (f *Feed) Sink() engine.EventSink {
	return func(e engine.Event) {
		select {
		case f.ch <- e:
		default:
		}
	}
}

type eventMsg engine.Event

func (f *Feed) wait() tea.Cmd {
	if f == nil {
		return nil
	}
	return func() tea.Msg { return eventMsg(<-f.ch) }
}

// Options tune the dashboard.
type Options struct {
	RegenInterval time.Duration
	ChartDays     int
}

// RunBoard runs the dashboard until the user quits or ctx is done. Idle regen
// and day rollover tick in the background every opts.RegenInterval.
func RunBoard(ctx context.Context, svc *engine.Service, feed *Feed, opts Options, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := newBoardModel(ctx, svc, feed, opts)
	p := tea.NewProgram(m, tea.WithOutput(out), tea.WithContext(ctx), tea.WithAltScreen())

	go func() {
		_ = svc.RunRegen(ctx, m.opts.RegenInterval, func() { p.Send(refreshMsg{}) })
	}()

	_, err := p.Run()
	return err
}
