package root

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"levelup/internal/engine"
	"levelup/internal/storage"
	"levelup/internal/ui"
)

// openService opens the save database and bootstraps the service, so daily
// and weekly resets have fired before any command acts. Events print to the
// command's output unless opts install another sink.
func (a *app) openService(cmd *cobra.Command, opts ...engine.Option) (*engine.Service, func(), error) {
	ctx := cmd.Context()
	path, err := storage.ResolveDBPath(a.cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	db, err := storage.Open(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = db.Close()
	}

	base := []engine.Option{
		engine.WithLogger(a.log),
		engine.WithSlot(a.cfg.Slot),
		engine.WithEventSink(eventPrinter(cmd.OutOrStdout())),
	}
	svc := engine.NewService(storage.NewSlotStore(db), append(base, opts...)...)
	svc.Bootstrap(ctx)
	return svc, cleanup, nil
}

func eventPrinter(w io.Writer) engine.EventSink {
	return func(e engine.Event) {
		if line := ui.EventLine(e); line != "" {
			fmt.Fprintln(w, line)
		}
	}
}
