package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"levelup/cmd/lvl/root"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := root.Execute(ctx)
	stop()
	os.Exit(code)
}
