// Package shutdown ties a process lifetime to SIGINT and SIGTERM.
package shutdown

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

var signals = []os.Signal{syscall.SIGINT, syscall.SIGTERM}

// WithSignals returns a context that is canceled on the first SIGINT or
// SIGTERM. A second signal is left to the default handler, so it kills the
// process while a graceful stop is still running.
func WithSignals(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(parent, signals...)
	go func() {
		<-ctx.Done()
		stop()
	}()
	return ctx, stop
}
