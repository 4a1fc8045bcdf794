// Package signal turns SIGINT and SIGTERM into context cancellation so an
// in-flight generation can stop and the best attempt so far can still be
// written out.
package signal

import (
	"context"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
)

// Interrupt tracks whether a shutdown signal arrived.
type Interrupt struct {
	received atomic.Value // os.Signal
}

// Received reports the signal that cancelled the context, or nil.
func (i *Interrupt) Received() os.Signal {
	if s, ok := i.received.Load().(os.Signal); ok {
		return s
	}
	return nil
}

// Interrupted reports whether a signal has been received.
func (i *Interrupt) Interrupted() bool { return i.Received() != nil }

// WithInterrupt returns a child of parent that is cancelled on SIGINT or
// SIGTERM. onInterrupt, if non-nil, runs before the cancel. The returned stop
// releases the signal registration and must be called.
func WithInterrupt(parent context.Context, onInterrupt func(os.Signal)) (context.Context, *Interrupt, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	in := &Interrupt{}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigCh:
			in.received.Store(sig)
			if onInterrupt != nil {
				onInterrupt(sig)
			}
			cancel()
		case <-ctx.Done():
		}
	}()

	stop := func() {
		signal.Stop(sigCh)
		cancel()
	}
	return ctx, in, stop
}
