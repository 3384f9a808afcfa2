package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/yndnr/triemap/internal/telemetry/logger"
)

// ExitCode is the status used when a second signal forces exit.
const ExitCode = 130

// Handler turns termination signals into context cancellation.
type Handler struct {
	signals []os.Signal
	exit    func(int)
	log     logger.Logger
}

// Option configures a Handler.
type Option func(*Handler)

// WithSignals replaces the default SIGINT and SIGTERM.
func WithSignals(sigs ...os.Signal) Option {
	return func(h *Handler) {
		h.signals = sigs
	}
}

// WithExit replaces os.Exit for the forced exit.
func WithExit(exit func(int)) Option {
	return func(h *Handler) {
		h.exit = exit
	}
}

// WithLogger sets the handler logger.
func WithLogger(l logger.Logger) Option {
	return func(h *Handler) {
		h.log = l
	}
}

// NewHandler creates a signal handler.
func NewHandler(opts ...Option) *Handler {
	h := &Handler{
		signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
		exit:    os.Exit,
		log:     logger.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Context returns a child of parent that is cancelled by the first
// signal. A second signal exits the process with ExitCode. stop releases
// the signal subscription and cancels the context.
func (h *Handler) Context(parent context.Context) (ctx context.Context, stop func()) {
	ctx, cancel := context.WithCancel(parent)
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, h.signals...)

	quit := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		received := 0
		for {
			select {
			case sig := <-sigCh:
				received++
				if received == 1 {
					h.log.Info("shutting down, signal again to force", "signal", sig.String())
					cancel()
					continue
				}
				h.log.Warn("forced exit", "signal", sig.String())
				h.exit(ExitCode)
				return
			case <-quit:
				return
			}
		}
	}()

	var once sync.Once
	stop = func() {
		once.Do(func() {
			signal.Stop(sigCh)
			close(quit)
			<-done
			cancel()
		})
	}
	return ctx, stop
}
