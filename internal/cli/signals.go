package cli

import (
	"context"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/charmbracelet/log"
)

// SignalHandler cancels the run context on interrupt
type SignalHandler struct {
	signals  chan os.Signal
	stopCh   chan struct{} // closed by Stop to signal goroutine to exit
	done     chan struct{} // closed when goroutine exits
	stopOnce sync.Once
	cancel   context.CancelFunc
	logger   *log.Logger
}

// NewSignalHandler creates a signal handler with the given context cancel.
// A nil logger discards the received-signal message.
func NewSignalHandler(cancel context.CancelFunc, logger *log.Logger) *SignalHandler {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &SignalHandler{
		signals: make(chan os.Signal, 1),
		stopCh:  make(chan struct{}),
		done:    make(chan struct{}),
		cancel:  cancel,
		logger:  logger,
	}
}

// Start begins listening for signals
func (h *SignalHandler) Start() {
	h.StartWithNotify(true)
}

// StartWithNotify begins listening for signals, optionally registering with OS signal handling.
// Pass false for notify in unit tests to avoid global signal state interactions.
func (h *SignalHandler) StartWithNotify(notify bool) {
	if notify {
		signal.Notify(h.signals, syscall.SIGINT, syscall.SIGTERM)
	}

	started := make(chan struct{})
	go func() {
		defer close(h.done)
		close(started)

		select {
		case sig := <-h.signals:
			h.logger.Warn("received signal, abandoning run", "signal", sig.String())
			if h.cancel != nil {
				h.cancel()
			}
		case <-h.stopCh:
		}
	}()

	<-started
}

// Stop stops the signal handler and waits for its goroutine to exit.
// It must only be called after Start.
func (h *SignalHandler) Stop() {
	signal.Stop(h.signals)
	h.stopOnce.Do(func() {
		close(h.stopCh)
	})
	<-h.done
}
