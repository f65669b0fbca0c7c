// Package cancel implements the shared cancellation primitive used to stop
// in-progress work when the user interrupts the program.
package cancel

import (
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// ErrCancelled is returned by operations stopped by a user interrupt.
// Callers report it with a short notice rather than a full error dump.
var ErrCancelled = errors.New("operation cancelled")

// Signal is a one-way cancellation flag shared by the whole process.
// Request may be called from any goroutine, including the signal-delivery
// goroutine; once set the flag is never cleared.
type Signal struct {
	mu        sync.Mutex
	cond      *sync.Cond
	requested bool
}

// New creates a Signal in the not-requested state.
func New() *Signal {
	s := &Signal{}
	s.cond = sync.NewCond(&s.mu)

	return s
}

// Request marks cancellation as requested and wakes all waiters.
func (s *Signal) Request() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.requested = true
	s.cond.Broadcast()
}

// Requested reports whether cancellation has been requested.
func (s *Signal) Requested() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.requested
}

// Notify runs fn while holding the Signal's lock and wakes all waiters.
// Workers use it to publish completion before the controller re-checks
// its predicate.
func (s *Signal) Notify(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn()
	s.cond.Broadcast()
}

// Wait blocks until pred returns true or cancellation has been requested,
// whichever comes first. pred is evaluated with the Signal's lock held.
// It returns true when cancellation arrived before pred became true.
func (s *Signal) Wait(pred func() bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for !pred() && !s.requested {
		s.cond.Wait()
	}

	return s.requested && !pred()
}

// Install forwards termination signals (interrupt, SIGTERM, and on Unix
// SIGHUP/SIGQUIT) to s. The handler goroutine does nothing beyond setting
// the flag; all cleanup runs on the ordinary control flow.
func Install(s *Signal) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, append([]os.Signal{os.Interrupt, syscall.SIGTERM}, platformSignals...)...)

	go func() {
		for range ch {
			s.Request()
		}
	}()
}
