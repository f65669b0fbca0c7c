package cancel_test

import (
	"errors"
	"testing"
	"time"

	"github.com/terrapane/aescrypt-cli/internal/cancel"
)

func TestWaitReturnsOnPredicate(t *testing.T) {
	s := cancel.New()

	var done bool

	go func() {
		time.Sleep(10 * time.Millisecond)
		s.Notify(func() { done = true })
	}()

	if cancelled := s.Wait(func() bool { return done }); cancelled {
		t.Fatal("Wait reported cancellation, want predicate completion")
	}
}

func TestWaitReturnsOnRequest(t *testing.T) {
	s := cancel.New()

	go func() {
		time.Sleep(10 * time.Millisecond)
		s.Request()
	}()

	if cancelled := s.Wait(func() bool { return false }); !cancelled {
		t.Fatal("Wait did not report cancellation")
	}

	if !s.Requested() {
		t.Fatal("Requested() = false after Request")
	}
}

func TestRequestIsSticky(t *testing.T) {
	s := cancel.New()
	s.Request()
	s.Request() // second request must be harmless

	// A waiter arriving after the request must not block.
	if cancelled := s.Wait(func() bool { return false }); !cancelled {
		t.Fatal("late Wait did not observe earlier Request")
	}
}

func TestRequestAfterCompletionNotReportedAsCancellation(t *testing.T) {
	s := cancel.New()

	var done bool

	s.Notify(func() { done = true })
	s.Request()

	// The transform finished first; the wait outcome is completion.
	if cancelled := s.Wait(func() bool { return done }); cancelled {
		t.Fatal("Wait reported cancellation although predicate already held")
	}
}

func TestErrCancelledIdentity(t *testing.T) {
	err := cancel.ErrCancelled
	if !errors.Is(err, cancel.ErrCancelled) {
		t.Fatal("errors.Is failed for ErrCancelled")
	}
}
