// Package runner drives a single transform invocation on a worker
// goroutine, arbitrating between completion and user cancellation, and
// forwarding throttled progress updates to a visual meter.
package runner

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/terrapane/aescrypt-cli/internal/cancel"
	"github.com/terrapane/aescrypt-cli/internal/engine"
	"github.com/terrapane/aescrypt-cli/internal/logging"
	"github.com/terrapane/aescrypt-cli/internal/secure"
)

// Runner executes transforms one at a time while observing the shared
// cancellation signal. The zero value is not usable; all fields are set by
// the pipeline.
type Runner struct {
	Signal *cancel.Signal
	Log    *logging.Logger
	Quiet  bool
}

// canceller is the engine's cooperative cancel entry point, callable from
// a different goroutine than the one executing the transform.
type canceller interface {
	Cancel()
}

// Encrypt runs one streaming encryption of in to out. inputSize is used
// only to scale progress reporting and may be zero when unknown.
func (r *Runner) Encrypt(
	password *secure.Buffer,
	iterations uint32,
	extensions []engine.Extension,
	inputSize int64,
	in io.Reader,
	out io.Writer,
) (engine.Outcome, error) {
	enc := engine.NewEncryptor(r.Log)
	interval, progress, meter := r.newMeter(inputSize)

	transform := func() (engine.Outcome, error) {
		return enc.Encrypt(password.Bytes(), iterations, in, out, extensions, progress, interval)
	}

	return r.run(transform, enc, meter)
}

// Decrypt runs one streaming decryption of in to out.
func (r *Runner) Decrypt(
	password *secure.Buffer,
	inputSize int64,
	in io.Reader,
	out io.Writer,
) (engine.Outcome, error) {
	dec := engine.NewDecryptor(r.Log)
	interval, progress, meter := r.newMeter(inputSize)

	transform := func() (engine.Outcome, error) {
		return dec.Decrypt(password.Bytes(), in, out, progress, interval)
	}

	return r.run(transform, dec, meter)
}

// run executes transform on a worker goroutine and blocks the calling
// goroutine until it completes or cancellation is requested. The worker is
// always joined before run returns, so the caller may safely close the
// streams afterwards.
func (r *Runner) run(transform func() (engine.Outcome, error), c canceller, meter *meter) (engine.Outcome, error) {
	var (
		outcome engine.Outcome
		terr    error
		done    bool
	)

	var group errgroup.Group

	group.Go(func() error {
		outcome, terr = transform()

		r.Signal.Notify(func() { done = true })

		return terr
	})

	cancelled := r.Signal.Wait(func() bool { return done })

	meter.Stop()

	if cancelled {
		fmt.Fprintln(os.Stderr, "Request cancelled; cleaning up...")
		c.Cancel()
	}

	// Join the worker before touching anything it may still be writing to.
	_ = group.Wait()

	if outcome != engine.Success && outcome != engine.Cancelled {
		return outcome, fmt.Errorf("transform failed: %w", terr)
	}

	return outcome, nil
}
