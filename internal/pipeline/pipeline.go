// Package pipeline iterates the input files of one invocation, derives
// output names, validates paths, opens streams, and hands each file to the
// transform runner. Files are processed serially: they share the engine,
// the password buffer, and the single progress meter.
package pipeline

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/terrapane/aescrypt-cli/internal/cancel"
	"github.com/terrapane/aescrypt-cli/internal/engine"
	"github.com/terrapane/aescrypt-cli/internal/logging"
	"github.com/terrapane/aescrypt-cli/internal/runner"
	"github.com/terrapane/aescrypt-cli/internal/secure"
)

// bufferedIOSize is the stream buffer size, chosen to keep syscall
// overhead low on large files.
const bufferedIOSize = 128 * 1024

// Pipeline processes an ordered list of input files with one shared
// password. It either succeeds for all files or stops at the first
// failure or cancellation, leaving no partially written fresh outputs.
type Pipeline struct {
	Password   *secure.Buffer
	Decrypt    bool
	Output     string // shared output override; "" derives per-file names
	Iterations uint32
	Extensions []engine.Extension
	Quiet      bool
	Signal     *cancel.Signal
	Log        *logging.Logger
}

// Run processes files in order. Preconditions that would abort mid-run are
// checked up front so no file is touched before a late failure.
func (p *Pipeline) Run(files []string) error {
	// Progress and chatter are pointless when the payload shares stdout.
	quiet := p.Quiet || p.Output == Stdio

	if p.Decrypt && p.Output == "" {
		for _, input := range files {
			if !HasSuffix(input) {
				return fmt.Errorf("%w: %q", ErrMissingSuffix, input)
			}
		}
	}

	run := &runner.Runner{Signal: p.Signal, Log: p.Log, Quiet: quiet}

	p.Log.Infof("processing %d file(s)", len(files))

	for _, input := range files {
		if err := p.processFile(run, input, quiet); err != nil {
			return err
		}

		// Stop between files as well: a completed file is kept, but no
		// further file is started after a cancellation request.
		if p.Signal.Requested() {
			return cancel.ErrCancelled
		}
	}

	p.Log.Infof("all files processed")

	return nil
}

// processFile validates, opens, transforms, and closes a single file pair,
// removing a freshly created output on any failure.
func (p *Pipeline) processFile(run *runner.Runner, input string, quiet bool) error {
	out := p.Output
	if out == "" {
		derived, err := outputName(input, p.Decrypt)
		if err != nil {
			return fmt.Errorf("%w (input %q)", err, input)
		}

		out = derived
	}

	inputSize, err := p.checkInput(input)
	if err != nil {
		return err
	}

	removeOnFail, err := p.checkOutput(out)
	if err != nil {
		return err
	}

	in, inClose, err := openInput(input)
	if err != nil {
		return err
	}

	dst, flush, outClose, err := openOutput(out)
	if err != nil {
		inClose()

		return err
	}

	if !quiet && out != Stdio {
		verb := "Encrypting"
		if p.Decrypt {
			verb = "Decrypting"
		}

		fmt.Printf("%s: %s\n", verb, input) //nolint:forbidigo
	}

	var outcome engine.Outcome

	if p.Decrypt {
		outcome, err = run.Decrypt(p.Password, inputSize, in, dst)
	} else {
		outcome, err = run.Encrypt(p.Password, p.Iterations, p.Extensions, inputSize, in, dst)
	}

	// The worker has been joined; the streams are safe to close now.
	inClose()

	closeErr := flush()

	outClose()

	if outcome == engine.Success && closeErr != nil {
		outcome = engine.IOError
		err = fmt.Errorf("finishing output %q: %w", out, closeErr)
	}

	if outcome != engine.Success {
		if removeOnFail {
			if removeErr := os.Remove(out); removeErr != nil {
				p.Log.Errorf("unable to remove output file %q: %v", out, removeErr)
			}
		}

		if outcome == engine.Cancelled {
			return cancel.ErrCancelled
		}

		return fmt.Errorf("processing %q: %w", input, err)
	}

	return nil
}

// checkInput validates the input path and returns its size for progress
// display. Size is best effort; the stdin sentinel reports zero.
func (p *Pipeline) checkInput(input string) (int64, error) {
	if input == Stdio {
		return 0, nil
	}

	info, err := os.Stat(input)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, fmt.Errorf("input file does not exist: %q", input)
		}

		return 0, fmt.Errorf("checking input file %q: %w", input, err)
	}

	if !info.Mode().IsRegular() {
		return 0, fmt.Errorf("input name is not a file: %q", input)
	}

	p.Log.Infof("input %q is %s", input, humanize.IBytes(uint64(info.Size())))

	return info.Size(), nil
}

// checkOutput rejects directories and existing regular files, and reports
// whether the target is fresh — only a target that did not exist at all is
// eligible for removal on failure, so pre-existing special files such as
// devices and pipes are never deleted.
func (p *Pipeline) checkOutput(out string) (bool, error) {
	if out == Stdio {
		return false, nil
	}

	info, err := os.Stat(out)

	switch {
	case errors.Is(err, fs.ErrNotExist):
		return true, nil
	case err != nil:
		return false, fmt.Errorf("checking output file %q: %w", out, err)
	case info.IsDir():
		return false, fmt.Errorf("%w: target output cannot be a directory: %q", ErrPathConflict, out)
	case info.Mode().IsRegular():
		return false, fmt.Errorf("%w: target output file already exists: %q", ErrPathConflict, out)
	default:
		// Existing special file (device, pipe): writable, never removed.
		return false, nil
	}
}

// openInput returns a buffered reader for the input and a close function.
func openInput(input string) (io.Reader, func(), error) {
	if input == Stdio {
		return os.Stdin, func() {}, nil
	}

	file, err := os.Open(input) //nolint:gosec // path is user-provided by design
	if err != nil {
		return nil, nil, fmt.Errorf("unable to open input file %q: %w", input, err)
	}

	return bufio.NewReaderSize(file, bufferedIOSize), func() { _ = file.Close() }, nil
}

// openOutput returns a buffered writer for the output target along with
// flush and close functions. The stdout sentinel is flushed but not closed.
func openOutput(out string) (io.Writer, func() error, func(), error) {
	if out == Stdio {
		writer := bufio.NewWriterSize(os.Stdout, bufferedIOSize)

		return writer, writer.Flush, func() {}, nil
	}

	file, err := os.OpenFile(out, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600) //nolint:gosec // path is user-provided by design
	if err != nil {
		return nil, nil, nil, fmt.Errorf("unable to open output file %q: %w", out, err)
	}

	writer := bufio.NewWriterSize(file, bufferedIOSize)

	return writer, writer.Flush, func() { _ = file.Close() }, nil
}
