package runner

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/terrapane/aescrypt-cli/internal/cancel"
	"github.com/terrapane/aescrypt-cli/internal/engine"
	"github.com/terrapane/aescrypt-cli/internal/logging"
	"github.com/terrapane/aescrypt-cli/internal/secure"
)

func TestUpdateInterval(t *testing.T) {
	tests := []struct {
		name string
		size int64
		want int64
	}{
		{name: "unknown size", size: 0, want: 0},
		{name: "negative size", size: -1, want: 0},
		{name: "tiny input", size: 100, want: 0},
		{name: "just below threshold", size: meterWidth*minUpdateInterval - 1, want: 0},
		{name: "at threshold", size: meterWidth * minUpdateInterval, want: minUpdateInterval},
		{name: "large input", size: 8 << 20, want: (8 << 20) / meterWidth},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := updateInterval(tc.size); got != tc.want {
				t.Fatalf("updateInterval(%d) = %d, want %d", tc.size, got, tc.want)
			}
		})
	}
}

func newTestRunner() *Runner {
	return &Runner{
		Signal: cancel.New(),
		Log:    &logging.Logger{},
		Quiet:  true,
	}
}

func TestEncryptDecrypt(t *testing.T) {
	password := secure.NewBuffer([]byte("runner test"))
	defer password.Destroy()

	plaintext := bytes.Repeat([]byte("chunk "), 10_000)

	var ciphertext bytes.Buffer

	r := newTestRunner()

	outcome, err := r.Encrypt(password, 1000, nil, int64(len(plaintext)),
		bytes.NewReader(plaintext), &ciphertext)
	if err != nil || outcome != engine.Success {
		t.Fatalf("Encrypt outcome = %v, err = %v", outcome, err)
	}

	var recovered bytes.Buffer

	outcome, err = r.Decrypt(password, int64(ciphertext.Len()), &ciphertext, &recovered)
	if err != nil || outcome != engine.Success {
		t.Fatalf("Decrypt outcome = %v, err = %v", outcome, err)
	}

	if !bytes.Equal(recovered.Bytes(), plaintext) {
		t.Fatal("recovered plaintext differs from original")
	}
}

func TestTransformFailure(t *testing.T) {
	password := secure.NewBuffer([]byte("pw"))
	defer password.Destroy()

	r := newTestRunner()

	outcome, err := r.Decrypt(password, 0, bytes.NewReader([]byte("garbage")), io.Discard)
	if outcome != engine.InvalidFormat {
		t.Fatalf("Decrypt outcome = %v, want InvalidFormat", outcome)
	}

	if !errors.Is(err, engine.ErrInvalidFormat) {
		t.Fatalf("Decrypt error = %v, want ErrInvalidFormat", err)
	}
}

// endlessZeros never returns EOF, so the transform only finishes once the
// engine observes the cancellation request at a chunk boundary.
type endlessZeros struct{}

func (endlessZeros) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}

	return len(p), nil
}

func TestCancellation(t *testing.T) {
	password := secure.NewBuffer([]byte("pw"))
	defer password.Destroy()

	r := newTestRunner()

	go func() {
		time.Sleep(50 * time.Millisecond)
		r.Signal.Request()
	}()

	finished := make(chan struct{})

	var (
		outcome engine.Outcome
		err     error
	)

	go func() {
		outcome, err = r.Encrypt(password, 1000, nil, 0, endlessZeros{}, io.Discard)
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(5 * time.Second):
		t.Fatal("runner did not stop after cancellation request")
	}

	if err != nil {
		t.Fatalf("cancelled Encrypt returned error: %v", err)
	}

	if outcome != engine.Cancelled {
		t.Fatalf("Encrypt outcome = %v, want Cancelled", outcome)
	}
}

func TestCompletionBeforeCancellation(t *testing.T) {
	password := secure.NewBuffer([]byte("pw"))
	defer password.Destroy()

	r := newTestRunner()

	outcome, err := r.Encrypt(password, 1000, nil, 4, bytes.NewReader([]byte("data")), io.Discard)
	if err != nil || outcome != engine.Success {
		t.Fatalf("Encrypt outcome = %v, err = %v", outcome, err)
	}

	// A request arriving after the transform completed must not rewrite
	// history; only later transforms observe it.
	r.Signal.Request()

	outcome, err = r.Encrypt(password, 1000, nil, 0, endlessZeros{}, io.Discard)
	if err != nil {
		t.Fatalf("Encrypt after request returned error: %v", err)
	}

	if outcome != engine.Cancelled {
		t.Fatalf("Encrypt outcome = %v, want Cancelled", outcome)
	}
}
