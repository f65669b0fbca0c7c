package runner

import (
	"os"

	"github.com/schollz/progressbar/v3"

	"github.com/terrapane/aescrypt-cli/internal/engine"
)

const (
	// meterWidth is the display width the update interval is scaled to.
	meterWidth = 80

	// minUpdateInterval disables the meter for inputs small enough that
	// updates would arrive faster than they are useful.
	minUpdateInterval = 16
)

// updateInterval returns the byte interval between progress callbacks for
// an input of the given size, or zero when progress should be disabled.
func updateInterval(size int64) int64 {
	if size <= 0 {
		return 0
	}

	interval := size / meterWidth
	if interval < minUpdateInterval {
		return 0
	}

	return interval
}

// meter is a thin wrapper over the visual progress bar. A nil bar means
// progress display is off while callbacks may still be counted by tests.
type meter struct {
	bar *progressbar.ProgressBar
}

// newMeter computes the update interval for inputSize and, unless the
// runner is quiet or the input is too small, creates the visual meter and
// the callback that feeds it.
func (r *Runner) newMeter(inputSize int64) (int64, engine.ProgressFunc, *meter) {
	interval := updateInterval(inputSize)
	if interval == 0 || r.Quiet {
		return interval, nil, &meter{}
	}

	bar := progressbar.NewOptions64(inputSize,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(meterWidth/2),
		progressbar.OptionClearOnFinish(),
	)

	progress := func(position int64) {
		_ = bar.Set64(position)
	}

	return interval, progress, &meter{bar: bar}
}

// Stop clears the meter from the terminal.
func (m *meter) Stop() {
	if m.bar != nil {
		_ = m.bar.Clear()
	}
}
