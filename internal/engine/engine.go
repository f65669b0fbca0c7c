package engine

// Outcome is the closed result set of one transform invocation. Anything
// other than Success or Cancelled is a failure and carries a description
// in the accompanying error.
type Outcome int

const (
	Success Outcome = iota
	Cancelled
	InvalidFormat
	Authentication
	IOError
	Internal
)

// String returns a short description of the outcome.
func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case Cancelled:
		return "cancelled"
	case InvalidFormat:
		return "invalid stream format"
	case Authentication:
		return "authentication failed"
	case IOError:
		return "i/o error"
	case Internal:
		return "internal error"
	default:
		return "unknown outcome"
	}
}

// ProgressFunc receives the current input byte offset. The engine invokes
// it no more often than the configured update interval.
type ProgressFunc func(position int64)

// Extension is a name/value pair stored in the stream header. Extensions
// are not encrypted, but the integrity trailer covers them.
type Extension struct {
	Name  string
	Value string
}

// KDF iteration bounds. The default matches the cost the format was
// designed around; the maximum guards against absurd stored values.
const (
	MinIterations     uint32 = 1
	DefaultIterations uint32 = 300_000
	MaxIterations     uint32 = 5_000_000
)
