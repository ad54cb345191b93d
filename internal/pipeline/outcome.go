package pipeline

// Kind classifies what Process did with a line.
type Kind int

const (
	Emit Kind = iota
	Suppressed
	PassThrough
	Dropped
)

func (k Kind) String() string {
	switch k {
	case Emit:
		return "emit"
	case Suppressed:
		return "suppressed"
	case PassThrough:
		return "pass-through"
	case Dropped:
		return "dropped"
	default:
		return "unknown"
	}
}

// Outcome is the result of processing a single line. Text holds the
// rendered record for Emit and the original line for PassThrough.
type Outcome struct {
	Kind Kind
	Text string
}

// Writes reports whether the outcome produces output.
func (o Outcome) Writes() bool {
	return o.Kind == Emit || o.Kind == PassThrough
}
