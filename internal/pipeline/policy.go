package pipeline

import (
	"fmt"
	"strings"

	"github.com/five82/lcat/internal/record"
)

// StackTracePolicy controls whether stack traces are rendered.
type StackTracePolicy int

const (
	StackTraceFull StackTracePolicy = iota
	StackTraceSkip
)

// FallbackPolicy controls what happens to lines that are not records.
type FallbackPolicy int

const (
	PassThroughOriginalLine FallbackPolicy = iota
	DropLine
)

// Policy is built once per run and never modified. The zero value accepts
// every level, renders stack traces and passes invalid lines through.
type Policy struct {
	MinLevel   record.Severity
	StackTrace StackTracePolicy
	Fallback   FallbackPolicy
}

// DefaultPolicy returns the accept-everything policy.
func DefaultPolicy() Policy {
	return Policy{MinLevel: record.Trace, StackTrace: StackTraceFull, Fallback: PassThroughOriginalLine}
}

// ParseStackTracePolicy accepts "full" or "skip". Empty means full.
func ParseStackTracePolicy(s string) (StackTracePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "full":
		return StackTraceFull, nil
	case "skip":
		return StackTraceSkip, nil
	default:
		return StackTraceFull, fmt.Errorf("unknown stack trace policy %q (want full or skip)", s)
	}
}

// ParseFallbackPolicy accepts "pass" or "drop". Empty means pass.
func ParseFallbackPolicy(s string) (FallbackPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "pass":
		return PassThroughOriginalLine, nil
	case "drop":
		return DropLine, nil
	default:
		return PassThroughOriginalLine, fmt.Errorf("unknown invalid line policy %q (want pass or drop)", s)
	}
}
