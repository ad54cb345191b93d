package record

import (
	"fmt"
	"strings"
)

// Severity is the ordered level of a log record.
type Severity int

// Declared in rank order. Rank() is the only ordering used for comparison.
const (
	Trace Severity = iota
	Debug
	Info
	Warn
	Error
	Fatal
)

var severityNames = [...]string{
	Trace: "TRACE",
	Debug: "DEBUG",
	Info:  "INFO",
	Warn:  "WARN",
	Error: "ERROR",
	Fatal: "FATAL",
}

// Severities returns every severity from least to most severe.
func Severities() []Severity {
	return []Severity{Trace, Debug, Info, Warn, Error, Fatal}
}

// ParseSeverity matches token case-insensitively against the canonical names.
func ParseSeverity(token string) (Severity, error) {
	for _, s := range Severities() {
		if strings.EqualFold(token, severityNames[s]) {
			return s, nil
		}
	}
	return Trace, fmt.Errorf("unknown level %q", token)
}

// Rank returns the position of s in the total order, or -1 when s is not a
// known severity.
func (s Severity) Rank() int {
	if !s.Valid() {
		return -1
	}
	return int(s)
}

// AtLeast reports whether s is equal to or more severe than threshold.
func (s Severity) AtLeast(threshold Severity) bool {
	return s.Rank() >= threshold.Rank()
}

// Valid reports whether s is one of the six declared severities.
func (s Severity) Valid() bool {
	return s >= Trace && s <= Fatal
}

// String returns the canonical upper-case name.
func (s Severity) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Severity(%d)", int(s))
	}
	return severityNames[s]
}

// Next returns the next more severe level, wrapping from Fatal to Trace.
func (s Severity) Next() Severity {
	if !s.Valid() || s == Fatal {
		return Trace
	}
	return s + 1
}
