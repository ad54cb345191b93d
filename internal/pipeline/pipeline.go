package pipeline

import (
	"strings"
	"time"

	"github.com/five82/lcat/internal/record"
	"github.com/five82/lcat/internal/render"
)

const timestampLayout = "01-02 15:04:05.000"

// Pipeline pairs a Policy with the Colorizer used for rendering.
type Pipeline struct {
	Policy    Policy
	Colorizer render.Colorizer
}

// New returns a Pipeline. A nil colorizer renders plain text.
func New(policy Policy, c render.Colorizer) Pipeline {
	if c == nil {
		c = render.Plain{}
	}
	return Pipeline{Policy: policy, Colorizer: c}
}

// Process handles one line.
func (p Pipeline) Process(line string) Outcome {
	return Process(line, p.Policy, p.Colorizer)
}

// Process decodes, filters and renders line under policy.
func Process(line string, policy Policy, c render.Colorizer) Outcome {
	rec, err := record.Decode(line)
	if err != nil {
		if policy.Fallback == DropLine {
			return Outcome{Kind: Dropped}
		}
		return Outcome{Kind: PassThrough, Text: line}
	}
	if !rec.Level.AtLeast(policy.MinLevel) {
		return Outcome{Kind: Suppressed}
	}
	if c == nil {
		c = render.Plain{}
	}
	return Outcome{Kind: Emit, Text: Render(rec, policy.StackTrace, c)}
}

// Render formats an accepted record.
func Render(rec record.Record, stack StackTracePolicy, c render.Colorizer) string {
	levelClass := SeverityClass(rec.Level)

	var b strings.Builder
	b.WriteString(c.Colorize(FormatTimestamp(rec.Timestamp), render.Dim))
	b.WriteByte(' ')
	b.WriteString(c.Colorize(rec.Level.String(), levelClass))
	b.WriteByte(' ')
	b.WriteString(c.Colorize(LoggerBlock(rec.LoggerName), levelClass))
	b.WriteString(c.Colorize(rec.Message, render.Neutral))
	if stack == StackTraceFull && rec.HasStackTrace {
		b.WriteByte('\n')
		b.WriteString(c.Colorize(rec.StackTrace, render.Neutral))
	}
	return b.String()
}

// FormatTimestamp reformats an RFC 3339 timestamp as MM-DD HH:MM:SS.mmm in
// its own offset. Anything else is returned verbatim.
func FormatTimestamp(raw string) string {
	parsed, err := time.Parse(time.RFC3339Nano, upperSeparators(raw))
	if err != nil {
		return raw
	}
	return parsed.Format(timestampLayout)
}

// upperSeparators upper-cases the date-time separator and a trailing zone
// designator. RFC 3339 allows "t" and "z"; time.Parse does not.
func upperSeparators(raw string) string {
	if len(raw) <= 10 || (raw[10] != 't' && !strings.HasSuffix(raw, "z")) {
		return raw
	}
	b := []byte(raw)
	if b[10] == 't' {
		b[10] = 'T'
	}
	if last := len(b) - 1; b[last] == 'z' {
		b[last] = 'Z'
	}
	return string(b)
}

// SeverityClass maps a level to the colour class of its label.
func SeverityClass(s record.Severity) render.Class {
	switch s {
	case record.Error, record.Fatal:
		return render.Alert
	case record.Warn:
		return render.Caution
	case record.Info:
		return render.Neutral
	default:
		return render.Secondary
	}
}

// LoggerBlock returns the last dot-separated segment of name followed by
// ": ", or "" when that segment is empty.
func LoggerBlock(name string) string {
	short := name[strings.LastIndexByte(name, '.')+1:]
	if short == "" {
		return ""
	}
	return short + ": "
}
