package record

import (
	"errors"
	"fmt"

	"github.com/valyala/fastjson"
)

// ErrDecode is wrapped by every error Decode returns.
var ErrDecode = errors.New("not a log record")

// Wire field names.
const (
	fieldMessage    = "message"
	fieldLevel      = "level"
	fieldTimestamp  = "@timestamp"
	fieldLoggerName = "logger_name"
	fieldStackTrace = "stack_trace"
)

// Record is one decoded log entry. It is a plain value and is not modified
// after Decode returns it.
type Record struct {
	Message       string
	Level         Severity
	Timestamp     string // raw @timestamp text
	LoggerName    string
	StackTrace    string
	HasStackTrace bool
}

var parsers fastjson.ParserPool

// Decode interprets line as a JSON log record.
func Decode(line string) (Record, error) {
	if line == "" {
		return Record{}, fmt.Errorf("%w: empty line", ErrDecode)
	}

	p := parsers.Get()
	defer parsers.Put(p)

	v, err := p.Parse(line)
	if err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	obj, err := v.Object()
	if err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	var rec Record
	if rec.Message, err = requiredString(obj, fieldMessage); err != nil {
		return Record{}, err
	}
	level, err := requiredString(obj, fieldLevel)
	if err != nil {
		return Record{}, err
	}
	if rec.Level, err = ParseSeverity(level); err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if rec.Timestamp, err = requiredString(obj, fieldTimestamp); err != nil {
		return Record{}, err
	}
	if rec.LoggerName, err = requiredString(obj, fieldLoggerName); err != nil {
		return Record{}, err
	}

	if trace := obj.Get(fieldStackTrace); trace != nil && trace.Type() != fastjson.TypeNull {
		b, err := trace.StringBytes()
		if err != nil {
			return Record{}, fmt.Errorf("%w: field %q: %v", ErrDecode, fieldStackTrace, err)
		}
		rec.StackTrace = string(b)
		rec.HasStackTrace = true
	}

	return rec, nil
}

// requiredString copies the string value of key out of obj. The copy matters:
// obj's memory is reused once the parser goes back to the pool.
func requiredString(obj *fastjson.Object, key string) (string, error) {
	v := obj.Get(key)
	if v == nil {
		return "", fmt.Errorf("%w: missing field %q", ErrDecode, key)
	}
	b, err := v.StringBytes()
	if err != nil {
		return "", fmt.Errorf("%w: field %q: %v", ErrDecode, key, err)
	}
	return string(b), nil
}
