// Package record decodes logstash-style JSON log lines.
//
// # Overview
//
// A record line is a single JSON object carrying the fields emitted by
// logstash-logback-encoder and similar encoders:
//
//	{
//	  "message": "started",
//	  "level": "INFO",
//	  "@timestamp": "2020-05-04T11:50:24.758+02:00",
//	  "logger_name": "com.example.Service",
//	  "stack_trace": "java.lang.IllegalStateException: ..."
//	}
//
// message, level, @timestamp and logger_name are required strings.
// stack_trace is optional; a JSON null counts as absent. Any other field is
// ignored.
//
// # Severity
//
// Severity is a closed, totally ordered set:
//
//	TRACE < DEBUG < INFO < WARN < ERROR < FATAL
//
// The order comes from an explicit rank, never from string comparison.
// Level tokens match case-insensitively ("warn", "Warn" and "WARN" are the
// same level) but are otherwise exact: "WARNING" or " INFO" are rejected.
//
// # Errors
//
// Every decode failure wraps ErrDecode. The message names the field at
// fault so it can be logged, but callers are expected to treat all
// failures alike.
//
// The timestamp is kept as raw text. Whether it parses as a calendar time
// is a rendering concern and never fails decoding.
//
// # Concurrency
//
// Decode draws parsers from a fastjson.ParserPool and copies every string
// out before returning the parser, so it is safe to call from any number
// of goroutines.
package record
