// Package pipeline filters and renders one log line at a time.
//
// Process decodes a line with the record package, compares its severity
// with the policy threshold and renders accepted records as
//
//	05-04 11:50:24.758 INFO Name: message
//	<stack trace lines>
//
// Each fragment is tagged with a render.Class; the Colorizer passed in
// decides what that looks like on screen.
//
// # Outcomes
//
//   - Emit: the record decoded and is at or above the threshold
//   - Suppressed: the record decoded but is below the threshold
//   - PassThrough: the line is not a record and the policy echoes it
//   - Dropped: the line is not a record and the policy discards it
//
// Process never returns an error. A timestamp that is not RFC 3339 is
// printed verbatim; it does not turn the record into a failure.
//
// # Concurrency
//
// Policy and Pipeline are values with no mutable state. Process keeps
// nothing between calls, so any number of goroutines can share one
// Pipeline.
package pipeline
