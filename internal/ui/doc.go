// Package ui provides lcat's interactive viewer.
//
// # Overview
//
// The viewer is a Bubble Tea program showing processed log lines in a
// scrollable viewport, with a status header and a key hint footer. It
// keeps the most recent 10000 raw input lines so the filters can be
// changed on the fly: every change re-runs the pipeline over the buffer.
//
// # Layout
//
//	┌──────────────────────────────────────────────────────────┐
//	│ lcat  min INFO  stack full  invalid pass  shown 120/400  │ header
//	├──────────────────────────────────────────────────────────┤
//	│ 05-04 11:50:24.758 INFO Service: started                 │
//	│ 05-04 11:50:25.001 WARN Pool: slow checkout              │ viewport
//	│ ...                                                      │
//	├──────────────────────────────────────────────────────────┤
//	│ l level • s stack • d invalid • space follow • ? help    │ footer
//	└──────────────────────────────────────────────────────────┘
//
// # Data Flow
//
// The app package feeds lines into Options.Lines from a goroutine and
// closes the channel at end of input. waitForLines drains whatever is
// queued into one linesMsg, so a large file arrives in a few updates.
// Source errors are recorded on the state.Store before the channel is
// closed and shown in the header.
//
// # Key Bindings
//
//   - l: Raise the minimum level, wrapping from FATAL back to TRACE
//   - s: Toggle stack traces
//   - d: Toggle dropping of lines that are not log records
//   - T: Cycle theme (saved to prefs.toml)
//   - space/f: Toggle follow (auto-scroll to new lines)
//   - g/G: Top / bottom
//   - h/?: Help overlay
//   - q or ctrl+c: Quit
package ui
