// Package state keeps concurrency-safe outcome counters for a run.
//
// # Overview
//
// The pipeline itself is stateless. The host, however, wants to know how a
// run went: how many lines were shown, hidden by the level filter, echoed
// because they were not records, or dropped. Store collects those counts.
//
// Writers (the app's output loop or its workers) call Record once per line.
// Readers (the -stats summary, the viewer status bar) call Snapshot, which
// returns a copy so it can be used without holding a lock.
//
// # Core Types
//
// Store: mutex-protected counters. The zero value is ready to use.
//
// Snapshot: plain value copy of the counters plus the time of the first
// and the latest update, and the last source error if any.
package state
