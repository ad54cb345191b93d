// Package logtail supplies input lines to the pipeline.
//
// # Overview
//
// Three ways of reading are provided:
//
//  1. Scan: every line of a reader (stdin, a whole file)
//  2. Read: the last N lines of a file
//  3. Follow: the last N lines of a file, then lines as they are appended
//
// All three hand lines over without their terminator. "\r\n" is treated
// like "\n" and there is no line length limit: a partial line is held back
// until its newline arrives (or, for Scan, until EOF).
//
// # Reading Log Files
//
// Read keeps a ring buffer of size maxLines, so it makes one pass over the
// file and uses O(maxLines) memory regardless of file size:
//
//	lines, err := logtail.Read("/var/log/app/app.json", 200)
//
// # Following
//
// Follow watches the file's directory with fsnotify and also re-checks the
// file once a second, since some filesystems never report writes. It
// handles the two usual rotation schemes:
//
//   - copytruncate: the file shrinks, reading restarts at offset 0
//   - rename/remove + create: the new file is opened when it appears
//
// Follow returns nil when its context is cancelled.
//
// # Error Handling
//
// Open and read failures are returned wrapped ("open log: ...", "read
// log: ..."). An error returned by the LineFunc stops reading and is
// passed back, so a closed output pipe ends the run.
package logtail
