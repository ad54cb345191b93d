package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/five82/lcat/internal/logtail"
)

// sources walks the inputs of a run in order.
type sources struct {
	files  []string
	stdin  io.Reader
	tail   int
	follow bool
}

func (s sources) readsStdin() bool {
	for _, path := range s.files {
		if path == StdinPath {
			return true
		}
	}
	return false
}

// each feeds every line of every input to fn. done, when set, runs after
// each input so output is flushed per file.
func (s sources) each(ctx context.Context, fn logtail.LineFunc, done func() error) error {
	for _, path := range s.files {
		if err := ctx.Err(); err != nil {
			return nil
		}
		if err := s.read(ctx, path, fn); err != nil {
			if errors.Is(err, errStopped) {
				return nil
			}
			return err
		}
		if done != nil {
			if err := done(); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s sources) read(ctx context.Context, path string, fn logtail.LineFunc) error {
	fn = untilDone(ctx, fn)
	switch {
	case s.follow:
		return logtail.Follow(ctx, path, s.tail, fn)
	case path == StdinPath:
		return scanInterruptible(ctx, s.stdin, fn)
	case s.tail > 0:
		lines, err := logtail.Read(path, s.tail)
		if err != nil {
			return err
		}
		for _, line := range lines {
			if err := fn(line); err != nil {
				return err
			}
		}
		return nil
	default:
		file, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open log: %w", err)
		}
		defer file.Close()
		if err := logtail.Scan(file, fn); err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		return nil
	}
}

// errStopped ends a scan once the context is done. each reports it as a
// clean stop.
var errStopped = errors.New("stopped")

// untilDone wraps fn so the scan stops at the first line after ctx is done.
func untilDone(ctx context.Context, fn logtail.LineFunc) logtail.LineFunc {
	return func(line string) error {
		if ctx.Err() != nil {
			return errStopped
		}
		return fn(line)
	}
}

// scanInterruptible scans r in its own goroutine so a read blocked on a
// terminal or an idle pipe does not outlive ctx. Once it returns, fn is
// never called again.
func scanInterruptible(ctx context.Context, r io.Reader, fn logtail.LineFunc) error {
	var (
		mu      sync.Mutex
		stopped bool
	)
	guarded := func(line string) error {
		mu.Lock()
		defer mu.Unlock()
		if stopped {
			return errStopped
		}
		return fn(line)
	}

	done := make(chan error, 1)
	go func() { done <- logtail.Scan(r, guarded) }()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		mu.Lock()
		stopped = true
		mu.Unlock()
		return errStopped
	}
}
