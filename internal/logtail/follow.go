package logtail

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// pollInterval re-checks the file even without a watch event; some
// filesystems (network mounts, some containers) never deliver them.
const pollInterval = time.Second

// Follow delivers the last backlog lines of path (all of them when backlog
// <= 0) and then every line appended to it until ctx is done. A truncated
// file is re-read from the start; a file that is removed or renamed is
// picked up again when it is recreated.
func Follow(ctx context.Context, path string, backlog int, fn LineFunc) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	target, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve log path: %w", err)
	}
	// Watch the directory so rotation (remove + create) is seen.
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch log dir: %w", err)
	}

	f := &follower{path: target}
	if err := f.open(); err != nil {
		return err
	}
	defer f.close()

	tail := newRing(backlog)
	if err := f.lr.drain(tail.add); err != nil {
		return fmt.Errorf("read log: %w", err)
	}
	for _, line := range tail.lines() {
		if err := fn(line); err != nil {
			return err
		}
	}

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			switch {
			case event.Has(fsnotify.Create):
				if err := f.reopen(); err != nil {
					return err
				}
				if err := f.sync(fn); err != nil {
					return err
				}
			case event.Has(fsnotify.Write):
				if err := f.sync(fn); err != nil {
					return err
				}
			case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
				// Keep the old handle; lines already written to it are still
				// read on the next sync, and Create switches over.
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch log: %w", err)
		case <-ticker.C:
			if err := f.sync(fn); err != nil {
				return err
			}
		}
	}
}

type follower struct {
	path string
	file *os.File
	lr   *lineReader
}

func (f *follower) open() error {
	file, err := os.Open(f.path)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	f.file = file
	f.lr = newLineReader(file)
	return nil
}

func (f *follower) close() {
	if f.file != nil {
		_ = f.file.Close()
		f.file = nil
	}
}

func (f *follower) reopen() error {
	f.close()
	return f.open()
}

// sync reads whatever was appended since the last call, starting over when
// the file shrank below what was already consumed.
func (f *follower) sync(fn LineFunc) error {
	info, err := f.file.Stat()
	if err != nil {
		return fmt.Errorf("stat log: %w", err)
	}
	if info.Size() < f.lr.offset() {
		if _, err := f.file.Seek(0, io.SeekStart); err != nil {
			return fmt.Errorf("rewind log: %w", err)
		}
		f.lr = newLineReader(f.file)
	}
	if err := f.lr.drain(fn); err != nil {
		if errors.Is(err, os.ErrClosed) {
			return nil
		}
		return fmt.Errorf("read log: %w", err)
	}
	return nil
}
