package logtail

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestRead(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "test.log")

	var content strings.Builder
	var expectedAll []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("Line %d", i)
		content.WriteString(line + "\n")
		expectedAll = append(expectedAll, line)
	}

	if err := os.WriteFile(logPath, []byte(content.String()), 0644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}

	tests := []struct {
		name     string
		maxLines int
		expected []string
	}{
		{
			name:     "read all (0)",
			maxLines: 0,
			expected: expectedAll,
		},
		{
			name:     "read all (negative)",
			maxLines: -1,
			expected: expectedAll,
		},
		{
			name:     "read partial (5)",
			maxLines: 5,
			expected: expectedAll[5:],
		},
		{
			name:     "read exactly all (10)",
			maxLines: 10,
			expected: expectedAll,
		},
		{
			name:     "read more than exists (20)",
			maxLines: 20,
			expected: expectedAll,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(logPath, tt.maxLines)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Read() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRead_MissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "missing.log"), 10)
	if err == nil {
		t.Fatalf("Read returned nil error for a missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Read error = %v, want os.ErrNotExist", err)
	}
}

func TestRead_EmptyFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "empty.log")
	if err := os.WriteFile(logPath, nil, 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, err := Read(logPath, 5)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("Read() = %v, want no lines", got)
	}
}

func collect(t *testing.T, input string) []string {
	t.Helper()
	var lines []string
	err := Scan(strings.NewReader(input), func(line string) error {
		lines = append(lines, line)
		return nil
	})
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	return lines
}

func TestScan(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"lf", "a\nb\n", []string{"a", "b"}},
		{"crlf", "a\r\nb\r\n", []string{"a", "b"}},
		{"no final newline", "a\nb", []string{"a", "b"}},
		{"blank lines kept", "a\n\nb\n", []string{"a", "", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := collect(t, tt.input); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Scan = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestScan_LongLine(t *testing.T) {
	long := strings.Repeat("x", 200*1024)
	got := collect(t, long+"\nshort\n")
	if len(got) != 2 || got[0] != long || got[1] != "short" {
		t.Fatalf("Scan split a long line: got %d lines", len(got))
	}
}

func TestScan_StopsOnCallbackError(t *testing.T) {
	stop := errors.New("stop")
	calls := 0
	err := Scan(strings.NewReader("a\nb\nc\n"), func(string) error {
		calls++
		return stop
	})
	if !errors.Is(err, stop) {
		t.Fatalf("Scan error = %v, want %v", err, stop)
	}
	if calls != 1 {
		t.Fatalf("callback called %d times, want 1", calls)
	}
}

func waitLine(t *testing.T, lines <-chan string, want string) {
	t.Helper()
	select {
	case got := <-lines:
		if got != want {
			t.Fatalf("line = %q, want %q", got, want)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for %q", want)
	}
}

func TestFollow(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "app.log")
	if err := os.WriteFile(logPath, []byte("old 1\nold 2\nold 3\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	lines := make(chan string, 16)
	done := make(chan error, 1)
	go func() {
		done <- Follow(ctx, logPath, 2, func(line string) error {
			lines <- line
			return nil
		})
	}()

	waitLine(t, lines, "old 2")
	waitLine(t, lines, "old 3")

	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	if _, err := f.WriteString("new 1\nnew "); err != nil {
		t.Fatalf("WriteString: %v", err)
	}
	waitLine(t, lines, "new 1")
	if _, err := f.WriteString("2\n"); err != nil {
		t.Fatalf("WriteString: %v", err)
	}
	waitLine(t, lines, "new 2")
	_ = f.Close()

	// copytruncate rotation
	if err := os.WriteFile(logPath, []byte("fresh\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	waitLine(t, lines, "fresh")

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Follow returned error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Follow did not return after cancel")
	}
}

func TestFollow_MissingFile(t *testing.T) {
	err := Follow(context.Background(), filepath.Join(t.TempDir(), "missing.log"), 0, func(string) error { return nil })
	if err == nil {
		t.Fatalf("Follow returned nil error for a missing file")
	}
}
