package app

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/five82/lcat/internal/record"
)

const (
	warnLine  = `{"message":"slow","level":"WARN","@timestamp":"2020-05-04T11:50:24.758+02:00","logger_name":"com.example.Pool"}`
	debugLine = `{"message":"tick","level":"debug","@timestamp":"2020-05-04T11:50:25.000+02:00","logger_name":"com.example.Clock"}`
	errorLine = `{"message":"boom","level":"ERROR","@timestamp":"2020-05-04T11:50:26.000+02:00","logger_name":"Worker","stack_trace":"java.lang.Exception\n\tat A.b(A.java:1)"}`
)

// testOptions returns options isolated from the user's config and prefs.
func testOptions(t *testing.T) Options {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	return Options{
		ConfigPath: filepath.Join(dir, "config.toml"),
		PrefsPath:  filepath.Join(dir, "prefs.toml"),
		Color:      "never",
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func run(t *testing.T, opts Options) string {
	t.Helper()
	var out bytes.Buffer
	opts.Stdout = &out
	if err := Run(context.Background(), opts); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	return out.String()
}

func TestRun_Stdin(t *testing.T) {
	opts := testOptions(t)
	opts.Stdin = strings.NewReader(strings.Join([]string{warnLine, "plain text", debugLine, errorLine}, "\n"))

	got := run(t, opts)
	want := strings.Join([]string{
		"05-04 11:50:24.758 WARN Pool: slow",
		"plain text",
		"05-04 11:50:25.000 DEBUG Clock: tick",
		"05-04 11:50:26.000 ERROR Worker: boom",
		"java.lang.Exception",
		"\tat A.b(A.java:1)",
	}, "\n") + "\n"
	if got != want {
		t.Fatalf("output =\n%q\nwant\n%q", got, want)
	}
}

func TestRun_Policy(t *testing.T) {
	input := strings.Join([]string{warnLine, "plain text", debugLine, errorLine}, "\n")
	warn := record.Warn

	opts := testOptions(t)
	opts.Stdin = strings.NewReader(input)
	opts.MinLevel = &warn
	opts.SkipStackTraces = true
	opts.DropInvalid = true

	got := run(t, opts)
	want := "05-04 11:50:24.758 WARN Pool: slow\n05-04 11:50:26.000 ERROR Worker: boom\n"
	if got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
}

func TestRun_ConfigFile(t *testing.T) {
	opts := testOptions(t)
	config := "min_level = \"error\"\ninvalid_lines = \"drop\"\n"
	if err := os.WriteFile(opts.ConfigPath, []byte(config), 0o644); err != nil {
		t.Fatal(err)
	}
	opts.Stdin = strings.NewReader(strings.Join([]string{warnLine, "plain text", errorLine}, "\n"))
	opts.SkipStackTraces = true

	got := run(t, opts)
	want := "05-04 11:50:26.000 ERROR Worker: boom\n"
	if got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}

	// Flags override the file.
	trace := record.Trace
	opts.MinLevel = &trace
	opts.Stdin = strings.NewReader(debugLine)
	if got := run(t, opts); !strings.Contains(got, "tick") {
		t.Fatalf("flag did not override config: %q", got)
	}
}

func TestRun_FilesAndTail(t *testing.T) {
	first := writeFile(t, "first.log", warnLine+"\n"+debugLine+"\n")
	second := writeFile(t, "second.log", "one\ntwo\nthree\n")

	opts := testOptions(t)
	opts.Files = []string{first, second}
	got := run(t, opts)
	if !strings.HasPrefix(got, "05-04 11:50:24.758 WARN Pool: slow\n") || !strings.HasSuffix(got, "one\ntwo\nthree\n") {
		t.Fatalf("files out of order: %q", got)
	}

	opts.Tail = 1
	got = run(t, opts)
	want := "05-04 11:50:25.000 DEBUG Clock: tick\nthree\n"
	if got != want {
		t.Fatalf("tail output = %q, want %q", got, want)
	}
}

func TestRun_WorkersKeepOrder(t *testing.T) {
	var b strings.Builder
	for i := range 3000 {
		switch i % 3 {
		case 0:
			fmt.Fprintf(&b, `{"message":"m%d","level":"INFO","@timestamp":"2020-05-04T11:50:24.758Z","logger_name":"a.B"}`+"\n", i)
		case 1:
			fmt.Fprintf(&b, "raw %d\n", i)
		default:
			fmt.Fprintf(&b, `{"message":"t%d","level":"TRACE","@timestamp":"x","logger_name":"a.B"}`+"\n", i)
		}
	}
	path := writeFile(t, "big.log", b.String())

	opts := testOptions(t)
	opts.Files = []string{path}
	opts.Workers = 1
	sequential := run(t, opts)

	opts.Workers = 8
	parallel := run(t, opts)

	if sequential != parallel {
		t.Fatalf("parallel output differs from sequential")
	}
	if n := strings.Count(parallel, "\n"); n != 3000 {
		t.Fatalf("output lines = %d, want 3000", n)
	}
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Options)
		wantUsage bool
		wantErr   error
	}{
		{
			name:      "follow stdin",
			mutate:    func(o *Options) { o.Follow = true },
			wantUsage: true,
		},
		{
			name:      "follow two files",
			mutate:    func(o *Options) { o.Follow = true; o.Files = []string{"a", "b"} },
			wantUsage: true,
		},
		{
			name:      "negative tail",
			mutate:    func(o *Options) { o.Tail = -1 },
			wantUsage: true,
		},
		{
			name:      "bad color",
			mutate:    func(o *Options) { o.Color = "sometimes" },
			wantUsage: true,
		},
		{
			name:    "missing file",
			mutate:  func(o *Options) { o.Files = []string{filepath.Join(t.TempDir(), "nope.log")} },
			wantErr: os.ErrNotExist,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := testOptions(t)
			opts.Stdin = strings.NewReader("")
			opts.Stdout = &bytes.Buffer{}
			tt.mutate(&opts)

			err := Run(context.Background(), opts)
			if err == nil {
				t.Fatal("Run() error = nil")
			}
			if got := errors.Is(err, ErrUsage); got != tt.wantUsage {
				t.Fatalf("errors.Is(err, ErrUsage) = %v, want %v (err %v)", got, tt.wantUsage, err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRun_InvalidConfig(t *testing.T) {
	opts := testOptions(t)
	if err := os.WriteFile(opts.ConfigPath, []byte("min_level = ["), 0o644); err != nil {
		t.Fatal(err)
	}
	opts.Stdin = strings.NewReader("")
	opts.Stdout = &bytes.Buffer{}

	err := Run(context.Background(), opts)
	if err == nil || !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("Run() error = %v, want parse config error", err)
	}
	if errors.Is(err, ErrUsage) {
		t.Fatalf("config error reported as usage error")
	}
}

func TestRun_Follow(t *testing.T) {
	path := writeFile(t, "app.log", "old\n")

	opts := testOptions(t)
	opts.Files = []string{path}
	opts.Follow = true

	pr, pw := io.Pipe()
	opts.Stdout = pw
	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(pr)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()
	next := func() string {
		t.Helper()
		select {
		case line, ok := <-lines:
			if !ok {
				t.Fatal("output closed")
			}
			return line
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for output")
		}
		return ""
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, opts)
		pw.Close()
	}()

	if got := next(); got != "old" {
		t.Fatalf("backlog line = %q, want old", got)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.WriteString(warnLine + "\n"); err != nil {
		t.Fatal(err)
	}
	f.Close()

	if got := next(); got != "05-04 11:50:24.758 WARN Pool: slow" {
		t.Fatalf("followed line = %q", got)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRun_CancelWhileStdinBlocks(t *testing.T) {
	opts := testOptions(t)
	pr, pw := io.Pipe()
	defer pw.Close()
	opts.Stdin = pr
	opts.Stdout = &bytes.Buffer{}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- Run(ctx, opts) }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel while stdin was blocked")
	}
}

func TestSources_StopAfterCancel(t *testing.T) {
	path := writeFile(t, "app.log", "one\ntwo\nthree\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var got []string
	fn := func(line string) error {
		got = append(got, line)
		cancel()
		return nil
	}
	src := sources{files: []string{path, path}}
	if err := src.each(ctx, fn, nil); err != nil {
		t.Fatalf("each() error = %v", err)
	}
	if len(got) != 1 || got[0] != "one" {
		t.Fatalf("lines after cancel = %q, want [one]", got)
	}
}

func TestScanInterruptible_NoCallsAfterReturn(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	var calls int
	fn := func(string) error {
		calls++
		return nil
	}

	done := make(chan error, 1)
	go func() { done <- scanInterruptible(ctx, pr, fn) }()
	cancel()
	if err := <-done; !errors.Is(err, errStopped) {
		t.Fatalf("scanInterruptible() error = %v, want errStopped", err)
	}

	// Lines arriving after the stop are not delivered.
	go func() { _, _ = pw.Write([]byte("late\n")) }()
	time.Sleep(50 * time.Millisecond)
	if calls != 0 {
		t.Fatalf("fn called %d times after stop", calls)
	}
}
