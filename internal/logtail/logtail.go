package logtail

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
)

// LineFunc receives one line without its terminator. Returning an error
// stops the read and is passed back to the caller.
type LineFunc func(line string) error

// Scan calls fn for every line in r. Lines have no length limit; "\r\n"
// endings are stripped like "\n", and a final line without a newline is
// still delivered.
func Scan(r io.Reader, fn LineFunc) error {
	lr := newLineReader(r)
	if err := lr.drain(fn); err != nil {
		return err
	}
	return lr.flush(fn)
}

// Read returns at most maxLines from the end of the file at path. Zero or
// negative maxLines returns every line.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	tail := newRing(maxLines)
	if err := Scan(file, tail.add); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}
	return tail.lines(), nil
}

// ring keeps the most recent max lines; max <= 0 keeps everything.
type ring struct {
	max   int
	buf   []string
	idx   int
	count int
}

func newRing(max int) *ring {
	r := &ring{max: max}
	if max > 0 {
		r.buf = make([]string, max)
	}
	return r
}

func (r *ring) add(line string) error {
	if r.max <= 0 {
		r.buf = append(r.buf, line)
		r.count++
		return nil
	}
	r.buf[r.idx] = line
	r.idx = (r.idx + 1) % r.max
	if r.count < r.max {
		r.count++
	}
	return nil
}

func (r *ring) lines() []string {
	if r.count == 0 {
		return nil
	}
	if r.max <= 0 {
		return r.buf
	}
	lines := make([]string, r.count)
	if r.count == r.max {
		for i := 0; i < r.count; i++ {
			lines[i] = r.buf[(r.idx+i)%r.max]
		}
	} else {
		copy(lines, r.buf[:r.count])
	}
	return lines
}

// lineReader splits a stream into lines, holding back a trailing partial
// line until its newline arrives. It keeps working after io.EOF, which is
// what following a growing file needs.
type lineReader struct {
	src     *countingReader
	r       *bufio.Reader
	pending []byte
}

func newLineReader(r io.Reader) *lineReader {
	src := &countingReader{r: r}
	return &lineReader{src: src, r: bufio.NewReaderSize(src, 64*1024)}
}

// drain delivers every complete line currently readable.
func (lr *lineReader) drain(fn LineFunc) error {
	for {
		chunk, err := lr.r.ReadSlice('\n')
		if len(chunk) > 0 {
			if chunk[len(chunk)-1] == '\n' {
				line := chunk[:len(chunk)-1]
				if len(lr.pending) > 0 {
					line = append(lr.pending, line...)
				}
				text := string(bytes.TrimSuffix(line, []byte{'\r'}))
				lr.pending = lr.pending[:0]
				if ferr := fn(text); ferr != nil {
					return ferr
				}
			} else {
				lr.pending = append(lr.pending, chunk...)
			}
		}
		switch {
		case err == nil, err == bufio.ErrBufferFull:
			continue
		case err == io.EOF:
			return nil
		default:
			return err
		}
	}
}

// flush delivers a trailing line that never got its newline.
func (lr *lineReader) flush(fn LineFunc) error {
	if len(lr.pending) == 0 {
		return nil
	}
	text := string(bytes.TrimSuffix(lr.pending, []byte{'\r'}))
	lr.pending = lr.pending[:0]
	return fn(text)
}

// offset is the number of bytes consumed from the source so far.
func (lr *lineReader) offset() int64 {
	return lr.src.n
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
