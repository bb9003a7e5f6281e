package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

const maxLineBytes = 1024 * 1024

// Read returns at most maxLines from the end of the file at path. A
// non-positive maxLines returns every line. A missing file yields no lines.
func Read(path string, maxLines int) ([]string, error) {
	var lines []string
	err := scanFile(path, maxLines, func(r *ring) {
		lines = r.lines()
	})
	return lines, err
}

// Tail reads the last maxLines of path and parses each one.
func Tail(path string, maxLines int) ([]Record, error) {
	var records []Record
	err := scanFile(path, maxLines, func(r *ring) {
		lines := r.lines()
		records = make([]Record, len(lines))
		for i, line := range lines {
			records[i] = Parse(line)
		}
	})
	return records, err
}

// scanFile feeds every line of path through a ring of size maxLines and
// hands the ring to done once the file is exhausted. done is not called for
// a missing file.
func scanFile(path string, maxLines int, done func(*ring)) error {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer f.Close()

	r := newRing(maxLines)
	if err := r.fill(f); err != nil {
		return fmt.Errorf("read log %s: %w", path, err)
	}
	done(r)
	return nil
}

// ring keeps the most recent lines written to it. A ring with size zero
// is unbounded.
type ring struct {
	buf   []string
	size  int
	next  int
	total int
}

func newRing(size int) *ring {
	if size <= 0 {
		return &ring{}
	}
	return &ring{buf: make([]string, size), size: size}
}

func (r *ring) fill(src io.Reader) error {
	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		r.push(scanner.Text())
	}
	return scanner.Err()
}

func (r *ring) push(line string) {
	r.total++
	if r.size == 0 {
		r.buf = append(r.buf, line)
		return
	}
	r.buf[r.next] = line
	r.next = (r.next + 1) % r.size
}

// lines returns the kept lines oldest first.
func (r *ring) lines() []string {
	if r.total == 0 {
		return nil
	}
	if r.size == 0 || r.total < r.size {
		n := len(r.buf)
		if r.size > 0 {
			n = r.total
		}
		out := make([]string, n)
		copy(out, r.buf[:n])
		return out
	}
	out := make([]string, 0, r.size)
	out = append(out, r.buf[r.next:]...)
	return append(out, r.buf[:r.next]...)
}
