package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func writeLog(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cadence.log")
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestReadKeepsNewestLines(t *testing.T) {
	var lines []string
	for i := 1; i <= 7; i++ {
		lines = append(lines, fmt.Sprintf("msg=tick n=%d", i))
	}
	path := writeLog(t, lines...)

	tests := []struct {
		name     string
		maxLines int
		want     []string
	}{
		{name: "unbounded", maxLines: 0, want: lines},
		{name: "negative is unbounded", maxLines: -3, want: lines},
		{name: "tail of three", maxLines: 3, want: lines[4:]},
		{name: "exact fit", maxLines: 7, want: lines},
		{name: "larger than file", maxLines: 50, want: lines},
		{name: "single line", maxLines: 1, want: lines[6:]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(path, tt.maxLines)
			if err != nil {
				t.Fatalf("Read: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Read = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReadMissingAndEmpty(t *testing.T) {
	got, err := Read(filepath.Join(t.TempDir(), "nope.log"), 10)
	if err != nil || got != nil {
		t.Fatalf("Read(missing) = %v, %v; want nil, nil", got, err)
	}

	got, err = Read(writeLog(t), 10)
	if err != nil || len(got) != 0 {
		t.Fatalf("Read(empty) = %v, %v; want no lines", got, err)
	}
}

func TestReadLongLine(t *testing.T) {
	long := "msg=" + strings.Repeat("x", 200*1024)
	path := writeLog(t, "msg=before", long, "msg=after")

	got, err := Read(path, 2)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(got) != 2 || got[0] != long || got[1] != "msg=after" {
		t.Fatalf("Read returned %d lines, want the long line and its successor", len(got))
	}
}

func TestReadDirectoryFails(t *testing.T) {
	if _, err := Read(t.TempDir(), 5); err == nil {
		t.Fatal("Read of a directory returned no error")
	}
}

func TestRingWrapsInOrder(t *testing.T) {
	r := newRing(3)
	for _, s := range []string{"a", "b", "c", "d", "e"} {
		r.push(s)
	}
	if got, want := r.lines(), []string{"c", "d", "e"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("lines = %v, want %v", got, want)
	}
	if r.total != 5 {
		t.Fatalf("total = %d, want 5", r.total)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Record
	}{
		{
			name:  "full record",
			input: `time=2025-10-08T21:01:05Z level=info msg="poll complete" component=poller track="Run" tick=3`,
			want: Record{
				Time:      time.Date(2025, 10, 8, 21, 1, 5, 0, time.UTC),
				Level:     "info",
				Msg:       "poll complete",
				Component: "poller",
				Fields:    []Field{{Key: "track", Value: "Run"}, {Key: "tick", Value: "3"}},
			},
		},
		{
			name:  "uppercase level without time",
			input: `level=WARN msg="command denied" err="automation permission denied"`,
			want: Record{
				Level:  "warn",
				Msg:    "command denied",
				Fields: []Field{{Key: "err", Value: "automation permission denied"}},
			},
		},
		{
			name:  "unparseable time kept as field",
			input: `time="2025/10/08 21:01:05" level=debug msg=x`,
			want: Record{
				Level:  "debug",
				Msg:    "x",
				Fields: []Field{{Key: "time", Value: "2025/10/08 21:01:05"}},
			},
		},
		{
			name:  "plain text",
			input: "panic: something broke",
			want:  Record{Msg: "panic: something broke", Raw: true},
		},
		{
			name:  "unterminated quote",
			input: `level=info msg="oops`,
			want:  Record{Msg: `level=info msg="oops`, Raw: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFieldString(t *testing.T) {
	rec := Record{Fields: []Field{{Key: "track", Value: "Run"}, {Key: "err", Value: "not found"}}}
	if got, want := rec.FieldString(), `track=Run err="not found"`; got != want {
		t.Fatalf("FieldString() = %q, want %q", got, want)
	}
	if got := (Record{}).FieldString(); got != "" {
		t.Fatalf("empty FieldString() = %q", got)
	}
}

func TestTail(t *testing.T) {
	path := writeLog(t, "level=info msg=one", "level=info msg=two", "level=error msg=three")
	got, err := Tail(path, 2)
	if err != nil {
		t.Fatalf("Tail error = %v", err)
	}
	if len(got) != 2 || got[0].Msg != "two" || got[1].Level != "error" {
		t.Fatalf("Tail = %+v", got)
	}
}
