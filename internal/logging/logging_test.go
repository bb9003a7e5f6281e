package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew_WritesLogfmt(t *testing.T) {
	var buf bytes.Buffer
	logger := Component(New(&buf, false), "poller")
	logger.Info("poll complete", "track", "Run")

	out := buf.String()
	for _, want := range []string{"level=info", `msg="poll complete"`, "component=poller", "track=Run"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output %q missing %q", out, want)
		}
	}
}

func TestNew_DebugLevel(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, false).Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug written at info level: %q", buf.String())
	}

	New(&buf, true).Debug("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Fatalf("debug record missing: %q", buf.String())
	}
}

func TestOpen_CreatesDirectoryAndAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "cadence.log")

	for _, msg := range []string{"first", "second"} {
		logger, f, err := Open(path, false)
		if err != nil {
			t.Fatalf("Open returned error: %v", err)
		}
		logger.Info(msg)
		if err := f.Close(); err != nil {
			t.Fatalf("Close: %v", err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if strings.Count(string(data), "\n") != 2 || !strings.Contains(string(data), "second") {
		t.Fatalf("log file = %q, want two appended lines", data)
	}
}
