package prefs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writePrefs(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestLoadMissingFileIsFirstRun(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	p, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p != Defaults() {
		t.Fatalf("Load = %+v, want defaults", p)
	}
}

func TestLoadDefaultPathUnderHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	writePrefs(t, filepath.Join(home, ".config", "cadence", "prefs.toml"), "theme = \"Nord\"\n")

	p, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.Theme != "Nord" {
		t.Fatalf("Theme = %q, want Nord", p.Theme)
	}
}

func TestLoadThemeValues(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "stored", body: "theme = \"Dracula\"\n", want: "Dracula"},
		{name: "padded", body: "theme = \"  Nord \"\n", want: "Nord"},
		{name: "blank", body: "theme = \"\"\n", want: DefaultTheme},
		{name: "absent", body: "# nothing saved yet\n", want: DefaultTheme},
		{name: "unknown keys", body: "theme = \"Nord\"\nmini = true\n", want: "Nord"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "prefs.toml")
			writePrefs(t, path, tt.body)

			p, err := Load(path)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if p.Theme != tt.want {
				t.Fatalf("Theme = %q, want %q", p.Theme, tt.want)
			}
		})
	}
}

func TestLoadMalformedReportsErrorWithDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	writePrefs(t, path, "theme = [unterminated\n")

	p, err := Load(path)
	if err == nil {
		t.Fatal("Load accepted malformed TOML")
	}
	if !strings.Contains(err.Error(), "parse prefs") {
		t.Fatalf("error = %v, want parse context", err)
	}
	if p != Defaults() {
		t.Fatalf("Load = %+v, want defaults alongside the error", p)
	}
}

func TestLoadDirectoryReportsReadError(t *testing.T) {
	p, err := Load(t.TempDir())
	if err == nil {
		t.Fatal("Load of a directory returned no error")
	}
	if p.Theme != DefaultTheme {
		t.Fatalf("Theme = %q, want %q", p.Theme, DefaultTheme)
	}
}

func TestSaveCreatesDirsAndRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "prefs.toml")

	if err := Save(path, Prefs{Theme: "Solarized"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.Theme != "Solarized" {
		t.Fatalf("Theme = %q, want Solarized", p.Theme)
	}
}

func TestSaveReplacesWithoutLeftovers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prefs.toml")
	writePrefs(t, path, "theme = \"Nord\"\n")

	for _, theme := range []string{"Dracula", "Gruvbox"} {
		if err := Save(path, Prefs{Theme: theme}); err != nil {
			t.Fatalf("Save(%s): %v", theme, err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "prefs.toml" {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Fatalf("directory holds %v, want only prefs.toml", names)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "Gruvbox") {
		t.Fatalf("prefs file = %q, want last saved theme", data)
	}
}
