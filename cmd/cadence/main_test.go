package main

import (
	"bytes"
	"strings"
	"testing"

	json "github.com/goccy/go-json"

	"github.com/five82/cadence/internal/music"
)

func TestWriteStatusJSON(t *testing.T) {
	snap := music.Snapshot{
		Track:           music.Track{Name: "Run", Artist: "Snow Patrol", Duration: 355, Position: 12, Loved: music.On},
		State:           music.Playing,
		Shuffle:         music.Off,
		Repeat:          music.RepeatAll,
		Volume:          60,
		CurrentPlaylist: "Mix",
		UpNext:          music.QueueEntry{Name: "Chocolate", Artist: "Snow Patrol"},
	}

	var buf bytes.Buffer
	if err := writeStatusJSON(&buf, snap); err != nil {
		t.Fatalf("writeStatusJSON: %v", err)
	}

	var got statusOutput
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v\n%s", err, buf.String())
	}
	if got.State != "Playing" || got.Playlist != "Mix" || got.Repeat != "all" || got.Shuffle != "off" {
		t.Fatalf("status = %+v", got)
	}
	if got.Track == nil || got.Track.Name != "Run" || got.Track.Loved != "on" {
		t.Fatalf("track = %+v", got.Track)
	}
	if got.Volume == nil || *got.Volume != 60 {
		t.Fatalf("volume = %v, want 60", got.Volume)
	}
	if got.UpNext == nil || got.UpNext.Name != "Chocolate" {
		t.Fatalf("up next = %+v", got.UpNext)
	}
}

func TestWriteStatusJSON_OmitsUnknowns(t *testing.T) {
	var buf bytes.Buffer
	if err := writeStatusJSON(&buf, music.Snapshot{State: music.NotRunning, Volume: -1}); err != nil {
		t.Fatalf("writeStatusJSON: %v", err)
	}
	out := buf.String()
	for _, key := range []string{`"track"`, `"volume"`, `"up_next"`} {
		if strings.Contains(out, key) {
			t.Fatalf("output contains %s:\n%s", key, out)
		}
	}
}

func TestWriteStatusText(t *testing.T) {
	snap := music.Snapshot{
		Track:  music.Track{Name: "Run", Artist: "Snow Patrol", Duration: 355, Position: 65},
		State:  music.Paused,
		Volume: -1,
	}
	var buf bytes.Buffer
	if err := writeStatusText(&buf, snap); err != nil {
		t.Fatalf("writeStatusText: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Paused", "Run", "Snow Patrol", "1:05 / 5:55", "unknown"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestNewCommandFlags(t *testing.T) {
	cmd := newCommand(&bytes.Buffer{})
	for _, name := range []string{"config", "prefs", "poll", "log-file", "debug"} {
		found := false
		for _, f := range cmd.Flags {
			for _, n := range f.Names() {
				if n == name {
					found = true
				}
			}
		}
		if !found {
			t.Fatalf("missing flag --%s", name)
		}
	}
	if len(cmd.Commands) != 1 || cmd.Commands[0].Name != "status" {
		t.Fatalf("commands = %v, want status", cmd.Commands)
	}
}
