package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	json "github.com/goccy/go-json"

	"github.com/five82/cadence/internal/dispatch"
	"github.com/five82/cadence/internal/music"
)

func writeStatusJSON(w io.Writer, snap music.Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(newStatusOutput(snap)); err != nil {
		return fmt.Errorf("encode status: %w", err)
	}
	return nil
}

func writeStatusText(w io.Writer, snap music.Snapshot) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "State:\t%s %s\n", snap.State.Icon(), snap.State.Label())
	if t := snap.Track; t.Name != "" {
		fmt.Fprintf(tw, "Track:\t%s\n", t.Name)
		if t.Artist != "" {
			fmt.Fprintf(tw, "Artist:\t%s\n", t.Artist)
		}
		if t.Album != "" {
			fmt.Fprintf(tw, "Album:\t%s\n", t.Album)
		}
		fmt.Fprintf(tw, "Time:\t%s / %s\n", dispatch.FormatClock(t.Position), dispatch.FormatClock(t.Duration))
	}
	if snap.CurrentPlaylist != "" {
		fmt.Fprintf(tw, "Playlist:\t%s\n", snap.CurrentPlaylist)
	}
	fmt.Fprintf(tw, "Shuffle:\t%s\n", snap.Shuffle)
	fmt.Fprintf(tw, "Repeat:\t%s\n", snap.Repeat)
	if snap.Volume >= 0 {
		fmt.Fprintf(tw, "Volume:\t%d%%\n", snap.Volume)
	} else {
		fmt.Fprintf(tw, "Volume:\tunknown\n")
	}
	if next := snap.UpNext; next.Name != "" {
		fmt.Fprintf(tw, "Up next:\t%s · %s\n", next.Name, next.Artist)
	}
	return tw.Flush()
}
