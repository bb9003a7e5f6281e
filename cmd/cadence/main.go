package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/five82/cadence/internal/app"
	"github.com/five82/cadence/internal/music"
)

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newCommand(os.Stdout).Run(ctx, args); err != nil {
		fmt.Fprintf(os.Stderr, "cadence: %v\n", err)
		return 1
	}
	return 0
}

func newCommand(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:   "cadence",
		Usage:  "Mirror and control the macOS Music app from the terminal",
		Writer: out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file (default ~/.config/cadence/config.toml)",
			},
			&cli.StringFlag{
				Name:  "prefs",
				Usage: "Path to the preferences file (default ~/.config/cadence/prefs.toml)",
			},
			&cli.DurationFlag{
				Name:  "poll",
				Usage: "Player refresh interval, e.g. 2s",
			},
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "Path to the log file",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return app.Run(ctx, optionsFrom(cmd))
		},
		Commands: []*cli.Command{
			{
				Name:  "status",
				Usage: "Print what the Music app is playing and exit",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output JSON",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					snap, err := app.Status(ctx, optionsFrom(cmd))
					if err != nil {
						return err
					}
					if cmd.Bool("json") {
						return writeStatusJSON(cmd.Root().Writer, snap)
					}
					return writeStatusText(cmd.Root().Writer, snap)
				},
			},
		},
	}
}

func optionsFrom(cmd *cli.Command) app.Options {
	return app.Options{
		ConfigPath:   cmd.String("config"),
		PrefsPath:    cmd.String("prefs"),
		PollInterval: cmd.Duration("poll"),
		LogFile:      cmd.String("log-file"),
		Debug:        cmd.Bool("debug"),
	}
}

// statusOutput is the JSON shape of `cadence status --json`.
type statusOutput struct {
	State    string       `json:"state"`
	Track    *trackOutput `json:"track,omitempty"`
	Playlist string       `json:"playlist,omitempty"`
	Shuffle  string       `json:"shuffle"`
	Repeat   string       `json:"repeat"`
	Volume   *int         `json:"volume,omitempty"`
	UpNext   *entryOutput `json:"up_next,omitempty"`
}

type trackOutput struct {
	Name     string  `json:"name"`
	Artist   string  `json:"artist,omitempty"`
	Album    string  `json:"album,omitempty"`
	Duration float64 `json:"duration"`
	Position float64 `json:"position"`
	Loved    string  `json:"loved"`
}

type entryOutput struct {
	Name   string `json:"name"`
	Artist string `json:"artist,omitempty"`
}

func newStatusOutput(snap music.Snapshot) statusOutput {
	out := statusOutput{
		State:    snap.State.Label(),
		Playlist: snap.CurrentPlaylist,
		Shuffle:  snap.Shuffle.String(),
		Repeat:   snap.Repeat.String(),
	}
	if t := snap.Track; t.Name != "" {
		out.Track = &trackOutput{
			Name:     t.Name,
			Artist:   t.Artist,
			Album:    t.Album,
			Duration: t.Duration,
			Position: t.Position,
			Loved:    t.Loved.String(),
		}
	}
	if snap.Volume >= 0 {
		v := snap.Volume
		out.Volume = &v
	}
	if snap.UpNext.Name != "" {
		out.UpNext = &entryOutput{Name: snap.UpNext.Name, Artist: snap.UpNext.Artist}
	}
	return out
}
