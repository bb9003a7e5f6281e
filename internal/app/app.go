package app

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/five82/cadence/internal/config"
	"github.com/five82/cadence/internal/dispatch"
	"github.com/five82/cadence/internal/logging"
	"github.com/five82/cadence/internal/music"
	"github.com/five82/cadence/internal/prefs"
	"github.com/five82/cadence/internal/state"
	"github.com/five82/cadence/internal/ui"
)

// Options configure the cadence application.
type Options struct {
	ConfigPath   string
	PrefsPath    string        // empty uses default ~/.config/cadence/prefs.toml
	PollInterval time.Duration // zero uses the config file value
	LogFile      string        // empty uses the config file value
	Debug        bool
}

// Run boots the cadence TUI until the user quits or the context is
// cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	logger, logFile, err := logging.Open(cfg.LogFile, opts.Debug)
	if err != nil {
		return err
	}
	defer logFile.Close()

	logger.Info("starting",
		"app", cfg.AppName,
		"poll", cfg.PollInterval,
		"library_every", cfg.LibraryEvery,
	)

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		logger.Warn("load prefs failed, using defaults", "error", err)
	}

	client := newClient(cfg, logging.Component(logger, "music"))
	store := state.New()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Start background poller
	poller := NewPoller(client, store, PollerOptions{
		Interval:     cfg.PollInterval,
		LibraryEvery: cfg.LibraryEvery,
		Logger:       logging.Component(logger, "poller"),
	})
	StartPoller(ctx, poller)

	actions := dispatch.New(store, client, client, dispatch.Options{
		Logger: logging.Component(logger, "dispatch"),
	})

	err = ui.Run(ui.Options{
		Context:    ctx,
		Store:      store,
		Dispatcher: actions,
		ThemeName:  userPrefs.Theme,
		PrefsPath:  opts.PrefsPath,
		LogPath:    cfg.LogFile,
		Logger:     logging.Component(logger, "ui"),
	})

	cancel()
	actions.Wait()
	if err != nil {
		logger.Error("ui exited", "error", err)
		return fmt.Errorf("run ui: %w", err)
	}
	logger.Info("stopped")
	return nil
}

// Status reads the player once without starting the UI.
func Status(ctx context.Context, opts Options) (music.Snapshot, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return music.Snapshot{}, err
	}
	logger := logging.New(nil, opts.Debug)
	return newClient(cfg, logger).FetchSnapshot(ctx), nil
}

func loadConfig(opts Options) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg.WithPoll(opts.PollInterval).WithLogFile(opts.LogFile), nil
}

func newClient(cfg config.Config, logger *log.Logger) *music.Client {
	return music.NewClient(music.ClientOptions{
		AppName: cfg.AppName,
		Runner: music.OSAScript{
			Path:    cfg.OSAScript,
			Timeout: cfg.ScriptTimeout,
		},
		QueueSize:   cfg.QueueSize,
		SearchLimit: cfg.SearchLimit,
		Logger:      logger,
	})
}
