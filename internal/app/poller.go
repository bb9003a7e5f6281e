package app

import (
	"context"
	"io"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/five82/cadence/internal/music"
	"github.com/five82/cadence/internal/state"
)

const (
	defaultPollInterval = 2 * time.Second
	defaultLibraryEvery = 15
)

// PollState reports what the poller is doing.
type PollState int32

const (
	PollIdle PollState = iota
	PollRefreshing
)

func (s PollState) String() string {
	if s == PollRefreshing {
		return "refreshing"
	}
	return "idle"
}

// Poller refreshes the store from Music.app on a fixed interval.
type Poller struct {
	fetcher      music.Fetcher
	store        *state.Store
	logger       *log.Logger
	interval     time.Duration
	libraryEvery int

	ticks int
	state atomic.Int32
}

// PollerOptions configure a Poller. Zero values use defaults.
type PollerOptions struct {
	Interval     time.Duration
	LibraryEvery int
	Logger       *log.Logger
}

// NewPoller returns an idle poller.
func NewPoller(fetcher music.Fetcher, store *state.Store, opts PollerOptions) *Poller {
	if opts.Interval <= 0 {
		opts.Interval = defaultPollInterval
	}
	if opts.LibraryEvery <= 0 {
		opts.LibraryEvery = defaultLibraryEvery
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Poller{
		fetcher:      fetcher,
		store:        store,
		logger:       logger,
		interval:     opts.Interval,
		libraryEvery: opts.LibraryEvery,
	}
}

// State returns the current poll state.
func (p *Poller) State() PollState {
	return PollState(p.state.Load())
}

// Interval returns the poll interval.
func (p *Poller) Interval() time.Duration { return p.interval }

// Run polls until ctx is cancelled. The first refresh happens immediately.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		p.Refresh(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Refresh performs one poll cycle. Fetches run without the store lock; the
// result is committed in a single ApplyPoll. Every libraryEvery-th cycle,
// starting with the first, also reloads the playlist names.
func (p *Poller) Refresh(ctx context.Context) {
	p.state.Store(int32(PollRefreshing))
	defer p.state.Store(int32(PollIdle))

	start := time.Now()
	snap := p.fetcher.FetchSnapshot(ctx)
	if ctx.Err() != nil {
		return
	}
	p.store.ApplyPoll(snap)

	if p.ticks%p.libraryEvery == 0 {
		if names := p.fetcher.FetchPlaylists(ctx); names != nil {
			p.store.SetPlaylists(names)
		}
	}
	p.ticks++

	p.logger.Debug("poll complete",
		"state", snap.State.Label(),
		"track", snap.Track.Name,
		"tick", p.ticks,
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
}

// StartPoller launches p.Run in a background goroutine and returns
// immediately.
func StartPoller(ctx context.Context, p *Poller) {
	go p.Run(ctx)
}
