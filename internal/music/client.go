package music

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

const (
	defaultAppName       = "Music"
	defaultOSAScriptPath = "/usr/bin/osascript"
	defaultScriptTimeout = 5 * time.Second
	defaultQueueSize     = 10
	defaultSearchLimit   = 50
)

// ErrAutomationDenied is returned when macOS refuses to let the terminal
// script the player.
var ErrAutomationDenied = errors.New("automation permission denied")

// Runner executes one AppleScript program and returns its trimmed stdout.
type Runner interface {
	Run(ctx context.Context, script string) (string, error)
}

// OSAScript runs scripts through the osascript binary.
type OSAScript struct {
	Path    string
	Timeout time.Duration
}

// Run implements Runner. Each call gets its own timeout so a hung player
// cannot block the caller forever.
func (o OSAScript) Run(ctx context.Context, script string) (string, error) {
	path := o.Path
	if path == "" {
		path = defaultOSAScriptPath
	}
	timeout := o.Timeout
	if timeout <= 0 {
		timeout = defaultScriptTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, path, "-e", script)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if isPermissionError(msg) {
			return "", fmt.Errorf("%w: %s", ErrAutomationDenied, msg)
		}
		if ctx.Err() != nil {
			return "", fmt.Errorf("osascript: %w", ctx.Err())
		}
		if msg == "" {
			return "", fmt.Errorf("osascript: %w", err)
		}
		return "", fmt.Errorf("osascript: %s: %w", msg, err)
	}
	return strings.TrimSpace(stdout.String()), nil
}

func isPermissionError(stderr string) bool {
	return strings.Contains(stderr, "-1743") || strings.Contains(stderr, "Not authorized")
}

// ClientOptions configure a Client.
type ClientOptions struct {
	AppName     string
	Runner      Runner
	QueueSize   int
	SearchLimit int
	Logger      *log.Logger
}

// Client talks to the player through AppleScript. Fetch methods never fail:
// script errors are logged and replaced with empty or unknown values so the
// next poll can correct them.
type Client struct {
	app         string
	runner      Runner
	queueSize   int
	searchLimit int
	logger      *log.Logger
}

// NewClient builds a client with defaults filled in.
func NewClient(opts ClientOptions) *Client {
	c := &Client{
		app:         strings.TrimSpace(opts.AppName),
		runner:      opts.Runner,
		queueSize:   opts.QueueSize,
		searchLimit: opts.SearchLimit,
		logger:      opts.Logger,
	}
	if c.app == "" {
		c.app = defaultAppName
	}
	if c.runner == nil {
		c.runner = OSAScript{}
	}
	if c.queueSize <= 0 {
		c.queueSize = defaultQueueSize
	}
	if c.searchLimit <= 0 {
		c.searchLimit = defaultSearchLimit
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard)
	}
	return c
}

// AppName returns the scripted application's name.
func (c *Client) AppName() string {
	return c.app
}

// run executes a script and logs failures at debug level.
func (c *Client) run(ctx context.Context, op, script string) (string, bool) {
	out, err := c.runner.Run(ctx, script)
	if err != nil {
		if errors.Is(err, ErrAutomationDenied) {
			c.logger.Warn("automation denied", "op", op, "err", err)
		} else {
			c.logger.Debug("script failed", "op", op, "err", err)
		}
		return "", false
	}
	return out, true
}
