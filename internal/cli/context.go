package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/julianstephens/jagruk/internal/backup"
	"github.com/julianstephens/jagruk/internal/config"
	"github.com/julianstephens/jagruk/internal/logger"
	"github.com/julianstephens/jagruk/internal/persist"
	"github.com/julianstephens/jagruk/internal/storage"
	"github.com/julianstephens/jagruk/internal/tracker"
)

// Context is handed to every command's Run method.
type Context struct {
	Config config.Config
	Store  storage.BlobStore
	Out    io.Writer
	In     io.Reader
	// Clock overrides the wall clock, for tests.
	Clock func() time.Time

	tracker *tracker.Tracker
	reader  *bufio.Reader
}

// Tracker loads the store on first use and opens the tracker over it.
func (c *Context) Tracker() (*tracker.Tracker, error) {
	if c.tracker != nil {
		return c.tracker, nil
	}
	if err := c.Store.Load(); err != nil {
		return nil, err
	}
	loc, err := c.Config.Location()
	if err != nil {
		return nil, err
	}
	opts := []persist.Option{
		persist.WithLocation(loc),
		persist.WithDebounce(c.Config.Storage.Debounce),
	}
	if c.Clock != nil {
		opts = append(opts, persist.WithClock(c.Clock))
	}
	p := persist.New(c.Store, opts...)
	c.tracker = tracker.Open(p)
	return c.tracker, nil
}

// Now is the current instant in the configured timezone.
func (c *Context) Now() time.Time {
	clock := time.Now
	if c.Clock != nil {
		clock = c.Clock
	}
	loc, err := c.Config.Location()
	if err != nil {
		return clock()
	}
	return clock().In(loc)
}

// Close flushes pending saves and closes the store.
func (c *Context) Close() error {
	var flushErr error
	if c.tracker != nil {
		flushErr = c.tracker.Close()
	}
	if err := c.Store.Close(); err != nil {
		return fmt.Errorf("failed to close storage: %w", err)
	}
	return flushErr
}

// Backups returns the snapshot manager for the configured directory.
func (c *Context) Backups() *backup.Manager {
	return backup.NewManager(c.Config.ConfigDir(), c.Config.Backup.Max)
}

// PerformAutomaticBackup creates a snapshot and only logs failures.
func (c *Context) PerformAutomaticBackup() {
	t, err := c.Tracker()
	if err != nil {
		logger.Warn("Automatic backup failed", "error", err)
		return
	}
	if _, err := t.Backup(c.Backups()); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// Writer is where command output goes, stdout unless Out is set.
func (c *Context) Writer() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.Writer(), format, args...)
}

func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.Writer(), args...)
}

// Confirm asks a yes/no question on the terminal. Anything but y or yes is no.
func (c *Context) Confirm(prompt string) (bool, error) {
	if c.reader == nil {
		in := c.In
		if in == nil {
			in = os.Stdin
		}
		c.reader = bufio.NewReader(in)
	}
	c.Printf("%s [y/N]: ", prompt)
	response, err := c.reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}
