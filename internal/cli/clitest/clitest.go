// Package clitest builds command contexts over an in-memory store.
package clitest

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/jagruk/internal/cli"
	"github.com/julianstephens/jagruk/internal/config"
	"github.com/julianstephens/jagruk/internal/storage"
)

// Clock is the fixed instant test contexts run at: 2024-03-15 10:00 UTC.
var Clock = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

// New returns a context over a fresh MemoryStore with saves written synchronously.
// Backups go under a temporary directory. input feeds Confirm prompts.
func New(t *testing.T, input string) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	ctx := &cli.Context{
		Config: config.Config{
			Storage:  config.StorageConfig{DSN: t.TempDir() + "/jagruk.json"},
			Timezone: "UTC",
			Backup:   config.BackupConfig{Max: 14},
		},
		Store: storage.NewMemoryStore(),
		Out:   out,
		In:    strings.NewReader(input),
		Clock: func() time.Time { return Clock },
	}
	t.Cleanup(func() { _ = ctx.Close() })
	return ctx, out
}
