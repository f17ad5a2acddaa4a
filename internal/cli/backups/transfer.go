package backups

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/julianstephens/jagruk/internal/backup"
	"github.com/julianstephens/jagruk/internal/cli"
	apperrors "github.com/julianstephens/jagruk/internal/errors"
	"github.com/julianstephens/jagruk/internal/models"
)

// ExportCmd writes the full state as JSON or the transaction ledger as CSV.
type ExportCmd struct {
	Format string `arg:"" optional:"" default:"json" enum:"json,csv" help:"json (full backup) or csv (transactions)."`
	Output string `short:"o" help:"Output file or directory (default: current directory, dated file name). Use - for stdout."`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}
	now := t.Now()

	name := backup.BackupFileName(now)
	if c.Format == "csv" {
		name = backup.LedgerFileName(now)
	}

	if c.Output == "-" {
		return c.write(t.Snapshot(), ctx.Writer(), now.Location())
	}

	path := c.Output
	if path == "" {
		path = name
	} else if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, name)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	if err := c.write(t.Snapshot(), f, now.Location()); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	ctx.Printf("✓ Exported to %s\n", path)
	return nil
}

func (c *ExportCmd) write(s models.AppState, w io.Writer, loc *time.Location) error {
	if c.Format == "csv" {
		return backup.WriteLedgerCSV(w, s.Transactions, loc)
	}
	data, err := backup.ExportJSON(s)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// ImportCmd replaces all data with a previously exported JSON backup.
type ImportCmd struct {
	File string `arg:"" type:"existingfile" help:"Exported .json backup."`
	Yes  bool   `short:"y" help:"Do not ask for confirmation."`
}

func (c *ImportCmd) Run(ctx *cli.Context) error {
	data, err := os.ReadFile(c.File)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", c.File, err)
	}
	// Reject unusable files before asking anything.
	raw, err := backup.DecodeFile(c.File, data)
	if err != nil {
		return describe(err)
	}

	if !c.Yes {
		ctx.Println("⚠️  Importing replaces ALL current data with the file's contents.")
		ok, err := ctx.Confirm("Continue?")
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Import cancelled.")
			return nil
		}
	}

	t, err := ctx.Tracker()
	if err != nil {
		return err
	}
	ctx.PerformAutomaticBackup()
	s, err := t.Import(raw)
	if err != nil {
		return describe(err)
	}
	ctx.Printf("✓ Imported %d entries, %d transactions and %d goals\n", len(s.Entries), len(s.Transactions), len(s.Goals))
	return nil
}

// describe adds a hint for rejected imports.
func describe(err error) error {
	switch {
	case errors.Is(err, backup.ErrUnsupportedFileType), errors.Is(err, backup.ErrUnparseable):
		return apperrors.WithHint(err, "use a .json file created with 'jagruk export'")
	case errors.Is(err, backup.ErrInvalidStructure):
		return apperrors.WithHint(err, "the file must contain an object with a profile")
	case errors.Is(err, backup.ErrTooLarge):
		return apperrors.WithHint(err, fmt.Sprintf("backups are limited to %d MB", backup.MaxImportBytes/1_000_000))
	}
	return err
}
