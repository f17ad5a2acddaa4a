package system

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/jagruk/internal/cli"
	"github.com/julianstephens/jagruk/internal/constants"
	"github.com/julianstephens/jagruk/internal/persist"
	"github.com/julianstephens/jagruk/internal/storage"
	"github.com/julianstephens/jagruk/internal/utils"
)

var errSkipped = errors.New("not applicable")

type check struct {
	name string
	// gate failing marks the store unreachable.
	gate bool
	// needsStore checks are skipped when the store cannot be opened.
	needsStore bool
	// warnOnly failures do not fail the run.
	warnOnly bool
	run      func(*cli.Context) error
}

var checks = []check{
	{name: "Storage reachable", gate: true, run: checkStoreReachable},
	{name: "Schema version", needsStore: true, run: checkSchemaVersion},
	{name: "Migrations complete", needsStore: true, run: checkMigrationsComplete},
	{name: "State decodes", needsStore: true, run: checkStateDecodes},
	{name: "Entry dates", needsStore: true, run: checkEntryDates},
	{name: "Backups present", warnOnly: true, run: checkBackupsPresent},
	{name: "Clock/timezone", run: checkClockTimezone},
}

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	reachable := true
	for _, c := range checks {
		if c.needsStore && !reachable {
			ctx.Printf("⊘ %s: SKIPPED (storage not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
		case errors.Is(err, errSkipped):
			ctx.Printf("⊘ %s: SKIPPED (%s)\n", c.name, ctx.Store.Location())
		case c.warnOnly:
			ctx.Printf("⚠ %s: WARNING\n", c.name)
			ctx.Printf("   %v\n", err)
		default:
			ctx.Printf("❌ %s: FAIL\n", c.name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
			if c.gate {
				reachable = false
			}
		}
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	ctx.Println("All diagnostics passed!")
	return nil
}

func checkStoreReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load storage: %w", err)
	}
	if _, err := ctx.Store.Get(constants.StateKey); err != nil && !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("failed to read storage: %w", err)
	}
	return nil
}

func versions(ctx *cli.Context) (current, latest int, err error) {
	m, ok := ctx.Store.(migrator)
	if !ok {
		return 0, 0, errSkipped
	}
	runner, err := m.Runner()
	if err != nil {
		return 0, 0, err
	}
	if current, err = runner.CurrentVersion(); err != nil {
		return 0, 0, fmt.Errorf("failed to get current schema version: %w", err)
	}
	if latest, err = runner.LatestVersion(); err != nil {
		return 0, 0, fmt.Errorf("failed to get latest schema version: %w", err)
	}
	return current, latest, nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	current, latest, err := versions(ctx)
	if err != nil {
		return err
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	current, latest, err := versions(ctx)
	if err != nil {
		return err
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d, run 'jagruk migrate'", current, latest)
	}
	return nil
}

// checkStateDecodes fails where a normal load would silently fall back to a fresh state.
func checkStateDecodes(ctx *cli.Context) error {
	raw, err := ctx.Store.Get(constants.StateKey)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if _, err := persist.Decode(raw, ctx.Now()); err != nil {
		return fmt.Errorf("stored state is corrupt and would be replaced on next launch: %w", err)
	}
	return nil
}

func checkEntryDates(ctx *cli.Context) error {
	raw, err := ctx.Store.Get(constants.StateKey)
	if err != nil {
		return nil
	}
	s, err := persist.Decode(raw, ctx.Now())
	if err != nil {
		return nil
	}
	bad := 0
	for key, e := range s.Entries {
		if !utils.ValidateDate(key) || (e.Date != "" && e.Date != key) {
			bad++
		}
	}
	if bad > 0 {
		return fmt.Errorf("%d entries have invalid or mismatched date keys", bad)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	backups, err := ctx.Backups().List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'jagruk backup create'")
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := ctx.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	if _, err := ctx.Config.Location(); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", ctx.Config.Timezone, err)
	}
	return nil
}
