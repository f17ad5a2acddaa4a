package system

import (
	"github.com/julianstephens/jagruk/internal/cli"
)

// ResetCmd erases everything and returns to the first-launch state.
type ResetCmd struct {
	Yes bool `short:"y" help:"Do not ask for confirmation."`
}

func (c *ResetCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}
	if !c.Yes {
		ctx.Println("⚠️  WARNING: This permanently erases your journal, habits, money and goals.")
		ctx.Println("A backup will be written first.")
		ok, err := ctx.Confirm("Continue?")
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Reset cancelled.")
			return nil
		}
	}

	if path, err := t.Backup(ctx.Backups()); err == nil {
		ctx.Printf("✓ Backup written to %s\n", path)
	} else {
		ctx.Printf("⚠️  Backup failed: %v\n", err)
	}
	if err := t.Reset(); err != nil {
		return err
	}
	ctx.Println("✓ All data erased. Run 'jagruk init' to start over.")
	return nil
}
