package system

import (
	"github.com/julianstephens/jagruk/internal/cli"
	"github.com/julianstephens/jagruk/internal/constants"
)

// ThemeCmd shows or sets the stored UI theme.
type ThemeCmd struct {
	Theme string `arg:"" optional:"" help:"light or dark. Omit to show the current theme."`
}

func (c *ThemeCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}
	if c.Theme == "" {
		ctx.Printf("Theme: %s\n", t.Theme())
		return nil
	}
	if err := t.SetTheme(constants.Theme(c.Theme)); err != nil {
		return err
	}
	ctx.Printf("✓ Theme set to %s\n", c.Theme)
	return nil
}
