package goals

import (
	"fmt"
	"strings"

	"github.com/julianstephens/jagruk/internal/cli"
	"github.com/julianstephens/jagruk/internal/models"
	"github.com/julianstephens/jagruk/internal/state"
)

type GoalAddCmd struct {
	Title  string `arg:"" help:"What you want to achieve."`
	Type   string `short:"t" default:"career" enum:"career,bucket" help:"career or bucket."`
	Reason string `short:"r" help:"Why it matters."`
	Action string `short:"a" help:"The next concrete step."`
}

func (c *GoalAddCmd) Run(ctx *cli.Context) error {
	title := strings.TrimSpace(c.Title)
	if title == "" {
		return fmt.Errorf("goal title must not be empty")
	}
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}
	g := t.AddGoal(models.Goal{
		Title:  title,
		Type:   models.GoalType(c.Type),
		Reason: c.Reason,
		Action: c.Action,
	})
	ctx.Printf("✓ Added %s goal %s [%s]\n", g.Type, g.Title, cli.ShortID(g.ID))
	return nil
}

type GoalListCmd struct {
	Type string `short:"t" help:"Only show career or bucket goals."`
	Open bool   `help:"Hide completed goals."`
}

func (c *GoalListCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}
	shown := 0
	for _, g := range t.Snapshot().Goals {
		if c.Type != "" && string(g.Type) != c.Type {
			continue
		}
		if c.Open && g.Completed {
			continue
		}
		mark := "[ ]"
		if g.Completed {
			mark = "[x]"
		}
		filled := g.Progress / 10
		ctx.Printf("%s %-8s %-30s %s %3d%%  [%s]\n", mark, g.Type, g.Title,
			strings.Repeat("▰", filled)+strings.Repeat("▱", 10-filled), g.Progress, cli.ShortID(g.ID))
		if g.Action != "" {
			ctx.Printf("    next: %s\n", g.Action)
		}
		shown++
	}
	if shown == 0 {
		ctx.Println("No goals yet. Add one with 'jagruk goal add'.")
	}
	return nil
}

type GoalProgressCmd struct {
	Goal     string `arg:"" help:"Goal id or title."`
	Progress int    `arg:"" help:"Progress from 0 to 100."`
}

func (c *GoalProgressCmd) Run(ctx *cli.Context) error {
	if c.Progress < 0 || c.Progress > 100 {
		return fmt.Errorf("progress must be between 0 and 100, got %d", c.Progress)
	}
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}
	g, err := cli.FindGoal(t.Snapshot().Goals, c.Goal)
	if err != nil {
		return err
	}
	g, _ = t.UpdateGoal(g.ID, state.GoalPatch{Progress: &c.Progress})
	ctx.Printf("✓ %s: %d%%\n", g.Title, g.Progress)
	return nil
}

type GoalToggleCmd struct {
	Goal string `arg:"" help:"Goal id or title."`
}

func (c *GoalToggleCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}
	g, err := cli.FindGoal(t.Snapshot().Goals, c.Goal)
	if err != nil {
		return err
	}
	g, _ = t.ToggleGoal(g.ID)
	if g.Completed {
		ctx.Printf("🏆 Completed: %s\n", g.Title)
	} else {
		ctx.Printf("↺ Reopened: %s\n", g.Title)
	}
	return nil
}

type GoalRmCmd struct {
	Goal string `arg:"" help:"Goal id or title."`
}

func (c *GoalRmCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}
	g, err := cli.FindGoal(t.Snapshot().Goals, c.Goal)
	if err != nil {
		return err
	}
	t.DeleteGoal(g.ID)
	ctx.Printf("✓ Removed goal %s\n", g.Title)
	return nil
}
