package finance

import (
	"fmt"

	"github.com/julianstephens/jagruk/internal/analytics"
	"github.com/julianstephens/jagruk/internal/cli"
	"github.com/julianstephens/jagruk/internal/models"
)

type CategoryListCmd struct{}

func (c *CategoryListCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}
	p := t.Snapshot().Profile
	for _, cat := range analytics.ResolveCategories(p) {
		pinned := ""
		if _, ok := p.HabitOverrides[cat.ID]; ok {
			pinned = " (pinned)"
		}
		ctx.Printf("%s %-14s %8.2f%s  [%s]\n", cat.Icon, cat.Label, cat.Price, pinned, cli.ShortID(cat.ID))
	}
	if len(p.HabitLimits) > 0 {
		ctx.Println("\nDaily limits:")
		for _, u := range analytics.HabitLimitUsage(t.Snapshot(), t.Now()) {
			ctx.Printf("  %-14s %g/%g\n", u.Category, u.Used, u.Limit)
		}
	}
	return nil
}

type CategoryAddCmd struct {
	Label string `arg:"" help:"Category name."`
	Price string `arg:"" help:"Default price for quick entries."`
	Icon  string `short:"i" help:"Icon (default 📦)."`
	Color string `help:"Display color."`
}

func (c *CategoryAddCmd) Run(ctx *cli.Context) error {
	price, err := parseAmount(c.Price)
	if err != nil {
		return err
	}
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}
	if _, err := cli.FindCategory(analytics.ResolveCategories(t.Snapshot().Profile), c.Label); err == nil {
		return fmt.Errorf("category %q already exists", c.Label)
	}
	cat, ok := t.AddCategory(models.CategoryDef{Label: c.Label, Price: price, Icon: c.Icon, Color: c.Color})
	if !ok {
		return fmt.Errorf("a category needs a name and a price above zero")
	}
	ctx.Printf("✓ Added category %s %s at %.2f\n", cat.Icon, cat.Label, cat.Price)
	return nil
}

type CategoryRmCmd struct {
	Category string `arg:"" help:"Category id or label."`
}

func (c *CategoryRmCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}
	cat, err := cli.FindCategory(analytics.ResolveCategories(t.Snapshot().Profile), c.Category)
	if err != nil {
		return err
	}
	t.DeleteCategory(cat.ID)
	ctx.Printf("✓ Removed category %s\n", cat.Label)
	return nil
}

// CategoryPriceCmd pins the quick-entry price of a category. Zero unpins it.
type CategoryPriceCmd struct {
	Category string `arg:"" help:"Category id or label."`
	Price    string `arg:"" help:"New price, 0 to remove the override."`
}

func (c *CategoryPriceCmd) Run(ctx *cli.Context) error {
	price, err := parseAmount(c.Price)
	if err != nil {
		return err
	}
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}
	cat, err := cli.FindCategory(analytics.ResolveCategories(t.Snapshot().Profile), c.Category)
	if err != nil {
		return err
	}
	t.SetPriceOverride(cat.ID, price)
	if price == 0 {
		ctx.Printf("✓ %s price override removed\n", cat.Label)
		return nil
	}
	ctx.Printf("✓ %s now costs %.2f\n", cat.Label, price)
	return nil
}
