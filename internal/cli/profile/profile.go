package profile

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/julianstephens/jagruk/internal/analytics"
	"github.com/julianstephens/jagruk/internal/cli"
	"github.com/julianstephens/jagruk/internal/constants"
	"github.com/julianstephens/jagruk/internal/models"
	"github.com/julianstephens/jagruk/internal/state"
	"github.com/julianstephens/jagruk/internal/utils"
)

type ProfileShowCmd struct{}

func (c *ProfileShowCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}
	p := t.Snapshot().Profile
	xp := analytics.Progress(p)

	name := p.Name
	if name == "" {
		name = "(not set)"
	}
	ctx.Printf("Name:        %s\n", name)
	ctx.Printf("Onboarded:   %t\n", p.IsOnboarded)
	if ts, err := utils.ParseTimestamp(p.StartDate); err == nil {
		ctx.Printf("Started:     %s\n", ts.In(t.Now().Location()).Format(constants.DateFormat))
	}
	ctx.Printf("Level:       %d (%d/%d XP, %d to go)\n", xp.Level, xp.XP, xp.Needed, xp.ToNext)
	ctx.Printf("Budget:      %.2f %s\n", p.DailyBudget, budgetMode(p.BudgetMode))
	ctx.Printf("Reminder:    %s\n", p.ReminderMorning)
	if len(p.Intents) > 0 {
		ctx.Printf("Intents:     %s\n", strings.Join(p.Intents, ", "))
	}
	if len(p.HabitLimits) > 0 {
		ctx.Println("Limits:")
		for _, label := range slices.Sorted(maps.Keys(p.HabitLimits)) {
			ctx.Printf("  %-14s %s/day\n", label, decimal.NewFromFloat(p.HabitLimits[label]).String())
		}
	}
	return nil
}

func budgetMode(m models.BudgetMode) string {
	if m == "" {
		return string(models.BudgetDaily)
	}
	return string(m)
}

// ProfileSetCmd changes profile settings. Only the flags given are applied.
type ProfileSetCmd struct {
	Name       string             `help:"Display name."`
	Budget     string             `help:"Daily budget, 0 for none."`
	BudgetMode string             `name:"budget-mode" help:"none, daily, weekly or monthly."`
	Reminder   string             `help:"Morning reminder time (HH:MM)."`
	Intents    []string           `help:"Focus areas, replacing the current list."`
	Limit      map[string]float64 `help:"Daily unit limit per category, e.g. --limit Cigarettes=2. 0 removes it."`
}

func (c *ProfileSetCmd) Run(ctx *cli.Context) error {
	var patch state.ProfilePatch
	changed := 0

	if c.Name != "" {
		name := strings.TrimSpace(c.Name)
		patch.Name = &name
		changed++
	}
	if c.Budget != "" {
		d, err := decimal.NewFromString(c.Budget)
		if err != nil || d.IsNegative() {
			return fmt.Errorf("invalid budget %q", c.Budget)
		}
		budget := d.Round(2).InexactFloat64()
		patch.DailyBudget = &budget
		changed++
	}
	if c.BudgetMode != "" {
		mode := models.BudgetMode(c.BudgetMode)
		if !slices.Contains([]models.BudgetMode{models.BudgetNone, models.BudgetDaily, models.BudgetWeekly, models.BudgetMonthly}, mode) {
			return fmt.Errorf("unknown budget mode %q", c.BudgetMode)
		}
		patch.BudgetMode = &mode
		changed++
	}
	if c.Reminder != "" {
		if !utils.ValidateTimeFormat(c.Reminder) {
			return fmt.Errorf("invalid reminder time %q, use HH:MM", c.Reminder)
		}
		patch.ReminderMorning = &c.Reminder
		changed++
	}
	if c.Intents != nil {
		patch.Intents = &c.Intents
		changed++
	}

	t, err := ctx.Tracker()
	if err != nil {
		return err
	}
	if len(c.Limit) > 0 {
		limits := maps.Clone(t.Snapshot().Profile.HabitLimits)
		if limits == nil {
			limits = make(map[string]float64)
		}
		for label, n := range c.Limit {
			switch {
			case n < 0:
				return fmt.Errorf("limit for %s must not be negative", label)
			case n == 0:
				delete(limits, label)
			default:
				limits[label] = n
			}
		}
		patch.HabitLimits = &limits
		changed++
	}

	if changed == 0 {
		return fmt.Errorf("nothing to change, see 'jagruk profile set --help'")
	}
	t.UpdateProfile(patch)
	ctx.Println("✓ Profile updated")
	return nil
}
