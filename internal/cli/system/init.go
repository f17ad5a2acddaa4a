package system

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/jagruk/internal/cli"
	"github.com/julianstephens/jagruk/internal/constants"
	"github.com/julianstephens/jagruk/internal/models"
	"github.com/julianstephens/jagruk/internal/persist"
	"github.com/julianstephens/jagruk/internal/state"
	"github.com/julianstephens/jagruk/internal/storage"
	"github.com/julianstephens/jagruk/internal/utils"
)

type InitCmd struct {
	Force   bool   `help:"Erase existing data before initialization."`
	Source  string `help:"Storage DSN to copy existing data from."`
	NoInput bool   `name:"no-input" help:"Skip the onboarding form and use the flags below."`

	Name     string   `help:"Your name (with --no-input)."`
	Budget   float64  `help:"Daily budget (with --no-input)."`
	Intents  []string `help:"Focus areas (with --no-input)."`
	Reminder string   `help:"Morning reminder time, HH:MM (with --no-input)."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Source != "" && c.Source == ctx.Config.Storage.DSN {
		return fmt.Errorf("cannot copy from the storage being initialized: %s", c.Source)
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	if c.Force {
		t, err := ctx.Tracker()
		if err != nil {
			return err
		}
		if err := t.Reset(); err != nil {
			return fmt.Errorf("failed to erase existing data: %w", err)
		}
		ctx.Println("Erased existing data")
	}
	ctx.Printf("Initialized jagruk storage at: %s\n", ctx.Store.Location())

	if c.Source != "" {
		ctx.Printf("Copying data from: %s\n", c.Source)
		if err := copyData(ctx, c.Source); err != nil {
			return fmt.Errorf("copy failed: %w", err)
		}
		ctx.Println("Copy completed successfully!")
		return nil
	}

	t, err := ctx.Tracker()
	if err != nil {
		return err
	}
	if t.Snapshot().Profile.IsOnboarded {
		ctx.Println("Profile already set up. Use 'jagruk profile set' to change it.")
		return nil
	}

	answers := state.Onboarding{
		Name:            c.Name,
		Intents:         c.Intents,
		ReminderMorning: c.Reminder,
		DailyBudget:     c.Budget,
	}
	if !c.NoInput {
		if answers, err = onboardingForm(); err != nil {
			return err
		}
	} else if c.Reminder != "" && !utils.ValidateTimeFormat(c.Reminder) {
		return fmt.Errorf("invalid reminder time %q, use HH:MM", c.Reminder)
	}

	p := t.CompleteOnboarding(answers)
	if p.Name != "" {
		ctx.Printf("✓ Welcome, %s!\n", p.Name)
	} else {
		ctx.Println("✓ Setup complete")
	}
	return nil
}

func onboardingForm() (state.Onboarding, error) {
	var (
		name     string
		intents  []string
		budget   = strconv.FormatFloat(constants.DefaultDailyBudget, 'f', -1, 64)
		reminder = constants.DefaultReminderMorning
	)
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("What should we call you?").
				Value(&name),
			huh.NewMultiSelect[string]().
				Title("What do you want to work on?").
				Options(huh.NewOptions(models.IntentOptions...)...).
				Value(&intents),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Daily budget").
				Value(&budget).
				Validate(func(s string) error {
					v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
					if err != nil || v < 0 {
						return errors.New("enter a non-negative number")
					}
					return nil
				}),
			huh.NewInput().
				Title("Morning reminder (HH:MM)").
				Value(&reminder).
				Validate(func(s string) error {
					if !utils.ValidateTimeFormat(s) {
						return errors.New("use HH:MM")
					}
					return nil
				}),
		),
	)
	if err := form.Run(); err != nil {
		return state.Onboarding{}, fmt.Errorf("onboarding cancelled: %w", err)
	}

	b, _ := strconv.ParseFloat(strings.TrimSpace(budget), 64)
	return state.Onboarding{
		Name:            strings.TrimSpace(name),
		Intents:         intents,
		ReminderMorning: reminder,
		DailyBudget:     b,
	}, nil
}

// copyData moves the state and theme blobs from another store. The state blob must
// decode before anything is written.
func copyData(ctx *cli.Context, dsn string) error {
	src, err := cli.NewStore(dsn)
	if err != nil {
		return err
	}
	if err := src.Load(); err != nil {
		return fmt.Errorf("failed to load source storage: %w", err)
	}
	defer src.Close()

	raw, err := src.Get(constants.StateKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return errors.New("source storage holds no jagruk data")
		}
		return err
	}
	s, err := persist.Decode(raw, ctx.Now())
	if err != nil {
		return err
	}
	if err := ctx.Store.Set(constants.StateKey, raw); err != nil {
		return fmt.Errorf("failed to write state: %w", err)
	}
	ctx.Printf("  Copied %d entries, %d transactions, %d goals\n", len(s.Entries), len(s.Transactions), len(s.Goals))

	theme, err := src.Get(constants.ThemeKey)
	switch {
	case err == nil:
		if err := ctx.Store.Set(constants.ThemeKey, theme); err != nil {
			return fmt.Errorf("failed to write theme: %w", err)
		}
	case !errors.Is(err, storage.ErrNotFound):
		return err
	}
	return nil
}
