package habits

import (
	"fmt"
	"strings"

	"github.com/julianstephens/jagruk/internal/analytics"
	"github.com/julianstephens/jagruk/internal/cli"
	"github.com/julianstephens/jagruk/internal/models"
)

type HabitListCmd struct{}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}
	overview := analytics.HabitOverview(t.Snapshot(), t.Now())
	if len(overview) == 0 {
		ctx.Println("No habits defined. Add one with 'jagruk habit add'.")
		return nil
	}

	ctx.Printf("%-4s %-24s %-9s %-7s %s\n", "", "HABIT", "TYPE", "STREAK", "WEEK")
	for _, h := range overview {
		ctx.Printf("%-4s %-24s %-9s %-7d %d/7\n",
			check(h.DoneToday), h.Habit.Icon+" "+h.Habit.Title, h.Habit.Type, h.Streak, h.Weekly)
	}
	return nil
}

func check(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

type HabitAddCmd struct {
	Title    string `arg:"" help:"Habit name."`
	Negative bool   `short:"n" help:"A habit to quit: a day counts when it did not happen."`
	Icon     string `short:"i" default:"✨" help:"Icon shown next to the habit."`
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	title := strings.TrimSpace(c.Title)
	if title == "" {
		return fmt.Errorf("habit title must not be empty")
	}
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}
	if _, err := cli.FindHabit(t.Snapshot().Profile, title); err == nil {
		return fmt.Errorf("habit %q already exists", title)
	}

	typ := models.HabitPositive
	if c.Negative {
		typ = models.HabitNegative
	}
	h := t.AddHabit(models.HabitDef{Title: title, Type: typ, Icon: c.Icon})
	ctx.Printf("✓ Added %s habit %s %s\n", h.Type, h.Icon, h.Title)
	return nil
}

type HabitRmCmd struct {
	Habit string `arg:"" help:"Habit id or title."`
}

func (c *HabitRmCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}
	h, err := cli.FindHabit(t.Snapshot().Profile, c.Habit)
	if err != nil {
		return err
	}
	t.RemoveHabit(h.ID)
	ctx.Printf("✓ Removed habit %s. Past days keep their marks.\n", h.Title)
	return nil
}

// HabitMarkCmd records whether a habit happened on a day. For a negative habit,
// marking means the slip happened.
type HabitMarkCmd struct {
	Habit  string `arg:"" help:"Habit id or title."`
	Undo   bool   `short:"u" help:"Record that it did not happen."`
	Toggle bool   `short:"t" help:"Flip the current mark."`
	Date   string `short:"d" help:"Day to mark (default today)."`
}

func (c *HabitMarkCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}
	h, err := cli.FindHabit(t.Snapshot().Profile, c.Habit)
	if err != nil {
		return err
	}
	day, err := cli.ResolveDate(c.Date, t.Now())
	if err != nil {
		return err
	}
	if e, _ := t.Snapshot().Entry(day); e.IsLocked {
		return fmt.Errorf("%s is sealed", day)
	}

	occurred := !c.Undo
	if c.Toggle {
		occurred = t.ToggleHabitStatus(day, h.ID)
	} else {
		t.SetHabitStatus(day, h.ID, occurred)
	}
	ctx.Printf("%s %s %s on %s\n", check(occurred), h.Icon, h.Title, day)
	ctx.Printf("  streak: %d day(s)\n", analytics.HabitStreak(t.Snapshot(), h, t.Now()))
	return nil
}

// HabitLogCmd shows the 30-day trend of one habit.
type HabitLogCmd struct {
	Habit string `arg:"" help:"Habit id or title."`
}

func (c *HabitLogCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}
	s := t.Snapshot()
	h, err := cli.FindHabit(s.Profile, c.Habit)
	if err != nil {
		return err
	}
	trend := analytics.MonthlyTrend(s, h.ID, t.Now())

	var b strings.Builder
	done := 0
	for _, d := range trend {
		if d.Occurred {
			b.WriteString("█")
			done++
		} else {
			b.WriteString("·")
		}
	}
	ctx.Printf("%s %s (%s)\n", h.Icon, h.Title, h.Type)
	ctx.Printf("%s\n", b.String())
	ctx.Printf("Occurred %d of the last %d days\n", done, len(trend))
	ctx.Printf("Streak: %d  This week: %d/7\n",
		analytics.HabitStreak(s, h, t.Now()), analytics.WeeklyCount(s, h.ID, t.Now()))
	return nil
}
