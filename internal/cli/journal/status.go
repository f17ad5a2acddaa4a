package journal

import (
	"strings"

	"github.com/julianstephens/jagruk/internal/analytics"
	"github.com/julianstephens/jagruk/internal/cli"
)

// StatusCmd prints today's dashboard.
type StatusCmd struct{}

func (c *StatusCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}
	s := t.Snapshot()
	now := t.Now()
	today, _ := s.Entry(s.CurrentDate)

	name := s.Profile.Name
	if name == "" {
		name = "there"
	}
	ctx.Printf("Hello %s, today is %s\n\n", name, s.CurrentDate)

	st := analytics.Status(s, now)
	switch st.Alert {
	case analytics.AlertEnergyCritical:
		ctx.Printf("⚠️  Energy critical (%d/5)\n", st.Energy)
	case analytics.AlertBudgetCritical:
		ctx.Printf("⚠️  Budget critical: spent %.2f of %.2f\n", st.TodaySpend, st.DailyBudget)
	default:
		ctx.Println("✓ All systems nominal")
	}

	ctx.Printf("\nRating:   %s\n", ratingText(today.Rating))
	ctx.Printf("Energy:   %s\n", energyText(today.Energy))
	if today.Mood != "" {
		ctx.Printf("Mood:     %s\n", today.Mood)
	}
	ctx.Printf("Streak:   %d day(s)\n", analytics.DisciplineStreak(s, now))
	if st.DailyBudget > 0 {
		ctx.Printf("Spend:    %.2f / %.2f\n", st.TodaySpend, st.DailyBudget)
	} else {
		ctx.Printf("Spend:    %.2f\n", st.TodaySpend)
	}

	todos := analytics.TodoProgress(today)
	ctx.Printf("Todos:    %d/%d done\n", todos.Completed, todos.Total)

	xp := analytics.Progress(s.Profile)
	ctx.Printf("Level %d  %s %d/%d XP\n", xp.Level, bar(xp.Percent, 20), xp.XP, xp.Needed)

	if today.IsLocked {
		ctx.Println("\n🔒 Today is sealed")
	}
	ctx.Printf("\nPrompt: %s\n", analytics.DailyPrompt(s.CurrentDate))
	return nil
}

func ratingText(r int) string {
	if r == 0 {
		return "-"
	}
	return strings.Repeat("●", r) + strings.Repeat("○", 10-r)
}

func energyText(e int) string {
	if e == 0 {
		return "-"
	}
	return strings.Repeat("▮", e) + strings.Repeat("▯", 5-e)
}

func bar(percent float64, width int) string {
	filled := int(percent / 100 * float64(width))
	filled = max(0, min(filled, width))
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}
