package journal

import (
	"strings"

	"github.com/julianstephens/jagruk/internal/analytics"
	"github.com/julianstephens/jagruk/internal/cli"
	"github.com/julianstephens/jagruk/internal/constants"
	"github.com/julianstephens/jagruk/internal/models"
)

var tierGlyph = map[analytics.Tier]string{
	analytics.TierNone:   "·",
	analytics.TierLow:    "░",
	analytics.TierSteady: "▒",
	analytics.TierStrong: "█",
}

// PulseCmd draws the rating heat strip and the average rating.
type PulseCmd struct {
	Days     int `short:"n" default:"30" help:"Number of days to show."`
	Calendar int `short:"c" help:"Also draw this many months as calendar grids."`
}

func (c *PulseCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}
	days := c.Days
	if days <= 0 {
		days = constants.PulseWindowDays
	}
	s := t.Snapshot()
	pulse := analytics.LifePulse(s, t.Now(), days)

	strip := ""
	for _, d := range pulse {
		strip += tierGlyph[d.Tier]
	}
	ctx.Printf("Life pulse, last %d days\n%s\n", days, strip)
	if len(pulse) > 0 {
		ctx.Printf("%s%*s\n", pulse[0].Date, max(0, len(pulse)-len(pulse[0].Date)), "today")
	}
	for _, m := range analytics.MonthGrid(t.Now(), c.Calendar) {
		printMonth(ctx, m, s.Entries)
	}
	ctx.Printf("\nAverage rating: %.1f\n", analytics.AverageRating(s))
	ctx.Printf("Discipline streak: %d day(s)\n", analytics.DisciplineStreak(s, t.Now()))
	return nil
}

func printMonth(ctx *cli.Context, m analytics.Month, entries map[string]models.DailyEntry) {
	ctx.Printf("\n%s %d\nSu Mo Tu We Th Fr Sa\n", m.Name, m.Year)
	for i, day := range m.Days {
		cell := "  "
		if day != "" {
			cell = strings.Repeat(tierGlyph[analytics.RatingTier(entries[day].Rating)], 2)
		}
		ctx.Printf("%s ", cell)
		if i%7 == 6 {
			ctx.Println()
		}
	}
	if len(m.Days)%7 != 0 {
		ctx.Println()
	}
}
