package journal

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/julianstephens/jagruk/internal/analytics"
	"github.com/julianstephens/jagruk/internal/cli"
	apperrors "github.com/julianstephens/jagruk/internal/errors"
	"github.com/julianstephens/jagruk/internal/models"
	"github.com/julianstephens/jagruk/internal/state"
	"github.com/julianstephens/jagruk/internal/tracker"
)

var errSealed = errors.New("this day is sealed")

// openDay resolves a date argument and refuses edits to sealed days.
func openDay(ctx *cli.Context, date string) (*tracker.Tracker, string, error) {
	t, err := ctx.Tracker()
	if err != nil {
		return nil, "", err
	}
	day, err := cli.ResolveDate(date, t.Now())
	if err != nil {
		return nil, "", err
	}
	if e, _ := t.Snapshot().Entry(day); e.IsLocked {
		return nil, "", apperrors.WithHint(fmt.Errorf("%w: %s", errSealed, day), "sealed days are read-only")
	}
	return t, day, nil
}

type EntryShowCmd struct {
	Date string `arg:"" optional:"" help:"Day to show (YYYY-MM-DD, today, yesterday, -N)."`
}

func (c *EntryShowCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}
	day, err := cli.ResolveDate(c.Date, t.Now())
	if err != nil {
		return err
	}
	s := t.Snapshot()
	e, ok := s.Entry(day)
	if !ok {
		ctx.Printf("No entry for %s\n", day)
		return nil
	}

	lock := ""
	if e.IsLocked {
		lock = " 🔒"
	}
	ctx.Printf("%s%s\n\n", day, lock)
	ctx.Printf("Rating:     %s\n", ratingText(e.Rating))
	ctx.Printf("Energy:     %s\n", energyText(e.Energy))
	printField(ctx, "Mood", string(e.Mood))
	if len(e.MoodReasons) > 0 {
		printField(ctx, "Because", strings.Join(e.MoodReasons, ", "))
	}
	printField(ctx, "Intention", e.Intention)
	printField(ctx, "Memory", e.Memory)
	printField(ctx, "Gratitude", e.Gratitude)
	if e.SongTitle != "" {
		printField(ctx, "Song", fmt.Sprintf("%s by %s", e.SongTitle, e.SongArtist))
	}
	if e.PromptAnswer != "" {
		ctx.Printf("\n%s\n  %s\n", analytics.DailyPrompt(day), e.PromptAnswer)
	}

	if len(e.HabitStatus) > 0 {
		ctx.Println("\nHabits:")
		for _, h := range s.Profile.Habits {
			if v, ok := e.HabitStatus[h.ID]; ok {
				ctx.Printf("  %s %s %s\n", check(v), h.Icon, h.Title)
			}
		}
	}
	if len(e.Todos) > 0 {
		ctx.Println("\nTodos:")
		printTodos(ctx, e.Todos)
	}
	return nil
}

func printField(ctx *cli.Context, label, value string) {
	if value == "" {
		return
	}
	ctx.Printf("%-11s %s\n", label+":", value)
}

func check(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

type EntryRateCmd struct {
	Rating int    `arg:"" help:"Day rating from 1 to 10."`
	Date   string `short:"d" help:"Day to rate (default today)."`
}

func (c *EntryRateCmd) Run(ctx *cli.Context) error {
	if c.Rating < 1 || c.Rating > 10 {
		return fmt.Errorf("rating must be between 1 and 10, got %d", c.Rating)
	}
	t, day, err := openDay(ctx, c.Date)
	if err != nil {
		return err
	}
	e := t.UpdateEntry(day, state.EntryPatch{Rating: &c.Rating})
	ctx.Printf("✓ Rated %s: %d/10 (%s)\n", day, e.Rating, analytics.RatingTier(e.Rating))
	return nil
}

type EntryEnergyCmd struct {
	Energy int    `arg:"" help:"Energy level from 1 to 5."`
	Date   string `short:"d" help:"Day to update (default today)."`
}

func (c *EntryEnergyCmd) Run(ctx *cli.Context) error {
	if c.Energy < 1 || c.Energy > 5 {
		return fmt.Errorf("energy must be between 1 and 5, got %d", c.Energy)
	}
	t, day, err := openDay(ctx, c.Date)
	if err != nil {
		return err
	}
	t.UpdateEntry(day, state.EntryPatch{Energy: &c.Energy})
	ctx.Printf("✓ Energy for %s: %d/5\n", day, c.Energy)
	if c.Energy <= 1 {
		ctx.Println("⚠️  Energy critical. Take a break.")
	}
	return nil
}

type EntryMoodCmd struct {
	Mood    string   `arg:"" help:"One of happy, good, neutral, sad, angry."`
	Reasons []string `short:"r" help:"What caused the mood."`
	Date    string   `short:"d" help:"Day to update (default today)."`
}

func (c *EntryMoodCmd) Run(ctx *cli.Context) error {
	mood := models.Mood(strings.ToLower(c.Mood))
	if !slices.Contains(models.Moods, mood) {
		return apperrors.WithHint(fmt.Errorf("unknown mood %q", c.Mood), "use one of happy, good, neutral, sad, angry")
	}
	t, day, err := openDay(ctx, c.Date)
	if err != nil {
		return err
	}
	patch := state.EntryPatch{Mood: &mood}
	if len(c.Reasons) > 0 {
		patch.MoodReasons = &c.Reasons
	}
	t.UpdateEntry(day, patch)
	ctx.Printf("✓ Mood for %s: %s\n", day, mood)
	return nil
}

// EntryNoteCmd writes one of the free-text fields of an entry.
type EntryNoteCmd struct {
	Field string `arg:"" enum:"intention,memory,gratitude,prompt" help:"Field to write: intention, memory, gratitude or prompt."`
	Text  string `arg:"" help:"Text to store."`
	Date  string `short:"d" help:"Day to update (default today)."`
}

func (c *EntryNoteCmd) Run(ctx *cli.Context) error {
	t, day, err := openDay(ctx, c.Date)
	if err != nil {
		return err
	}
	var patch state.EntryPatch
	switch c.Field {
	case "intention":
		patch.Intention = &c.Text
	case "memory":
		patch.Memory = &c.Text
	case "gratitude":
		patch.Gratitude = &c.Text
	case "prompt":
		patch.PromptAnswer = &c.Text
	default:
		return fmt.Errorf("unknown field %q", c.Field)
	}
	t.UpdateEntry(day, patch)
	ctx.Printf("✓ Saved %s for %s\n", c.Field, day)
	return nil
}

type EntrySongCmd struct {
	Title  string `arg:"" help:"Song title."`
	Artist string `arg:"" optional:"" help:"Artist."`
	Reason string `short:"r" help:"Why this song."`
	Date   string `short:"d" help:"Day to update (default today)."`
}

func (c *EntrySongCmd) Run(ctx *cli.Context) error {
	t, day, err := openDay(ctx, c.Date)
	if err != nil {
		return err
	}
	t.UpdateEntry(day, state.EntryPatch{SongTitle: &c.Title, SongArtist: &c.Artist, SongReason: &c.Reason})
	ctx.Printf("✓ Song of %s: %s\n", day, c.Title)
	return nil
}

type EntrySealCmd struct {
	Date string `arg:"" optional:"" help:"Day to seal (default today)."`
}

func (c *EntrySealCmd) Run(ctx *cli.Context) error {
	t, day, err := openDay(ctx, c.Date)
	if err != nil {
		return err
	}
	t.SealEntry(day)
	ctx.Printf("🔒 Sealed %s. Level %d, %d XP\n", day, t.Snapshot().Profile.Level, t.Snapshot().Profile.XP)
	return nil
}
