package analytics

import (
	"math"
	"time"

	"github.com/julianstephens/jagruk/internal/constants"
	"github.com/julianstephens/jagruk/internal/models"
	"github.com/julianstephens/jagruk/internal/utils"
)

// Tier buckets a discipline rating for display.
type Tier string

const (
	TierNone   Tier = "none"
	TierLow    Tier = "low"
	TierSteady Tier = "steady"
	TierStrong Tier = "strong"
)

// PulseDay is one cell of the life pulse.
type PulseDay struct {
	Date   string `json:"date"`
	Rating int    `json:"rating"`
	Tier   Tier   `json:"tier"`
}

// Month is a calendar month laid out for a week grid. Days holds "" for the leading
// cells before the 1st.
type Month struct {
	Name  string   `json:"name"`
	Year  int      `json:"year"`
	Days  []string `json:"days"`
	First string   `json:"first"`
}

// TodoStats summarizes a day's todo list.
type TodoStats struct {
	Completed int     `json:"completed"`
	Total     int     `json:"total"`
	Percent   float64 `json:"percent"`
}

// HabitSummary is everything the habit screen shows for one habit.
type HabitSummary struct {
	Habit     models.HabitDef `json:"habit"`
	DoneToday bool            `json:"doneToday"`
	Streak    int             `json:"streak"`
	Weekly    int             `json:"weekly"`
	Trend     []TrendDay      `json:"trend"`
}

// Prompts are the daily reflection questions.
var Prompts = []string{
	"Where did your time leak today?",
	"What is the one thing you are avoiding?",
	"Who did you help today?",
	"What would you do differently if you could restart today?",
	"What gave you energy today?",
	"What drained your energy today?",
}

// RatingTier clamps a rating to 1..10 and buckets it. Unset ratings are TierNone.
func RatingTier(rating int) Tier {
	if rating <= 0 {
		return TierNone
	}
	switch r := min(rating, 10); {
	case r <= 4:
		return TierLow
	case r <= 7:
		return TierSteady
	default:
		return TierStrong
	}
}

// LifePulse returns ratings for the days ending at ref, oldest first.
func LifePulse(s models.AppState, ref time.Time, days int) []PulseDay {
	start := utils.StartOfDay(ref)
	out := make([]PulseDay, max(days, 0))
	for i := range out {
		key := utils.DayKey(utils.AddDays(start, i-(days-1)))
		rating := s.Entries[key].Rating
		out[i] = PulseDay{Date: key, Rating: rating, Tier: RatingTier(rating)}
	}
	return out
}

// AverageRating is the mean of all set ratings, rounded to one decimal.
func AverageRating(s models.AppState) float64 {
	sum, n := 0, 0
	for _, e := range s.Entries {
		if e.Rating > 0 {
			sum += e.Rating
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return math.Round(float64(sum)/float64(n)*10) / 10
}

// MonthGrid lays out ref's month and the monthsBack-1 months before it, newest first.
func MonthGrid(ref time.Time, monthsBack int) []Month {
	months := make([]Month, 0, max(monthsBack, 0))
	for m := range monthsBack {
		first := time.Date(ref.Year(), ref.Month()-time.Month(m), 1, 0, 0, 0, 0, ref.Location())
		last := first.AddDate(0, 1, -1).Day()

		days := make([]string, int(first.Weekday()), int(first.Weekday())+last)
		for d := range last {
			days = append(days, utils.DayKey(first.AddDate(0, 0, d)))
		}
		months = append(months, Month{
			Name:  first.Month().String(),
			Year:  first.Year(),
			Days:  days,
			First: utils.DayKey(first),
		})
	}
	return months
}

// TodoProgress counts completed todos.
func TodoProgress(e models.DailyEntry) TodoStats {
	st := TodoStats{Total: len(e.Todos)}
	for _, t := range e.Todos {
		if t.Completed {
			st.Completed++
		}
	}
	if st.Total > 0 {
		st.Percent = float64(st.Completed) / float64(st.Total) * 100
	}
	return st
}

// HabitOverview summarizes every habit of the profile for ref.
func HabitOverview(s models.AppState, ref time.Time) []HabitSummary {
	today := utils.DayKey(ref)
	out := make([]HabitSummary, 0, len(s.Profile.Habits))
	for _, h := range s.Profile.Habits {
		out = append(out, HabitSummary{
			Habit:     h,
			DoneToday: habitDone(s, today, h.ID),
			Streak:    HabitStreak(s, h, ref),
			Weekly:    WeeklyCount(s, h.ID, ref),
			Trend:     MonthlyTrend(s, h.ID, ref),
		})
	}
	return out
}

// DailyPrompt picks the reflection question for a date by its day of month.
func DailyPrompt(date string) string {
	d, err := time.Parse(constants.DateFormat, date)
	if err != nil {
		return Prompts[0]
	}
	return Prompts[d.Day()%len(Prompts)]
}
