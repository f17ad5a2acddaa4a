// Package analytics derives read-only views from an AppState. Every function is pure and
// recomputes from the snapshot it is given. ref carries the viewer's location; calendar
// days are always evaluated in ref.Location().
package analytics

import (
	"slices"
	"time"

	"github.com/julianstephens/jagruk/internal/constants"
	"github.com/julianstephens/jagruk/internal/models"
	"github.com/julianstephens/jagruk/internal/utils"
)

// TrendDay is one day of a habit trend.
type TrendDay struct {
	Date     string `json:"date"`
	Occurred bool   `json:"occurred"`
}

// DisciplineStreak counts consecutive rated days, newest first, whose rating is at
// least the discipline threshold. Entries after ref and keys that are not dates are
// ignored. The walk stops at the first failing entry or at a missing calendar day.
func DisciplineStreak(s models.AppState, ref time.Time) int {
	today := utils.DayKey(ref)
	loc := ref.Location()

	var dates []time.Time
	for key := range s.Entries {
		d, err := utils.ParseDateInLocation(key, loc)
		if err != nil || utils.DayKey(d) != key || key > today {
			continue
		}
		dates = append(dates, d)
	}
	slices.SortFunc(dates, func(a, b time.Time) int { return b.Compare(a) })

	streak := 0
	for i, d := range dates {
		if i > 0 && utils.DayKey(utils.AddDays(dates[i-1], -1)) != utils.DayKey(d) {
			break
		}
		if s.Entries[utils.DayKey(d)].Rating < constants.DisciplineThreshold {
			break
		}
		streak++
	}
	return streak
}

// HabitStreak walks back day by day from ref. A positive habit counts days marked done;
// an unmarked today neither counts nor breaks the run. A negative habit counts days not
// marked done, so a missing record is a clean day. The walk is capped at
// MaxStreakLookback days.
func HabitStreak(s models.AppState, habit models.HabitDef, ref time.Time) int {
	start := utils.StartOfDay(ref)

	streak := 0
	for i := range constants.MaxStreakLookback {
		d := utils.AddDays(start, -i)
		done := habitDone(s, utils.DayKey(d), habit.ID)

		if habit.Type == models.HabitNegative {
			if done {
				break
			}
			streak++
			continue
		}

		if done {
			streak++
		} else if i > 0 {
			break
		}
	}
	return streak
}

// WeeklyCount counts the days marked done in the 7 days ending at ref, inclusive.
func WeeklyCount(s models.AppState, habitID string, ref time.Time) int {
	start := utils.StartOfDay(ref)
	count := 0
	for i := range constants.WeeklyWindowDays {
		if habitDone(s, utils.DayKey(utils.AddDays(start, -i)), habitID) {
			count++
		}
	}
	return count
}

// MonthlyTrend returns the 30 days ending at ref, oldest first.
func MonthlyTrend(s models.AppState, habitID string, ref time.Time) []TrendDay {
	start := utils.StartOfDay(ref)
	days := make([]TrendDay, constants.TrendWindowDays)
	for i := range days {
		key := utils.DayKey(utils.AddDays(start, i-(constants.TrendWindowDays-1)))
		days[i] = TrendDay{Date: key, Occurred: habitDone(s, key, habitID)}
	}
	return days
}

func habitDone(s models.AppState, date, habitID string) bool {
	e, ok := s.Entries[date]
	return ok && e.HabitStatus[habitID]
}
