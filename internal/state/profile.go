package state

import (
	"maps"
	"slices"
	"time"

	"github.com/julianstephens/jagruk/internal/constants"
	"github.com/julianstephens/jagruk/internal/models"
)

// ProfilePatch is a partial Profile. Collections are replaced, not merged.
type ProfilePatch struct {
	Name             *string
	StartDate        *string
	Intents          *[]string
	ReminderMorning  *string
	IsOnboarded      *bool
	DailyBudget      *float64
	BudgetMode       *models.BudgetMode
	CustomCategories *[]models.CategoryDef
	Habits           *[]models.HabitDef
	HabitLimits      *map[string]float64
	HabitOverrides   *map[string]float64
}

// UpdateProfile merges patch over the profile. XP and level only change through AwardXP.
func UpdateProfile(s models.AppState, patch ProfilePatch) models.AppState {
	p := s.Profile
	set(&p.Name, patch.Name)
	set(&p.StartDate, patch.StartDate)
	if patch.Intents != nil {
		p.Intents = slices.Clone(*patch.Intents)
	}
	set(&p.ReminderMorning, patch.ReminderMorning)
	set(&p.IsOnboarded, patch.IsOnboarded)
	set(&p.DailyBudget, patch.DailyBudget)
	set(&p.BudgetMode, patch.BudgetMode)
	if patch.CustomCategories != nil {
		p.CustomCategories = slices.Clone(*patch.CustomCategories)
	}
	if patch.Habits != nil {
		p.Habits = slices.Clone(*patch.Habits)
	}
	if patch.HabitLimits != nil {
		p.HabitLimits = maps.Clone(*patch.HabitLimits)
	}
	if patch.HabitOverrides != nil {
		p.HabitOverrides = maps.Clone(*patch.HabitOverrides)
	}
	s.Profile = p
	return s
}

// Onboarding holds the answers collected on first launch.
type Onboarding struct {
	Name            string
	Intents         []string
	ReminderMorning string
	DailyBudget     float64
}

// CompleteOnboarding stores the answers, restarts the journey at now and marks the
// profile onboarded. Zero values keep the current setting.
func CompleteOnboarding(s models.AppState, o Onboarding, now time.Time) models.AppState {
	start := now.UTC().Format(models.ISOTimestampFormat)
	onboarded := true
	patch := ProfilePatch{
		Name:        &o.Name,
		StartDate:   &start,
		IsOnboarded: &onboarded,
	}
	if o.Intents != nil {
		patch.Intents = &o.Intents
	}
	if o.ReminderMorning != "" {
		patch.ReminderMorning = &o.ReminderMorning
	}
	if o.DailyBudget > 0 {
		patch.DailyBudget = &o.DailyBudget
	}
	return UpdateProfile(s, patch)
}

// AddHabit appends a habit definition with a fresh id.
func AddHabit(s models.AppState, h models.HabitDef) (models.AppState, models.HabitDef) {
	h.ID = newID()
	if h.Type == "" {
		h.Type = models.HabitPositive
	}
	s.Profile.Habits = append(slices.Clone(s.Profile.Habits), h)
	return s, h
}

// RemoveHabit drops the definition. Past habitStatus values stay in the entries.
func RemoveHabit(s models.AppState, id string) models.AppState {
	if _, ok := s.Profile.Habit(id); !ok {
		return s
	}
	s.Profile.Habits = slices.DeleteFunc(slices.Clone(s.Profile.Habits), func(h models.HabitDef) bool {
		return h.ID == id
	})
	return s
}

// AwardXP adds amount and rolls every full level's worth into level-ups.
// Non-positive amounts leave the state unchanged.
func AwardXP(s models.AppState, amount int) models.AppState {
	if amount <= 0 {
		return s
	}
	p := s.Profile
	p.RollOverXP()
	p.XP += min(amount, constants.XPPerLevel*constants.MaxLevel)
	p.RollOverXP()
	s.Profile = p
	return s
}
