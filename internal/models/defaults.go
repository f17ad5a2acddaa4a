package models

import (
	"time"

	"github.com/julianstephens/jagruk/internal/constants"
)

// Intents offered during onboarding.
var IntentOptions = []string{"Discipline", "Career", "Money", "Health", "Mindfulness"}

// DefaultHabits returns a fresh copy of the starter habit set.
func DefaultHabits() []HabitDef {
	return []HabitDef{
		{ID: "h1", Title: "Smoking", Type: HabitNegative, Icon: "🚬"},
		{ID: "h2", Title: "Alcohol", Type: HabitNegative, Icon: "🍺"},
		{ID: "h3", Title: "Gym", Type: HabitPositive, Icon: "💪"},
		{ID: "h4", Title: "Sleep < 12AM", Type: HabitPositive, Icon: "😴"},
	}
}

// DefaultCategories returns the spending categories used when the profile defines none.
func DefaultCategories() []CategoryDef {
	return []CategoryDef{
		{ID: "c1", Label: "Cigarette", Icon: "🚬", Price: 18},
		{ID: "c2", Label: "Food", Icon: "🍔", Price: 80},
		{ID: "c3", Label: "Tea", Icon: "☕", Price: 20},
		{ID: "c4", Label: "Travel", Icon: "🚕", Price: 50},
	}
}

// DefaultHabitLimits returns the starter daily unit limits.
func DefaultHabitLimits() map[string]float64 {
	return map[string]float64{"Cigarettes": 2, "Junk Food": 1}
}

// DefaultProfile returns the profile of a fresh installation.
func DefaultProfile(now time.Time) Profile {
	return Profile{
		Name:            "",
		StartDate:       now.UTC().Format(ISOTimestampFormat),
		Intents:         []string{},
		ReminderMorning: constants.DefaultReminderMorning,
		IsOnboarded:     false,
		XP:              0,
		Level:           1,
		DailyBudget:     constants.DefaultDailyBudget,
		Habits:          DefaultHabits(),
		HabitLimits:     DefaultHabitLimits(),
		HabitOverrides:  map[string]float64{},
	}
}

// DefaultState returns the initial state. now should already be in the viewer's location.
func DefaultState(now time.Time) AppState {
	return AppState{
		Profile:      DefaultProfile(now),
		Entries:      map[string]DailyEntry{},
		Transactions: []Transaction{},
		Goals:        []Goal{},
		CurrentDate:  Today(now),
	}
}
