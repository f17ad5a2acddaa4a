package models

import "github.com/julianstephens/jagruk/internal/constants"

type HabitType string

const (
	HabitPositive HabitType = "positive" // habit to build: success = performed
	HabitNegative HabitType = "negative" // habit to quit: success = not performed
)

type BudgetMode string

const (
	BudgetNone    BudgetMode = "none"
	BudgetDaily   BudgetMode = "daily"
	BudgetWeekly  BudgetMode = "weekly"
	BudgetMonthly BudgetMode = "monthly"
)

type HabitDef struct {
	ID    string    `json:"id"`
	Title string    `json:"title"`
	Type  HabitType `json:"type"`
	Icon  string    `json:"icon"`
}

// CategoryDef is a user-defined spending category whose price pre-fills quick entries.
type CategoryDef struct {
	ID    string  `json:"id"`
	Label string  `json:"label"`
	Icon  string  `json:"icon"`
	Price float64 `json:"price"`
	Color string  `json:"color,omitempty"`
}

// Profile is the per-installation user profile.
type Profile struct {
	Name            string   `json:"name"`
	StartDate       string   `json:"startDate"` // ISO datetime
	Intents         []string `json:"intents"`
	ReminderMorning string   `json:"reminderMorning"`
	IsOnboarded     bool     `json:"isOnboarded"`

	// Gamification; XP < XPPerLevel*Level after every mutation
	XP    int `json:"xp"`
	Level int `json:"level"`

	DailyBudget      float64       `json:"dailyBudget"`
	BudgetMode       BudgetMode    `json:"budgetMode,omitempty"`
	CustomCategories []CategoryDef `json:"customCategories,omitempty"`

	Habits         []HabitDef         `json:"habits"`
	HabitLimits    map[string]float64 `json:"habitLimits"`    // category label -> daily unit limit
	HabitOverrides map[string]float64 `json:"habitOverrides"` // category id -> price
}

// XPToNextLevel returns how much XP is still needed to reach the next level.
func (p Profile) XPToNextLevel() int {
	return constants.XPPerLevel*p.Level - p.XP
}

// RollOverXP clamps level and XP into range and converts every full level's
// worth of XP into level-ups. At MaxLevel the XP saturates below the next level.
func (p *Profile) RollOverXP() {
	p.Level = min(max(p.Level, 1), constants.MaxLevel)
	p.XP = min(max(p.XP, 0), constants.XPPerLevel*constants.MaxLevel)
	for p.Level < constants.MaxLevel && p.XP >= constants.XPPerLevel*p.Level {
		p.XP -= constants.XPPerLevel * p.Level
		p.Level++
	}
	if p.Level == constants.MaxLevel {
		p.XP = min(p.XP, constants.XPPerLevel*constants.MaxLevel-1)
	}
}

// Habit returns the habit definition with the given id.
func (p Profile) Habit(id string) (HabitDef, bool) {
	for _, h := range p.Habits {
		if h.ID == id {
			return h, true
		}
	}
	return HabitDef{}, false
}

// Category returns the custom category with the given id.
func (p Profile) Category(id string) (CategoryDef, bool) {
	for _, c := range p.CustomCategories {
		if c.ID == id {
			return c, true
		}
	}
	return CategoryDef{}, false
}
