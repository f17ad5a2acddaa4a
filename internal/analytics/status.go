package analytics

import (
	"time"

	"github.com/julianstephens/jagruk/internal/constants"
	"github.com/julianstephens/jagruk/internal/models"
	"github.com/julianstephens/jagruk/internal/utils"
)

// Alert is the derived system status shown on the dashboard.
type Alert string

const (
	AlertNominal        Alert = "nominal"
	AlertEnergyCritical Alert = "energy_critical"
	AlertBudgetCritical Alert = "budget_critical"
)

// SystemStatus reports every active condition. Alert is the one to display; energy
// takes precedence over budget.
type SystemStatus struct {
	Alert          Alert   `json:"alert"`
	EnergyCritical bool    `json:"energyCritical"`
	BudgetCritical bool    `json:"budgetCritical"`
	Energy         int     `json:"energy"`
	TodaySpend     float64 `json:"todaySpend"`
	DailyBudget    float64 `json:"dailyBudget"`
}

// Status derives the alert state for the reference day. Energy is critical only when
// it was recorded. A daily budget of zero or less means no budget is set.
func Status(s models.AppState, ref time.Time) SystemStatus {
	e, _ := s.Entry(utils.DayKey(ref))
	st := SystemStatus{
		Energy:      e.Energy,
		TodaySpend:  TodaySpend(s, ref),
		DailyBudget: s.Profile.DailyBudget,
	}
	st.EnergyCritical = e.Energy > 0 && e.Energy <= constants.EnergyCriticalMax
	st.BudgetCritical = st.DailyBudget > 0 && st.TodaySpend > st.DailyBudget

	switch {
	case st.EnergyCritical:
		st.Alert = AlertEnergyCritical
	case st.BudgetCritical:
		st.Alert = AlertBudgetCritical
	default:
		st.Alert = AlertNominal
	}
	return st
}

// XPProgress is the read-back of the gamification state.
type XPProgress struct {
	Level   int     `json:"level"`
	XP      int     `json:"xp"`
	Needed  int     `json:"needed"`
	ToNext  int     `json:"xpToNextLevel"`
	Percent float64 `json:"percent"`
}

// Progress exposes xpToNextLevel and the percent towards the next level.
func Progress(p models.Profile) XPProgress {
	level := max(p.Level, 1)
	needed := constants.XPPerLevel * level
	return XPProgress{
		Level:   level,
		XP:      p.XP,
		Needed:  needed,
		ToNext:  needed - p.XP,
		Percent: float64(p.XP) / float64(needed) * 100,
	}
}
