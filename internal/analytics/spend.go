package analytics

import (
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/julianstephens/jagruk/internal/constants"
	"github.com/julianstephens/jagruk/internal/models"
	"github.com/julianstephens/jagruk/internal/utils"
)

// CategoryShare is one row of the monthly expense breakdown.
type CategoryShare struct {
	Category   string  `json:"category"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
}

// MonthSummary totals the calendar month containing the reference day.
type MonthSummary struct {
	Month      string          `json:"month"` // YYYY-MM
	Income     float64         `json:"income"`
	Expense    float64         `json:"expense"`
	Net        float64         `json:"net"`
	Categories []CategoryShare `json:"categories"`
}

// SpendPoint is one bar of the spend series.
type SpendPoint struct {
	Date    string  `json:"date"`
	Weekday string  `json:"weekday"`
	Spend   float64 `json:"spend"`
}

// LedgerDay groups transactions sharing a local calendar day.
type LedgerDay struct {
	Date         string               `json:"date"`
	Spend        float64              `json:"spend"`
	Transactions []models.Transaction `json:"transactions"`
}

// LimitUsage compares today's logged quantity for a limited category with its limit.
type LimitUsage struct {
	Category string  `json:"category"`
	Used     float64 `json:"used"`
	Limit    float64 `json:"limit"`
	Exceeded bool    `json:"exceeded"`
}

// DaySpend sums the expenses whose timestamp falls on day's local calendar date.
func DaySpend(s models.AppState, day time.Time) float64 {
	total := decimal.Zero
	for _, t := range s.Transactions {
		if t.IsExpense() && utils.SameLocalDay(t.Timestamp, day) {
			total = total.Add(decimal.NewFromFloat(t.Amount))
		}
	}
	return total.InexactFloat64()
}

// TodaySpend is DaySpend for the reference day.
func TodaySpend(s models.AppState, ref time.Time) float64 {
	return DaySpend(s, ref)
}

// MonthlySummary totals income and expense for ref's month and ranks expense
// categories by amount. Ties keep the order in which categories were first seen.
func MonthlySummary(s models.AppState, ref time.Time) MonthSummary {
	income, expense := decimal.Zero, decimal.Zero
	var order []string
	totals := make(map[string]decimal.Decimal)

	for _, t := range s.Transactions {
		if !utils.SameLocalMonth(t.Timestamp, ref) {
			continue
		}
		amount := decimal.NewFromFloat(t.Amount)
		if !t.IsExpense() {
			income = income.Add(amount)
			continue
		}
		expense = expense.Add(amount)
		if _, seen := totals[t.Category]; !seen {
			order = append(order, t.Category)
		}
		totals[t.Category] = totals[t.Category].Add(amount)
	}

	slices.SortStableFunc(order, func(a, b string) int {
		return totals[b].Cmp(totals[a])
	})

	hundred := decimal.NewFromInt(100)
	shares := make([]CategoryShare, 0, len(order))
	for _, cat := range order {
		share := CategoryShare{Category: cat, Amount: totals[cat].InexactFloat64()}
		if expense.IsPositive() {
			share.Percentage = totals[cat].Mul(hundred).Div(expense).Round(2).InexactFloat64()
		}
		shares = append(shares, share)
	}

	return MonthSummary{
		Month:      ref.Format(constants.MonthFormat),
		Income:     income.InexactFloat64(),
		Expense:    expense.InexactFloat64(),
		Net:        income.Sub(expense).InexactFloat64(),
		Categories: shares,
	}
}

// SpendSeries returns daily spend for the 7 days ending at ref, oldest first.
func SpendSeries(s models.AppState, ref time.Time) []SpendPoint {
	start := utils.StartOfDay(ref)
	points := make([]SpendPoint, constants.SpendSeriesDays)
	for i := range points {
		d := utils.AddDays(start, i-(constants.SpendSeriesDays-1))
		points[i] = SpendPoint{
			Date:    utils.DayKey(d),
			Weekday: d.Weekday().String()[:3],
			Spend:   DaySpend(s, d),
		}
	}
	return points
}

// Ledger returns the limit most recent transactions grouped by local day, newest first.
func Ledger(s models.AppState, ref time.Time, limit int) []LedgerDay {
	sorted := slices.Clone(s.Transactions)
	slices.SortStableFunc(sorted, func(a, b models.Transaction) int {
		return b.Timestamp.Compare(a.Timestamp)
	})
	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}

	loc := ref.Location()
	var days []LedgerDay
	for _, t := range sorted {
		key := utils.LocalDayKey(t.Timestamp, loc)
		if len(days) == 0 || days[len(days)-1].Date != key {
			days = append(days, LedgerDay{Date: key})
		}
		day := &days[len(days)-1]
		day.Transactions = append(day.Transactions, t)
		if t.IsExpense() {
			day.Spend = decimal.NewFromFloat(day.Spend).Add(decimal.NewFromFloat(t.Amount)).InexactFloat64()
		}
	}
	return days
}

// ResolveCategories returns the custom categories, or the defaults when none are
// defined, with per-category price overrides applied.
func ResolveCategories(p models.Profile) []models.CategoryDef {
	cats := p.CustomCategories
	if len(cats) == 0 {
		cats = models.DefaultCategories()
	}
	out := slices.Clone(cats)
	for i, c := range out {
		if price, ok := p.HabitOverrides[c.ID]; ok {
			out[i].Price = price
		}
	}
	return out
}

// HabitLimitUsage reports today's logged quantity against each configured daily limit.
// A transaction without a quantity counts as one unit.
func HabitLimitUsage(s models.AppState, ref time.Time) []LimitUsage {
	labels := slices.Sorted(maps.Keys(s.Profile.HabitLimits))
	usage := make([]LimitUsage, 0, len(labels))
	for _, label := range labels {
		used := decimal.Zero
		for _, t := range s.Transactions {
			if !t.IsExpense() || !strings.EqualFold(t.Category, label) || !utils.SameLocalDay(t.Timestamp, ref) {
				continue
			}
			qty := decimal.NewFromInt(1)
			if t.UnitQuantity > 0 {
				qty = decimal.NewFromFloat(t.UnitQuantity)
			}
			used = used.Add(qty)
		}
		limit := s.Profile.HabitLimits[label]
		usage = append(usage, LimitUsage{
			Category: label,
			Used:     used.InexactFloat64(),
			Limit:    limit,
			Exceeded: used.GreaterThan(decimal.NewFromFloat(limit)),
		})
	}
	return usage
}
