package finance

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/julianstephens/jagruk/internal/analytics"
	"github.com/julianstephens/jagruk/internal/cli"
	"github.com/julianstephens/jagruk/internal/constants"
	apperrors "github.com/julianstephens/jagruk/internal/errors"
	"github.com/julianstephens/jagruk/internal/models"
)

var units = []models.UnitType{models.UnitStick, models.UnitGram, models.UnitDrink, models.UnitCup, models.UnitUnit}

// parseAmount accepts a non-negative decimal with at most two places.
func parseAmount(s string) (float64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("amount must not be negative, got %s", s)
	}
	if !d.Equal(d.Round(2)) {
		return 0, apperrors.WithHint(fmt.Errorf("invalid amount %q", s), "use at most two decimal places")
	}
	return d.InexactFloat64(), nil
}

// parseAt reads a local "YYYY-MM-DD HH:MM", a bare date (noon) or an RFC 3339 timestamp.
func parseAt(s string, loc *time.Location) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	if ts, err := time.ParseInLocation(constants.DateFormat+" "+constants.TimeFormat, s, loc); err == nil {
		return ts, nil
	}
	if d, err := time.ParseInLocation(constants.DateFormat, s, loc); err == nil {
		return d.Add(12 * time.Hour), nil
	}
	return time.Time{}, apperrors.WithHint(fmt.Errorf("invalid time %q", s), `use "YYYY-MM-DD HH:MM" or YYYY-MM-DD`)
}

type TxnAddCmd struct {
	Amount   string  `arg:"" help:"Amount, e.g. 120 or 49.50."`
	Category string  `arg:"" help:"Category label."`
	Income   bool    `help:"Record income instead of an expense."`
	Note     string  `short:"n" help:"Free-form note."`
	Mood     string  `short:"m" help:"How you felt about it."`
	Qty      float64 `short:"q" help:"Units consumed, for habit categories."`
	Unit     string  `short:"u" help:"Unit of the quantity: stick, g, drink, cup or unit."`
	Habit    bool    `help:"Count this purchase as a habit."`
	At       string  `help:"When it happened (default now)."`
}

func (c *TxnAddCmd) Run(ctx *cli.Context) error {
	amount, err := parseAmount(c.Amount)
	if err != nil {
		return err
	}
	category := strings.TrimSpace(c.Category)
	if category == "" {
		return fmt.Errorf("category must not be empty")
	}
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}
	at, err := parseAt(c.At, t.Now().Location())
	if err != nil {
		return err
	}

	txn := models.Transaction{
		Timestamp: at,
		Amount:    amount,
		Type:      models.TransactionExpense,
		Category:  category,
		IsHabit:   c.Habit,
		Note:      c.Note,
	}
	if c.Income {
		txn.Type = models.TransactionIncome
	}
	if c.Mood != "" {
		mood := models.Mood(strings.ToLower(c.Mood))
		if !slices.Contains(models.Moods, mood) {
			return fmt.Errorf("unknown mood %q", c.Mood)
		}
		txn.Mood = mood
	}
	if c.Qty < 0 {
		return fmt.Errorf("quantity must not be negative")
	}
	if c.Qty > 0 {
		txn.UnitQuantity = c.Qty
		txn.UnitType = models.UnitUnit
	}
	if c.Unit != "" {
		unit := models.UnitType(c.Unit)
		if !slices.Contains(units, unit) {
			return fmt.Errorf("unknown unit %q", c.Unit)
		}
		txn.UnitType = unit
	}

	txn = t.AddTransaction(txn)
	ctx.Printf("✓ %s %.2f %s\n", verb(txn), txn.Amount, txn.Category)
	warnBudget(ctx, t.Snapshot(), t.Now())
	return nil
}

func verb(t models.Transaction) string {
	if t.IsExpense() {
		return "Spent"
	}
	return "Received"
}

// TxnQuickCmd logs a purchase at the category's configured price.
type TxnQuickCmd struct {
	Category string  `arg:"" help:"Category id or label."`
	Qty      float64 `short:"q" default:"1" help:"How many."`
}

func (c *TxnQuickCmd) Run(ctx *cli.Context) error {
	if c.Qty <= 0 {
		return fmt.Errorf("quantity must be positive")
	}
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}
	cat, err := cli.FindCategory(analytics.ResolveCategories(t.Snapshot().Profile), c.Category)
	if err != nil {
		return err
	}
	amount := decimal.NewFromFloat(cat.Price).Mul(decimal.NewFromFloat(c.Qty)).Round(2)
	txn := t.AddTransaction(models.Transaction{
		Amount:       amount.InexactFloat64(),
		Type:         models.TransactionExpense,
		Category:     cat.Label,
		IsHabit:      true,
		UnitQuantity: c.Qty,
		UnitType:     models.UnitUnit,
	})
	ctx.Printf("✓ %s %s x%s = %.2f\n", cat.Icon, cat.Label, decimal.NewFromFloat(c.Qty).String(), txn.Amount)
	warnBudget(ctx, t.Snapshot(), t.Now())
	return nil
}

func warnBudget(ctx *cli.Context, s models.AppState, now time.Time) {
	st := analytics.Status(s, now)
	if st.BudgetCritical {
		ctx.Printf("⚠️  Daily budget exceeded: %.2f of %.2f\n", st.TodaySpend, st.DailyBudget)
	}
	for _, u := range analytics.HabitLimitUsage(s, now) {
		if u.Exceeded {
			ctx.Printf("⚠️  %s limit exceeded: %s of %s\n", u.Category,
				decimal.NewFromFloat(u.Used).String(), decimal.NewFromFloat(u.Limit).String())
		}
	}
}

type TxnListCmd struct {
	Limit int `short:"n" default:"20" help:"How many transactions to show."`
}

func (c *TxnListCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}
	txns := t.Snapshot().Transactions
	if len(txns) == 0 {
		ctx.Println("No transactions yet.")
		return nil
	}
	if c.Limit > 0 && len(txns) > c.Limit {
		txns = txns[:c.Limit]
	}
	loc := t.Now().Location()
	for _, txn := range txns {
		sign := "-"
		if !txn.IsExpense() {
			sign = "+"
		}
		line := fmt.Sprintf("%s  %s%9.2f  %-14s", txn.Timestamp.In(loc).Format(constants.DateFormat+" "+constants.TimeFormat), sign, txn.Amount, txn.Category)
		if txn.Note != "" {
			line += "  " + txn.Note
		}
		ctx.Println(strings.TrimRight(line, " "))
	}
	return nil
}
