package finance

import (
	"strings"

	"github.com/julianstephens/jagruk/internal/analytics"
	"github.com/julianstephens/jagruk/internal/cli"
	"github.com/julianstephens/jagruk/internal/constants"
)

type MonthCmd struct{}

func (c *MonthCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}
	m := analytics.MonthlySummary(t.Snapshot(), t.Now())

	ctx.Printf("%s\n\n", m.Month)
	ctx.Printf("Income:   %10.2f\n", m.Income)
	ctx.Printf("Expense:  %10.2f\n", m.Expense)
	ctx.Printf("Net:      %10.2f\n", m.Net)
	if len(m.Categories) == 0 {
		return nil
	}
	ctx.Println("\nWhere it went:")
	for _, cs := range m.Categories {
		ctx.Printf("  %-14s %10.2f  %5.1f%%  %s\n", cs.Category, cs.Amount, cs.Percentage, strings.Repeat("■", int(cs.Percentage/5)))
	}
	return nil
}

type WeekCmd struct{}

func (c *WeekCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}
	s := t.Snapshot()
	series := analytics.SpendSeries(s, t.Now())

	peak := 0.0
	for _, p := range series {
		peak = max(peak, p.Spend)
	}
	budget := s.Profile.DailyBudget
	for _, p := range series {
		width := 0
		if peak > 0 {
			width = int(p.Spend / peak * 30)
		}
		flag := ""
		if budget > 0 && p.Spend > budget {
			flag = " !"
		}
		ctx.Printf("%s %s %9.2f %s%s\n", p.Weekday, p.Date, p.Spend, strings.Repeat("█", width), flag)
	}
	if budget > 0 {
		ctx.Printf("\nDaily budget: %.2f\n", budget)
	}
	return nil
}

type LedgerCmd struct {
	Days int `short:"n" help:"How many days to show (default 30)."`
}

func (c *LedgerCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}
	limit := c.Days
	if limit <= 0 {
		limit = constants.LedgerLimit
	}
	days := analytics.Ledger(t.Snapshot(), t.Now(), limit)
	if len(days) == 0 {
		ctx.Println("Ledger is empty.")
		return nil
	}
	loc := t.Now().Location()
	for _, d := range days {
		ctx.Printf("%s  spent %.2f\n", d.Date, d.Spend)
		for _, txn := range d.Transactions {
			sign := "-"
			if !txn.IsExpense() {
				sign = "+"
			}
			ctx.Printf("  %s  %s%.2f  %s\n", txn.Timestamp.In(loc).Format(constants.TimeFormat), sign, txn.Amount, txn.Category)
		}
	}
	return nil
}
