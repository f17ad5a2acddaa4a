package analytics

import (
	"testing"
	"time"

	"github.com/julianstephens/jagruk/internal/models"
	"github.com/julianstephens/jagruk/internal/utils"
)

var (
	ist = time.FixedZone("IST", 5*3600+1800)
	ref = time.Date(2026, 3, 14, 12, 0, 0, 0, ist)
)

func day(n int) string {
	return utils.DayKey(utils.AddDays(ref, -n))
}

func newState() models.AppState {
	s := models.DefaultState(ref)
	s.Profile.StartDate = ref.AddDate(-1, 0, 0).UTC().Format(models.ISOTimestampFormat)
	return s
}

func withRatings(s models.AppState, ratings map[string]int) models.AppState {
	for date, r := range ratings {
		e := models.NewEntry(date)
		e.Rating = r
		s.Entries[date] = e
	}
	return s
}

func withHabit(s models.AppState, habitID string, status map[int]bool) models.AppState {
	for n, done := range status {
		e, _ := s.Entry(day(n))
		if e.HabitStatus == nil {
			e.HabitStatus = map[string]bool{}
		}
		e.HabitStatus[habitID] = done
		s.Entries[day(n)] = e
	}
	return s
}

func TestDisciplineStreak(t *testing.T) {
	tests := []struct {
		name    string
		ratings map[string]int
		want    int
	}{
		{"empty", nil, 0},
		{"breaks at first failing day", map[string]int{day(0): 8, day(1): 6, day(2): 5, day(3): 4, day(4): 9}, 3},
		{"first entry fails", map[string]int{day(0): 4, day(1): 9}, 0},
		{"calendar gap", map[string]int{day(0): 8, day(2): 9}, 1},
		{"unset rating fails", map[string]int{day(0): 0, day(1): 9}, 0},
		{"future entries ignored", map[string]int{day(-1): 2, day(0): 8, day(1): 7}, 2},
		{"bad keys ignored", map[string]int{"someday": 1, day(0): 8}, 1},
		{"latest entry in the past", map[string]int{day(3): 6, day(4): 6}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := withRatings(newState(), tt.ratings)
			if got := DisciplineStreak(s, ref); got != tt.want {
				t.Errorf("DisciplineStreak = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestHabitStreak_Positive(t *testing.T) {
	gym := models.HabitDef{ID: "h3", Title: "Gym", Type: models.HabitPositive}
	tests := []struct {
		name   string
		status map[int]bool
		want   int
	}{
		{"four trailing days", map[int]bool{0: true, 1: true, 2: true, 3: true, 4: false}, 4},
		{"unmarked today does not break", map[int]bool{1: true, 2: true, 3: true}, 3},
		{"unmarked today does not add", map[int]bool{1: true}, 1},
		{"false in the middle resets", map[int]bool{0: true, 1: true, 2: false, 3: true, 4: true, 5: true}, 2},
		{"missing yesterday breaks", map[int]bool{0: true, 2: true}, 1},
		{"nothing", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := withHabit(newState(), gym.ID, tt.status)
			if got := HabitStreak(s, gym, ref); got != tt.want {
				t.Errorf("HabitStreak = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestHabitStreak_Negative(t *testing.T) {
	smoking := models.HabitDef{ID: "h1", Title: "Smoking", Type: models.HabitNegative}

	t.Run("absence is clean", func(t *testing.T) {
		s := withHabit(newState(), smoking.ID, map[int]bool{10: true})
		if got := HabitStreak(s, smoking, ref); got != 10 {
			t.Errorf("HabitStreak = %d, want 10", got)
		}
	})

	t.Run("explicit false is clean", func(t *testing.T) {
		s := withHabit(newState(), smoking.ID, map[int]bool{0: false, 1: false, 2: true})
		if got := HabitStreak(s, smoking, ref); got != 2 {
			t.Errorf("HabitStreak = %d, want 2", got)
		}
	})

	t.Run("indulged today", func(t *testing.T) {
		s := withHabit(newState(), smoking.ID, map[int]bool{0: true})
		if got := HabitStreak(s, smoking, ref); got != 0 {
			t.Errorf("HabitStreak = %d, want 0", got)
		}
	})

	t.Run("fresh profile counts unrecorded days", func(t *testing.T) {
		s := models.DefaultState(ref)
		s = withHabit(s, smoking.ID, map[int]bool{12: true})
		if got := HabitStreak(s, smoking, ref); got != 12 {
			t.Errorf("HabitStreak = %d, want 12", got)
		}
	})

	t.Run("capped at lookback", func(t *testing.T) {
		s := newState()
		s.Profile.StartDate = ""
		if got := HabitStreak(s, smoking, ref); got != 365 {
			t.Errorf("HabitStreak = %d, want 365", got)
		}
	})
}

func TestWeeklyCountAndTrend(t *testing.T) {
	s := withHabit(newState(), "h3", map[int]bool{0: true, 3: true, 6: true, 7: true, 29: true, 30: true, 4: false})

	if got := WeeklyCount(s, "h3", ref); got != 3 {
		t.Errorf("WeeklyCount = %d, want 3", got)
	}

	trend := MonthlyTrend(s, "h3", ref)
	if len(trend) != 30 {
		t.Fatalf("trend length = %d", len(trend))
	}
	if trend[0].Date != day(29) || trend[29].Date != day(0) {
		t.Errorf("trend spans %s..%s", trend[0].Date, trend[29].Date)
	}
	occurred := 0
	for _, d := range trend {
		if d.Occurred {
			occurred++
		}
	}
	if occurred != 5 {
		t.Errorf("occurred = %d, want 5", occurred)
	}
	if !trend[0].Occurred || !trend[29].Occurred || trend[25].Occurred {
		t.Errorf("unexpected trend %v", trend)
	}
}

func txn(ts time.Time, amount float64, typ models.TransactionType, cat string) models.Transaction {
	return models.Transaction{ID: cat + ts.String(), Timestamp: ts, Amount: amount, Type: typ, Category: cat}
}

func TestDaySpend_LocalCalendarDay(t *testing.T) {
	s := newState()
	s.Transactions = []models.Transaction{
		// 00:30 IST on the 14th, still the 13th in UTC
		txn(time.Date(2026, 3, 13, 19, 0, 0, 0, time.UTC), 40, models.TransactionExpense, "Food"),
		// 23:30 IST on the 14th
		txn(time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC), 20, models.TransactionExpense, "Tea"),
		// 00:30 IST on the 15th, still the 14th in UTC
		txn(time.Date(2026, 3, 14, 19, 0, 0, 0, time.UTC), 500, models.TransactionExpense, "Travel"),
		txn(time.Date(2026, 3, 14, 6, 0, 0, 0, time.UTC), 1000, models.TransactionIncome, "Salary"),
	}
	if got := TodaySpend(s, ref); got != 60 {
		t.Errorf("TodaySpend = %v, want 60", got)
	}
	if got := DaySpend(s, utils.AddDays(ref, 1)); got != 500 {
		t.Errorf("DaySpend(tomorrow) = %v, want 500", got)
	}

	eastern := time.FixedZone("EST", -5*3600)
	local := time.Date(2026, 3, 14, 23, 30, 0, 0, eastern)
	s.Transactions = []models.Transaction{txn(local.UTC(), 15, models.TransactionExpense, "Food")}
	if got := TodaySpend(s, time.Date(2026, 3, 14, 9, 0, 0, 0, eastern)); got != 15 {
		t.Errorf("23:30 local should count toward the local day, got %v", got)
	}
}

func TestDaySpend_DecimalSum(t *testing.T) {
	s := newState()
	at := ref.Add(-time.Hour)
	s.Transactions = []models.Transaction{
		txn(at, 0.1, models.TransactionExpense, "a"),
		txn(at, 0.2, models.TransactionExpense, "b"),
	}
	if got := TodaySpend(s, ref); got != 0.3 {
		t.Errorf("TodaySpend = %v, want 0.3", got)
	}
}

func TestMonthlySummary(t *testing.T) {
	s := newState()
	in := func(d int) time.Time { return time.Date(2026, 3, d, 10, 0, 0, 0, ist) }
	s.Transactions = []models.Transaction{
		txn(in(12), 100, models.TransactionExpense, "Food"),
		txn(in(10), 50, models.TransactionExpense, "Travel"),
		txn(in(9), 50, models.TransactionExpense, "Food"),
		txn(in(1), 1000, models.TransactionIncome, "Salary"),
		txn(time.Date(2026, 2, 28, 10, 0, 0, 0, ist), 999, models.TransactionExpense, "Food"),
	}
	got := MonthlySummary(s, ref)
	if got.Month != "2026-03" || got.Income != 1000 || got.Expense != 200 || got.Net != 800 {
		t.Errorf("summary = %+v", got)
	}
	want := []CategoryShare{
		{Category: "Food", Amount: 150, Percentage: 75},
		{Category: "Travel", Amount: 50, Percentage: 25},
	}
	if len(got.Categories) != len(want) {
		t.Fatalf("categories = %+v", got.Categories)
	}
	for i := range want {
		if got.Categories[i] != want[i] {
			t.Errorf("category %d = %+v, want %+v", i, got.Categories[i], want[i])
		}
	}
}

func TestMonthlySummary_TiesKeepFirstSeen(t *testing.T) {
	s := newState()
	s.Transactions = []models.Transaction{
		txn(ref, 50, models.TransactionExpense, "Travel"),
		txn(ref, 50, models.TransactionExpense, "Tea"),
		txn(ref, 80, models.TransactionExpense, "Food"),
	}
	got := MonthlySummary(s, ref).Categories
	order := []string{"Food", "Travel", "Tea"}
	for i, c := range order {
		if got[i].Category != c {
			t.Fatalf("order = %+v, want %v", got, order)
		}
	}
}

func TestMonthlySummary_Empty(t *testing.T) {
	got := MonthlySummary(newState(), ref)
	if got.Expense != 0 || len(got.Categories) != 0 {
		t.Errorf("summary = %+v", got)
	}
}

func TestSpendSeries(t *testing.T) {
	s := newState()
	s.Transactions = []models.Transaction{
		txn(ref, 30, models.TransactionExpense, "Tea"),
		txn(utils.AddDays(ref, -6).Add(9*time.Hour), 80, models.TransactionExpense, "Food"),
		txn(utils.AddDays(ref, -7).Add(9*time.Hour), 99, models.TransactionExpense, "Food"),
	}
	series := SpendSeries(s, ref)
	if len(series) != 7 {
		t.Fatalf("series length = %d", len(series))
	}
	if series[6].Date != "2026-03-14" || series[6].Weekday != "Sat" || series[6].Spend != 30 {
		t.Errorf("last point = %+v", series[6])
	}
	if series[0].Date != day(6) || series[0].Spend != 80 {
		t.Errorf("first point = %+v", series[0])
	}
}

func TestStatus(t *testing.T) {
	tests := []struct {
		name    string
		energy  int
		spend   float64
		budget  float64
		want    Alert
		budCrit bool
	}{
		{"nominal", 3, 100, 500, AlertNominal, false},
		{"energy unset", 0, 100, 500, AlertNominal, false},
		{"energy critical", 1, 100, 500, AlertEnergyCritical, false},
		{"budget critical", 4, 600, 500, AlertBudgetCritical, true},
		{"energy wins", 1, 600, 500, AlertEnergyCritical, true},
		{"spend equal to budget", 4, 500, 500, AlertNominal, false},
		{"no budget", 4, 600, 0, AlertNominal, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newState()
			s.Profile.DailyBudget = tt.budget
			e := models.NewEntry(day(0))
			e.Energy = tt.energy
			s.Entries[day(0)] = e
			s.Transactions = []models.Transaction{txn(ref, tt.spend, models.TransactionExpense, "Food")}

			got := Status(s, ref)
			if got.Alert != tt.want || got.BudgetCritical != tt.budCrit {
				t.Errorf("Status = %+v, want alert %s budget critical %v", got, tt.want, tt.budCrit)
			}
			if got.TodaySpend != tt.spend {
				t.Errorf("TodaySpend = %v", got.TodaySpend)
			}
		})
	}
}

func TestProgress(t *testing.T) {
	got := Progress(models.Profile{Level: 2, XP: 50})
	want := XPProgress{Level: 2, XP: 50, Needed: 200, ToNext: 150, Percent: 25}
	if got != want {
		t.Errorf("Progress = %+v, want %+v", got, want)
	}
}

func TestLedger(t *testing.T) {
	s := newState()
	s.Transactions = []models.Transaction{
		txn(ref.Add(-26*time.Hour), 5, models.TransactionExpense, "old"),
		txn(ref.Add(-2*time.Hour), 20, models.TransactionExpense, "Tea"),
		txn(ref.Add(-time.Hour), 100, models.TransactionIncome, "Gift"),
		txn(ref.Add(-25*time.Hour), 40, models.TransactionExpense, "Food"),
	}
	days := Ledger(s, ref, 3)
	if len(days) != 2 {
		t.Fatalf("days = %+v", days)
	}
	if days[0].Date != day(0) || len(days[0].Transactions) != 2 || days[0].Spend != 20 {
		t.Errorf("today = %+v", days[0])
	}
	if days[0].Transactions[0].Category != "Gift" {
		t.Errorf("expected newest first, got %+v", days[0].Transactions)
	}
	if days[1].Date != day(1) || len(days[1].Transactions) != 1 || days[1].Transactions[0].Category != "Food" {
		t.Errorf("yesterday = %+v", days[1])
	}
}

func TestResolveCategories(t *testing.T) {
	p := newState().Profile
	p.HabitOverrides = map[string]float64{"c2": 99}
	cats := ResolveCategories(p)
	if len(cats) != 4 || cats[1].Price != 99 {
		t.Errorf("categories = %+v", cats)
	}
	if models.DefaultCategories()[1].Price != 80 {
		t.Error("defaults were modified")
	}

	p.CustomCategories = []models.CategoryDef{{ID: "x", Label: "Snacks", Price: 30}}
	cats = ResolveCategories(p)
	if len(cats) != 1 || cats[0].Label != "Snacks" || cats[0].Price != 30 {
		t.Errorf("categories = %+v", cats)
	}
	if p.CustomCategories[0].Price != 30 {
		t.Error("custom categories were modified")
	}
}

func TestHabitLimitUsage(t *testing.T) {
	s := newState()
	cig := txn(ref, 54, models.TransactionExpense, "Cigarettes")
	cig.UnitQuantity = 3
	s.Transactions = []models.Transaction{
		cig,
		txn(ref.Add(-24*time.Hour), 18, models.TransactionExpense, "Cigarettes"),
		txn(ref, 80, models.TransactionExpense, "junk food"),
	}
	usage := HabitLimitUsage(s, ref)
	if len(usage) != 2 {
		t.Fatalf("usage = %+v", usage)
	}
	if usage[0].Category != "Cigarettes" || usage[0].Used != 3 || !usage[0].Exceeded {
		t.Errorf("cigarettes = %+v", usage[0])
	}
	if usage[1].Category != "Junk Food" || usage[1].Used != 1 || usage[1].Exceeded {
		t.Errorf("junk food = %+v", usage[1])
	}
}

func TestRatingTier(t *testing.T) {
	tests := map[int]Tier{-1: TierNone, 0: TierNone, 1: TierLow, 4: TierLow, 5: TierSteady, 7: TierSteady, 8: TierStrong, 10: TierStrong, 12: TierStrong}
	for rating, want := range tests {
		if got := RatingTier(rating); got != want {
			t.Errorf("RatingTier(%d) = %s, want %s", rating, got, want)
		}
	}
}

func TestLifePulseAndAverage(t *testing.T) {
	s := withRatings(newState(), map[string]int{day(0): 8, day(1): 6, day(2): 5, day(40): 0})
	pulse := LifePulse(s, ref, 30)
	if len(pulse) != 30 || pulse[29].Date != day(0) || pulse[29].Tier != TierStrong || pulse[0].Tier != TierNone {
		t.Errorf("pulse = %+v", pulse)
	}
	if got := AverageRating(s); got != 6.3 {
		t.Errorf("AverageRating = %v, want 6.3", got)
	}
	if got := AverageRating(newState()); got != 0 {
		t.Errorf("AverageRating(empty) = %v", got)
	}
}

func TestMonthGrid(t *testing.T) {
	months := MonthGrid(time.Date(2026, 5, 10, 8, 0, 0, 0, ist), 2)
	if len(months) != 2 {
		t.Fatalf("months = %d", len(months))
	}
	may, april := months[0], months[1]
	if may.Name != "May" || may.Year != 2026 || len(may.Days) != 36 || may.Days[4] != "" || may.Days[5] != "2026-05-01" {
		t.Errorf("may = %+v", may)
	}
	if april.Name != "April" || len(april.Days) != 33 || april.Days[3] != "2026-04-01" || april.Days[32] != "2026-04-30" {
		t.Errorf("april = %+v", april)
	}

	jan := MonthGrid(time.Date(2026, 1, 20, 8, 0, 0, 0, ist), 2)
	if jan[1].Name != "December" || jan[1].Year != 2025 {
		t.Errorf("previous month = %s %d", jan[1].Name, jan[1].Year)
	}
}

func TestTodoProgress(t *testing.T) {
	e := models.NewEntry(day(0))
	if got := TodoProgress(e); got.Total != 0 || got.Percent != 0 {
		t.Errorf("empty = %+v", got)
	}
	e.Todos = []models.ToDoItem{{ID: "1", Completed: true}, {ID: "2"}, {ID: "3"}, {ID: "4", Completed: true}}
	if got := TodoProgress(e); got != (TodoStats{Completed: 2, Total: 4, Percent: 50}) {
		t.Errorf("progress = %+v", got)
	}
}

func TestHabitOverview(t *testing.T) {
	s := withHabit(newState(), "h3", map[int]bool{0: true, 1: true})
	overview := HabitOverview(s, ref)
	if len(overview) != len(s.Profile.Habits) {
		t.Fatalf("overview = %d habits", len(overview))
	}
	for _, h := range overview {
		if h.Habit.ID != "h3" {
			continue
		}
		if !h.DoneToday || h.Streak != 2 || h.Weekly != 2 || len(h.Trend) != 30 {
			t.Errorf("gym = %+v", h)
		}
	}
}

func TestDailyPrompt(t *testing.T) {
	if got := DailyPrompt("2026-03-14"); got != "Who did you help today?" {
		t.Errorf("DailyPrompt = %q", got)
	}
	if got := DailyPrompt("2026-03-12"); got != Prompts[0] {
		t.Errorf("DailyPrompt = %q", got)
	}
	if got := DailyPrompt("soon"); got != Prompts[0] {
		t.Errorf("DailyPrompt(invalid) = %q", got)
	}
}
