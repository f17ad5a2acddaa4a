package tracker

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/julianstephens/jagruk/internal/backup"
	"github.com/julianstephens/jagruk/internal/constants"
	"github.com/julianstephens/jagruk/internal/models"
	"github.com/julianstephens/jagruk/internal/persist"
	"github.com/julianstephens/jagruk/internal/state"
	"github.com/julianstephens/jagruk/internal/storage"
)

var (
	ist = time.FixedZone("IST", 5*3600+1800)
	now = time.Date(2026, 3, 14, 21, 0, 0, 0, ist)
)

func ptr[T any](v T) *T { return &v }

func newTracker(t *testing.T, store storage.BlobStore) (*Tracker, *persist.Persister) {
	t.Helper()
	p := persist.New(store,
		persist.WithClock(func() time.Time { return now }),
		persist.WithLocation(ist),
		persist.WithDebounce(time.Hour),
	)
	return Open(p), p
}

func stored(t *testing.T, store storage.BlobStore) []byte {
	t.Helper()
	raw, err := store.Get(constants.StateKey)
	if err != nil {
		return nil
	}
	return raw
}

func TestOpen_Fresh(t *testing.T) {
	tr, _ := newTracker(t, storage.NewMemoryStore())
	s := tr.Snapshot()
	if s.Profile.IsOnboarded {
		t.Error("fresh state should not be onboarded")
	}
	if s.CurrentDate != "2026-03-14" || tr.Today() != "2026-03-14" {
		t.Errorf("CurrentDate = %q", s.CurrentDate)
	}
}

func TestUpdateEntry_XP(t *testing.T) {
	tr, _ := newTracker(t, storage.NewMemoryStore())
	date := tr.Today()

	e := tr.UpdateEntry(date, state.EntryPatch{Rating: ptr(7)})
	if e.Rating != 7 || e.IsLocked || len(e.Todos) != 0 {
		t.Errorf("entry = %+v", e)
	}
	tr.UpdateEntry(date, state.EntryPatch{Rating: ptr(9)})
	if xp := tr.Snapshot().Profile.XP; xp != constants.XPRateDay {
		t.Errorf("xp after re-rating = %d, want %d", xp, constants.XPRateDay)
	}

	tr.SealEntry(date)
	tr.SealEntry(date)
	if xp := tr.Snapshot().Profile.XP; xp != constants.XPRateDay+constants.XPSealDay {
		t.Errorf("xp after sealing = %d", xp)
	}
	if e, _ := tr.Snapshot().Entry(date); !e.IsLocked || e.Rating != 9 {
		t.Errorf("sealed entry = %+v", e)
	}
}

func TestUpdateEntryUnlessSealed(t *testing.T) {
	tr, _ := newTracker(t, storage.NewMemoryStore())
	day := tr.Today()

	e, ok := tr.UpdateEntryUnlessSealed(day, state.EntryPatch{Rating: ptr(7)})
	if !ok || e.Rating != 7 {
		t.Fatalf("UpdateEntryUnlessSealed() = %+v, %v", e, ok)
	}
	tr.SealEntry(day)
	xp := tr.Snapshot().Profile.XP

	e, ok = tr.UpdateEntryUnlessSealed(day, state.EntryPatch{Rating: ptr(2)})
	if ok {
		t.Fatal("update of a sealed day succeeded")
	}
	if e.Rating != 7 || !e.IsLocked {
		t.Errorf("entry = %+v, want the sealed entry unchanged", e)
	}
	if got := tr.Snapshot().Profile.XP; got != xp {
		t.Errorf("XP = %d, want %d", got, xp)
	}
}

func TestTodos_XP(t *testing.T) {
	tr, _ := newTracker(t, storage.NewMemoryStore())
	date := tr.Today()

	item := tr.AddTodo(date, models.ToDoItem{Text: "  Write report "})
	if item.ID == "" || item.Text != "Write report" || item.Priority != models.PriorityMedium {
		t.Errorf("todo = %+v", item)
	}
	if !tr.ToggleTodo(date, item.ID) {
		t.Error("expected todo to be completed")
	}
	if tr.ToggleTodo(date, item.ID) {
		t.Error("expected todo to be reopened")
	}
	if xp := tr.Snapshot().Profile.XP; xp != constants.XPCompleteTodo {
		t.Errorf("xp = %d, want %d", xp, constants.XPCompleteTodo)
	}
	tr.DeleteTodo(date, item.ID)
	if e, _ := tr.Snapshot().Entry(date); len(e.Todos) != 0 {
		t.Errorf("todos = %+v", e.Todos)
	}
}

func TestHabits_XP(t *testing.T) {
	tr, _ := newTracker(t, storage.NewMemoryStore())
	date := tr.Today()

	if !tr.ToggleHabitStatus(date, "h3") {
		t.Error("expected gym to be marked")
	}
	tr.SetHabitStatus(date, "h3", true)
	tr.ToggleHabitStatus(date, "h1")
	if xp := tr.Snapshot().Profile.XP; xp != constants.XPPositiveHabit {
		t.Errorf("xp = %d, want %d", xp, constants.XPPositiveHabit)
	}

	h := tr.AddHabit(models.HabitDef{Title: "Read", Icon: "📖"})
	if h.ID == "" || h.Type != models.HabitPositive {
		t.Errorf("habit = %+v", h)
	}
	if !tr.RemoveHabit(h.ID) || tr.RemoveHabit(h.ID) {
		t.Error("RemoveHabit should report existence")
	}
}

func TestSaveIsDebounced(t *testing.T) {
	store := storage.NewMemoryStore()
	tr, p := newTracker(t, store)

	tr.UpdateEntry(tr.Today(), state.EntryPatch{Rating: ptr(8)})
	tr.AddTransaction(models.Transaction{Amount: 80, Category: "Food"})
	tr.AddGoal(models.Goal{Title: "Run a marathon"})

	if !p.Pending() {
		t.Fatal("expected a pending save")
	}
	if stored(t, store) != nil {
		t.Fatal("state written before the debounce window elapsed")
	}
	if err := tr.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, _ := newTracker(t, store)
	s := reopened.Snapshot()
	if len(s.Transactions) != 1 || len(s.Goals) != 1 || s.Entries[tr.Today()].Rating != 8 {
		t.Errorf("reloaded state = %+v", s)
	}
}

func TestAddTransaction_StampsNow(t *testing.T) {
	tr, _ := newTracker(t, storage.NewMemoryStore())
	txn := tr.AddTransaction(models.Transaction{Amount: 20, Category: "Tea"})
	if !txn.Timestamp.Equal(now) || txn.Type != models.TransactionExpense || txn.ID == "" {
		t.Errorf("txn = %+v", txn)
	}
	older := tr.AddTransaction(models.Transaction{Amount: 5, Category: "Tea", Timestamp: now.Add(-time.Hour)})
	if got := tr.Snapshot().Transactions; got[0].ID != older.ID {
		t.Error("transactions should be most recent insert first")
	}
}

func TestGoals(t *testing.T) {
	tr, _ := newTracker(t, storage.NewMemoryStore())
	g := tr.AddGoal(models.Goal{Title: "Ship", Progress: 70})
	if g.Progress != 0 || g.Completed {
		t.Errorf("goal = %+v", g)
	}
	got, ok := tr.UpdateGoal(g.ID, state.GoalPatch{Progress: ptr(40)})
	if !ok || got.Progress != 40 {
		t.Errorf("goal = %+v", got)
	}
	if got, _ := tr.ToggleGoal(g.ID); !got.Completed || got.Progress != 40 {
		t.Errorf("goal = %+v", got)
	}
	if _, ok := tr.UpdateGoal("nope", state.GoalPatch{Progress: ptr(1)}); ok {
		t.Error("unknown goal should not exist")
	}
	tr.DeleteGoal(g.ID)
	if len(tr.Snapshot().Goals) != 0 {
		t.Error("goal not deleted")
	}
}

func TestProfileAndCategories(t *testing.T) {
	tr, _ := newTracker(t, storage.NewMemoryStore())
	p := tr.CompleteOnboarding(state.Onboarding{Name: "Asha", Intents: []string{"Money"}, DailyBudget: 300})
	if !p.IsOnboarded || p.Name != "Asha" || p.DailyBudget != 300 {
		t.Errorf("profile = %+v", p)
	}
	p = tr.UpdateProfile(state.ProfilePatch{Name: ptr("Asha R")})
	if p.Name != "Asha R" || p.DailyBudget != 300 {
		t.Errorf("profile = %+v", p)
	}
	if p = tr.AwardXP(150); p.Level != 2 || p.XP != 50 {
		t.Errorf("level/xp = %d/%d", p.Level, p.XP)
	}

	c, ok := tr.AddCategory(models.CategoryDef{Label: "Books", Price: 300})
	if !ok || c.Icon != "📦" {
		t.Errorf("category = %+v", c)
	}
	if _, ok := tr.AddCategory(models.CategoryDef{Label: "Free", Price: 0}); ok {
		t.Error("expected zero price to be refused")
	}
	c.Price = 250
	tr.UpdateCategory(c)
	tr.SetPriceOverride("c2", 99)
	tr.DeleteCategory("c1")

	prof := tr.Snapshot().Profile
	if len(prof.CustomCategories) != 4 || prof.HabitOverrides["c2"] != 99 {
		t.Errorf("profile = %+v", prof)
	}
	if got, _ := prof.Category(c.ID); got.Price != 250 {
		t.Errorf("category = %+v", got)
	}
}

func TestImport_RejectedLeavesStateUntouched(t *testing.T) {
	big := strings.Repeat("x", backup.MaxImportBytes)
	tests := []struct {
		name    string
		raw     any
		wantErr error
	}{
		{"missing profile", map[string]any{"foo": 1.0}, backup.ErrInvalidStructure},
		{"not an object", []any{1.0}, backup.ErrInvalidStructure},
		{"too large", map[string]any{"profile": map[string]any{"name": big}}, backup.ErrTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := storage.NewMemoryStore()
			tr, p := newTracker(t, store)
			tr.UpdateEntry(tr.Today(), state.EntryPatch{Rating: ptr(6)})
			if err := tr.Flush(); err != nil {
				t.Fatal(err)
			}
			before := string(stored(t, store))
			live := tr.Snapshot()

			_, err := tr.Import(tt.raw)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Import() error = %v, want %v", err, tt.wantErr)
			}
			if got := tr.Snapshot(); got.Entries[tr.Today()].Rating != 6 || got.Profile.XP != live.Profile.XP {
				t.Errorf("live state changed: %+v", got)
			}
			if string(stored(t, store)) != before {
				t.Error("persisted state changed")
			}
			if p.Suspended() {
				t.Error("saves still suspended after import")
			}
		})
	}
}

func TestImport_ReplacesAndPersists(t *testing.T) {
	store := storage.NewMemoryStore()
	tr, p := newTracker(t, store)
	tr.AddGoal(models.Goal{Title: "old"})

	raw := map[string]any{
		"profile": map[string]any{"name": "Imported", "xp": 20.0, "level": 3.0},
		"goals":   []any{map[string]any{"id": "g7", "title": "New", "progress": 10.0}},
	}
	s, err := tr.Import(raw)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if !s.Profile.IsOnboarded || s.Profile.Name != "Imported" || s.Profile.Level != 3 {
		t.Errorf("profile = %+v", s.Profile)
	}
	if got := tr.Snapshot(); len(got.Goals) != 1 || got.Goals[0].ID != "g7" {
		t.Errorf("live goals = %+v", got.Goals)
	}
	if p.Pending() {
		t.Error("stale pending save survived the import")
	}
	reopened, _ := newTracker(t, store)
	if reopened.Snapshot().Profile.Name != "Imported" {
		t.Error("import not persisted")
	}
}

func TestImport_NotOverwrittenByDebouncedSave(t *testing.T) {
	store := storage.NewMemoryStore()
	p := persist.New(store,
		persist.WithClock(func() time.Time { return now }),
		persist.WithLocation(ist),
		persist.WithDebounce(time.Millisecond),
	)
	tr := Open(p)
	txns := make([]any, 0, 500)
	for i := range 500 {
		txns = append(txns, map[string]any{
			"id": fmt.Sprintf("x%d", i), "timestamp": "2026-03-13T10:00:00.000Z",
			"amount": float64(i), "category": "Food", "note": strings.Repeat("n", 200),
		})
	}
	raw := map[string]any{"profile": map[string]any{"name": "imported"}, "transactions": txns}
	for range 20 {
		tr.AddGoal(models.Goal{Title: "racing"})
		if _, err := tr.Import(raw); err != nil {
			t.Fatalf("Import() error = %v", err)
		}
		time.Sleep(5 * time.Millisecond)
		got, err := persist.Decode(stored(t, store), now)
		if err != nil {
			t.Fatalf("Decode() error = %v", err)
		}
		if got.Profile.Name != "imported" || len(got.Goals) != 0 {
			t.Fatalf("persisted %q with %d goals, want the imported state", got.Profile.Name, len(got.Goals))
		}
	}
}

func TestImport_ConcurrentMutationIsPersisted(t *testing.T) {
	store := storage.NewMemoryStore()
	tr, _ := newTracker(t, store)
	raw := map[string]any{"profile": map[string]any{"name": "Asha"}}

	for range 20 {
		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			tr.AddTransaction(models.Transaction{Amount: 10, Category: "Food"})
		}()
		if _, err := tr.Import(raw); err != nil {
			t.Fatalf("Import() error = %v", err)
		}
		wg.Wait()
		if err := tr.Flush(); err != nil {
			t.Fatal(err)
		}

		got, err := persist.Decode(stored(t, store), now)
		if err != nil {
			t.Fatalf("Decode() error = %v", err)
		}
		if live := tr.Snapshot(); len(got.Transactions) != len(live.Transactions) {
			t.Fatalf("persisted %d transactions, live state has %d", len(got.Transactions), len(live.Transactions))
		}
	}
}

func TestImportFile_RejectsOtherFileTypes(t *testing.T) {
	tr, _ := newTracker(t, storage.NewMemoryStore())
	_, err := tr.ImportFile("report.pdf", []byte(`{"profile":{}}`))
	if !errors.Is(err, backup.ErrUnsupportedFileType) {
		t.Fatalf("ImportFile() error = %v", err)
	}
	_, err = tr.ImportFile("backup.json", []byte(`{"profile":`))
	if !errors.Is(err, backup.ErrUnparseable) {
		t.Fatalf("ImportFile() error = %v", err)
	}
}

func TestImport_WriteFailure(t *testing.T) {
	store := storage.NewMemoryStore()
	tr, _ := newTracker(t, store)
	store.FailWrites(errors.New("quota exceeded"))

	s, err := tr.Import(map[string]any{"profile": map[string]any{"name": "Asha"}})
	if err == nil || !strings.Contains(err.Error(), "quota exceeded") {
		t.Fatalf("Import() error = %v", err)
	}
	if s.Profile.Name != "Asha" || tr.Snapshot().Profile.Name != "Asha" {
		t.Error("live state should hold the imported state")
	}
}

func TestExportRoundTrip(t *testing.T) {
	tr, _ := newTracker(t, storage.NewMemoryStore())
	tr.CompleteOnboarding(state.Onboarding{Name: "Asha"})
	tr.AddTransaction(models.Transaction{Amount: 80, Category: "Food"})

	data, err := tr.Export()
	if err != nil {
		t.Fatal(err)
	}
	other, _ := newTracker(t, storage.NewMemoryStore())
	s, err := other.ImportFile(backup.BackupFileName(now), data)
	if err != nil {
		t.Fatalf("ImportFile() error = %v", err)
	}
	if s.Profile.Name != "Asha" || len(s.Transactions) != 1 || s.Transactions[0].Amount != 80 {
		t.Errorf("imported = %+v", s)
	}
}

func TestBackupAndRestore(t *testing.T) {
	tr, _ := newTracker(t, storage.NewMemoryStore())
	m := backup.NewManager(t.TempDir(), 5)

	tr.CompleteOnboarding(state.Onboarding{Name: "Before"})
	path, err := tr.Backup(m)
	if err != nil {
		t.Fatalf("Backup() error = %v", err)
	}
	tr.UpdateProfile(state.ProfilePatch{Name: ptr("After")})

	safety, err := tr.Restore(m, path)
	if err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	if tr.Snapshot().Profile.Name != "Before" {
		t.Errorf("name = %q", tr.Snapshot().Profile.Name)
	}
	data, err := os.ReadFile(safety)
	if err != nil {
		t.Fatalf("safety copy missing: %v", err)
	}
	if !strings.Contains(string(data), `"After"`) {
		t.Error("safety copy should hold the state before restore")
	}

	if _, err := tr.Restore(m, "jagruk-19990101-0000.json"); err == nil {
		t.Error("expected error for unknown backup")
	}
}

func TestReset(t *testing.T) {
	store := storage.NewMemoryStore()
	tr, _ := newTracker(t, store)
	tr.CompleteOnboarding(state.Onboarding{Name: "Asha"})
	if err := tr.SetTheme(constants.ThemeLight); err != nil {
		t.Fatal(err)
	}
	if err := tr.Flush(); err != nil {
		t.Fatal(err)
	}

	if err := tr.Reset(); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	if tr.Snapshot().Profile.IsOnboarded {
		t.Error("state not reset")
	}
	if stored(t, store) != nil {
		t.Error("persisted state not cleared")
	}
	if tr.Theme() != constants.ThemeDark {
		t.Error("theme not cleared")
	}
}

func TestTheme(t *testing.T) {
	tr, _ := newTracker(t, storage.NewMemoryStore())
	if tr.Theme() != constants.ThemeDark {
		t.Errorf("default theme = %s", tr.Theme())
	}
	if err := tr.SetTheme(constants.ThemeLight); err != nil {
		t.Fatal(err)
	}
	if tr.Theme() != constants.ThemeLight {
		t.Errorf("theme = %s", tr.Theme())
	}
	if err := tr.SetTheme("sepia"); err == nil {
		t.Error("expected error for unknown theme")
	}
}

func TestConcurrentMutations(t *testing.T) {
	tr, _ := newTracker(t, storage.NewMemoryStore())
	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tr.AddTransaction(models.Transaction{Amount: float64(i), Category: "Food"})
			_ = tr.Snapshot()
		}()
	}
	wg.Wait()
	if n := len(tr.Snapshot().Transactions); n != 50 {
		t.Errorf("transactions = %d, want 50", n)
	}
}
