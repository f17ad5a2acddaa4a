// Package tracker owns the live AppState. Every change goes through a state function
// under the tracker's lock and is followed by a debounced save.
package tracker

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/julianstephens/jagruk/internal/backup"
	"github.com/julianstephens/jagruk/internal/constants"
	"github.com/julianstephens/jagruk/internal/logger"
	"github.com/julianstephens/jagruk/internal/models"
	"github.com/julianstephens/jagruk/internal/persist"
	"github.com/julianstephens/jagruk/internal/state"
)

type Tracker struct {
	mu sync.RWMutex
	p  *persist.Persister
	s  models.AppState
}

// Open loads the persisted state. Load never fails; see persist.Persister.Load.
func Open(p *persist.Persister) *Tracker {
	return &Tracker{p: p, s: p.Load()}
}

// Now is the current instant in the viewer's location.
func (t *Tracker) Now() time.Time {
	return t.p.Now()
}

// Today is the viewer's current calendar date.
func (t *Tracker) Today() string {
	return models.Today(t.Now())
}

// Snapshot returns the current state with CurrentDate set to today. Callers must not
// modify the maps or slices it shares with the tracker.
func (t *Tracker) Snapshot() models.AppState {
	t.mu.RLock()
	s := t.s
	t.mu.RUnlock()
	s.CurrentDate = t.Today()
	return s
}

// mutate applies fn under the write lock and schedules a save.
func (t *Tracker) mutate(fn func(models.AppState) models.AppState) models.AppState {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.s = fn(t.s)
	t.p.Save(t.s)
	return t.s
}

// UpdateEntry merges patch into date's entry. Rating a day for the first time and
// sealing it earn XP.
func (t *Tracker) UpdateEntry(date string, patch state.EntryPatch) models.DailyEntry {
	s := t.mutate(func(s models.AppState) models.AppState {
		before, _ := s.Entry(date)
		s = state.UpdateEntry(s, date, patch)
		after, _ := s.Entry(date)
		return state.AwardXP(s, entryXP(before, after))
	})
	e, _ := s.Entry(date)
	return e
}

// UpdateEntryUnlessSealed is UpdateEntry for a day that is not sealed. The check
// and the update happen under one lock; ok is false and nothing changes when the
// day is already sealed.
func (t *Tracker) UpdateEntryUnlessSealed(date string, patch state.EntryPatch) (e models.DailyEntry, ok bool) {
	s := t.mutate(func(s models.AppState) models.AppState {
		before, _ := s.Entry(date)
		if before.IsLocked {
			return s
		}
		ok = true
		s = state.UpdateEntry(s, date, patch)
		after, _ := s.Entry(date)
		return state.AwardXP(s, entryXP(before, after))
	})
	e, _ = s.Entry(date)
	return e, ok
}

func entryXP(before, after models.DailyEntry) int {
	xp := 0
	if before.Rating == 0 && after.Rating > 0 {
		xp += constants.XPRateDay
	}
	if !before.IsLocked && after.IsLocked {
		xp += constants.XPSealDay
	}
	return xp
}

// SealEntry locks a day.
func (t *Tracker) SealEntry(date string) models.DailyEntry {
	locked := true
	return t.UpdateEntry(date, state.EntryPatch{IsLocked: &locked})
}

func (t *Tracker) AddTodo(date string, item models.ToDoItem) models.ToDoItem {
	var added models.ToDoItem
	t.mutate(func(s models.AppState) models.AppState {
		s, added = state.AddTodo(s, date, item)
		return s
	})
	return added
}

// ToggleTodo flips a todo and reports whether it is now completed. Completing one earns XP.
func (t *Tracker) ToggleTodo(date, id string) bool {
	var done bool
	t.mutate(func(s models.AppState) models.AppState {
		s, done = state.ToggleTodo(s, date, id)
		if done {
			s = state.AwardXP(s, constants.XPCompleteTodo)
		}
		return s
	})
	return done
}

func (t *Tracker) DeleteTodo(date, id string) {
	t.mutate(func(s models.AppState) models.AppState {
		return state.DeleteTodo(s, date, id)
	})
}

// SetHabitStatus records a habit for date. Marking a positive habit done earns XP.
func (t *Tracker) SetHabitStatus(date, habitID string, occurred bool) {
	t.mutate(func(s models.AppState) models.AppState {
		before, _ := s.Entry(date)
		s = state.SetHabitStatus(s, date, habitID, occurred)
		return state.AwardXP(s, habitXP(s.Profile, habitID, before.HabitStatus[habitID], occurred))
	})
}

// ToggleHabitStatus flips a habit for date and reports the new value.
func (t *Tracker) ToggleHabitStatus(date, habitID string) bool {
	var occurred bool
	t.mutate(func(s models.AppState) models.AppState {
		s, occurred = state.ToggleHabitStatus(s, date, habitID)
		return state.AwardXP(s, habitXP(s.Profile, habitID, !occurred, occurred))
	})
	return occurred
}

func habitXP(p models.Profile, habitID string, before, after bool) int {
	h, ok := p.Habit(habitID)
	if ok && h.Type == models.HabitPositive && !before && after {
		return constants.XPPositiveHabit
	}
	return 0
}

// AddTransaction stamps the current instant when txn has no timestamp.
func (t *Tracker) AddTransaction(txn models.Transaction) models.Transaction {
	var added models.Transaction
	t.mutate(func(s models.AppState) models.AppState {
		s, added = state.AddTransaction(s, txn, t.p.Now())
		return s
	})
	return added
}

func (t *Tracker) AddGoal(g models.Goal) models.Goal {
	var added models.Goal
	t.mutate(func(s models.AppState) models.AppState {
		s, added = state.AddGoal(s, g)
		return s
	})
	return added
}

// UpdateGoal reports whether the goal exists. Unknown ids are a no-op.
func (t *Tracker) UpdateGoal(id string, patch state.GoalPatch) (models.Goal, bool) {
	s := t.mutate(func(s models.AppState) models.AppState {
		return state.UpdateGoal(s, id, patch)
	})
	return s.Goal(id)
}

func (t *Tracker) ToggleGoal(id string) (models.Goal, bool) {
	s := t.mutate(func(s models.AppState) models.AppState {
		return state.ToggleGoalCompletion(s, id)
	})
	return s.Goal(id)
}

func (t *Tracker) DeleteGoal(id string) {
	t.mutate(func(s models.AppState) models.AppState {
		return state.DeleteGoal(s, id)
	})
}

func (t *Tracker) UpdateProfile(patch state.ProfilePatch) models.Profile {
	return t.mutate(func(s models.AppState) models.AppState {
		return state.UpdateProfile(s, patch)
	}).Profile
}

func (t *Tracker) CompleteOnboarding(o state.Onboarding) models.Profile {
	return t.mutate(func(s models.AppState) models.AppState {
		return state.CompleteOnboarding(s, o, t.p.Now())
	}).Profile
}

func (t *Tracker) AddHabit(h models.HabitDef) models.HabitDef {
	var added models.HabitDef
	t.mutate(func(s models.AppState) models.AppState {
		s, added = state.AddHabit(s, h)
		return s
	})
	return added
}

// RemoveHabit reports whether the habit existed.
func (t *Tracker) RemoveHabit(id string) bool {
	var found bool
	t.mutate(func(s models.AppState) models.AppState {
		_, found = s.Profile.Habit(id)
		return state.RemoveHabit(s, id)
	})
	return found
}

func (t *Tracker) AwardXP(amount int) models.Profile {
	return t.mutate(func(s models.AppState) models.AppState {
		return state.AwardXP(s, amount)
	}).Profile
}

// AddCategory reports false when the label is blank or the price is not positive.
func (t *Tracker) AddCategory(c models.CategoryDef) (models.CategoryDef, bool) {
	var (
		added models.CategoryDef
		ok    bool
	)
	t.mutate(func(s models.AppState) models.AppState {
		s, added, ok = state.AddCategory(s, c)
		return s
	})
	return added, ok
}

func (t *Tracker) UpdateCategory(c models.CategoryDef) {
	t.mutate(func(s models.AppState) models.AppState {
		return state.UpdateCategory(s, c)
	})
}

func (t *Tracker) DeleteCategory(id string) {
	t.mutate(func(s models.AppState) models.AppState {
		return state.DeleteCategory(s, id)
	})
}

func (t *Tracker) SetPriceOverride(categoryID string, price float64) {
	t.mutate(func(s models.AppState) models.AppState {
		return state.SetHabitPriceOverride(s, categoryID, price)
	})
}

// Import validates raw and replaces the whole live state with the cleaned result.
// Saves are suspended for the duration; a rejected import leaves everything untouched.
// When the replacement cannot be persisted the live state is still replaced and the
// write error is returned.
func (t *Tracker) Import(raw any) (models.AppState, error) {
	t.p.Suspend()
	cleaned, err := backup.Clean(raw, t.p.Now())
	if err != nil {
		t.p.Resume()
		logRejected(err)
		return models.AppState{}, err
	}

	// Mutations wait on mu until the import is on disk and saves are live again.
	t.mu.Lock()
	t.s = cleaned
	werr := t.p.WriteNow(cleaned)
	t.p.Resume()
	t.mu.Unlock()

	if werr != nil {
		return cleaned, fmt.Errorf("imported state could not be saved: %w", werr)
	}
	logger.Info("state imported", "entries", len(cleaned.Entries), "transactions", len(cleaned.Transactions), "goals", len(cleaned.Goals))
	return cleaned, nil
}

// ImportFile decodes an uploaded backup and imports it.
func (t *Tracker) ImportFile(name string, data []byte) (models.AppState, error) {
	raw, err := backup.DecodeFile(name, data)
	if err != nil {
		logRejected(err)
		return models.AppState{}, err
	}
	return t.Import(raw)
}

func logRejected(err error) {
	var ie *backup.ImportError
	if errors.As(err, &ie) {
		logger.Warn("import rejected", "kind", ie.Kind, "error", err)
	}
}

// Export serializes the current state as a backup document.
func (t *Tracker) Export() ([]byte, error) {
	return backup.ExportJSON(t.Snapshot())
}

// Backup writes a local snapshot through m.
func (t *Tracker) Backup(m *backup.Manager) (string, error) {
	data, err := t.Export()
	if err != nil {
		return "", err
	}
	return m.Create(data)
}

// Restore imports a local snapshot after keeping a safety copy of the current state.
// It returns the path of the safety copy.
func (t *Tracker) Restore(m *backup.Manager, name string) (string, error) {
	path, err := m.Resolve(name)
	if err != nil {
		return "", err
	}
	raw, err := m.Read(path)
	if err != nil {
		return "", err
	}
	// Validate before touching anything on disk.
	if _, err := backup.Clean(raw, t.Now()); err != nil {
		return "", fmt.Errorf("backup %s is invalid: %w", filepath.Base(path), err)
	}

	current, err := t.Export()
	if err != nil {
		return "", err
	}
	safety, err := m.SafetyCopy(current)
	if err != nil {
		return "", fmt.Errorf("failed to back up current state before restore: %w", err)
	}
	if _, err := t.Import(raw); err != nil {
		return safety, err
	}
	return safety, nil
}

// Reset erases all persisted data and returns to the first-launch state.
func (t *Tracker) Reset() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.p.Clear(); err != nil {
		return err
	}
	t.s = models.DefaultState(t.p.Now())
	logger.Info("factory reset complete")
	return nil
}

func (t *Tracker) Theme() constants.Theme {
	return t.p.LoadTheme()
}

func (t *Tracker) SetTheme(theme constants.Theme) error {
	return t.p.SaveTheme(theme)
}

// Flush writes any pending save now.
func (t *Tracker) Flush() error {
	return t.p.Flush()
}

// Close flushes pending work. The underlying store is closed by its owner.
func (t *Tracker) Close() error {
	return t.Flush()
}
