package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/julianstephens/jagruk/internal/constants"
)

// ISOTimestampFormat matches the millisecond ISO-8601 timestamps of exported backups.
const ISOTimestampFormat = "2006-01-02T15:04:05.000Z07:00"

// AppState is the aggregate root. It is exclusively owned by the tracker; every change goes
// through the state package.
type AppState struct {
	Profile      Profile               `json:"profile"`
	Entries      map[string]DailyEntry `json:"entries"`
	Transactions []Transaction         `json:"transactions"` // most recent first
	Goals        []Goal                `json:"goals"`
	// CurrentDate is recomputed to today on every load; never trust the persisted value.
	CurrentDate string `json:"currentDate"`
}

// Entry returns the entry for a date, or the lazily-created default when none exists.
func (s AppState) Entry(date string) (DailyEntry, bool) {
	if e, ok := s.Entries[date]; ok {
		return e, true
	}
	return NewEntry(date), false
}

// Goal returns the goal with the given id.
func (s AppState) Goal(id string) (Goal, bool) {
	for _, g := range s.Goals {
		if g.ID == id {
			return g, true
		}
	}
	return Goal{}, false
}

// Document converts the state to a generic JSON document.
func (s AppState) Document() (map[string]any, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize state: %w", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to convert state to document: %w", err)
	}
	return doc, nil
}

// Normalize fills nil collections, enforces level >= 1 and rolls excess XP into levels.
func (s *AppState) Normalize() {
	if s.Entries == nil {
		s.Entries = make(map[string]DailyEntry)
	}
	for date, e := range s.Entries {
		changed := false
		if e.Todos == nil {
			e.Todos = []ToDoItem{}
			changed = true
		}
		if e.Date == "" {
			e.Date = date
			changed = true
		}
		if changed {
			s.Entries[date] = e
		}
	}
	if s.Transactions == nil {
		s.Transactions = []Transaction{}
	}
	if s.Goals == nil {
		s.Goals = []Goal{}
	}

	p := &s.Profile
	if p.Intents == nil {
		p.Intents = []string{}
	}
	if p.Habits == nil {
		p.Habits = DefaultHabits()
	}
	if p.HabitLimits == nil {
		p.HabitLimits = make(map[string]float64)
	}
	if p.HabitOverrides == nil {
		p.HabitOverrides = make(map[string]float64)
	}
	p.RollOverXP()
}

// Today formats now as a calendar date key.
func Today(now time.Time) string {
	return now.Format(constants.DateFormat)
}
