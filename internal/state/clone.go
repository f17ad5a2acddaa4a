package state

import (
	"maps"
	"slices"

	"github.com/google/uuid"

	"github.com/julianstephens/jagruk/internal/models"
)

// newID generates entity ids. Tests replace it for stable output.
var newID = uuid.NewString

func withEntries(s models.AppState) models.AppState {
	s.Entries = maps.Clone(s.Entries)
	if s.Entries == nil {
		s.Entries = make(map[string]models.DailyEntry)
	}
	return s
}

// entryFor returns a copy of the entry for date that is safe to modify.
func entryFor(s models.AppState, date string) models.DailyEntry {
	e, _ := s.Entry(date)
	e.Date = date
	e.Todos = slices.Clone(e.Todos)
	if e.Todos == nil {
		e.Todos = []models.ToDoItem{}
	}
	e.HabitStatus = maps.Clone(e.HabitStatus)
	return e
}

func putEntry(s models.AppState, e models.DailyEntry) models.AppState {
	s = withEntries(s)
	s.Entries[e.Date] = e
	return s
}
