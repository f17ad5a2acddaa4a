package state

import (
	"slices"
	"strings"

	"github.com/julianstephens/jagruk/internal/models"
)

// EntryPatch is a partial DailyEntry. Nil fields are left untouched.
type EntryPatch struct {
	Rating       *int
	Energy       *int
	Intention    *string
	Memory       *string
	Todos        *[]models.ToDoItem
	PromptAnswer *string
	Mood         *models.Mood
	MoodReasons  *[]string
	SongTitle    *string
	SongArtist   *string
	SongReason   *string
	HabitStatus  *map[string]bool
	Gratitude    *string
	IsLocked     *bool
}

// Then returns a patch equal to applying p and then next.
func (p EntryPatch) Then(next EntryPatch) EntryPatch {
	pick(&p.Rating, next.Rating)
	pick(&p.Energy, next.Energy)
	pick(&p.Intention, next.Intention)
	pick(&p.Memory, next.Memory)
	pick(&p.Todos, next.Todos)
	pick(&p.PromptAnswer, next.PromptAnswer)
	pick(&p.Mood, next.Mood)
	pick(&p.MoodReasons, next.MoodReasons)
	pick(&p.SongTitle, next.SongTitle)
	pick(&p.SongArtist, next.SongArtist)
	pick(&p.SongReason, next.SongReason)
	pick(&p.HabitStatus, next.HabitStatus)
	pick(&p.Gratitude, next.Gratitude)
	pick(&p.IsLocked, next.IsLocked)
	return p
}

func pick[T any](dst **T, v *T) {
	if v != nil {
		*dst = v
	}
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// Apply merges p over e. Values are stored as given; ratings are not clamped.
func (p EntryPatch) Apply(e models.DailyEntry) models.DailyEntry {
	set(&e.Rating, p.Rating)
	set(&e.Energy, p.Energy)
	set(&e.Intention, p.Intention)
	set(&e.Memory, p.Memory)
	if p.Todos != nil {
		e.Todos = slices.Clone(*p.Todos)
		if e.Todos == nil {
			e.Todos = []models.ToDoItem{}
		}
	}
	set(&e.PromptAnswer, p.PromptAnswer)
	set(&e.Mood, p.Mood)
	if p.MoodReasons != nil {
		e.MoodReasons = slices.Clone(*p.MoodReasons)
	}
	set(&e.SongTitle, p.SongTitle)
	set(&e.SongArtist, p.SongArtist)
	set(&e.SongReason, p.SongReason)
	if p.HabitStatus != nil {
		e.HabitStatus = make(map[string]bool, len(*p.HabitStatus))
		for k, v := range *p.HabitStatus {
			e.HabitStatus[k] = v
		}
	}
	set(&e.Gratitude, p.Gratitude)
	set(&e.IsLocked, p.IsLocked)
	return e
}

// UpdateEntry fetches or creates the entry for date and merges patch over it.
func UpdateEntry(s models.AppState, date string, patch EntryPatch) models.AppState {
	return putEntry(s, patch.Apply(entryFor(s, date)))
}

// SealEntry locks a day. There is no unseal.
func SealEntry(s models.AppState, date string) models.AppState {
	locked := true
	return UpdateEntry(s, date, EntryPatch{IsLocked: &locked})
}

// AddTodo appends a todo to date's list. An empty priority becomes Medium.
func AddTodo(s models.AppState, date string, item models.ToDoItem) (models.AppState, models.ToDoItem) {
	item.Text = strings.TrimSpace(item.Text)
	if item.ID == "" {
		item.ID = newID()
	}
	if item.Priority == "" {
		item.Priority = models.PriorityMedium
	}
	e := entryFor(s, date)
	e.Todos = append(e.Todos, item)
	return putEntry(s, e), item
}

// ToggleTodo flips a todo's completion and reports its new value.
func ToggleTodo(s models.AppState, date, id string) (models.AppState, bool) {
	e := entryFor(s, date)
	for i := range e.Todos {
		if e.Todos[i].ID == id {
			e.Todos[i].Completed = !e.Todos[i].Completed
			return putEntry(s, e), e.Todos[i].Completed
		}
	}
	return s, false
}

// DeleteTodo removes a todo; unknown ids leave the state unchanged.
func DeleteTodo(s models.AppState, date, id string) models.AppState {
	e, ok := s.Entry(date)
	if !ok {
		return s
	}
	if _, found := e.Todo(id); !found {
		return s
	}
	e = entryFor(s, date)
	e.Todos = slices.DeleteFunc(e.Todos, func(t models.ToDoItem) bool { return t.ID == id })
	return putEntry(s, e)
}

// SetHabitStatus records whether a habit occurred on date.
func SetHabitStatus(s models.AppState, date, habitID string, occurred bool) models.AppState {
	e := entryFor(s, date)
	if e.HabitStatus == nil {
		e.HabitStatus = make(map[string]bool)
	}
	e.HabitStatus[habitID] = occurred
	return putEntry(s, e)
}

// ToggleHabitStatus flips a habit's status for date. Absent counts as false.
func ToggleHabitStatus(s models.AppState, date, habitID string) (models.AppState, bool) {
	e, _ := s.Entry(date)
	next := !e.HabitStatus[habitID]
	return SetHabitStatus(s, date, habitID, next), next
}
