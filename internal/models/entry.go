package models

type Mood string

const (
	MoodHappy   Mood = "happy"
	MoodGood    Mood = "good"
	MoodNeutral Mood = "neutral"
	MoodSad     Mood = "sad"
	MoodAngry   Mood = "angry"
)

// Moods lists the valid moods in display order.
var Moods = []Mood{MoodHappy, MoodGood, MoodNeutral, MoodSad, MoodAngry}

type TaskPriority string

const (
	PriorityCritical TaskPriority = "Critical"
	PriorityHigh     TaskPriority = "High"
	PriorityMedium   TaskPriority = "Medium"
	PriorityLow      TaskPriority = "Low"
)

type ToDoItem struct {
	ID           string       `json:"id"`
	Text         string       `json:"text"`
	Completed    bool         `json:"completed"`
	Priority     TaskPriority `json:"priority,omitempty"`
	Category     string       `json:"category,omitempty"`
	LinkedGoalID string       `json:"linkedGoalId,omitempty"`
}

// DailyEntry is the journal record for one calendar day, keyed by YYYY-MM-DD.
type DailyEntry struct {
	Date   string `json:"date"`
	Rating int    `json:"rating"`           // 0 = unset, else 1-10
	Energy int    `json:"energy,omitempty"` // 0 = unset, else 1-5

	Intention    string     `json:"intention,omitempty"`
	Memory       string     `json:"memory,omitempty"`
	Todos        []ToDoItem `json:"todos"`
	PromptAnswer string     `json:"promptAnswer,omitempty"`

	Mood        Mood     `json:"mood,omitempty"`
	MoodReasons []string `json:"moodReasons,omitempty"`
	SongTitle   string   `json:"songTitle,omitempty"`
	SongArtist  string   `json:"songArtist,omitempty"`
	SongReason  string   `json:"songReason,omitempty"`

	HabitStatus map[string]bool `json:"habitStatus,omitempty"`
	Gratitude   string          `json:"gratitude,omitempty"`

	// IsLocked seals the day. Read-only enforcement belongs to the presentation layer.
	IsLocked bool `json:"isLocked"`
}

// NewEntry returns the lazily-created default entry for a date.
func NewEntry(date string) DailyEntry {
	return DailyEntry{
		Date:     date,
		Todos:    []ToDoItem{},
		IsLocked: false,
		Rating:   0,
	}
}

// Todo returns the todo item with the given id.
func (e DailyEntry) Todo(id string) (ToDoItem, bool) {
	for _, t := range e.Todos {
		if t.ID == id {
			return t, true
		}
	}
	return ToDoItem{}, false
}
