package backup

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/jagruk/internal/constants"
	"github.com/julianstephens/jagruk/internal/models"
	"github.com/julianstephens/jagruk/internal/utils"
)

// MaxImportBytes is the ceiling on the serialized cleaned state.
const MaxImportBytes = constants.MaxImportBytes

// Read builds a state from a document merged over the default state for now.
// Every field is read explicitly, so a record that cannot be read is dropped
// without discarding the rest of the document.
func Read(doc map[string]any, now time.Time) (models.AppState, error) {
	def := models.DefaultState(now)
	base, err := def.Document()
	if err != nil {
		return models.AppState{}, err
	}
	merged := models.MergeDocument(base, doc)
	profile, _ := merged["profile"].(map[string]any)

	s := models.AppState{
		Profile:      readProfile(profile, def.Profile),
		Entries:      readEntries(merged["entries"]),
		Transactions: readTransactions(merged["transactions"]),
		Goals:        readGoals(merged["goals"]),
	}
	s.Normalize()
	s.CurrentDate = models.Today(now)
	return s, nil
}

// Clean validates an untrusted document and builds the state that will replace the
// live one. The document is merged over the default state for now, then every field
// is read explicitly; records that cannot be read are dropped.
func Clean(raw any, now time.Time) (models.AppState, error) {
	doc, ok := raw.(map[string]any)
	if !ok {
		return models.AppState{}, importErr(InvalidStructure, fmt.Errorf("top level is %s, not an object", kindOf(raw)))
	}
	if _, ok := doc["profile"].(map[string]any); !ok {
		return models.AppState{}, importErr(InvalidStructure, fmt.Errorf("missing profile object"))
	}

	s, err := Read(doc, now)
	if err != nil {
		return models.AppState{}, err
	}
	// A backup implies the user already onboarded.
	s.Profile.IsOnboarded = true

	size, err := encodedSize(s)
	if err != nil {
		return models.AppState{}, err
	}
	if size > MaxImportBytes {
		return models.AppState{}, importErr(TooLarge, fmt.Errorf("%d bytes exceeds the %d byte limit", size, MaxImportBytes))
	}
	return s, nil
}

func encodedSize(s models.AppState) (int, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize imported state: %w", err)
	}
	return len(data), nil
}

func readProfile(m map[string]any, def models.Profile) models.Profile {
	p := models.Profile{
		Name:            str(m, "name"),
		StartDate:       str(m, "startDate"),
		Intents:         stringList(m["intents"]),
		ReminderMorning: str(m, "reminderMorning"),
		IsOnboarded:     boolean(m, "isOnboarded"),
		XP:              max(integer(m, "xp"), 0),
		Level:           max(integer(m, "level"), 1),
		DailyBudget:     math.Max(number(m, "dailyBudget"), 0),
		HabitLimits:     floatMap(m["habitLimits"]),
		HabitOverrides:  floatMap(m["habitOverrides"]),
	}
	if p.StartDate == "" {
		p.StartDate = def.StartDate
	}
	if p.ReminderMorning == "" {
		p.ReminderMorning = def.ReminderMorning
	}
	switch mode := models.BudgetMode(str(m, "budgetMode")); mode {
	case models.BudgetNone, models.BudgetDaily, models.BudgetWeekly, models.BudgetMonthly:
		p.BudgetMode = mode
	}
	if list, ok := m["customCategories"].([]any); ok {
		for _, item := range list {
			if c, ok := readCategory(item); ok {
				p.CustomCategories = append(p.CustomCategories, c)
			}
		}
	}
	if list, ok := m["habits"].([]any); ok {
		p.Habits = []models.HabitDef{}
		for _, item := range list {
			if h, ok := readHabit(item); ok {
				p.Habits = append(p.Habits, h)
			}
		}
	} else {
		p.Habits = def.Habits
	}
	return p
}

func readCategory(v any) (models.CategoryDef, bool) {
	m, ok := v.(map[string]any)
	if !ok || str(m, "id") == "" || strings.TrimSpace(str(m, "label")) == "" {
		return models.CategoryDef{}, false
	}
	return models.CategoryDef{
		ID:    str(m, "id"),
		Label: str(m, "label"),
		Icon:  str(m, "icon"),
		Price: math.Max(number(m, "price"), 0),
		Color: str(m, "color"),
	}, true
}

func readHabit(v any) (models.HabitDef, bool) {
	m, ok := v.(map[string]any)
	if !ok || str(m, "id") == "" || str(m, "title") == "" {
		return models.HabitDef{}, false
	}
	h := models.HabitDef{ID: str(m, "id"), Title: str(m, "title"), Icon: str(m, "icon"), Type: models.HabitPositive}
	if models.HabitType(str(m, "type")) == models.HabitNegative {
		h.Type = models.HabitNegative
	}
	return h, true
}

func readEntries(v any) map[string]models.DailyEntry {
	out := make(map[string]models.DailyEntry)
	m, ok := v.(map[string]any)
	if !ok {
		return out
	}
	for date, raw := range m {
		em, ok := raw.(map[string]any)
		if !ok || !utils.ValidateDate(date) {
			continue
		}
		e := models.NewEntry(date)
		e.Rating = integer(em, "rating")
		e.Energy = integer(em, "energy")
		e.Intention = str(em, "intention")
		e.Memory = str(em, "memory")
		e.PromptAnswer = str(em, "promptAnswer")
		if mood := models.Mood(str(em, "mood")); slices.Contains(models.Moods, mood) {
			e.Mood = mood
		}
		e.MoodReasons = stringList(em["moodReasons"])
		if len(e.MoodReasons) == 0 {
			e.MoodReasons = nil
		}
		e.SongTitle = str(em, "songTitle")
		e.SongArtist = str(em, "songArtist")
		e.SongReason = str(em, "songReason")
		e.Gratitude = str(em, "gratitude")
		e.IsLocked = boolean(em, "isLocked")
		e.Todos = readTodos(em["todos"])
		if hs, ok := em["habitStatus"].(map[string]any); ok && len(hs) > 0 {
			e.HabitStatus = make(map[string]bool, len(hs))
			for id, val := range hs {
				b, _ := val.(bool)
				e.HabitStatus[id] = b
			}
		}
		out[date] = e
	}
	return out
}

func readTodos(v any) []models.ToDoItem {
	todos := []models.ToDoItem{}
	list, _ := v.([]any)
	for _, item := range list {
		m, ok := item.(map[string]any)
		if !ok || str(m, "text") == "" {
			continue
		}
		t := models.ToDoItem{
			ID:           str(m, "id"),
			Text:         str(m, "text"),
			Completed:    boolean(m, "completed"),
			Priority:     models.TaskPriority(str(m, "priority")),
			Category:     str(m, "category"),
			LinkedGoalID: str(m, "linkedGoalId"),
		}
		if t.ID == "" {
			t.ID = uuid.NewString()
		}
		switch t.Priority {
		case models.PriorityCritical, models.PriorityHigh, models.PriorityMedium, models.PriorityLow:
		default:
			t.Priority = models.PriorityMedium
		}
		todos = append(todos, t)
	}
	return todos
}

func readTransactions(v any) []models.Transaction {
	txns := []models.Transaction{}
	list, _ := v.([]any)
	for _, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		ts, err := utils.ParseTimestamp(str(m, "timestamp"))
		if err != nil {
			continue
		}
		amount := number(m, "amount")
		if amount < 0 || math.IsNaN(amount) {
			continue
		}
		t := models.Transaction{
			ID:           str(m, "id"),
			Timestamp:    ts,
			Amount:       amount,
			Type:         models.TransactionExpense,
			Category:     str(m, "category"),
			IsHabit:      boolean(m, "isHabit"),
			UnitQuantity: math.Max(number(m, "unitQuantity"), 0),
			UnitType:     models.UnitType(str(m, "unitType")),
			Mood:         models.Mood(str(m, "mood")),
			Note:         str(m, "note"),
		}
		if models.TransactionType(str(m, "type")) == models.TransactionIncome {
			t.Type = models.TransactionIncome
		}
		if t.ID == "" {
			t.ID = uuid.NewString()
		}
		txns = append(txns, t)
	}
	return txns
}

func readGoals(v any) []models.Goal {
	goals := []models.Goal{}
	list, _ := v.([]any)
	for _, item := range list {
		m, ok := item.(map[string]any)
		if !ok || str(m, "id") == "" {
			continue
		}
		g := models.Goal{
			ID:        str(m, "id"),
			Title:     str(m, "title"),
			Reason:    str(m, "reason"),
			Action:    str(m, "action"),
			Progress:  min(max(integer(m, "progress"), 0), 100),
			Type:      models.GoalCareer,
			Completed: boolean(m, "completed"),
		}
		if models.GoalType(str(m, "type")) == models.GoalBucket {
			g.Type = models.GoalBucket
		}
		goals = append(goals, g)
	}
	return goals
}

func str(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func number(m map[string]any, key string) float64 {
	f, ok := m[key].(float64)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// integer rounds a JSON number and saturates at ±2^53 so the conversion to
// int stays defined.
func integer(m map[string]any, key string) int {
	const limit = 1 << 53
	return int(math.Round(math.Max(math.Min(number(m, key), limit), -limit)))
}

func boolean(m map[string]any, key string) bool {
	b, _ := m[key].(bool)
	return b
}

// stringList keeps the string elements of a JSON array.
func stringList(v any) []string {
	out := []string{}
	list, _ := v.([]any)
	for _, item := range list {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func floatMap(v any) map[string]float64 {
	out := make(map[string]float64)
	m, _ := v.(map[string]any)
	for k, val := range m {
		if f, ok := val.(float64); ok {
			out[k] = f
		}
	}
	return out
}

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case []any:
		return "an array"
	case string:
		return "a string"
	case float64:
		return "a number"
	case bool:
		return "a boolean"
	}
	return fmt.Sprintf("%T", v)
}
