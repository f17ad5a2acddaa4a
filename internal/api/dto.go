package api

import (
	"time"

	"github.com/julianstephens/jagruk/internal/analytics"
	"github.com/julianstephens/jagruk/internal/models"
	"github.com/julianstephens/jagruk/internal/state"
)

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

const (
	codeInvalidRequest = "INVALID_REQUEST"
	codeNotFound       = "NOT_FOUND"
	codeSealed         = "DAY_SEALED"
	codeInternal       = "INTERNAL_ERROR"
)

// StatusResponse is the dashboard summary.
type StatusResponse struct {
	Date      string                 `json:"date"`
	Status    analytics.SystemStatus `json:"status"`
	Streak    int                    `json:"streak"`
	XP        analytics.XPProgress   `json:"xp"`
	Todos     analytics.TodoStats    `json:"todos"`
	Prompt    string                 `json:"prompt"`
	Limits    []analytics.LimitUsage `json:"limits"`
	AvgRating float64                `json:"averageRating"`
}

type entryPatchRequest struct {
	Rating       *int               `json:"rating" binding:"omitempty,min=0,max=10"`
	Energy       *int               `json:"energy" binding:"omitempty,min=0,max=5"`
	Intention    *string            `json:"intention"`
	Memory       *string            `json:"memory"`
	Todos        *[]models.ToDoItem `json:"todos"`
	PromptAnswer *string            `json:"promptAnswer"`
	Mood         *models.Mood       `json:"mood" binding:"omitempty,oneof=happy good neutral sad angry"`
	MoodReasons  *[]string          `json:"moodReasons"`
	SongTitle    *string            `json:"songTitle"`
	SongArtist   *string            `json:"songArtist"`
	SongReason   *string            `json:"songReason"`
	HabitStatus  *map[string]bool   `json:"habitStatus"`
	Gratitude    *string            `json:"gratitude"`
	IsLocked     *bool              `json:"isLocked"`
}

func (r entryPatchRequest) patch() state.EntryPatch {
	return state.EntryPatch{
		Rating:       r.Rating,
		Energy:       r.Energy,
		Intention:    r.Intention,
		Memory:       r.Memory,
		Todos:        r.Todos,
		PromptAnswer: r.PromptAnswer,
		Mood:         r.Mood,
		MoodReasons:  r.MoodReasons,
		SongTitle:    r.SongTitle,
		SongArtist:   r.SongArtist,
		SongReason:   r.SongReason,
		HabitStatus:  r.HabitStatus,
		Gratitude:    r.Gratitude,
		IsLocked:     r.IsLocked,
	}
}

type transactionRequest struct {
	Amount       *float64               `json:"amount" binding:"required,gte=0"`
	Type         models.TransactionType `json:"type" binding:"omitempty,oneof=EXPENSE INCOME"`
	Category     string                 `json:"category" binding:"required"`
	Timestamp    *time.Time             `json:"timestamp"`
	IsHabit      bool                   `json:"isHabit"`
	UnitQuantity float64                `json:"unitQuantity" binding:"gte=0"`
	UnitType     models.UnitType        `json:"unitType" binding:"omitempty,oneof=stick g drink cup unit"`
	Mood         models.Mood            `json:"mood" binding:"omitempty,oneof=happy good neutral sad angry"`
	Note         string                 `json:"note"`
}

func (r transactionRequest) transaction() models.Transaction {
	t := models.Transaction{
		Amount:       *r.Amount,
		Type:         r.Type,
		Category:     r.Category,
		IsHabit:      r.IsHabit,
		UnitQuantity: r.UnitQuantity,
		UnitType:     r.UnitType,
		Mood:         r.Mood,
		Note:         r.Note,
	}
	if r.Timestamp != nil {
		t.Timestamp = *r.Timestamp
	}
	return t
}

type goalRequest struct {
	Title  string          `json:"title" binding:"required"`
	Type   models.GoalType `json:"type" binding:"required,oneof=career bucket"`
	Reason string          `json:"reason"`
	Action string          `json:"action"`
}

type goalPatchRequest struct {
	Title     *string          `json:"title" binding:"omitempty,min=1"`
	Reason    *string          `json:"reason"`
	Action    *string          `json:"action"`
	Progress  *int             `json:"progress" binding:"omitempty,min=0,max=100"`
	Type      *models.GoalType `json:"type" binding:"omitempty,oneof=career bucket"`
	Completed *bool            `json:"completed"`
}

func (r goalPatchRequest) patch() state.GoalPatch {
	return state.GoalPatch{
		Title:     r.Title,
		Reason:    r.Reason,
		Action:    r.Action,
		Progress:  r.Progress,
		Type:      r.Type,
		Completed: r.Completed,
	}
}

type habitRequest struct {
	Title string           `json:"title" binding:"required"`
	Type  models.HabitType `json:"type" binding:"omitempty,oneof=positive negative"`
	Icon  string           `json:"icon"`
}

// ImportResponse summarizes a successful import.
type ImportResponse struct {
	Entries      int `json:"entries"`
	Transactions int `json:"transactions"`
	Goals        int `json:"goals"`
}
