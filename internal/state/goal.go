package state

import (
	"slices"

	"github.com/julianstephens/jagruk/internal/models"
)

// GoalPatch is a partial Goal. Completed and Progress are set independently.
type GoalPatch struct {
	Title     *string
	Reason    *string
	Action    *string
	Progress  *int
	Type      *models.GoalType
	Completed *bool
}

func (p GoalPatch) apply(g models.Goal) models.Goal {
	set(&g.Title, p.Title)
	set(&g.Reason, p.Reason)
	set(&g.Action, p.Action)
	set(&g.Progress, p.Progress)
	set(&g.Type, p.Type)
	set(&g.Completed, p.Completed)
	return g
}

// AddGoal appends a new goal with progress 0, not completed.
func AddGoal(s models.AppState, g models.Goal) (models.AppState, models.Goal) {
	if g.ID == "" {
		g.ID = newID()
	}
	if g.Type == "" {
		g.Type = models.GoalCareer
	}
	g.Progress = 0
	g.Completed = false
	s.Goals = append(slices.Clone(s.Goals), g)
	return s, g
}

// UpdateGoal merges patch into the goal with id.
func UpdateGoal(s models.AppState, id string, patch GoalPatch) models.AppState {
	return editGoal(s, id, patch.apply)
}

// ToggleGoalCompletion flips Completed without touching Progress.
func ToggleGoalCompletion(s models.AppState, id string) models.AppState {
	return editGoal(s, id, func(g models.Goal) models.Goal {
		g.Completed = !g.Completed
		return g
	})
}

// DeleteGoal removes the goal with id.
func DeleteGoal(s models.AppState, id string) models.AppState {
	i := goalIndex(s, id)
	if i < 0 {
		return s
	}
	s.Goals = slices.Delete(slices.Clone(s.Goals), i, i+1)
	return s
}

func editGoal(s models.AppState, id string, fn func(models.Goal) models.Goal) models.AppState {
	i := goalIndex(s, id)
	if i < 0 {
		return s
	}
	s.Goals = slices.Clone(s.Goals)
	s.Goals[i] = fn(s.Goals[i])
	return s
}

func goalIndex(s models.AppState, id string) int {
	return slices.IndexFunc(s.Goals, func(g models.Goal) bool { return g.ID == id })
}
