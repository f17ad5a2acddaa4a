package models

import (
	"reflect"
	"testing"
	"time"
)

func TestMergeDocument(t *testing.T) {
	base := map[string]any{
		"profile": map[string]any{
			"name":        "",
			"xp":          float64(0),
			"level":       float64(1),
			"habits":      []any{"default"},
			"habitLimits": map[string]any{"Cigarettes": float64(2)},
		},
		"entries":      map[string]any{},
		"transactions": []any{},
	}

	tests := []struct {
		name    string
		overlay map[string]any
		check   func(t *testing.T, got map[string]any)
	}{
		{
			name:    "missing fields receive defaults",
			overlay: map[string]any{"profile": map[string]any{"name": "Asha"}},
			check: func(t *testing.T, got map[string]any) {
				p := got["profile"].(map[string]any)
				if p["name"] != "Asha" {
					t.Errorf("name = %v, want Asha", p["name"])
				}
				if p["level"] != float64(1) {
					t.Errorf("level = %v, want default 1", p["level"])
				}
				if !reflect.DeepEqual(p["habits"], []any{"default"}) {
					t.Errorf("habits = %v, want default set", p["habits"])
				}
			},
		},
		{
			name:    "null counts as absent",
			overlay: map[string]any{"profile": map[string]any{"habits": nil}},
			check: func(t *testing.T, got map[string]any) {
				p := got["profile"].(map[string]any)
				if !reflect.DeepEqual(p["habits"], []any{"default"}) {
					t.Errorf("habits = %v, want default set", p["habits"])
				}
			},
		},
		{
			name:    "record maps replace wholesale",
			overlay: map[string]any{"profile": map[string]any{"habitLimits": map[string]any{}}},
			check: func(t *testing.T, got map[string]any) {
				p := got["profile"].(map[string]any)
				if limits := p["habitLimits"].(map[string]any); len(limits) != 0 {
					t.Errorf("habitLimits = %v, want empty", limits)
				}
			},
		},
		{
			name:    "arrays replace",
			overlay: map[string]any{"transactions": []any{"a", "b"}},
			check: func(t *testing.T, got map[string]any) {
				if !reflect.DeepEqual(got["transactions"], []any{"a", "b"}) {
					t.Errorf("transactions = %v", got["transactions"])
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MergeDocument(base, tt.overlay)
			tt.check(t, got)
		})
	}

	// base must not be modified by a merge
	if p := base["profile"].(map[string]any); p["name"] != "" {
		t.Errorf("base document was mutated: name = %v", p["name"])
	}
}

func TestAppState_Normalize(t *testing.T) {
	s := AppState{
		Profile: Profile{XP: 250, Level: 0},
		Entries: map[string]DailyEntry{"2026-03-01": {Rating: 4}},
	}
	s.Normalize()

	// level 0 -> 1, then 100 of 250 rolls into level 2
	if s.Profile.Level != 2 || s.Profile.XP != 150 {
		t.Errorf("level/xp = %d/%d, want 2/150", s.Profile.Level, s.Profile.XP)
	}
	if s.Transactions == nil || s.Goals == nil {
		t.Error("Normalize() left nil collections")
	}
	if len(s.Profile.Habits) != len(DefaultHabits()) {
		t.Errorf("habits = %d, want defaults", len(s.Profile.Habits))
	}
	e := s.Entries["2026-03-01"]
	if e.Date != "2026-03-01" || e.Todos == nil {
		t.Errorf("entry not normalized: %+v", e)
	}
}

func TestDefaultState(t *testing.T) {
	now := time.Date(2026, 3, 14, 23, 30, 0, 0, time.FixedZone("IST", 5*3600+1800))
	s := DefaultState(now)

	if s.CurrentDate != "2026-03-14" {
		t.Errorf("CurrentDate = %s, want local date 2026-03-14", s.CurrentDate)
	}
	if s.Profile.IsOnboarded {
		t.Error("fresh profile should not be onboarded")
	}
	if s.Profile.Level != 1 || s.Profile.XP != 0 {
		t.Errorf("level/xp = %d/%d, want 1/0", s.Profile.Level, s.Profile.XP)
	}
	if s.Profile.StartDate != "2026-03-14T18:00:00.000Z" {
		t.Errorf("StartDate = %s", s.Profile.StartDate)
	}
	if s.Profile.XPToNextLevel() != 100 {
		t.Errorf("XPToNextLevel() = %d, want 100", s.Profile.XPToNextLevel())
	}
}

func TestAppState_Entry(t *testing.T) {
	s := DefaultState(time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC))
	e, ok := s.Entry("2026-03-14")
	if ok {
		t.Error("Entry() reported existing entry on empty state")
	}
	if e.Date != "2026-03-14" || e.Rating != 0 || e.IsLocked || e.Todos == nil {
		t.Errorf("default entry = %+v", e)
	}
}
