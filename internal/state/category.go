package state

import (
	"maps"
	"slices"
	"strings"

	"github.com/julianstephens/jagruk/internal/models"
)

// categories returns the list category edits start from: the custom list, or a
// copy of the defaults when the profile has none yet.
func categories(s models.AppState) []models.CategoryDef {
	if len(s.Profile.CustomCategories) > 0 {
		return slices.Clone(s.Profile.CustomCategories)
	}
	return models.DefaultCategories()
}

// AddCategory appends a category. A blank label or non-positive price is ignored.
func AddCategory(s models.AppState, c models.CategoryDef) (models.AppState, models.CategoryDef, bool) {
	c.Label = strings.TrimSpace(c.Label)
	if c.Label == "" || c.Price <= 0 {
		return s, models.CategoryDef{}, false
	}
	c.ID = newID()
	if c.Icon == "" {
		c.Icon = "📦"
	}
	s.Profile.CustomCategories = append(categories(s), c)
	return s, c, true
}

// UpdateCategory replaces the category with the same id, or appends it.
func UpdateCategory(s models.AppState, c models.CategoryDef) models.AppState {
	list := categories(s)
	if i := slices.IndexFunc(list, func(x models.CategoryDef) bool { return x.ID == c.ID }); i >= 0 {
		list[i] = c
	} else {
		list = append(list, c)
	}
	s.Profile.CustomCategories = list
	return s
}

// DeleteCategory removes a category by id.
func DeleteCategory(s models.AppState, id string) models.AppState {
	list := categories(s)
	if !slices.ContainsFunc(list, func(x models.CategoryDef) bool { return x.ID == id }) {
		return s
	}
	s.Profile.CustomCategories = slices.DeleteFunc(list, func(x models.CategoryDef) bool { return x.ID == id })
	return s
}

// SetHabitPriceOverride pins the quick-add price of a category id. A price of zero
// or less removes the override.
func SetHabitPriceOverride(s models.AppState, categoryID string, price float64) models.AppState {
	overrides := maps.Clone(s.Profile.HabitOverrides)
	if overrides == nil {
		overrides = make(map[string]float64)
	}
	if price <= 0 {
		delete(overrides, categoryID)
	} else {
		overrides[categoryID] = price
	}
	s.Profile.HabitOverrides = overrides
	return s
}
