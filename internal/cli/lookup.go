package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/agnivade/levenshtein"

	apperrors "github.com/julianstephens/jagruk/internal/errors"
	"github.com/julianstephens/jagruk/internal/models"
	"github.com/julianstephens/jagruk/internal/utils"
)

// maxSuggestDistance is the largest edit distance offered as a suggestion.
const maxSuggestDistance = 3

// ResolveDate accepts "", today, yesterday, tomorrow, -N (days ago) or YYYY-MM-DD.
func ResolveDate(s string, now time.Time) (string, error) {
	switch v := strings.ToLower(strings.TrimSpace(s)); v {
	case "", "today":
		return utils.DayKey(now), nil
	case "yesterday":
		return utils.DayKey(utils.AddDays(now, -1)), nil
	case "tomorrow":
		return utils.DayKey(utils.AddDays(now, 1)), nil
	default:
		if n, err := strconv.Atoi(v); err == nil && n <= 0 {
			return utils.DayKey(utils.AddDays(now, n)), nil
		}
		if utils.ValidateDate(v) {
			return v, nil
		}
	}
	return "", apperrors.WithHint(fmt.Errorf("invalid date %q", s), "use YYYY-MM-DD, today, yesterday or -N")
}

// Suggest returns the candidate closest to input, or "" when none is close enough.
func Suggest(input string, candidates []string) string {
	best, bestDist := "", maxSuggestDistance+1
	needle := strings.ToLower(input)
	for _, c := range candidates {
		if d := levenshtein.ComputeDistance(needle, strings.ToLower(c)); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

func notFound(kind, input string, candidates []string) error {
	err := fmt.Errorf("unknown %s %q", kind, input)
	if s := Suggest(input, candidates); s != "" {
		return apperrors.WithHint(err, fmt.Sprintf("did you mean %q?", s))
	}
	return err
}

// FindHabit matches a habit by id or case-insensitive title.
func FindHabit(p models.Profile, key string) (models.HabitDef, error) {
	var titles []string
	for _, h := range p.Habits {
		if h.ID == key || strings.EqualFold(h.Title, key) {
			return h, nil
		}
		titles = append(titles, h.Title)
	}
	return models.HabitDef{}, notFound("habit", key, titles)
}

// FindCategory matches a category by id or case-insensitive label.
func FindCategory(cats []models.CategoryDef, key string) (models.CategoryDef, error) {
	var labels []string
	for _, c := range cats {
		if c.ID == key || strings.EqualFold(c.Label, key) {
			return c, nil
		}
		labels = append(labels, c.Label)
	}
	return models.CategoryDef{}, notFound("category", key, labels)
}

// FindGoal matches a goal by id, id prefix or case-insensitive title.
func FindGoal(goals []models.Goal, key string) (models.Goal, error) {
	var titles []string
	var prefixed []models.Goal
	for _, g := range goals {
		if g.ID == key || strings.EqualFold(g.Title, key) {
			return g, nil
		}
		if len(key) >= 4 && strings.HasPrefix(g.ID, key) {
			prefixed = append(prefixed, g)
		}
		titles = append(titles, g.Title)
	}
	if len(prefixed) == 1 {
		return prefixed[0], nil
	}
	return models.Goal{}, notFound("goal", key, titles)
}

// ShortID trims a uuid for display.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
