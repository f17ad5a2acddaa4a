package habits

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/jagruk/internal/analytics"
	"github.com/julianstephens/jagruk/internal/models"
)

type AddHabitMsg struct{}

type ToggleHabitMsg struct {
	ID string
}

type RemoveHabitMsg struct {
	ID    string
	Title string
}

type Item struct {
	Summary analytics.HabitSummary
}

func (i Item) Title() string {
	h := i.Summary.Habit
	mark := "○"
	if i.Summary.DoneToday {
		mark = "●"
	}
	return fmt.Sprintf("%s %s %s", mark, h.Icon, h.Title)
}

func (i Item) Description() string {
	s := i.Summary
	var today string
	switch {
	case s.Habit.Type == models.HabitNegative && s.DoneToday:
		today = "slipped today"
	case s.Habit.Type == models.HabitNegative:
		today = "clean today"
	case s.DoneToday:
		today = "done today"
	default:
		today = "not done today"
	}
	return fmt.Sprintf("%s · streak %d · %d this week", today, s.Streak, s.Weekly)
}

func (i Item) FilterValue() string { return i.Summary.Habit.Title }

type KeyMap struct {
	Add    key.Binding
	Toggle key.Binding
	Remove key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "space", "enter"),
			key.WithHelp("space", "toggle today"),
		),
		Remove: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "remove"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(summaries []analytics.HabitSummary, width, height int) Model {
	l := list.New(items(summaries), list.NewDefaultDelegate(), width, height)
	l.Title = "Habits"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Toggle, keys.Add, keys.Remove}
	}
	l.AdditionalFullHelpKeys = l.AdditionalShortHelpKeys

	return Model{list: l, keys: keys}
}

func items(summaries []analytics.HabitSummary) []list.Item {
	out := make([]list.Item, len(summaries))
	for i, s := range summaries {
		out[i] = Item{Summary: s}
	}
	return out
}

// SetHabits replaces the rows and keeps the cursor in range.
func (m *Model) SetHabits(summaries []analytics.HabitSummary) {
	idx := m.list.Index()
	m.list.SetItems(items(summaries))
	if n := len(summaries); n > 0 {
		m.list.Select(min(idx, n-1))
	}
}

// Selected returns the habit under the cursor.
func (m Model) Selected() (analytics.HabitSummary, bool) {
	i, ok := m.list.SelectedItem().(Item)
	return i.Summary, ok
}

func (m Model) Keys() KeyMap {
	return m.keys
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddHabitMsg{} }
		case key.Matches(msg, m.keys.Toggle):
			if s, ok := m.Selected(); ok {
				return m, func() tea.Msg { return ToggleHabitMsg{ID: s.Habit.ID} }
			}
			return m, nil
		case key.Matches(msg, m.keys.Remove):
			if s, ok := m.Selected(); ok {
				return m, func() tea.Msg { return RemoveHabitMsg{ID: s.Habit.ID, Title: s.Habit.Title} }
			}
			return m, nil
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return "\n  No habits yet.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
