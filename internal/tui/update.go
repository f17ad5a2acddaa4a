package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/jagruk/internal/models"
	"github.com/julianstephens/jagruk/internal/state"
	"github.com/julianstephens/jagruk/internal/tui/components/habits"
)

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Minute, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == StateAddHabit {
		return m.updateAddHabit(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		listHeight := msg.Height - 4
		h, v := docStyle.GetFrameSize()
		m.habitsModel.SetSize(msg.Width-h, listHeight-v)
		return m, nil

	case tickMsg:
		if m.t.Today() != m.today {
			m.refresh()
		}
		return m, tick()

	case habits.ToggleHabitMsg:
		if m.todayEntry().IsLocked {
			m.setError(errSealed)
			return m, nil
		}
		occurred := m.t.ToggleHabitStatus(m.today, msg.ID)
		m.refresh()
		m.setNotice(fmt.Sprintf("%s marked %s", habitTitle(m.snap, msg.ID), onOff(occurred)))
		return m, nil

	case habits.AddHabitMsg:
		m.startAddHabit()
		return m, m.form.Init()

	case habits.RemoveHabitMsg:
		m.habitToRemove = msg
		m.state = StateConfirmRemove
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.state == StateHabits {
		var cmd tea.Cmd
		m.habitsModel, cmd = m.habitsModel.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.state {
	case StateConfirmSeal:
		switch {
		case key.Matches(msg, m.keys.Yes):
			m.t.SealEntry(m.today)
			m.refresh()
			m.setNotice("Day sealed")
			m.state = StateDashboard
		case key.Matches(msg, m.keys.No):
			m.state = StateDashboard
		}
		return m, nil
	case StateConfirmRemove:
		switch {
		case key.Matches(msg, m.keys.Yes):
			m.t.RemoveHabit(m.habitToRemove.ID)
			m.refresh()
			m.setNotice("Removed " + m.habitToRemove.Title)
			m.state = StateHabits
		case key.Matches(msg, m.keys.No):
			m.state = StateHabits
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Tab):
		m.state = SessionState((int(m.state) + 1) % len(tabTitles))
		return m, nil
	case key.Matches(msg, m.keys.ShiftTab):
		m.state = SessionState((int(m.state) + len(tabTitles) - 1) % len(tabTitles))
		return m, nil
	}

	if m.state == StateHabits {
		var cmd tea.Cmd
		m.habitsModel, cmd = m.habitsModel.Update(msg)
		return m, cmd
	}

	e := m.todayEntry()
	switch {
	case key.Matches(msg, m.keys.RateUp):
		m.adjust(e, func(p *state.EntryPatch) { p.Rating = ptr(clamp(e.Rating+1, 1, 10)) })
	case key.Matches(msg, m.keys.RateDown):
		m.adjust(e, func(p *state.EntryPatch) { p.Rating = ptr(clamp(e.Rating-1, 1, 10)) })
	case key.Matches(msg, m.keys.EnergyUp):
		m.adjust(e, func(p *state.EntryPatch) { p.Energy = ptr(clamp(e.Energy+1, 1, 5)) })
	case key.Matches(msg, m.keys.EnergyDown):
		m.adjust(e, func(p *state.EntryPatch) { p.Energy = ptr(clamp(e.Energy-1, 1, 5)) })
	case key.Matches(msg, m.keys.Seal):
		if e.IsLocked {
			m.setError(errSealed)
			return m, nil
		}
		m.state = StateConfirmSeal
	}
	return m, nil
}

// adjust applies a patch to today's entry unless the day is sealed.
func (m *Model) adjust(e models.DailyEntry, build func(*state.EntryPatch)) {
	if e.IsLocked {
		m.setError(errSealed)
		return
	}
	var p state.EntryPatch
	build(&p)
	m.t.UpdateEntry(m.today, p)
	m.refresh()
	m.notice = ""
}

func (m *Model) startAddHabit() {
	m.habitForm = &HabitFormModel{Icon: "✨"}
	snap := m.snap
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Habit").
				Value(&m.habitForm.Title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("title is required")
					}
					if _, ok := findHabit(snap, s); ok {
						return fmt.Errorf("%q already exists", s)
					}
					return nil
				}),
			huh.NewInput().
				Title("Icon").
				Value(&m.habitForm.Icon),
			huh.NewConfirm().
				Title("Is this a habit to quit?").
				Value(&m.habitForm.Negative),
		),
	).WithShowHelp(false)
	m.state = StateAddHabit
}

func (m Model) updateAddHabit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = StateHabits
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		h := models.HabitDef{
			Title: strings.TrimSpace(m.habitForm.Title),
			Icon:  m.habitForm.Icon,
			Type:  models.HabitPositive,
		}
		if m.habitForm.Negative {
			h.Type = models.HabitNegative
		}
		m.t.AddHabit(h)
		m.refresh()
		m.setNotice("Added " + h.Title)
		m.state = StateHabits
	case huh.StateAborted:
		m.state = StateHabits
	}
	return m, cmd
}

func (m *Model) setNotice(s string) {
	m.notice = s
	m.noticeIsError = false
}

func (m *Model) setError(err error) {
	m.notice = err.Error()
	m.noticeIsError = true
}

func findHabit(s models.AppState, title string) (models.HabitDef, bool) {
	for _, h := range s.Profile.Habits {
		if strings.EqualFold(h.Title, strings.TrimSpace(title)) {
			return h, true
		}
	}
	return models.HabitDef{}, false
}

func habitTitle(s models.AppState, id string) string {
	if h, ok := s.Profile.Habit(id); ok {
		return h.Title
	}
	return id
}

func onOff(occurred bool) string {
	if occurred {
		return "done"
	}
	return "not done"
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

func ptr[T any](v T) *T { return &v }
