// Package tui is the interactive dashboard: today's status and the habit tracker.
package tui

import (
	"errors"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/jagruk/internal/analytics"
	"github.com/julianstephens/jagruk/internal/models"
	"github.com/julianstephens/jagruk/internal/tracker"
	"github.com/julianstephens/jagruk/internal/tui/components/habits"
)

type SessionState int

const (
	StateDashboard SessionState = iota
	StateHabits
	StateAddHabit
	StateConfirmSeal
	StateConfirmRemove
)

var tabTitles = []string{"Today", "Habits"}

var errSealed = errors.New("today is sealed")

type HabitFormModel struct {
	Title    string
	Icon     string
	Negative bool
}

type Model struct {
	t              *tracker.Tracker
	state          SessionState
	keys           KeyMap
	help           help.Model
	xpBar          progress.Model
	habitsModel    habits.Model
	form           *huh.Form
	habitForm      *HabitFormModel
	habitToRemove  habits.RemoveHabitMsg
	snap           models.AppState
	today          string
	notice         string
	noticeIsError  bool
	quitting       bool
	width          int
	height         int
}

func NewModel(t *tracker.Tracker) Model {
	m := Model{
		t:     t,
		state: StateDashboard,
		keys:  DefaultKeyMap(),
		help:  help.New(),
		xpBar: progress.New(progress.WithDefaultGradient(), progress.WithWidth(30)),
	}
	m.snap = t.Snapshot()
	m.today = m.snap.CurrentDate
	m.habitsModel = habits.New(analytics.HabitOverview(m.snap, t.Now()), 0, 0)
	return m
}

// refresh re-reads the tracker after a mutation or a day rollover.
func (m *Model) refresh() {
	m.snap = m.t.Snapshot()
	m.today = m.snap.CurrentDate
	m.habitsModel.SetHabits(analytics.HabitOverview(m.snap, m.t.Now()))
}

func (m Model) todayEntry() models.DailyEntry {
	if e, ok := m.snap.Entry(m.today); ok {
		return e
	}
	return models.NewEntry(m.today)
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case StateDashboard:
		keys = append(keys, m.keys.RateUp, m.keys.RateDown, m.keys.Seal)
	case StateHabits:
		hk := m.habitsModel.Keys()
		keys = append(keys, hk.Toggle, hk.Add, hk.Remove)
	case StateConfirmSeal, StateConfirmRemove:
		keys = []key.Binding{m.keys.Yes, m.keys.No}
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}

	var actions []key.Binding
	switch m.state {
	case StateDashboard:
		actions = []key.Binding{m.keys.RateUp, m.keys.RateDown, m.keys.EnergyUp, m.keys.EnergyDown, m.keys.Seal}
	case StateHabits:
		hk := m.habitsModel.Keys()
		actions = []key.Binding{hk.Toggle, hk.Add, hk.Remove}
	}
	return [][]key.Binding{global, actions}
}

func (m Model) Init() tea.Cmd {
	return tick()
}
