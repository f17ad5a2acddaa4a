package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/julianstephens/jagruk/internal/analytics"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateDashboard:
		content = m.viewDashboard()
	case StateHabits:
		content = docStyle.Render(m.habitsModel.View())
	case StateAddHabit:
		content = docStyle.Render(m.form.View())
	case StateConfirmSeal:
		content = m.viewConfirm(warningStyle.Render("Seal "+m.today+"? A sealed day can no longer be edited."), "")
	case StateConfirmRemove:
		content = m.viewConfirm(dangerStyle.Render(fmt.Sprintf("Remove habit %q?", m.habitToRemove.Title)), "Its history stays in past entries.")
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.viewNotice(),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	active := m.state
	switch m.state {
	case StateAddHabit, StateConfirmRemove:
		active = StateHabits
	case StateConfirmSeal:
		active = StateDashboard
	}

	var tabs []string
	for i, title := range tabTitles {
		if active == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewDashboard() string {
	now := m.t.Now()
	e := m.todayEntry()
	status := analytics.Status(m.snap, now)
	xp := analytics.Progress(m.snap.Profile)
	todos := analytics.TodoProgress(e)

	var b strings.Builder
	title := now.Format("Monday, 2 January")
	if name := m.snap.Profile.Name; name != "" {
		title = name + " · " + title
	}
	if e.IsLocked {
		title += " " + okStyle.Render("(sealed)")
	}
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(title) + "\n\n")

	switch status.Alert {
	case analytics.AlertEnergyCritical:
		b.WriteString(dangerStyle.Render("⚠ Energy critical. Rest before you push.") + "\n\n")
	case analytics.AlertBudgetCritical:
		b.WriteString(dangerStyle.Render("⚠ Over today's budget.") + "\n\n")
	}

	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label) + value + "\n")
	}
	row("Rating", scale(e.Rating, 10))
	row("Energy", scale(e.Energy, 5))
	if e.Mood != "" {
		row("Mood", string(e.Mood))
	}
	row("Todos", fmt.Sprintf("%d/%d", todos.Completed, todos.Total))
	row("Spent", m.spendText(status))
	row("Streak", fmt.Sprintf("%d day(s)", analytics.DisciplineStreak(m.snap, now)))
	row("Level", fmt.Sprintf("%d  %s %d/%d XP", xp.Level, m.xpBar.ViewAs(xp.Percent/100), xp.XP, xp.Needed))

	b.WriteString("\n" + promptStyle.Render(analytics.DailyPrompt(m.today)))
	return docStyle.Render(cardStyle.Render(b.String()))
}

func (m Model) spendText(status analytics.SystemStatus) string {
	spent := decimal.NewFromFloat(status.TodaySpend).StringFixed(2)
	if status.DailyBudget <= 0 {
		return spent
	}
	text := spent + " / " + decimal.NewFromFloat(status.DailyBudget).StringFixed(2)
	if status.BudgetCritical {
		return dangerStyle.Render(text)
	}
	return text
}

func scale(v, top int) string {
	if v <= 0 {
		return warningStyle.Render("not set")
	}
	v = min(v, top)
	return fmt.Sprintf("%s%s %d/%d", strings.Repeat("■", v), strings.Repeat("□", top-v), v, top)
}

func (m Model) viewConfirm(question, detail string) string {
	lines := []string{question}
	if detail != "" {
		lines = append(lines, detail)
	}
	lines = append(lines, "", "[y] Yes", "[n] No")
	return lipgloss.Place(m.width, max(m.height-4, len(lines)),
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, lines...),
	)
}

func (m Model) viewNotice() string {
	if m.notice == "" {
		return ""
	}
	if m.noticeIsError {
		return dangerStyle.Render("❌ " + m.notice)
	}
	return okStyle.Render("✓ " + m.notice)
}
