package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/screentime/internal/engine"
	"github.com/sadopc/screentime/internal/usage"
)

type dashboardModel struct {
	svc    *usage.Service
	user   string
	width  int
	height int

	today          string
	summary        engine.DaySummary
	hasData        bool
	dailyProgress  *engine.GoalProgress
	weeklyProgress *engine.GoalProgress
	streak         engine.StreakState
	trailing30     int
	colors         map[engine.AppLabel]string
}

func newDashboardModel(svc *usage.Service, user string) dashboardModel {
	return dashboardModel{svc: svc, user: user}
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
}

type dashboardDataMsg struct {
	today          string
	summary        engine.DaySummary
	hasData        bool
	dailyProgress  *engine.GoalProgress
	weeklyProgress *engine.GoalProgress
	streak         engine.StreakState
	trailing30     int
	colors         map[engine.AppLabel]string
}

func (d dashboardModel) loadData() tea.Cmd {
	return func() tea.Msg {
		today := time.Now().UTC().Format(engine.DateLayout)

		summary, hasData, err := d.svc.Day(d.user, today)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}

		daily, _ := d.svc.GoalProgress(d.user, today, engine.ScopeDaily)
		weekly, _ := d.svc.GoalProgress(d.user, today, engine.ScopeWeekly)
		streak, _ := d.svc.MonthStreak(d.user, today)
		trailing, _ := d.svc.TrailingTotal(d.user, today, 30)

		apps := make([]engine.AppLabel, 0, len(summary.PerApp))
		for app := range summary.PerApp {
			apps = append(apps, app)
		}

		return dashboardDataMsg{
			today:          today,
			summary:        summary,
			hasData:        hasData,
			dailyProgress:  daily,
			weeklyProgress: weekly,
			streak:         streak,
			trailing30:     trailing,
			colors:         engine.AssignColors(apps),
		}
	}
}

func (d dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardDataMsg:
		d.today = msg.today
		d.summary = msg.summary
		d.hasData = msg.hasData
		d.dailyProgress = msg.dailyProgress
		d.weeklyProgress = msg.weeklyProgress
		d.streak = msg.streak
		d.trailing30 = msg.trailing30
		d.colors = msg.colors
		return d, nil
	}
	return d, nil
}

func (d dashboardModel) view() string {
	if d.width < 20 {
		return "Terminal too small"
	}

	contentWidth := d.width - 4

	todayPanel := d.renderTodayPanel(contentWidth)
	goalsPanel := d.renderGoalsPanel(contentWidth)
	streakPanel := d.renderStreakPanel(contentWidth)

	return lipgloss.JoinVertical(lipgloss.Left, todayPanel, goalsPanel, streakPanel)
}

func (d dashboardModel) renderTodayPanel(w int) string {
	title := titleStyle.Render("Today")
	total := highlightStyle.Render(formatMinutes(d.summary.Total))
	header := fmt.Sprintf("%s  %s", title, total)

	if !d.hasData {
		content := lipgloss.JoinVertical(lipgloss.Left,
			header,
			mutedStyle.Render("No screen time logged today"),
		)
		return panelStyle.Width(w).Render(content)
	}

	apps := make([]engine.AppLabel, 0, len(d.summary.PerApp))
	for app := range d.summary.PerApp {
		apps = append(apps, app)
	}
	sort.Slice(apps, func(i, j int) bool { return apps[i] < apps[j] })

	var rows []string
	rows = append(rows, header)
	for _, app := range apps {
		colorDot := lipgloss.NewStyle().Foreground(lipgloss.Color(d.colors[app])).Render("●")
		row := fmt.Sprintf("  %s %-20s %s", colorDot, app, formatMinutes(d.summary.PerApp[app]))
		rows = append(rows, row)
	}
	if d.summary.Remainder > 0 {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(engine.RemainderColor)).Render("●")
		rows = append(rows, fmt.Sprintf("  %s %-20s %s", dot, "Other", formatMinutes(d.summary.Remainder)))
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (d dashboardModel) renderGoalsPanel(w int) string {
	title := titleStyle.Render("Goals")
	barWidth := w - 30
	if barWidth < 10 {
		barWidth = 10
	}

	rows := []string{
		title,
		fmt.Sprintf("  %-8s %s", "Daily", progressBar(d.dailyProgress, barWidth)),
		fmt.Sprintf("  %-8s %s", "Weekly", progressBar(d.weeklyProgress, barWidth)),
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (d dashboardModel) renderStreakPanel(w int) string {
	title := titleStyle.Render("Streak")

	var rows []string
	rows = append(rows, title)
	if d.dailyProgress == nil && d.streak.CurrentRun == 0 && d.streak.LongestRun == 0 {
		rows = append(rows, mutedStyle.Render("  Set a daily goal to track streaks"))
	} else {
		current := successStyle.Render(fmt.Sprintf("%d days", d.streak.CurrentRun))
		rows = append(rows, fmt.Sprintf("  Current: %s  Longest this month: %d days", current, d.streak.LongestRun))
	}
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  Last 30 days: %s", formatMinutes(d.trailing30))))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
