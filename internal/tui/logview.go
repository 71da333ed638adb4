package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/screentime/internal/engine"
	"github.com/sadopc/screentime/internal/store"
	"github.com/sadopc/screentime/internal/usage"
)

type logModel struct {
	store  *store.Store
	svc    *usage.Service
	user   string
	width  int
	height int

	date   string
	logs   []store.ScreenLog
	cursor int

	formActive bool
	form       *huh.Form

	// Form field pointers (survive value copies)
	formDate    *string
	formApp     *string
	formMinutes *string
}

func newLogModel(st *store.Store, svc *usage.Service, user string) logModel {
	date, app, minutes := "", "", ""
	return logModel{
		store:       st,
		svc:         svc,
		user:        user,
		date:        time.Now().UTC().Format(engine.DateLayout),
		formDate:    &date,
		formApp:     &app,
		formMinutes: &minutes,
	}
}

func (l *logModel) setSize(w, h int) {
	l.width = w
	l.height = h
}

type logsDataMsg struct {
	logs []store.ScreenLog
}

func (l logModel) refresh() tea.Cmd {
	return func() tea.Msg {
		logs, _ := l.store.LogsForDay(l.user, l.date)
		return logsDataMsg{logs: logs}
	}
}

func (l logModel) update(msg tea.Msg) (logModel, tea.Cmd) {
	if l.formActive && l.form != nil {
		return l.updateForm(msg)
	}

	switch msg := msg.(type) {
	case logsDataMsg:
		l.logs = msg.logs
		if l.cursor >= len(l.logs) {
			l.cursor = max(0, len(l.logs)-1)
		}
		return l, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if l.cursor > 0 {
				l.cursor--
			}
		case key.Matches(msg, keys.Down):
			if l.cursor < len(l.logs)-1 {
				l.cursor++
			}
		case key.Matches(msg, keys.Left):
			l.date = shiftDate(l.date, -1)
			return l, l.refresh()
		case key.Matches(msg, keys.Right):
			l.date = shiftDate(l.date, 1)
			return l, l.refresh()
		case key.Matches(msg, keys.New):
			return l.showLogForm("")
		case key.Matches(msg, keys.Enter):
			if len(l.logs) > 0 {
				return l.showLogForm(string(l.logs[l.cursor].App))
			}
		case key.Matches(msg, keys.Delete):
			if len(l.logs) > 0 {
				row := l.logs[l.cursor]
				return l, func() tea.Msg {
					if _, err := l.svc.RemoveLog(l.user, row.Date, row.App); err != nil {
						return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
					}
					return logDeletedMsg{}
				}
			}
		}
	}
	return l, nil
}

func shiftDate(date string, days int) string {
	t, err := time.Parse(engine.DateLayout, date)
	if err != nil {
		return date
	}
	return t.AddDate(0, 0, days).Format(engine.DateLayout)
}

func (l logModel) showLogForm(app string) (logModel, tea.Cmd) {
	*l.formDate = l.date
	*l.formApp = app
	*l.formMinutes = ""
	if app != "" {
		if row, ok := l.findRow(engine.AppLabel(app)); ok {
			*l.formMinutes = strconv.Itoa(row.Minutes)
		}
	}

	l.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Date (YYYY-MM-DD)").Value(l.formDate).
				Validate(func(s string) error { return engine.ValidateDate(s) }),
			huh.NewInput().Title("App (blank = Total)").Value(l.formApp),
			huh.NewInput().Title("Minutes").Value(l.formMinutes).
				Validate(func(s string) error {
					n, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || n < 0 {
						return fmt.Errorf("minutes must be a non-negative number")
					}
					return nil
				}),
		),
	).WithShowHelp(true).WithShowErrors(true)

	l.formActive = true
	return l, l.form.Init()
}

func (l logModel) findRow(app engine.AppLabel) (store.ScreenLog, bool) {
	for _, row := range l.logs {
		if row.App == app {
			return row, true
		}
	}
	return store.ScreenLog{}, false
}

func (l logModel) updateForm(msg tea.Msg) (logModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			l.formActive = false
			l.form = nil
			return l, nil
		}
	}

	form, cmd := l.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		l.form = f
	}

	if l.form.State == huh.StateCompleted {
		l.formActive = false
		date := strings.TrimSpace(*l.formDate)
		app := strings.TrimSpace(*l.formApp)
		minutes, _ := strconv.Atoi(strings.TrimSpace(*l.formMinutes))
		return l, func() tea.Msg {
			if err := l.svc.LogScreenTime(l.user, date, app, minutes); err != nil {
				return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
			}
			return logSavedMsg{log: store.ScreenLog{
				UserID:  l.user,
				Date:    date,
				App:     engine.NormalizeApp(app),
				Minutes: minutes,
			}}
		}
	}

	return l, cmd
}

func (l logModel) view() string {
	if l.formActive && l.form != nil {
		title := titleStyle.Render("Log Screen Time")
		formView := l.form.View()
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", formView)
		return panelStyle.Width(l.width - 4).Render(content)
	}

	w := l.width - 4
	title := titleStyle.Render("Log — " + l.date)

	if len(l.logs) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No entries for this day. Press n to log screen time."),
			"",
			mutedStyle.Render("  ←/→: change day  n: new"),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	header := mutedStyle.Render(fmt.Sprintf("  %-24s %s", "App", "Time"))
	rows = append(rows, header)

	total := 0
	for i, row := range l.logs {
		cursor := "  "
		style := normalItemStyle
		if i == l.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		label := string(row.App)
		if row.App == engine.TotalLabel {
			label = highlightStyle.Render(label)
			total = row.Minutes
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%-24s %s", cursor, label, formatMinutes(row.Minutes))))
	}

	if total > 0 {
		summary, hasData, err := l.daySummary()
		if err == nil && hasData && summary.Remainder > 0 {
			rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-24s %s", "unassigned", formatMinutes(summary.Remainder))))
		}
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  ←/→: change day  n: new  enter: edit  d: delete"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (l logModel) daySummary() (engine.DaySummary, bool, error) {
	return l.svc.Day(l.user, l.date)
}
