package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/screentime/internal/engine"
	"github.com/sadopc/screentime/internal/store"
)

type settingsModel struct {
	store  *store.Store
	width  int
	height int

	settings   []store.Setting
	dailyGoal  *engine.Goal
	weeklyGoal *engine.Goal

	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	activeUser *string
	formDaily  *string
	formWeekly *string
}

func newSettingsModel(s *store.Store) settingsModel {
	au, fd, fw := "", "", ""
	return settingsModel{
		store:      s,
		activeUser: &au,
		formDaily:  &fd,
		formWeekly: &fw,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

type settingsDataMsg struct {
	settings   []store.Setting
	dailyGoal  *engine.Goal
	weeklyGoal *engine.Goal
}

func (s settingsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		settings, _ := s.store.GetAllSettings()
		user := s.store.ActiveUser()
		daily, _ := s.store.GetGoal(user, engine.ScopeDaily)
		weekly, _ := s.store.GetGoal(user, engine.ScopeWeekly)
		return settingsDataMsg{settings: settings, dailyGoal: daily, weeklyGoal: weekly}
	}
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		s.settings = msg.settings
		s.dailyGoal = msg.dailyGoal
		s.weeklyGoal = msg.weeklyGoal
		return s, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.New):
			return s.showForm()
		}
	}
	return s, nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	*s.activeUser = s.store.ActiveUser()
	*s.formDaily = goalMinutes(s.dailyGoal)
	*s.formWeekly = goalMinutes(s.weeklyGoal)

	validateGoal := func(v string) error {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || n < 0 {
			return fmt.Errorf("enter a non-negative number of minutes")
		}
		return nil
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Active user").Value(s.activeUser).
				Validate(func(v string) error {
					if strings.TrimSpace(v) == "" {
						return fmt.Errorf("user cannot be empty")
					}
					return nil
				}),
		).Title("Profile"),
		huh.NewGroup(
			huh.NewInput().Title("Daily limit (minutes, 0 = off)").Value(s.formDaily).Validate(validateGoal),
			huh.NewInput().Title("Weekly limit (minutes, 0 = off)").Value(s.formWeekly).Validate(validateGoal),
		).Title("Goals"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		if err := s.saveSettings(); err != nil {
			return s, func() tea.Msg {
				return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
			}
		}
		return s, tea.Batch(s.refresh(), func() tea.Msg { return goalSavedMsg{} })
	}

	return s, cmd
}

func (s settingsModel) saveSettings() error {
	user := strings.TrimSpace(*s.activeUser)
	if err := s.store.SetSetting("active_user", user); err != nil {
		return err
	}
	if err := s.saveGoal(user, engine.ScopeDaily, *s.formDaily); err != nil {
		return err
	}
	return s.saveGoal(user, engine.ScopeWeekly, *s.formWeekly)
}

// saveGoal treats zero as "clear the goal" so the form can disable limits.
func (s settingsModel) saveGoal(user string, scope engine.GoalScope, value string) error {
	minutes, _ := strconv.Atoi(strings.TrimSpace(value))
	if minutes == 0 {
		return s.store.DeleteGoal(user, scope)
	}
	return s.store.SetGoal(user, scope, minutes)
}

func goalMinutes(g *engine.Goal) string {
	if g == nil {
		return "0"
	}
	return strconv.Itoa(g.TargetMinutes)
}

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		title := titleStyle.Render("Settings")
		formView := s.form.View()
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", formView),
		)
	}

	title := titleStyle.Render("Settings")
	hint := mutedStyle.Render("Press enter to edit settings")

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	for _, setting := range s.settings {
		label := lipgloss.NewStyle().Width(24).Render(setting.Key)
		value := highlightStyle.Render(setting.Value)
		rows = append(rows, fmt.Sprintf("  %s %s", label, value))
	}

	rows = append(rows, "")
	rows = append(rows, fmt.Sprintf("  %s %s",
		lipgloss.NewStyle().Width(24).Render("daily limit"),
		highlightStyle.Render(formatGoal(s.dailyGoal))))
	rows = append(rows, fmt.Sprintf("  %s %s",
		lipgloss.NewStyle().Width(24).Render("weekly limit"),
		highlightStyle.Render(formatGoal(s.weeklyGoal))))

	rows = append(rows, "")
	rows = append(rows, hint)

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func formatGoal(g *engine.Goal) string {
	if g == nil {
		return "not set"
	}
	return formatMinutes(g.TargetMinutes)
}
