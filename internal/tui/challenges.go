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

type challengesModel struct {
	store  *store.Store
	svc    *usage.Service
	user   string
	width  int
	height int

	board  []usage.ChallengeView
	cursor int

	formActive bool
	form       *huh.Form

	// Form field pointers (survive value copies)
	formName    *string
	formApp     *string
	formMinutes *string
	formStart   *string
	formEnd     *string
}

func newChallengesModel(st *store.Store, svc *usage.Service, user string) challengesModel {
	name, app, minutes, start, end := "", "", "", "", ""
	return challengesModel{
		store:       st,
		svc:         svc,
		user:        user,
		formName:    &name,
		formApp:     &app,
		formMinutes: &minutes,
		formStart:   &start,
		formEnd:     &end,
	}
}

func (m *challengesModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

type challengesDataMsg struct {
	board []usage.ChallengeView
}

func (m challengesModel) refresh() tea.Cmd {
	return func() tea.Msg {
		today := time.Now().UTC().Format(engine.DateLayout)
		board, _ := m.svc.ChallengeBoard(m.user, today)
		return challengesDataMsg{board: board}
	}
}

func (m challengesModel) update(msg tea.Msg) (challengesModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case challengesDataMsg:
		m.board = msg.board
		if m.cursor >= len(m.board) {
			m.cursor = max(0, len(m.board)-1)
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.board)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.New):
			return m.showCreateForm()
		case key.Matches(msg, keys.Delete):
			if len(m.board) > 0 {
				c := m.board[m.cursor].Challenge
				return m, m.remove(c)
			}
		}
	}
	return m, nil
}

// remove deletes the challenge when the active user owns it, otherwise leaves it.
func (m challengesModel) remove(c engine.Challenge) tea.Cmd {
	return func() tea.Msg {
		if c.OwnerID == m.user {
			if err := m.store.DeleteChallenge(c.ID, m.user); err != nil {
				return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
			}
			return challengeRemovedMsg{left: false}
		}
		if err := m.store.LeaveChallenge(c.ID, m.user); err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		return challengeRemovedMsg{left: true}
	}
}

func (m challengesModel) showCreateForm() (challengesModel, tea.Cmd) {
	today := time.Now().UTC().Format(engine.DateLayout)
	*m.formName = ""
	*m.formApp = ""
	*m.formMinutes = ""
	*m.formStart = today
	*m.formEnd = shiftDate(today, 6)

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Challenge Name").Value(m.formName),
			huh.NewInput().Title("App (blank = Total)").Value(m.formApp),
			huh.NewInput().Title("Daily Limit (minutes)").Value(m.formMinutes).
				Validate(func(s string) error {
					n, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || n < 0 {
						return fmt.Errorf("minutes must be a non-negative number")
					}
					return nil
				}),
			huh.NewInput().Title("Start (YYYY-MM-DD)").Value(m.formStart).
				Validate(func(s string) error { return engine.ValidateDate(s) }),
			huh.NewInput().Title("End (YYYY-MM-DD)").Value(m.formEnd).
				Validate(func(s string) error { return engine.ValidateDate(s) }),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m challengesModel) updateForm(msg tea.Msg) (challengesModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		name := strings.TrimSpace(*m.formName)
		app := engine.NormalizeApp(strings.TrimSpace(*m.formApp))
		minutes, _ := strconv.Atoi(strings.TrimSpace(*m.formMinutes))
		start, end := *m.formStart, *m.formEnd
		return m, func() tea.Msg {
			_, err := m.store.CreateChallenge(m.user, name, app, minutes, start, end)
			if err != nil {
				return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
			}
			return challengeSavedMsg{name: name}
		}
	}

	return m, cmd
}

func (m challengesModel) view() string {
	if m.formActive && m.form != nil {
		title := titleStyle.Render("New Challenge")
		formView := m.form.View()
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", formView)
		return panelStyle.Width(m.width - 4).Render(content)
	}

	w := m.width - 4
	title := titleStyle.Render("Challenges")

	if len(m.board) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No challenges. Press n to create one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	header := mutedStyle.Render(fmt.Sprintf("  %-22s %-14s %-10s %-11s %-12s %s", "Name", "App", "Limit", "Status", "Today", "Members"))
	rows = append(rows, header)

	for i, cv := range m.board {
		c := cv.Challenge
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		verdict := "—"
		if cv.Status == engine.StatusActive {
			verdict = verdictBadge(cv.Verdict)
		}
		owner := ""
		if c.OwnerID == m.user {
			owner = highlightStyle.Render(" ★")
		}
		row := fmt.Sprintf("%s%-22s %-14s %-10s %-11s %-12s %d",
			cursor, c.Name, c.TargetApp, formatMinutes(c.TargetMinutes),
			statusBadge(cv.Status), verdict, len(c.Participants))
		rows = append(rows, style.Render(row)+owner)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  d: delete/leave (★ = owned by you)"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
