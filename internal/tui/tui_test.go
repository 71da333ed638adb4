package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/sadopc/screentime/internal/engine"
	"github.com/sadopc/screentime/internal/store"
	"github.com/sadopc/screentime/internal/usage"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func newTestService(t *testing.T) (*store.Store, *usage.Service) {
	t.Helper()
	s := newTestStore(t)
	return s, usage.NewService(s)
}

// ============================================================
// Helper functions
// ============================================================

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "0m"},
		{45, "45m"},
		{60, "1h 00m"},
		{205, "3h 25m"},
		{61, "1h 01m"},
		{-5, "0m"},
	}
	for _, tt := range tests {
		got := formatMinutes(tt.minutes)
		if got != tt.want {
			t.Errorf("formatMinutes(%d) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}

func TestProgressBarNoGoal(t *testing.T) {
	got := progressBar(nil, 20)
	if !strings.Contains(got, "no goal set") {
		t.Fatalf("nil progress should say no goal set, got %q", got)
	}
}

func TestProgressBarPartial(t *testing.T) {
	p := &engine.GoalProgress{Used: 30, Target: 60, Percent: 50}
	got := progressBar(p, 20)
	if !strings.Contains(got, "50%") {
		t.Fatalf("expected 50%% in bar, got %q", got)
	}
	if strings.Count(got, "█") != 10 {
		t.Fatalf("expected 10 filled cells, got %d", strings.Count(got, "█"))
	}
	if strings.Count(got, "░") != 10 {
		t.Fatalf("expected 10 empty cells, got %d", strings.Count(got, "░"))
	}
}

func TestProgressBarExceeded(t *testing.T) {
	p := &engine.GoalProgress{Used: 75, Target: 60, Exceeded: true, Percent: 25}
	got := progressBar(p, 20)
	if !strings.Contains(got, "+25% over") {
		t.Fatalf("expected over-limit marker, got %q", got)
	}
	if strings.Count(got, "█") != 20 {
		t.Fatalf("exceeded bar should be fully filled, got %d cells", strings.Count(got, "█"))
	}
}

func TestVerdictBadge(t *testing.T) {
	if !strings.Contains(verdictBadge(engine.VerdictSuccess), "on track") {
		t.Fatal("success badge wrong")
	}
	if !strings.Contains(verdictBadge(engine.VerdictFailed), "over target") {
		t.Fatal("failed badge wrong")
	}
	if !strings.Contains(verdictBadge(engine.VerdictNoData), "no data") {
		t.Fatal("no-data badge wrong")
	}
}

func TestStatusBadge(t *testing.T) {
	if !strings.Contains(statusBadge(engine.StatusUpcoming), "upcoming") {
		t.Fatal("upcoming badge wrong")
	}
	if !strings.Contains(statusBadge(engine.StatusActive), "active") {
		t.Fatal("active badge wrong")
	}
	if !strings.Contains(statusBadge(engine.StatusCompleted), "completed") {
		t.Fatal("completed badge wrong")
	}
}

func TestShiftDate(t *testing.T) {
	tests := []struct {
		date string
		days int
		want string
	}{
		{"2025-01-15", 1, "2025-01-16"},
		{"2025-01-01", -1, "2024-12-31"},
		{"2024-02-28", 1, "2024-02-29"},
		{"garbage", 1, "garbage"},
	}
	for _, tt := range tests {
		got := shiftDate(tt.date, tt.days)
		if got != tt.want {
			t.Errorf("shiftDate(%q, %d) = %q, want %q", tt.date, tt.days, got, tt.want)
		}
	}
}

func TestGoalMinutes(t *testing.T) {
	if goalMinutes(nil) != "0" {
		t.Fatal("nil goal should format as 0")
	}
	if goalMinutes(&engine.Goal{Scope: engine.ScopeDaily, TargetMinutes: 90}) != "90" {
		t.Fatal("goal minutes mismatch")
	}
}

func TestFormatGoal(t *testing.T) {
	if formatGoal(nil) != "not set" {
		t.Fatal("nil goal should read not set")
	}
	if formatGoal(&engine.Goal{Scope: engine.ScopeDaily, TargetMinutes: 90}) != "1h 30m" {
		t.Fatal("goal formatting mismatch")
	}
}

// ============================================================
// View state
// ============================================================

func TestViewNames(t *testing.T) {
	if len(viewNames) != 5 {
		t.Fatalf("expected 5 view names, got %d", len(viewNames))
	}
	expected := []string{"Dashboard", "Log", "Chart", "Challenges", "Settings"}
	for i, name := range expected {
		if viewNames[i] != name {
			t.Fatalf("viewNames[%d] = %q, want %q", i, viewNames[i], name)
		}
	}
}

func TestViewStateConstants(t *testing.T) {
	if viewDashboard != 0 || viewLog != 1 || viewChart != 2 || viewChallenges != 3 || viewSettings != 4 {
		t.Fatal("view state constants out of order")
	}
}

// ============================================================
// Chart bars
// ============================================================

func TestBuildBarsShape(t *testing.T) {
	week := engine.WeekChart{
		Days: []engine.ChartDay{
			{Date: "2025-01-05", HasData: true, Segments: []engine.Segment{
				{App: "Instagram", Minutes: 50, Color: "#6C63FF"},
				{App: "YouTube", Minutes: 40, Color: "#2EC4B6"},
			}},
			{Date: "2025-01-06"},
			{Date: "2025-01-07", HasData: true, Remainder: 30, Segments: []engine.Segment{
				{App: "Instagram", Minutes: 20, Color: "#6C63FF"},
			}},
		},
		MaxTotal: 90,
	}

	bars := buildBars(week)
	if len(bars) != 3 {
		t.Fatalf("expected 3 bars, got %d", len(bars))
	}

	if len(bars[0].Values) != 2 {
		t.Fatalf("day with two apps should have 2 segments, got %d", len(bars[0].Values))
	}
	if bars[0].Values[0].Name != "Instagram" || bars[0].Values[0].Value != 50 {
		t.Fatalf("unexpected first segment: %+v", bars[0].Values[0])
	}

	// No-data days still get a zero-value placeholder bar.
	if len(bars[1].Values) != 1 || bars[1].Values[0].Value != 0 {
		t.Fatalf("empty day should have a single zero value, got %+v", bars[1].Values)
	}

	// Unassigned time is appended after app segments.
	last := bars[2].Values[len(bars[2].Values)-1]
	if last.Name != "unassigned" || last.Value != 30 {
		t.Fatalf("expected trailing unassigned segment, got %+v", last)
	}
}

func TestBuildBarsLabels(t *testing.T) {
	week := engine.WeekChart{Days: []engine.ChartDay{{Date: "2025-01-05"}}}
	bars := buildBars(week)
	if bars[0].Label != "Sun 05" {
		t.Fatalf("expected weekday label, got %q", bars[0].Label)
	}
}

// ============================================================
// Dashboard model
// ============================================================

func TestDashboardDataMsg(t *testing.T) {
	_, svc := newTestService(t)
	d := newDashboardModel(svc, "local")

	msg := dashboardDataMsg{
		today:   "2025-01-08",
		summary: engine.DaySummary{Date: "2025-01-08", Total: 120, Remainder: 70},
		hasData: true,
		streak:  engine.StreakState{CurrentRun: 2, LongestRun: 4},
	}
	d, _ = d.update(msg)

	if d.summary.Total != 120 || !d.hasData {
		t.Fatal("data msg not applied")
	}
	if d.streak.CurrentRun != 2 || d.streak.LongestRun != 4 {
		t.Fatal("streak not applied")
	}
}

func TestDashboardLoadData(t *testing.T) {
	_, svc := newTestService(t)
	today := time.Now().UTC().Format(engine.DateLayout)
	if err := svc.LogScreenTime("local", today, "Instagram", 50); err != nil {
		t.Fatal(err)
	}

	d := newDashboardModel(svc, "local")
	msg := d.loadData()()
	data, ok := msg.(dashboardDataMsg)
	if !ok {
		t.Fatalf("expected dashboardDataMsg, got %T", msg)
	}
	if !data.hasData {
		t.Fatal("expected data for today")
	}
	if data.summary.Total != 50 {
		t.Fatalf("expected total 50, got %d", data.summary.Total)
	}
	if _, ok := data.colors["Instagram"]; !ok {
		t.Fatal("expected a color assigned to Instagram")
	}
}

// ============================================================
// Log model
// ============================================================

func TestLogModelRefresh(t *testing.T) {
	s, svc := newTestService(t)
	l := newLogModel(s, svc, "local")
	l.date = "2025-01-08"

	if err := svc.LogScreenTime("local", "2025-01-08", "", 120); err != nil {
		t.Fatal(err)
	}
	if err := svc.LogScreenTime("local", "2025-01-08", "YouTube", 50); err != nil {
		t.Fatal(err)
	}

	msg := l.refresh()()
	data, ok := msg.(logsDataMsg)
	if !ok {
		t.Fatalf("expected logsDataMsg, got %T", msg)
	}
	if len(data.logs) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(data.logs))
	}

	l, _ = l.update(data)
	if len(l.logs) != 2 {
		t.Fatal("update should apply log rows")
	}
}

func TestLogModelCursorClamp(t *testing.T) {
	s, svc := newTestService(t)
	l := newLogModel(s, svc, "local")
	l.cursor = 5

	l, _ = l.update(logsDataMsg{logs: nil})
	if l.cursor != 0 {
		t.Fatalf("cursor should clamp to 0, got %d", l.cursor)
	}
}

// ============================================================
// Challenges model
// ============================================================

func TestChallengesRefresh(t *testing.T) {
	s, svc := newTestService(t)
	m := newChallengesModel(s, svc, "local")

	_, err := s.CreateChallenge("local", "Less Scrolling", "Instagram", 30, "2025-01-01", "2025-12-31")
	if err != nil {
		t.Fatal(err)
	}

	msg := m.refresh()()
	data, ok := msg.(challengesDataMsg)
	if !ok {
		t.Fatalf("expected challengesDataMsg, got %T", msg)
	}
	if len(data.board) != 1 {
		t.Fatalf("expected 1 challenge, got %d", len(data.board))
	}
	if data.board[0].Challenge.Name != "Less Scrolling" {
		t.Fatalf("unexpected challenge: %+v", data.board[0].Challenge)
	}
}

func TestChallengesRemoveOwned(t *testing.T) {
	s, svc := newTestService(t)
	m := newChallengesModel(s, svc, "local")

	row, err := s.CreateChallenge("local", "Detox", "", 60, "2025-01-01", "2025-01-07")
	if err != nil {
		t.Fatal(err)
	}

	msg := m.remove(row.Challenge())()
	removed, ok := msg.(challengeRemovedMsg)
	if !ok {
		t.Fatalf("expected challengeRemovedMsg, got %T", msg)
	}
	if removed.left {
		t.Fatal("owner removal should delete, not leave")
	}

	board, _ := svc.ChallengeBoard("local", "2025-01-03")
	if len(board) != 0 {
		t.Fatal("challenge should be gone")
	}
}

func TestChallengesRemoveJoined(t *testing.T) {
	s, svc := newTestService(t)
	m := newChallengesModel(s, svc, "ben")

	row, err := s.CreateChallenge("ana", "Detox", "", 60, "2025-01-01", "2025-01-07")
	if err != nil {
		t.Fatal(err)
	}
	if err := s.InviteParticipant(row.ID, "ana", "ben"); err != nil {
		t.Fatal(err)
	}

	msg := m.remove(row.Challenge())()
	removed, ok := msg.(challengeRemovedMsg)
	if !ok {
		t.Fatalf("expected challengeRemovedMsg, got %T", msg)
	}
	if !removed.left {
		t.Fatal("participant removal should leave, not delete")
	}

	// Owner still sees the challenge.
	board, _ := svc.ChallengeBoard("ana", "2025-01-03")
	if len(board) != 1 {
		t.Fatal("owner should keep the challenge")
	}
}

// ============================================================
// Settings model
// ============================================================

func TestSettingsRefresh(t *testing.T) {
	s := newTestStore(t)
	if err := s.SetGoal("local", engine.ScopeDaily, 120); err != nil {
		t.Fatal(err)
	}

	m := newSettingsModel(s)
	msg := m.refresh()()
	data, ok := msg.(settingsDataMsg)
	if !ok {
		t.Fatalf("expected settingsDataMsg, got %T", msg)
	}
	if data.dailyGoal == nil || data.dailyGoal.TargetMinutes != 120 {
		t.Fatalf("expected daily goal 120, got %+v", data.dailyGoal)
	}
	if data.weeklyGoal != nil {
		t.Fatal("weekly goal should be unset")
	}
	if len(data.settings) == 0 {
		t.Fatal("seeded settings should be present")
	}
}

func TestSettingsSaveGoalZeroClears(t *testing.T) {
	s := newTestStore(t)
	if err := s.SetGoal("local", engine.ScopeDaily, 120); err != nil {
		t.Fatal(err)
	}

	m := newSettingsModel(s)
	if err := m.saveGoal("local", engine.ScopeDaily, "0"); err != nil {
		t.Fatal(err)
	}

	g, err := s.GetGoal("local", engine.ScopeDaily)
	if err != nil {
		t.Fatal(err)
	}
	if g != nil {
		t.Fatal("zero should clear the goal")
	}
}

// ============================================================
// App model
// ============================================================

func TestNewApp(t *testing.T) {
	s, svc := newTestService(t)
	app := NewApp(s, svc)

	if app.activeView != viewDashboard {
		t.Fatal("default view should be dashboard")
	}
	if app.showHelp {
		t.Fatal("help should be hidden by default")
	}
	if app.exportPicking {
		t.Fatal("export picker should be hidden by default")
	}
	if app.user != "local" {
		t.Fatalf("default user should be local, got %q", app.user)
	}
}

func TestAppIsFormActiveDefault(t *testing.T) {
	s, svc := newTestService(t)
	app := NewApp(s, svc)

	if app.isFormActive() {
		t.Fatal("no forms should be active initially")
	}
}

func TestAppViewStates(t *testing.T) {
	s, svc := newTestService(t)
	app := NewApp(s, svc)
	app.width = 120
	app.height = 40

	views := []viewState{viewDashboard, viewLog, viewChart, viewChallenges, viewSettings}
	for _, v := range views {
		app.activeView = v
		output := app.View()
		if output == "" {
			t.Fatalf("view %d rendered empty", v)
		}
	}
}

func TestAppRenderHeaderContainsAllTabs(t *testing.T) {
	s, svc := newTestService(t)
	app := NewApp(s, svc)
	app.width = 120
	app.height = 40

	header := app.renderHeader()
	for _, name := range viewNames {
		if !strings.Contains(header, name) {
			t.Fatalf("header missing tab %q", name)
		}
	}
}

func TestAppLoadingState(t *testing.T) {
	s, svc := newTestService(t)
	app := NewApp(s, svc)
	output := app.View()
	if output != "Loading..." {
		t.Fatalf("expected 'Loading...', got %q", output)
	}
}

func TestAppStatusMessage(t *testing.T) {
	s, svc := newTestService(t)
	app := NewApp(s, svc)
	app.width = 120
	app.height = 40
	app.status = "test status"

	footer := app.renderFooter()
	if !strings.Contains(footer, "test status") {
		t.Fatal("footer should contain status message")
	}
}

// ============================================================
// Key bindings
// ============================================================

func TestKeyMapShortHelp(t *testing.T) {
	bindings := keys.ShortHelp()
	if len(bindings) == 0 {
		t.Fatal("short help should have bindings")
	}
}

func TestKeyMapFullHelp(t *testing.T) {
	groups := keys.FullHelp()
	if len(groups) == 0 {
		t.Fatal("full help should have groups")
	}
	for i, g := range groups {
		if len(g) == 0 {
			t.Fatalf("full help group %d is empty", i)
		}
	}
}

// ============================================================
// Styles (smoke test — just verify they don't panic)
// ============================================================

func TestStylesRender(t *testing.T) {
	styles := []struct {
		name string
		fn   func() string
	}{
		{"activeTab", func() string { return activeTabStyle.Render("test") }},
		{"inactiveTab", func() string { return inactiveTabStyle.Render("test") }},
		{"panel", func() string { return panelStyle.Render("test") }},
		{"activePanel", func() string { return activePanelStyle.Render("test") }},
		{"title", func() string { return titleStyle.Render("test") }},
		{"success", func() string { return successStyle.Render("test") }},
		{"warning", func() string { return warningStyle.Render("test") }},
		{"error", func() string { return errorStyle.Render("test") }},
		{"muted", func() string { return mutedStyle.Render("test") }},
		{"highlight", func() string { return highlightStyle.Render("test") }},
		{"header", func() string { return headerStyle.Render("test") }},
		{"footer", func() string { return footerStyle.Render("test") }},
		{"selectedItem", func() string { return selectedItemStyle.Render("test") }},
		{"normalItem", func() string { return normalItemStyle.Render("test") }},
	}

	for _, s := range styles {
		result := s.fn()
		if result == "" {
			t.Fatalf("style %q rendered empty", s.name)
		}
	}
}
