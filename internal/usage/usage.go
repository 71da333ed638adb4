// Package usage wires the store to the engine: it fetches raw rows, feeds
// the pure computations, and memoizes summarized ranges per user. All state
// lives in the store and the explicit cache; the engine itself stays pure.
package usage

import (
	"fmt"

	"github.com/sadopc/screentime/internal/cache"
	"github.com/sadopc/screentime/internal/engine"
	"github.com/sadopc/screentime/internal/store"
)

const cacheSize = 256

// Service answers usage questions for one store.
type Service struct {
	store *store.Store
	// Summarized date ranges keyed by "user|from|to". Log mutations drop
	// every key belonging to the touched user.
	ranges *cache.Cache[string, map[string]engine.DaySummary]
}

func NewService(s *store.Store) *Service {
	return &Service{
		store:  s,
		ranges: cache.New[string, map[string]engine.DaySummary](cacheSize),
	}
}

func rangeKey(userID, from, to string) string {
	return userID + "|" + from + "|" + to
}

// summarizeRange builds one DaySummary per date that has rows in [from, to].
// Dates without rows are absent from the map, keeping "no data" observable.
func (s *Service) summarizeRange(userID, from, to string) (map[string]engine.DaySummary, error) {
	key := rangeKey(userID, from, to)
	if cached, ok := s.ranges.Get(key); ok {
		return cached, nil
	}

	logs, err := s.store.ListLogs(userID, store.LogFilter{From: from, To: to})
	if err != nil {
		return nil, fmt.Errorf("fetch logs: %w", err)
	}

	byDate := make(map[string][]engine.LogEntry)
	for _, l := range logs {
		byDate[l.Date] = append(byDate[l.Date], l.Entry())
	}

	summaries := make(map[string]engine.DaySummary, len(byDate))
	for date, entries := range byDate {
		sum, err := engine.SummarizeDay(date, entries)
		if err != nil {
			return nil, err
		}
		summaries[date] = sum
	}

	s.ranges.Put(key, summaries)
	return summaries, nil
}

// invalidate drops every cached range for one user.
func (s *Service) invalidate(userID string) {
	prefix := userID + "|"
	s.ranges.DeleteFunc(func(k string) bool {
		return len(k) >= len(prefix) && k[:len(prefix)] == prefix
	})
}

// LogScreenTime upserts one usage row from its wire form (empty or "Total"
// app name means the day total) and invalidates the user's cached ranges.
func (s *Service) LogScreenTime(userID, date, appName string, minutes int) error {
	err := s.store.UpsertLog(userID, store.ScreenLog{
		Date:    date,
		App:     engine.NormalizeApp(appName),
		Minutes: minutes,
	})
	if err != nil {
		return err
	}
	s.invalidate(userID)
	return nil
}

// RemoveLog deletes one usage row and invalidates the user's cached ranges.
func (s *Service) RemoveLog(userID, date string, app engine.AppLabel) (bool, error) {
	ok, err := s.store.DeleteLog(userID, date, app)
	if err != nil {
		return false, err
	}
	if ok {
		s.invalidate(userID)
	}
	return ok, nil
}

// Day returns one date's summary plus whether any entries back it. A day
// with rows that sum to zero is data; a day with no rows is not.
func (s *Service) Day(userID, date string) (engine.DaySummary, bool, error) {
	if err := engine.ValidateDate(date); err != nil {
		return engine.DaySummary{}, false, err
	}
	summaries, err := s.summarizeRange(userID, date, date)
	if err != nil {
		return engine.DaySummary{}, false, err
	}
	if sum, ok := summaries[date]; ok {
		return sum, true, nil
	}
	return engine.DaySummary{Date: date, PerApp: map[engine.AppLabel]int{}}, false, nil
}

// WeekReport is one rendered-week's worth of data: the Sun–Sat dates,
// whatever summaries exist, the stacked chart projection and the summed
// weekly total.
type WeekReport struct {
	Dates       []string
	Summaries   map[string]engine.DaySummary
	Chart       engine.WeekChart
	WeeklyTotal int
}

// WeekReport builds the week containing today shifted back weeksBack weeks.
// Colors come from the user's whole log history so apps keep their color
// when the view moves between weeks.
func (s *Service) WeekReport(userID, today string, weeksBack int) (*WeekReport, error) {
	if err := engine.ValidateDate(today); err != nil {
		return nil, err
	}
	ref := today
	if weeksBack > 0 {
		dates, err := engine.TrailingDays(today, 7*weeksBack+1)
		if err != nil {
			return nil, err
		}
		ref = dates[0]
	}

	dates, err := engine.WeekOf(ref)
	if err != nil {
		return nil, err
	}
	summaries, err := s.summarizeRange(userID, dates[0], dates[6])
	if err != nil {
		return nil, err
	}
	apps, err := s.store.DistinctApps(userID)
	if err != nil {
		return nil, err
	}

	colors := engine.AssignColors(apps)
	return &WeekReport{
		Dates:       dates,
		Summaries:   summaries,
		Chart:       engine.ProjectWeek(dates, summaries, today, colors),
		WeeklyTotal: engine.SumRange(dates, summaries, today),
	}, nil
}

// GoalProgress compares today's or this week's usage against the user's
// goal for that scope. Returns nil with no error when no goal is set; "not
// configured" is not zero progress.
func (s *Service) GoalProgress(userID, today string, scope engine.GoalScope) (*engine.GoalProgress, error) {
	if err := engine.ValidateDate(today); err != nil {
		return nil, err
	}
	goal, err := s.store.GetGoal(userID, scope)
	if err != nil {
		return nil, err
	}
	if goal == nil {
		return nil, nil
	}

	var used int
	switch scope {
	case engine.ScopeWeekly:
		dates, err := engine.WeekOf(today)
		if err != nil {
			return nil, err
		}
		summaries, err := s.summarizeRange(userID, dates[0], dates[6])
		if err != nil {
			return nil, err
		}
		used = engine.SumRange(dates, summaries, today)
	default:
		sum, _, err := s.Day(userID, today)
		if err != nil {
			return nil, err
		}
		used = sum.Total
	}
	return engine.Progress(used, goal), nil
}

// TrailingTotal sums the last n days of usage ending today.
func (s *Service) TrailingTotal(userID, today string, n int) (int, error) {
	dates, err := engine.TrailingDays(today, n)
	if err != nil {
		return 0, err
	}
	summaries, err := s.summarizeRange(userID, dates[0], dates[len(dates)-1])
	if err != nil {
		return 0, err
	}
	return engine.SumRange(dates, summaries, today), nil
}

// MonthStreak evaluates the current month's days so far against the user's
// daily goal. Days without entries are zero-filled so they break runs. With
// no daily goal the state is all zeros, meaning "not applicable".
func (s *Service) MonthStreak(userID, today string) (engine.StreakState, error) {
	if err := engine.ValidateDate(today); err != nil {
		return engine.StreakState{}, err
	}
	goal, err := s.store.GetGoal(userID, engine.ScopeDaily)
	if err != nil {
		return engine.StreakState{}, err
	}
	if goal == nil {
		return engine.StreakState{}, nil
	}

	dates, err := engine.MonthSoFar(today)
	if err != nil {
		return engine.StreakState{}, err
	}
	summaries, err := s.summarizeRange(userID, dates[0], dates[len(dates)-1])
	if err != nil {
		return engine.StreakState{}, err
	}

	days := make([]engine.DaySummary, 0, len(dates))
	for _, d := range dates {
		if sum, ok := summaries[d]; ok {
			days = append(days, sum)
			continue
		}
		days = append(days, engine.DaySummary{Date: d})
	}
	return engine.EvaluateStreak(days, goal), nil
}

// ChallengeView pairs a challenge with its derived lifecycle status and the
// viewer's verdict for today.
type ChallengeView struct {
	Challenge engine.Challenge
	Status    engine.Status
	Verdict   engine.Verdict
}

// ChallengeBoard lists the user's challenges with today's status and
// verdict. A failure fetching today's usage degrades the verdicts to
// no-data instead of failing the whole board; challenge display is
// non-critical.
func (s *Service) ChallengeBoard(userID, today string) ([]ChallengeView, error) {
	if err := engine.ValidateDate(today); err != nil {
		return nil, err
	}
	rows, err := s.store.ListChallenges(userID)
	if err != nil {
		return nil, fmt.Errorf("list challenges: %w", err)
	}

	var daySummary *engine.DaySummary
	if sum, present, err := s.Day(userID, today); err == nil && present {
		daySummary = &sum
	}

	views := make([]ChallengeView, 0, len(rows))
	for _, row := range rows {
		ch := row.Challenge()
		views = append(views, ChallengeView{
			Challenge: ch,
			Status:    engine.StatusOn(ch, today),
			Verdict:   engine.EvaluateToday(ch, daySummary),
		})
	}
	return views, nil
}
