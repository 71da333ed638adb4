package server

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/sadopc/screentime/internal/engine"
	"github.com/sadopc/screentime/internal/store"
)

// --- Wire shapes ---

type logRowDTO struct {
	Date    string  `json:"date"`
	AppName *string `json:"app_name"`
	Minutes int     `json:"screen_time_minutes"`
}

type goalDTO struct {
	Scope         string `json:"scope"`
	TargetMinutes int    `json:"target_minutes"`
}

type challengeDTO struct {
	Name          string `json:"name"`
	TargetApp     string `json:"target_app"`
	TargetMinutes int    `json:"target_minutes"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
}

type challengePatchDTO struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Invite string `json:"invite"`
}

func daySummaryJSON(s engine.DaySummary, hasData bool) fiber.Map {
	perApp := make(map[string]int, len(s.PerApp))
	for app, m := range s.PerApp {
		perApp[string(app)] = m
	}
	return fiber.Map{
		"date":              s.Date,
		"total_minutes":     s.Total,
		"per_app_minutes":   perApp,
		"remainder_minutes": s.Remainder,
		"has_data":          hasData,
	}
}

func challengeJSON(c engine.Challenge, status engine.Status) fiber.Map {
	return fiber.Map{
		"id":             c.ID,
		"owner_id":       c.OwnerID,
		"name":           c.Name,
		"target_app":     string(c.TargetApp),
		"target_minutes": c.TargetMinutes,
		"start_date":     c.StartDate,
		"end_date":       c.EndDate,
		"participants":   c.Participants,
		"status":         string(status),
	}
}

// today resolves the evaluation date: an explicit ?date= wins, otherwise the
// current UTC date.
func today(c *fiber.Ctx) string {
	if d := c.Query("date"); d != "" {
		return d
	}
	return time.Now().UTC().Format(engine.DateLayout)
}

// --- Logs ---

func (s *Server) handleUpsertLog(c *fiber.Ctx) error {
	var dto logRowDTO
	if err := c.BodyParser(&dto); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "malformed body")
	}
	appName := ""
	if dto.AppName != nil {
		appName = *dto.AppName
	}
	if err := s.svc.LogScreenTime(c.Params("id"), dto.Date, appName, dto.Minutes); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusCreated)
}

func (s *Server) handleListLogs(c *fiber.Ctx) error {
	logs, err := s.store.ListLogs(c.Params("id"), store.LogFilter{
		From: c.Query("from"),
		To:   c.Query("to"),
	})
	if err != nil {
		return err
	}
	rows := make([]logRowDTO, 0, len(logs))
	for _, l := range logs {
		app := string(l.App)
		rows = append(rows, logRowDTO{Date: l.Date, AppName: &app, Minutes: l.Minutes})
	}
	return c.JSON(fiber.Map{"logs": rows})
}

func (s *Server) handleDeleteLog(c *fiber.Ctx) error {
	app := engine.NormalizeApp(c.Query("app_name"))
	ok, err := s.svc.RemoveLog(c.Params("id"), c.Query("date"), app)
	if err != nil {
		return err
	}
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "no such log entry")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// --- Aggregates ---

func (s *Server) handleDaySummary(c *fiber.Ctx) error {
	sum, hasData, err := s.svc.Day(c.Params("id"), today(c))
	if err != nil {
		return err
	}
	return c.JSON(daySummaryJSON(sum, hasData))
}

func (s *Server) handleWeek(c *fiber.Ctx) error {
	report, err := s.svc.WeekReport(c.Params("id"), today(c), c.QueryInt("weeks_back", 0))
	if err != nil {
		return err
	}

	days := make([]fiber.Map, 0, len(report.Chart.Days))
	for _, d := range report.Chart.Days {
		segments := make([]fiber.Map, 0, len(d.Segments))
		for _, seg := range d.Segments {
			segments = append(segments, fiber.Map{
				"app_name": string(seg.App),
				"minutes":  seg.Minutes,
				"color":    seg.Color,
			})
		}
		days = append(days, fiber.Map{
			"date":              d.Date,
			"has_data":          d.HasData,
			"segments":          segments,
			"remainder_minutes": d.Remainder,
		})
	}
	return c.JSON(fiber.Map{
		"dates":        report.Dates,
		"weekly_total": report.WeeklyTotal,
		"max_total":    report.Chart.MaxTotal,
		"days":         days,
	})
}

func (s *Server) handleProgress(c *fiber.Ctx) error {
	scope := engine.GoalScope(c.Query("scope", string(engine.ScopeDaily)))
	p, err := s.svc.GoalProgress(c.Params("id"), today(c), scope)
	if err != nil {
		return err
	}
	if p == nil {
		// Not configured is a first-class answer, not an error or a zero.
		return c.JSON(fiber.Map{"configured": false})
	}
	return c.JSON(fiber.Map{
		"configured":     true,
		"used_minutes":   p.Used,
		"target_minutes": p.Target,
		"exceeded":       p.Exceeded,
		"percent":        p.Percent,
	})
}

func (s *Server) handleStreak(c *fiber.Ctx) error {
	st, err := s.svc.MonthStreak(c.Params("id"), today(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"current_run": st.CurrentRun,
		"longest_run": st.LongestRun,
	})
}

// --- Goals ---

func (s *Server) handleSetGoal(c *fiber.Ctx) error {
	var dto goalDTO
	if err := c.BodyParser(&dto); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "malformed body")
	}
	if err := s.store.SetGoal(c.Params("id"), engine.GoalScope(dto.Scope), dto.TargetMinutes); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) handleDeleteGoal(c *fiber.Ctx) error {
	scope := engine.GoalScope(c.Query("scope", string(engine.ScopeDaily)))
	if err := s.store.DeleteGoal(c.Params("id"), scope); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// --- Challenges ---

func (s *Server) handleCreateChallenge(c *fiber.Ctx) error {
	var dto challengeDTO
	if err := c.BodyParser(&dto); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "malformed body")
	}
	row, err := s.store.CreateChallenge(
		c.Params("id"),
		dto.Name,
		engine.NormalizeApp(dto.TargetApp),
		dto.TargetMinutes,
		dto.StartDate,
		dto.EndDate,
	)
	if err != nil {
		return err
	}
	ch := row.Challenge()
	return c.Status(fiber.StatusCreated).JSON(challengeJSON(ch, engine.StatusOn(ch, today(c))))
}

func (s *Server) handleChallengeBoard(c *fiber.Ctx) error {
	views, err := s.svc.ChallengeBoard(c.Params("id"), today(c))
	if err != nil {
		return err
	}
	out := make([]fiber.Map, 0, len(views))
	for _, v := range views {
		m := challengeJSON(v.Challenge, v.Status)
		m["verdict"] = string(v.Verdict)
		out = append(out, m)
	}
	return c.JSON(fiber.Map{"challenges": out})
}

func (s *Server) handleUpdateChallenge(c *fiber.Ctx) error {
	var dto challengePatchDTO
	if err := c.BodyParser(&dto); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "malformed body")
	}
	id := c.Params("cid")
	if dto.Name != "" {
		if err := s.store.RenameChallenge(id, dto.UserID, dto.Name); err != nil {
			return err
		}
	}
	if dto.Invite != "" {
		if err := s.store.InviteParticipant(id, dto.UserID, dto.Invite); err != nil {
			return err
		}
	}
	row, err := s.store.GetChallenge(id)
	if err != nil {
		return err
	}
	ch := row.Challenge()
	return c.JSON(challengeJSON(ch, engine.StatusOn(ch, today(c))))
}

// handleDeleteChallenge deletes when the caller owns the challenge and
// leaves otherwise.
func (s *Server) handleDeleteChallenge(c *fiber.Ctx) error {
	id := c.Params("cid")
	userID := c.Query("user_id")

	row, err := s.store.GetChallenge(id)
	if err != nil {
		return err
	}
	if row.OwnerID == userID {
		if err := s.store.DeleteChallenge(id, userID); err != nil {
			return err
		}
	} else {
		if err := s.store.LeaveChallenge(id, userID); err != nil {
			return err
		}
	}
	return c.SendStatus(fiber.StatusNoContent)
}
