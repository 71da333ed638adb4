// Package server exposes the usage engine over HTTP. The wire shapes match
// the client contract: log rows as {date, app_name, screen_time_minutes}
// with a null or "Total" app name meaning the day total. Authentication is
// out of scope; the user id in the path is trusted.
package server

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"

	"github.com/sadopc/screentime/internal/engine"
	"github.com/sadopc/screentime/internal/store"
	"github.com/sadopc/screentime/internal/usage"
)

// Server is the screen-time HTTP API.
type Server struct {
	app    *fiber.App
	svc    *usage.Service
	store  *store.Store
	logger zerolog.Logger
	config Config
}

// New creates and configures the API server.
func New(cfg Config, svc *usage.Service, st *store.Store, logger zerolog.Logger) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler(logger),
	})

	s := &Server{
		app:    app,
		svc:    svc,
		store:  st,
		logger: logger.With().Str("component", "api").Logger(),
		config: cfg,
	}

	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// Listen blocks serving HTTP on the configured port.
func (s *Server) Listen() error {
	return s.app.Listen(fmt.Sprintf(":%d", s.config.HTTPPort))
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func (s *Server) setupMiddleware() {
	s.app.Use(recover.New())

	if s.config.CORSOrigins != "" {
		s.app.Use(cors.New(cors.Config{
			AllowOrigins: s.config.CORSOrigins,
			AllowHeaders: "Origin, Content-Type, Accept",
			AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		}))
	}

	// Request logging, probes excluded.
	s.app.Use(func(c *fiber.Ctx) error {
		if c.Path() == "/healthz" {
			return c.Next()
		}
		s.logger.Info().
			Str("method", c.Method()).
			Str("path", c.Path()).
			Str("ip", c.IP()).
			Msg("api request")
		return c.Next()
	})
}

func (s *Server) setupRoutes() {
	s.app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := s.app.Group("/api/v1")

	users := v1.Group("/users/:id")
	users.Post("/logs", s.handleUpsertLog)
	users.Get("/logs", s.handleListLogs)
	users.Delete("/logs", s.handleDeleteLog)
	users.Get("/summary", s.handleDaySummary)
	users.Get("/week", s.handleWeek)
	users.Get("/progress", s.handleProgress)
	users.Get("/streak", s.handleStreak)
	users.Put("/goal", s.handleSetGoal)
	users.Delete("/goal", s.handleDeleteGoal)
	users.Post("/challenges", s.handleCreateChallenge)
	users.Get("/challenges", s.handleChallengeBoard)

	v1.Patch("/challenges/:cid", s.handleUpdateChallenge)
	v1.Delete("/challenges/:cid", s.handleDeleteChallenge)
}

// errorHandler maps domain errors onto status codes: invalid input is the
// caller's fault, ownership violations are forbidden, unknown challenges are
// not found, everything else is a 500.
func errorHandler(logger zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
		}

		code := fiber.StatusInternalServerError
		switch {
		case errors.Is(err, engine.ErrInvalidInput):
			code = fiber.StatusBadRequest
		case errors.Is(err, store.ErrNotFound):
			code = fiber.StatusNotFound
		case errors.Is(err, store.ErrNotOwner):
			code = fiber.StatusForbidden
		}

		if code == fiber.StatusInternalServerError {
			logger.Error().Err(err).Str("path", c.Path()).Msg("request failed")
		}
		return c.Status(code).JSON(fiber.Map{"error": err.Error()})
	}
}
