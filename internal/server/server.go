// Package server exposes the dashboard stores over a JSON API.
package server

import (
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/utils"

	"teacherdash/internal/autofill"
	"teacherdash/internal/clip"
	"teacherdash/internal/config"
	"teacherdash/internal/lesson"
	"teacherdash/internal/metrics"
	"teacherdash/internal/notes"
	"teacherdash/internal/schedule"
	"teacherdash/internal/session"
)

// Deps carries everything the server needs.
type Deps struct {
	Config   *config.Config
	Schedule *schedule.Store
	Lessons  *lesson.Store
	Notes    *notes.Store
	Session  *session.Store
	Vision   autofill.Vision
	Clipper  *clip.Clipper
	Metrics  *metrics.Store // optional; nil disables recording

	// Now is the clock used for countdowns and day selection.
	// Defaults to time.Now.
	Now func() time.Time
}

// Server owns the Fiber app and the dashboard stores.
type Server struct {
	app      *fiber.App
	cfg      *config.Config
	schedule *schedule.Store
	lessons  *lesson.Store
	notes    *notes.Store
	session  *session.Store
	vision   autofill.Vision
	clipper  *clip.Clipper
	metrics  *metrics.Store
	validate *validator.Validate
	now      func() time.Time
}

// New builds the server and registers all routes.
func New(d Deps) *Server {
	if d.Now == nil {
		d.Now = time.Now
	}

	s := &Server{
		cfg:      d.Config,
		schedule: d.Schedule,
		lessons:  d.Lessons,
		notes:    d.Notes,
		session:  d.Session,
		vision:   d.Vision,
		clipper:  d.Clipper,
		metrics:  d.Metrics,
		validate: validator.New(),
		now:      d.Now,
	}

	s.app = fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})
	s.app.Use(recover.New())
	s.app.Use(requestLogger)
	s.registerRoutes()
	return s
}

// App exposes the underlying Fiber app, mainly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves the API on the configured address.
func (s *Server) Listen() error {
	return s.app.Listen(s.cfg.Addr)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func (s *Server) registerRoutes() {
	s.app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	api := s.app.Group("/api")
	api.Post("/token", s.handleToken)
	api.Use(s.requireAuth)

	api.Get("/health", s.handleSysHealth)

	api.Get("/week", s.handleGetWeek)
	api.Put("/schedule", s.handleReplaceSchedule)
	api.Get("/days/:day", s.handleGetDay)
	api.Get("/days/:day/print", s.handleGetPrintDay)
	api.Post("/days/:day/blocks", s.handleAddBlock)
	api.Put("/days/:day/blocks/:id", s.handleUpdateBlock)
	api.Delete("/days/:day/blocks/:id", s.handleRemoveBlock)
	api.Post("/days/:day/blocks/:id/resources", s.handleClipResource)

	api.Get("/image", s.handleGetImage)
	api.Put("/image", s.handleSetImage)

	api.Get("/notes", s.handleGetNotes)
	api.Put("/notes", s.handleSetNotes)

	api.Get("/plans", s.handleGetPlans)
	api.Put("/plans/:blockId", s.handleSetPlan)
	api.Post("/templates", s.handleAddTemplate)
	api.Get("/templates/:id", s.handleGetTemplate)
	api.Delete("/templates/:id", s.handleRemoveTemplate)

	api.Get("/session", s.handleGetSession)
	api.Put("/session", s.handleSetSession)
	api.Post("/session/spark/toggle", s.handleToggleSpark)

	api.Post("/gemini", s.handleGeminiProxy)
	api.Post("/autofill", s.handleAutofill)
	api.Get("/metrics/daily", s.handleDailyMetrics)

	api.Get("/events", s.handleEvents)
}

// errorHandler keeps error responses uniform: explicit fiber errors carry
// their own message, anything else becomes a generic 500.
func errorHandler(c *fiber.Ctx, err error) error {
	if e, ok := err.(*fiber.Error); ok {
		return c.Status(e.Code).JSON(fiber.Map{"error": e.Message})
	}
	return c.Status(fiber.StatusInternalServerError).
		JSON(fiber.Map{"error": "Unexpected server error."})
}

// requestLogger tags each request with an id and logs method, path,
// status and duration.
func requestLogger(c *fiber.Ctx) error {
	id := c.Get("X-Request-ID")
	if id == "" {
		id = utils.UUID()
	}
	c.Set("X-Request-ID", id)
	start := time.Now()
	err := c.Next()
	log.Printf("[REQ] id=%s %s %s status=%d dur=%s",
		id, c.Method(), c.OriginalURL(), c.Response().StatusCode(), time.Since(start))
	return err
}

// logPersistError records a swallowed storage failure. Persistence errors
// never reach the user; the in-memory state stays authoritative.
func logPersistError(what string, err error) {
	log.Printf("Warning: failed to persist %s: %v", what, err)
}

// parseDay reads and validates the :day route parameter.
func parseDay(c *fiber.Ctx) (schedule.DayKey, error) {
	day, ok := schedule.ParseDay(c.Params("day"))
	if !ok {
		return "", fiber.NewError(fiber.StatusNotFound, "Unknown day.")
	}
	return day, nil
}
