package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"teacherdash/internal/lesson"
	"teacherdash/internal/schedule"
)

type planRequest struct {
	Objective  string `json:"objective"`
	Materials  string `json:"materials"`
	Activities string `json:"activities"`
	Notes      string `json:"notes"`
}

func (s *Server) handleGetPlans(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"plans":     s.lessons.Plans(),
		"templates": s.lessons.Templates(),
	})
}

// handleSetPlan upserts the plan for a block. The block is not required to
// exist: plans for deleted blocks are tolerated rather than reconciled.
func (s *Server) handleSetPlan(c *fiber.Ctx) error {
	var req planRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body.")
	}

	plan := lesson.Plan{
		BlockID:    c.Params("blockId"),
		Objective:  req.Objective,
		Materials:  req.Materials,
		Activities: req.Activities,
		Notes:      req.Notes,
	}
	s.lessons.SetPlan(plan)
	s.persistLessons()
	return c.JSON(plan)
}

type templateRequest struct {
	Name       string `json:"name" validate:"required"`
	Objective  string `json:"objective"`
	Materials  string `json:"materials"`
	Activities string `json:"activities"`
	Notes      string `json:"notes"`
}

func (s *Server) handleAddTemplate(c *fiber.Ctx) error {
	var req templateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body.")
	}
	if err := s.validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "A template name is required.")
	}

	template := lesson.Template{
		ID:         "template-" + uuid.NewString(),
		Name:       req.Name,
		Objective:  req.Objective,
		Materials:  req.Materials,
		Activities: req.Activities,
		Notes:      req.Notes,
	}
	s.lessons.AddTemplate(template)
	s.persistLessons()
	return c.Status(fiber.StatusCreated).JSON(template)
}

// handleGetTemplate serves a single template so the plan editor can apply
// its fields without persisting anything.
func (s *Server) handleGetTemplate(c *fiber.Ctx) error {
	template, ok := s.lessons.Template(c.Params("id"))
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "Template not found.")
	}
	return c.JSON(template)
}

func (s *Server) handleRemoveTemplate(c *fiber.Ctx) error {
	s.lessons.RemoveTemplate(c.Params("id"))
	s.persistLessons()
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) handleGetNotes(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"note": s.notes.Note()})
}

type noteRequest struct {
	Note string `json:"note"`
}

func (s *Server) handleSetNotes(c *fiber.Ctx) error {
	var req noteRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body.")
	}
	s.notes.SetNote(req.Note)
	if err := s.notes.Persist(); err != nil {
		logPersistError("notes", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type sessionResponse struct {
	SelectedDay schedule.DayKey `json:"selectedDay"`
	SparkOpen   bool            `json:"sparkOpen"`
	Quote       schedule.Quote  `json:"quote"`
}

func (s *Server) handleGetSession(c *fiber.Ctx) error {
	return c.JSON(sessionResponse{
		SelectedDay: s.session.SelectedDay(),
		SparkOpen:   s.session.SparkOpen(),
		Quote:       schedule.DailyQuote,
	})
}

type sessionRequest struct {
	SelectedDay *string `json:"selectedDay"`
	SparkOpen   *bool   `json:"sparkOpen"`
}

func (s *Server) handleSetSession(c *fiber.Ctx) error {
	var req sessionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body.")
	}

	if req.SelectedDay != nil {
		day, ok := schedule.ParseDay(*req.SelectedDay)
		if !ok {
			return fiber.NewError(fiber.StatusBadRequest, "Unknown day.")
		}
		s.session.SetSelectedDay(day)
	}
	if req.SparkOpen != nil {
		s.session.SetSparkOpen(*req.SparkOpen)
	}
	return s.handleGetSession(c)
}

func (s *Server) handleToggleSpark(c *fiber.Ctx) error {
	s.session.ToggleSpark()
	return s.handleGetSession(c)
}

func (s *Server) persistLessons() {
	if err := s.lessons.Persist(); err != nil {
		logPersistError("lesson plans", err)
	}
}
