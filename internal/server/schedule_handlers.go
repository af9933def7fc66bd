package server

import (
	"github.com/gofiber/fiber/v2"

	"teacherdash/internal/autofill"
	"teacherdash/internal/lesson"
	"teacherdash/internal/schedule"
	"teacherdash/internal/timeline"
)

type blockRequest struct {
	Title     string                  `json:"title" validate:"required"`
	Time      string                  `json:"time" validate:"required"`
	Location  string                  `json:"location"`
	Type      string                  `json:"type" validate:"omitempty,oneof=class meeting reset"`
	Topic     string                  `json:"topic"`
	Resources []schedule.ResourceLink `json:"resources"`
}

// handleGetWeek returns the full weekly mapping. Loading the week overview
// also recomputes the selected day from the real-world date.
func (s *Server) handleGetWeek(c *fiber.Ctx) error {
	day := s.session.JumpToToday(s.now())
	return c.JSON(fiber.Map{
		"schedule":    s.schedule.Week(),
		"selectedDay": day,
		"dayLabels":   schedule.DayLabels,
	})
}

// handleReplaceSchedule overwrites the entire week. All five weekday keys
// must be supplied.
func (s *Server) handleReplaceSchedule(c *fiber.Ctx) error {
	var week schedule.Week
	if err := c.BodyParser(&week); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body.")
	}
	for _, day := range schedule.WeekOrder {
		if _, ok := week[day]; !ok {
			return fiber.NewError(fiber.StatusBadRequest,
				"Schedule must include all five weekdays.")
		}
	}

	s.schedule.ReplaceAll(week)
	s.persistSchedule()
	return c.JSON(fiber.Map{"schedule": s.schedule.Week()})
}

func (s *Server) handleAddBlock(c *fiber.Ctx) error {
	day, err := parseDay(c)
	if err != nil {
		return err
	}

	var req blockRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body.")
	}
	if err := s.validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Title and time are required.")
	}

	block := schedule.NewBlock(day, schedule.BlockParams{
		Title:     req.Title,
		Time:      req.Time,
		Location:  req.Location,
		Type:      req.Type,
		Topic:     req.Topic,
		Resources: req.Resources,
	})
	s.schedule.AddBlock(day, block)
	s.persistSchedule()
	return c.Status(fiber.StatusCreated).JSON(block)
}

func (s *Server) handleUpdateBlock(c *fiber.Ctx) error {
	day, err := parseDay(c)
	if err != nil {
		return err
	}
	id := c.Params("id")
	if _, ok := s.schedule.Find(day, id); !ok {
		return fiber.NewError(fiber.StatusNotFound, "Block not found.")
	}

	var req blockRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body.")
	}
	if err := s.validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Title and time are required.")
	}

	location := req.Location
	if location == "" {
		location = "TBD"
	}
	block := schedule.Block{
		ID:        id,
		Title:     req.Title,
		Time:      req.Time,
		Location:  location,
		Type:      schedule.NormalizeType(req.Type),
		Topic:     req.Topic,
		Resources: req.Resources,
	}
	s.schedule.UpdateBlock(day, block)
	s.persistSchedule()
	return c.JSON(block)
}

func (s *Server) handleRemoveBlock(c *fiber.Ctx) error {
	day, err := parseDay(c)
	if err != nil {
		return err
	}
	s.schedule.RemoveBlock(day, c.Params("id"))
	s.persistSchedule()
	return c.SendStatus(fiber.StatusNoContent)
}

type clipRequest struct {
	URL string `json:"url" validate:"required,url"`
}

// handleClipResource fetches a web page and attaches it to the block as a
// resource link labelled with the page title.
func (s *Server) handleClipResource(c *fiber.Ctx) error {
	day, err := parseDay(c)
	if err != nil {
		return err
	}
	id := c.Params("id")
	block, ok := s.schedule.Find(day, id)
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "Block not found.")
	}

	var req clipRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body.")
	}
	if err := s.validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "A valid url is required.")
	}

	link, err := s.clipper.ClipResource(c.Context(), req.URL)
	if err != nil {
		return fiber.NewError(fiber.StatusBadGateway, "Could not clip the page.")
	}

	block.Resources = append(block.Resources, link)
	s.schedule.UpdateBlock(day, block)
	s.persistSchedule()
	return c.JSON(block)
}

// dayView is the aggregated payload behind the daily deep-focus view.
type dayView struct {
	Day              schedule.DayKey  `json:"day"`
	Label            string           `json:"label"`
	Blocks           []schedule.Block `json:"blocks"`
	PlannedCount     int              `json:"plannedCount"`
	NextBlock        *schedule.Block  `json:"nextBlock"`
	Countdown        string           `json:"countdown,omitempty"`
	IndicatorPercent int              `json:"indicatorPercent"`
}

func (s *Server) handleGetDay(c *fiber.Ctx) error {
	day, err := parseDay(c)
	if err != nil {
		return err
	}

	blocks := s.schedule.Blocks(day)
	plans := s.lessons.Plans()
	nowMinutes := timeline.MinuteOfDay(s.now())

	view := dayView{
		Day:              day,
		Label:            schedule.DayLabels[day],
		Blocks:           blocks,
		PlannedCount:     timeline.PlannedCount(blocks, plans),
		IndicatorPercent: timeline.IndicatorPercent(blocks, nowMinutes),
	}
	if next, ok := timeline.NextBlock(blocks, nowMinutes); ok {
		b := next.Block
		view.NextBlock = &b
		view.Countdown = timeline.Countdown(next.Start, nowMinutes)
	}
	return c.JSON(view)
}

// printEntry joins a block with its lesson plan for the printable day view.
type printEntry struct {
	Block schedule.Block `json:"block"`
	Plan  *lesson.Plan   `json:"plan"`
}

func (s *Server) handleGetPrintDay(c *fiber.Ctx) error {
	day, err := parseDay(c)
	if err != nil {
		return err
	}

	blocks := s.schedule.Blocks(day)
	entries := make([]printEntry, 0, len(blocks))
	for _, block := range blocks {
		entry := printEntry{Block: block}
		if plan, ok := s.lessons.Plan(block.ID); ok {
			entry.Plan = &plan
		}
		entries = append(entries, entry)
	}
	return c.JSON(fiber.Map{
		"day":     day,
		"label":   schedule.DayLabels[day],
		"entries": entries,
	})
}

func (s *Server) handleGetImage(c *fiber.Ctx) error {
	image := s.schedule.TimetableImage()
	if image == "" {
		return c.JSON(fiber.Map{"image": nil})
	}
	return c.JSON(fiber.Map{"image": image})
}

type imageRequest struct {
	Image string `json:"image"`
}

// handleSetImage stores or clears the uploaded timetable photo.
func (s *Server) handleSetImage(c *fiber.Ctx) error {
	var req imageRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body.")
	}
	if req.Image != "" {
		if _, _, err := autofill.DecodeDataURL(req.Image); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid image data format.")
		}
	}
	s.schedule.SetTimetableImage(req.Image)
	s.persistSchedule()
	return c.SendStatus(fiber.StatusNoContent)
}

// persistSchedule writes the schedule store, swallowing storage errors per
// the persistence policy: the in-memory state is already correct and the
// user is never shown a storage failure.
func (s *Server) persistSchedule() {
	if err := s.schedule.Persist(); err != nil {
		logPersistError("schedule", err)
	}
}
