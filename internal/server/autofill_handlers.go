package server

import (
	"context"
	"errors"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"teacherdash/internal/autofill"
	"teacherdash/internal/metrics"
)

type geminiRequest struct {
	APIKey       string `json:"apiKey"`
	ImageDataURL string `json:"imageDataUrl"`
}

// handleGeminiProxy is the raw vision proxy: it forwards the image to
// Gemini with the fixed timetable prompt and hands the free-text reply
// back untouched as {text}.
func (s *Server) handleGeminiProxy(c *fiber.Ctx) error {
	var req geminiRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Missing apiKey or imageDataUrl.")
	}
	if req.APIKey == "" || req.ImageDataURL == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Missing apiKey or imageDataUrl.")
	}

	mimeType, payload, err := autofill.DecodeDataURL(req.ImageDataURL)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid image data format.")
	}

	text, err := s.vision.ReadTimetable(c.Context(), req.APIKey, mimeType, payload)
	if err != nil {
		if code, body, ok := autofill.UpstreamStatus(err); ok {
			return c.Status(code).JSON(fiber.Map{
				"error":   "Gemini request failed.",
				"details": body,
			})
		}
		return err
	}

	return c.JSON(fiber.Map{"text": text})
}

type autofillRequest struct {
	APIKey       string `json:"apiKey"`
	ImageDataURL string `json:"imageDataUrl"`
}

// handleAutofill runs the whole flow server-side: vision call, reply
// parsing, and one atomic replacement of the weekly schedule. Every answer
// carries a human-readable status string; any failure leaves the existing
// schedule untouched.
func (s *Server) handleAutofill(c *fiber.Ctx) error {
	var req autofillRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body.")
	}

	apiKey := req.APIKey
	if apiKey == "" {
		apiKey = s.cfg.GeminiAPIKey
	}
	image := req.ImageDataURL
	if image == "" {
		image = s.schedule.TimetableImage()
	}
	if apiKey == "" || image == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status": "Upload an image and enter your API key first.",
		})
	}

	mimeType, payload, err := autofill.DecodeDataURL(image)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status": "Invalid image data format.",
		})
	}

	start := time.Now()
	text, err := s.vision.ReadTimetable(c.Context(), apiKey, mimeType, payload)
	latency := time.Since(start)
	if err != nil {
		if code, body, ok := autofill.UpstreamStatus(err); ok {
			s.recordAutofill("upstream_error", latency)
			return c.Status(code).JSON(fiber.Map{
				"status": "Gemini error: " + body,
			})
		}
		s.recordAutofill("network_error", latency)
		return err
	}

	week, err := autofill.ParseWeek(text)
	if err != nil {
		if errors.Is(err, autofill.ErrNoSchedule) {
			s.recordAutofill("no_schedule", latency)
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"status": "Could not read a schedule from the image.",
			})
		}
		s.recordAutofill("parse_error", latency)
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"status": "Failed to parse the AI response. Try again.",
		})
	}

	s.recordAutofill("ok", latency)
	s.schedule.ReplaceAll(week)
	s.persistSchedule()
	return c.JSON(fiber.Map{
		"status":   "Auto-fill complete. Please review and edit if needed.",
		"schedule": s.schedule.Week(),
	})
}

func (s *Server) recordAutofill(status string, latency time.Duration) {
	if s.metrics == nil {
		return
	}
	err := s.metrics.Record(context.Background(), metrics.AutofillMetric{
		Model:     "gemini",
		Status:    status,
		LatencyMS: latency.Milliseconds(),
	})
	if err != nil {
		log.Printf("Warning: failed to record autofill metric: %v", err)
	}
}

func (s *Server) handleDailyMetrics(c *fiber.Ctx) error {
	if s.metrics == nil {
		return c.JSON(fiber.Map{"usage": []metrics.DailyUsage{}})
	}

	days := 7
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid days parameter.")
		}
		days = parsed
	}

	usage, err := s.metrics.GetDailyUsage(c.Context(), days)
	if err != nil {
		return err
	}
	if usage == nil {
		usage = []metrics.DailyUsage{}
	}
	return c.JSON(fiber.Map{"usage": usage})
}

func (s *Server) handleSysHealth(c *fiber.Ctx) error {
	return c.JSON(metrics.GetSysHealth(s.cfg.DataDir))
}
