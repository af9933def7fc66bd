package server

import (
	"bufio"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

const keepaliveInterval = 30 * time.Second

// handleEvents streams store-change notifications as server-sent events so
// an open view can re-render when another client (or the bot) mutates
// state. One event per changed store; payloads stay empty, the client
// refetches what it shows.
func (s *Server) handleEvents(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")

	scheduleCh := s.schedule.Subscribe()
	lessonCh := s.lessons.Subscribe()

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer s.schedule.Unsubscribe(scheduleCh)
		defer s.lessons.Unsubscribe(lessonCh)

		keepalive := time.NewTicker(keepaliveInterval)
		defer keepalive.Stop()

		for {
			select {
			case <-scheduleCh:
				fmt.Fprint(w, "event: schedule\ndata: {}\n\n")
			case <-lessonCh:
				fmt.Fprint(w, "event: lessonPlans\ndata: {}\n\n")
			case <-keepalive.C:
				fmt.Fprint(w, ": keepalive\n\n")
			}
			if err := w.Flush(); err != nil {
				// Client went away.
				return
			}
		}
	}))
	return nil
}
