package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"google.golang.org/api/googleapi"

	"teacherdash/internal/autofill"
	"teacherdash/internal/clip"
	"teacherdash/internal/config"
	"teacherdash/internal/lesson"
	"teacherdash/internal/notes"
	"teacherdash/internal/schedule"
	"teacherdash/internal/session"
	"teacherdash/internal/storage"
)

// pngDataURL is a tiny valid data URL used across the tests.
const pngDataURL = "data:image/png;base64,aGVsbG8="

type mockVision struct {
	reply string
	err   error

	gotAPIKey string
	gotMime   string
	gotImage  []byte
}

func (m *mockVision) ReadTimetable(ctx context.Context, apiKey, mimeType string, image []byte) (string, error) {
	m.gotAPIKey = apiKey
	m.gotMime = mimeType
	m.gotImage = image
	if m.err != nil {
		return "", m.err
	}
	return m.reply, nil
}

// fixedClock pins the tests to Wednesday 08:30.
func fixedClock() time.Time {
	return time.Date(2026, time.August, 26, 8, 30, 0, 0, time.UTC)
}

func newTestServer(t *testing.T, vision autofill.Vision, cfg *config.Config) *Server {
	t.Helper()
	st, err := storage.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}
	if cfg == nil {
		cfg = &config.Config{Addr: ":0", DataDir: t.TempDir()}
	}
	return New(Deps{
		Config:   cfg,
		Schedule: schedule.NewStore(st),
		Lessons:  lesson.NewStore(st),
		Notes:    notes.NewStore(st),
		Session:  session.NewStore(),
		Vision:   vision,
		Clipper:  clip.NewClipper(),
		Now:      fixedClock,
	})
}

func doJSON(t *testing.T, s *Server, method, path string, body any) (*http.Response, map[string]json.RawMessage) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := s.App().Test(req, -1)
	if err != nil {
		t.Fatalf("Request %s %s failed: %v", method, path, err)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	var fields map[string]json.RawMessage
	if len(raw) > 0 && json.Valid(raw) {
		json.Unmarshal(raw, &fields)
	}
	return resp, fields
}

func jsonString(t *testing.T, fields map[string]json.RawMessage, key string) string {
	t.Helper()
	var s string
	if err := json.Unmarshal(fields[key], &s); err != nil {
		t.Fatalf("Expected string field %q, got %s", key, fields[key])
	}
	return s
}

func TestWeekAndDayViews(t *testing.T) {
	s := newTestServer(t, &mockVision{}, nil)

	t.Run("Week Jumps To Today", func(t *testing.T) {
		resp, fields := doJSON(t, s, "GET", "/api/week", nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected 200, got %d", resp.StatusCode)
		}
		if got := jsonString(t, fields, "selectedDay"); got != "wednesday" {
			t.Errorf("Expected selectedDay wednesday, got %q", got)
		}
	})

	t.Run("Day View Aggregates", func(t *testing.T) {
		resp, fields := doJSON(t, s, "GET", "/api/days/wednesday", nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected 200, got %d", resp.StatusCode)
		}
		var view struct {
			Label            string           `json:"label"`
			Blocks           []schedule.Block `json:"blocks"`
			NextBlock        *schedule.Block  `json:"nextBlock"`
			Countdown        string           `json:"countdown"`
			IndicatorPercent int              `json:"indicatorPercent"`
		}
		combined, _ := json.Marshal(fields)
		if err := json.Unmarshal(combined, &view); err != nil {
			t.Fatal(err)
		}
		if view.Label != "Wednesday" {
			t.Errorf("Expected label Wednesday, got %q", view.Label)
		}
		if len(view.Blocks) == 0 {
			t.Fatal("Expected default Wednesday blocks")
		}
		if view.NextBlock == nil {
			t.Error("Expected a next block at 08:30")
		}
		if view.Countdown == "" {
			t.Error("Expected a countdown alongside the next block")
		}
	})

	t.Run("Unknown Day", func(t *testing.T) {
		resp, fields := doJSON(t, s, "GET", "/api/days/sunday", nil)
		if resp.StatusCode != http.StatusNotFound {
			t.Fatalf("Expected 404, got %d", resp.StatusCode)
		}
		if got := jsonString(t, fields, "error"); got != "Unknown day." {
			t.Errorf("Expected 'Unknown day.', got %q", got)
		}
	})
}

func TestBlockCRUD(t *testing.T) {
	s := newTestServer(t, &mockVision{}, nil)

	var created schedule.Block

	t.Run("Create", func(t *testing.T) {
		resp, fields := doJSON(t, s, "POST", "/api/days/monday/blocks", map[string]string{
			"title": "Drama",
			"time":  "2:00 PM - 3:00 PM",
		})
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("Expected 201, got %d", resp.StatusCode)
		}
		combined, _ := json.Marshal(fields)
		if err := json.Unmarshal(combined, &created); err != nil {
			t.Fatal(err)
		}
		if created.Location != "TBD" {
			t.Errorf("Expected defaulted location 'TBD', got %q", created.Location)
		}
		if created.Type != schedule.TypeClass {
			t.Errorf("Expected defaulted type class, got %q", created.Type)
		}
		if !strings.HasPrefix(created.ID, "monday-") {
			t.Errorf("Expected day-prefixed id, got %q", created.ID)
		}
	})

	t.Run("Create Missing Title", func(t *testing.T) {
		resp, _ := doJSON(t, s, "POST", "/api/days/monday/blocks", map[string]string{
			"time": "2:00 PM",
		})
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", resp.StatusCode)
		}
	})

	t.Run("Create Bad Type", func(t *testing.T) {
		resp, _ := doJSON(t, s, "POST", "/api/days/monday/blocks", map[string]string{
			"title": "X", "time": "2:00 PM", "type": "banquet",
		})
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("Expected 400 for an unknown type, got %d", resp.StatusCode)
		}
	})

	t.Run("Update", func(t *testing.T) {
		resp, fields := doJSON(t, s, "PUT", "/api/days/monday/blocks/"+created.ID, map[string]string{
			"title": "Drama Club", "time": "2:00 PM - 3:30 PM", "type": "meeting",
		})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected 200, got %d", resp.StatusCode)
		}
		if got := jsonString(t, fields, "title"); got != "Drama Club" {
			t.Errorf("Expected updated title, got %q", got)
		}
	})

	t.Run("Update Unknown Block", func(t *testing.T) {
		resp, _ := doJSON(t, s, "PUT", "/api/days/monday/blocks/nope", map[string]string{
			"title": "X", "time": "1:00 PM",
		})
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("Expected 404, got %d", resp.StatusCode)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		resp, _ := doJSON(t, s, "DELETE", "/api/days/monday/blocks/"+created.ID, nil)
		if resp.StatusCode != http.StatusNoContent {
			t.Fatalf("Expected 204, got %d", resp.StatusCode)
		}
		if _, ok := s.schedule.Find(schedule.Monday, created.ID); ok {
			t.Error("Expected block removed from the store")
		}
	})
}

func TestReplaceSchedule(t *testing.T) {
	s := newTestServer(t, &mockVision{}, nil)

	t.Run("Requires All Five Days", func(t *testing.T) {
		resp, _ := doJSON(t, s, "PUT", "/api/schedule", map[string]any{
			"monday": []any{},
		})
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", resp.StatusCode)
		}
	})

	t.Run("Full Replacement", func(t *testing.T) {
		week := map[string]any{}
		for _, day := range schedule.WeekOrder {
			week[string(day)] = []any{}
		}
		week["monday"] = []map[string]any{{
			"id": "m1", "title": "Only", "time": "8:00 AM", "location": "Room 1", "type": "class",
		}}
		resp, _ := doJSON(t, s, "PUT", "/api/schedule", week)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected 200, got %d", resp.StatusCode)
		}
		if got := len(s.schedule.Blocks(schedule.Monday)); got != 1 {
			t.Errorf("Expected 1 Monday block, got %d", got)
		}
		if got := len(s.schedule.Blocks(schedule.Tuesday)); got != 0 {
			t.Errorf("Expected Tuesday emptied, got %d", got)
		}
	})
}

func TestClipResourceEndpoint(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head><title>Fraction Games</title></head></html>`))
	}))
	defer ts.Close()

	s := newTestServer(t, &mockVision{}, nil)
	block, _ := s.schedule.Find(schedule.Monday, "mon-math")

	resp, fields := doJSON(t, s, "POST", "/api/days/monday/blocks/"+block.ID+"/resources",
		map[string]string{"url": ts.URL})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	var updated schedule.Block
	combined, _ := json.Marshal(fields)
	if err := json.Unmarshal(combined, &updated); err != nil {
		t.Fatal(err)
	}
	if len(updated.Resources) != 1 || updated.Resources[0].Label != "Fraction Games" {
		t.Errorf("Expected a clipped resource link, got %+v", updated.Resources)
	}

	t.Run("Invalid URL", func(t *testing.T) {
		resp, _ := doJSON(t, s, "POST", "/api/days/monday/blocks/"+block.ID+"/resources",
			map[string]string{"url": "not a url"})
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", resp.StatusCode)
		}
	})
}

func TestImageEndpoints(t *testing.T) {
	s := newTestServer(t, &mockVision{}, nil)

	t.Run("Empty Returns Null", func(t *testing.T) {
		_, fields := doJSON(t, s, "GET", "/api/image", nil)
		if string(fields["image"]) != "null" {
			t.Errorf("Expected null image, got %s", fields["image"])
		}
	})

	t.Run("Set And Get", func(t *testing.T) {
		resp, _ := doJSON(t, s, "PUT", "/api/image", map[string]string{"image": pngDataURL})
		if resp.StatusCode != http.StatusNoContent {
			t.Fatalf("Expected 204, got %d", resp.StatusCode)
		}
		_, fields := doJSON(t, s, "GET", "/api/image", nil)
		if got := jsonString(t, fields, "image"); got != pngDataURL {
			t.Errorf("Expected stored image back, got %q", got)
		}
	})

	t.Run("Rejects Bad Data URL", func(t *testing.T) {
		resp, fields := doJSON(t, s, "PUT", "/api/image", map[string]string{"image": "nonsense"})
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("Expected 400, got %d", resp.StatusCode)
		}
		if got := jsonString(t, fields, "error"); got != "Invalid image data format." {
			t.Errorf("Expected 'Invalid image data format.', got %q", got)
		}
	})
}

func TestPlansAndTemplates(t *testing.T) {
	s := newTestServer(t, &mockVision{}, nil)

	t.Run("Set Plan For Missing Block Tolerated", func(t *testing.T) {
		resp, fields := doJSON(t, s, "PUT", "/api/plans/ghost-block", map[string]string{
			"objective": "Review",
		})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected 200, got %d", resp.StatusCode)
		}
		if got := jsonString(t, fields, "blockId"); got != "ghost-block" {
			t.Errorf("Expected blockId echoed, got %q", got)
		}
	})

	t.Run("Template Lifecycle", func(t *testing.T) {
		resp, fields := doJSON(t, s, "POST", "/api/templates", map[string]string{
			"name": "Lab Day", "objective": "Experiment",
		})
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("Expected 201, got %d", resp.StatusCode)
		}
		id := jsonString(t, fields, "id")
		if !strings.HasPrefix(id, "template-") {
			t.Errorf("Expected template- prefixed id, got %q", id)
		}

		resp, fields = doJSON(t, s, "GET", "/api/templates/"+id, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected 200, got %d", resp.StatusCode)
		}
		if got := jsonString(t, fields, "name"); got != "Lab Day" {
			t.Errorf("Expected name 'Lab Day', got %q", got)
		}

		resp, _ = doJSON(t, s, "DELETE", "/api/templates/"+id, nil)
		if resp.StatusCode != http.StatusNoContent {
			t.Fatalf("Expected 204, got %d", resp.StatusCode)
		}
		resp, _ = doJSON(t, s, "GET", "/api/templates/"+id, nil)
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("Expected 404 after delete, got %d", resp.StatusCode)
		}
	})

	t.Run("Template Requires Name", func(t *testing.T) {
		resp, _ := doJSON(t, s, "POST", "/api/templates", map[string]string{"objective": "X"})
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", resp.StatusCode)
		}
	})
}

func TestSessionEndpoints(t *testing.T) {
	s := newTestServer(t, &mockVision{}, nil)

	t.Run("Defaults", func(t *testing.T) {
		_, fields := doJSON(t, s, "GET", "/api/session", nil)
		if got := jsonString(t, fields, "selectedDay"); got != "wednesday" {
			t.Errorf("Expected wednesday, got %q", got)
		}
		if string(fields["sparkOpen"]) != "true" {
			t.Errorf("Expected sparkOpen true, got %s", fields["sparkOpen"])
		}
	})

	t.Run("Toggle Spark", func(t *testing.T) {
		_, fields := doJSON(t, s, "POST", "/api/session/spark/toggle", nil)
		if string(fields["sparkOpen"]) != "false" {
			t.Errorf("Expected sparkOpen false after toggle, got %s", fields["sparkOpen"])
		}
	})

	t.Run("Set Selected Day", func(t *testing.T) {
		resp, _ := doJSON(t, s, "PUT", "/api/session", map[string]string{"selectedDay": "friday"})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected 200, got %d", resp.StatusCode)
		}
		if s.session.SelectedDay() != schedule.Friday {
			t.Errorf("Expected Friday selected, got %s", s.session.SelectedDay())
		}
	})

	t.Run("Rejects Unknown Day", func(t *testing.T) {
		resp, _ := doJSON(t, s, "PUT", "/api/session", map[string]string{"selectedDay": "sunday"})
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", resp.StatusCode)
		}
	})
}

func TestGeminiProxy(t *testing.T) {
	t.Run("Missing Fields", func(t *testing.T) {
		s := newTestServer(t, &mockVision{}, nil)
		resp, fields := doJSON(t, s, "POST", "/api/gemini", map[string]string{"apiKey": "k"})
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("Expected 400, got %d", resp.StatusCode)
		}
		if got := jsonString(t, fields, "error"); got != "Missing apiKey or imageDataUrl." {
			t.Errorf("Expected 'Missing apiKey or imageDataUrl.', got %q", got)
		}
	})

	t.Run("Invalid Data URL", func(t *testing.T) {
		s := newTestServer(t, &mockVision{}, nil)
		resp, fields := doJSON(t, s, "POST", "/api/gemini", map[string]string{
			"apiKey": "k", "imageDataUrl": "nonsense",
		})
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("Expected 400, got %d", resp.StatusCode)
		}
		if got := jsonString(t, fields, "error"); got != "Invalid image data format." {
			t.Errorf("Expected 'Invalid image data format.', got %q", got)
		}
	})

	t.Run("Returns Raw Text", func(t *testing.T) {
		vision := &mockVision{reply: "anything at all"}
		s := newTestServer(t, vision, nil)
		resp, fields := doJSON(t, s, "POST", "/api/gemini", map[string]string{
			"apiKey": "k", "imageDataUrl": pngDataURL,
		})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected 200, got %d", resp.StatusCode)
		}
		if got := jsonString(t, fields, "text"); got != "anything at all" {
			t.Errorf("Expected the reply untouched, got %q", got)
		}
		if vision.gotAPIKey != "k" || vision.gotMime != "image/png" {
			t.Errorf("Expected key and mime forwarded, got %q %q", vision.gotAPIKey, vision.gotMime)
		}
		if string(vision.gotImage) != "hello" {
			t.Errorf("Expected decoded payload forwarded, got %q", vision.gotImage)
		}
	})

	t.Run("Forwards Upstream Status", func(t *testing.T) {
		vision := &mockVision{err: &googleapi.Error{Code: 429, Body: `{"error":"quota"}`}}
		s := newTestServer(t, vision, nil)
		resp, fields := doJSON(t, s, "POST", "/api/gemini", map[string]string{
			"apiKey": "k", "imageDataUrl": pngDataURL,
		})
		if resp.StatusCode != 429 {
			t.Fatalf("Expected 429 forwarded, got %d", resp.StatusCode)
		}
		if got := jsonString(t, fields, "error"); got != "Gemini request failed." {
			t.Errorf("Expected 'Gemini request failed.', got %q", got)
		}
		if got := jsonString(t, fields, "details"); got != `{"error":"quota"}` {
			t.Errorf("Expected upstream body forwarded, got %q", got)
		}
	})

	t.Run("Network Error Is Generic 500", func(t *testing.T) {
		vision := &mockVision{err: io.ErrUnexpectedEOF}
		s := newTestServer(t, vision, nil)
		resp, fields := doJSON(t, s, "POST", "/api/gemini", map[string]string{
			"apiKey": "k", "imageDataUrl": pngDataURL,
		})
		if resp.StatusCode != http.StatusInternalServerError {
			t.Fatalf("Expected 500, got %d", resp.StatusCode)
		}
		if got := jsonString(t, fields, "error"); got != "Unexpected server error." {
			t.Errorf("Expected 'Unexpected server error.', got %q", got)
		}
	})
}

func TestAutofill(t *testing.T) {
	t.Run("Missing Key And Image", func(t *testing.T) {
		s := newTestServer(t, &mockVision{}, nil)
		resp, fields := doJSON(t, s, "POST", "/api/autofill", map[string]string{})
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("Expected 400, got %d", resp.StatusCode)
		}
		if got := jsonString(t, fields, "status"); got != "Upload an image and enter your API key first." {
			t.Errorf("Expected the missing-prerequisites status, got %q", got)
		}
	})

	t.Run("Success Replaces Week", func(t *testing.T) {
		reply := "```json\n{\"schedule\":{\"monday\":[{\"title\":\"Math\",\"time\":\"8:00 AM\"}],\"tuesday\":[],\"wednesday\":[],\"thursday\":[],\"friday\":[]}}\n```"
		s := newTestServer(t, &mockVision{reply: reply}, nil)
		resp, fields := doJSON(t, s, "POST", "/api/autofill", map[string]string{
			"apiKey": "k", "imageDataUrl": pngDataURL,
		})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected 200, got %d", resp.StatusCode)
		}
		if got := jsonString(t, fields, "status"); got != "Auto-fill complete. Please review and edit if needed." {
			t.Errorf("Expected the completion status, got %q", got)
		}
		if got := len(s.schedule.Blocks(schedule.Monday)); got != 1 {
			t.Errorf("Expected 1 Monday block, got %d", got)
		}
		if got := len(s.schedule.Blocks(schedule.Wednesday)); got != 0 {
			t.Errorf("Expected Wednesday replaced with empty, got %d", got)
		}
	})

	t.Run("Falls Back To Stored Image And Configured Key", func(t *testing.T) {
		reply := `{"schedule":{"monday":[],"tuesday":[],"wednesday":[],"thursday":[],"friday":[]}}`
		vision := &mockVision{reply: reply}
		cfg := &config.Config{Addr: ":0", DataDir: "data", GeminiAPIKey: "configured"}
		s := newTestServer(t, vision, cfg)
		s.schedule.SetTimetableImage(pngDataURL)

		resp, _ := doJSON(t, s, "POST", "/api/autofill", map[string]string{})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected 200, got %d", resp.StatusCode)
		}
		if vision.gotAPIKey != "configured" {
			t.Errorf("Expected the configured key used, got %q", vision.gotAPIKey)
		}
	})

	t.Run("No Schedule In Reply", func(t *testing.T) {
		s := newTestServer(t, &mockVision{reply: `{"notes":"blurry photo"}`}, nil)
		before := s.schedule.Blocks(schedule.Monday)
		resp, fields := doJSON(t, s, "POST", "/api/autofill", map[string]string{
			"apiKey": "k", "imageDataUrl": pngDataURL,
		})
		if resp.StatusCode != http.StatusUnprocessableEntity {
			t.Fatalf("Expected 422, got %d", resp.StatusCode)
		}
		if got := jsonString(t, fields, "status"); got != "Could not read a schedule from the image." {
			t.Errorf("Expected the no-schedule status, got %q", got)
		}
		if got := len(s.schedule.Blocks(schedule.Monday)); got != len(before) {
			t.Error("Expected the schedule untouched on failure")
		}
	})

	t.Run("Prose Reply", func(t *testing.T) {
		s := newTestServer(t, &mockVision{reply: "Sorry, I cannot read this."}, nil)
		resp, _ := doJSON(t, s, "POST", "/api/autofill", map[string]string{
			"apiKey": "k", "imageDataUrl": pngDataURL,
		})
		if resp.StatusCode != http.StatusUnprocessableEntity {
			t.Errorf("Expected 422, got %d", resp.StatusCode)
		}
	})

	t.Run("Upstream Error Surfaces Status", func(t *testing.T) {
		vision := &mockVision{err: &googleapi.Error{Code: 403, Body: "bad key"}}
		s := newTestServer(t, vision, nil)
		resp, fields := doJSON(t, s, "POST", "/api/autofill", map[string]string{
			"apiKey": "k", "imageDataUrl": pngDataURL,
		})
		if resp.StatusCode != 403 {
			t.Fatalf("Expected 403, got %d", resp.StatusCode)
		}
		if got := jsonString(t, fields, "status"); !strings.HasPrefix(got, "Gemini error:") {
			t.Errorf("Expected a Gemini error status, got %q", got)
		}
	})
}

func TestAuth(t *testing.T) {
	t.Run("Disabled Without Secret", func(t *testing.T) {
		s := newTestServer(t, &mockVision{}, nil)
		resp, _ := doJSON(t, s, "POST", "/api/token", map[string]string{"secret": "x"})
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("Expected 404 when auth is off, got %d", resp.StatusCode)
		}
		resp, _ = doJSON(t, s, "GET", "/api/week", nil)
		if resp.StatusCode != http.StatusOK {
			t.Errorf("Expected open access without a secret, got %d", resp.StatusCode)
		}
	})

	t.Run("Token Flow", func(t *testing.T) {
		cfg := &config.Config{Addr: ":0", DataDir: "data", AuthSecret: "hunter2"}
		s := newTestServer(t, &mockVision{}, cfg)

		resp, _ := doJSON(t, s, "GET", "/api/week", nil)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("Expected 401 without a token, got %d", resp.StatusCode)
		}

		resp, _ = doJSON(t, s, "POST", "/api/token", map[string]string{"secret": "wrong"})
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("Expected 401 for the wrong secret, got %d", resp.StatusCode)
		}

		resp, fields := doJSON(t, s, "POST", "/api/token", map[string]string{"secret": "hunter2"})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected 200, got %d", resp.StatusCode)
		}
		token := jsonString(t, fields, "token")

		req := httptest.NewRequest("GET", "/api/week", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		authed, err := s.App().Test(req, -1)
		if err != nil {
			t.Fatal(err)
		}
		if authed.StatusCode != http.StatusOK {
			t.Errorf("Expected 200 with a valid token, got %d", authed.StatusCode)
		}

		req = httptest.NewRequest("GET", "/api/week", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		denied, err := s.App().Test(req, -1)
		if err != nil {
			t.Fatal(err)
		}
		if denied.StatusCode != http.StatusUnauthorized {
			t.Errorf("Expected 401 for a garbage token, got %d", denied.StatusCode)
		}
	})
}

func TestNotesEndpoints(t *testing.T) {
	s := newTestServer(t, &mockVision{}, nil)
	resp, _ := doJSON(t, s, "PUT", "/api/notes", map[string]string{"note": "Buy glue sticks"})
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("Expected 204, got %d", resp.StatusCode)
	}
	_, fields := doJSON(t, s, "GET", "/api/notes", nil)
	if got := jsonString(t, fields, "note"); got != "Buy glue sticks" {
		t.Errorf("Expected the note back, got %q", got)
	}
}
