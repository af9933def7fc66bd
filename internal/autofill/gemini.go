// Package autofill turns a photographed paper timetable into schedule
// blocks: it sends the image to Gemini with a fixed instruction prompt and
// parses the free-text JSON reply into a full week.
package autofill

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const visionModel = "gemini-2.0-flash"

// TimetablePrompt is the fixed instruction sent alongside the image.
var TimetablePrompt = strings.Join([]string{
	"You are reading a teacher timetable image.",
	"Extract a weekly schedule for Monday to Friday.",
	"Return ONLY valid JSON with this shape:",
	"{",
	`  "schedule": {`,
	`    "monday": [{ "title": "", "time": "", "location": "", "type": "class|meeting|reset" }],`,
	`    "tuesday": [],`,
	`    "wednesday": [],`,
	`    "thursday": [],`,
	`    "friday": []`,
	"  }",
	"}",
	"Use 24h or AM/PM times exactly as seen.",
	"Use type = class for subjects, meeting for admin/meet/assembly, reset for breaks.",
	"If a field is unknown, use an empty string.",
}, "\n")

// Vision is the image-understanding boundary.
type Vision interface {
	ReadTimetable(ctx context.Context, apiKey, mimeType string, image []byte) (string, error)
}

type geminiVision struct{}

// NewGeminiVision returns a Vision backed by the Gemini API. The API key
// is supplied per call because it belongs to the user, not the server.
func NewGeminiVision() Vision {
	return &geminiVision{}
}

// ReadTimetable sends the prompt and image to Gemini and returns the first
// candidate's first text part, or an empty string when the reply carries
// no such structure.
func (g *geminiVision) ReadTimetable(ctx context.Context, apiKey, mimeType string, image []byte) (string, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return "", fmt.Errorf("failed to create Gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(visionModel)
	model.SetTemperature(0.2)

	resp, err := model.GenerateContent(ctx,
		genai.Text(TimetablePrompt),
		genai.Blob{MIMEType: mimeType, Data: image},
	)
	if err != nil {
		return "", err
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil ||
		len(resp.Candidates[0].Content.Parts) == 0 {
		return "", nil
	}
	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", nil
	}
	return strings.TrimSpace(string(text)), nil
}

// UpstreamStatus unwraps a Gemini API error into the upstream HTTP status
// and raw body so callers can forward them verbatim.
func UpstreamStatus(err error) (int, string, bool) {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code, apiErr.Body, true
	}
	return 0, "", false
}

var dataURLPattern = regexp.MustCompile(`^data:(.+);base64,(.+)$`)

// ErrInvalidDataURL reports an image that is not a base64 data URL.
var ErrInvalidDataURL = errors.New("invalid image data format")

// DecodeDataURL splits a data URL into its mime type and decoded payload.
func DecodeDataURL(dataURL string) (string, []byte, error) {
	m := dataURLPattern.FindStringSubmatch(dataURL)
	if m == nil {
		return "", nil, ErrInvalidDataURL
	}
	payload, err := base64.StdEncoding.DecodeString(m[2])
	if err != nil {
		return "", nil, ErrInvalidDataURL
	}
	return m[1], payload, nil
}
