package autofill

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"teacherdash/internal/schedule"
)

// ErrNoSchedule reports a reply that parsed as JSON but carried no
// schedule object.
var ErrNoSchedule = errors.New("could not read a schedule from the image")

var fenceReplacer = strings.NewReplacer("```json", "", "```", "")

type rawBlock struct {
	Title     string                  `json:"title"`
	Time      string                  `json:"time"`
	Location  string                  `json:"location"`
	Type      string                  `json:"type"`
	Topic     string                  `json:"topic"`
	Resources []schedule.ResourceLink `json:"resources"`
}

type reply struct {
	Schedule map[string][]rawBlock `json:"schedule"`
}

// ParseWeek decodes the model's free-text reply into a complete week of
// freshly minted blocks. Markdown code fences are stripped before
// decoding. All five weekday keys are always present in the result; days
// the reply omits come back empty.
func ParseWeek(raw string) (schedule.Week, error) {
	cleaned := strings.TrimSpace(fenceReplacer.Replace(raw))

	var r reply
	if err := json.Unmarshal([]byte(cleaned), &r); err != nil {
		return nil, fmt.Errorf("failed to parse the AI response: %w", err)
	}
	if r.Schedule == nil {
		return nil, ErrNoSchedule
	}

	week := make(schedule.Week, len(schedule.WeekOrder))
	for _, day := range schedule.WeekOrder {
		entries := r.Schedule[string(day)]
		blocks := make([]schedule.Block, 0, len(entries))
		for _, e := range entries {
			blocks = append(blocks, schedule.NewBlock(day, schedule.BlockParams{
				Title:     e.Title,
				Time:      e.Time,
				Location:  e.Location,
				Type:      e.Type,
				Topic:     e.Topic,
				Resources: e.Resources,
			}))
		}
		week[day] = blocks
	}
	return week, nil
}
