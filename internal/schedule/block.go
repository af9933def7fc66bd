package schedule

import (
	"fmt"

	"github.com/google/uuid"
)

// BlockType drives the visual treatment of a block. "reset" additionally
// gets a mindful-moment annotation in the views.
type BlockType string

const (
	TypeClass   BlockType = "class"
	TypeMeeting BlockType = "meeting"
	TypeReset   BlockType = "reset"
)

// NormalizeType coerces a raw type string into the closed set,
// falling back to "class" for anything unknown.
func NormalizeType(value string) BlockType {
	switch BlockType(value) {
	case TypeClass, TypeMeeting, TypeReset:
		return BlockType(value)
	default:
		return TypeClass
	}
}

// ResourceLink is a display-only link attached to a block.
type ResourceLink struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

// Block is one scheduled activity within a day.
type Block struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	Time      string         `json:"time"`
	Location  string         `json:"location"`
	Type      BlockType      `json:"type"`
	Topic     string         `json:"topic,omitempty"`
	Resources []ResourceLink `json:"resources,omitempty"`
}

// BlockParams carries the user-supplied fields of a new block.
type BlockParams struct {
	Title     string
	Time      string
	Location  string
	Type      string
	Topic     string
	Resources []ResourceLink
}

// NewBlock mints a block with a fresh collision-resistant id and fills
// field defaults. Every creation path (manual add, auto-fill) goes through
// here so defaulting stays consistent.
func NewBlock(day DayKey, p BlockParams) Block {
	location := p.Location
	if location == "" {
		location = "TBD"
	}
	return Block{
		ID:        fmt.Sprintf("%s-%s", day, uuid.NewString()),
		Title:     p.Title,
		Time:      p.Time,
		Location:  location,
		Type:      NormalizeType(p.Type),
		Topic:     p.Topic,
		Resources: p.Resources,
	}
}
