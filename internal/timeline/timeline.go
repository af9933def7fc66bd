// Package timeline derives the clock-driven view values from a day's
// blocks: the next upcoming activity, its countdown, and the position of
// the "now" indicator between the day's first and last start times.
package timeline

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"teacherdash/internal/lesson"
	"teacherdash/internal/schedule"
)

var (
	ampmPattern  = regexp.MustCompile(`(?i)(\d{1,2}):(\d{2})\s*(AM|PM)`)
	clockPattern = regexp.MustCompile(`(\d{1,2}):(\d{2})`)
)

// ParseStartMinutes converts the start of a free-text time range into
// minutes since midnight. Only the substring before the first '-' is
// considered. A 12-hour token with an AM/PM marker wins over a bare
// 24-hour token. Hour and minute values are taken as written; nothing
// beyond the pattern is validated. The second return value is false when
// no time token is recognizable.
func ParseStartMinutes(timeRange string) (int, bool) {
	start, _, found := strings.Cut(timeRange, "-")
	if !found {
		start = timeRange
	}
	start = strings.TrimSpace(start)

	if m := ampmPattern.FindStringSubmatch(start); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minutes, _ := strconv.Atoi(m[2])
		period := strings.ToUpper(m[3])
		if period == "PM" && hour != 12 {
			hour += 12
		}
		if period == "AM" && hour == 12 {
			hour = 0
		}
		return hour*60 + minutes, true
	}

	if m := clockPattern.FindStringSubmatch(start); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minutes, _ := strconv.Atoi(m[2])
		return hour*60 + minutes, true
	}

	return 0, false
}

// MinuteOfDay returns the minute-of-day for a wall-clock time.
func MinuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// Next is the upcoming block for a day, paired with its parsed start.
type Next struct {
	Block schedule.Block
	Start int
}

// NextBlock selects the block with the smallest parseable start at or
// after nowMinutes. Ties keep the earlier block in day order.
func NextBlock(blocks []schedule.Block, nowMinutes int) (Next, bool) {
	var best Next
	found := false
	for _, b := range blocks {
		start, ok := ParseStartMinutes(b.Time)
		if !ok || start < nowMinutes {
			continue
		}
		if !found || start < best.Start {
			best = Next{Block: b, Start: start}
			found = true
		}
	}
	return best, found
}

// Countdown formats the wait from nowMinutes until start as
// "{hours}h {minutes}m", dropping the hour part when it is zero.
func Countdown(start, nowMinutes int) string {
	diff := start - nowMinutes
	if diff < 0 {
		diff = 0
	}
	hours := diff / 60
	minutes := diff % 60
	if hours > 0 {
		return strconv.Itoa(hours) + "h " + strconv.Itoa(minutes) + "m"
	}
	return strconv.Itoa(minutes) + "m"
}

// IndicatorPercent places the "now" marker proportionally between the
// earliest and latest parseable start times of the day, as a 0-100
// percentage. Days with no spread (no parseable starts, or all equal)
// pin the marker to 0.
func IndicatorPercent(blocks []schedule.Block, nowMinutes int) int {
	min, max := 0, 0
	found := false
	for _, b := range blocks {
		start, ok := ParseStartMinutes(b.Time)
		if !ok {
			continue
		}
		if !found || start < min {
			min = start
		}
		if !found || start > max {
			max = start
		}
		found = true
	}
	if !found || min == max {
		return 0
	}

	ratio := float64(nowMinutes-min) / float64(max-min)
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	return int(math.Round(ratio * 100))
}

// PlannedCount counts the blocks that already have a lesson plan.
func PlannedCount(blocks []schedule.Block, plans map[string]lesson.Plan) int {
	count := 0
	for _, b := range blocks {
		if _, ok := plans[b.ID]; ok {
			count++
		}
	}
	return count
}
