package schedule

import "time"

// DayKey identifies one of the five teaching days. The week never includes
// weekends; anything that lands on one is treated as Monday.
type DayKey string

const (
	Monday    DayKey = "monday"
	Tuesday   DayKey = "tuesday"
	Wednesday DayKey = "wednesday"
	Thursday  DayKey = "thursday"
	Friday    DayKey = "friday"
)

// WeekOrder is the canonical iteration order of the week.
var WeekOrder = []DayKey{Monday, Tuesday, Wednesday, Thursday, Friday}

// DayLabels maps day keys to their display names.
var DayLabels = map[DayKey]string{
	Monday:    "Monday",
	Tuesday:   "Tuesday",
	Wednesday: "Wednesday",
	Thursday:  "Thursday",
	Friday:    "Friday",
}

// ParseDay validates a raw day string and returns its key.
func ParseDay(value string) (DayKey, bool) {
	for _, day := range WeekOrder {
		if string(day) == value {
			return day, true
		}
	}
	return "", false
}

// Today canonicalizes a real-world date into a day key.
// Saturday and Sunday map to Monday.
func Today(now time.Time) DayKey {
	switch now.Weekday() {
	case time.Tuesday:
		return Tuesday
	case time.Wednesday:
		return Wednesday
	case time.Thursday:
		return Thursday
	case time.Friday:
		return Friday
	default:
		return Monday
	}
}
