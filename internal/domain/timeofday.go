package domain

import "time"

// TimeOfDay is a named departure window. Windows are half-open hour ranges
// [start, end) in the departure airport's local timezone.
type TimeOfDay string

// Supported departure windows.
const (
	// TimeOfDayAny matches every departure hour.
	TimeOfDayAny TimeOfDay = "any"

	// TimeOfDayEarlyMorning covers 00:00 to 05:59.
	TimeOfDayEarlyMorning TimeOfDay = "early_morning"

	// TimeOfDayMorning covers 06:00 to 11:59.
	TimeOfDayMorning TimeOfDay = "morning"

	// TimeOfDayAfternoon covers 12:00 to 17:59.
	TimeOfDayAfternoon TimeOfDay = "afternoon"

	// TimeOfDayEvening covers 18:00 to 21:59.
	TimeOfDayEvening TimeOfDay = "evening"

	// TimeOfDayNight covers 22:00 to 23:59.
	TimeOfDayNight TimeOfDay = "night"
)

// timeOfDayWindows maps each named window to its [start, end) hour range.
var timeOfDayWindows = map[TimeOfDay][2]int{
	TimeOfDayAny:          {0, 24},
	TimeOfDayEarlyMorning: {0, 6},
	TimeOfDayMorning:      {6, 12},
	TimeOfDayAfternoon:    {12, 18},
	TimeOfDayEvening:      {18, 22},
	TimeOfDayNight:        {22, 24},
}

// timeOfDayOrder keeps error messages and docs in a stable order.
var timeOfDayOrder = []TimeOfDay{
	TimeOfDayAny,
	TimeOfDayEarlyMorning,
	TimeOfDayMorning,
	TimeOfDayAfternoon,
	TimeOfDayEvening,
	TimeOfDayNight,
}

// timeOfDayNames returns the supported window names in a stable order.
func timeOfDayNames() []string {
	names := make([]string, 0, len(timeOfDayOrder))
	for _, t := range timeOfDayOrder {
		names = append(names, string(t))
	}
	return names
}

// IsValid reports whether the value is one of the supported windows.
func (t TimeOfDay) IsValid() bool {
	_, ok := timeOfDayWindows[t]
	return ok
}

// Window returns the [start, end) hour range of the window.
// Unknown values behave like TimeOfDayAny.
func (t TimeOfDay) Window() (startHour, endHour int) {
	w, ok := timeOfDayWindows[t]
	if !ok {
		return 0, 24
	}
	return w[0], w[1]
}

// Contains reports whether the given hour of day falls inside the window.
func (t TimeOfDay) Contains(hour int) bool {
	start, end := t.Window()
	return hour >= start && hour < end
}

// ContainsTime reports whether the timestamp's local hour falls inside the
// window. The timestamp's own location is used, so a timezone-aware
// departure time is evaluated in the departure airport's timezone.
func (t TimeOfDay) ContainsTime(ts time.Time) bool {
	return t.Contains(ts.Hour())
}
