package domain

import (
	"fmt"
	"strings"
	"time"
)

// ParseISODuration parses an ISO 8601 duration of the form used by flight
// suppliers, e.g. "PT2H15M", "PT45M", "P1DT2H". Supported designators are
// days, hours, minutes, and seconds. Fractional values, weeks, months, and
// years are not supported.
func ParseISODuration(s string) (time.Duration, error) {
	orig := s
	if !strings.HasPrefix(s, "P") {
		return 0, fmt.Errorf("invalid ISO 8601 duration %q: missing P designator", orig)
	}
	s = s[1:]

	datePart := s
	timePart := ""
	if idx := strings.IndexByte(s, 'T'); idx >= 0 {
		datePart = s[:idx]
		timePart = s[idx+1:]
		if timePart == "" {
			return 0, fmt.Errorf("invalid ISO 8601 duration %q: empty time part", orig)
		}
	}
	if datePart == "" && timePart == "" {
		return 0, fmt.Errorf("invalid ISO 8601 duration %q: no components", orig)
	}

	var total time.Duration

	parse := func(part string, units map[byte]time.Duration, order string) error {
		num := 0
		haveDigits := false
		lastUnit := -1
		for i := 0; i < len(part); i++ {
			c := part[i]
			if c >= '0' && c <= '9' {
				num = num*10 + int(c-'0')
				haveDigits = true
				continue
			}
			unit, ok := units[c]
			if !ok || !haveDigits {
				return fmt.Errorf("invalid ISO 8601 duration %q: unexpected %q", orig, string(c))
			}
			pos := strings.IndexByte(order, c)
			if pos <= lastUnit {
				return fmt.Errorf("invalid ISO 8601 duration %q: designator %q out of order", orig, string(c))
			}
			lastUnit = pos
			total += time.Duration(num) * unit
			num = 0
			haveDigits = false
		}
		if haveDigits {
			return fmt.Errorf("invalid ISO 8601 duration %q: trailing digits", orig)
		}
		return nil
	}

	if err := parse(datePart, map[byte]time.Duration{'D': 24 * time.Hour}, "D"); err != nil {
		return 0, err
	}
	timeUnits := map[byte]time.Duration{
		'H': time.Hour,
		'M': time.Minute,
		'S': time.Second,
	}
	if err := parse(timePart, timeUnits, "HMS"); err != nil {
		return 0, err
	}

	return total, nil
}

// FormatISODuration renders a duration in ISO 8601 form, e.g. "PT2H15M".
// Negative durations are rendered as "PT0S", as are zero durations.
// Sub-second precision is truncated.
func FormatISODuration(d time.Duration) string {
	if d <= 0 {
		return "PT0S"
	}

	hours := int(d / time.Hour)
	minutes := int(d % time.Hour / time.Minute)
	seconds := int(d % time.Minute / time.Second)

	var b strings.Builder
	b.WriteString("PT")
	if hours > 0 {
		fmt.Fprintf(&b, "%dH", hours)
	}
	if minutes > 0 {
		fmt.Fprintf(&b, "%dM", minutes)
	}
	if seconds > 0 || (hours == 0 && minutes == 0) {
		fmt.Fprintf(&b, "%dS", seconds)
	}
	return b.String()
}
