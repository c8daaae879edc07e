package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseISO8601Duration parses the subset of ISO-8601 durations SCORM and
// AICC packages use: PnYnMnDTnHnMnS, with Y/M/D given coarse 365/30/1-day
// approximations since calendar-accurate arithmetic needs a reference
// instant this pure function doesn't have.
func ParseISO8601Duration(s string) (time.Duration, error) {
	if s == "" {
		return 0, fmt.Errorf("empty duration")
	}
	if !strings.HasPrefix(s, "P") {
		return 0, fmt.Errorf("duration %q missing P prefix", s)
	}
	rest := s[1:]
	datePart, timePart, hasTime := strings.Cut(rest, "T")
	if !hasTime {
		datePart = rest
	}

	var total time.Duration
	var err error

	total, err = accumulate(total, datePart, map[byte]time.Duration{
		'Y': 365 * 24 * time.Hour,
		'M': 30 * 24 * time.Hour,
		'D': 24 * time.Hour,
	})
	if err != nil {
		return 0, err
	}

	if hasTime {
		total, err = accumulate(total, timePart, map[byte]time.Duration{
			'H': time.Hour,
			'M': time.Minute,
			'S': time.Second,
		})
		if err != nil {
			return 0, err
		}
	}

	return total, nil
}

func accumulate(total time.Duration, part string, units map[byte]time.Duration) (time.Duration, error) {
	num := strings.Builder{}
	for i := 0; i < len(part); i++ {
		c := part[i]
		if c >= '0' && c <= '9' || c == '.' {
			num.WriteByte(c)
			continue
		}
		unit, ok := units[c]
		if !ok {
			return total, fmt.Errorf("unrecognized duration unit %q in %q", string(c), part)
		}
		v, err := strconv.ParseFloat(num.String(), 64)
		if err != nil {
			return total, fmt.Errorf("invalid duration component in %q: %w", part, err)
		}
		total += time.Duration(v * float64(unit))
		num.Reset()
	}
	return total, nil
}

// FormatISO8601Duration renders d as PnDTnHnMnS, the form spec §4.3 step 6
// requires for the computed duration field.
func FormatISO8601Duration(d time.Duration) string {
	if d == 0 {
		return "PT0S"
	}
	days := d / (24 * time.Hour)
	d -= days * 24 * time.Hour
	hours := d / time.Hour
	d -= hours * time.Hour
	minutes := d / time.Minute
	d -= minutes * time.Minute
	seconds := d.Seconds()

	var b strings.Builder
	b.WriteString("P")
	if days > 0 {
		fmt.Fprintf(&b, "%dD", days)
	}
	b.WriteString("T")
	if hours > 0 {
		fmt.Fprintf(&b, "%dH", hours)
	}
	if minutes > 0 {
		fmt.Fprintf(&b, "%dM", minutes)
	}
	if seconds > 0 || (days == 0 && hours == 0 && minutes == 0) {
		fmt.Fprintf(&b, "%gS", seconds)
	}
	return b.String()
}
