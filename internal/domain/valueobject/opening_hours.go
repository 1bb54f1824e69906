package valueobject

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

var weekdayKeys = [...]string{"sun", "mon", "tue", "wed", "thu", "fri", "sat"}

// OpeningHours maps a weekday key (mon..sun) to "HH:MM-HH:MM". A closing
// time earlier than the opening time spans midnight. Missing days and the
// values "closed" or "-" mean closed all day.
type OpeningHours map[string]string

type span struct {
	open, close int
}

// Validate checks keys and span syntax.
func (h OpeningHours) Validate() error {
	for day, value := range h {
		if !isWeekdayKey(day) {
			return fmt.Errorf("unknown weekday %q", day)
		}
		if _, _, err := parseSpan(value); err != nil {
			return fmt.Errorf("%s: %w", day, err)
		}
	}
	return nil
}

// IsOpenAt evaluates t in its own location.
func (h OpeningHours) IsOpenAt(t time.Time) bool {
	minute := t.Hour()*60 + t.Minute()

	if s, ok := h.spanFor(t.Weekday()); ok {
		if s.close > s.open {
			if minute >= s.open && minute < s.close {
				return true
			}
		} else if minute >= s.open {
			return true
		}
	}

	prev := (t.Weekday() + 6) % 7
	if s, ok := h.spanFor(prev); ok && s.close <= s.open && minute < s.close {
		return true
	}
	return false
}

func (h OpeningHours) spanFor(day time.Weekday) (span, bool) {
	value, ok := h[weekdayKeys[day]]
	if !ok {
		return span{}, false
	}
	s, open, err := parseSpan(value)
	if err != nil || !open {
		return span{}, false
	}
	return s, true
}

func parseSpan(value string) (span, bool, error) {
	value = strings.TrimSpace(value)
	if value == "" || value == "-" || strings.EqualFold(value, "closed") {
		return span{}, false, nil
	}

	openStr, closeStr, ok := strings.Cut(value, "-")
	if !ok {
		return span{}, false, fmt.Errorf("malformed span %q", value)
	}
	open, err := parseClock(openStr)
	if err != nil {
		return span{}, false, err
	}
	closing, err := parseClock(closeStr)
	if err != nil {
		return span{}, false, err
	}
	if open == closing {
		return span{}, false, fmt.Errorf("empty span %q", value)
	}
	return span{open: open, close: closing}, true, nil
}

func parseClock(s string) (int, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, fmt.Errorf("malformed time %q", s)
	}
	hours, err := strconv.Atoi(hh)
	if err != nil {
		return 0, fmt.Errorf("malformed time %q", s)
	}
	minutes, err := strconv.Atoi(mm)
	if err != nil {
		return 0, fmt.Errorf("malformed time %q", s)
	}
	total := hours*60 + minutes
	if hours < 0 || minutes < 0 || minutes > 59 || total > 24*60 {
		return 0, fmt.Errorf("time out of range %q", s)
	}
	return total, nil
}

func isWeekdayKey(key string) bool {
	for _, k := range weekdayKeys {
		if k == key {
			return true
		}
	}
	return false
}
