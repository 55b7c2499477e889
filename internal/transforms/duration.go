// Package transforms turns raw catalog values into display strings and back.
// Everything here is pure: no I/O, no shared state, safe from any goroutine.
package transforms

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// durationPattern accepts [[H:]M:]S where minutes and seconds are 0-59 and
// the hour group may have any number of digits.
var durationPattern = regexp.MustCompile(`^(?:(?:(\d+):)?([0-5]?\d):)?([0-5]?\d)$`)

// FormatDuration renders a seconds count as [H:]MM:SS.
//
// A nil or zero duration renders as the empty string: zero-length media is
// treated as "unknown" rather than "00:00". ParseDuration cannot tell the two
// apart again, so the pair only round-trips for positive values.
func FormatDuration(seconds *int) string {
	if seconds == nil || *seconds <= 0 {
		return ""
	}

	value := *seconds
	hour := value / 3600
	value -= hour * 3600
	minute := value / 60
	second := value - minute*60

	clock := fmt.Sprintf("%02d:%02d", minute, second)
	if hour > 0 {
		return strconv.Itoa(hour) + ":" + clock
	}
	return clock
}

// FormatSeconds is FormatDuration for callers holding a plain int.
func FormatSeconds(seconds int) string {
	return FormatDuration(&seconds)
}

// ParseDuration reads a [[H:]MM:]SS string back into seconds. A lone number
// is taken as seconds. It reports false for empty input, text outside the
// grammar, and totals that are not strictly positive.
func ParseDuration(text string) (int, bool) {
	if text == "" {
		return 0, false
	}

	groups := durationPattern.FindStringSubmatch(text)
	if groups == nil {
		return 0, false
	}

	hours, ok := atoiOrZero(groups[1])
	if !ok || hours > (math.MaxInt-3599)/3600 {
		return 0, false
	}
	minutes, _ := atoiOrZero(groups[2])
	seconds, _ := atoiOrZero(groups[3])

	total := hours*3600 + minutes*60 + seconds
	if total <= 0 {
		return 0, false
	}
	return total, true
}

// ParseDurationPtr is ParseDuration shaped for optional model fields.
func ParseDurationPtr(text string) *int {
	seconds, ok := ParseDuration(text)
	if !ok {
		return nil
	}
	return &seconds
}

func atoiOrZero(s string) (int, bool) {
	if s == "" {
		return 0, true
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
