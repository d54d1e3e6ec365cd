package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseDuration parses a duration string supporting multiple formats:
//   - bare integer: "120" (interpreted as seconds, scheduler-tool convention)
//   - Go duration: "2h", "30m", "1h30m", "90s"
//   - HH:MM:SS format: "02:00:00", "2:30:00", "00:30:00"
//   - H:MM format: "2:30" (interpreted as hours:minutes)
//
// Returns the duration in time.Duration format.
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty duration string")
	}

	// Bare integer means seconds (matches sbatch-style timeout flags)
	if secs, err := strconv.Atoi(s); err == nil {
		if secs < 0 {
			return 0, fmt.Errorf("negative duration: %s", s)
		}
		return time.Duration(secs) * time.Second, nil
	}

	// Try HH:MM:SS or H:MM:SS or HH:MM format
	if strings.Contains(s, ":") {
		parts := strings.Split(s, ":")
		switch len(parts) {
		case 2:
			// H:MM or HH:MM format (hours:minutes)
			hours, err := strconv.Atoi(parts[0])
			if err != nil {
				return 0, fmt.Errorf("invalid hours: %s", parts[0])
			}
			minutes, err := strconv.Atoi(parts[1])
			if err != nil {
				return 0, fmt.Errorf("invalid minutes: %s", parts[1])
			}
			return time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute, nil
		case 3:
			// HH:MM:SS format
			hours, err := strconv.Atoi(parts[0])
			if err != nil {
				return 0, fmt.Errorf("invalid hours: %s", parts[0])
			}
			minutes, err := strconv.Atoi(parts[1])
			if err != nil {
				return 0, fmt.Errorf("invalid minutes: %s", parts[1])
			}
			seconds, err := strconv.Atoi(parts[2])
			if err != nil {
				return 0, fmt.Errorf("invalid seconds: %s", parts[2])
			}
			return time.Duration(hours)*time.Hour +
				time.Duration(minutes)*time.Minute +
				time.Duration(seconds)*time.Second, nil
		default:
			return 0, fmt.Errorf("invalid time format: %s (use HH:MM:SS or HH:MM)", s)
		}
	}

	// Try Go duration format (2h, 30m, 1h30m, etc.)
	dur, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration: %s (use '120', '2m', '1h30m', or '02:00:00')", s)
	}
	if dur < 0 {
		return 0, fmt.Errorf("negative duration: %s", s)
	}
	return dur, nil
}

// StripInlineComment removes a trailing " # comment" from a directive value.
// A '#' inside a non-space run (e.g. part of a filename) is left alone.
func StripInlineComment(s string) string {
	if idx := strings.Index(s, " #"); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
