// Package days recognizes training-day header lines shared by trainer source
// text and generated plans.
package days

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	headerMarkup = regexp.MustCompile(`^[\s#*_=>\-]+|[\s*_=:\-]+$`)
	dayHeader    = regexp.MustCompile(`(?i)^((?:mon|tues|wednes|thurs|fri|satur|sun)day|day\s*(\d{1,2}))\b(.*)$`)
	weekdays     = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}
)

// maxTrailingWords bounds the subtitle allowed after the day name, so
// "Monday — Lower Body Strength" is a header but a prose sentence that
// happens to start with "Monday" is not.
const maxTrailingWords = 8

// Match reports whether line is a day header and returns the normalized day
// name ("Monday", "Day 3").
func Match(line string) (string, bool) {
	s := headerMarkup.ReplaceAllString(strings.TrimSpace(line), "")
	m := dayHeader.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	rest := strings.TrimSpace(m[3])
	if strings.ContainsAny(rest, "@×") || len(strings.Fields(rest)) > maxTrailingWords {
		return "", false
	}
	return Normalize(m[1]), true
}

// Normalize renders a day name in its canonical spelling.
func Normalize(name string) string {
	s := strings.ToLower(strings.Join(strings.Fields(name), " "))
	if strings.HasPrefix(s, "day") {
		n := strings.TrimSpace(strings.TrimPrefix(s, "day"))
		if _, err := strconv.Atoi(n); err == nil {
			return "Day " + n
		}
	}
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Same reports whether a and b name the same training day.
func Same(a, b string) bool {
	return Normalize(a) == Normalize(b)
}

// Index orders days: weekdays first in calendar order, then numbered days.
// Unknown names sort last.
func Index(name string) int {
	s := strings.ToLower(Normalize(name))
	for i, w := range weekdays {
		if s == w {
			return i
		}
	}
	if strings.HasPrefix(s, "day ") {
		if n, err := strconv.Atoi(strings.TrimPrefix(s, "day ")); err == nil {
			return len(weekdays) + n
		}
	}
	return 1000
}
