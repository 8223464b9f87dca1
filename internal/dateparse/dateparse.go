// Package dateparse provides natural language date parsing for feeding
// history filters.
package dateparse

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Parse parses a natural language date string and returns a date in
// YYYY-MM-DD format. Feeding filters look backwards, so relative phrases
// resolve to past dates. Supported formats:
//   - today, yesterday
//   - monday, tuesday, ... (most recent occurrence, same day = today)
//   - last week (7 days ago), last month
//   - start of week (Monday), start of month
//   - -N (N days ago)
//   - N days ago, N weeks ago
//   - YYYY-MM-DD (passthrough)
//
// Unrecognized input is returned as-is and left to the server to reject.
func Parse(input string) string {
	return ParseFrom(input, time.Now())
}

// ParseFrom parses a date relative to the given reference time.
func ParseFrom(input string, now time.Time) string {
	input = strings.ToLower(strings.TrimSpace(input))

	switch input {
	case "today":
		return formatDate(now)
	case "yesterday":
		return formatDate(now.AddDate(0, 0, -1))
	case "last week", "lastweek":
		return formatDate(now.AddDate(0, 0, -7))
	case "last month", "lastmonth":
		return formatDate(now.AddDate(0, -1, 0))
	case "start of week", "sow":
		return formatDate(startOfWeek(now))
	case "start of month", "som":
		return formatDate(startOfMonth(now))
	}

	// Weekday names resolve to the most recent occurrence.
	if day, ok := parseWeekday(input); ok {
		return formatDate(previousWeekday(now, day))
	}

	// -N days format
	if strings.HasPrefix(input, "-") {
		if days, err := strconv.Atoi(input[1:]); err == nil {
			return formatDate(now.AddDate(0, 0, -days))
		}
	}

	// "N days ago" format
	if match := daysAgoPattern.FindStringSubmatch(input); match != nil {
		if days, err := strconv.Atoi(match[1]); err == nil {
			return formatDate(now.AddDate(0, 0, -days))
		}
	}

	// "N weeks ago" format
	if match := weeksAgoPattern.FindStringSubmatch(input); match != nil {
		if weeks, err := strconv.Atoi(match[1]); err == nil {
			return formatDate(now.AddDate(0, 0, -weeks*7))
		}
	}

	// YYYY-MM-DD passthrough
	if datePattern.MatchString(input) {
		return input
	}

	return input
}

var (
	daysAgoPattern  = regexp.MustCompile(`^(\d+) days? ago$`)
	weeksAgoPattern = regexp.MustCompile(`^(\d+) weeks? ago$`)
	datePattern     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

func parseWeekday(input string) (time.Weekday, bool) {
	day, ok := weekdays[input]
	return day, ok
}

// previousWeekday returns the most recent occurrence of the weekday,
// counting today as a match.
func previousWeekday(now time.Time, day time.Weekday) time.Time {
	diff := int(now.Weekday() - day)
	if diff < 0 {
		diff += 7
	}
	return now.AddDate(0, 0, -diff)
}

// startOfWeek returns the Monday of the current week.
func startOfWeek(now time.Time) time.Time {
	return previousWeekday(now, time.Monday)
}

func startOfMonth(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}

func formatDate(t time.Time) string {
	return t.Format("2006-01-02")
}
