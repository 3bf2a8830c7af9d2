package dateparse

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/olebedev/when/rules/en"
)

// pass recognizes one explicit date form ahead of the phrase rules. Every span
// it matches is hidden from later passes, including spans naming a date that
// does not exist.
type pass struct {
	re *regexp.Regexp
	// skip reports whether a match must be left to the phrase rules, given the
	// text before it.
	skip func(before string) bool
	// resolve turns the capture groups into an instant. clock is true when the
	// form carries its own time of day.
	resolve func(groups []string, anchor time.Time) (t time.Time, clock, ok bool)
}

var (
	monthName = `(` + en.MONTH_OFFSET_PATTERN + `)`

	// isoPattern matches calendar dates such as 2018-08-21 or 2018-08-21T23:12[:05].
	isoPattern = regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})(?:[T ](\d{2}):(\d{2})(?::(\d{2}))?)?\b`)
	// 2018/08/21
	yearSlashPattern = regexp.MustCompile(`\b(\d{4})/(\d{1,2})/(\d{1,2})\b`)
	// 08/21/2018, or 21/08/2018 when the first field cannot be a month.
	slashYearPattern = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})/(\d{4})\b`)
	// 21 August 2018, 21st of Aug. 2018
	dayMonthYearPattern = regexp.MustCompile(`(?i)\b(\d{1,2})(?:st|nd|rd|th)?\s+(?:of\s+)?` + monthName + `,?\s+(\d{4})\b`)
	// August 21, 2018, Aug 21st 2018
	monthDayYearPattern = regexp.MustCompile(`(?i)\b` + monthName + `\s*(\d{1,2})(?:st|nd|rd|th)?,?\s+(\d{4})\b`)
	// next week, last month, this year
	relativePattern = regexp.MustCompile(`(?i)\b(next|last|past|this)\s+(week|month|year)\b`)

	// "Friday next week" belongs to the weekday rule.
	weekdayTail = regexp.MustCompile(`(?i)\b` + en.WEEKDAY_OFFSET_PATTERN + `\s*$`)
	// Text allowed between a date and the time of day that completes it.
	clockLead = regexp.MustCompile(`(?i)^\s*,?\s*(?:at\s*)?$`)
)

var passes = []pass{
	{re: isoPattern, resolve: resolveISO},
	{re: yearSlashPattern, resolve: func(g []string, anchor time.Time) (time.Time, bool, bool) {
		return calendarDate(atoi(g[1]), atoi(g[2]), atoi(g[3]), anchor)
	}},
	{re: slashYearPattern, resolve: func(g []string, anchor time.Time) (time.Time, bool, bool) {
		month, day := atoi(g[1]), atoi(g[2])
		if month > 12 && day <= 12 {
			month, day = day, month
		}
		return calendarDate(atoi(g[3]), month, day, anchor)
	}},
	{re: dayMonthYearPattern, resolve: func(g []string, anchor time.Time) (time.Time, bool, bool) {
		return namedDate(g[3], g[2], g[1], anchor)
	}},
	{re: monthDayYearPattern, resolve: func(g []string, anchor time.Time) (time.Time, bool, bool) {
		return namedDate(g[3], g[1], g[2], anchor)
	}},
	{re: relativePattern, skip: weekdayTail.MatchString, resolve: resolveRelative},
}

func resolveISO(g []string, anchor time.Time) (time.Time, bool, bool) {
	year, month, day := atoi(g[1]), atoi(g[2]), atoi(g[3])
	if g[4] == "" {
		return calendarDate(year, month, day, anchor)
	}
	hour, minute, second := atoi(g[4]), atoi(g[5]), atoi(g[6])
	t := time.Date(year, time.Month(month), day, hour, minute, second, 0, anchor.Location())
	// time.Date normalizes overflow; reject instants that do not exist.
	if t.Year() != year || int(t.Month()) != month || t.Day() != day ||
		t.Hour() != hour || t.Minute() != minute || t.Second() != second {
		return time.Time{}, false, false
	}
	return t, true, true
}

func namedDate(year, month, day string, anchor time.Time) (time.Time, bool, bool) {
	m, ok := en.MONTH_OFFSET[strings.ToLower(month)]
	if !ok {
		return time.Time{}, false, false
	}
	return calendarDate(atoi(year), m, atoi(day), anchor)
}

func calendarDate(year, month, day int, anchor time.Time) (time.Time, bool, bool) {
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, anchor.Location())
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return time.Time{}, false, false
	}
	return t, false, true
}

func resolveRelative(g []string, anchor time.Time) (time.Time, bool, bool) {
	n := 0
	switch strings.ToLower(g[1]) {
	case "next":
		n = 1
	case "last", "past":
		n = -1
	}
	switch strings.ToLower(g[2]) {
	case "week":
		return anchor.AddDate(0, 0, 7*n), true, true
	case "month":
		return anchor.AddDate(0, n, 0), true, true
	default:
		return anchor.AddDate(n, 0, 0), true, true
	}
}

func atoi(s string) int {
	v, _ := strconv.Atoi(s)
	return v
}
