package render

import (
	"strconv"
	"strings"
	"time"

	appLog "redmics/internal/log"
	"redmics/internal/model"
)

// issuePeriod resolves the effective (start, due) dates for an issue. A
// missing date falls back to the linked fixed version's matching date; there
// is no further fallback, so either side may stay nil.
func issuePeriod(issue model.Issue) (start, due *time.Time) {
	start = issue.StartDate
	due = issue.DueDate
	if issue.FixedVersion != nil {
		if start == nil {
			start = issue.FixedVersion.StartDate
		}
		if due == nil {
			due = issue.FixedVersion.DueDate
		}
	}
	return start, due
}

// versionPeriod resolves the (start, due) dates for a version. Versions have
// no fallback chain.
func versionPeriod(v model.Version) (start, due *time.Time) {
	return v.StartDate, v.DueDate
}

// megaCalendarPeriod resolves timestamp-granularity bounds for the
// mega-calendar strategy: the issue's own dates combined with a per-issue
// time-of-day override. The override lookup is best effort; a failed lookup
// or an unparsable clock value falls back to 00:00 / 24:00.
func (r *Renderer) megaCalendarPeriod(issue model.Issue) (start, due *time.Time) {
	var override model.TimeOverride
	if r.settings.TimeOverride != nil {
		o, err := r.settings.TimeOverride(issue.ID)
		if err != nil {
			appLog.Debug("time override lookup failed, using defaults", "issue", issue.ID, "err", err)
		} else {
			override = o
		}
	}

	if issue.StartDate != nil {
		t := combineClock(*issue.StartDate, override.Begin, 0, 0)
		start = &t
	}
	if issue.DueDate != nil {
		t := combineClock(*issue.DueDate, override.End, 24, 0)
		due = &t
	}
	return start, due
}

// combineClock merges a date with an "HH:MM" clock value, substituting the
// given default hour/minute when the value is empty or malformed. Hour 24
// means midnight at the end of the day.
func combineClock(date time.Time, clock string, defHour, defMin int) time.Time {
	hour, min := defHour, defMin
	if h, m, ok := parseClock(clock); ok {
		hour, min = h, m
	}

	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	if hour >= 24 {
		return day.AddDate(0, 0, 1)
	}
	return day.Add(time.Duration(hour)*time.Hour + time.Duration(min)*time.Minute)
}

func parseClock(s string) (hour, min int, ok bool) {
	h, m, found := strings.Cut(s, ":")
	if !found {
		return 0, 0, false
	}
	hour, err := strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 24 {
		return 0, 0, false
	}
	min, err = strconv.Atoi(m)
	if err != nil || min < 0 || min > 59 {
		return 0, 0, false
	}
	return hour, min, true
}
