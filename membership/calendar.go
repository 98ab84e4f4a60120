// SPDX-License-Identifier: GPL-3.0-only

// Package membership holds the calendar logic shared by every storage
// backend and handler: lifecycle status derivation, plan-based end-date
// arithmetic, quick renewal, and sequential member ID generation. All
// functions are pure and never return errors.
package membership

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type Status string

const (
	StatusActive  Status = "Active"
	StatusExpired Status = "Expired"
	StatusUnknown Status = "Unknown"
)

// DateFormat is the wire and file representation of all calendar dates.
const DateFormat = "2006-01-02"

// DefaultPlanMonths applies when a member references a plan that is
// missing from the catalog. Producing a date always beats failing.
const DefaultPlanMonths = 12

// ExpiringSoonWindow is the lookahead used to flag members whose end
// date is close enough to warrant a proactive renewal nudge.
const ExpiringSoonWindow = 30 * 24 * time.Hour

// DeriveStatus computes a member's lifecycle status from its end date.
// A nil end date means the record carries no usable expiry and maps to
// StatusUnknown rather than an error. Status must be recomputed from
// this function whenever records are loaded or dates change; stored
// status values are never authoritative.
func DeriveStatus(end *time.Time, today time.Time) Status {
	if end == nil {
		return StatusUnknown
	}
	if sameOrAfter(*end, today) {
		return StatusActive
	}
	return StatusExpired
}

// PlanEndDate computes the membership end date for a start date and a
// plan name. Unknown plan names fall back to DefaultPlanMonths.
func PlanEndDate(start time.Time, planName string, catalog map[string]int) time.Time {
	months, ok := catalog[planName]
	if !ok {
		months = DefaultPlanMonths
	}
	return addMonthsClamped(start, months)
}

// RenewByMonths extends an end date by the given number of months,
// using the same clamped arithmetic as PlanEndDate. Callers gate on
// months > 0; the function itself accepts any count.
func RenewByMonths(base time.Time, months int) time.Time {
	return addMonthsClamped(base, months)
}

// GenerateMemberID returns the next sequential member ID: the highest
// numeric suffix among IDs of the form M<digits>, plus one, zero-padded
// to four digits. IDs not matching the pattern keep their uniqueness
// but are ignored for numbering. Returns M0001 when no ID matches.
func GenerateMemberID(existing []string) string {
	highest := 0
	for _, id := range existing {
		n, ok := parseMemberID(id)
		if ok && n > highest {
			highest = n
		}
	}
	return fmt.Sprintf("M%04d", highest+1)
}

// ExpiringSoon reports whether an end date falls within the next 30
// days of today. Members with no end date are never flagged.
func ExpiringSoon(end *time.Time, today time.Time) bool {
	if end == nil {
		return false
	}
	return !end.After(today.Add(ExpiringSoonWindow))
}

// addMonthsClamped adds months to a date with the day clamped to 28.
// The clamp guarantees a valid date in every target month without
// special-casing month lengths or leap years. It intentionally shifts
// the day for start dates on the 29th through 31st (Jan 31 + 1 month is
// Feb 28, not Mar 3); renewals must clamp identically so round trips
// stay stable. Do not replace with time.AddDate, which normalizes
// overflow into the next month.
func addMonthsClamped(base time.Time, months int) time.Time {
	total := int(base.Month()) - 1 + months
	year := base.Year() + total/12
	month := time.Month(total%12 + 1)
	day := base.Day()
	if day > 28 {
		day = 28
	}
	return time.Date(year, month, day, 0, 0, 0, 0, base.Location())
}

func parseMemberID(id string) (int, bool) {
	if !strings.HasPrefix(id, "M") {
		return 0, false
	}
	suffix := id[1:]
	if suffix == "" {
		return 0, false
	}
	n, err := strconv.Atoi(suffix)
	if err != nil || n < 0 || strings.ContainsAny(suffix, "+- ") {
		return 0, false
	}
	return n, true
}

// sameOrAfter compares calendar days, ignoring any time-of-day or zone
// component the inputs may carry.
func sameOrAfter(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	if ay != by {
		return ay > by
	}
	if am != bm {
		return am > bm
	}
	return ad >= bd
}

// ParseDate parses a wire-format date. The zero return with false
// stands in for "absent": malformed dates degrade to no date at all,
// which DeriveStatus then reports as StatusUnknown.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FormatDate renders a possibly-absent date for the wire; nil becomes
// the empty string.
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DateFormat)
}
