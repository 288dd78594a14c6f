// Package recurrence generates occurrence dates for recurring tasks and
// expenses.
//
// All arithmetic is pure calendar math: no wall-clock reads, no internal
// state, same rule in means the same sequence out. Monthly sequences keep
// the start date's day-of-month as the anchor and clamp each target month
// independently to its last day, so a rule starting January 31 lands on
// February 28 (29 in leap years) and comes back to March 31.
package recurrence

import (
	"fmt"
	"strings"
	"time"

	"ledgerkit/pkg/models"
)

// ParseFrequency maps a wire string onto a recurrence frequency.
// An empty string is the non-recurring frequency.
func ParseFrequency(s string) (models.RecurrenceFrequency, error) {
	switch frequency := models.RecurrenceFrequency(strings.ToLower(strings.TrimSpace(s))); frequency {
	case "", models.RecurrenceNone:
		return models.RecurrenceNone, nil
	case models.RecurrenceDaily, models.RecurrenceWeekly, models.RecurrenceBiweekly, models.RecurrenceMonthly:
		return frequency, nil
	default:
		return "", NewValidationError("frequency", s, "must be one of daily, weekly, biweekly, monthly")
	}
}

// AddCalendarMonths advances a date by n calendar months, preserving the
// day-of-month and clamping to the target month's last day when that month
// is shorter. The clock portion of the input is preserved.
func AddCalendarMonths(t time.Time, n int) time.Time {
	year, month, day := t.Date()
	firstOfTarget := time.Date(year, month+time.Month(n), 1, 0, 0, 0, 0, t.Location())
	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// NextOccurrence returns the occurrence that follows date for the given
// frequency. A non-recurring frequency returns the date unchanged.
func NextOccurrence(date time.Time, frequency models.RecurrenceFrequency) time.Time {
	switch frequency {
	case models.RecurrenceDaily:
		return date.AddDate(0, 0, 1)
	case models.RecurrenceWeekly:
		return date.AddDate(0, 0, 7)
	case models.RecurrenceBiweekly:
		return date.AddDate(0, 0, 14)
	case models.RecurrenceMonthly:
		return AddCalendarMonths(date, 1)
	default:
		return date
	}
}

// GenerateOccurrences produces the ordered occurrence dates of a rule,
// starting at the rule's start date. Generation stops once maxCount dates
// exist or the next candidate would pass the rule's end date.
//
// The sequence is strictly increasing and restartable: calling twice with
// the same rule and maxCount yields an identical slice. An end date earlier
// than the start date is a valid degenerate schedule producing only the
// start date.
func GenerateOccurrences(rule models.RecurrenceRule, maxCount int) []time.Time {
	if maxCount < 1 {
		return nil
	}
	if !rule.IsRecurring() {
		return []time.Time{rule.StartDate}
	}

	occurrences := make([]time.Time, 0, maxCount)
	occurrences = append(occurrences, rule.StartDate)

	// Month steps derive from the start date, not the previous occurrence,
	// so the anchor day-of-month survives clamping in short months.
	for step := 1; len(occurrences) < maxCount; step++ {
		var next time.Time
		switch rule.Frequency {
		case models.RecurrenceDaily:
			next = rule.StartDate.AddDate(0, 0, step)
		case models.RecurrenceWeekly:
			next = rule.StartDate.AddDate(0, 0, 7*step)
		case models.RecurrenceBiweekly:
			next = rule.StartDate.AddDate(0, 0, 14*step)
		case models.RecurrenceMonthly:
			next = AddCalendarMonths(rule.StartDate, step)
		}
		if rule.EndDate != nil && next.After(*rule.EndDate) {
			break
		}
		occurrences = append(occurrences, next)
	}
	return occurrences
}

// Describe renders a human-readable summary of a rule, e.g.
// "Repeats weekly until 2024-12-31" or "One time task".
func Describe(rule models.RecurrenceRule) string {
	if !rule.IsRecurring() {
		return "One time task"
	}
	if rule.EndDate != nil {
		return fmt.Sprintf("Repeats %s until %s", rule.Frequency, rule.EndDate.Format(time.DateOnly))
	}
	return fmt.Sprintf("Repeats %s (no end date)", rule.Frequency)
}
