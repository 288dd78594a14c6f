package models

import "time"

// RecurrenceFrequency is the calendar step between occurrences of a
// recurring task or expense.
type RecurrenceFrequency string

const (
	RecurrenceNone     RecurrenceFrequency = "none"
	RecurrenceDaily    RecurrenceFrequency = "daily"
	RecurrenceWeekly   RecurrenceFrequency = "weekly"
	RecurrenceBiweekly RecurrenceFrequency = "biweekly"
	RecurrenceMonthly  RecurrenceFrequency = "monthly"
)

// RecurrenceRule describes when a recurring task or expense repeats.
type RecurrenceRule struct {
	Frequency RecurrenceFrequency `json:"frequency"`
	StartDate time.Time           `json:"start_date"`
	EndDate   *time.Time          `json:"end_date,omitempty"` // nil means no end date
}

// IsRecurring reports whether the rule repeats at all. A rule without a
// frequency is a one-time task with a single occurrence at StartDate.
func (r RecurrenceRule) IsRecurring() bool {
	return r.Frequency != "" && r.Frequency != RecurrenceNone
}
