package recurrence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgerkit/pkg/models"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestParseFrequency(t *testing.T) {
	tests := []struct {
		input   string
		want    models.RecurrenceFrequency
		wantErr bool
	}{
		{"daily", models.RecurrenceDaily, false},
		{" Weekly ", models.RecurrenceWeekly, false},
		{"BIWEEKLY", models.RecurrenceBiweekly, false},
		{"monthly", models.RecurrenceMonthly, false},
		{"", models.RecurrenceNone, false},
		{"none", models.RecurrenceNone, false},
		{"yearly", "", true},
		{"quarterly", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFrequency(tt.input)
			if tt.wantErr {
				var validationErr *ValidationError
				require.ErrorAs(t, err, &validationErr)
				assert.Equal(t, "frequency", validationErr.Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAddCalendarMonths(t *testing.T) {
	tests := []struct {
		name   string
		start  time.Time
		months int
		want   time.Time
	}{
		{"plain step", date(2024, time.January, 15), 1, date(2024, time.February, 15)},
		{"clamp into leap february", date(2024, time.January, 31), 1, date(2024, time.February, 29)},
		{"clamp into plain february", date(2023, time.January, 31), 1, date(2023, time.February, 28)},
		{"thirty day month", date(2024, time.March, 31), 1, date(2024, time.April, 30)},
		{"across year end", date(2024, time.November, 30), 3, date(2025, time.February, 28)},
		{"zero months", date(2024, time.May, 10), 0, date(2024, time.May, 10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AddCalendarMonths(tt.start, tt.months))
		})
	}
}

func TestNextOccurrence(t *testing.T) {
	start := date(2024, time.January, 31)

	assert.Equal(t, date(2024, time.February, 1), NextOccurrence(start, models.RecurrenceDaily))
	assert.Equal(t, date(2024, time.February, 7), NextOccurrence(start, models.RecurrenceWeekly))
	assert.Equal(t, date(2024, time.February, 14), NextOccurrence(start, models.RecurrenceBiweekly))
	assert.Equal(t, date(2024, time.February, 29), NextOccurrence(start, models.RecurrenceMonthly))
	assert.Equal(t, start, NextOccurrence(start, models.RecurrenceNone))
}

func TestGenerateOccurrencesWeeklyRespectsEndDate(t *testing.T) {
	end := date(2024, time.January, 22)
	rule := models.RecurrenceRule{
		Frequency: models.RecurrenceWeekly,
		StartDate: date(2024, time.January, 1),
		EndDate:   &end,
	}

	got := GenerateOccurrences(rule, 100)
	assert.Equal(t, []time.Time{
		date(2024, time.January, 1),
		date(2024, time.January, 8),
		date(2024, time.January, 15),
		date(2024, time.January, 22),
	}, got)
}

func TestGenerateOccurrencesMonthlyClampsToMonthEnd(t *testing.T) {
	rule := models.RecurrenceRule{
		Frequency: models.RecurrenceMonthly,
		StartDate: date(2024, time.January, 31),
	}

	// The anchor day-of-month survives a clamped month: after February 29
	// the sequence returns to the 31st, then clamps again for April.
	got := GenerateOccurrences(rule, 4)
	assert.Equal(t, []time.Time{
		date(2024, time.January, 31),
		date(2024, time.February, 29),
		date(2024, time.March, 31),
		date(2024, time.April, 30),
	}, got)
}

func TestGenerateOccurrencesDaily(t *testing.T) {
	rule := models.RecurrenceRule{
		Frequency: models.RecurrenceDaily,
		StartDate: date(2024, time.February, 27),
	}

	got := GenerateOccurrences(rule, 4)
	assert.Equal(t, []time.Time{
		date(2024, time.February, 27),
		date(2024, time.February, 28),
		date(2024, time.February, 29),
		date(2024, time.March, 1),
	}, got)
}

func TestGenerateOccurrencesEndBeforeStartYieldsStartOnly(t *testing.T) {
	end := date(2023, time.December, 1)
	rule := models.RecurrenceRule{
		Frequency: models.RecurrenceWeekly,
		StartDate: date(2024, time.January, 1),
		EndDate:   &end,
	}

	got := GenerateOccurrences(rule, 10)
	assert.Equal(t, []time.Time{date(2024, time.January, 1)}, got)
}

func TestGenerateOccurrencesNonRecurringYieldsStartOnly(t *testing.T) {
	rule := models.RecurrenceRule{
		Frequency: models.RecurrenceNone,
		StartDate: date(2024, time.June, 5),
	}

	got := GenerateOccurrences(rule, 10)
	assert.Equal(t, []time.Time{date(2024, time.June, 5)}, got)
}

func TestGenerateOccurrencesIsRestartable(t *testing.T) {
	rule := models.RecurrenceRule{
		Frequency: models.RecurrenceBiweekly,
		StartDate: date(2024, time.January, 3),
	}

	first := GenerateOccurrences(rule, 6)
	second := GenerateOccurrences(rule, 6)
	assert.Equal(t, first, second)
}

func TestGenerateOccurrencesZeroMaxCount(t *testing.T) {
	rule := models.RecurrenceRule{
		Frequency: models.RecurrenceDaily,
		StartDate: date(2024, time.January, 1),
	}
	assert.Nil(t, GenerateOccurrences(rule, 0))
}

func TestDescribe(t *testing.T) {
	end := date(2024, time.December, 31)

	tests := []struct {
		name string
		rule models.RecurrenceRule
		want string
	}{
		{
			"weekly with end date",
			models.RecurrenceRule{Frequency: models.RecurrenceWeekly, StartDate: date(2024, time.January, 1), EndDate: &end},
			"Repeats weekly until 2024-12-31",
		},
		{
			"monthly without end date",
			models.RecurrenceRule{Frequency: models.RecurrenceMonthly, StartDate: date(2024, time.January, 1)},
			"Repeats monthly (no end date)",
		},
		{
			"one time task",
			models.RecurrenceRule{Frequency: models.RecurrenceNone, StartDate: date(2024, time.January, 1)},
			"One time task",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Describe(tt.rule))
		})
	}
}
