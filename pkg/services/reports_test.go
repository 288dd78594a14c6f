package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgerkit/internal/installment"
	"ledgerkit/pkg/models"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func testEntities() []models.LedgerEntity {
	return []models.LedgerEntity{
		{
			ID:       "order-1",
			Items:    []models.LineItem{{Quantity: 2, UnitPrice: d("100")}},
			Payments: []models.Payment{{ID: "p1", Amount: d("50")}},
		},
		{
			ID:       "order-2",
			Items:    []models.LineItem{{Quantity: 1, UnitPrice: d("100")}},
			Payments: []models.Payment{{ID: "p2", Amount: d("100")}},
		},
		{
			ID:    "expense-1",
			Items: []models.LineItem{{Quantity: 1, UnitPrice: d("100")}},
		},
	}
}

func TestOutstandingSummary(t *testing.T) {
	reports := NewReportsService(time.Minute)

	summary, err := reports.OutstandingSummary(context.Background(), testEntities())
	require.NoError(t, err)

	assert.Equal(t, 3, summary.EntityCount)
	assert.Equal(t, "400", summary.TotalBilled.String())
	assert.Equal(t, "150", summary.TotalPaid.String())
	assert.Equal(t, "250", summary.TotalOutstanding.String())
	assert.Equal(t, map[models.PaymentStatus]int{
		models.StatusPartiallyPaid: 1,
		models.StatusPaid:          1,
		models.StatusUnpaid:        1,
	}, summary.CountByStatus)
}

func TestOutstandingSummaryIsStableAcrossCalls(t *testing.T) {
	reports := NewReportsService(time.Minute)

	first, err := reports.OutstandingSummary(context.Background(), testEntities())
	require.NoError(t, err)
	second, err := reports.OutstandingSummary(context.Background(), testEntities())
	require.NoError(t, err)

	// Equal inputs share one fingerprint, so the cached summary comes back.
	assert.Same(t, first, second)
}

func TestOutstandingSummaryPropagatesValidationErrors(t *testing.T) {
	reports := NewReportsService(time.Minute)

	_, err := reports.OutstandingSummary(context.Background(), []models.LedgerEntity{
		{ID: "bad", Items: []models.LineItem{{Quantity: -1, UnitPrice: d("10")}}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad")
}

func TestDelinquencyReport(t *testing.T) {
	scheduler := installment.NewScheduler()

	// Plan A: first installment paid, second due the day after asOf.
	planA, err := scheduler.CreatePlan(d("300"), 3, models.FrequencyMonthly, date(2024, time.January, 15))
	require.NoError(t, err)
	planA, err = scheduler.RecordPayment(planA, 1, "pay-a1")
	require.NoError(t, err)

	// Plan B: nothing paid, first installment long overdue.
	planB, err := scheduler.CreatePlan(d("600"), 2, models.FrequencyWeekly, date(2024, time.January, 1))
	require.NoError(t, err)

	reports := NewReportsService(time.Minute)
	asOf := date(2024, time.February, 14)

	report, err := reports.DelinquencyReport(context.Background(), []*models.InstallmentPlan{planA, planB}, asOf, 3)
	require.NoError(t, err)

	assert.Equal(t, 2, report.PlanCount)
	assert.Equal(t, asOf, report.AsOf)

	// Plan B's two installments (Jan 1, Jan 8) are overdue.
	assert.Equal(t, 2, report.OverdueInstallments)
	assert.Equal(t, "600", report.OverdueAmount.String())

	// Plan A's next installment (Feb 15) falls inside the 3-day window;
	// plan B's next due date is in the past and never appears as upcoming.
	require.Len(t, report.DueSoon, 1)
	assert.Equal(t, planA.ID, report.DueSoon[0].PlanID)
	assert.Equal(t, 2, report.DueSoon[0].Number)
	assert.Equal(t, date(2024, time.February, 15), report.DueSoon[0].DueDate)
	assert.Equal(t, "100", report.DueSoon[0].Amount.String())
}

func TestDelinquencyReportAllPaidPlan(t *testing.T) {
	scheduler := installment.NewScheduler()

	plan, err := scheduler.CreatePlan(d("200"), 2, models.FrequencyMonthly, date(2024, time.January, 1))
	require.NoError(t, err)
	for n := 1; n <= 2; n++ {
		plan, err = scheduler.RecordPayment(plan, n, "pay")
		require.NoError(t, err)
	}

	reports := NewReportsService(time.Minute)
	report, err := reports.DelinquencyReport(context.Background(), []*models.InstallmentPlan{plan}, date(2024, time.June, 1), 3)
	require.NoError(t, err)

	assert.Zero(t, report.OverdueInstallments)
	assert.True(t, report.OverdueAmount.IsZero())
	assert.Empty(t, report.DueSoon)
}
