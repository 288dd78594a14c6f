// Package installment turns a total amount into a dated payment schedule
// and tracks the schedule as payments arrive.
//
// The scheduler is stateless and copy-on-write: every operation that changes
// a plan returns a new plan and leaves its input untouched. It also never
// reads the wall clock; callers pass the reference date into MarkOverdue and
// IsWithinReminderWindow, which keeps delinquency computation deterministic.
package installment

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"ledgerkit/internal/logger"
	"ledgerkit/internal/money"
	"ledgerkit/internal/recurrence"
	"ledgerkit/pkg/models"
)

// Scheduler creates and updates installment plans.
type Scheduler struct {
	log zerolog.Logger
}

// NewScheduler creates a new installment scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{
		log: logger.WithComponent("installment-scheduler"),
	}
}

// ParseFrequency maps a wire string onto a payment frequency.
func ParseFrequency(s string) (models.PaymentFrequency, error) {
	switch frequency := models.PaymentFrequency(strings.ToLower(strings.TrimSpace(s))); frequency {
	case models.FrequencyWeekly, models.FrequencyBiweekly, models.FrequencyMonthly, models.FrequencyQuarterly:
		return frequency, nil
	default:
		return "", NewValidationError("frequency", s, "must be one of weekly, biweekly, monthly, quarterly")
	}
}

// CreatePlan splits totalAmount into totalInstallments dated installments.
// Each share is truncated to the currency minor unit and the residual is
// added to the last installment, so the schedule sums exactly to
// totalAmount. Due dates advance from firstDueDate by the frequency's
// calendar step; month-based steps preserve the first due date's
// day-of-month, clamped at month end.
func (s *Scheduler) CreatePlan(totalAmount decimal.Decimal, totalInstallments int, frequency models.PaymentFrequency, firstDueDate time.Time) (*models.InstallmentPlan, error) {
	if totalInstallments < 1 {
		return nil, NewValidationError("total_installments", totalInstallments, "must be at least 1")
	}
	if !totalAmount.IsPositive() {
		return nil, NewValidationError("total_amount", totalAmount, "must be positive")
	}
	frequency, err := ParseFrequency(string(frequency))
	if err != nil {
		return nil, err
	}

	amounts := money.Split(totalAmount, totalInstallments)
	installments := make([]models.Installment, totalInstallments)
	for i := range installments {
		installments[i] = models.Installment{
			Number:  i + 1,
			Amount:  amounts[i],
			DueDate: dueDateAt(firstDueDate, frequency, i),
			Status:  models.InstallmentPending,
		}
	}

	plan := &models.InstallmentPlan{
		ID:                uuid.NewString(),
		TotalAmount:       totalAmount,
		TotalInstallments: totalInstallments,
		Frequency:         frequency,
		FirstDueDate:      firstDueDate,
		Installments:      installments,
	}

	s.log.Info().
		Str("plan", plan.ID).
		Str("total", totalAmount.String()).
		Int("installments", totalInstallments).
		Str("frequency", string(frequency)).
		Str("first_due", firstDueDate.Format(time.DateOnly)).
		Msg("Created installment plan")

	return plan, nil
}

// dueDateAt derives the i-th due date (0-based) from the first one.
// Month-based frequencies step from the anchor date, not the previous due
// date, so the day-of-month survives clamping in short months.
func dueDateAt(firstDueDate time.Time, frequency models.PaymentFrequency, i int) time.Time {
	switch frequency {
	case models.FrequencyWeekly:
		return firstDueDate.AddDate(0, 0, 7*i)
	case models.FrequencyBiweekly:
		return firstDueDate.AddDate(0, 0, 14*i)
	case models.FrequencyMonthly:
		return recurrence.AddCalendarMonths(firstDueDate, i)
	case models.FrequencyQuarterly:
		return recurrence.AddCalendarMonths(firstDueDate, 3*i)
	}
	return firstDueDate
}

// RecordPayment marks one installment paid and attaches the payment
// reference. Paying an unknown number returns a NotFoundError; paying a
// settled installment returns an AlreadyPaidError carrying the original
// reference. The input plan is never mutated, in either the success or the
// failure path.
func (s *Scheduler) RecordPayment(plan *models.InstallmentPlan, installmentNumber int, paymentRef string) (*models.InstallmentPlan, error) {
	idx := -1
	for i := range plan.Installments {
		if plan.Installments[i].Number == installmentNumber {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, &NotFoundError{PlanID: plan.ID, Number: installmentNumber}
	}
	if plan.Installments[idx].Status == models.InstallmentPaid {
		return nil, &AlreadyPaidError{
			PlanID:     plan.ID,
			Number:     installmentNumber,
			PaymentRef: plan.Installments[idx].PaymentRef,
		}
	}

	out := clonePlan(plan)
	out.Installments[idx].Status = models.InstallmentPaid
	out.Installments[idx].PaymentRef = paymentRef

	s.log.Info().
		Str("plan", plan.ID).
		Int("installment", installmentNumber).
		Str("payment_ref", paymentRef).
		Msg("Recorded installment payment")

	return out, nil
}

// MarkOverdue transitions every pending installment due before asOf to
// overdue. The caller supplies the reference date; the scheduler never
// reads the wall clock. The input plan is never mutated.
func (s *Scheduler) MarkOverdue(plan *models.InstallmentPlan, asOf time.Time) *models.InstallmentPlan {
	out := clonePlan(plan)
	for i := range out.Installments {
		inst := &out.Installments[i]
		if inst.Status == models.InstallmentPending && inst.DueDate.Before(asOf) {
			inst.Status = models.InstallmentOverdue
		}
	}
	return out
}

// NextPaymentDate returns the earliest due date among installments still
// pending or overdue, or nil when every installment is paid and the plan is
// closed.
func (s *Scheduler) NextPaymentDate(plan *models.InstallmentPlan) *time.Time {
	var next *time.Time
	for i := range plan.Installments {
		inst := plan.Installments[i]
		if inst.Status == models.InstallmentPaid {
			continue
		}
		if next == nil || inst.DueDate.Before(*next) {
			due := inst.DueDate
			next = &due
		}
	}
	return next
}

// IsWithinReminderWindow reports whether the plan's next unpaid installment
// falls due within reminderDays of asOf. A next due date already in the past
// is outside the window.
func (s *Scheduler) IsWithinReminderWindow(plan *models.InstallmentPlan, asOf time.Time, reminderDays int) bool {
	next := s.NextPaymentDate(plan)
	if next == nil || next.Before(asOf) {
		return false
	}
	deadline := asOf.AddDate(0, 0, reminderDays)
	return !next.After(deadline)
}

func clonePlan(plan *models.InstallmentPlan) *models.InstallmentPlan {
	out := *plan
	out.Installments = append([]models.Installment(nil), plan.Installments...)
	return &out
}
