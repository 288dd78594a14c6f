// Package services exposes read-side report generation over in-memory
// ledger data. Reports are derived values: every entity and plan is pushed
// back through the calculation engines on each build, and the expensive
// aggregates are memoized behind a TTL cache keyed on a fingerprint of the
// input set.
package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"ledgerkit/internal/cache"
	"ledgerkit/internal/installment"
	"ledgerkit/internal/ledger"
	"ledgerkit/internal/logger"
	"ledgerkit/pkg/models"
)

// ReportsService builds aggregate views over ledger entities and
// installment plans supplied by the caller.
type ReportsService interface {
	// OutstandingSummary totals billed, paid, and outstanding amounts across
	// the supplied entities, bucketed by payment status.
	OutstandingSummary(ctx context.Context, entities []models.LedgerEntity) (*OutstandingSummary, error)

	// DelinquencyReport lists overdue installments and payments falling due
	// within the reminder window across the supplied plans, as of asOf.
	DelinquencyReport(ctx context.Context, plans []*models.InstallmentPlan, asOf time.Time, reminderDays int) (*DelinquencyReport, error)
}

// OutstandingSummary aggregates the financial state of a set of entities.
type OutstandingSummary struct {
	EntityCount      int                          `json:"entity_count"`
	TotalBilled      decimal.Decimal              `json:"total_billed"`
	TotalPaid        decimal.Decimal              `json:"total_paid"`
	TotalOutstanding decimal.Decimal              `json:"total_outstanding"`
	CountByStatus    map[models.PaymentStatus]int `json:"count_by_status"`
}

// DelinquencyReport aggregates overdue and soon-due installments.
type DelinquencyReport struct {
	AsOf                time.Time         `json:"as_of"`
	PlanCount           int               `json:"plan_count"`
	OverdueInstallments int               `json:"overdue_installments"`
	OverdueAmount       decimal.Decimal   `json:"overdue_amount"`
	DueSoon             []UpcomingPayment `json:"due_soon"`
}

// UpcomingPayment is one plan's next payment inside the reminder window.
type UpcomingPayment struct {
	PlanID  string          `json:"plan_id"`
	Number  int             `json:"number"`
	DueDate time.Time       `json:"due_date"`
	Amount  decimal.Decimal `json:"amount"`
}

type reportsService struct {
	log           zerolog.Logger
	calculator    *ledger.Calculator
	scheduler     *installment.Scheduler
	summaries     *cache.Cache[*OutstandingSummary]
	delinquencies *cache.Cache[*DelinquencyReport]
	ttl           time.Duration
}

// NewReportsService creates a reports service whose aggregates are cached
// for the given TTL.
func NewReportsService(ttl time.Duration) ReportsService {
	return &reportsService{
		log:           logger.WithComponent("reports"),
		calculator:    ledger.NewCalculator(),
		scheduler:     installment.NewScheduler(),
		summaries:     cache.New[*OutstandingSummary](),
		delinquencies: cache.New[*DelinquencyReport](),
		ttl:           ttl,
	}
}

func (s *reportsService) OutstandingSummary(ctx context.Context, entities []models.LedgerEntity) (*OutstandingSummary, error) {
	key := cache.BuildKey("outstanding-summary", map[string]string{
		"fingerprint": fingerprintEntities(entities),
	})

	return s.summaries.GetOrCompute(key, s.ttl, func() (*OutstandingSummary, error) {
		summary := &OutstandingSummary{
			EntityCount:      len(entities),
			TotalBilled:      decimal.Zero,
			TotalPaid:        decimal.Zero,
			TotalOutstanding: decimal.Zero,
			CountByStatus:    make(map[models.PaymentStatus]int),
		}

		for _, entity := range entities {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			refreshed, err := s.calculator.Recompute(entity)
			if err != nil {
				return nil, fmt.Errorf("entity %s: %w", entity.ID, err)
			}
			summary.TotalBilled = summary.TotalBilled.Add(refreshed.TotalAmount)
			summary.TotalPaid = summary.TotalPaid.Add(refreshed.AmountPaid)
			summary.TotalOutstanding = summary.TotalOutstanding.Add(refreshed.Balance)
			summary.CountByStatus[refreshed.PaymentStatus]++
		}

		s.log.Info().
			Int("entities", summary.EntityCount).
			Str("billed", summary.TotalBilled.String()).
			Str("outstanding", summary.TotalOutstanding.String()).
			Msg("Built outstanding summary")

		return summary, nil
	})
}

func (s *reportsService) DelinquencyReport(ctx context.Context, plans []*models.InstallmentPlan, asOf time.Time, reminderDays int) (*DelinquencyReport, error) {
	key := cache.BuildKey("delinquency-report", map[string]string{
		"fingerprint":   fingerprintPlans(plans),
		"as_of":         asOf.Format(time.DateOnly),
		"reminder_days": strconv.Itoa(reminderDays),
	})

	return s.delinquencies.GetOrCompute(key, s.ttl, func() (*DelinquencyReport, error) {
		report := &DelinquencyReport{
			AsOf:          asOf,
			PlanCount:     len(plans),
			OverdueAmount: decimal.Zero,
			DueSoon:       []UpcomingPayment{},
		}

		for _, plan := range plans {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			marked := s.scheduler.MarkOverdue(plan, asOf)
			for _, inst := range marked.Installments {
				if inst.Status == models.InstallmentOverdue {
					report.OverdueInstallments++
					report.OverdueAmount = report.OverdueAmount.Add(inst.Amount)
				}
			}
			if !s.scheduler.IsWithinReminderWindow(marked, asOf, reminderDays) {
				continue
			}
			next := s.scheduler.NextPaymentDate(marked)
			for _, inst := range marked.Installments {
				if inst.Status != models.InstallmentPaid && inst.DueDate.Equal(*next) {
					report.DueSoon = append(report.DueSoon, UpcomingPayment{
						PlanID:  marked.ID,
						Number:  inst.Number,
						DueDate: inst.DueDate,
						Amount:  inst.Amount,
					})
					break
				}
			}
		}

		s.log.Info().
			Int("plans", report.PlanCount).
			Int("overdue", report.OverdueInstallments).
			Int("due_soon", len(report.DueSoon)).
			Str("as_of", asOf.Format(time.DateOnly)).
			Msg("Built delinquency report")

		return report, nil
	})
}

// fingerprintEntities hashes the financially relevant fields of an entity
// set so equal inputs share one cache entry.
func fingerprintEntities(entities []models.LedgerEntity) string {
	h := sha256.New()
	for _, entity := range entities {
		fmt.Fprintf(h, "%s|%s;", entity.ID, entity.Currency)
		for _, item := range entity.Items {
			fmt.Fprintf(h, "i:%d*%s;", item.Quantity, item.UnitPrice.String())
		}
		for _, payment := range entity.Payments {
			fmt.Fprintf(h, "p:%s=%s;", payment.ID, payment.Amount.String())
		}
	}
	return hex.EncodeToString(h.Sum(nil)[:16])
}

func fingerprintPlans(plans []*models.InstallmentPlan) string {
	h := sha256.New()
	for _, plan := range plans {
		fmt.Fprintf(h, "%s|%s|%d;", plan.ID, plan.TotalAmount.String(), plan.TotalInstallments)
		for _, inst := range plan.Installments {
			fmt.Fprintf(h, "n:%d=%s@%s/%s;", inst.Number, inst.Amount.String(),
				inst.DueDate.Format(time.DateOnly), inst.Status)
		}
	}
	return hex.EncodeToString(h.Sum(nil)[:16])
}
