package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentFrequency is the calendar step between installment due dates.
type PaymentFrequency string

const (
	FrequencyWeekly    PaymentFrequency = "weekly"    // +7 days
	FrequencyBiweekly  PaymentFrequency = "biweekly"  // +14 days
	FrequencyMonthly   PaymentFrequency = "monthly"   // +1 calendar month
	FrequencyQuarterly PaymentFrequency = "quarterly" // +3 calendar months
)

// InstallmentStatus is the lifecycle state of a single installment.
// Transitions: pending -> paid, pending -> overdue, overdue -> paid.
// Paid is terminal.
type InstallmentStatus string

const (
	InstallmentPending InstallmentStatus = "pending"
	InstallmentPaid    InstallmentStatus = "paid"
	InstallmentOverdue InstallmentStatus = "overdue"
)

// Installment is one dated partial payment inside a plan. Numbers are
// 1-based and unique within a plan; number order equals due-date order.
type Installment struct {
	Number     int               `json:"number"`
	Amount     decimal.Decimal   `json:"amount"`
	DueDate    time.Time         `json:"due_date"`
	Status     InstallmentStatus `json:"status"`
	PaymentRef string            `json:"payment_ref,omitempty"` // payment ID once paid
}

// InstallmentPlan splits a total amount into dated partial payments.
// The installment amounts always sum exactly to TotalAmount; any rounding
// residual lands on the last installment.
type InstallmentPlan struct {
	ID                string           `json:"id"`
	TotalAmount       decimal.Decimal  `json:"total_amount"`
	TotalInstallments int              `json:"total_installments"`
	Frequency         PaymentFrequency `json:"frequency"`
	FirstDueDate      time.Time        `json:"first_due_date"`
	Installments      []Installment    `json:"installments"`
}
