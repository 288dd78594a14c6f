// Package ledger derives the financial state of entities that carry line
// items and payments (orders, expenses, material purchases).
//
// Every entity kind shares the same math: total from line items, amount paid
// from payments, balance clamped at zero, and a payment status that is a pure
// function of (total, paid). Derived fields are never treated as a source of
// truth; Recompute refreshes them from the raw inputs on every call so stored
// copies cannot drift apart between call sites.
package ledger

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"ledgerkit/internal/logger"
	"ledgerkit/pkg/models"
)

// Calculator derives totals, balances, and payment status for ledger entities.
type Calculator struct {
	log zerolog.Logger
}

// NewCalculator creates a new ledger calculator.
func NewCalculator() *Calculator {
	return &Calculator{
		log: logger.WithComponent("ledger-calculator"),
	}
}

// ComputeTotal sums quantity * unit price over all line items. An empty item
// list totals zero. Items with a quantity below 1 or a negative unit price
// are a caller error, not a clamped zero.
func (c *Calculator) ComputeTotal(items []models.LineItem) (decimal.Decimal, error) {
	total := decimal.Zero
	for i, item := range items {
		if item.Quantity < 1 {
			return decimal.Zero, NewValidationError(
				fmt.Sprintf("items[%d].quantity", i), item.Quantity, "quantity must be at least 1")
		}
		if item.UnitPrice.IsNegative() {
			return decimal.Zero, NewValidationError(
				fmt.Sprintf("items[%d].unit_price", i), item.UnitPrice, "unit price must not be negative")
		}
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(item.Quantity)))
	}
	return total, nil
}

// ComputeAmountPaid sums the payment amounts. An empty payment list sums to
// zero; a zero or negative payment is rejected, never silently dropped.
func (c *Calculator) ComputeAmountPaid(payments []models.Payment) (decimal.Decimal, error) {
	paid := decimal.Zero
	for i, payment := range payments {
		if !payment.Amount.IsPositive() {
			return decimal.Zero, NewValidationError(
				fmt.Sprintf("payments[%d].amount", i), payment.Amount, "payment amount must be positive")
		}
		paid = paid.Add(payment.Amount)
	}
	return paid, nil
}

// ComputeBalance returns total minus paid, clamped at zero. Overpayment is a
// caller-level policy decision, not an error at this layer.
func (c *Calculator) ComputeBalance(total, paid decimal.Decimal) decimal.Decimal {
	balance := total.Sub(paid)
	if balance.IsNegative() {
		return decimal.Zero
	}
	return balance
}

// DerivePaymentStatus maps (total, paid) onto the shared payment status:
// a zero total or zero paid amount is unpaid, paid >= total is paid,
// everything in between is partially paid. Pure and stateless; identical
// inputs always produce identical output.
func (c *Calculator) DerivePaymentStatus(total, paid decimal.Decimal) models.PaymentStatus {
	switch {
	case total.Sign() <= 0 || paid.Sign() <= 0:
		return models.StatusUnpaid
	case paid.GreaterThanOrEqual(total):
		return models.StatusPaid
	default:
		return models.StatusPartiallyPaid
	}
}

// Recompute returns a copy of the entity with refreshed derived fields. The
// input is never mutated, so a concurrent reader holding the old value sees a
// consistent snapshot rather than a partially updated one.
func (c *Calculator) Recompute(entity models.LedgerEntity) (models.LedgerEntity, error) {
	total, err := c.ComputeTotal(entity.Items)
	if err != nil {
		return models.LedgerEntity{}, err
	}

	paid, err := c.ComputeAmountPaid(entity.Payments)
	if err != nil {
		return models.LedgerEntity{}, err
	}

	out := entity
	out.Items = append([]models.LineItem(nil), entity.Items...)
	out.Payments = append([]models.Payment(nil), entity.Payments...)
	out.TotalAmount = total
	out.AmountPaid = paid
	out.Balance = c.ComputeBalance(total, paid)
	out.PaymentStatus = c.DerivePaymentStatus(total, paid)

	c.log.Debug().
		Str("entity", entity.ID).
		Str("total", total.String()).
		Str("paid", paid.String()).
		Str("balance", out.Balance.String()).
		Str("status", string(out.PaymentStatus)).
		Msg("Recomputed ledger state")

	return out, nil
}
