package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod identifies how a payment was made.
type PaymentMethod string

const (
	MethodCash         PaymentMethod = "cash"
	MethodCard         PaymentMethod = "card"
	MethodBankTransfer PaymentMethod = "bank_transfer"
	MethodMobileMoney  PaymentMethod = "mobile_money"
)

// PaymentStatus is the derived payment state of a ledger entity.
type PaymentStatus string

const (
	StatusUnpaid        PaymentStatus = "unpaid"
	StatusPartiallyPaid PaymentStatus = "partially_paid"
	StatusPaid          PaymentStatus = "paid"
)

// LineItem is a billable line on an order, expense, or material purchase.
// Immutable once computed into a total.
type LineItem struct {
	Description string          `json:"description,omitempty"`
	Quantity    int64           `json:"quantity"`   // must be >= 1
	UnitPrice   decimal.Decimal `json:"unit_price"` // must be >= 0
}

// Payment is one recorded payment against a ledger entity.
type Payment struct {
	ID     string          `json:"id"`
	Amount decimal.Decimal `json:"amount"` // must be > 0
	Date   time.Time       `json:"date"`
	Method PaymentMethod   `json:"method"`
}

// LedgerEntity is any business object whose financial state derives from
// line items and payments (orders, expenses, material purchases).
//
// The derived fields below are never a source of truth: they are recomputed
// from Items and Payments on every read so the stored copy can never drift.
type LedgerEntity struct {
	ID          string     `json:"id"`
	Description string     `json:"description,omitempty"`
	Currency    string     `json:"currency,omitempty"` // currency code (EUR, USD, etc.)
	Items       []LineItem `json:"items"`
	Payments    []Payment  `json:"payments"`

	// Derived fields, refreshed by the ledger calculator
	TotalAmount   decimal.Decimal `json:"total_amount"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
	Balance       decimal.Decimal `json:"balance"`
	PaymentStatus PaymentStatus   `json:"payment_status"`
}
