package installment

import "fmt"

// ValidationError reports malformed plan input (non-positive total, an
// installment count below 1, or an unknown frequency).
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s (value: %v)", e.Field, e.Message, e.Value)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// NotFoundError is returned when a plan has no installment with the
// requested number.
type NotFoundError struct {
	PlanID string
	Number int
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("installment %d not found in plan %s", e.Number, e.PlanID)
}

// AlreadyPaidError is returned when recording a payment against an
// installment that is already settled. Re-application is rejected rather
// than absorbed so double-payment bugs surface at the call site.
type AlreadyPaidError struct {
	PlanID     string
	Number     int
	PaymentRef string
}

// Error implements the error interface.
func (e *AlreadyPaidError) Error() string {
	return fmt.Sprintf("installment %d in plan %s is already paid (payment %s)", e.Number, e.PlanID, e.PaymentRef)
}
