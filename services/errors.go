package services

import "errors"

// Error sentinel untuk seluruh service layer. Controller memetakan
// kategorinya ke status HTTP: NotFound=404, InvalidState/Conflict=409,
// Validation=400.
var (
	ErrTableNotFound   = errors.New("table not found")
	ErrSessionNotFound = errors.New("session not found")
	ErrOrderNotFound   = errors.New("order not found")
	ErrBillNotFound    = errors.New("bill not found")
	ErrSplitNotFound   = errors.New("bill split not found")

	ErrTableUnavailable = errors.New("table is not available")
	ErrSessionClosed    = errors.New("session is not open")
	ErrOrderFinalized   = errors.New("order already reached a final status")
	ErrBillAlreadyOpen  = errors.New("session already has an open bill")
	ErrOpenBillExists   = errors.New("session has an unsettled bill")

	ErrEmptyOrder       = errors.New("order must contain at least one item")
	ErrInvalidAmount    = errors.New("amount must be greater than zero")
	ErrInvalidPartCount = errors.New("part count must be at least 1")
	ErrInvalidStatus    = errors.New("invalid status value")
	ErrUnassignedItems  = errors.New("one or more order items have no split assignment")
	ErrSplitMismatch    = errors.New("split amounts do not add up to the bill total")

	ErrConflict = errors.New("storage conflict after retries")
)

func IsNotFound(err error) bool {
	return errors.Is(err, ErrTableNotFound) ||
		errors.Is(err, ErrSessionNotFound) ||
		errors.Is(err, ErrOrderNotFound) ||
		errors.Is(err, ErrBillNotFound) ||
		errors.Is(err, ErrSplitNotFound)
}

func IsInvalidState(err error) bool {
	return errors.Is(err, ErrTableUnavailable) ||
		errors.Is(err, ErrSessionClosed) ||
		errors.Is(err, ErrOrderFinalized) ||
		errors.Is(err, ErrBillAlreadyOpen) ||
		errors.Is(err, ErrOpenBillExists) ||
		errors.Is(err, ErrConflict)
}

func IsValidation(err error) bool {
	return errors.Is(err, ErrEmptyOrder) ||
		errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrInvalidPartCount) ||
		errors.Is(err, ErrInvalidStatus) ||
		errors.Is(err, ErrUnassignedItems) ||
		errors.Is(err, ErrSplitMismatch)
}
