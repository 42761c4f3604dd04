package services

import "errors"

var (
	// ErrEmptyCart rejects an intent request when there is nothing
	// to pay for.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrCartChanged aborts a confirmation whose cart no longer
	// matches the intent snapshot; the client must request a new
	// intent instead of paying for a stale total.
	ErrCartChanged = errors.New("cart changed since payment intent")
	// ErrNotAllowed rejects operations on resources the current
	// user neither owns nor administers.
	ErrNotAllowed = errors.New("operation not allowed")
)

// totalPages is the page count reported by the paginated listing
// envelopes.
func totalPages(count int64, pageSize int) int64 {
	if pageSize < 1 {
		pageSize = 20
	}
	return (count + int64(pageSize) - 1) / int64(pageSize)
}
