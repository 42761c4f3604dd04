package payment

import (
	"context"
	"errors"
)

var (
	// ErrUpstream marks provider network/API failures. These are
	// retryable by the caller.
	ErrUpstream = errors.New("payment provider unavailable")
	// ErrVerificationFailed marks a signature mismatch on the
	// confirmation callback. Never retryable, never side-effecting.
	ErrVerificationFailed = errors.New("payment verification failed")
)

// ProviderOrder is the provider's registration of an amount to be
// paid, created during the intent phase.
type ProviderOrder struct {
	ID          string
	AmountMinor int64
	Currency    string
}

type Gateway interface {
	CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (*ProviderOrder, error)
}
