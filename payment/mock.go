package payment

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// MockGateway stands in for the provider in development and tests.
// It remembers created orders and can sign its own callbacks.
type MockGateway struct {
	mu     sync.RWMutex
	secret string
	orders map[string]*ProviderOrder
}

func NewMockGateway(secret string) *MockGateway {
	return &MockGateway{
		secret: secret,
		orders: make(map[string]*ProviderOrder),
	}
}

func (g *MockGateway) CreateOrder(_ context.Context, amountMinor int64, currency, receipt string) (*ProviderOrder, error) {
	order := &ProviderOrder{
		ID:          fmt.Sprintf("order_%s", uuid.NewString()),
		AmountMinor: amountMinor,
		Currency:    currency,
	}

	g.mu.Lock()
	g.orders[order.ID] = order
	g.mu.Unlock()
	return order, nil
}

// CompletePayment simulates the client-side payment flow: it issues a
// payment id and the matching callback signature.
func (g *MockGateway) CompletePayment(providerOrderID string) (paymentID, signature string, err error) {
	g.mu.RLock()
	_, ok := g.orders[providerOrderID]
	g.mu.RUnlock()
	if !ok {
		return "", "", fmt.Errorf("unknown provider order %s", providerOrderID)
	}

	paymentID = fmt.Sprintf("pay_%s", uuid.NewString())
	return paymentID, Sign(providerOrderID, paymentID, g.secret), nil
}
