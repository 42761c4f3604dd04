package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"marketplace/models"
	"marketplace/payment"
	"marketplace/repository"
)

// CheckoutService drives the two-phase checkout: register the cart
// total with the payment provider (intent), then turn the verified
// confirmation callback into an immutable order and clear the cart.
type CheckoutService struct {
	carts    repository.CartRepository
	products repository.ProductRepository
	intents  repository.IntentRepository
	checkout repository.CheckoutRepository
	gateway  payment.Gateway
	secret   string
	currency string
	timeout  time.Duration
	log      *slog.Logger
}

type CheckoutConfig struct {
	Secret   string
	Currency string
	// Timeout bounds each call to the payment provider.
	Timeout time.Duration
}

func NewCheckoutService(
	carts repository.CartRepository,
	products repository.ProductRepository,
	intents repository.IntentRepository,
	checkout repository.CheckoutRepository,
	gateway payment.Gateway,
	cfg CheckoutConfig,
	log *slog.Logger,
) *CheckoutService {
	currency := cfg.Currency
	if currency == "" {
		currency = "USD"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if log == nil {
		log = slog.Default()
	}
	return &CheckoutService{
		carts:    carts,
		products: products,
		intents:  intents,
		checkout: checkout,
		gateway:  gateway,
		secret:   cfg.Secret,
		currency: currency,
		timeout:  timeout,
		log:      log,
	}
}

type IntentResult struct {
	ProviderOrderID string `json:"providerOrderId"`
	AmountMinor     int64  `json:"amount"`
	Currency        string `json:"currency"`
	Receipt         string `json:"receipt"`
}

// Intent sums the current unit prices of everything in the cart,
// registers the amount with the provider and persists the snapshot
// the confirmation phase will be checked against.
func (s *CheckoutService) Intent(ctx context.Context, user models.User) (*IntentResult, error) {
	cart, err := s.carts.Get(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	products, err := s.products.FindByIDs(ctx, cart.ProductIDs)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, ErrEmptyCart
	}

	snapshot := make([]primitive.ObjectID, 0, len(products))
	for _, p := range products {
		snapshot = append(snapshot, p.ID)
	}
	total := models.TotalMinor(products)
	receipt := uuid.NewString()

	gctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	providerOrder, err := s.gateway.CreateOrder(gctx, total, s.currency, receipt)
	if err != nil {
		return nil, err
	}

	intent := &models.PaymentIntent{
		UserID:          user.ID,
		ProviderOrderID: providerOrder.ID,
		Receipt:         receipt,
		AmountMinor:     total,
		Currency:        providerOrder.Currency,
		ProductIDs:      snapshot,
	}
	if err := s.intents.Insert(ctx, intent); err != nil {
		return nil, err
	}

	return &IntentResult{
		ProviderOrderID: providerOrder.ID,
		AmountMinor:     total,
		Currency:        providerOrder.Currency,
		Receipt:         receipt,
	}, nil
}

type ConfirmInput struct {
	ProviderOrderID string
	PaymentID       string
	Signature       string
}

// Confirm verifies the provider callback before anything else; a bad
// signature produces no side effects. It then checks the live cart
// against the intent snapshot and performs the transactional
// order-insert / intent-consume / cart-clear.
func (s *CheckoutService) Confirm(ctx context.Context, user models.User, in ConfirmInput) (*models.Order, error) {
	if !payment.VerifySignature(in.ProviderOrderID, in.PaymentID, in.Signature, s.secret) {
		s.log.Warn("payment verification failed",
			"userId", user.ID.Hex(),
			"providerOrderId", in.ProviderOrderID,
			"paymentId", in.PaymentID,
		)
		return nil, payment.ErrVerificationFailed
	}

	intent, err := s.intents.FindByProviderOrderID(ctx, in.ProviderOrderID)
	if err != nil {
		return nil, err
	}
	if intent.UserID != user.ID {
		return nil, repository.ErrIntentNotFound
	}
	if intent.Status != models.IntentCreated {
		return nil, repository.ErrIntentConsumed
	}

	cart, err := s.carts.Get(ctx, user.ID)
	if err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			return nil, ErrCartChanged
		}
		return nil, err
	}

	products, err := s.products.FindByIDs(ctx, cart.ProductIDs)
	if err != nil {
		return nil, err
	}
	if !sameSnapshot(intent.ProductIDs, products) || models.TotalMinor(products) != intent.AmountMinor {
		return nil, ErrCartChanged
	}

	order := &models.Order{
		UserID:     user.ID,
		ProductIDs: intent.ProductIDs,
		PriceMinor: intent.AmountMinor,
		Payment: models.PaymentResult{
			IntentID:        intent.ID,
			ProviderOrderID: in.ProviderOrderID,
			PaymentID:       in.PaymentID,
			Signature:       in.Signature,
			Status:          models.PaymentCaptured,
		},
	}
	if err := s.checkout.Confirm(ctx, order, intent.ID); err != nil {
		return nil, err
	}

	s.log.Info("checkout confirmed",
		"userId", user.ID.Hex(),
		"orderId", order.ID.Hex(),
		"amountMinor", order.PriceMinor,
	)
	return order, nil
}

// sameSnapshot compares the intent's product set with the products
// currently resolvable from the cart, ignoring order.
func sameSnapshot(snapshot []primitive.ObjectID, current []models.Product) bool {
	if len(snapshot) != len(current) {
		return false
	}
	seen := make(map[primitive.ObjectID]int, len(snapshot))
	for _, id := range snapshot {
		seen[id]++
	}
	for _, p := range current {
		if seen[p.ID] == 0 {
			return false
		}
		seen[p.ID]--
	}
	return true
}
