package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const PaymentCaptured = "captured"

// PaymentResult carries the provider-issued identifiers and the
// signature that proved the confirmation callback authentic.
type PaymentResult struct {
	IntentID        primitive.ObjectID `bson:"intentId" json:"intentId"`
	ProviderOrderID string             `bson:"providerOrderId" json:"providerOrderId"`
	PaymentID       string             `bson:"paymentId" json:"paymentId"`
	Signature       string             `bson:"signature" json:"-"`
	Status          string             `bson:"status" json:"status"`
}

// Order is an immutable purchase receipt: the snapshot of product
// references and the total taken at confirmation time. No code path
// updates or deletes an order after insert.
type Order struct {
	ID         primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	UserID     primitive.ObjectID   `bson:"userId" json:"userId"`
	ProductIDs []primitive.ObjectID `bson:"products" json:"products"`
	PriceMinor int64                `bson:"priceMinor" json:"-"`
	Payment    PaymentResult        `bson:"payment" json:"payment"`
	CreatedAt  time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time            `bson:"updatedAt" json:"updatedAt"`
}
