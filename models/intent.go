package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	IntentCreated   = "created"
	IntentConfirmed = "confirmed"
)

// PaymentIntent records the amount registered with the payment
// provider and the cart snapshot the amount was computed from. The
// confirmation phase compares the live cart against this snapshot
// before an order may be created, and the created->confirmed status
// transition makes replayed callbacks observable.
type PaymentIntent struct {
	ID              primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID   `bson:"userId" json:"userId"`
	ProviderOrderID string               `bson:"providerOrderId" json:"providerOrderId"`
	Receipt         string               `bson:"receipt" json:"receipt"`
	AmountMinor     int64                `bson:"amountMinor" json:"amountMinor"`
	Currency        string               `bson:"currency" json:"currency"`
	ProductIDs      []primitive.ObjectID `bson:"products" json:"products"`
	Status          string               `bson:"status" json:"status"`
	CreatedAt       time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time            `bson:"updatedAt" json:"updatedAt"`
}
