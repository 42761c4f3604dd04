package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Cart is one document per user (unique index on userId). A product
// appears at most once; quantities do not exist for digital goods.
type Cart struct {
	ID         primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	UserID     primitive.ObjectID   `bson:"userId" json:"userId"`
	ProductIDs []primitive.ObjectID `bson:"products" json:"products"`
	CreatedAt  time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time            `bson:"updatedAt" json:"updatedAt"`
}

func (c *Cart) Contains(productID primitive.ObjectID) bool {
	for _, id := range c.ProductIDs {
		if id == productID {
			return true
		}
	}
	return false
}

// TotalMinor sums the current unit prices of the given product
// snapshots in minor units.
func TotalMinor(products []Product) int64 {
	var total int64
	for _, p := range products {
		total += p.PriceMinor
	}
	return total
}
