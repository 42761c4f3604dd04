package cache

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"marketplace/models"
)

// Noop is used when no Redis address is configured; every read is a
// miss and writes are dropped.
type Noop struct{}

func (Noop) Get(context.Context, primitive.ObjectID) (*models.Product, error) {
	return nil, ErrCacheMiss
}

func (Noop) Set(context.Context, *models.Product) error { return nil }

func (Noop) Delete(context.Context, primitive.ObjectID) error { return nil }
