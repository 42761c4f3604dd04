package cache

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"marketplace/models"
)

// ProductCache is a read-through cache in front of the product
// collection. Implementations must return ErrCacheMiss for absent
// keys so callers can fall through to the repository.
type ProductCache interface {
	Get(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	Set(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

var ErrCacheMiss = errors.New("cache miss")
