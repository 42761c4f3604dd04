package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"marketplace/models"
)

type IntentRepository interface {
	Insert(ctx context.Context, intent *models.PaymentIntent) error
	FindByProviderOrderID(ctx context.Context, providerOrderID string) (*models.PaymentIntent, error)
}

type mongoIntentRepository struct {
	collection *mongo.Collection
}

func NewMongoIntentRepository(collection *mongo.Collection) IntentRepository {
	return &mongoIntentRepository{collection: collection}
}

func (r *mongoIntentRepository) Insert(ctx context.Context, intent *models.PaymentIntent) error {
	now := time.Now()
	if intent.ID.IsZero() {
		intent.ID = primitive.NewObjectID()
	}
	intent.Status = models.IntentCreated
	intent.CreatedAt = now
	intent.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, intent); err != nil {
		return fmt.Errorf("failed to insert payment intent: %w", err)
	}
	return nil
}

func (r *mongoIntentRepository) FindByProviderOrderID(ctx context.Context, providerOrderID string) (*models.PaymentIntent, error) {
	var intent models.PaymentIntent
	err := r.collection.FindOne(ctx, bson.M{"providerOrderId": providerOrderID}).Decode(&intent)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrIntentNotFound
		}
		return nil, fmt.Errorf("failed to find payment intent: %w", err)
	}
	return &intent, nil
}
