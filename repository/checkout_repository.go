package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"marketplace/models"
)

// CheckoutRepository performs the one transactional write in the
// system: consume the payment intent, insert the order and clear the
// cart, all or nothing.
type CheckoutRepository interface {
	Confirm(ctx context.Context, order *models.Order, intentID primitive.ObjectID) error
}

type mongoCheckoutRepository struct {
	client  *mongo.Client
	intents *mongo.Collection
	orders  *mongo.Collection
	carts   *mongo.Collection
}

func NewMongoCheckoutRepository(client *mongo.Client, intents, orders, carts *mongo.Collection) CheckoutRepository {
	return &mongoCheckoutRepository{
		client:  client,
		intents: intents,
		orders:  orders,
		carts:   carts,
	}
}

func (r *mongoCheckoutRepository) Confirm(ctx context.Context, order *models.Order, intentID primitive.ObjectID) error {
	session, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		now := time.Now()

		// Conditional created->confirmed transition. A replayed
		// callback matches nothing and aborts before any write.
		result, err := r.intents.UpdateOne(sc,
			bson.M{"_id": intentID, "status": models.IntentCreated},
			bson.M{"$set": bson.M{"status": models.IntentConfirmed, "updatedAt": now}},
		)
		if err != nil {
			return nil, fmt.Errorf("failed to consume payment intent: %w", err)
		}
		if result.ModifiedCount == 0 {
			return nil, ErrIntentConsumed
		}

		if order.ID.IsZero() {
			order.ID = primitive.NewObjectID()
		}
		order.CreatedAt = now
		order.UpdatedAt = now
		if _, err := r.orders.InsertOne(sc, order); err != nil {
			return nil, fmt.Errorf("failed to insert order: %w", err)
		}

		if _, err := r.carts.DeleteOne(sc, bson.M{"userId": order.UserID}); err != nil {
			return nil, fmt.Errorf("failed to clear cart: %w", err)
		}
		return nil, nil
	})
	return err
}
