package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"marketplace/models"
)

// OrderRepository is read-only. Orders are written exclusively by the
// checkout confirmation transaction, see checkout_repository.go.
type OrderRepository interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	FindByUser(ctx context.Context, userID primitive.ObjectID, page, pageSize int) ([]models.Order, int64, error)
	FindAll(ctx context.Context, page, pageSize int) ([]models.Order, int64, error)
	ContainsProduct(ctx context.Context, productID primitive.ObjectID) (bool, error)
}

type mongoOrderRepository struct {
	collection *mongo.Collection
}

func NewMongoOrderRepository(collection *mongo.Collection) OrderRepository {
	return &mongoOrderRepository{collection: collection}
}

func (r *mongoOrderRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to find order: %w", err)
	}
	return &order, nil
}

func (r *mongoOrderRepository) FindByUser(ctx context.Context, userID primitive.ObjectID, page, pageSize int) ([]models.Order, int64, error) {
	return r.find(ctx, bson.M{"userId": userID}, page, pageSize)
}

func (r *mongoOrderRepository) FindAll(ctx context.Context, page, pageSize int) ([]models.Order, int64, error) {
	return r.find(ctx, bson.M{}, page, pageSize)
}

func (r *mongoOrderRepository) find(ctx context.Context, conditions bson.M, page, pageSize int) ([]models.Order, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize))

	cursor, err := r.collection.Find(ctx, conditions, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find orders: %w", err)
	}

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, 0, fmt.Errorf("failed to decode orders: %w", err)
	}

	count, err := r.collection.CountDocuments(ctx, conditions)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return orders, count, nil
}

func (r *mongoOrderRepository) ContainsProduct(ctx context.Context, productID primitive.ObjectID) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"products": productID}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check order references: %w", err)
	}
	return count > 0, nil
}
