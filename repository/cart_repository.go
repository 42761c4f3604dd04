package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"marketplace/models"
)

type CartRepository interface {
	Get(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error)
	// AddProduct upserts the user's cart and reports whether the
	// product was newly added; false means it was already present.
	AddProduct(ctx context.Context, userID, productID primitive.ObjectID) (bool, error)
	RemoveProduct(ctx context.Context, userID, productID primitive.ObjectID) error
	Delete(ctx context.Context, userID primitive.ObjectID) error
	ContainsProduct(ctx context.Context, productID primitive.ObjectID) (bool, error)
}

type mongoCartRepository struct {
	collection *mongo.Collection
}

func NewMongoCartRepository(collection *mongo.Collection) CartRepository {
	return &mongoCartRepository{collection: collection}
}

func (r *mongoCartRepository) Get(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	var cart models.Cart
	err := r.collection.FindOne(ctx, bson.M{"userId": userID}).Decode(&cart)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCartNotFound
		}
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	return &cart, nil
}

func (r *mongoCartRepository) AddProduct(ctx context.Context, userID, productID primitive.ObjectID) (bool, error) {
	now := time.Now()

	// Single atomic upsert: $addToSet keeps the at-most-once cart
	// membership invariant inside the document write itself. The
	// added/no-change signal cannot come from ModifiedCount because
	// the updatedAt touch modifies the document on every call, so the
	// decision is made against the returned pre-image instead.
	filter := bson.M{"userId": userID}
	update := bson.M{
		"$addToSet":    bson.M{"products": productID},
		"$set":         bson.M{"updatedAt": now},
		"$setOnInsert": bson.M{"createdAt": now},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.Before)

	var before models.Cart
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&before)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// no pre-image: the upsert just created the cart
			return true, nil
		}
		return false, fmt.Errorf("failed to add product to cart: %w", err)
	}
	return addedToCart(&before, productID), nil
}

// addedToCart reads the upsert pre-image: the product was newly added
// iff it was absent before the write.
func addedToCart(before *models.Cart, productID primitive.ObjectID) bool {
	return before == nil || !before.Contains(productID)
}

func (r *mongoCartRepository) RemoveProduct(ctx context.Context, userID, productID primitive.ObjectID) error {
	filter := bson.M{"userId": userID}
	update := bson.M{
		"$pull": bson.M{"products": productID},
		"$set":  bson.M{"updatedAt": time.Now()},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to remove product from cart: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrCartNotFound
	}
	return nil
}

func (r *mongoCartRepository) Delete(ctx context.Context, userID primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"userId": userID})
	if err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrCartNotFound
	}
	return nil
}

func (r *mongoCartRepository) ContainsProduct(ctx context.Context, productID primitive.ObjectID) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"products": productID}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check cart references: %w", err)
	}
	return count > 0, nil
}
