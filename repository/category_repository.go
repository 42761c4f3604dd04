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

type CategoryFilter struct {
	Search   string
	Page     int
	PageSize int
}

type CategoryUpdate struct {
	Name  *string
	Image *models.Image
}

type CategoryRepository interface {
	Insert(ctx context.Context, category *models.Category) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error)
	FindByName(ctx context.Context, name string) (*models.Category, error)
	Find(ctx context.Context, filter CategoryFilter) ([]models.Category, int64, error)
	Update(ctx context.Context, id primitive.ObjectID, update CategoryUpdate) (*models.Category, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type mongoCategoryRepository struct {
	collection *mongo.Collection
}

func NewMongoCategoryRepository(collection *mongo.Collection) CategoryRepository {
	return &mongoCategoryRepository{collection: collection}
}

func (r *mongoCategoryRepository) Insert(ctx context.Context, category *models.Category) error {
	now := time.Now()
	if category.ID.IsZero() {
		category.ID = primitive.NewObjectID()
	}
	category.CreatedAt = now
	category.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, category); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateCategory
		}
		return fmt.Errorf("failed to insert category: %w", err)
	}
	return nil
}

func (r *mongoCategoryRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error) {
	var category models.Category
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&category)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	return &category, nil
}

func (r *mongoCategoryRepository) FindByName(ctx context.Context, name string) (*models.Category, error) {
	var category models.Category
	filter := bson.M{"name": bson.M{"$regex": "^" + name + "$", "$options": "i"}}
	err := r.collection.FindOne(ctx, filter).Decode(&category)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to find category by name: %w", err)
	}
	return &category, nil
}

func (r *mongoCategoryRepository) Find(ctx context.Context, filter CategoryFilter) ([]models.Category, int64, error) {
	conditions := bson.M{}
	if filter.Search != "" {
		conditions["name"] = bson.M{"$regex": filter.Search, "$options": "i"}
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize))

	cursor, err := r.collection.Find(ctx, conditions, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find categories: %w", err)
	}

	categories := []models.Category{}
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, 0, fmt.Errorf("failed to decode categories: %w", err)
	}

	count, err := r.collection.CountDocuments(ctx, conditions)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count categories: %w", err)
	}
	return categories, count, nil
}

func (r *mongoCategoryRepository) Update(ctx context.Context, id primitive.ObjectID, update CategoryUpdate) (*models.Category, error) {
	set := bson.M{"updatedAt": time.Now()}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Image != nil {
		set["image"] = *update.Image
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Category
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCategoryNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateCategory
		}
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return &updated, nil
}

func (r *mongoCategoryRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrCategoryNotFound
	}
	return nil
}
