package services

import (
	"context"
	"log/slog"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"marketplace/media"
	"marketplace/models"
	"marketplace/repository"
)

type CategoryService struct {
	categories repository.CategoryRepository
	products   repository.ProductRepository
	uploader   media.Uploader
	log        *slog.Logger
}

func NewCategoryService(
	categories repository.CategoryRepository,
	products repository.ProductRepository,
	uploader media.Uploader,
	log *slog.Logger,
) *CategoryService {
	if log == nil {
		log = slog.Default()
	}
	return &CategoryService{
		categories: categories,
		products:   products,
		uploader:   uploader,
		log:        log,
	}
}

// Create stores the name lowercased; the unique index turns a
// duplicate into ErrDuplicateCategory.
func (s *CategoryService) Create(ctx context.Context, name string, image media.File) (*models.Category, error) {
	assets, err := s.uploader.Upload(ctx, []media.File{image})
	if err != nil {
		return nil, err
	}

	category := &models.Category{
		Name: strings.ToLower(strings.TrimSpace(name)),
		Image: models.Image{
			URL:      assets[0].URL,
			PublicID: assets[0].PublicID,
			BlurHash: assets[0].BlurHash,
		},
	}
	if err := s.categories.Insert(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) Get(ctx context.Context, id primitive.ObjectID) (*models.Category, error) {
	return s.categories.FindByID(ctx, id)
}

type ListCategoriesInput struct {
	Search   string
	Page     int
	PageSize int
}

type CategoryPage struct {
	Data       []models.Category
	TotalPages int64
}

func (s *CategoryService) List(ctx context.Context, in ListCategoriesInput) (*CategoryPage, error) {
	categories, count, err := s.categories.Find(ctx, repository.CategoryFilter{
		Search:   in.Search,
		Page:     in.Page,
		PageSize: in.PageSize,
	})
	if err != nil {
		return nil, err
	}
	return &CategoryPage{Data: categories, TotalPages: totalPages(count, in.PageSize)}, nil
}

type UpdateCategoryInput struct {
	Name  *string
	Image media.FileUpdate
}

func (s *CategoryService) Update(ctx context.Context, id primitive.ObjectID, in UpdateCategoryInput) (*models.Category, error) {
	update := repository.CategoryUpdate{}
	if in.Name != nil {
		name := strings.ToLower(strings.TrimSpace(*in.Name))
		update.Name = &name
	}

	var replaced string
	if !in.Image.IsNone() {
		assets, err := s.uploader.Upload(ctx, []media.File{in.Image.File()})
		if err != nil {
			return nil, err
		}
		update.Image = &models.Image{
			URL:      assets[0].URL,
			PublicID: assets[0].PublicID,
			BlurHash: assets[0].BlurHash,
		}
		replaced = in.Image.ReplacedPublicID()
	}

	updated, err := s.categories.Update(ctx, id, update)
	if err != nil {
		return nil, err
	}

	if replaced != "" {
		if err := s.uploader.Destroy(ctx, replaced); err != nil {
			s.log.Warn("media destroy failed", "publicId", replaced, "error", err)
		}
	}
	return updated, nil
}

// Delete is blocked while any product still references the category.
func (s *CategoryService) Delete(ctx context.Context, id primitive.ObjectID) error {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return err
	}

	count, err := s.products.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return repository.ErrCategoryInUse
	}

	if err := s.categories.Delete(ctx, id); err != nil {
		return err
	}

	if category.Image.PublicID != "" {
		if err := s.uploader.Destroy(ctx, category.Image.PublicID); err != nil {
			s.log.Warn("media destroy failed", "publicId", category.Image.PublicID, "error", err)
		}
	}
	return nil
}
