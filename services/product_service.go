package services

import (
	"context"
	"errors"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"marketplace/cache"
	"marketplace/media"
	"marketplace/models"
	"marketplace/repository"
)

type ProductService struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	carts      repository.CartRepository
	orders     repository.OrderRepository
	uploader   media.Uploader
	cache      cache.ProductCache
	log        *slog.Logger
}

func NewProductService(
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	carts repository.CartRepository,
	orders repository.OrderRepository,
	uploader media.Uploader,
	productCache cache.ProductCache,
	log *slog.Logger,
) *ProductService {
	if productCache == nil {
		productCache = cache.Noop{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &ProductService{
		products:   products,
		categories: categories,
		carts:      carts,
		orders:     orders,
		uploader:   uploader,
		cache:      productCache,
		log:        log,
	}
}

type CreateProductInput struct {
	Title       string
	Description string
	Price       string
	CategoryID  primitive.ObjectID
	Thumbnail   media.File
	Asset       media.File
}

func (s *ProductService) Create(ctx context.Context, user models.User, in CreateProductInput) (*models.Product, error) {
	priceMinor, err := models.ParsePrice(in.Price)
	if err != nil {
		return nil, err
	}
	if _, err := s.categories.FindByID(ctx, in.CategoryID); err != nil {
		return nil, err
	}

	assets, err := s.uploader.Upload(ctx, []media.File{in.Thumbnail, in.Asset})
	if err != nil {
		return nil, err
	}

	product := &models.Product{
		OwnerID:     user.ID,
		Title:       in.Title,
		Description: in.Description,
		PriceMinor:  priceMinor,
		CategoryID:  in.CategoryID,
		Thumbnail: models.Image{
			URL:      assets[0].URL,
			PublicID: assets[0].PublicID,
			BlurHash: assets[0].BlurHash,
		},
		Asset: models.Asset{
			URL:      assets[1].URL,
			PublicID: assets[1].PublicID,
		},
	}
	if err := s.products.Insert(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Get serves product reads through the cache. The JSON encoding of
// the result already hides the download asset from public callers.
func (s *ProductService) Get(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	product, err := s.cache.Get(ctx, id)
	if err == nil {
		return product, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		s.log.Warn("product cache get failed", "error", err)
	}

	product, err = s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, product); err != nil {
		s.log.Warn("product cache set failed", "error", err)
	}
	return product, nil
}

type ListProductsInput struct {
	Search   string
	Category string
	Page     int
	PageSize int
}

type ProductPage struct {
	Data       []models.Product
	TotalPages int64
}

// List is the paginated catalog query: case-insensitive title search
// plus an optional category-name filter. An unknown category name is
// ignored rather than failing the listing.
func (s *ProductService) List(ctx context.Context, in ListProductsInput) (*ProductPage, error) {
	filter := repository.ProductFilter{
		Search:   in.Search,
		Page:     in.Page,
		PageSize: in.PageSize,
	}
	if in.Category != "" {
		category, err := s.categories.FindByName(ctx, in.Category)
		if err == nil {
			filter.CategoryID = category.ID
		} else if !errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, err
		}
	}

	products, count, err := s.products.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &ProductPage{Data: products, TotalPages: totalPages(count, in.PageSize)}, nil
}

type UpdateProductInput struct {
	Title       *string
	Description *string
	Price       *string
	CategoryID  *primitive.ObjectID
	Thumbnail   media.FileUpdate
	Asset       media.FileUpdate
}

func (s *ProductService) Update(ctx context.Context, user models.User, id primitive.ObjectID, in UpdateProductInput) (*models.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product.OwnerID != user.ID && !user.IsAdmin() {
		return nil, ErrNotAllowed
	}

	update := repository.ProductUpdate{
		Title:       in.Title,
		Description: in.Description,
		CategoryID:  in.CategoryID,
	}
	if in.Price != nil {
		priceMinor, err := models.ParsePrice(*in.Price)
		if err != nil {
			return nil, err
		}
		update.PriceMinor = &priceMinor
	}
	if in.CategoryID != nil {
		if _, err := s.categories.FindByID(ctx, *in.CategoryID); err != nil {
			return nil, err
		}
	}

	var replaced []string
	if !in.Thumbnail.IsNone() {
		assets, err := s.uploader.Upload(ctx, []media.File{in.Thumbnail.File()})
		if err != nil {
			return nil, err
		}
		update.Thumbnail = &models.Image{
			URL:      assets[0].URL,
			PublicID: assets[0].PublicID,
			BlurHash: assets[0].BlurHash,
		}
		if id := in.Thumbnail.ReplacedPublicID(); id != "" {
			replaced = append(replaced, id)
		}
	}
	if !in.Asset.IsNone() {
		assets, err := s.uploader.Upload(ctx, []media.File{in.Asset.File()})
		if err != nil {
			return nil, err
		}
		update.Asset = &models.Asset{
			URL:      assets[0].URL,
			PublicID: assets[0].PublicID,
		}
		if id := in.Asset.ReplacedPublicID(); id != "" {
			replaced = append(replaced, id)
		}
	}

	updated, err := s.products.Update(ctx, id, update)
	if err != nil {
		return nil, err
	}

	s.destroyMedia(ctx, replaced)
	s.invalidate(ctx, id)
	return updated, nil
}

// Delete refuses to remove a product that any order or cart still
// references.
func (s *ProductService) Delete(ctx context.Context, user models.User, id primitive.ObjectID) error {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if product.OwnerID != user.ID && !user.IsAdmin() {
		return ErrNotAllowed
	}

	ordered, err := s.orders.ContainsProduct(ctx, id)
	if err != nil {
		return err
	}
	carted, err := s.carts.ContainsProduct(ctx, id)
	if err != nil {
		return err
	}
	if ordered || carted {
		return repository.ErrProductInUse
	}

	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}

	s.destroyMedia(ctx, []string{product.Thumbnail.PublicID, product.Asset.PublicID})
	s.invalidate(ctx, id)
	return nil
}

// destroyMedia is best effort; the database write already succeeded
// and an orphaned file is preferable to a failed request.
func (s *ProductService) destroyMedia(ctx context.Context, publicIDs []string) {
	for _, publicID := range publicIDs {
		if publicID == "" {
			continue
		}
		if err := s.uploader.Destroy(ctx, publicID); err != nil {
			s.log.Warn("media destroy failed", "publicId", publicID, "error", err)
		}
	}
}

func (s *ProductService) invalidate(ctx context.Context, id primitive.ObjectID) {
	if err := s.cache.Delete(ctx, id); err != nil {
		s.log.Warn("product cache invalidate failed", "error", err)
	}
}
