package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"marketplace/models"
	"marketplace/repository"
)

// ResolvedCart is a cart with its product references expanded to
// full snapshots. References to since-deleted products are dropped.
type ResolvedCart struct {
	Cart     *models.Cart
	Products []models.Product
}

func (r *ResolvedCart) TotalMinor() int64 {
	return models.TotalMinor(r.Products)
}

type CartService struct {
	carts    repository.CartRepository
	products repository.ProductRepository
}

func NewCartService(carts repository.CartRepository, products repository.ProductRepository) *CartService {
	return &CartService{carts: carts, products: products}
}

// AddToCart lazily creates the user's cart and appends the product.
// A duplicate add is a success-no-change, reported through the
// returned flag rather than an error.
func (s *CartService) AddToCart(ctx context.Context, user models.User, productID primitive.ObjectID) (bool, error) {
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return false, err
	}
	return s.carts.AddProduct(ctx, user.ID, productID)
}

// RemoveFromCart fails when the user has no cart; removing a product
// that is not in the cart is a no-op.
func (s *CartService) RemoveFromCart(ctx context.Context, user models.User, productID primitive.ObjectID) error {
	return s.carts.RemoveProduct(ctx, user.ID, productID)
}

// ClearCart deletes the cart document; clearing a missing cart is a
// no-op.
func (s *CartService) ClearCart(ctx context.Context, user models.User) error {
	err := s.carts.Delete(ctx, user.ID)
	if errors.Is(err, repository.ErrCartNotFound) {
		return nil
	}
	return err
}

// GetCart resolves the cart's product references; a missing cart
// yields an empty result.
func (s *CartService) GetCart(ctx context.Context, user models.User) (*ResolvedCart, error) {
	cart, err := s.carts.Get(ctx, user.ID)
	if err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			return &ResolvedCart{Cart: &models.Cart{UserID: user.ID}}, nil
		}
		return nil, err
	}

	products, err := s.products.FindByIDs(ctx, cart.ProductIDs)
	if err != nil {
		return nil, err
	}
	return &ResolvedCart{Cart: cart, Products: products}, nil
}
