package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"marketplace/models"
	"marketplace/repository"
)

// ResolvedOrder pairs the immutable receipt with the current product
// documents for display; deleted products simply drop out.
type ResolvedOrder struct {
	Order    *models.Order
	Products []models.Product
}

type OrderService struct {
	orders   repository.OrderRepository
	products repository.ProductRepository
}

func NewOrderService(orders repository.OrderRepository, products repository.ProductRepository) *OrderService {
	return &OrderService{orders: orders, products: products}
}

// Get returns the order to its owner or an admin; anyone else sees
// not-found rather than a hint that the order exists.
func (s *OrderService) Get(ctx context.Context, user models.User, id primitive.ObjectID) (*ResolvedOrder, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.UserID != user.ID && !user.IsAdmin() {
		return nil, repository.ErrOrderNotFound
	}

	products, err := s.products.FindByIDs(ctx, order.ProductIDs)
	if err != nil {
		return nil, err
	}
	return &ResolvedOrder{Order: order, Products: products}, nil
}

type OrderPage struct {
	Data       []models.Order
	TotalPages int64
}

func (s *OrderService) ListMine(ctx context.Context, user models.User, page, pageSize int) (*OrderPage, error) {
	orders, count, err := s.orders.FindByUser(ctx, user.ID, page, pageSize)
	if err != nil {
		return nil, err
	}
	return &OrderPage{Data: orders, TotalPages: totalPages(count, pageSize)}, nil
}

func (s *OrderService) ListAll(ctx context.Context, user models.User, page, pageSize int) (*OrderPage, error) {
	if !user.IsAdmin() {
		return nil, ErrNotAllowed
	}

	orders, count, err := s.orders.FindAll(ctx, page, pageSize)
	if err != nil {
		return nil, err
	}
	return &OrderPage{Data: orders, TotalPages: totalPages(count, pageSize)}, nil
}
