package repository

import "errors"

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrCartNotFound     = errors.New("cart not found")
	ErrIntentNotFound   = errors.New("payment intent not found")
	ErrOrderNotFound    = errors.New("order not found")

	ErrDuplicateCategory = errors.New("category name already exists")
	ErrCategoryInUse     = errors.New("category has products attached")
	ErrProductInUse      = errors.New("product is referenced by an order or cart")
	ErrIntentConsumed    = errors.New("payment intent already confirmed")
)
