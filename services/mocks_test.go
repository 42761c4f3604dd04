package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"marketplace/models"
	"marketplace/repository"
)

// In-memory repository fakes mirroring the Mongo implementations'
// documented semantics.

type memCartRepo struct {
	mu    sync.Mutex
	carts map[primitive.ObjectID]*models.Cart
	err   error
}

func newMemCartRepo() *memCartRepo {
	return &memCartRepo{carts: make(map[primitive.ObjectID]*models.Cart)}
}

func (m *memCartRepo) Get(_ context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	cart, ok := m.carts[userID]
	if !ok {
		return nil, repository.ErrCartNotFound
	}
	copied := *cart
	copied.ProductIDs = append([]primitive.ObjectID(nil), cart.ProductIDs...)
	return &copied, nil
}

func (m *memCartRepo) AddProduct(_ context.Context, userID, productID primitive.ObjectID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	cart, ok := m.carts[userID]
	if !ok {
		m.carts[userID] = &models.Cart{
			ID:         primitive.NewObjectID(),
			UserID:     userID,
			ProductIDs: []primitive.ObjectID{productID},
			CreatedAt:  time.Now(),
			UpdatedAt:  time.Now(),
		}
		return true, nil
	}
	if cart.Contains(productID) {
		return false, nil
	}
	cart.ProductIDs = append(cart.ProductIDs, productID)
	cart.UpdatedAt = time.Now()
	return true, nil
}

func (m *memCartRepo) RemoveProduct(_ context.Context, userID, productID primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	cart, ok := m.carts[userID]
	if !ok {
		return repository.ErrCartNotFound
	}
	for i, id := range cart.ProductIDs {
		if id == productID {
			cart.ProductIDs = append(cart.ProductIDs[:i], cart.ProductIDs[i+1:]...)
			break
		}
	}
	return nil
}

func (m *memCartRepo) Delete(_ context.Context, userID primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if _, ok := m.carts[userID]; !ok {
		return repository.ErrCartNotFound
	}
	delete(m.carts, userID)
	return nil
}

func (m *memCartRepo) ContainsProduct(_ context.Context, productID primitive.ObjectID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, cart := range m.carts {
		if cart.Contains(productID) {
			return true, nil
		}
	}
	return false, nil
}

type memProductRepo struct {
	mu       sync.Mutex
	products map[primitive.ObjectID]models.Product
	err      error
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{products: make(map[primitive.ObjectID]models.Product)}
}

func (m *memProductRepo) add(p models.Product) models.Product {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	m.mu.Lock()
	m.products[p.ID] = p
	m.mu.Unlock()
	return p
}

func (m *memProductRepo) Insert(_ context.Context, product *models.Product) error {
	if m.err != nil {
		return m.err
	}
	if product.ID.IsZero() {
		product.ID = primitive.NewObjectID()
	}
	product.CreatedAt = time.Now()
	product.UpdatedAt = time.Now()
	m.mu.Lock()
	m.products[product.ID] = *product
	m.mu.Unlock()
	return nil
}

func (m *memProductRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	p, ok := m.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	return &p, nil
}

func (m *memProductRepo) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var out []models.Product
	for _, id := range ids {
		if p, ok := m.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memProductRepo) Find(_ context.Context, filter repository.ProductFilter) ([]models.Product, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, 0, m.err
	}
	var matched []models.Product
	for _, p := range m.products {
		if filter.Search != "" && !strings.Contains(strings.ToLower(p.Title), strings.ToLower(filter.Search)) {
			continue
		}
		if !filter.CategoryID.IsZero() && p.CategoryID != filter.CategoryID {
			continue
		}
		matched = append(matched, p)
	}
	return matched, int64(len(matched)), nil
}

func (m *memProductRepo) Update(_ context.Context, id primitive.ObjectID, update repository.ProductUpdate) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	if update.Title != nil {
		p.Title = *update.Title
	}
	if update.Description != nil {
		p.Description = *update.Description
	}
	if update.PriceMinor != nil {
		p.PriceMinor = *update.PriceMinor
	}
	if update.CategoryID != nil {
		p.CategoryID = *update.CategoryID
	}
	if update.Thumbnail != nil {
		p.Thumbnail = *update.Thumbnail
	}
	if update.Asset != nil {
		p.Asset = *update.Asset
	}
	p.UpdatedAt = time.Now()
	m.products[id] = p
	return &p, nil
}

func (m *memProductRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[id]; !ok {
		return repository.ErrProductNotFound
	}
	delete(m.products, id)
	return nil
}

func (m *memProductRepo) CountByCategory(_ context.Context, categoryID primitive.ObjectID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for _, p := range m.products {
		if p.CategoryID == categoryID {
			count++
		}
	}
	return count, nil
}

type memCategoryRepo struct {
	mu         sync.Mutex
	categories map[primitive.ObjectID]models.Category
}

func newMemCategoryRepo() *memCategoryRepo {
	return &memCategoryRepo{categories: make(map[primitive.ObjectID]models.Category)}
}

func (m *memCategoryRepo) Insert(_ context.Context, category *models.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.categories {
		if existing.Name == category.Name {
			return repository.ErrDuplicateCategory
		}
	}
	if category.ID.IsZero() {
		category.ID = primitive.NewObjectID()
	}
	category.CreatedAt = time.Now()
	category.UpdatedAt = time.Now()
	m.categories[category.ID] = *category
	return nil
}

func (m *memCategoryRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.categories[id]
	if !ok {
		return nil, repository.ErrCategoryNotFound
	}
	return &c, nil
}

func (m *memCategoryRepo) FindByName(_ context.Context, name string) (*models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.categories {
		if strings.EqualFold(c.Name, name) {
			return &c, nil
		}
	}
	return nil, repository.ErrCategoryNotFound
}

func (m *memCategoryRepo) Find(_ context.Context, filter repository.CategoryFilter) ([]models.Category, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var matched []models.Category
	for _, c := range m.categories {
		if filter.Search != "" && !strings.Contains(c.Name, strings.ToLower(filter.Search)) {
			continue
		}
		matched = append(matched, c)
	}
	return matched, int64(len(matched)), nil
}

func (m *memCategoryRepo) Update(_ context.Context, id primitive.ObjectID, update repository.CategoryUpdate) (*models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.categories[id]
	if !ok {
		return nil, repository.ErrCategoryNotFound
	}
	if update.Name != nil {
		c.Name = *update.Name
	}
	if update.Image != nil {
		c.Image = *update.Image
	}
	c.UpdatedAt = time.Now()
	m.categories[id] = c
	return &c, nil
}

func (m *memCategoryRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.categories[id]; !ok {
		return repository.ErrCategoryNotFound
	}
	delete(m.categories, id)
	return nil
}

type memIntentRepo struct {
	mu      sync.Mutex
	intents map[primitive.ObjectID]*models.PaymentIntent
}

func newMemIntentRepo() *memIntentRepo {
	return &memIntentRepo{intents: make(map[primitive.ObjectID]*models.PaymentIntent)}
}

func (m *memIntentRepo) Insert(_ context.Context, intent *models.PaymentIntent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if intent.ID.IsZero() {
		intent.ID = primitive.NewObjectID()
	}
	intent.Status = models.IntentCreated
	intent.CreatedAt = time.Now()
	intent.UpdatedAt = time.Now()
	m.intents[intent.ID] = intent
	return nil
}

func (m *memIntentRepo) FindByProviderOrderID(_ context.Context, providerOrderID string) (*models.PaymentIntent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, intent := range m.intents {
		if intent.ProviderOrderID == providerOrderID {
			copied := *intent
			return &copied, nil
		}
	}
	return nil, repository.ErrIntentNotFound
}

type memOrderRepo struct {
	mu     sync.Mutex
	orders []models.Order
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{}
}

func (m *memOrderRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.orders {
		if o.ID == id {
			copied := o
			return &copied, nil
		}
	}
	return nil, repository.ErrOrderNotFound
}

func (m *memOrderRepo) FindByUser(_ context.Context, userID primitive.ObjectID, _, _ int) ([]models.Order, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var matched []models.Order
	for _, o := range m.orders {
		if o.UserID == userID {
			matched = append(matched, o)
		}
	}
	return matched, int64(len(matched)), nil
}

func (m *memOrderRepo) FindAll(_ context.Context, _, _ int) ([]models.Order, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Order(nil), m.orders...), int64(len(m.orders)), nil
}

func (m *memOrderRepo) ContainsProduct(_ context.Context, productID primitive.ObjectID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.orders {
		for _, id := range o.ProductIDs {
			if id == productID {
				return true, nil
			}
		}
	}
	return false, nil
}

// memCheckoutRepo emulates the confirmation transaction over the
// in-memory fakes.
type memCheckoutRepo struct {
	intents *memIntentRepo
	carts   *memCartRepo
	orders  *memOrderRepo
}

func (m *memCheckoutRepo) Confirm(ctx context.Context, order *models.Order, intentID primitive.ObjectID) error {
	m.intents.mu.Lock()
	intent, ok := m.intents.intents[intentID]
	if !ok || intent.Status != models.IntentCreated {
		m.intents.mu.Unlock()
		return repository.ErrIntentConsumed
	}
	intent.Status = models.IntentConfirmed
	m.intents.mu.Unlock()

	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	order.CreatedAt = time.Now()
	order.UpdatedAt = time.Now()

	m.orders.mu.Lock()
	m.orders.orders = append(m.orders.orders, *order)
	m.orders.mu.Unlock()

	m.carts.mu.Lock()
	delete(m.carts.carts, order.UserID)
	m.carts.mu.Unlock()
	return nil
}
