package store

import (
	"strings"
	"sync"
	"time"

	apperrors "demoapi/internal/errors"
	"demoapi/internal/model"
)

// ProductFilter narrows List results. Nil fields match everything.
type ProductFilter struct {
	Category *model.Category
	InStock  *bool
}

// ProductStore is the in-memory product catalog, guarded the same way
// as the user store.
type ProductStore struct {
	mu       sync.RWMutex
	products []model.Product
	nextID   int
}

// NewProductStore creates an empty store.
func NewProductStore() *ProductStore {
	return &ProductStore{nextID: 1}
}

// Create adds a product and returns it.
func (s *ProductStore) Create(input model.ProductCreate) *model.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	inStock := true
	if input.InStock != nil {
		inStock = *input.InStock
	}

	product := model.Product{
		ID:            s.nextID,
		Name:          input.Name,
		Description:   input.Description,
		Price:         input.Price,
		Category:      input.Category,
		InStock:       inStock,
		StockQuantity: input.StockQuantity,
		CreatedAt:     time.Now().UTC(),
	}
	s.products = append(s.products, product)
	s.nextID++

	p := product
	return &p
}

// GetByID returns the product if present.
func (s *ProductStore) GetByID(id int) (*model.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.products {
		if s.products[i].ID == id {
			p := s.products[i]
			return &p, true
		}
	}
	return nil, false
}

// List returns products in creation order after applying the filter,
// with skip and limit clamped like the user store.
func (s *ProductStore) List(skip, limit int, filter ProductFilter) []model.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]model.Product, 0, len(s.products))
	for _, p := range s.products {
		if filter.Category != nil && p.Category != *filter.Category {
			continue
		}
		if filter.InStock != nil && p.InStock != *filter.InStock {
			continue
		}
		matched = append(matched, p)
	}

	if skip < 0 {
		skip = 0
	}
	if limit < 0 {
		limit = 0
	}
	if skip >= len(matched) {
		return []model.Product{}
	}
	end := skip + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[skip:end]
}

// Search returns products whose name or description contains the query,
// case-insensitively.
func (s *ProductStore) Search(query string) []model.Product {
	query = strings.ToLower(query)
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Product, 0)
	for _, p := range s.products {
		if strings.Contains(strings.ToLower(p.Name), query) ||
			strings.Contains(strings.ToLower(p.Description), query) {
			out = append(out, p)
		}
	}
	return out
}

// Update applies the set fields of input and stamps UpdatedAt.
func (s *ProductStore) Update(id int, input model.ProductUpdate) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ID != id {
			continue
		}
		p := &s.products[i]
		if input.Name != nil {
			p.Name = *input.Name
		}
		if input.Description != nil {
			p.Description = *input.Description
		}
		if input.Price != nil {
			p.Price = *input.Price
		}
		if input.Category != nil {
			p.Category = *input.Category
		}
		if input.InStock != nil {
			p.InStock = *input.InStock
		}
		if input.StockQuantity != nil {
			p.StockQuantity = *input.StockQuantity
		}
		now := time.Now().UTC()
		p.UpdatedAt = &now
		out := *p
		return &out, nil
	}
	return nil, apperrors.ErrProductNotFound
}

// Delete removes the product and reports whether it existed.
func (s *ProductStore) Delete(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return true
		}
	}
	return false
}
