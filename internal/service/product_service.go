package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"demoapi/internal/model"
	"demoapi/internal/store"
)

const productCacheTTL = 5 * time.Minute

// Cache is the subset of cache operations the service needs.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// ProductService fronts the product store with a read-through cache.
type ProductService struct {
	store *store.ProductStore
	cache Cache
}

// NewProductService builds a ProductService with store and cache.
func NewProductService(store *store.ProductStore, cache Cache) *ProductService {
	return &ProductService{store: store, cache: cache}
}

func (s *ProductService) cacheKey(id int) string {
	return fmt.Sprintf("product:%d", id)
}

// Create adds a product.
func (s *ProductService) Create(ctx context.Context, input model.ProductCreate) *model.Product {
	return s.store.Create(input)
}

// Get returns a product by id, serving from cache when possible.
func (s *ProductService) Get(ctx context.Context, id int) (*model.Product, bool) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.Product
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, true
		}
	}

	product, ok := s.store.GetByID(id)
	if !ok {
		return nil, false
	}

	if payload, err := json.Marshal(product); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, productCacheTTL)
	}
	return product, true
}

// List returns filtered products in creation order.
func (s *ProductService) List(ctx context.Context, skip, limit int, filter store.ProductFilter) []model.Product {
	return s.store.List(skip, limit, filter)
}

// Search returns products matching the query.
func (s *ProductService) Search(ctx context.Context, query string) []model.Product {
	return s.store.Search(query)
}

// Update applies a partial update and invalidates the cache entry.
func (s *ProductService) Update(ctx context.Context, id int, input model.ProductUpdate) (*model.Product, error) {
	product, err := s.store.Update(id, input)
	if err != nil {
		return nil, err
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return product, nil
}

// Delete removes a product and invalidates the cache entry.
func (s *ProductService) Delete(ctx context.Context, id int) bool {
	if !s.store.Delete(id) {
		return false
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return true
}
