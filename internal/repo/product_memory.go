package repo

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rqxKnicklicht/visynet-productivity-tool/internal/models"
)

// InMemoryProductRepository is a map-backed implementation of
// ProductRepository used by the handler test suites.
type InMemoryProductRepository struct {
	mu       sync.RWMutex
	products map[string]models.Product
}

// NewInMemoryProductRepository creates a new instance of InMemoryProductRepository.
func NewInMemoryProductRepository() *InMemoryProductRepository {
	return &InMemoryProductRepository{products: map[string]models.Product{}}
}

func (r *InMemoryProductRepository) Create(_ context.Context, id, title string, originalNumber *string) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.products[id]; exists {
		return models.Product{}, ErrProductExists
	}
	p := models.Product{ID: id, Title: title, OriginalNumber: originalNumber}
	r.products[id] = p
	return p, nil
}

func (r *InMemoryProductRepository) GetAll(_ context.Context) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}

func (r *InMemoryProductRepository) GetByIDs(_ context.Context, ids []string) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var products []models.Product
	seen := map[string]bool{}
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if p, ok := r.products[id]; ok {
			products = append(products, p)
		}
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}

func (r *InMemoryProductRepository) GetByID(_ context.Context, id string) (models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[id]
	if !ok {
		return models.Product{}, ErrProductNotFound
	}
	return p, nil
}

func (r *InMemoryProductRepository) Patch(_ context.Context, id string, updates []FieldUpdate) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[id]
	if !ok {
		return models.Product{}, ErrProductNotFound
	}
	for _, u := range updates {
		switch u.Column {
		case "title":
			if s, ok := u.Value.(string); ok {
				p.Title = s
			}
		case "asin":
			p.ASIN = stringValue(u.Value)
		case "current_amazon_price":
			p.CurrentAmazonPrice = floatValue(u.Value)
		case "current_amazon_price_timestamp":
			p.CurrentAmazonPriceTimestamp = timeValue(u.Value)
		case "brand_id":
			p.BrandID = intValue(u.Value)
		case "visynet_max_price":
			p.VisynetMaxPrice = floatValue(u.Value)
		case "original_number":
			p.OriginalNumber = stringValue(u.Value)
		}
	}
	r.products[id] = p
	return p, nil
}

func (r *InMemoryProductRepository) Upsert(_ context.Context, p models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.products[p.ID] = p
	return nil
}

func (r *InMemoryProductRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.products, id)
	return nil
}

// Clear removes all stored products. Test helper.
func (r *InMemoryProductRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.products = map[string]models.Product{}
}

func stringValue(v any) *string {
	if s, ok := v.(string); ok {
		return &s
	}
	return nil
}

func floatValue(v any) *float64 {
	if f, ok := v.(float64); ok {
		return &f
	}
	return nil
}

func intValue(v any) *int64 {
	if n, ok := v.(int64); ok {
		return &n
	}
	return nil
}

func timeValue(v any) *time.Time {
	if t, ok := v.(time.Time); ok {
		return &t
	}
	return nil
}
