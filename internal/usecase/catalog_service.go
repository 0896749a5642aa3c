package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/myskyn/backend/internal/domain"
)

const catalogCacheKey = "store:products"

// CatalogService provides read access to the product catalog with
// snapshot caching.
type CatalogService struct {
	repo     domain.CatalogRepository
	cache    domain.CacheRepository
	cacheTTL time.Duration
}

// NewCatalogService creates a new catalog service
func NewCatalogService(repo domain.CatalogRepository, cache domain.CacheRepository, cacheTTL time.Duration) *CatalogService {
	if cacheTTL == 0 {
		cacheTTL = 5 * time.Minute
	}

	return &CatalogService{
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}

// Snapshot returns the current catalog, serving from cache when a fresh
// snapshot is available.
func (s *CatalogService) Snapshot(ctx context.Context) ([]domain.Product, error) {
	if cached, err := s.cache.Get(ctx, catalogCacheKey); err == nil {
		if products, ok := cached.([]domain.Product); ok {
			return products, nil
		}
	}

	products, err := s.repo.FetchProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	// Caching failures are not fatal; the next call just refetches.
	_ = s.cache.Set(ctx, catalogCacheKey, products, s.cacheTTL)

	return products, nil
}

// ListProducts returns the catalog, optionally filtered by a case-insensitive
// substring match over product name and brand.
func (s *CatalogService) ListProducts(ctx context.Context, query string) ([]domain.Product, error) {
	products, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return products, nil
	}

	filtered := []domain.Product{}
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), query) ||
			strings.Contains(strings.ToLower(p.Brand), query) {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

// FindByID returns the catalog product with the given id.
func (s *CatalogService) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	products, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	for i := range products {
		if products[i].ID == id {
			return &products[i], nil
		}
	}
	return nil, domain.ErrProductNotFound
}

// DistinctCategories returns the lower-cased set of categories present in
// the catalog, sorted alphabetically. Products without a category are ignored.
func (s *CatalogService) DistinctCategories(ctx context.Context) ([]string, error) {
	products, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	categories := []string{}
	for _, p := range products {
		category := strings.ToLower(strings.TrimSpace(p.Category))
		if category == "" || seen[category] {
			continue
		}
		seen[category] = true
		categories = append(categories, category)
	}

	sort.Strings(categories)
	return categories, nil
}
