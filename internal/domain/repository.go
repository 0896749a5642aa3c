package domain

import (
	"context"
	"time"
)

// CatalogRepository defines read access to the products collection.
type CatalogRepository interface {
	FetchProducts(ctx context.Context) ([]Product, error)
}

// RuleRepository defines read access to the compatibility-rules collection.
type RuleRepository interface {
	FetchRules(ctx context.Context) (map[string]CompatibilityRule, error)
}

// CacheRepository defines the interface for caching loaded snapshots.
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
