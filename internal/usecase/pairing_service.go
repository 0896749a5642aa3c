package usecase

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/myskyn/backend/internal/domain"
)

// PairingServiceConfig holds configuration for the pairing service
type PairingServiceConfig struct {
	Scorer ScorerConfig
}

// PairingService orchestrates a recommendation request: it loads the catalog
// and the rule table (concurrently, both awaited before any scoring), resolves
// the selected product, and hands the materialized snapshots to the scorer.
//
// Selections supersede each other: if a newer request starts while this one's
// loads are still in flight, the older request returns ErrSuperseded and its
// result is discarded. The in-flight fetches themselves are not cancelled.
type PairingService struct {
	catalog *CatalogService
	rules   *RuleService
	scorer  *Scorer

	// generation identifies the most recently issued request.
	generation atomic.Int64
}

// NewPairingService creates a new pairing service with dependencies
func NewPairingService(catalog *CatalogService, rules *RuleService, config PairingServiceConfig) *PairingService {
	return &PairingService{
		catalog: catalog,
		rules:   rules,
		scorer:  NewScorer(config.Scorer),
	}
}

type catalogResult struct {
	products []domain.Product
	err      error
}

type rulesResult struct {
	rules map[string]domain.CompatibilityRule
	err   error
}

// Recommend computes ranked pairing recommendations for the request.
func (s *PairingService) Recommend(ctx context.Context, request *domain.PairingRequest) ([]domain.ScoredCandidate, error) {
	if request == nil ||
		strings.TrimSpace(request.SelectedProductID) == "" ||
		strings.TrimSpace(request.TargetCategory) == "" {
		return nil, domain.ErrInvalidSelection
	}

	generation := s.generation.Add(1)

	// The two loads are independent; run them concurrently and await both.
	catalogCh := make(chan catalogResult, 1)
	rulesCh := make(chan rulesResult, 1)

	go func() {
		products, err := s.catalog.Snapshot(ctx)
		catalogCh <- catalogResult{products: products, err: err}
	}()

	go func() {
		rules, err := s.rules.Snapshot(ctx)
		rulesCh <- rulesResult{rules: rules, err: err}
	}()

	catalogRes := <-catalogCh
	rulesRes := <-rulesCh

	// Last-issued selection wins: a stale generation's result is dropped.
	if s.generation.Load() != generation {
		return nil, domain.ErrSuperseded
	}

	if catalogRes.err != nil {
		return nil, catalogRes.err
	}
	if rulesRes.err != nil {
		return nil, rulesRes.err
	}

	selected := findProduct(catalogRes.products, request.SelectedProductID)
	if selected == nil {
		return nil, domain.ErrProductNotFound
	}

	return s.scorer.Recommend(ctx, selected, request.TargetCategory, catalogRes.products, rulesRes.rules)
}

// findProduct returns the catalog product with the given id, or nil.
func findProduct(products []domain.Product, id string) *domain.Product {
	for i := range products {
		if products[i].ID == id {
			return &products[i]
		}
	}
	return nil
}
