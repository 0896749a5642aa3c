package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/myskyn/backend/internal/domain"
)

const rulesCacheKey = "store:rules"

// RuleService provides the compatibility rule table with snapshot caching.
// When the store has no rules recorded, the configured fallback table is
// returned instead of an empty mapping; transport failures still propagate.
type RuleService struct {
	repo     domain.RuleRepository
	cache    domain.CacheRepository
	cacheTTL time.Duration
	fallback map[string]domain.CompatibilityRule
}

// NewRuleService creates a new rule service. A nil fallback selects the
// built-in default rule table.
func NewRuleService(
	repo domain.RuleRepository,
	cache domain.CacheRepository,
	cacheTTL time.Duration,
	fallback map[string]domain.CompatibilityRule,
) *RuleService {
	if cacheTTL == 0 {
		cacheTTL = 5 * time.Minute
	}
	if fallback == nil {
		fallback = domain.DefaultRules()
	}

	return &RuleService{
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
		fallback: fallback,
	}
}

// Snapshot returns the current rule table, serving from cache when a fresh
// snapshot is available.
func (s *RuleService) Snapshot(ctx context.Context) (map[string]domain.CompatibilityRule, error) {
	if cached, err := s.cache.Get(ctx, rulesCacheKey); err == nil {
		if rules, ok := cached.(map[string]domain.CompatibilityRule); ok {
			return rules, nil
		}
	}

	rules, err := s.repo.FetchRules(ctx)
	if err != nil {
		return nil, fmt.Errorf("load rules: %w", err)
	}

	if len(rules) == 0 {
		log.Printf("[RULES] no compatibility rules in store, using built-in defaults")
		rules = s.fallback
	}

	_ = s.cache.Set(ctx, rulesCacheKey, rules, s.cacheTTL)

	return rules, nil
}
