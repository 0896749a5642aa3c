package usecase

import (
	"context"
	"errors"
	"reflect"
	"sync/atomic"
	"testing"
	"time"

	"github.com/myskyn/backend/internal/domain"
)

// MockRuleRepository is a mock implementation of domain.RuleRepository
type MockRuleRepository struct {
	rules      map[string]domain.CompatibilityRule
	fetchError error
	fetchCount int32
}

func (m *MockRuleRepository) FetchRules(ctx context.Context) (map[string]domain.CompatibilityRule, error) {
	atomic.AddInt32(&m.fetchCount, 1)
	if m.fetchError != nil {
		return nil, m.fetchError
	}
	return m.rules, nil
}

func TestRuleService_Snapshot(t *testing.T) {
	ctx := context.Background()

	t.Run("returns stored rules when present", func(t *testing.T) {
		stored := singleRule("r1", "aha", "retinol", domain.Incompatible)
		repo := &MockRuleRepository{rules: stored}
		svc := NewRuleService(repo, NewMockCacheRepository(), time.Minute, nil)

		rules, err := svc.Snapshot(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(rules, stored) {
			t.Errorf("rules = %v, want stored table", rules)
		}
	})

	t.Run("empty store falls back to built-in defaults", func(t *testing.T) {
		repo := &MockRuleRepository{rules: map[string]domain.CompatibilityRule{}}
		svc := NewRuleService(repo, NewMockCacheRepository(), time.Minute, nil)

		rules, err := svc.Snapshot(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(rules, domain.DefaultRules()) {
			t.Errorf("rules = %v, want DefaultRules()", rules)
		}
	})

	t.Run("custom fallback overrides the built-in table", func(t *testing.T) {
		custom := singleRule("mine", "bha", "retinol", domain.Caution)
		repo := &MockRuleRepository{rules: nil}
		svc := NewRuleService(repo, NewMockCacheRepository(), time.Minute, custom)

		rules, err := svc.Snapshot(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(rules, custom) {
			t.Errorf("rules = %v, want custom fallback", rules)
		}
	})

	t.Run("transport failure propagates, no fallback", func(t *testing.T) {
		repo := &MockRuleRepository{fetchError: domain.ErrDataUnavailable}
		svc := NewRuleService(repo, NewMockCacheRepository(), time.Minute, nil)

		_, err := svc.Snapshot(ctx)
		if !errors.Is(err, domain.ErrDataUnavailable) {
			t.Errorf("error = %v, want ErrDataUnavailable", err)
		}
	})

	t.Run("second call hits the cache", func(t *testing.T) {
		repo := &MockRuleRepository{rules: singleRule("r1", "aha", "retinol", domain.Incompatible)}
		svc := NewRuleService(repo, NewMockCacheRepository(), time.Minute, nil)

		if _, err := svc.Snapshot(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := svc.Snapshot(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if repo.fetchCount != 1 {
			t.Errorf("fetchCount = %d, want 1", repo.fetchCount)
		}
	})
}
