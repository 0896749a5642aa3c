package usecase

import (
	"context"
	"log"
	"sort"
	"strings"

	"github.com/myskyn/backend/internal/domain"
)

// Scoring constants. Every candidate starts at the base score; each
// incompatible or caution rule match deducts, each compatible match records
// a benefit without changing the score.
const (
	baseScore           = 100
	incompatiblePenalty = 30
	cautionPenalty      = 10
	minScore            = 0
)

// ScorerConfig holds configuration for the compatibility scorer
type ScorerConfig struct {
	IncompatiblePenalty int
	CautionPenalty      int
	EnableDebugLogging  bool
}

// Scorer evaluates ingredient compatibility between a selected product and
// candidate products in a target category. It is a pure computation over its
// inputs: no I/O, no hidden state.
type Scorer struct {
	incompatiblePenalty int
	cautionPenalty      int
	enableDebugLogging  bool
}

// NewScorer creates a new scorer with the given configuration
func NewScorer(config ScorerConfig) *Scorer {
	incompatible := config.IncompatiblePenalty
	if incompatible <= 0 {
		incompatible = incompatiblePenalty
	}

	caution := config.CautionPenalty
	if caution <= 0 {
		caution = cautionPenalty
	}

	return &Scorer{
		incompatiblePenalty: incompatible,
		cautionPenalty:      caution,
		enableDebugLogging:  config.EnableDebugLogging,
	}
}

// Recommend scores every product in catalog whose category matches
// targetCategory (case-insensitively, excluding the selected product itself)
// against the selected product's ingredients, and returns the candidates
// ordered by score descending. Ties keep their catalog order. An empty
// candidate pool yields an empty result, not an error.
func (s *Scorer) Recommend(
	ctx context.Context,
	selected *domain.Product,
	targetCategory string,
	catalog []domain.Product,
	rules map[string]domain.CompatibilityRule,
) ([]domain.ScoredCandidate, error) {
	if selected == nil || strings.TrimSpace(targetCategory) == "" {
		return nil, domain.ErrInvalidSelection
	}

	selectedIngredients := selected.IngredientNames()

	if s.enableDebugLogging {
		log.Printf("[PAIR] scoring against %q (ingredients: %v, target: %q)",
			selected.Name, selectedIngredients, targetCategory)
	}

	// Map iteration order is randomized in Go; scanning rule ids in sorted
	// order keeps the first-match tie-break deterministic across calls.
	ruleIDs := sortedRuleIDs(rules)

	var scored []domain.ScoredCandidate
	for _, candidate := range catalog {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if !strings.EqualFold(candidate.Category, targetCategory) {
			continue
		}
		if candidate.ID == selected.ID {
			continue
		}

		scored = append(scored, s.scoreCandidate(selectedIngredients, candidate, ruleIDs, rules))
	}

	// Stable sort preserves catalog order for equal scores.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].CompatibilityScore > scored[j].CompatibilityScore
	})

	if scored == nil {
		scored = []domain.ScoredCandidate{}
	}
	return scored, nil
}

// scoreCandidate evaluates the full cross product of (selected ingredient,
// candidate ingredient) pairs against the rule table. The cross product is
// deliberately not deduplicated: a candidate overlapping the selection on
// several rule-covered pairs accumulates every deduction and every note.
func (s *Scorer) scoreCandidate(
	selectedIngredients []string,
	candidate domain.Product,
	ruleIDs []string,
	rules map[string]domain.CompatibilityRule,
) domain.ScoredCandidate {
	result := domain.ScoredCandidate{
		Product:            candidate,
		CompatibilityScore: baseScore,
		Warnings:           []domain.Warning{},
		Benefits:           []string{},
	}

	candidateIngredients := candidate.IngredientNames()

	for _, ingA := range selectedIngredients {
		for _, ingB := range candidateIngredients {
			rule, found := findRule(ruleIDs, rules, ingA, ingB)
			if !found {
				continue
			}

			if s.enableDebugLogging {
				log.Printf("[PAIR] %s + %s -> %s", ingA, ingB, rule.Compatibility)
			}

			switch rule.Compatibility {
			case domain.Incompatible:
				result.CompatibilityScore -= s.incompatiblePenalty
				result.Warnings = append(result.Warnings, domain.Warning{
					Severity:       rule.Severity,
					Message:        rule.Reason,
					Recommendation: rule.Recommendation,
				})
			case domain.Caution:
				result.CompatibilityScore -= s.cautionPenalty
				result.Warnings = append(result.Warnings, domain.Warning{
					Severity:       rule.Severity,
					Message:        rule.Reason,
					Recommendation: rule.Recommendation,
				})
			case domain.Compatible:
				result.Benefits = append(result.Benefits, rule.Reason)
			}
		}
	}

	if result.CompatibilityScore < minScore {
		result.CompatibilityScore = minScore
	}

	return result
}

// findRule returns the first rule (in sorted-id order) covering the pair.
// Rules missing an ingredient name are never matched.
func findRule(
	ruleIDs []string,
	rules map[string]domain.CompatibilityRule,
	ingA, ingB string,
) (domain.CompatibilityRule, bool) {
	for _, id := range ruleIDs {
		rule := rules[id]
		if !rule.Valid() {
			continue
		}
		if rule.Matches(ingA, ingB) {
			return rule, true
		}
	}
	return domain.CompatibilityRule{}, false
}

// sortedRuleIDs returns the rule mapping's keys in lexicographic order
func sortedRuleIDs(rules map[string]domain.CompatibilityRule) []string {
	ids := make([]string, 0, len(rules))
	for id := range rules {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
