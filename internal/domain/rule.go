package domain

import "strings"

// Compatibility classifies how two ingredients interact.
type Compatibility string

const (
	Compatible   Compatibility = "compatible"
	Caution      Compatibility = "caution"
	Incompatible Compatibility = "incompatible"
)

// CompatibilityRule describes the interaction between two named ingredients.
// The pair is unordered: a rule for (A, B) applies equally to (B, A).
// JSON keys match the store's compatibilityRules records.
type CompatibilityRule struct {
	IngredientA    string        `json:"ingredient1"`
	IngredientB    string        `json:"ingredient2"`
	Compatibility  Compatibility `json:"compatibility"`
	Severity       string        `json:"severity"`
	Reason         string        `json:"reason"`
	Recommendation string        `json:"recommendation"`
}

// Matches reports whether the rule covers the given ingredient pair,
// in either order and ignoring case.
func (r CompatibilityRule) Matches(a, b string) bool {
	ra := strings.ToLower(r.IngredientA)
	rb := strings.ToLower(r.IngredientB)
	a = strings.ToLower(a)
	b = strings.ToLower(b)
	return (ra == a && rb == b) || (ra == b && rb == a)
}

// Valid reports whether the rule names both ingredients. Records failing
// this check are skipped by the loader and the scorer.
func (r CompatibilityRule) Valid() bool {
	return r.IngredientA != "" && r.IngredientB != ""
}

// DefaultRules returns the built-in interaction table used when the store
// has no compatibilityRules node. The table is stable: tests and callers
// may assert on its exact contents. A fresh map is returned on every call
// so callers cannot mutate the defaults.
func DefaultRules() map[string]CompatibilityRule {
	return map[string]CompatibilityRule{
		"retinol_vitamin_c": {
			IngredientA:    "retinol",
			IngredientB:    "vitamin_c",
			Compatibility:  Incompatible,
			Severity:       "high",
			Reason:         "pH conflict and potential irritation",
			Recommendation: "Use vitamin C in the morning and retinol at night",
		},
		"retinol_ha": {
			IngredientA:    "retinol",
			IngredientB:    "hyaluronic_acid",
			Compatibility:  Compatible,
			Severity:       "none",
			Reason:         "HA helps buffer retinol irritation",
			Recommendation: "Layer hyaluronic acid after retinol",
		},
		"niacinamide_vitamin_c": {
			IngredientA:    "niacinamide",
			IngredientB:    "vitamin_c",
			Compatibility:  Caution,
			Severity:       "low",
			Reason:         "May cause flushing in sensitive skin",
			Recommendation: "Use at different times or test for sensitivity",
		},
	}
}
