package domain

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Product represents a single catalog entry from the products collection.
// Fields other than ID, Category and the ingredient names are display-only
// and pass through scoring untouched.
type Product struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Brand       string      `json:"brand,omitempty"`
	Category    string      `json:"category,omitempty"`
	Price       float64     `json:"price,omitempty"`
	Description string      `json:"description,omitempty"`
	Ingredients Ingredients `json:"ingredients,omitempty"`
	// ActiveIngredients is the older flat-list shape some records still use
	// instead of the ingredients object.
	ActiveIngredients []string `json:"activeIngredients,omitempty"`
	SkinType          []string `json:"skinType,omitempty"`
	CreatedAt         string   `json:"createdAt,omitempty"`
}

// Ingredients is the canonical ingredient-name set for a product. The store
// records ingredients either as an object keyed by ingredient name (with
// concentration metadata) or as a plain array of names; both shapes decode
// into the same normalized sorted list, so everything past the JSON boundary
// sees a single representation.
type Ingredients []string

// UnmarshalJSON accepts both the object and the array shape.
func (i *Ingredients) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*i = nil
		return nil
	}

	if strings.HasPrefix(trimmed, "[") {
		var names []string
		if err := json.Unmarshal(data, &names); err != nil {
			return fmt.Errorf("ingredients array: %w", err)
		}
		*i = normalizeIngredientNames(names)
		return nil
	}

	var byName map[string]json.RawMessage
	if err := json.Unmarshal(data, &byName); err != nil {
		return fmt.Errorf("ingredients object: %w", err)
	}
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	*i = normalizeIngredientNames(names)
	return nil
}

// normalizeIngredientNames lower-cases, trims, deduplicates and sorts names.
// Sorting keeps downstream iteration deterministic regardless of the JSON
// source ordering.
func normalizeIngredientNames(names []string) Ingredients {
	seen := make(map[string]bool, len(names))
	normalized := make(Ingredients, 0, len(names))
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		normalized = append(normalized, name)
	}
	sort.Strings(normalized)
	return normalized
}

// IngredientNames returns the canonical ingredient set for the product,
// falling back to the legacy activeIngredients list when the ingredients
// field is absent. A product with neither yields an empty set.
func (p *Product) IngredientNames() []string {
	if len(p.Ingredients) > 0 {
		return p.Ingredients
	}
	return normalizeIngredientNames(p.ActiveIngredients)
}

// Warning describes one negative ingredient interaction triggered while
// scoring a candidate.
type Warning struct {
	Severity       string `json:"severity"`
	Message        string `json:"message"`
	Recommendation string `json:"recommendation"`
}

// ScoredCandidate is a catalog product annotated with the outcome of a
// pairing evaluation. It is derived per request and never persisted.
type ScoredCandidate struct {
	Product
	CompatibilityScore int       `json:"compatibilityScore"`
	Warnings           []Warning `json:"warnings"`
	Benefits           []string  `json:"benefits"`
}

// PairingRequest is the caller's input to a recommendation computation.
type PairingRequest struct {
	SelectedProductID string `json:"selectedProductId" binding:"required"`
	TargetCategory    string `json:"targetCategory" binding:"required"`
}
