package firebase

import (
	"encoding/json"
	"log"
	"sort"
	"strings"

	"github.com/myskyn/backend/internal/domain"
)

// mapProducts converts a raw products node into domain products, ordered by
// record id. Database push ids sort chronologically, so id order reproduces
// insertion order. Records that fail to decode are skipped with a warning.
func mapProducts(raw map[string]json.RawMessage) []domain.Product {
	ids := make([]string, 0, len(raw))
	for id := range raw {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	products := make([]domain.Product, 0, len(raw))
	for _, id := range ids {
		var p domain.Product
		if err := json.Unmarshal(raw[id], &p); err != nil {
			log.Printf("[STORE] skipping malformed product %q: %v", id, err)
			continue
		}
		// The record key is authoritative even when the value carries its own id.
		p.ID = id
		p.Category = strings.ToLower(strings.TrimSpace(p.Category))
		products = append(products, p)
	}
	return products
}

// mapRules converts a raw compatibilityRules node into domain rules.
// Records missing either ingredient name are skipped with a warning rather
// than failing the whole load.
func mapRules(raw map[string]json.RawMessage) map[string]domain.CompatibilityRule {
	rules := make(map[string]domain.CompatibilityRule, len(raw))
	for id, value := range raw {
		var r domain.CompatibilityRule
		if err := json.Unmarshal(value, &r); err != nil {
			log.Printf("[STORE] skipping malformed rule %q: %v", id, err)
			continue
		}
		if !r.Valid() {
			log.Printf("[STORE] skipping rule %q: %v: missing ingredient name", id, domain.ErrMalformedRecord)
			continue
		}
		rules[id] = r
	}
	return rules
}
