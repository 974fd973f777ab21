package domain

import (
	"fmt"
	"strings"
)

type ExtraSelection struct {
	ExtraID  string `json:"extra_id"`
	Quantity int    `json:"quantity"`
}

func (e Extra) Validate() error {
	field := "extras." + e.ID
	switch {
	case strings.TrimSpace(e.Name) == "":
		return NewValidationError(field, "name is required")
	case e.Price.IsNegative():
		return NewValidationError(field, "price must not be negative")
	case e.Min < 0:
		return NewValidationError(field, "min must not be negative")
	case e.Max < e.Min:
		return NewValidationError(field, "max must be at least min")
	case e.Required && e.Min < 1:
		return NewValidationError(field, "required extras need min of at least 1")
	}
	return nil
}

func (p Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return NewValidationError("name", "name is required")
	}
	if p.Price.IsNegative() {
		return NewValidationError("price", "price must not be negative")
	}
	for _, e := range p.Extras {
		if err := e.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// EffectiveExtras is the product's own extras followed by those of its groups.
func (p Product) EffectiveExtras(groups []ExtraGroup) []Extra {
	extras := append([]Extra(nil), p.Extras...)
	for _, groupID := range p.ExtraGroupIDs {
		for _, g := range groups {
			if g.ID == groupID {
				extras = append(extras, g.Extras...)
			}
		}
	}
	return extras
}

// ResolveExtras checks a selection against the product's extras and returns
// it with names and prices taken from the catalog.
func ResolveExtras(product Product, groups []ExtraGroup, selection []ExtraSelection) ([]SelectedExtra, error) {
	available := make(map[string]Extra)
	for _, e := range product.EffectiveExtras(groups) {
		available[e.ID] = e
	}

	chosen := make(map[string]int, len(selection))
	for _, s := range selection {
		if _, ok := available[s.ExtraID]; !ok {
			return nil, NewValidationError("extras", fmt.Sprintf("unknown extra %q", s.ExtraID))
		}
		if _, dup := chosen[s.ExtraID]; dup {
			return nil, NewValidationError("extras", fmt.Sprintf("extra %q selected twice", s.ExtraID))
		}
		chosen[s.ExtraID] = s.Quantity
	}

	resolved := make([]SelectedExtra, 0, len(chosen))
	seen := make(map[string]bool)
	for _, e := range product.EffectiveExtras(groups) {
		if seen[e.ID] {
			continue
		}
		seen[e.ID] = true
		qty, picked := chosen[e.ID]
		if !picked || qty == 0 {
			if e.Required {
				return nil, NewValidationError("extras", fmt.Sprintf("%s is required", e.Name))
			}
			continue
		}
		if qty < e.Min || qty > e.Max {
			return nil, NewValidationError("extras", fmt.Sprintf("%s quantity must be between %d and %d", e.Name, e.Min, e.Max))
		}
		resolved = append(resolved, SelectedExtra{ExtraID: e.ID, Name: e.Name, Price: e.Price, Quantity: qty})
	}
	return NormalizeExtras(resolved), nil
}
