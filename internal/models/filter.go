package models

import "strings"

// RecipeFilter holds the optional criteria of a filter request. A nil field does not
// constrain the result.
type RecipeFilter struct {
	Vegetarian        *bool   `json:"vegetarian"`
	Servings          *int    `json:"servings"`
	IncludeIngredient *string `json:"include_ingredient"`
	ExcludeIngredient *string `json:"exclude_ingredient"`
	InstructionText   *string `json:"instruction_text"`
}

// Normalize returns a copy with text criteria trimmed and blank ones dropped.
func (f RecipeFilter) Normalize() RecipeFilter {
	f.IncludeIngredient = trimmed(f.IncludeIngredient)
	f.ExcludeIngredient = trimmed(f.ExcludeIngredient)
	f.InstructionText = trimmed(f.InstructionText)
	return f
}

// IsEmpty reports whether no criterion is present after normalization.
func (f RecipeFilter) IsEmpty() bool {
	n := f.Normalize()
	return n.Vegetarian == nil &&
		n.Servings == nil &&
		n.IncludeIngredient == nil &&
		n.ExcludeIngredient == nil &&
		n.InstructionText == nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
