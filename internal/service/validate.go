package service

import (
	"fmt"
	"strings"

	"github.com/pageza/recipebook/backend/internal/apperrors"
	"github.com/pageza/recipebook/backend/internal/models"
)

// ValidateRecipe checks a create or update payload. The returned error carries one
// message per offending field.
func ValidateRecipe(r *models.Recipe) error {
	if r == nil {
		return apperrors.Validation(map[string]string{"recipe": "Recipe is required"})
	}

	fields := map[string]string{}
	if strings.TrimSpace(r.Name) == "" {
		fields["name"] = "Name is required"
	}
	if strings.TrimSpace(r.Instructions) == "" {
		fields["instructions"] = "Instructions are required"
	}
	if r.Servings < 1 {
		fields["servings"] = "Servings must be at least 1"
	}
	if r.PreparationTime != nil && *r.PreparationTime < 0 {
		fields["preparation_time"] = "Preparation time cannot be negative"
	}
	if r.CookingTime != nil && *r.CookingTime < 0 {
		fields["cooking_time"] = "Cooking time cannot be negative"
	}
	if len(r.Ingredients) == 0 {
		fields["ingredients"] = "At least one ingredient is required"
	}
	for i, ing := range r.Ingredients {
		if strings.TrimSpace(ing.Name) == "" {
			fields[fmt.Sprintf("ingredients[%d].name", i)] = "Ingredient name is required"
		}
	}

	if len(fields) > 0 {
		return apperrors.Validation(fields)
	}
	return nil
}
