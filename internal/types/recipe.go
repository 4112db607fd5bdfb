package types

import (
	"github.com/pageza/recipebook/backend/internal/models"
)

// IngredientRequest is one ingredient of a recipe payload.
type IngredientRequest struct {
	Name   string `json:"name" binding:"required"`
	Amount string `json:"amount"`
	Unit   string `json:"unit"`
}

// RecipeRequest represents the request body for creating or updating a recipe.
// Ownership and id are never taken from the payload.
type RecipeRequest struct {
	Name            string              `json:"name" binding:"required"`
	Description     string              `json:"description"`
	Vegetarian      *bool               `json:"vegetarian" binding:"required"`
	Servings        *int                `json:"servings" binding:"required,min=1"`
	Instructions    string              `json:"instructions" binding:"required"`
	PreparationTime *int                `json:"preparation_time" binding:"omitempty,min=0"`
	CookingTime     *int                `json:"cooking_time" binding:"omitempty,min=0"`
	Ingredients     []IngredientRequest `json:"ingredients" binding:"required,min=1,dive"`
}

// ToModel converts the payload into an unsaved recipe.
func (r *RecipeRequest) ToModel() *models.Recipe {
	recipe := &models.Recipe{
		Name:            r.Name,
		Description:     r.Description,
		Instructions:    r.Instructions,
		PreparationTime: r.PreparationTime,
		CookingTime:     r.CookingTime,
		Ingredients:     make([]models.Ingredient, len(r.Ingredients)),
	}
	if r.Vegetarian != nil {
		recipe.Vegetarian = *r.Vegetarian
	}
	if r.Servings != nil {
		recipe.Servings = *r.Servings
	}
	for i, ing := range r.Ingredients {
		recipe.Ingredients[i] = models.Ingredient{
			Name:   ing.Name,
			Amount: ing.Amount,
			Unit:   ing.Unit,
		}
	}
	return recipe
}

// FilterRequest is the body of a filter query. Blank text fields are ignored.
type FilterRequest struct {
	Vegetarian        *bool   `json:"vegetarian"`
	Servings          *int    `json:"servings"`
	IncludeIngredient *string `json:"include_ingredient"`
	ExcludeIngredient *string `json:"exclude_ingredient"`
	InstructionText   *string `json:"instruction_text"`
}

func (r *FilterRequest) ToModel() models.RecipeFilter {
	return models.RecipeFilter{
		Vegetarian:        r.Vegetarian,
		Servings:          r.Servings,
		IncludeIngredient: r.IncludeIngredient,
		ExcludeIngredient: r.ExcludeIngredient,
		InstructionText:   r.InstructionText,
	}
}
