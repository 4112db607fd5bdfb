package testhelpers

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"github.com/pageza/recipebook/backend/internal/models"
)

// RecipeOption customizes a fixture recipe.
type RecipeOption func(*models.Recipe)

func Vegetarian(v bool) RecipeOption {
	return func(r *models.Recipe) { r.Vegetarian = v }
}

func Servings(n int) RecipeOption {
	return func(r *models.Recipe) { r.Servings = n }
}

func Instructions(s string) RecipeOption {
	return func(r *models.Recipe) { r.Instructions = s }
}

func OwnedBy(identity string) RecipeOption {
	return func(r *models.Recipe) { r.CreatedBy = identity }
}

// WithIngredients replaces the fixture's ingredients with the given names.
func WithIngredients(names ...string) RecipeOption {
	return func(r *models.Recipe) {
		r.Ingredients = make([]models.Ingredient, len(names))
		for i, n := range names {
			r.Ingredients[i] = models.Ingredient{Name: n}
		}
	}
}

// NewRecipe builds a valid, unsaved recipe.
func NewRecipe(name string, opts ...RecipeOption) *models.Recipe {
	r := &models.Recipe{
		Name:         name,
		Description:  "A test recipe",
		Servings:     2,
		Instructions: "Mix everything and cook.",
		Ingredients:  []models.Ingredient{{Name: "Salt", Amount: "1", Unit: "pinch"}},
		CreatedBy:    "alice",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SaveRecipe stores a fixture recipe with its ingredients through gorm directly.
func SaveRecipe(t *testing.T, db *gorm.DB, name string, opts ...RecipeOption) *models.Recipe {
	t.Helper()
	r := NewRecipe(name, opts...)
	for i := range r.Ingredients {
		r.Ingredients[i].Position = i
	}
	if err := db.WithContext(context.Background()).Create(r).Error; err != nil {
		t.Fatalf("failed to save recipe %s: %v", name, err)
	}
	return r
}
