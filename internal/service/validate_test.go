package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipebook/backend/internal/apperrors"
	"github.com/pageza/recipebook/backend/internal/models"
)

func intPtr(n int) *int { return &n }

func validRecipe() *models.Recipe {
	return &models.Recipe{
		Name:         "Toast",
		Servings:     1,
		Instructions: "Toast the bread.",
		Ingredients:  []models.Ingredient{{Name: "Bread"}},
	}
}

func TestValidateRecipe(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.Recipe)
		field  string
	}{
		{"valid", func(*models.Recipe) {}, ""},
		{"blank name", func(r *models.Recipe) { r.Name = "  " }, "name"},
		{"blank instructions", func(r *models.Recipe) { r.Instructions = "" }, "instructions"},
		{"zero servings", func(r *models.Recipe) { r.Servings = 0 }, "servings"},
		{"negative prep time", func(r *models.Recipe) { r.PreparationTime = intPtr(-5) }, "preparation_time"},
		{"negative cooking time", func(r *models.Recipe) { r.CookingTime = intPtr(-1) }, "cooking_time"},
		{"zero times allowed", func(r *models.Recipe) { r.PreparationTime, r.CookingTime = intPtr(0), intPtr(0) }, ""},
		{"no ingredients", func(r *models.Recipe) { r.Ingredients = nil }, "ingredients"},
		{"blank ingredient", func(r *models.Recipe) {
			r.Ingredients = append(r.Ingredients, models.Ingredient{Name: " "})
		}, "ingredients[1].name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRecipe()
			tt.mutate(r)
			err := ValidateRecipe(r)
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			var appErr *apperrors.Error
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, apperrors.ErrCodeInvalidRequest, appErr.Code)
			assert.Contains(t, appErr.Fields, tt.field)
		})
	}
}

func TestValidateNilRecipe(t *testing.T) {
	assert.True(t, apperrors.HasCode(ValidateRecipe(nil), apperrors.ErrCodeInvalidRequest))
}
