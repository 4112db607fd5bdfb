package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/recipebook/backend/internal/apperrors"
	"github.com/pageza/recipebook/backend/internal/models"
)

// RecipeStore is the persistent recipe collection. Every lookup returns fully loaded
// recipes, ingredients included.
type RecipeStore interface {
	FindAll(ctx context.Context) ([]models.Recipe, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Recipe, error)
	FindByVegetarian(ctx context.Context, vegetarian bool) ([]models.Recipe, error)
	FindByServings(ctx context.Context, servings int) ([]models.Recipe, error)
	FindByIngredientNameContaining(ctx context.Context, substr string) ([]models.Recipe, error)
	FindByIngredientNameNotContaining(ctx context.Context, substr string) ([]models.Recipe, error)
	FindByInstructionsContaining(ctx context.Context, substr string) ([]models.Recipe, error)
	FindByCreatedBy(ctx context.Context, identity string) ([]models.Recipe, error)
	Save(ctx context.Context, recipe *models.Recipe) (*models.Recipe, error)
	Delete(ctx context.Context, recipe *models.Recipe) error
	Count(ctx context.Context) (int64, error)
}

// GormRecipeStore implements RecipeStore on gorm. Text matching is case-insensitive.
type GormRecipeStore struct {
	db *gorm.DB
}

var _ RecipeStore = (*GormRecipeStore)(nil)

func NewRecipeStore(db *gorm.DB) *GormRecipeStore {
	return &GormRecipeStore{db: db}
}

func (s *GormRecipeStore) query(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
		return db.Order("ingredients.position ASC")
	})
}

func (s *GormRecipeStore) find(ctx context.Context, op string, scope func(*gorm.DB) *gorm.DB) ([]models.Recipe, error) {
	var recipes []models.Recipe
	if err := scope(s.query(ctx)).Find(&recipes).Error; err != nil {
		return nil, unavailable(op, err)
	}
	return recipes, nil
}

func (s *GormRecipeStore) FindAll(ctx context.Context) ([]models.Recipe, error) {
	return s.find(ctx, "find all recipes", func(db *gorm.DB) *gorm.DB { return db })
}

func (s *GormRecipeStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.query(ctx).First(&recipe, "recipes.id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Newf(apperrors.ErrCodeNotFound, "Recipe not found with id: %s", id)
	}
	if err != nil {
		return nil, unavailable("find recipe", err)
	}
	return &recipe, nil
}

func (s *GormRecipeStore) FindByVegetarian(ctx context.Context, vegetarian bool) ([]models.Recipe, error) {
	return s.find(ctx, "find recipes by vegetarian", func(db *gorm.DB) *gorm.DB {
		return db.Where("recipes.vegetarian = ?", vegetarian)
	})
}

func (s *GormRecipeStore) FindByServings(ctx context.Context, servings int) ([]models.Recipe, error) {
	return s.find(ctx, "find recipes by servings", func(db *gorm.DB) *gorm.DB {
		return db.Where("recipes.servings = ?", servings)
	})
}

func (s *GormRecipeStore) FindByIngredientNameContaining(ctx context.Context, substr string) ([]models.Recipe, error) {
	return s.find(ctx, "find recipes by ingredient", func(db *gorm.DB) *gorm.DB {
		return db.Where("recipes.id IN (?)", s.ingredientMatches(ctx, substr))
	})
}

// FindByIngredientNameNotContaining returns recipes none of whose ingredients match,
// including recipes without ingredients.
func (s *GormRecipeStore) FindByIngredientNameNotContaining(ctx context.Context, substr string) ([]models.Recipe, error) {
	return s.find(ctx, "find recipes excluding ingredient", func(db *gorm.DB) *gorm.DB {
		return db.Where("recipes.id NOT IN (?)", s.ingredientMatches(ctx, substr))
	})
}

func (s *GormRecipeStore) FindByInstructionsContaining(ctx context.Context, substr string) ([]models.Recipe, error) {
	return s.find(ctx, "find recipes by instructions", func(db *gorm.DB) *gorm.DB {
		return db.Where(`recipes.instructions_key LIKE ? ESCAPE '\'`, likePattern(substr))
	})
}

func (s *GormRecipeStore) FindByCreatedBy(ctx context.Context, identity string) ([]models.Recipe, error) {
	return s.find(ctx, "find recipes by owner", func(db *gorm.DB) *gorm.DB {
		return db.Where("recipes.created_by = ?", identity)
	})
}

func (s *GormRecipeStore) ingredientMatches(ctx context.Context, substr string) *gorm.DB {
	return s.db.WithContext(ctx).Model(&models.Ingredient{}).
		Select("recipe_id").
		Where(`name_key LIKE ? ESCAPE '\'`, likePattern(substr))
}

// Save inserts a recipe without an id, or fully replaces the stored one, ingredients
// included, in a single transaction.
func (s *GormRecipeStore) Save(ctx context.Context, recipe *models.Recipe) (*models.Recipe, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if recipe.ID == uuid.Nil {
			if err := tx.Omit("Ingredients").Create(recipe).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.Ingredient{}).Error; err != nil {
				return err
			}
			if err := tx.Omit("Ingredients", "CreatedAt").Save(recipe).Error; err != nil {
				return err
			}
		}

		for i := range recipe.Ingredients {
			ing := &recipe.Ingredients[i]
			ing.ID = uuid.Nil
			ing.RecipeID = recipe.ID
			ing.Position = i
		}
		if len(recipe.Ingredients) > 0 {
			if err := tx.Create(&recipe.Ingredients).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, unavailable("save recipe", err)
	}
	return recipe, nil
}

// Delete removes the recipe and its ingredients.
func (s *GormRecipeStore) Delete(ctx context.Context, recipe *models.Recipe) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.Ingredient{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Recipe{}, "id = ?", recipe.ID).Error
	})
	if err != nil {
		return unavailable("delete recipe", err)
	}
	return nil
}

func (s *GormRecipeStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&models.Recipe{}).Count(&n).Error; err != nil {
		return 0, unavailable("count recipes", err)
	}
	return n, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern builds a "contains" pattern against the folded search columns, with
// wildcards in substr matched literally.
func likePattern(substr string) string {
	return "%" + likeEscaper.Replace(models.SearchKey(substr)) + "%"
}

func unavailable(op string, err error) error {
	return apperrors.Wrap(apperrors.ErrCodeUnavailable, op, err)
}
