package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/recipebook/backend/internal/models"
	"github.com/pageza/recipebook/backend/internal/repository"
)

var _ repository.RecipeStore = (*MockRecipeStore)(nil)

// MockRecipeStore is a mock implementation of the recipe store
type MockRecipeStore struct {
	mock.Mock
}

func recipes(args mock.Arguments) ([]models.Recipe, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Recipe), args.Error(1)
}

func (m *MockRecipeStore) FindAll(ctx context.Context) ([]models.Recipe, error) {
	return recipes(m.Called(ctx))
}

func (m *MockRecipeStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Recipe), args.Error(1)
}

func (m *MockRecipeStore) FindByVegetarian(ctx context.Context, vegetarian bool) ([]models.Recipe, error) {
	return recipes(m.Called(ctx, vegetarian))
}

func (m *MockRecipeStore) FindByServings(ctx context.Context, servings int) ([]models.Recipe, error) {
	return recipes(m.Called(ctx, servings))
}

func (m *MockRecipeStore) FindByIngredientNameContaining(ctx context.Context, substr string) ([]models.Recipe, error) {
	return recipes(m.Called(ctx, substr))
}

func (m *MockRecipeStore) FindByIngredientNameNotContaining(ctx context.Context, substr string) ([]models.Recipe, error) {
	return recipes(m.Called(ctx, substr))
}

func (m *MockRecipeStore) FindByInstructionsContaining(ctx context.Context, substr string) ([]models.Recipe, error) {
	return recipes(m.Called(ctx, substr))
}

func (m *MockRecipeStore) FindByCreatedBy(ctx context.Context, identity string) ([]models.Recipe, error) {
	return recipes(m.Called(ctx, identity))
}

func (m *MockRecipeStore) Save(ctx context.Context, recipe *models.Recipe) (*models.Recipe, error) {
	args := m.Called(ctx, recipe)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Recipe), args.Error(1)
}

func (m *MockRecipeStore) Delete(ctx context.Context, recipe *models.Recipe) error {
	return m.Called(ctx, recipe).Error(0)
}

func (m *MockRecipeStore) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
