package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/pageza/recipebook/backend/internal/auth"
	"github.com/pageza/recipebook/backend/internal/models"
	"github.com/pageza/recipebook/backend/internal/types"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, username, email, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (*types.TokenResponse, error)
	GenerateToken(user *models.User) (string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
}

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	GetAll(ctx context.Context) ([]models.Recipe, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Recipe, error)
	GetMine(ctx context.Context, actor auth.Actor) ([]models.Recipe, error)
	Create(ctx context.Context, actor auth.Actor, recipe *models.Recipe) (*models.Recipe, error)
	Update(ctx context.Context, actor auth.Actor, id uuid.UUID, recipe *models.Recipe) (*models.Recipe, error)
	Delete(ctx context.Context, actor auth.Actor, id uuid.UUID) error
	Filter(ctx context.Context, filter models.RecipeFilter) ([]models.Recipe, error)
}
