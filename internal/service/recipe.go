package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pageza/recipebook/backend/internal/apperrors"
	"github.com/pageza/recipebook/backend/internal/auth"
	"github.com/pageza/recipebook/backend/internal/logger"
	"github.com/pageza/recipebook/backend/internal/metrics"
	"github.com/pageza/recipebook/backend/internal/models"
	"github.com/pageza/recipebook/backend/internal/repository"
)

// Query kinds reported to the metrics recorder.
const (
	QueryAll       = "all"
	QueryByID      = "byId"
	QueryMyRecipes = "myRecipes"
)

// RecipeService handles recipe operations
type RecipeService struct {
	store   repository.RecipeStore
	guard   *auth.Guard
	metrics metrics.Recorder
	logger  logger.Logger
}

var _ IRecipeService = (*RecipeService)(nil)

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(store repository.RecipeStore, guard *auth.Guard, recorder metrics.Recorder, log logger.Logger) *RecipeService {
	if guard == nil {
		guard = auth.NewGuard(nil)
	}
	if recorder == nil {
		recorder = metrics.Noop{}
	}
	if log == nil {
		log = logger.NewNoopLogger()
	}
	return &RecipeService{
		store:   store,
		guard:   guard,
		metrics: recorder,
		logger:  log,
	}
}

// GetAll lists every recipe.
func (s *RecipeService) GetAll(ctx context.Context) ([]models.Recipe, error) {
	s.metrics.RecipeQuery(QueryAll)
	return s.store.FindAll(ctx)
}

// GetByID retrieves a recipe by ID
func (s *RecipeService) GetByID(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	s.metrics.RecipeQuery(QueryByID)
	return s.store.FindByID(ctx, id)
}

// GetMine lists the recipes created by actor.
func (s *RecipeService) GetMine(ctx context.Context, actor auth.Actor) ([]models.Recipe, error) {
	s.metrics.RecipeQuery(QueryMyRecipes)
	if actor.Anonymous() {
		return nil, apperrors.New(apperrors.ErrCodeUnauthorized, "authentication required")
	}
	return s.store.FindByCreatedBy(ctx, actor.ID)
}

// Create stores a new recipe owned by actor. Any id in the payload is ignored.
func (s *RecipeService) Create(ctx context.Context, actor auth.Actor, recipe *models.Recipe) (*models.Recipe, error) {
	if actor.Anonymous() {
		return nil, apperrors.New(apperrors.ErrCodeUnauthorized, "authentication required")
	}
	if err := ValidateRecipe(recipe); err != nil {
		return nil, err
	}

	recipe.ID = uuid.Nil
	recipe.CreatedBy = actor.ID

	saved, err := s.store.Save(ctx, recipe)
	if err != nil {
		return nil, err
	}
	s.metrics.RecipeCreated()
	s.refreshCount(ctx)

	s.logger.Info("recipe created",
		zap.String("recipe_id", saved.ID.String()),
		zap.String("created_by", saved.CreatedBy))
	return saved, nil
}

// Update replaces the stored recipe with recipe. Only the owner or an elevated actor
// may update; id and owner are kept from the stored record.
func (s *RecipeService) Update(ctx context.Context, actor auth.Actor, id uuid.UUID, recipe *models.Recipe) (*models.Recipe, error) {
	if err := ValidateRecipe(recipe); err != nil {
		return nil, err
	}

	existing, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.guard.CanMutate(actor, existing) != auth.Allow {
		s.logger.Warn("recipe update denied",
			zap.String("recipe_id", id.String()),
			zap.String("actor", actor.ID))
		return nil, apperrors.New(apperrors.ErrCodeAccessDenied, "You don't have permission to update this recipe")
	}

	recipe.ID = existing.ID
	recipe.CreatedBy = existing.CreatedBy
	recipe.CreatedAt = existing.CreatedAt

	saved, err := s.store.Save(ctx, recipe)
	if err != nil {
		return nil, err
	}
	s.metrics.RecipeUpdated()

	s.logger.Info("recipe updated",
		zap.String("recipe_id", saved.ID.String()),
		zap.String("actor", actor.ID))
	return saved, nil
}

// Delete removes a recipe. Only the owner or an elevated actor may delete.
func (s *RecipeService) Delete(ctx context.Context, actor auth.Actor, id uuid.UUID) error {
	existing, err := s.store.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if s.guard.CanMutate(actor, existing) != auth.Allow {
		s.logger.Warn("recipe delete denied",
			zap.String("recipe_id", id.String()),
			zap.String("actor", actor.ID))
		return apperrors.New(apperrors.ErrCodeAccessDenied, "You don't have permission to delete this recipe")
	}

	if err := s.store.Delete(ctx, existing); err != nil {
		return err
	}
	s.metrics.RecipeDeleted()
	s.refreshCount(ctx)

	s.logger.Info("recipe deleted",
		zap.String("recipe_id", id.String()),
		zap.String("actor", actor.ID))
	return nil
}

// refreshCount updates the recipe count gauge. The mutation has already been
// committed, so a failed count is only logged.
func (s *RecipeService) refreshCount(ctx context.Context) {
	n, err := s.store.Count(ctx)
	if err != nil {
		s.logger.Warn("failed to count recipes", zap.Error(err))
		return
	}
	s.metrics.RecipeCount(n)
}
