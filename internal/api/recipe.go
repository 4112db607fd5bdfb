package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/pageza/recipebook/backend/internal/apperrors"
	"github.com/pageza/recipebook/backend/internal/auth"
	"github.com/pageza/recipebook/backend/internal/logger"
	"github.com/pageza/recipebook/backend/internal/middleware"
	"github.com/pageza/recipebook/backend/internal/service"
	"github.com/pageza/recipebook/backend/internal/types"
)

type RecipeHandler struct {
	recipeService       service.IRecipeService
	creationLimiter     *middleware.RateLimiter
	modificationLimiter *middleware.RateLimiter
	logger              logger.Logger
}

func NewRecipeHandler(recipeService service.IRecipeService, log logger.Logger) *RecipeHandler {
	return &RecipeHandler{
		recipeService: recipeService,
		logger:        log,
	}
}

// NewRecipeHandlerWithRateLimit creates a RecipeHandler whose mutations are rate limited.
// Either limiter may be nil.
func NewRecipeHandlerWithRateLimit(recipeService service.IRecipeService, log logger.Logger, creation, modification *middleware.RateLimiter) *RecipeHandler {
	h := NewRecipeHandler(recipeService, log)
	h.creationLimiter = creation
	h.modificationLimiter = modification
	return h
}

// RegisterRoutes mounts the recipe endpoints on a group that already authenticates.
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/my-recipes", h.MyRecipes)
		recipes.GET("/:id", h.GetRecipe)
		recipes.POST("", limited(h.creationLimiter, h.CreateRecipe)...)
		recipes.PUT("/:id", limited(h.modificationLimiter, h.UpdateRecipe)...)
		recipes.DELETE("/:id", limited(h.modificationLimiter, h.DeleteRecipe)...)
		recipes.POST("/filter", h.FilterRecipes)
	}
}

func limited(limiter *middleware.RateLimiter, handler gin.HandlerFunc) []gin.HandlerFunc {
	if limiter == nil {
		return []gin.HandlerFunc{handler}
	}
	return []gin.HandlerFunc{limiter.Middleware(), handler}
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	recipes, err := h.recipeService.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

func (h *RecipeHandler) MyRecipes(c *gin.Context) {
	recipes, err := h.recipeService.GetMine(c.Request.Context(), actor(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}
	recipe, err := h.recipeService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	req, ok := bindRecipe(c)
	if !ok {
		return
	}
	recipe, err := h.recipeService.Create(c.Request.Context(), actor(c), req.ToModel())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, recipe)
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}
	req, ok := bindRecipe(c)
	if !ok {
		return
	}
	recipe, err := h.recipeService.Update(c.Request.Context(), actor(c), id, req.ToModel())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}
	if err := h.recipeService.Delete(c.Request.Context(), actor(c), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// FilterRecipes accepts an empty body as "no criteria".
func (h *RecipeHandler) FilterRecipes(c *gin.Context) {
	var req types.FilterRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		badRequest(c, "Malformed filter request", nil)
		return
	}
	recipes, err := h.recipeService.Filter(c.Request.Context(), req.ToModel())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

func actor(c *gin.Context) auth.Actor {
	a, _ := middleware.ActorFrom(c)
	return a
}

func recipeID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "Invalid recipe id", map[string]string{"id": "must be a UUID"})
		return uuid.Nil, false
	}
	return id, true
}

// bindRecipe decodes a recipe payload and reports every invalid field at once.
func bindRecipe(c *gin.Context) (*types.RecipeRequest, bool) {
	var req types.RecipeRequest
	err := c.ShouldBindJSON(&req)
	if err == nil {
		return &req, true
	}

	fields := bindingFields(err)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		badRequest(c, "Malformed recipe request", fields)
		return nil, false
	}

	// The payload decoded, so the domain rules can add what the tags do not cover.
	var verr *apperrors.Error
	if errors.As(service.ValidateRecipe(req.ToModel()), &verr) {
		for k, v := range verr.Fields {
			if _, taken := fields[k]; !taken {
				fields[k] = v
			}
		}
	}
	badRequest(c, "validation failed", fields)
	return nil, false
}
