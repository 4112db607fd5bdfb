package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipebook/backend/internal/logger"
	"github.com/pageza/recipebook/backend/internal/service"
	"github.com/pageza/recipebook/backend/internal/types"
)

type AuthHandler struct {
	authService service.IAuthService
	logger      logger.Logger
}

func NewAuthHandler(authService service.IAuthService, log logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      log,
	}
}

// RegisterRoutes mounts the public authentication endpoints.
func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/signup", h.Signup)
		auth.POST("/login", h.Login)
	}
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req types.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid signup request", bindingFields(err))
		return
	}

	if _, err := h.authService.Register(c.Request.Context(), req.Username, req.Email, req.Password); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, types.MessageResponse{Message: "User registered successfully!"})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req types.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid login request", bindingFields(err))
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
