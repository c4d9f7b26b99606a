package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"prompt-server/internal/interfaces"
	"prompt-server/internal/service"
)

// Validation constants for registration input.
const (
	minNameLength     = 1
	maxNameLength     = 255
	minPasswordLength = 8
	maxPasswordLength = 100
	maxSlugLength     = 100
)

// AuthHandler handles HTTP requests related to authentication and accounts.
type AuthHandler struct {
	authService service.AuthService
	userRepo    interfaces.UserRepository
	logger      *zap.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService, userRepo interfaces.UserRepository, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		userRepo:    userRepo,
		logger:      logger.Named("AuthHandler"),
	}
}

// RegisterRoutes attaches the auth endpoints. rateLimiter guards the
// credential endpoints; pass nil to skip rate limiting (tests).
func (h *AuthHandler) RegisterRoutes(router gin.IRouter, rateLimiter gin.HandlerFunc) {
	auth := router.Group("/auth")
	if rateLimiter != nil {
		auth.POST("/register", rateLimiter, h.register)
		auth.POST("/login", rateLimiter, h.login)
	} else {
		auth.POST("/register", h.register)
		auth.POST("/login", h.login)
	}
	auth.POST("/refresh", h.refresh)

	authed := auth.Group("", h.AuthMiddleware())
	authed.POST("/logout", h.logout)
	authed.GET("/me", h.me)
}

// PromptHandler handles HTTP requests for prompt content and versioning.
type PromptHandler struct {
	promptService service.PromptService
	logger        *zap.Logger
}

// NewPromptHandler creates a new PromptHandler.
func NewPromptHandler(promptService service.PromptService, logger *zap.Logger) *PromptHandler {
	return &PromptHandler{
		promptService: promptService,
		logger:        logger.Named("PromptHandler"),
	}
}

// RegisterRoutes attaches the prompt endpoints. The content read path sits
// behind authMiddleware; the editor endpoints additionally require a
// superuser.
func (h *PromptHandler) RegisterRoutes(router gin.IRouter, authMiddleware, adminMiddleware gin.HandlerFunc) {
	api := router.Group("/api", authMiddleware)
	api.GET("/prompts/:slug/content", h.getContent)

	admin := router.Group("/admin", authMiddleware, adminMiddleware)
	admin.GET("/prompts", h.listPrompts)
	admin.GET("/prompts/:id", h.getPromptDetails)
	admin.POST("/prompts/commit", h.saveCommit)
	admin.POST("/prompts/activate", h.activateVersion)
}

// UserAdminHandler handles administrative user management endpoints.
type UserAdminHandler struct {
	userRepo    interfaces.UserRepository
	authService service.AuthService
	logger      *zap.Logger
}

// NewUserAdminHandler creates a new UserAdminHandler.
func NewUserAdminHandler(userRepo interfaces.UserRepository, authService service.AuthService, logger *zap.Logger) *UserAdminHandler {
	return &UserAdminHandler{
		userRepo:    userRepo,
		authService: authService,
		logger:      logger.Named("UserAdminHandler"),
	}
}

// RegisterRoutes attaches the user admin endpoints.
func (h *UserAdminHandler) RegisterRoutes(router gin.IRouter, authMiddleware, adminMiddleware gin.HandlerFunc) {
	admin := router.Group("/admin/users", authMiddleware, adminMiddleware)
	admin.GET("", h.listUsers)
	admin.PATCH("/:id", h.updateUser)
	admin.DELETE("/:id", h.deleteUser)
}
