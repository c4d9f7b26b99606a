package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"prompt-server/internal/models"
)

// Context keys set by the auth middleware.
const (
	ctxKeyUserID     = "user_id"
	ctxKeyAccessUUID = "access_uuid"
)

// getUserID extracts the authenticated user id placed by AuthMiddleware.
func getUserID(c *gin.Context) (uuid.UUID, bool) {
	val, exists := c.Get(ctxKeyUserID)
	if !exists {
		return uuid.Nil, false
	}
	userID, ok := val.(uuid.UUID)
	return userID, ok
}

// AuthMiddleware verifies the bearer access token and stores the user
// identity on the request context.
func (h *AuthHandler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			h.logger.Warn("Authorization header missing")
			tokenVerificationsTotal.WithLabelValues("access", "failure").Inc()
			handleServiceError(c, models.ErrTokenInvalid)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			h.logger.Warn("Invalid Authorization header format")
			tokenVerificationsTotal.WithLabelValues("access", "failure").Inc()
			handleServiceError(c, models.ErrTokenInvalid)
			return
		}

		claims, err := h.authService.VerifyAccessToken(c.Request.Context(), parts[1])
		if err != nil {
			h.logger.Warn("Access token verification failed", zap.Error(err))
			tokenVerificationsTotal.WithLabelValues("access", "failure").Inc()
			handleServiceError(c, err)
			return
		}

		tokenVerificationsTotal.WithLabelValues("access", "success").Inc()
		c.Set(ctxKeyUserID, claims.UserID)
		c.Set(ctxKeyAccessUUID, claims.ID)
		c.Next()
	}
}

// RequireSuperuser allows only superuser accounts through. Must run after
// AuthMiddleware.
func (h *AuthHandler) RequireSuperuser() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := getUserID(c)
		if !ok {
			handleServiceError(c, models.ErrTokenInvalid)
			return
		}

		user, err := h.userRepo.GetUserByID(c.Request.Context(), userID)
		if err != nil {
			handleServiceError(c, err)
			return
		}
		if !user.IsSuperuser || user.IsDeleted {
			h.logger.Warn("Non-superuser attempted admin access", zap.String("userID", userID.String()))
			c.AbortWithStatusJSON(http.StatusForbidden, models.ErrorResponse{Code: models.ErrCodeForbidden, Message: "Superuser access required"})
			return
		}

		c.Next()
	}
}
