package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"prompt-server/internal/models"
)

// @Summary List users with pagination
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} listUsersResponse
// @Router /admin/users [get]
func (h *UserAdminHandler) listUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "10"))
	includeDeleted := c.Query("includeDeleted") == "true"

	users, total, err := h.userRepo.ListUsers(c.Request.Context(), page, pageSize, includeDeleted)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, listUsersResponse{
		Users:    users,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

// @Summary Update a user
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 200 {object} models.User
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/users/{id} [patch]
func (h *UserAdminHandler) updateUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: "Invalid user id"})
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: "Invalid request body: " + err.Error()})
		return
	}

	user, err := h.userRepo.UpdateUser(c.Request.Context(), userID, models.UserUpdate{
		Name:        req.Name,
		Email:       req.Email,
		IsSuperuser: req.IsSuperuser,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	// Password changes go through the auth service so they pick up the pepper.
	if req.Password != nil {
		if err := h.authService.UpdatePassword(c.Request.Context(), userID, *req.Password); err != nil {
			handleServiceError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, user)
}

// @Summary Soft delete a user
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/users/{id} [delete]
func (h *UserAdminHandler) deleteUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: "Invalid user id"})
		return
	}

	if err := h.userRepo.SoftDeleteUser(c.Request.Context(), userID); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}
