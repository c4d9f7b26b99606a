package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"prompt-server/internal/models"
)

// @Summary Resolve current prompt content by slug
// @Description Read-through cached content used by agent instruction loading.
// @Tags prompts
// @Security BearerAuth
// @Produce json
// @Success 200 {object} contentResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/prompts/{slug}/content [get]
func (h *PromptHandler) getContent(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" || len(slug) > maxSlugLength {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: "Invalid slug"})
		return
	}

	content, err := h.promptService.GetCachedContent(c.Request.Context(), slug)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, contentResponse{Slug: slug, Content: content})
}

// @Summary List all prompts
// @Tags prompts
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.Prompt
// @Router /admin/prompts [get]
func (h *PromptHandler) listPrompts(c *gin.Context) {
	prompts, err := h.promptService.GetAllForAdmin(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, prompts)
}

// @Summary Prompt details with version history
// @Tags prompts
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Prompt
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/prompts/{id} [get]
func (h *PromptHandler) getPromptDetails(c *gin.Context) {
	promptID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: "Invalid prompt id"})
		return
	}

	prompt, err := h.promptService.GetDetails(c.Request.Context(), promptID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, prompt)
}

// @Summary Commit a new prompt version
// @Description Creates the prompt on first commit for a new slug; otherwise appends the next version and activates it.
// @Tags prompts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body commitRequest true "Commit data"
// @Success 200 {object} map[string]string
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /admin/prompts/commit [post]
func (h *PromptHandler) saveCommit(c *gin.Context) {
	var req commitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: "Invalid request body: " + err.Error()})
		return
	}
	if len(req.Slug) > maxSlugLength {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: "Slug is too long"})
		return
	}

	commit := models.CommitRequest{
		Slug:          req.Slug,
		Name:          req.Name,
		Content:       req.Content,
		CommitMessage: req.CommitMessage,
	}

	if req.PromptID != "" {
		promptID, err := uuid.Parse(req.PromptID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: "Invalid prompt id"})
			return
		}
		commit.PromptID = &promptID
	}

	if userID, ok := getUserID(c); ok {
		commit.AuthorID = &userID
	}

	promptID, err := h.promptService.SaveCommit(c.Request.Context(), commit)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"promptId": promptID.String()})
}

// @Summary Activate a historical prompt version
// @Description Rollback primitive: re-marks a version active without renumbering or deleting anything.
// @Tags prompts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body activateVersionRequest true "Activation data"
// @Success 200 {object} map[string]bool
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/prompts/activate [post]
func (h *PromptHandler) activateVersion(c *gin.Context) {
	var req activateVersionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: "Invalid request body: " + err.Error()})
		return
	}

	versionID, err := uuid.Parse(req.VersionID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: "Invalid version id"})
		return
	}
	promptID, err := uuid.Parse(req.PromptID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: "Invalid prompt id"})
		return
	}

	activated, err := h.promptService.ActivateVersion(c.Request.Context(), versionID, promptID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if !activated {
		c.AbortWithStatusJSON(http.StatusNotFound, models.ErrorResponse{Code: models.ErrCodePromptNotFound, Message: "Version or prompt not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"activated": true})
}
