package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/waste_approval_app/internal/core/ports/services"
	"github.com/SscSPs/waste_approval_app/internal/dto"
	"github.com/SscSPs/waste_approval_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// approvalLevelHandler handles HTTP requests that configure the approval ladder.
type approvalLevelHandler struct {
	levelService portssvc.ApprovalLevelSvcFacade
}

// newApprovalLevelHandler creates a new approvalLevelHandler.
func newApprovalLevelHandler(ls portssvc.ApprovalLevelSvcFacade) *approvalLevelHandler {
	return &approvalLevelHandler{
		levelService: ls,
	}
}

// RegisterApprovalLevelRoutes registers routes related to approval levels and their approvers.
func RegisterApprovalLevelRoutes(rg *gin.RouterGroup, levelService portssvc.ApprovalLevelSvcFacade) {
	registerValidators()
	h := newApprovalLevelHandler(levelService)

	levels := rg.Group("/approval-levels")
	{
		levels.GET("", h.listLevels)
		levels.POST("", h.createLevel)
		levels.PUT("/:levelID", h.updateLevel)
		levels.DELETE("/:levelID", h.deleteLevel)
		levels.POST("/:levelID/approvers", h.assignApprover)
		levels.DELETE("/assignments/:assignmentID", h.removeAssignment)
	}
}

// listLevels godoc
// @Summary List approval levels
// @Description Lists every approval level ascending by order, each with its assigned approvers. Admin only.
// @Tags approval-levels
// @Produce  json
// @Success 200 {array} dto.ApprovalLevelResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to list approval levels"
// @Security BearerAuth
// @Router /approval-levels [get]
func (h *approvalLevelHandler) listLevels(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		logger.Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	levels, err := h.levelService.ListLevels(c.Request.Context(), actor)
	if err != nil {
		respondError(c, logger, err, "Failed to list approval levels")
		return
	}

	logger.Info("Approval levels listed", slog.Int("count", len(levels)))
	c.JSON(http.StatusOK, dto.ToListApprovalLevelResponse(levels))
}

// createLevel godoc
// @Summary Create an approval level
// @Description Appends a level at the end of the approval ladder. Unknown approval types fall back to sequential. Admin only.
// @Tags approval-levels
// @Accept  json
// @Produce  json
// @Param   level body dto.CreateApprovalLevelRequest true "Level details"
// @Success 201 {object} dto.ApprovalLevelResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to create approval level"
// @Security BearerAuth
// @Router /approval-levels [post]
func (h *approvalLevelHandler) createLevel(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		logger.Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateApprovalLevelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateLevel", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	level, err := h.levelService.CreateLevel(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, logger, err, "Failed to create approval level")
		return
	}

	logger.Info("Approval level created", slog.String("level_id", level.LevelID), slog.Int("level_order", level.LevelOrder))
	c.JSON(http.StatusCreated, dto.ToApprovalLevelResponse(level))
}

// updateLevel godoc
// @Summary Update an approval level
// @Description Applies a partial update (name, localized name, approval type, active flag). Admin only.
// @Tags approval-levels
// @Accept  json
// @Produce  json
// @Param   levelID path string true "Level ID"
// @Param   level body dto.UpdateApprovalLevelRequest true "Fields to update"
// @Success 200 {object} dto.ApprovalLevelResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Level not found"
// @Failure 409 {object} map[string]string "Level modified concurrently"
// @Failure 500 {object} map[string]string "Failed to update approval level"
// @Security BearerAuth
// @Router /approval-levels/{levelID} [put]
func (h *approvalLevelHandler) updateLevel(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	levelID := c.Param("levelID")
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		logger.Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.UpdateApprovalLevelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateLevel", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("level_id", levelID))
	level, err := h.levelService.UpdateLevel(c.Request.Context(), actor, levelID, req)
	if err != nil {
		respondError(c, logger, err, "Failed to update approval level")
		return
	}

	logger.Info("Approval level updated")
	c.JSON(http.StatusOK, dto.ToApprovalLevelResponse(level))
}

// deleteLevel godoc
// @Summary Delete an approval level
// @Description Hard-deletes a level and its assignments. Ledger rows of existing entries are kept. Admin only.
// @Tags approval-levels
// @Param   levelID path string true "Level ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to delete approval level"
// @Security BearerAuth
// @Router /approval-levels/{levelID} [delete]
func (h *approvalLevelHandler) deleteLevel(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	levelID := c.Param("levelID")
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		logger.Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("level_id", levelID))
	if err := h.levelService.DeleteLevel(c.Request.Context(), actor, levelID); err != nil {
		respondError(c, logger, err, "Failed to delete approval level")
		return
	}

	logger.Info("Approval level deleted")
	c.Status(http.StatusNoContent)
}

// assignApprover godoc
// @Summary Assign an approver to a level
// @Description Assigns a user as approver of a level. Admin only.
// @Tags approval-levels
// @Accept  json
// @Produce  json
// @Param   levelID path string true "Level ID"
// @Param   assignment body dto.AssignApproverRequest true "User to assign"
// @Success 201 {object} dto.LevelApproverResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Level not found"
// @Failure 409 {object} map[string]string "User already assigned"
// @Failure 500 {object} map[string]string "Failed to assign approver"
// @Security BearerAuth
// @Router /approval-levels/{levelID}/approvers [post]
func (h *approvalLevelHandler) assignApprover(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	levelID := c.Param("levelID")
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		logger.Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.AssignApproverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AssignApprover", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("level_id", levelID), slog.String("approver_user_id", req.UserID))
	approver, err := h.levelService.AssignApprover(c.Request.Context(), actor, levelID, req)
	if err != nil {
		respondError(c, logger, err, "Failed to assign approver")
		return
	}

	logger.Info("Approver assigned", slog.String("assignment_id", approver.AssignmentID))
	c.JSON(http.StatusCreated, dto.ToLevelApproverResponse(*approver))
}

// removeAssignment godoc
// @Summary Remove an approver assignment
// @Description Removes an approver from a level. Removing a missing assignment succeeds. Admin only.
// @Tags approval-levels
// @Param   assignmentID path string true "Assignment ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to remove assignment"
// @Security BearerAuth
// @Router /approval-levels/assignments/{assignmentID} [delete]
func (h *approvalLevelHandler) removeAssignment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	assignmentID := c.Param("assignmentID")
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		logger.Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("assignment_id", assignmentID))
	if err := h.levelService.RemoveAssignment(c.Request.Context(), actor, assignmentID); err != nil {
		respondError(c, logger, err, "Failed to remove assignment")
		return
	}

	logger.Info("Assignment removed")
	c.Status(http.StatusNoContent)
}
