package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/waste_approval_app/internal/core/ports/services"
	"github.com/SscSPs/waste_approval_app/internal/dto"
	"github.com/SscSPs/waste_approval_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// wasteEntryHandler handles HTTP requests for waste entries and their approval workflow.
type wasteEntryHandler struct {
	workflowService portssvc.WorkflowSvcFacade
}

// newWasteEntryHandler creates a new wasteEntryHandler.
func newWasteEntryHandler(ws portssvc.WorkflowSvcFacade) *wasteEntryHandler {
	return &wasteEntryHandler{
		workflowService: ws,
	}
}

// RegisterWasteEntryRoutes registers routes related to waste entries.
func RegisterWasteEntryRoutes(rg *gin.RouterGroup, workflowService portssvc.WorkflowSvcFacade) {
	registerValidators()
	h := newWasteEntryHandler(workflowService)

	entries := rg.Group("/waste-entries")
	{
		entries.POST("", h.submitEntry)
		entries.GET("/approvals", h.listApprovableEntries)
		entries.GET("/:entryID", h.getEntry)
		entries.PUT("/:entryID/decision", h.decideEntry)
		entries.PUT("/:entryID/form-approval", h.setFormApproval)
	}
}

// submitEntry godoc
// @Summary Submit a waste entry
// @Description Records a waste entry and seeds one pending approval per active level. Any authenticated role may submit.
// @Tags waste-entries
// @Accept  json
// @Produce  json
// @Param   entry body dto.CreateWasteEntryRequest true "Waste entry"
// @Success 201 {object} dto.WasteEntryResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to submit waste entry"
// @Security BearerAuth
// @Router /waste-entries [post]
func (h *wasteEntryHandler) submitEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		logger.Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateWasteEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SubmitEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("line_id", req.LineID), slog.String("product_id", req.ProductID))
	entry, err := h.workflowService.SubmitEntry(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, logger, err, "Failed to submit waste entry")
		return
	}

	logger.Info("Waste entry submitted", slog.String("entry_id", entry.EntryID), slog.Int("current_approval_level", entry.CurrentApprovalLevel))
	c.JSON(http.StatusCreated, dto.ToWasteEntryResponse(entry))
}

// listApprovableEntries godoc
// @Summary List entries in the approval queue
// @Description Admins see every entry; other users see entries sitting at a level they are assigned to. Each row carries canApprove.
// @Tags waste-entries
// @Produce  json
// @Param   status query string false "pending, approved, rejected or all" default(pending)
// @Success 200 {array} dto.WasteEntryResponse
// @Failure 400 {object} map[string]string "Invalid status filter"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list waste entries"
// @Security BearerAuth
// @Router /waste-entries/approvals [get]
func (h *wasteEntryHandler) listApprovableEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		logger.Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.ListApprovableParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListApprovableEntries", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	views, err := h.workflowService.ListApprovableEntries(c.Request.Context(), actor, params.Status)
	if err != nil {
		respondError(c, logger, err, "Failed to list waste entries")
		return
	}

	logger.Info("Approvable entries listed", slog.String("status", params.Status), slog.Int("count", len(views)))
	c.JSON(http.StatusOK, dto.ToListWasteEntryViewResponse(views))
}

// getEntry godoc
// @Summary Get a waste entry
// @Description Returns one entry with its per-level approval rows.
// @Tags waste-entries
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Success 200 {object} dto.WasteEntryResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 500 {object} map[string]string "Failed to retrieve waste entry"
// @Security BearerAuth
// @Router /waste-entries/{entryID} [get]
func (h *wasteEntryHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		logger.Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("entry_id", entryID))
	view, err := h.workflowService.GetEntry(c.Request.Context(), actor, entryID)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve waste entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToWasteEntryViewResponse(view))
}

// decideEntry godoc
// @Summary Approve or reject an entry at its current level
// @Description Records the decision on the current level's approval row, then advances, approves or rejects the entry. Admins and assigned approvers only.
// @Tags waste-entries
// @Accept  json
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Param   decision body dto.DecisionRequest true "Decision"
// @Success 200 {object} dto.DecisionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not allowed to decide at this level"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry already finalized or decided concurrently"
// @Failure 500 {object} map[string]string "Failed to record decision"
// @Security BearerAuth
// @Router /waste-entries/{entryID}/decision [put]
func (h *wasteEntryHandler) decideEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		logger.Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Decide", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("entry_id", entryID), slog.String("decision", req.Decision))
	result, err := h.workflowService.Decide(c.Request.Context(), actor, entryID, req)
	if err != nil {
		respondError(c, logger, err, "Failed to record decision")
		return
	}

	logger.Info("Decision recorded", slog.String("approval_status", string(result.ApprovalStatus)))
	c.JSON(http.StatusOK, dto.ToDecisionResponse(result))
}

// setFormApproval godoc
// @Summary Set or clear form approval
// @Description Toggles the form approval flag of an app-approved entry. Admins and the line's form approver only.
// @Tags waste-entries
// @Accept  json
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Param   formApproval body dto.FormApprovalRequest true "Form approval flag"
// @Success 200 {object} dto.WasteEntryResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not the line's form approver"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry modified concurrently"
// @Failure 412 {object} map[string]string "Entry is not app-approved yet"
// @Failure 500 {object} map[string]string "Failed to set form approval"
// @Security BearerAuth
// @Router /waste-entries/{entryID}/form-approval [put]
func (h *wasteEntryHandler) setFormApproval(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		logger.Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.FormApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SetFormApproval", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("entry_id", entryID), slog.Bool("approved", *req.Approved))
	entry, err := h.workflowService.SetFormApproval(c.Request.Context(), actor, entryID, *req.Approved)
	if err != nil {
		respondError(c, logger, err, "Failed to set form approval")
		return
	}

	logger.Info("Form approval updated")
	c.JSON(http.StatusOK, dto.ToWasteEntryResponse(entry))
}
