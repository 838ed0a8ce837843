package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "ledgerspace/internal/errors"
	"ledgerspace/internal/pagination"
	"ledgerspace/internal/services"
)

// LogHandler handles audit-trail requests
type LogHandler struct {
	auditService services.AuditServicer
}

// NewLogHandler creates a new LogHandler
func NewLogHandler(auditService services.AuditServicer) *LogHandler {
	return &LogHandler{auditService: auditService}
}

// List returns a page of a workspace's audit trail
// @Summary     List activity logs
// @Description List a workspace's transaction audit trail, newest first
// @Tags        logs
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Workspace ID"
// @Param       page query int false "Page number (default 1)"
// @Param       page_size query int false "Page size (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.TransactionLog] "Audit trail page"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Not a member"
// @Router      /workspaces/{id}/logs [get]
func (h *LogHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	workspaceID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	logs, err := h.auditService.ListWorkspaceLogs(userID, workspaceID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, logs)
}
