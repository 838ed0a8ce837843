package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "ledgerspace/internal/errors"
	"ledgerspace/internal/models"
	"ledgerspace/internal/services"
)

// StatsHandler handles workspace aggregation requests
type StatsHandler struct {
	statsService services.StatsServicer
}

// NewStatsHandler creates a new StatsHandler
func NewStatsHandler(statsService services.StatsServicer) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// statsCategoriesQuery represents the category breakdown query parameters
type statsCategoriesQuery struct {
	Type string `form:"type" binding:"required,transaction_type"`
}

// statsMonthlyQuery represents the monthly series query parameters
type statsMonthlyQuery struct {
	Months int `form:"months" binding:"omitempty,min=1,max=24"`
}

// Summary returns a workspace's aggregate balances
// @Summary     Workspace summary
// @Description Net balance, total income, and total expense over the workspace's full history
// @Tags        stats
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Workspace ID"
// @Success     200 {object} services.WorkspaceSummary "Summary"
// @Failure     400 {object} ErrorResponse "Invalid workspace ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Not a member"
// @Router      /workspaces/{id}/stats/summary [get]
func (h *StatsHandler) Summary(c *gin.Context) {
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

	summary, err := h.statsService.Summary(userID, workspaceID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// Categories returns per-category totals for one transaction type
// @Summary     Category breakdown
// @Description Per-category totals for income or expense, largest first
// @Tags        stats
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Workspace ID"
// @Param       type query string true "Transaction type (income or expense)"
// @Success     200 {array} stats.CategoryTotal "Category totals"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Not a member"
// @Router      /workspaces/{id}/stats/categories [get]
func (h *StatsHandler) Categories(c *gin.Context) {
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

	var query statsCategoriesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	totals, err := h.statsService.Categories(userID, workspaceID, models.TransactionType(query.Type))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": totals})
}

// Monthly returns a trailing monthly income/expense series
// @Summary     Monthly series
// @Description Income and expense totals for the trailing calendar months, oldest first
// @Tags        stats
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Workspace ID"
// @Param       months query int false "Number of trailing months (default 6, max 24)"
// @Success     200 {array} stats.MonthBucket "Monthly totals"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Not a member"
// @Router      /workspaces/{id}/stats/monthly [get]
func (h *StatsHandler) Monthly(c *gin.Context) {
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

	var query statsMonthlyQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	buckets, err := h.statsService.Monthly(userID, workspaceID, query.Months)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"months": buckets})
}
