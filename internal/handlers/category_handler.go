package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ledgerspace/internal/models"
)

// CategoryHandler serves the default category suggestion lists.
type CategoryHandler struct{}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler() *CategoryHandler {
	return &CategoryHandler{}
}

// Defaults returns the suggested categories per transaction type
// @Summary     Default categories
// @Description Suggested category lists for income and expense entry forms
// @Tags        categories
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string][]string "Default categories"
// @Router      /categories/defaults [get]
func (h *CategoryHandler) Defaults(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"income":  models.DefaultIncomeCategories,
		"expense": models.DefaultExpenseCategories,
	})
}
