package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "ledgerspace/internal/errors"
	"ledgerspace/internal/models"
	"ledgerspace/internal/services"
)

// WorkspaceHandler handles workspace membership requests
type WorkspaceHandler struct {
	workspaceService services.WorkspaceServicer
}

// NewWorkspaceHandler creates a new WorkspaceHandler
func NewWorkspaceHandler(workspaceService services.WorkspaceServicer) *WorkspaceHandler {
	return &WorkspaceHandler{workspaceService: workspaceService}
}

// CreateWorkspaceRequest represents the workspace creation payload
type CreateWorkspaceRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// JoinWorkspaceRequest represents the join-by-code payload
type JoinWorkspaceRequest struct {
	Code string `json:"code" binding:"required,join_code"`
}

// WorkspaceResponse represents a workspace in responses
type WorkspaceResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Code      string `json:"code"`
	CreatedBy uint   `json:"created_by"`
}

// Create handles workspace creation
// @Summary     Create a workspace
// @Description Create a new shared workspace with a fresh invite code
// @Tags        workspaces
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateWorkspaceRequest true "Workspace data"
// @Success     201 {object} WorkspaceResponse "Workspace created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     409 {object} ErrorResponse "Could not generate invite code"
// @Router      /workspaces [post]
func (h *WorkspaceHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.workspaceService.CreateWorkspace(userID, req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}

	body := gin.H{"workspace": result.Workspace}
	if !result.OwnerAdded {
		body["warning"] = "workspace created but membership setup failed; join with the invite code to repair it"
	}
	c.JSON(http.StatusCreated, body)
}

// List returns the caller's workspaces
// @Summary     List workspaces
// @Description List the workspaces the authenticated user belongs to, newest first
// @Tags        workspaces
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} WorkspaceResponse "Workspaces"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /workspaces [get]
func (h *WorkspaceHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	workspaces, err := h.workspaceService.ListWorkspaces(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if workspaces == nil {
		workspaces = []models.Workspace{}
	}

	c.JSON(http.StatusOK, gin.H{"workspaces": workspaces})
}

// Join adds the caller to a workspace by invite code
// @Summary     Join a workspace
// @Description Join a workspace using its invite code; joining twice is a no-op
// @Tags        workspaces
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body JoinWorkspaceRequest true "Invite code"
// @Success     200 {object} WorkspaceResponse "Joined workspace"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "No workspace matches the code"
// @Failure     409 {object} ErrorResponse "Join failed"
// @Router      /workspaces/join [post]
func (h *WorkspaceHandler) Join(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req JoinWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	workspace, err := h.workspaceService.JoinWorkspace(userID, req.Code)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"workspace": workspace})
}

// GetActive returns the caller's active workspace
// @Summary     Get active workspace
// @Description Get the workspace the user last worked in, falling back to the newest membership
// @Tags        workspaces
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} WorkspaceResponse "Active workspace"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "No workspace memberships"
// @Router      /workspaces/active [get]
func (h *WorkspaceHandler) GetActive(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	workspace, err := h.workspaceService.ActiveWorkspace(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"workspace": workspace})
}

// SwitchActive sets the caller's active workspace
// @Summary     Switch active workspace
// @Description Set the active workspace to one the user already belongs to
// @Tags        workspaces
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Workspace ID"
// @Success     200 {object} WorkspaceResponse "New active workspace"
// @Failure     400 {object} ErrorResponse "Invalid workspace ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Workspace not found"
// @Router      /workspaces/{id}/switch [post]
func (h *WorkspaceHandler) SwitchActive(c *gin.Context) {
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

	workspace, err := h.workspaceService.SwitchWorkspace(userID, workspaceID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"workspace": workspace})
}

// GetMembers lists the workspace's members
// @Summary     List workspace members
// @Description List the members of a workspace the user belongs to, with profile fields
// @Tags        workspaces
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Workspace ID"
// @Success     200 {array} services.MemberInfo "Members"
// @Failure     400 {object} ErrorResponse "Invalid workspace ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Not a member"
// @Router      /workspaces/{id}/members [get]
func (h *WorkspaceHandler) GetMembers(c *gin.Context) {
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

	members, err := h.workspaceService.ListMembers(userID, workspaceID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"members": members})
}
