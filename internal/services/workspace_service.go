package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "ledgerspace/internal/errors"
	"ledgerspace/internal/joincode"
	"ledgerspace/internal/logger"
	"ledgerspace/internal/models"
)

const (
	// codeGenMaxAttempts caps invite-code regeneration when an insert hits
	// the unique index on workspaces.code.
	codeGenMaxAttempts = 5

	// joinMaxAttempts and joinRetryDelay bound the membership-insert retry
	// that absorbs transient permission-check races. The retry is safe only
	// because the insert is idempotent under the (workspace, user) unique
	// index.
	joinMaxAttempts         = 2
	defaultJoinRetryDelay   = 500 * time.Millisecond
	defaultPersonalWorkName = "Personal Workspace"
)

// workspaceService handles workspace membership business logic.
type workspaceService struct {
	db             *gorm.DB
	joinRetryDelay time.Duration
}

// NewWorkspaceService creates a new WorkspaceServicer.
func NewWorkspaceService(db *gorm.DB) WorkspaceServicer {
	return &workspaceService{db: db, joinRetryDelay: defaultJoinRetryDelay}
}

// CreateWorkspace creates a workspace with a fresh invite code and adds the
// creator as owner. The two inserts are deliberately not one transaction:
// a failed owner insert leaves a usable workspace behind, so the result
// carries OwnerAdded=false instead of rolling back, and the join path can
// repair the membership later.
func (s *workspaceService) CreateWorkspace(userID uint, name string) (*CreateWorkspaceResult, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "workspace name is required")
	}

	workspace, err := s.insertWithUniqueCode(userID, name)
	if err != nil {
		return nil, err
	}

	result := &CreateWorkspaceResult{Workspace: workspace, OwnerAdded: true}

	member := &models.WorkspaceMember{
		WorkspaceID: workspace.ID,
		UserID:      userID,
		Role:        models.MemberRoleOwner,
		JoinedAt:    time.Now(),
	}
	if err := s.db.Create(member).Error; err != nil {
		logger.Get().Warnw("workspace created but owner membership insert failed",
			"workspace_id", workspace.ID,
			"user_id", userID,
			"error", err.Error(),
		)
		result.OwnerAdded = false
	}

	s.setActive(userID, workspace.ID)
	return result, nil
}

// insertWithUniqueCode inserts the workspace row, regenerating the invite
// code on a unique-index collision.
func (s *workspaceService) insertWithUniqueCode(userID uint, name string) (*models.Workspace, error) {
	for attempt := 0; attempt < codeGenMaxAttempts; attempt++ {
		code, err := joincode.New()
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		workspace := &models.Workspace{
			Name:      name,
			Code:      code,
			CreatedBy: userID,
		}
		err = s.db.Create(workspace).Error
		if err == nil {
			return workspace, nil
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			continue
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil, apperrors.ErrCodeGeneration
}

// CreatePersonalWorkspace creates a workspace named after the user's
// profile, used when a user records a transaction with no workspace yet.
func (s *workspaceService) CreatePersonalWorkspace(userID uint) (*models.Workspace, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	name := defaultPersonalWorkName
	if user.FirstName != "" {
		name = user.FirstName + "'s Workspace"
	}

	result, err := s.CreateWorkspace(userID, name)
	if err != nil {
		return nil, err
	}
	return result.Workspace, nil
}

// EnsureWorkspace resolves the caller's active workspace, provisioning a
// personal workspace when the user belongs to none. Idempotent: a second
// call returns the same workspace without creating another.
func (s *workspaceService) EnsureWorkspace(userID uint) (*models.Workspace, error) {
	workspace, err := s.ActiveWorkspace(userID)
	if err == nil {
		return workspace, nil
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Code == apperrors.ErrNoActiveWorkspace.Code {
		return s.CreatePersonalWorkspace(userID)
	}
	return nil, err
}

// ListWorkspaces returns the workspaces the user belongs to, newest-created
// first.
func (s *workspaceService) ListWorkspaces(userID uint) ([]models.Workspace, error) {
	var workspaces []models.Workspace
	err := s.db.
		Joins("JOIN workspace_members ON workspace_members.workspace_id = workspaces.id").
		Where("workspace_members.user_id = ?", userID).
		Order("workspaces.created_at DESC").
		Find(&workspaces).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return workspaces, nil
}

// JoinWorkspace adds the user to the workspace matching the invite code.
// Joining a workspace the user already belongs to is success: the active
// workspace switches and no second membership row is created. A
// duplicate-key failure on insert means a concurrent join won the race and
// is treated the same way. Other insert failures are retried up to
// joinMaxAttempts with a fixed delay before surfacing.
func (s *workspaceService) JoinWorkspace(userID uint, code string) (*models.Workspace, error) {
	normalized := joincode.Normalize(code)
	if !joincode.IsValid(normalized) {
		return nil, apperrors.ErrInvalidJoinCode
	}

	var workspace models.Workspace
	if err := s.db.Where("code = ?", normalized).First(&workspace).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidJoinCode
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.RequireMember(userID, workspace.ID); err == nil {
		s.setActive(userID, workspace.ID)
		return &workspace, nil
	}

	member := &models.WorkspaceMember{
		WorkspaceID: workspace.ID,
		UserID:      userID,
		Role:        models.MemberRoleMember,
		JoinedAt:    time.Now(),
	}

	var lastErr error
	for attempt := 0; attempt < joinMaxAttempts; attempt++ {
		if attempt > 0 {
			time.Sleep(s.joinRetryDelay)
		}
		err := s.db.Create(member).Error
		if err == nil {
			s.setActive(userID, workspace.ID)
			return &workspace, nil
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Already a member; idempotent success.
			s.setActive(userID, workspace.ID)
			return &workspace, nil
		}
		lastErr = err
		logger.Get().Warnw("workspace join attempt failed",
			"workspace_id", workspace.ID,
			"user_id", userID,
			"attempt", attempt+1,
			"error", err.Error(),
		)
	}
	return nil, apperrors.Wrap(apperrors.ErrJoinFailed, lastErr)
}

// SwitchWorkspace sets the user's active workspace to one they already
// belong to. An unknown or foreign workspace id leaves the stored value
// unchanged.
func (s *workspaceService) SwitchWorkspace(userID, workspaceID uint) (*models.Workspace, error) {
	if err := s.RequireMember(userID, workspaceID); err != nil {
		return nil, apperrors.ErrWorkspaceNotFound
	}

	var workspace models.Workspace
	if err := s.db.First(&workspace, workspaceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrWorkspaceNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.setActive(userID, workspace.ID)
	return &workspace, nil
}

// ActiveWorkspace resolves the user's active workspace: the persisted
// last-active id when it is still in the membership list, otherwise the
// most recently created workspace the user belongs to.
func (s *workspaceService) ActiveWorkspace(userID uint) (*models.Workspace, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	workspaces, err := s.ListWorkspaces(userID)
	if err != nil {
		return nil, err
	}
	if len(workspaces) == 0 {
		return nil, apperrors.ErrNoActiveWorkspace
	}

	if user.LastWorkspaceID != nil {
		for i := range workspaces {
			if workspaces[i].ID == *user.LastWorkspaceID {
				return &workspaces[i], nil
			}
		}
	}
	return &workspaces[0], nil
}

// ListMembers returns the workspace's membership rows joined with profile
// display fields. Members only.
func (s *workspaceService) ListMembers(userID, workspaceID uint) ([]MemberInfo, error) {
	if err := s.RequireMember(userID, workspaceID); err != nil {
		return nil, err
	}

	var members []MemberInfo
	err := s.db.Table("workspace_members").
		Select("workspace_members.id, workspace_members.workspace_id, workspace_members.user_id, workspace_members.role, workspace_members.joined_at, users.first_name, users.last_name, users.email").
		Joins("JOIN users ON users.id = workspace_members.user_id").
		Where("workspace_members.workspace_id = ?", workspaceID).
		Order("workspace_members.joined_at ASC").
		Scan(&members).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return members, nil
}

// RequireMember returns ErrNotWorkspaceMember unless a membership row
// exists for the (user, workspace) pair.
func (s *workspaceService) RequireMember(userID, workspaceID uint) error {
	var count int64
	if err := s.db.Model(&models.WorkspaceMember{}).
		Where("workspace_id = ? AND user_id = ?", workspaceID, userID).
		Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return apperrors.ErrNotWorkspaceMember
	}
	return nil
}

// setActive persists the active-workspace choice on the user row. Failures
// only cost the next session its restored selection, so they are logged
// and swallowed.
func (s *workspaceService) setActive(userID, workspaceID uint) {
	if err := s.db.Model(&models.User{}).Where("id = ?", userID).
		Update("last_workspace_id", workspaceID).Error; err != nil {
		logger.Get().Warnw("failed to persist active workspace",
			"user_id", userID,
			"workspace_id", workspaceID,
			"error", err.Error(),
		)
	}
}
