package service

import (
	"context"

	"goldlink-backend/internal/authz"
	"goldlink-backend/internal/domain"
	"goldlink-backend/internal/logger"
	"goldlink-backend/internal/repository"
)

type adminService struct {
	users repository.UserRepository
}

func NewAdminService(users repository.UserRepository) AdminService {
	return &adminService{users: users}
}

func (s *adminService) ListUsers(ctx context.Context, actor authz.Actor) ([]domain.User, error) {
	if !authz.CanAdministerUsers(actor) {
		return nil, domain.Unauthorized("admin role required")
	}
	return s.users.List(ctx)
}

func (s *adminService) UpdateUser(ctx context.Context, actor authz.Actor, targetID int32, role domain.UserRole, verified *bool) (*domain.User, error) {
	if !authz.CanAdministerUsers(actor) {
		return nil, domain.Unauthorized("admin role required")
	}
	if role != "" {
		if !domain.ValidUserRole(role) {
			return nil, domain.Validationf("unknown role %q", role)
		}
		if !authz.CanChangeRole(actor, targetID, role) {
			return nil, domain.Unauthorized("admins cannot demote themselves")
		}
	}
	if role == "" && verified == nil {
		return nil, domain.Validation("nothing to update")
	}

	user, err := s.users.UpdateRoleAndVerified(ctx, targetID, role, verified)
	if err != nil {
		return nil, err
	}

	logger.Info("user updated by admin",
		"admin_id", actor.ID, "user_id", targetID, "role", user.Role, "verified", user.Verified)
	return user, nil
}

func (s *adminService) DeleteUser(ctx context.Context, actor authz.Actor, targetID int32) error {
	if !authz.CanAdministerUsers(actor) {
		return domain.Unauthorized("admin role required")
	}
	if !authz.CanDeleteUser(actor, targetID) {
		return domain.Unauthorized("admins cannot delete their own account")
	}

	if err := s.users.Delete(ctx, targetID); err != nil {
		return err
	}
	logger.Info("user deleted by admin", "admin_id", actor.ID, "user_id", targetID)
	return nil
}
