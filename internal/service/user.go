package service

import (
	"context"
	"log/slog"

	"github.com/zenstudio/booking-api/internal/core"
	"github.com/zenstudio/booking-api/internal/domain/auth"
	"github.com/zenstudio/booking-api/internal/domain/model"
	apperrors "github.com/zenstudio/booking-api/internal/errors"
)

// UserService exposes account lookup and deletion.
type UserService struct {
	users  core.UserRepository
	logger *slog.Logger
}

// UserServiceOptions configures a UserService.
type UserServiceOptions struct {
	Users  core.UserRepository
	Logger *slog.Logger
}

// NewUserService creates a UserService from the given options.
func NewUserService(opts UserServiceOptions) *UserService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &UserService{users: opts.Users, logger: logger.With("component", "user_service")}
}

// Get retrieves a user by id.
func (s *UserService) Get(ctx context.Context, id string) (*model.User, error) {
	return s.users.GetByID(ctx, id)
}

// Delete removes an account. Only the account owner or an admin may delete it.
func (s *UserService) Delete(ctx context.Context, principal *auth.Principal, id string) error {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !principal.CanManage(user.ID) {
		return apperrors.Forbidden("cannot delete another user's account")
	}

	deleted, err := s.users.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.NotFound("user not found")
	}
	s.logger.InfoContext(ctx, "user deleted", "user_id", id, "deleted_by", principal.UserID)
	return nil
}
