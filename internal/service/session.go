package service

import (
	"context"
	"log/slog"

	"github.com/zenstudio/booking-api/internal/core"
	"github.com/zenstudio/booking-api/internal/domain/model"
	apperrors "github.com/zenstudio/booking-api/internal/errors"
)

// SessionService manages sessions and their participant rosters.
type SessionService struct {
	sessions core.SessionRepository
	users    core.UserRepository
	logger   *slog.Logger
}

// SessionServiceOptions configures a SessionService.
type SessionServiceOptions struct {
	Sessions core.SessionRepository
	Users    core.UserRepository
	Logger   *slog.Logger
}

// NewSessionService creates a SessionService from the given options.
func NewSessionService(opts SessionServiceOptions) *SessionService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionService{
		sessions: opts.Sessions,
		users:    opts.Users,
		logger:   logger.With("component", "session_service"),
	}
}

// Create creates a new session with its initial roster.
func (s *SessionService) Create(ctx context.Context, req *model.CreateSessionRequest) (*model.Session, error) {
	sess, err := s.sessions.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "session created", "session_id", sess.ID)
	return sess, nil
}

// Get retrieves a session with its roster.
func (s *SessionService) Get(ctx context.Context, id string) (*model.Session, error) {
	return s.sessions.GetByID(ctx, id)
}

// List retrieves all sessions.
func (s *SessionService) List(ctx context.Context) ([]*model.Session, error) {
	return s.sessions.ListAll(ctx)
}

// Update rewrites a session's fields, replacing the roster only when the
// request carries one.
func (s *SessionService) Update(
	ctx context.Context,
	id string,
	req *model.UpdateSessionRequest,
) (*model.Session, error) {
	sess, err := s.sessions.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "session updated", "session_id", sess.ID)
	return sess, nil
}

// Delete removes a session. Deleting an unknown id is a not found error.
func (s *SessionService) Delete(ctx context.Context, id string) error {
	deleted, err := s.sessions.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.NotFound("session not found")
	}
	s.logger.InfoContext(ctx, "session deleted", "session_id", id)
	return nil
}

// Participate adds a user to a session's roster. Both the session and the
// user must exist. Joining a session the user is already on fails without
// writing anything.
func (s *SessionService) Participate(ctx context.Context, sessionID, userID string) (*model.Session, error) {
	sess, user, err := s.loadPair(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	if sess.HasParticipant(user.ID) {
		return nil, apperrors.Validation("user is already participating")
	}

	sess, err = s.sessions.AddParticipant(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "user joined session", "session_id", sessionID, "user_id", userID)
	return sess, nil
}

// Leave removes a user from a session's roster. Leaving a session the user
// is not on fails without writing anything.
func (s *SessionService) Leave(ctx context.Context, sessionID, userID string) (*model.Session, error) {
	sess, user, err := s.loadPair(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	if !sess.HasParticipant(user.ID) {
		return nil, apperrors.Validation("user is not participating")
	}

	sess, err = s.sessions.RemoveParticipant(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "user left session", "session_id", sessionID, "user_id", userID)
	return sess, nil
}

func (s *SessionService) loadPair(
	ctx context.Context,
	sessionID, userID string,
) (*model.Session, *model.User, error) {
	sess, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	return sess, user, nil
}
