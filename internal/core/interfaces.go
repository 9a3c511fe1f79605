package core

import (
	"context"

	"github.com/zenstudio/booking-api/internal/domain/model"
)

// This file contains repository interface definitions (ports in hexagonal architecture).
// These interfaces define the contracts between the service layer and data layer.
// Service implementations should depend on these interfaces, not concrete implementations.

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	Create(ctx context.Context, req *model.CreateUserRequest, passwordHash string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	// GetByEmail looks up a user by email, matched case-insensitively.
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// TeacherRepository defines the interface for teacher data operations.
type TeacherRepository interface {
	GetByID(ctx context.Context, id string) (*model.Teacher, error)
	ListAll(ctx context.Context) ([]*model.Teacher, error)
}

// SessionRepository defines the interface for session data operations.
// Sessions returned by reads always carry their full participant roster.
type SessionRepository interface {
	Create(ctx context.Context, req *model.CreateSessionRequest) (*model.Session, error)
	GetByID(ctx context.Context, id string) (*model.Session, error)
	ListAll(ctx context.Context) ([]*model.Session, error)
	// Update rewrites the session's own fields, preserving created_at and
	// refreshing updated_at. The roster is replaced only when req.Users is set.
	Update(ctx context.Context, id string, req *model.UpdateSessionRequest) (*model.Session, error)
	Delete(ctx context.Context, id string) (bool, error)

	// AddParticipant and RemoveParticipant mutate the roster inside a
	// transaction holding a row lock on the session, re-checking membership
	// under the lock so concurrent calls on the same session serialize.
	AddParticipant(ctx context.Context, sessionID, userID string) (*model.Session, error)
	RemoveParticipant(ctx context.Context, sessionID, userID string) (*model.Session, error)
}
