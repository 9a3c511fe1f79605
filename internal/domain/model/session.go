package model

import (
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	apperrors "github.com/zenstudio/booking-api/internal/errors"
)

const (
	maxSessionNameLen        = 50
	maxSessionDescriptionLen = 2500
)

// Session is a bookable class led by a teacher. Users holds the participant
// roster as a duplicate-free, unordered set of user IDs; callers must not
// depend on its order. The roster is mutated only through the roster engine's
// join/leave operations, never by direct field replacement, unless an update
// explicitly supplies a replacement set.
type Session struct {
	ID          string    `json:"id"          db:"id"`
	Name        string    `json:"name"        db:"name"`
	Date        time.Time `json:"date"        db:"date"`
	TeacherID   string    `json:"teacher_id"  db:"teacher_id"`
	Description string    `json:"description" db:"description"`
	Users       []string  `json:"users"       db:"-"`
	CreatedAt   time.Time `json:"createdAt"   db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt"   db:"updated_at"`
}

// HasParticipant reports whether the user ID is in the roster.
func (s *Session) HasParticipant(userID string) bool {
	return slices.Contains(s.Users, userID)
}

// Equal reports value equality over all persisted fields. Roster comparison is
// order-insensitive since the participant set carries no ordering guarantee.
func (s *Session) Equal(other *Session) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.ID == other.ID &&
		s.Name == other.Name &&
		s.Date.Equal(other.Date) &&
		s.TeacherID == other.TeacherID &&
		s.Description == other.Description &&
		sameParticipantSet(s.Users, other.Users) &&
		s.CreatedAt.Equal(other.CreatedAt) &&
		s.UpdatedAt.Equal(other.UpdatedAt)
}

func sameParticipantSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	as := slices.Clone(a)
	bs := slices.Clone(b)
	slices.Sort(as)
	slices.Sort(bs)
	return slices.Equal(as, bs)
}

// CreateSessionRequest represents parameters to create a Session. Users is
// the initial roster and may be empty; clients routinely send `users: []`.
type CreateSessionRequest struct {
	Name        string    `json:"name"`
	Date        time.Time `json:"date"`
	TeacherID   string    `json:"teacher_id"`
	Description string    `json:"description"`
	Users       []string  `json:"users"`
}

// Validate validates CreateSessionRequest.
func (r *CreateSessionRequest) Validate() error {
	if err := validateSessionName(r.Name); err != nil {
		return err
	}
	if r.Date.IsZero() {
		return apperrors.ValidationField("date", "date is required")
	}
	if strings.TrimSpace(r.TeacherID) == "" {
		return apperrors.ValidationField("teacher_id", "teacher_id is required and cannot be empty")
	}
	if err := validateSessionDescription(r.Description); err != nil {
		return err
	}
	return validateRosterIDs(r.Users)
}

// UpdateSessionRequest represents a full edit of a session's own fields.
// Users is optional: when nil the stored roster is left untouched; when
// present it replaces the roster wholesale. created_at is never writable.
// ID mirrors the path parameter in client payloads and is ignored; the path
// id is authoritative.
type UpdateSessionRequest struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Date        time.Time `json:"date"`
	TeacherID   string    `json:"teacher_id"`
	Description string    `json:"description"`
	Users       *[]string `json:"users,omitempty"`
}

// Validate validates UpdateSessionRequest.
func (r *UpdateSessionRequest) Validate() error {
	if err := validateSessionName(r.Name); err != nil {
		return err
	}
	if r.Date.IsZero() {
		return apperrors.ValidationField("date", "date is required")
	}
	if strings.TrimSpace(r.TeacherID) == "" {
		return apperrors.ValidationField("teacher_id", "teacher_id is required and cannot be empty")
	}
	if err := validateSessionDescription(r.Description); err != nil {
		return err
	}
	if r.Users != nil {
		return validateRosterIDs(*r.Users)
	}
	return nil
}

func validateRosterIDs(users []string) error {
	seen := make(map[string]struct{}, len(users))
	for _, id := range users {
		if strings.TrimSpace(id) == "" {
			return apperrors.ValidationField("users", "users cannot contain empty ids")
		}
		if _, dup := seen[id]; dup {
			return apperrors.ValidationField("users", "users cannot contain duplicate ids")
		}
		seen[id] = struct{}{}
	}
	return nil
}

func validateSessionName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return apperrors.ValidationField("name", "name is required and cannot be empty")
	}
	if utf8.RuneCountInString(name) > maxSessionNameLen {
		return apperrors.ValidationField("name", "name cannot exceed 50 characters")
	}
	return nil
}

func validateSessionDescription(description string) error {
	if utf8.RuneCountInString(description) > maxSessionDescriptionLen {
		return apperrors.ValidationField("description", "description cannot exceed 2500 characters")
	}
	return nil
}
