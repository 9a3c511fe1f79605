package httpx

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/zenstudio/booking-api/internal/domain/model"
	"github.com/zenstudio/booking-api/internal/service"
)

// SessionHandlers provides HTTP handlers for session and roster operations.
type SessionHandlers struct {
	Svc *service.SessionService
}

// Create handles HTTP requests to create a new session.
func (h *SessionHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateSessionRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	sess, err := h.Svc.Create(r.Context(), &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, sess)
}

// List handles HTTP requests to list all sessions.
func (h *SessionHandlers) List(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.Svc.List(r.Context())
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, sessions)
}

// GetByID handles HTTP requests to get a session by ID.
func (h *SessionHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := requirePathValue(w, r, "id", "session id")
	if !ok {
		return
	}

	sess, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, sess)
}

// Update handles HTTP requests to update a session.
func (h *SessionHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := requirePathValue(w, r, "id", "session id")
	if !ok {
		return
	}

	var req model.UpdateSessionRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	sess, err := h.Svc.Update(r.Context(), id, &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, sess)
}

// Delete handles HTTP requests to delete a session.
func (h *SessionHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := requirePathValue(w, r, "id", "session id")
	if !ok {
		return
	}

	if err := h.Svc.Delete(r.Context(), id); err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// Participate handles HTTP requests to add a user to a session's roster.
func (h *SessionHandlers) Participate(w http.ResponseWriter, r *http.Request) {
	sessionID, userID, ok := rosterPathValues(w, r)
	if !ok {
		return
	}

	sess, err := h.Svc.Participate(r.Context(), sessionID, userID)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, sess)
}

// Leave handles HTTP requests to remove a user from a session's roster.
func (h *SessionHandlers) Leave(w http.ResponseWriter, r *http.Request) {
	sessionID, userID, ok := rosterPathValues(w, r)
	if !ok {
		return
	}

	sess, err := h.Svc.Leave(r.Context(), sessionID, userID)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, sess)
}

func rosterPathValues(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	sessionID, ok := requirePathValue(w, r, "id", "session id")
	if !ok {
		return "", "", false
	}
	userID, ok := requirePathValue(w, r, "userId", "user id")
	if !ok {
		return "", "", false
	}
	return sessionID, userID, true
}

// requirePathValue extracts a path parameter, writing a 400 when it is empty
// or not a well-formed id. Malformed ids never reach the database.
func requirePathValue(w http.ResponseWriter, r *http.Request, key, label string) (string, bool) {
	v := r.PathValue(key)
	if v == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New(label + " is required")})
		return "", false
	}
	if _, err := uuid.Parse(v); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New(label + " is not a valid id")})
		return "", false
	}
	return v, true
}
