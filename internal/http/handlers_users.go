package httpx

import (
	"errors"
	"net/http"

	"github.com/zenstudio/booking-api/internal/service"
)

// UserHandlers provides HTTP handlers for account operations.
type UserHandlers struct {
	Svc *service.UserService
}

// GetByID handles HTTP requests to get a user by ID. The password hash never
// leaves the server; the model excludes it from JSON.
func (h *UserHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := requirePathValue(w, r, "id", "user id")
	if !ok {
		return
	}

	user, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, user)
}

// Delete handles HTTP requests to delete an account. Only the account owner
// or an admin may delete it.
func (h *UserHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := requirePathValue(w, r, "id", "user id")
	if !ok {
		return
	}

	principal, ok := GetPrincipalFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "authentication_required",
			Err:     errors.New("authentication required"),
		})
		return
	}

	if err := h.Svc.Delete(r.Context(), principal, id); err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
