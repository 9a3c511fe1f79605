package httpx

import (
	"net/http"

	"github.com/zenstudio/booking-api/internal/service"
)

// TeacherHandlers provides HTTP handlers for teacher lookups.
type TeacherHandlers struct {
	Svc *service.TeacherService
}

// List handles HTTP requests to list all teachers.
func (h *TeacherHandlers) List(w http.ResponseWriter, r *http.Request) {
	teachers, err := h.Svc.List(r.Context())
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, teachers)
}

// GetByID handles HTTP requests to get a teacher by ID.
func (h *TeacherHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := requirePathValue(w, r, "id", "teacher id")
	if !ok {
		return
	}

	teacher, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, teacher)
}
