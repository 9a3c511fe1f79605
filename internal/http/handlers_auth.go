// Package httpx provides HTTP handlers and utilities for the booking API.
package httpx

import (
	"net/http"

	"github.com/zenstudio/booking-api/internal/domain/model"
	"github.com/zenstudio/booking-api/internal/service"
)

// AuthHandlers provides HTTP handlers for login and registration.
type AuthHandlers struct {
	Svc *service.AuthService
}

// loginRequest is the login body.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginResponse mirrors the identity summary clients expect alongside the token.
type loginResponse struct {
	Token     string `json:"token"`
	Type      string `json:"type"`
	ID        string `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Admin     bool   `json:"admin"`
}

// Login handles HTTP requests to exchange credentials for a bearer token.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	res, err := h.Svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, loginResponse{
		Token:     res.Token,
		Type:      "Bearer",
		ID:        res.User.ID,
		Username:  res.User.Email,
		FirstName: res.User.FirstName,
		LastName:  res.User.LastName,
		Admin:     res.User.Admin,
	})
}

// Register handles HTTP requests to create a new account.
func (h *AuthHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var req model.CreateUserRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	if _, err := h.Svc.Register(r.Context(), &req); err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"message": "User registered successfully!"})
}
