package httpx

import (
	"log/slog"
	"net/http"

	"github.com/zenstudio/booking-api/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth     *service.AuthService
	Sessions *service.SessionService
	Teachers *service.TeacherService
	Users    *service.UserService
	Logger   *slog.Logger
}

// NewRouter creates and configures the HTTP router. All /api routes except
// the auth endpoints require a valid bearer token; session mutations
// additionally require an admin.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	authHandlers := &AuthHandlers{Svc: services.Auth}
	sessionHandlers := &SessionHandlers{Svc: services.Sessions}
	teacherHandlers := &TeacherHandlers{Svc: services.Teachers}
	userHandlers := &UserHandlers{Svc: services.Users}

	registerAuthRoutes(mux, authHandlers)
	registerSessionRoutes(mux, sessionHandlers, services.Auth)
	registerTeacherRoutes(mux, teacherHandlers, services.Auth)
	registerUserRoutes(mux, userHandlers, services.Auth)
	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return Recover(logger)(Logging(logger)(mux))
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers) {
	mux.HandleFunc("POST /api/auth/login", h.Login)
	mux.HandleFunc("POST /api/auth/register", h.Register)
}

func registerSessionRoutes(mux *http.ServeMux, h *SessionHandlers, auth *service.AuthService) {
	authed := RequireAuth(auth)
	adminOnly := RequireAdmin(auth)

	mux.Handle("GET /api/session", authed(http.HandlerFunc(h.List)))
	mux.Handle("GET /api/session/{id}", authed(http.HandlerFunc(h.GetByID)))
	mux.Handle("POST /api/session", adminOnly(http.HandlerFunc(h.Create)))
	mux.Handle("PUT /api/session/{id}", adminOnly(http.HandlerFunc(h.Update)))
	mux.Handle("DELETE /api/session/{id}", adminOnly(http.HandlerFunc(h.Delete)))

	mux.Handle("POST /api/session/{id}/participate/{userId}", authed(http.HandlerFunc(h.Participate)))
	mux.Handle("DELETE /api/session/{id}/participate/{userId}", authed(http.HandlerFunc(h.Leave)))
}

func registerTeacherRoutes(mux *http.ServeMux, h *TeacherHandlers, auth *service.AuthService) {
	authed := RequireAuth(auth)

	mux.Handle("GET /api/teacher", authed(http.HandlerFunc(h.List)))
	mux.Handle("GET /api/teacher/{id}", authed(http.HandlerFunc(h.GetByID)))
}

func registerUserRoutes(mux *http.ServeMux, h *UserHandlers, auth *service.AuthService) {
	authed := RequireAuth(auth)

	mux.Handle("GET /api/user/{id}", authed(http.HandlerFunc(h.GetByID)))
	mux.Handle("DELETE /api/user/{id}", authed(http.HandlerFunc(h.Delete)))
}
