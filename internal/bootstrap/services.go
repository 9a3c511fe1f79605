package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/zenstudio/booking-api/config"
	"github.com/zenstudio/booking-api/internal/data"
	httpx "github.com/zenstudio/booking-api/internal/http"
	"github.com/zenstudio/booking-api/internal/service"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Auth     *service.AuthService
	Sessions *service.SessionService
	Teachers *service.TeacherService
	Users    *service.UserService
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient *redis.Client
	Logger      *slog.Logger
}

// NewServices wires repositories and services from shared infrastructure.
func NewServices(deps *ServiceDeps) *ServiceContainer {
	userRepo := data.NewUserRepo(deps.DB)
	teacherRepo := data.NewTeacherRepo(deps.DB)
	sessionRepo := data.NewSessionRepo(deps.DB)

	tokens := service.NewTokenService(service.TokenServiceOptions{
		Secret: []byte(deps.Config.Auth.TokenSecret),
		TTL:    deps.Config.Auth.TokenTTL,
	})

	var limiter *service.LoginLimiter
	if deps.Config.Auth.ThrottleEnabled && deps.RedisClient != nil {
		limiter = service.NewLoginLimiter(service.LoginLimiterOptions{
			Client:      deps.RedisClient,
			MaxAttempts: deps.Config.Auth.ThrottleMaxAttempts,
			Window:      deps.Config.Auth.ThrottleWindow,
		})
	}

	auth := service.NewAuthService(service.AuthServiceOptions{
		Users:      userRepo,
		Tokens:     tokens,
		Limiter:    limiter,
		BcryptCost: deps.Config.Auth.BcryptCost,
		Logger:     deps.Logger,
	})
	sessions := service.NewSessionService(service.SessionServiceOptions{
		Sessions: sessionRepo,
		Users:    userRepo,
		Logger:   deps.Logger,
	})
	users := service.NewUserService(service.UserServiceOptions{
		Users:  userRepo,
		Logger: deps.Logger,
	})

	return &ServiceContainer{
		Auth:     auth,
		Sessions: sessions,
		Teachers: service.NewTeacherService(teacherRepo),
		Users:    users,
	}
}

// ServerConfig groups what RunServerWithShutdown needs.
type ServerConfig struct {
	Config   *config.AppConfig
	Services *ServiceContainer
	Logger   *slog.Logger
}

const shutdownTimeout = 10 * time.Second

// RunServerWithShutdown serves the HTTP API until SIGINT/SIGTERM, then shuts
// down gracefully, draining in-flight requests up to a timeout.
func RunServerWithShutdown(cfg *ServerConfig) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	handler := httpx.NewRouter(httpx.RouterServices{
		Auth:     cfg.Services.Auth,
		Sessions: cfg.Services.Sessions,
		Teachers: cfg.Services.Teachers,
		Users:    cfg.Services.Users,
		Logger:   cfg.Logger,
	})

	srv := &http.Server{
		Addr:              cfg.Config.HTTP.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		cfg.Logger.Info("http server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		cfg.Logger.Info("shutting down http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	})

	return g.Wait()
}
