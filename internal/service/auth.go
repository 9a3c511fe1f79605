package service

import (
	"context"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/zenstudio/booking-api/internal/core"
	"github.com/zenstudio/booking-api/internal/domain/auth"
	"github.com/zenstudio/booking-api/internal/domain/model"
	apperrors "github.com/zenstudio/booking-api/internal/errors"
)

// AuthService handles registration and credential verification.
type AuthService struct {
	users      core.UserRepository
	tokens     *TokenService
	limiter    *LoginLimiter
	bcryptCost int
	logger     *slog.Logger
}

// AuthServiceOptions configures an AuthService.
type AuthServiceOptions struct {
	Users core.UserRepository
	// Tokens issues bearer tokens on successful login. Required.
	Tokens *TokenService
	// Limiter throttles failed logins. Optional; nil disables throttling.
	Limiter    *LoginLimiter
	BcryptCost int
	Logger     *slog.Logger
}

// NewAuthService creates an AuthService from the given options.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cost := opts.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &AuthService{
		users:      opts.Users,
		tokens:     opts.Tokens,
		limiter:    opts.Limiter,
		bcryptCost: cost,
		logger:     logger.With("component", "auth_service"),
	}
}

// LoginResult carries the bearer token and the authenticated user.
type LoginResult struct {
	Token string
	User  *model.User
}

// Login verifies an email/password pair and issues a token. A missing
// account and a wrong password both return the same invalid credentials
// error so callers cannot probe which emails are registered.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if err := model.ValidateEmail(email); err != nil {
		return nil, apperrors.InvalidCredentials()
	}
	if password == "" {
		return nil, apperrors.InvalidCredentials()
	}
	if s.limiter.Blocked(ctx, email) {
		return nil, apperrors.RateLimited("too many failed login attempts")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if apperrors.IsNotFound(err) {
			s.limiter.RecordFailure(ctx, email)
			return nil, apperrors.InvalidCredentials()
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		s.limiter.RecordFailure(ctx, email)
		return nil, apperrors.InvalidCredentials()
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	s.limiter.Reset(ctx, email)
	s.logger.InfoContext(ctx, "user logged in", "user_id", user.ID)
	return &LoginResult{Token: token, User: user}, nil
}

// Authenticate resolves a bearer token into a principal. The account behind
// the token is loaded on every call, so a token for a deleted user stops
// working immediately.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*auth.Principal, error) {
	userID, err := s.tokens.Validate(token)
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.Unauthorized("account no longer exists")
		}
		return nil, err
	}
	return &auth.Principal{UserID: user.ID, Email: user.Email, Admin: user.Admin}, nil
}

// Register creates a new account with a bcrypt password hash.
func (s *AuthService) Register(ctx context.Context, req *model.CreateUserRequest) (*model.User, error) {
	if req == nil {
		return nil, apperrors.Validation("registration request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to hash password")
	}

	user, err := s.users.Create(ctx, req, string(hash))
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "user registered", "user_id", user.ID)
	return user, nil
}
