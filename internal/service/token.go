package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/zenstudio/booking-api/internal/data"
	apperrors "github.com/zenstudio/booking-api/internal/errors"
)

// TokenService issues and validates signed bearer tokens. Tokens are HS256
// JWTs whose subject is the user id; no server-side state is kept, so a token
// stays valid until its expiry even if issued before a restart.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	clock  data.TimeProvider
	parser *jwt.Parser
}

// TokenServiceOptions configures a TokenService.
type TokenServiceOptions struct {
	// Secret is the HMAC signing key. Required.
	Secret []byte
	// TTL is the token lifetime from issuance.
	TTL time.Duration
	// Clock is used for issued-at and expiry checks. Defaults to real time.
	Clock data.TimeProvider
}

// NewTokenService creates a TokenService from the given options.
func NewTokenService(opts TokenServiceOptions) *TokenService {
	clock := opts.Clock
	if clock == nil {
		clock = &data.RealTimeProvider{}
	}
	return &TokenService{
		secret: opts.Secret,
		ttl:    opts.TTL,
		clock:  clock,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
			jwt.WithTimeFunc(clock.Now),
		),
	}
}

// Issue creates a signed token for the given user id.
func (s *TokenService) Issue(userID string) (string, error) {
	now := s.clock.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to sign token")
	}
	return signed, nil
}

// Validate parses a token and returns the user id it was issued for.
// An expired token yields ErrCodeTokenExpired; any other defect, including a
// bad signature or an unexpected signing method, yields ErrCodeTokenInvalid.
func (s *TokenService) Validate(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := s.parser.ParseWithClaims(tokenString, claims, func(_ *jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", apperrors.TokenExpired("token has expired")
		}
		return "", apperrors.TokenInvalid("token is invalid")
	}
	if claims.Subject == "" {
		return "", apperrors.TokenInvalid("token is invalid")
	}
	return claims.Subject, nil
}
