package config

import "time"

// AuthConfig groups token signing and login throttle configuration.
type AuthConfig struct {
	// TokenSecret is the HMAC key used to sign bearer tokens. Required.
	TokenSecret string `env:"TOKEN_SECRET,required,notEmpty"`

	// TokenTTL is the token lifetime from issuance.
	TokenTTL time.Duration `env:"TOKEN_TTL" envDefault:"24h"`

	// BcryptCost is the bcrypt work factor for password hashes.
	BcryptCost int `env:"BCRYPT_COST" envDefault:"10"`

	// ThrottleEnabled turns on the redis-backed failed login throttle.
	ThrottleEnabled bool `env:"THROTTLE_ENABLED" envDefault:"false"`

	// ThrottleMaxAttempts is the number of failed logins per email before
	// further attempts are rejected.
	ThrottleMaxAttempts int `env:"THROTTLE_MAX_ATTEMPTS" envDefault:"5"`

	// ThrottleWindow is how long the failure counter lives after the most
	// recent failed attempt.
	ThrottleWindow time.Duration `env:"THROTTLE_WINDOW" envDefault:"15m"`
}

// Sanitize applies guardrails to auth configuration values.
func (a *AuthConfig) Sanitize() {
	const (
		minBcryptCost = 4
		maxBcryptCost = 31
	)
	if a.BcryptCost < minBcryptCost {
		a.BcryptCost = minBcryptCost
	}
	if a.BcryptCost > maxBcryptCost {
		a.BcryptCost = maxBcryptCost
	}

	if a.TokenTTL <= 0 {
		a.TokenTTL = 24 * time.Hour
	}
	if a.ThrottleMaxAttempts < 1 {
		a.ThrottleMaxAttempts = 1
	}
	if a.ThrottleWindow <= 0 {
		a.ThrottleWindow = 15 * time.Minute
	}
}
