// Package auth issues and verifies the JWTs that gate the backoffice
// API. The shop runs with a small fixed set of operator credentials, so
// authentication is a constant-time comparison against configuration
// plus a login rate limit, not a user store.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-chi/jwtauth/v5"

	"github.com/smashlab/racquet-manager/internal/auth/jwt"
	"github.com/smashlab/racquet-manager/internal/middleware"
	"github.com/smashlab/racquet-manager/internal/ratelimit"
)

var (
	// ErrUnauthenticated is returned for a bad username or password.
	ErrUnauthenticated = errors.New("not authenticated")
	// ErrTooManyAttempts is returned when the login rate limit trips.
	ErrTooManyAttempts = errors.New("too many login attempts")
)

// Config contains the configuration for the auth service.
type Config struct {
	JWTSecret     string `mapstructure:"jwt_secret"`
	AdminUsername string `mapstructure:"admin_username"`
	AdminPassword string `mapstructure:"admin_password"`
	JWTTTL        string `mapstructure:"jwt_ttl"`
}

// Service mints operator tokens and exposes the verifier the HTTP layer
// mounts in front of admin routes.
type Service struct {
	jwtAuth *jwtauth.JWTAuth
	jwtTTL  time.Duration
	c       *Config
	limiter *ratelimit.LoginLimiter
}

// New creates a new auth service.
func New(c *Config) (*Service, error) {
	if c.JWTSecret == "" {
		return nil, fmt.Errorf("jwt secret is not set")
	}
	if c.AdminUsername == "" || c.AdminPassword == "" {
		return nil, fmt.Errorf("admin credentials are not set")
	}

	ttl := 24 * time.Hour
	if c.JWTTTL != "" {
		parsed, err := time.ParseDuration(c.JWTTTL)
		if err != nil {
			return nil, fmt.Errorf("parse jwt ttl: %w", err)
		}
		ttl = parsed
	}

	return &Service{
		jwtAuth: jwtauth.New("HS256", []byte(c.JWTSecret), nil),
		jwtTTL:  ttl,
		c:       c,
		limiter: ratelimit.NewLoginLimiter(),
	}, nil
}

// JWT returns the verifier for route middleware.
func (s *Service) JWT() *jwtauth.JWTAuth {
	return s.jwtAuth
}

// Login validates operator credentials and returns a signed token. The
// client IP for rate limiting is taken from the request context.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	username = strings.ToLower(strings.TrimSpace(username))

	if err := s.limiter.CheckLogin(middleware.GetClientIP(ctx), username); err != nil {
		return "", fmt.Errorf("%w: %s", ErrTooManyAttempts, err.Error())
	}

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(strings.ToLower(s.c.AdminUsername)))
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.c.AdminPassword))
	if userOK&passOK != 1 {
		return "", ErrUnauthenticated
	}

	token, err := jwt.NewToken(s.jwtAuth, s.jwtTTL, username)
	if err != nil {
		return "", fmt.Errorf("mint token: %w", err)
	}
	return token, nil
}
