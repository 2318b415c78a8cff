package jwt

import (
	"time"

	"github.com/go-chi/jwtauth/v5"
)

// NewToken issues an operator session token. The subject carries the
// operator username for the request audit log.
func NewToken(jwtAuth *jwtauth.JWTAuth, ttl time.Duration, subject string) (string, error) {
	claims := map[string]interface{}{
		"exp": time.Now().Add(ttl).Unix(),
		"sub": subject,
	}
	_, ts, err := jwtAuth.Encode(claims)
	return ts, err
}

// VerifyToken validates a token and returns its subject.
func VerifyToken(jwtAuth *jwtauth.JWTAuth, token string) (string, error) {
	t, err := jwtauth.VerifyToken(jwtAuth, token)
	if err != nil {
		return "", err
	}
	return t.Subject(), nil
}
