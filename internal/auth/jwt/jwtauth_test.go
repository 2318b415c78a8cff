package jwt

import (
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	jwtAuth := jwtauth.New("HS256", []byte("secret"), nil)

	tok, err := NewToken(jwtAuth, time.Hour, "operator")
	require.NoError(t, err)

	sub, err := VerifyToken(jwtAuth, tok)
	require.NoError(t, err)
	assert.Equal(t, "operator", sub)
}

func TestTokenWrongSecret(t *testing.T) {
	tok, err := NewToken(jwtauth.New("HS256", []byte("secret"), nil), time.Hour, "operator")
	require.NoError(t, err)

	_, err = VerifyToken(jwtauth.New("HS256", []byte("other"), nil), tok)
	assert.Error(t, err)
}

func TestTokenExpired(t *testing.T) {
	jwtAuth := jwtauth.New("HS256", []byte("secret"), nil)

	tok, err := NewToken(jwtAuth, -time.Minute, "operator")
	require.NoError(t, err)

	_, err = VerifyToken(jwtAuth, tok)
	assert.Error(t, err)
}
