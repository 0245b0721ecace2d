package auth_test

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"celebrai-backend/pkg/auth"
)

func sign(t *testing.T, method jwt.SigningMethod, key interface{}, kid string, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(method, claims)
	if kid != "" {
		tok.Header["kid"] = kid
	}
	s, err := tok.SignedString(key)
	require.NoError(t, err)
	return s
}

func validClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"sub":   "user-1",
		"email": "lu@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
}

func TestVerifierHS256(t *testing.T) {
	v := auth.NewVerifier("secret", nil)

	claims, err := v.Parse(sign(t, jwt.SigningMethodHS256, []byte("secret"), "", validClaims()))
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "lu@example.com", claims.Email)

	_, err = v.Parse(sign(t, jwt.SigningMethodHS256, []byte("other"), "", validClaims()))
	assert.Error(t, err)
}

func TestVerifierParseRole(t *testing.T) {
	v := auth.NewVerifier("secret", nil)
	anon := sign(t, jwt.SigningMethodHS256, []byte("secret"), "", jwt.MapClaims{
		"role": "anon",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	_, err := v.Parse(anon)
	assert.Error(t, err)

	claims, err := v.ParseRole(anon)
	require.NoError(t, err)
	assert.Equal(t, "anon", claims.Role)

	_, err = v.ParseRole(sign(t, jwt.SigningMethodHS256, []byte("secret"), "", validClaims()))
	assert.Error(t, err)

	_, err = v.ParseRole(sign(t, jwt.SigningMethodHS256, []byte("other"), "", jwt.MapClaims{
		"role": "anon",
		"exp":  time.Now().Add(time.Hour).Unix(),
	}))
	assert.Error(t, err)
}

func TestVerifierRejectsExpiredAndMissingExp(t *testing.T) {
	v := auth.NewVerifier("secret", nil)

	expired := validClaims()
	expired["exp"] = time.Now().Add(-time.Minute).Unix()
	_, err := v.Parse(sign(t, jwt.SigningMethodHS256, []byte("secret"), "", expired))
	assert.Error(t, err)

	noExp := validClaims()
	delete(noExp, "exp")
	_, err = v.Parse(sign(t, jwt.SigningMethodHS256, []byte("secret"), "", noExp))
	assert.Error(t, err)
}

func TestVerifierRS256ViaJWKS(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	var fetches int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches++
		_ = json.NewEncoder(w).Encode(auth.JWKS{Keys: []auth.JSONWebKey{{
			Kid: "k1",
			Kty: "RSA",
			Alg: "RS256",
			N:   base64.RawURLEncoding.EncodeToString(key.N.Bytes()),
			E:   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(key.E)).Bytes()),
		}}})
	}))
	defer srv.Close()

	v := auth.NewVerifier("", auth.NewProvider(srv.URL))
	token := sign(t, jwt.SigningMethodRS256, key, "k1", validClaims())

	for i := 0; i < 3; i++ {
		claims, err := v.Parse(token)
		require.NoError(t, err)
		assert.Equal(t, "user-1", claims.Subject)
	}
	assert.Equal(t, 1, fetches)

	_, err = v.Parse(sign(t, jwt.SigningMethodRS256, key, "unknown", validClaims()))
	assert.Error(t, err)
}

func TestJWKSURL(t *testing.T) {
	assert.Equal(t, "https://x.supabase.co/auth/v1/.well-known/jwks.json", auth.JWKSURL("https://x.supabase.co"))
}
