package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the Supabase access-token claims the service relies on.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Verifier accepts legacy HS256 project tokens and asymmetric JWKS tokens.
type Verifier struct {
	secret []byte
	jwks   *Provider
}

// NewVerifier builds a verifier; either source may be empty/nil.
func NewVerifier(secret string, jwks *Provider) *Verifier {
	return &Verifier{secret: []byte(secret), jwks: jwks}
}

// Parse verifies a user access token; it must carry a subject.
func (v *Verifier) Parse(tokenString string) (*Claims, error) {
	claims, err := v.parse(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}
	return claims, nil
}

// ParseRole verifies a project token such as the anon key, which has a role
// but no subject.
func (v *Verifier) ParseRole(tokenString string) (*Claims, error) {
	claims, err := v.parse(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.Role == "" {
		return nil, errors.New("token has no role")
	}
	return claims, nil
}

func (v *Verifier) parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, v.keyFunc,
		jwt.WithValidMethods([]string{"HS256", "RS256", "ES256"}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

func (v *Verifier) keyFunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); ok {
		if len(v.secret) == 0 {
			return nil, fmt.Errorf("HS256 token received but SUPABASE_JWT_SECRET is not configured")
		}
		return v.secret, nil
	}
	if v.jwks == nil {
		return nil, fmt.Errorf("asymmetric token received but no JWKS is configured")
	}
	return v.jwks.KeyFunc(token)
}
