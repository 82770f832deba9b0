// Package identity adapts the external token issuer to the TokenVerifier
// port. Tokens are HS256-signed bearer credentials carrying email and name
// claims; anything else is rejected.
package identity

import (
	"context"

	"github.com/golang-jwt/jwt/v5"

	"github.com/donorhub/donorhub-api/internal/core/domain"
	"github.com/donorhub/donorhub-api/internal/core/ports"
)

// JWTVerifier validates HS256 bearer tokens with a shared secret.
type JWTVerifier struct {
	secret []byte
}

func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret)}
}

// Verify parses and validates the credential and extracts the identity
// claims. The signing algorithm is pinned to HS256; a structurally valid
// token without an email claim is unusable and rejected.
func (v *JWTVerifier) Verify(_ context.Context, token string) (ports.Identity, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return v.secret, nil
	})
	if err != nil || !tkn.Valid {
		return ports.Identity{}, domain.ErrInvalidToken
	}

	email, _ := claims["email"].(string)
	if email == "" {
		return ports.Identity{}, domain.ErrInvalidToken
	}
	name, _ := claims["name"].(string)

	return ports.Identity{Email: email, Name: name}, nil
}
