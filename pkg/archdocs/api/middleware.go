package api

import (
	"net/http"

	"github.com/go-chi/jwtauth"
)

// JWTVerifier returns the middleware chain enforcing JWT verification with
// the given HS256 secret. Mount on routes that require authentication.
func JWTVerifier(secret string) []func(http.Handler) http.Handler {
	tokenAuth := jwtauth.New("HS256", []byte(secret), nil)
	return []func(http.Handler) http.Handler{
		jwtauth.Verifier(tokenAuth),
		jwtauth.Authenticator,
	}
}
