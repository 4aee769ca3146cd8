package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// Principal is the authenticated identity attached to a request once the
// authorization gate has accepted it. Handlers receive it explicitly; nothing
// downstream re-parses tokens.
type Principal struct {
	Username string `json:"username"`
}

// Claims is the JWT payload carried in the auth cookie.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}
