package auth

import (
	"os"

	"github.com/dgrijalva/jwt-go"
)

// JWTKey signs and verifies the session tokens issued at login.
var JWTKey = signingKey()

func signingKey() []byte {
	if k := os.Getenv("JWT_SECRET"); k != "" {
		return []byte(k)
	}
	return []byte("dev-only-secret")
}

// Claims carries the authenticated user's identity and admin flag.
type Claims struct {
	IsAdmin bool `json:"is_admin"`
	jwt.StandardClaims
}
