package utils

import (
	"time"

	"github.com/dgrijalva/jwt-go"
)

// JWT secret key, loaded from the environment in main
var JwtKey = []byte("change-me")

// Claims represents the JWT claims carried by a session token
type Claims struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	SessionID string `json:"session_id"`
	jwt.StandardClaims
}

// GenerateJWT issues a signed token for an authenticated session. The
// session id keys the durable session slot (cart, admin snapshot).
func GenerateJWT(userID, email, role, sessionID string) (string, error) {
	expirationTime := time.Now().Add(24 * time.Hour)
	claims := &Claims{
		UserID:    userID,
		Email:     email,
		Role:      role,
		SessionID: sessionID,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: expirationTime.Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(JwtKey)
	if err != nil {
		return "", err
	}
	return tokenString, nil
}

// IsAdminRole reports whether a role string grants back-office access.
func IsAdminRole(role string) bool {
	return role == "admin" || role == "super-admin"
}
