// Package auth contain handlers and helpers for registration and login
package auth

import (
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	// Load env file into environments.
	_ "github.com/joho/godotenv/autoload"
)

var secretKey = os.Getenv("JWT_SECRET")

// JwtIssuer is the issuer claim stamped on every token and checked by RequireAuth
const JwtIssuer = "JobPortal"

// AccessClaims is the payload carried by every access token
type AccessClaims struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateAccessToken signs a one-hour access token for the given user identity
func GenerateAccessToken(id uuid.UUID, email string, username string, role string) (string, error) {

	generatedAccessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, AccessClaims{
		Email:    email,
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    JwtIssuer,
			Subject:   id.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	})

	signedToken, err := generatedAccessToken.SignedString([]byte(secretKey))
	if err != nil {
		return "", fmt.Errorf("Failed to sign token: %s", err)
	}

	return signedToken, nil
}

// ValidatedToken parses and verifies an encoded access token
func ValidatedToken(encodeToken string) (*jwt.Token, error) {
	return jwt.ParseWithClaims(encodeToken, &AccessClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, isvalid := token.Method.(*jwt.SigningMethodHMAC); !isvalid {
			return nil, fmt.Errorf("Invalid token")
		}
		return []byte(secretKey), nil
	})
}
