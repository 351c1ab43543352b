package auth

import (
	"testing"
	"time"

	"jobportal-backend/internal/model"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	id := uuid.New()

	signed, err := GenerateAccessToken(id, "claims@example.com", "claims_user", model.RoleUser)
	require.NoError(t, err)

	token, err := ValidatedToken(signed)
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(*AccessClaims)
	require.True(t, ok)
	assert.Equal(t, id.String(), claims.Subject)
	assert.Equal(t, "claims@example.com", claims.Email)
	assert.Equal(t, "claims_user", claims.Username)
	assert.Equal(t, model.RoleUser, claims.Role)
	assert.Equal(t, JwtIssuer, claims.Issuer)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestExpiredTokenRejected(t *testing.T) {
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, AccessClaims{
		Email: "old@example.com",
		Role:  model.RoleUser,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    JwtIssuer,
			Subject:   uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	})
	signed, err := expired.SignedString([]byte(secretKey))
	require.NoError(t, err)

	_, err = ValidatedToken(signed)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestTamperedTokenRejected(t *testing.T) {
	signed, err := GenerateAccessToken(uuid.New(), "t@example.com", "t", model.RoleUser)
	require.NoError(t, err)

	tampered := signed[:len(signed)-2] + "xx"
	_, err = ValidatedToken(tampered)
	assert.Error(t, err)
}
