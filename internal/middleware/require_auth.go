// Package middleware contain utilities middleware code
package middleware

import (
	"jobportal-backend/internal/auth"
	"jobportal-backend/internal/database"
	"jobportal-backend/internal/model"
	"jobportal-backend/internal/utilities"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

// RequireAuth function is a middleware in Go that validates a Bearer token in the Authorization
// header and checks if the user associated with the token exists and is not expired before allowing
// access to the endpoint.
func RequireAuth(db *database.DBinstanceStruct) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenString, err := utilities.ExtractBearerToken(ctx)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.Error(err.Error()))
			return
		}

		token, err := auth.ValidatedToken(tokenString)

		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.Error("Access token expired"))
				return
			}

			ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.Error(
				fmt.Sprintf("Failed to validate token: %s", err.Error()),
			))
			return
		}

		if !token.Valid {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.Error("Invalid access token"))
			return
		}

		claims := token.Claims.(*auth.AccessClaims)
		ctx.Set("claims", claims)

		if claims.Issuer != auth.JwtIssuer {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.Error("Invalid token issuer"))
			return
		}

		userID := claims.Subject

		var foundUser model.User

		if err := db.Where("id = ?", userID).First(&foundUser).Error; err != nil {

			if errors.Is(err, gorm.ErrRecordNotFound) {
				ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.Error("User not exist"))
				return
			}

			ctx.AbortWithStatusJSON(http.StatusInternalServerError, utilities.Error(
				fmt.Sprintf("Failed to retrieve user data: %s", err.Error()),
			))
			return
		}

		ctx.Set("user", foundUser)
		ctx.Next()
	}
}
