package middleware

import (
	"strings"

	"exam-tasks-api/internal/apperror"
	"exam-tasks-api/internal/models"
	"exam-tasks-api/internal/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	userIDKey = "user_id"
	claimsKey = "claims"
)

// JWTAuth validates the bearer token and stores the caller's id in the context
func JWTAuth(jwtService *services.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			unauthorized(c, "Authorization header required", nil)
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			unauthorized(c, "Invalid authorization header format", nil)
			return
		}

		claims, err := jwtService.ValidateToken(parts[1])
		if err != nil {
			unauthorized(c, "Invalid or expired token", err)
			return
		}

		userID, err := primitive.ObjectIDFromHex(claims.UserID)
		if err != nil {
			unauthorized(c, "Invalid or expired token", err)
			return
		}

		c.Set(userIDKey, userID)
		c.Set(claimsKey, claims)
		c.Next()
	}
}

// GetUserID returns the authenticated user's id, or the zero id outside JWTAuth
func GetUserID(c *gin.Context) primitive.ObjectID {
	value, ok := c.Get(userIDKey)
	if !ok {
		return primitive.NilObjectID
	}
	userID, _ := value.(primitive.ObjectID)
	return userID
}

// GetClaims returns the validated token claims
func GetClaims(c *gin.Context) *models.Claims {
	value, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, _ := value.(*models.Claims)
	return claims
}

func unauthorized(c *gin.Context, message string, err error) {
	_ = c.Error(apperror.Wrap(apperror.Unauthorized, message, err))
	c.Abort()
}
