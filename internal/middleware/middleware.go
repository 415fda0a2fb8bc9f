package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Account roles carried in the token.
const (
	RoleDoctor  = "doctor"
	RolePatient = "patient"
)

const tokenLifetime = 72 * time.Hour

func jwtSecret() []byte {
	return []byte(os.Getenv("JWT_SECRET_KEY"))
}

// GenerateToken signs an HS256 token for the given account.
func GenerateToken(userID uint, email, role string) (string, error) {
	secret := jwtSecret()
	if len(secret) == 0 {
		return "", errors.New("JWT_SECRET_KEY is not set")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"role":    role,
		"exp":     time.Now().Add(tokenLifetime).Unix(),
	})
	return token.SignedString(secret)
}

func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": "Authorization header is required",
				"error":   "Missing authorization token",
			})
			return
		}

		// Bearer {token}
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": "Invalid authorization header format",
				"error":   "Use format: Bearer {token}",
			})
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return jwtSecret(), nil
		})
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": "Invalid or expired token",
				"error":   err.Error(),
			})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		userID, idOK := claims["user_id"].(float64)
		email, _ := claims["email"].(string)
		role, roleOK := claims["role"].(string)
		if !ok || !token.Valid || !idOK || !roleOK {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": "Invalid token claims",
				"error":   "Token validation failed",
			})
			return
		}

		c.Set("user_id", uint(userID))
		c.Set("email", email)
		c.Set("role", role)
		c.Next()
	}
}

// RequireRole rejects authenticated callers whose role is not allowed.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"status":  "error",
			"message": "Forbidden",
			"error":   "This endpoint is not available for your account type",
		})
	}
}

// RequestID tags every request and response with an X-Request-ID.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}
