package middleware

import (
	"net/http"
	"strings"

	"mpg-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Middleware 1: WAJIB login. Cek token valid, set user_id & role ke context.
func JwtAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, role, ok := parseToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Butuh token akses!"})
			return
		}

		c.Set("user_id", userID)
		c.Set("role", role)
		c.Next()
	}
}

// Middleware 2: Login OPSIONAL (untuk upload & checkout, guest boleh).
// Kalau header tidak ada -> user_id 0 (guest). Token ada tapi rusak tetap ditolak.
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Set("user_id", uint(0))
			c.Set("role", "guest")
			c.Next()
			return
		}

		userID, role, ok := parseToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token tidak valid"})
			return
		}

		c.Set("user_id", userID)
		c.Set("role", role)
		c.Next()
	}
}

// Middleware 3: Penjaga pintu halaman admin
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists || role != "admin" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Akses ditolak!"})
			return
		}
		c.Next()
	}
}

func parseToken(c *gin.Context) (uint, string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return 0, "", false
	}

	tokenString := strings.Replace(authHeader, "Bearer ", "", 1)
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return utils.ApiSecret(), nil
	})
	if err != nil || !token.Valid {
		return 0, "", false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", false
	}

	// FIX: konversi float64 ke uint harus aman
	userIDFloat, okID := claims["user_id"].(float64)
	if !okID {
		return 0, "", false
	}

	role, _ := claims["role"].(string)

	return uint(userIDFloat), role, true
}
