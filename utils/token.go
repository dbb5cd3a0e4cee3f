package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Secret untuk sign JWT. WAJIB diganti lewat .env di production!
func ApiSecret() []byte {
	return []byte(GetEnv("JWT_SECRET", "mpg_secret_dev"))
}

// Buat Token JWT (berlaku 72 jam)
func GenerateToken(userID uint, role string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(72 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(ApiSecret())
}
