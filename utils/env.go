package utils

import "os"

// Ambil env var dengan fallback default
func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
