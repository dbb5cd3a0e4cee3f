package handlers

import (
	"net/http"

	"mpg-backend/database"
	"mpg-backend/models"
	"mpg-backend/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// Struct untuk Validasi Input Login
type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Struct untuk Validasi Input Register
type RegisterInput struct {
	Username        string `json:"username" binding:"required"`
	Password        string `json:"password" binding:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

func Login(c *gin.Context) {
	var input LoginInput

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Format data salah", "details": err.Error()})
		return
	}

	var user models.User
	if err := database.DB.Where("username = ?", input.Username).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Username atau password salah"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Username atau password salah"})
		return
	}

	// Buat Token JWT
	token, err := utils.GenerateToken(user.ID, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Gagal membuat token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"role":     user.Role,
		},
	})
}

func Register(c *gin.Context) {
	var input RegisterInput

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Data tidak lengkap", "details": err.Error()})
		return
	}

	// 1. Cek Konfirmasi Password
	if input.Password != input.ConfirmPassword {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Konfirmasi password tidak cocok!"})
		return
	}

	// 2. Hash Password
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)

	newUser := models.User{
		Username: input.Username,
		Password: string(hashedPassword),
		Role:     "user",
	}

	if err := database.DB.Create(&newUser).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username sudah dipakai!"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Registrasi berhasil!",
		"user": gin.H{
			"id":       newUser.ID,
			"username": newUser.Username,
		},
	})
}

// FUNGSI KHUSUS: Buat Admin pertama (dijaga Secret Key dari .env)
func SetupAdmin(c *gin.Context) {
	var input struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
		Secret   string `json:"secret" binding:"required"` // Kunci Pengaman
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Data tidak lengkap", "details": err.Error()})
		return
	}

	if input.Secret != utils.GetEnv("ADMIN_SETUP_SECRET", "") || input.Secret == "" {
		c.JSON(http.StatusForbidden, gin.H{"error": "Kunci rahasia salah!"})
		return
	}

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)

	admin := models.User{
		Username: input.Username,
		Password: string(hashedPassword),
		Role:     "admin",
	}

	if err := database.DB.Create(&admin).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Gagal buat admin. Username mungkin sudah ada."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Admin berhasil dibuat!",
		"data": gin.H{
			"username": admin.Username,
			"role":     admin.Role,
		},
	})
}

// Helper: Ambil UserID dari Token (0 = guest)
func getUserID(c *gin.Context) uint {
	id, exists := c.Get("user_id")
	if !exists {
		return 0
	}
	return id.(uint)
}
