package main

import (
	"log"

	"mpg-backend/database"
	"mpg-backend/gateway"
	"mpg-backend/handlers"
	"mpg-backend/middleware"
	"mpg-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("File .env tidak ditemukan, pakai environment bawaan")
	}

	database.ConnectDatabase()

	// Folder screenshot bukti pembayaran (flat, nama file dijamin unik)
	uploadDir := utils.GetEnv("UPLOAD_DIR", "./uploads")
	baseURL := utils.GetEnv("BASE_URL", "http://localhost:8080")
	handlers.FileStore = gateway.NewFileStore(uploadDir, baseURL+"/uploads")

	r := gin.Default()

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(config))

	// File upload dilayani statis (URL publik screenshot & QR)
	r.Static("/uploads", uploadDir)

	// Public Routes
	r.POST("/login", handlers.Login)
	r.POST("/register", handlers.Register)
	r.POST("/setup-admin", handlers.SetupAdmin) // Bootstrap admin pertama (pakai secret)

	// Checkout Routes (guest BOLEH, makanya auth-nya opsional)
	shop := r.Group("/api")
	shop.Use(middleware.OptionalAuthMiddleware())
	{
		shop.GET("/gateway", handlers.GetGatewayFields)
		shop.POST("/upload", handlers.UploadFile)
		shop.POST("/upload/delete", handlers.DeleteFile)
		shop.POST("/checkout", handlers.Checkout)
		shop.GET("/orders/:key", handlers.GetOrderByKey)
	}

	// Keranjang butuh login (keranjang nempel di user)
	cart := r.Group("/api/cart")
	cart.Use(middleware.JwtAuthMiddleware())
	{
		cart.POST("", handlers.AddCartItem)
		cart.GET("", handlers.GetCart)
		cart.DELETE("", handlers.ClearCart)
	}

	// Halaman Admin (Butuh Token + Role admin)
	admin := r.Group("/api/admin")
	admin.Use(middleware.JwtAuthMiddleware())
	admin.Use(middleware.RequireAdmin())
	{
		admin.GET("/payment-logs", handlers.GetPaymentLogs)
		admin.PATCH("/payment-logs/:id/status", handlers.UpdatePaymentStatus)
		admin.GET("/payment-logs/export", handlers.ExportPaymentLogs)
		admin.POST("/payment-logs/:id/analyze", handlers.AnalyzeScreenshot)

		admin.POST("/screen-options", handlers.SaveScreenOptions)
		admin.GET("/orders/:id/payment", handlers.GetOrderPaymentDetails)

		admin.GET("/settings", handlers.GetSettings)
		admin.PUT("/settings", handlers.UpdateSettings)
		admin.POST("/settings/qrcode", handlers.GenerateQRCode)
	}

	r.Run(":" + utils.GetEnv("PORT", "8080"))
}
