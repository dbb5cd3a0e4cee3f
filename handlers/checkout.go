package handlers

import (
	"encoding/json"
	"net/http"

	"mpg-backend/database"
	"mpg-backend/gateway"
	"mpg-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GET /api/gateway
// Deskripsi field checkout untuk client: judul, deskripsi, QR, jumlah slot file.
func GetGatewayFields(c *gin.Context) {
	settings := gateway.LoadSettings()
	if !settings.Enabled {
		c.JSON(http.StatusNotFound, gin.H{"error": gateway.ErrGatewayOffline.Error()})
		return
	}

	gw := gateway.NewManualGateway(settings)
	c.JSON(http.StatusOK, gw.Fields())
}

// POST /api/cart {product_id, qty}
func AddCartItem(c *gin.Context) {
	userID := getUserID(c)

	var input struct {
		ProductID uint `json:"product_id" binding:"required"`
		Qty       int  `json:"qty" binding:"required,min=1"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Format data salah", "details": err.Error()})
		return
	}

	var product models.Product
	if err := database.DB.First(&product, input.ProductID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produk tidak ditemukan"})
		return
	}

	if product.Stock < input.Qty {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Stok tidak cukup"})
		return
	}

	item := models.CartItem{UserID: userID, ProductID: input.ProductID, Qty: input.Qty}
	if err := database.DB.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Gagal menambah ke keranjang"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Masuk keranjang!", "data": item})
}

// GET /api/cart
func GetCart(c *gin.Context) {
	userID := getUserID(c)

	var items []models.CartItem
	database.DB.Preload("Product").Where("user_id = ?", userID).Find(&items)

	total := 0
	for _, it := range items {
		total += it.Product.Price * it.Qty
	}

	c.JSON(http.StatusOK, gin.H{"data": items, "total": total})
}

// DELETE /api/cart
func ClearCart(c *gin.Context) {
	userID := getUserID(c)
	database.DB.Where("user_id = ?", userID).Delete(&models.CartItem{})
	c.JSON(http.StatusOK, gin.H{"message": "Keranjang dikosongkan"})
}

type checkoutItemInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	Qty       int  `json:"qty" binding:"required,min=1"`
}

type checkoutInput struct {
	// Daftar file hasil /api/upload yang ditampung client.
	// Minimal satu, dicek lagi server-side.
	UploadedFiles []gateway.UploadedFile `json:"uploaded_files"`
	TransactionID string                 `json:"transaction_id"`

	// Guest tidak punya keranjang server-side, boleh kirim item langsung
	Items []checkoutItemInput `json:"items"`
}

// POST /api/checkout
// Bikin order dari keranjang (atau items di payload), lalu serahkan ke
// gateway: log pembayaran, metadata order, status on-hold, stok, keranjang.
func Checkout(c *gin.Context) {
	userID := getUserID(c)

	settings := gateway.LoadSettings()
	if !settings.Enabled {
		c.JSON(http.StatusBadRequest, gin.H{"error": gateway.ErrGatewayOffline.Error()})
		return
	}

	var input checkoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Format data salah", "details": err.Error()})
		return
	}

	gw := gateway.NewManualGateway(settings)

	// 1. Validasi field gateway SEBELUM order dibuat: tanpa file, tidak ada
	// order yang sampai ke on-hold
	if err := gw.ValidateFields(input.UploadedFiles); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Jangan terima lebih banyak file dari slot yang dikonfigurasi
	maxFiles := gw.Fields().MaxFiles
	if len(input.UploadedFiles) > maxFiles {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Jumlah file melebihi batas yang diizinkan."})
		return
	}

	// 2. Kumpulkan item order: dari payload (guest) atau keranjang
	var orderItems []models.OrderItem
	total := 0

	if len(input.Items) > 0 {
		for _, it := range input.Items {
			var product models.Product
			if err := database.DB.First(&product, it.ProductID).Error; err != nil {
				c.JSON(http.StatusNotFound, gin.H{"error": "Produk tidak ditemukan"})
				return
			}
			orderItems = append(orderItems, models.OrderItem{ProductID: it.ProductID, Qty: it.Qty, Price: product.Price})
			total += product.Price * it.Qty
		}
	} else {
		var cartItems []models.CartItem
		database.DB.Preload("Product").Where("user_id = ?", userID).Find(&cartItems)
		for _, it := range cartItems {
			orderItems = append(orderItems, models.OrderItem{ProductID: it.ProductID, Qty: it.Qty, Price: it.Product.Price})
			total += it.Product.Price * it.Qty
		}
	}

	if len(orderItems) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Keranjang masih kosong"})
		return
	}

	// 3. Buat order (status awal pending)
	order := models.Order{
		OrderKey:      "mpg_" + uuid.NewString(),
		UserID:        userID,
		Status:        models.OrderStatusPending,
		PaymentMethod: gateway.PaymentMethodID,
		Total:         total,
		Items:         orderItems,
	}
	if err := database.DB.Create(&order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Gagal membuat order"})
		return
	}

	// 4. Proses pembayaran manual
	redirect, err := gw.ProcessPayment(&order, input.UploadedFiles, input.TransactionID)
	if err != nil {
		// Order tetap pending, tidak ada state setengah jadi
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "result": "fail"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result":    "success",
		"redirect":  redirect,
		"order_key": order.OrderKey,
	})
}

// GET /api/orders/:key
// Halaman konfirmasi (thank-you): status order + instruksi pembayaran manual.
// Diakses pakai order key (UUID), jadi aman untuk guest.
func GetOrderByKey(c *gin.Context) {
	key := c.Param("key")

	var order models.Order
	if err := database.DB.Preload("Items").Where("order_key = ?", key).First(&order).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order tidak ditemukan"})
		return
	}

	resp := gin.H{
		"order_key":      order.OrderKey,
		"status":         order.Status,
		"total":          order.Total,
		"payment_method": order.PaymentMethod,
		"created_at":     order.CreatedAt,
		"items":          order.Items,
	}

	if order.PaymentMethod == gateway.PaymentMethodID {
		settings := gateway.LoadSettings()
		resp["message"] = "Terima kasih atas pesananmu. Mohon tunggu verifikasi pembayaran."
		resp["instructions"] = settings.Instructions

		var files []gateway.UploadedFile
		if order.FilesJSON != "" {
			json.Unmarshal([]byte(order.FilesJSON), &files)
		}
		resp["uploaded_files"] = files
		resp["transaction_id"] = order.TransactionID
	}

	c.JSON(http.StatusOK, resp)
}
