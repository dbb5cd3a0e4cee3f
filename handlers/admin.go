package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"

	"mpg-backend/database"
	"mpg-backend/gateway"
	"mpg-backend/models"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"
)

// Pilihan per-page yang valid untuk tabel log (di luar ini -> fallback 50)
var validPerPage = map[int]bool{10: true, 20: true, 50: true, 100: true, 200: true}

const defaultPerPage = 50

// Baris tabel log untuk admin: log + status order LIVE (dijoin saat render,
// bukan snapshot)
type paymentLogRow struct {
	ID            uint   `json:"id"`
	OrderID       uint   `json:"order_id"`
	OrderStatus   string `json:"order_status"`
	TransactionID string `json:"transaction_id"`
	FileName      string `json:"file_name"`
	FilePath      string `json:"file_path"`
	User          string `json:"user"`
	Status        string `json:"status"`
	CreatedAt     string `json:"created_at"`
}

// 1. LIST PAYMENT LOGS (pagination + preferensi per operator)
// GET /api/admin/payment-logs?page=1&per_page=50
func GetPaymentLogs(c *gin.Context) {
	adminID := getUserID(c)
	pref := loadPreference(adminID)

	// ?per_page= menimpa DAN disimpan sebagai preferensi operator
	perPage := pref.PerPage
	if v := c.Query("per_page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			perPage = n
			pref.PerPage = n
			savePreference(pref)
		}
	}
	if !validPerPage[perPage] {
		perPage = defaultPerPage
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * perPage

	var total int64
	database.DB.Model(&models.PaymentLog{}).Count(&total)

	var logs []models.PaymentLog
	database.DB.Order("created_at desc").Limit(perPage).Offset(offset).Find(&logs)

	rows := make([]paymentLogRow, 0, len(logs))
	for _, logRow := range logs {
		rows = append(rows, paymentLogRow{
			ID:            logRow.ID,
			OrderID:       logRow.OrderID,
			OrderStatus:   liveOrderStatus(logRow.OrderID),
			TransactionID: logRow.TransactionID,
			FileName:      logRow.FileName,
			FilePath:      logRow.FilePath,
			User:          displayName(logRow.UserID),
			Status:        logRow.Status,
			CreatedAt:     logRow.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	settings := gateway.LoadSettings()

	c.JSON(http.StatusOK, gin.H{
		"data": rows,
		"meta": gin.H{
			"current_page": page,
			"per_page":     perPage,
			"total_data":   total,
			"total_pages":  math.Ceil(float64(total) / float64(perPage)),
		},
		"auto_sync_enabled": settings.AutoSync,
		"hidden_columns":    hiddenColumns(pref),
	})
}

// 2. UPDATE STATUS LOG (review workflow)
// PATCH /api/admin/payment-logs/:id/status {status}
func UpdatePaymentStatus(c *gin.Context) {
	logID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID log tidak valid"})
		return
	}

	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Format data salah"})
		return
	}

	// Settings dibaca ULANG tiap request; admin bisa saja baru toggle auto-sync
	rw := gateway.NewReviewWorkflow(gateway.LoadSettings())

	logRow, synced, err := rw.UpdateStatus(uint(logID), input.Status)
	if errors.Is(err, gateway.ErrLogNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Log pembayaran tidak ditemukan."})
		return
	}
	if errors.Is(err, gateway.ErrInvalidStatus) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Gagal update status."})
		return
	}

	// Pesan dibedakan: sync kejadian vs tidak (auto-sync mati / order sudah
	// digeser manual / beda metode pembayaran) — dua-duanya SUKSES
	message := "Status pembayaran berhasil diupdate. Status order tidak disinkronkan."
	if synced {
		message = "Status berhasil diupdate dan status order ikut disinkronkan."
	}

	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"synced":  synced,
		"data": gin.H{
			"id":           logRow.ID,
			"order_id":     logRow.OrderID,
			"status":       logRow.Status,
			"order_status": liveOrderStatus(logRow.OrderID),
		},
	})
}

// 3. SCREEN OPTIONS (kolom tersembunyi + per-page) per operator
// POST /api/admin/screen-options {hidden_columns, per_page}
func SaveScreenOptions(c *gin.Context) {
	adminID := getUserID(c)

	var input struct {
		HiddenColumns []string `json:"hidden_columns"`
		PerPage       int      `json:"per_page"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Format data salah"})
		return
	}

	pref := loadPreference(adminID)

	if input.PerPage != 0 {
		if !validPerPage[input.PerPage] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "per_page harus salah satu dari: 10, 20, 50, 100, 200"})
			return
		}
		pref.PerPage = input.PerPage
	}

	if input.HiddenColumns != nil {
		raw, _ := json.Marshal(input.HiddenColumns)
		pref.HiddenColumnsJSON = string(raw)
	}

	if err := savePreference(pref); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Gagal menyimpan preferensi"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Preferensi tersimpan"})
}

// 4. DETAIL PEMBAYARAN DI ORDER (pengganti meta box di halaman edit order)
// GET /api/admin/orders/:id/payment
func GetOrderPaymentDetails(c *gin.Context) {
	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID order tidak valid"})
		return
	}

	var order models.Order
	if err := database.DB.First(&order, orderID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order tidak ditemukan"})
		return
	}

	if order.PaymentMethod != gateway.PaymentMethodID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order ini tidak memakai pembayaran manual"})
		return
	}

	var files []gateway.UploadedFile
	if order.FilesJSON != "" {
		json.Unmarshal([]byte(order.FilesJSON), &files)
	}

	var logs []models.PaymentLog
	database.DB.Where("order_id = ?", order.ID).Order("created_at desc").Find(&logs)

	var notes []models.OrderNote
	database.DB.Where("order_id = ?", order.ID).Order("created_at asc").Find(&notes)

	c.JSON(http.StatusOK, gin.H{
		"order_id":       order.ID,
		"order_status":   order.Status,
		"transaction_id": order.TransactionID,
		"files":          files,
		"logs":           logs,
		"notes":          notes,
	})
}

// 5. SETTINGS GATEWAY
// GET /api/admin/settings
func GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, gateway.LoadSettings())
}

// PUT /api/admin/settings
func UpdateSettings(c *gin.Context) {
	var input gateway.Settings
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Format data salah", "details": err.Error()})
		return
	}

	if err := gateway.SaveSettings(input); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Gagal menyimpan settings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Settings tersimpan", "data": gateway.LoadSettings()})
}

// 6. GENERATE QR CODE pembayaran dari URI (disimpan ke folder upload,
// URL-nya masuk settings)
// POST /api/admin/settings/qrcode {payment_uri}
func GenerateQRCode(c *gin.Context) {
	var input struct {
		PaymentURI string `json:"payment_uri" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "payment_uri wajib diisi"})
		return
	}

	png, err := qrcode.Encode(input.PaymentURI, qrcode.Medium, 256)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Gagal generate QR code"})
		return
	}

	name, url, err := FileStore.Store("payment-qr.png", bytes.NewReader(png))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Gagal menyimpan QR code"})
		return
	}

	settings := gateway.LoadSettings()
	settings.QRCode = url
	if err := gateway.SaveSettings(settings); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Gagal menyimpan settings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "QR code dibuat", "name": name, "qr_code": url})
}

// ---------------------------
// HELPER
// ---------------------------

func loadPreference(userID uint) models.AdminPreference {
	var pref models.AdminPreference
	if err := database.DB.Where("user_id = ?", userID).First(&pref).Error; err != nil {
		return models.AdminPreference{UserID: userID, PerPage: defaultPerPage}
	}
	return pref
}

func savePreference(pref models.AdminPreference) error {
	return database.DB.Save(&pref).Error
}

func hiddenColumns(pref models.AdminPreference) []string {
	cols := []string{}
	if pref.HiddenColumnsJSON != "" {
		json.Unmarshal([]byte(pref.HiddenColumnsJSON), &cols)
	}
	return cols
}

// Status order live; order hilang -> "unknown" (baris log tetap tampil)
func liveOrderStatus(orderID uint) string {
	var order models.Order
	if err := database.DB.Select("status").First(&order, orderID).Error; err != nil {
		return "unknown"
	}
	return order.Status
}

func displayName(userID uint) string {
	if userID == 0 {
		return "Guest"
	}
	var user models.User
	if err := database.DB.Select("username").First(&user, userID).Error; err != nil {
		return "Guest"
	}
	return user.Username
}
