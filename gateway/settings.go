package gateway

import (
	"mpg-backend/database"
	"mpg-backend/models"
)

// ID metode pembayaran ini di field payment_method order
const PaymentMethodID = "manual_payment_gateway"

// Settings: konfigurasi gateway yang EKSPLISIT dioper ke checkout & review
// workflow, bukan dibaca diam-diam dari global.
type Settings struct {
	Enabled      bool   `json:"enabled"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Instructions string `json:"instructions"`
	QRCode       string `json:"qr_code"`
	MaxFiles     int    `json:"max_files"`
	AutoSync     bool   `json:"auto_sync_order_status"`
}

func DefaultSettings() Settings {
	return Settings{
		Enabled:      true,
		Title:        "Pembayaran Manual",
		Description:  "Silakan upload screenshot bukti pembayaran beserta detail transaksinya.",
		Instructions: "Screenshot pembayaran kamu akan diverifikasi oleh admin. Mohon ditunggu ya.",
		MaxFiles:     1,
		AutoSync:     true,
	}
}

// Ambil settings dari DB (baris id=1). Kalau belum ada -> default.
func LoadSettings() Settings {
	var row models.GatewaySetting
	if err := database.DB.First(&row, 1).Error; err != nil {
		return DefaultSettings()
	}

	return Settings{
		Enabled:      row.Enabled,
		Title:        row.Title,
		Description:  row.Description,
		Instructions: row.Instructions,
		QRCode:       row.QRCode,
		MaxFiles:     clampMaxFiles(row.MaxFiles),
		AutoSync:     row.AutoSyncOrderStatus,
	}
}

func SaveSettings(s Settings) error {
	row := models.GatewaySetting{
		ID:                  1,
		Enabled:             s.Enabled,
		Title:               s.Title,
		Description:         s.Description,
		Instructions:        s.Instructions,
		QRCode:              s.QRCode,
		MaxFiles:            clampMaxFiles(s.MaxFiles),
		AutoSyncOrderStatus: s.AutoSync,
	}

	// Save dengan primary key keisi = UPDATE; baris pertama harus di-Create dulu
	var existing models.GatewaySetting
	if err := database.DB.First(&existing, 1).Error; err != nil {
		return database.DB.Create(&row).Error
	}
	return database.DB.Save(&row).Error
}

// Jumlah file upload dibatasi 1-5 (field pertama wajib)
func clampMaxFiles(n int) int {
	if n < 1 {
		return 1
	}
	if n > 5 {
		return 5
	}
	return n
}
