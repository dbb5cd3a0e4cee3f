package models

import "time"

// GatewaySetting: satu baris konfigurasi gateway (selalu ID = 1).
// Ini pengganti settings panel di host, diedit lewat endpoint admin.
type GatewaySetting struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	Enabled             bool      `json:"enabled"`
	Title               string    `json:"title"`
	Description         string    `json:"description"`
	Instructions        string    `json:"instructions"`
	QRCode              string    `json:"qr_code"`   // URL gambar QR
	MaxFiles            int       `json:"max_files"` // 1-5
	AutoSyncOrderStatus bool      `json:"auto_sync_order_status"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// AdminPreference: preferensi tampilan per operator (per-page & kolom tersembunyi),
// setara screen options di halaman admin host.
type AdminPreference struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	UserID            uint      `gorm:"unique" json:"user_id"`
	PerPage           int       `json:"per_page"`
	HiddenColumnsJSON string    `json:"-"` // JSON array nama kolom
	UpdatedAt         time.Time `json:"updated_at"`
}
