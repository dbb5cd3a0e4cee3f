package models

import "time"

// Status pembayaran yang valid untuk PaymentLog
const (
	PaymentStatusPending  = "pending"
	PaymentStatusApproved = "approved"
	PaymentStatusRejected = "rejected"
)

// PaymentLog: satu baris per file bukti pembayaran per order.
// Baris TIDAK PERNAH dihapus, hanya field Status yang boleh berubah
// (lewat review workflow admin).
type PaymentLog struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	OrderID       uint      `json:"order_id"`
	TransactionID string    `json:"transaction_id"` // Opsional, diisi customer
	FilePath      string    `json:"file_path"`      // URL publik file
	FileName      string    `json:"file_name"`      // Nama file di disk
	UserID        uint      `json:"user_id"`        // 0 = guest checkout
	Status        string    `gorm:"default:pending" json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}
