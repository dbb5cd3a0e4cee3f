package models

import "time"

// Status order (mengikuti lifecycle order e-commerce pada umumnya)
const (
	OrderStatusPending    = "pending"
	OrderStatusOnHold     = "on-hold" // Menunggu verifikasi manual
	OrderStatusProcessing = "processing"
	OrderStatusCancelled  = "cancelled"
	OrderStatusCompleted  = "completed"
)

type Product struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `json:"name"`
	Price     int       `json:"price"` // Dalam satuan terkecil (Rupiah)
	Stock     int       `json:"stock"`
	CreatedAt time.Time `json:"created_at"`
}

// CartItem: keranjang server-side per user
type CartItem struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	UserID    uint `json:"user_id"`
	ProductID uint `json:"product_id"`
	Qty       int  `json:"qty"`

	Product Product `gorm:"foreignKey:ProductID" json:"product"`
}

type Order struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	OrderKey      string `gorm:"unique" json:"order_key"` // UUID, dipakai di halaman konfirmasi
	UserID        uint   `json:"user_id"`                 // 0 = guest
	Status        string `gorm:"default:pending" json:"status"`
	PaymentMethod string `json:"payment_method"`
	Total         int    `json:"total"`

	// Metadata dari gateway pembayaran manual (copy denormalized,
	// sumber audit yang sebenarnya ada di payment_logs)
	TransactionID string `json:"transaction_id"`
	FilesJSON     string `json:"-"` // JSON array UploadedFile

	CreatedAt time.Time `json:"created_at"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
	Notes []OrderNote `gorm:"foreignKey:OrderID" json:"-"`
}

type OrderItem struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	OrderID   uint `json:"order_id"`
	ProductID uint `json:"product_id"`
	Qty       int  `json:"qty"`
	Price     int  `json:"price"` // Snapshot harga saat checkout
}

// OrderNote: catatan audit yang nempel di order (siapa approve, kapan on-hold, dll)
type OrderNote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderID   uint      `json:"order_id"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_at"`
}
