package gateway

import (
	"encoding/json"
	"errors"

	"mpg-backend/database"
	"mpg-backend/models"

	"gorm.io/gorm"
)

var (
	ErrNoFiles        = errors.New("Mohon upload minimal satu screenshot pembayaran.")
	ErrPaymentFailed  = errors.New("Pemrosesan pembayaran gagal. Silakan coba lagi.")
	ErrGatewayOffline = errors.New("Metode pembayaran manual sedang tidak aktif.")
)

// UploadedFile: hasil upload yang diakumulasi client sebelum submit order.
// Setelah checkout, datanya dilebur ke payment_logs + metadata order.
type UploadedFile struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Size int64  `json:"size"`
	Type string `json:"type"`
}

// FieldsPayload: deskripsi field checkout untuk client (judul, QR,
// berapa slot file, dst)
type FieldsPayload struct {
	Title              string `json:"title"`
	Description        string `json:"description"`
	QRCode             string `json:"qr_code,omitempty"`
	MaxFiles           int    `json:"max_files"`
	FirstFileRequired  bool   `json:"first_file_required"`
	TransactionIDField bool   `json:"transaction_id_field"`
}

// PaymentGateway: kontrak kemampuan sebuah metode pembayaran.
// Satu implementasi konkrit saja (ManualGateway), bukan inheritance.
type PaymentGateway interface {
	Fields() FieldsPayload
	ValidateFields(files []UploadedFile) error
	ProcessPayment(order *models.Order, files []UploadedFile, transactionID string) (string, error)
}

// ManualGateway: customer bayar di luar sistem, upload buktinya,
// admin verifikasi belakangan.
type ManualGateway struct {
	Settings Settings
}

func NewManualGateway(s Settings) *ManualGateway {
	return &ManualGateway{Settings: s}
}

func (g *ManualGateway) Fields() FieldsPayload {
	return FieldsPayload{
		Title:              g.Settings.Title,
		Description:        g.Settings.Description,
		QRCode:             g.Settings.QRCode,
		MaxFiles:           clampMaxFiles(g.Settings.MaxFiles),
		FirstFileRequired:  true,
		TransactionIDField: true,
	}
}

// Blokir submit kalau belum ada satupun file terkumpul (cek server-side,
// client-side cuma pagar pertama)
func (g *ManualGateway) ValidateFields(files []UploadedFile) error {
	if len(files) == 0 {
		return ErrNoFiles
	}
	return nil
}

// ProcessPayment dipanggil saat order disubmit:
// 1. satu baris payment log per file (status pending)
// 2. tempel daftar file + transaction id ke order
// 3. order masuk "on-hold" menunggu verifikasi
// 4. kurangi stok & kosongkan keranjang
// Return path redirect ke halaman konfirmasi.
func (g *ManualGateway) ProcessPayment(order *models.Order, files []UploadedFile, transactionID string) (string, error) {
	if len(files) == 0 {
		// File hilang di tahap ini = pembayaran gagal, order tidak jadi on-hold
		return "", ErrPaymentFailed
	}

	// 1. Log submission pembayaran
	for _, f := range files {
		logRow := models.PaymentLog{
			OrderID:       order.ID,
			TransactionID: transactionID,
			FilePath:      f.Path,
			FileName:      f.Name,
			UserID:        order.UserID,
			Status:        models.PaymentStatusPending,
		}
		if err := database.DB.Create(&logRow).Error; err != nil {
			return "", err
		}
	}

	// 2. Simpan metadata di order
	filesJSON, err := json.Marshal(files)
	if err != nil {
		return "", err
	}
	order.FilesJSON = string(filesJSON)
	order.TransactionID = transactionID
	order.PaymentMethod = PaymentMethodID

	// 3. Order on-hold menunggu review manual
	order.Status = models.OrderStatusOnHold
	if err := database.DB.Save(order).Error; err != nil {
		return "", err
	}
	AddOrderNote(order.ID, "Menunggu verifikasi screenshot pembayaran.")

	// 4. Kurangi stok produk
	for _, item := range order.Items {
		database.DB.Model(&models.Product{}).
			Where("id = ?", item.ProductID).
			UpdateColumn("stock", gorm.Expr("stock - ?", item.Qty))
	}

	// Kosongkan keranjang (guest tidak punya keranjang server-side)
	if order.UserID != 0 {
		database.DB.Where("user_id = ?", order.UserID).Delete(&models.CartItem{})
	}

	return "/order-received/" + order.OrderKey, nil
}
