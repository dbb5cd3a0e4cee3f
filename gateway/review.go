package gateway

import (
	"errors"

	"mpg-backend/database"
	"mpg-backend/models"
)

var (
	ErrLogNotFound   = errors.New("log pembayaran tidak ditemukan")
	ErrInvalidStatus = errors.New("status harus: pending / approved / rejected")
)

// ReviewWorkflow: state machine review bukti pembayaran.
// Transisi status SENGAJA dibiarkan bebas (approved boleh balik rejected,
// re-approve boleh) — mengikuti perilaku lama, lihat DESIGN.md.
type ReviewWorkflow struct {
	Settings Settings
}

func NewReviewWorkflow(s Settings) *ReviewWorkflow {
	return &ReviewWorkflow{Settings: s}
}

func isValidPaymentStatus(s string) bool {
	return s == models.PaymentStatusPending ||
		s == models.PaymentStatusApproved ||
		s == models.PaymentStatusRejected
}

// UpdateStatus: timpa status log, lalu coba sinkronkan status order.
// Return (log, apakah sync jalan, error). Log tidak ketemu -> tidak ada
// yang dimutasi sama sekali.
func (rw *ReviewWorkflow) UpdateStatus(logID uint, newStatus string) (*models.PaymentLog, bool, error) {
	if !isValidPaymentStatus(newStatus) {
		return nil, false, ErrInvalidStatus
	}

	var logRow models.PaymentLog
	if err := database.DB.First(&logRow, logID).Error; err != nil {
		return nil, false, ErrLogNotFound
	}

	// Update status log tanpa syarat (tidak dicek one-way)
	logRow.Status = newStatus
	if err := database.DB.Save(&logRow).Error; err != nil {
		return nil, false, err
	}

	synced := rw.SyncOrderStatus(logRow.OrderID, newStatus)

	return &logRow, synced, nil
}

// SyncOrderStatus: transisi status order SATU ARAH, dijaga ketat:
//   - auto-sync mati -> tidak ada mutasi order, apapun statusnya
//   - order harus masih "on-hold" (order yang sudah digeser manual oleh
//     operator tidak boleh ketimpa update status yang basi/berulang)
//   - order harus dibayar lewat gateway ini
//
// approved -> processing, rejected -> cancelled, pending -> tidak diapa-apakan.
// Return false artinya sync tidak terjadi (bukan error, cuma no-op).
func (rw *ReviewWorkflow) SyncOrderStatus(orderID uint, status string) bool {
	if !rw.Settings.AutoSync {
		return false
	}

	var order models.Order
	if err := database.DB.First(&order, orderID).Error; err != nil {
		return false
	}

	if order.Status != models.OrderStatusOnHold {
		return false
	}

	if order.PaymentMethod != PaymentMethodID {
		return false
	}

	switch status {
	case models.PaymentStatusApproved:
		order.Status = models.OrderStatusProcessing
		if err := database.DB.Save(&order).Error; err != nil {
			return false
		}
		AddOrderNote(order.ID, "Pembayaran manual DISETUJUI admin. Screenshot bukti pembayaran sudah diverifikasi.")

	case models.PaymentStatusRejected:
		order.Status = models.OrderStatusCancelled
		if err := database.DB.Save(&order).Error; err != nil {
			return false
		}
		AddOrderNote(order.ID, "Pembayaran manual DITOLAK admin. Verifikasi screenshot bukti pembayaran gagal.")

	case models.PaymentStatusPending:
		// Masih menunggu review, order tidak disentuh
	}

	return true
}

// Catatan audit di order
func AddOrderNote(orderID uint, note string) {
	database.DB.Create(&models.OrderNote{OrderID: orderID, Note: note})
}
