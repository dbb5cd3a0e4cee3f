package gateway_test

import (
	"testing"

	"mpg-backend/database"
	"mpg-backend/gateway"
	"mpg-backend/models"

	"github.com/stretchr/testify/assert"
)

// Seed satu order + satu log pending, return keduanya
func seedOrderDenganLog(t *testing.T, orderStatus, paymentMethod string) (models.Order, models.PaymentLog) {
	t.Helper()
	database.ConnectTestDatabase()

	order := models.Order{
		OrderKey:      "mpg_test",
		UserID:        1,
		Status:        orderStatus,
		PaymentMethod: paymentMethod,
		Total:         50000,
	}
	assert.NoError(t, database.DB.Create(&order).Error)

	logRow := models.PaymentLog{
		OrderID:       order.ID,
		TransactionID: "TXN123",
		FileName:      "bukti.png",
		FilePath:      "http://localhost:8080/uploads/bukti.png",
		UserID:        1,
		Status:        models.PaymentStatusPending,
	}
	assert.NoError(t, database.DB.Create(&logRow).Error)

	return order, logRow
}

func reloadOrder(t *testing.T, id uint) models.Order {
	t.Helper()
	var order models.Order
	assert.NoError(t, database.DB.First(&order, id).Error)
	return order
}

func TestReview_ApproveSyncKeProcessing(t *testing.T) {
	order, logRow := seedOrderDenganLog(t, models.OrderStatusOnHold, gateway.PaymentMethodID)

	rw := gateway.NewReviewWorkflow(gateway.Settings{AutoSync: true})
	updated, synced, err := rw.UpdateStatus(logRow.ID, models.PaymentStatusApproved)

	assert.NoError(t, err)
	assert.True(t, synced)
	assert.Equal(t, models.PaymentStatusApproved, updated.Status)
	assert.Equal(t, models.OrderStatusProcessing, reloadOrder(t, order.ID).Status)

	// Catatan audit ikut nempel di order
	var notes []models.OrderNote
	database.DB.Where("order_id = ?", order.ID).Find(&notes)
	assert.Len(t, notes, 1)
}

func TestReview_RejectSyncKeCancelled(t *testing.T) {
	order, logRow := seedOrderDenganLog(t, models.OrderStatusOnHold, gateway.PaymentMethodID)

	rw := gateway.NewReviewWorkflow(gateway.Settings{AutoSync: true})
	updated, synced, err := rw.UpdateStatus(logRow.ID, models.PaymentStatusRejected)

	assert.NoError(t, err)
	assert.True(t, synced)
	assert.Equal(t, models.PaymentStatusRejected, updated.Status)
	assert.Equal(t, models.OrderStatusCancelled, reloadOrder(t, order.ID).Status)
}

func TestReview_PendingTidakSentuhOrder(t *testing.T) {
	order, logRow := seedOrderDenganLog(t, models.OrderStatusOnHold, gateway.PaymentMethodID)

	rw := gateway.NewReviewWorkflow(gateway.Settings{AutoSync: true})
	_, _, err := rw.UpdateStatus(logRow.ID, models.PaymentStatusPending)

	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusOnHold, reloadOrder(t, order.ID).Status)
}

func TestReview_AutoSyncMatiOrderTidakBerubah(t *testing.T) {
	order, logRow := seedOrderDenganLog(t, models.OrderStatusOnHold, gateway.PaymentMethodID)

	rw := gateway.NewReviewWorkflow(gateway.Settings{AutoSync: false})

	for _, status := range []string{
		models.PaymentStatusApproved,
		models.PaymentStatusRejected,
		models.PaymentStatusPending,
	} {
		updated, synced, err := rw.UpdateStatus(logRow.ID, status)
		assert.NoError(t, err)
		assert.False(t, synced)
		assert.Equal(t, status, updated.Status) // Log tetap keupdate
		assert.Equal(t, models.OrderStatusOnHold, reloadOrder(t, order.ID).Status)
	}
}

func TestReview_OrderBukanOnHoldTidakDisentuh(t *testing.T) {
	// Order yang sudah digeser manual operator tidak boleh ketimpa
	order, logRow := seedOrderDenganLog(t, models.OrderStatusCompleted, gateway.PaymentMethodID)

	rw := gateway.NewReviewWorkflow(gateway.Settings{AutoSync: true})
	_, synced, err := rw.UpdateStatus(logRow.ID, models.PaymentStatusApproved)

	assert.NoError(t, err)
	assert.False(t, synced)
	assert.Equal(t, models.OrderStatusCompleted, reloadOrder(t, order.ID).Status)
}

func TestReview_BedaMetodePembayaranTidakDisentuh(t *testing.T) {
	order, logRow := seedOrderDenganLog(t, models.OrderStatusOnHold, "bank_transfer")

	rw := gateway.NewReviewWorkflow(gateway.Settings{AutoSync: true})
	_, synced, err := rw.UpdateStatus(logRow.ID, models.PaymentStatusApproved)

	assert.NoError(t, err)
	assert.False(t, synced)
	assert.Equal(t, models.OrderStatusOnHold, reloadOrder(t, order.ID).Status)
}

func TestReview_OrderHilangTetapUpdateLog(t *testing.T) {
	_, logRow := seedOrderDenganLog(t, models.OrderStatusOnHold, gateway.PaymentMethodID)

	// Log menunjuk order yang tidak ada
	logRow.OrderID = 9999
	assert.NoError(t, database.DB.Save(&logRow).Error)

	rw := gateway.NewReviewWorkflow(gateway.Settings{AutoSync: true})
	updated, synced, err := rw.UpdateStatus(logRow.ID, models.PaymentStatusApproved)

	assert.NoError(t, err)
	assert.False(t, synced)
	assert.Equal(t, models.PaymentStatusApproved, updated.Status)
}

func TestReview_TransisiBolakBalikDiizinkan(t *testing.T) {
	// State machine SENGAJA longgar: approved boleh balik rejected dan
	// sebaliknya, side effect-nya nembak ulang
	order, logRow := seedOrderDenganLog(t, models.OrderStatusOnHold, gateway.PaymentMethodID)

	rw := gateway.NewReviewWorkflow(gateway.Settings{AutoSync: true})

	_, _, err := rw.UpdateStatus(logRow.ID, models.PaymentStatusApproved)
	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusProcessing, reloadOrder(t, order.ID).Status)

	// Order sudah bukan on-hold, jadi sync kedua jadi no-op
	updated, synced, err := rw.UpdateStatus(logRow.ID, models.PaymentStatusRejected)
	assert.NoError(t, err)
	assert.False(t, synced)
	assert.Equal(t, models.PaymentStatusRejected, updated.Status)
	assert.Equal(t, models.OrderStatusProcessing, reloadOrder(t, order.ID).Status)
}

func TestReview_LogTidakKetemu(t *testing.T) {
	database.ConnectTestDatabase()

	rw := gateway.NewReviewWorkflow(gateway.Settings{AutoSync: true})
	_, _, err := rw.UpdateStatus(12345, models.PaymentStatusApproved)
	assert.ErrorIs(t, err, gateway.ErrLogNotFound)
}

func TestReview_StatusTidakValid(t *testing.T) {
	database.ConnectTestDatabase()

	rw := gateway.NewReviewWorkflow(gateway.Settings{AutoSync: true})
	_, _, err := rw.UpdateStatus(1, "disetujui")
	assert.ErrorIs(t, err, gateway.ErrInvalidStatus)
}
