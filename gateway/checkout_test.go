package gateway_test

import (
	"testing"

	"mpg-backend/database"
	"mpg-backend/gateway"
	"mpg-backend/models"

	"github.com/stretchr/testify/assert"
)

func TestFields_ClampMaxFiles(t *testing.T) {
	gw := gateway.NewManualGateway(gateway.Settings{MaxFiles: 99})
	assert.Equal(t, 5, gw.Fields().MaxFiles)

	gw = gateway.NewManualGateway(gateway.Settings{MaxFiles: 0})
	assert.Equal(t, 1, gw.Fields().MaxFiles)

	gw = gateway.NewManualGateway(gateway.Settings{MaxFiles: 3})
	assert.Equal(t, 3, gw.Fields().MaxFiles)
	assert.True(t, gw.Fields().FirstFileRequired)
}

func TestValidateFields_TanpaFileDitolak(t *testing.T) {
	gw := gateway.NewManualGateway(gateway.Settings{MaxFiles: 1})

	assert.ErrorIs(t, gw.ValidateFields(nil), gateway.ErrNoFiles)
	assert.ErrorIs(t, gw.ValidateFields([]gateway.UploadedFile{}), gateway.ErrNoFiles)
	assert.NoError(t, gw.ValidateFields([]gateway.UploadedFile{{Name: "bukti.png"}}))
}

func TestProcessPayment(t *testing.T) {
	database.ConnectTestDatabase()

	product := models.Product{Name: "Voucher Game", Price: 25000, Stock: 10}
	assert.NoError(t, database.DB.Create(&product).Error)

	cartItem := models.CartItem{UserID: 7, ProductID: product.ID, Qty: 2}
	assert.NoError(t, database.DB.Create(&cartItem).Error)

	order := models.Order{
		OrderKey: "mpg_abc",
		UserID:   7,
		Status:   models.OrderStatusPending,
		Total:    50000,
		Items:    []models.OrderItem{{ProductID: product.ID, Qty: 2, Price: 25000}},
	}
	assert.NoError(t, database.DB.Create(&order).Error)

	files := []gateway.UploadedFile{
		{Name: "bukti.png", Path: "http://localhost:8080/uploads/bukti.png", Size: 100, Type: "image/png"},
		{Name: "bukti-1.png", Path: "http://localhost:8080/uploads/bukti-1.png", Size: 100, Type: "image/png"},
	}

	gw := gateway.NewManualGateway(gateway.Settings{MaxFiles: 2})
	redirect, err := gw.ProcessPayment(&order, files, "TXN123")
	assert.NoError(t, err)
	assert.Equal(t, "/order-received/mpg_abc", redirect)

	// Satu baris log per file, semuanya pending, transaction id nempel
	var logs []models.PaymentLog
	database.DB.Where("order_id = ?", order.ID).Find(&logs)
	assert.Len(t, logs, 2)
	for _, logRow := range logs {
		assert.Equal(t, models.PaymentStatusPending, logRow.Status)
		assert.Equal(t, "TXN123", logRow.TransactionID)
		assert.Equal(t, uint(7), logRow.UserID)
	}

	// Order on-hold + metadata keisi
	var saved models.Order
	assert.NoError(t, database.DB.First(&saved, order.ID).Error)
	assert.Equal(t, models.OrderStatusOnHold, saved.Status)
	assert.Equal(t, "TXN123", saved.TransactionID)
	assert.Contains(t, saved.FilesJSON, "bukti.png")
	assert.Equal(t, gateway.PaymentMethodID, saved.PaymentMethod)

	// Stok berkurang, keranjang kosong
	var savedProduct models.Product
	assert.NoError(t, database.DB.First(&savedProduct, product.ID).Error)
	assert.Equal(t, 8, savedProduct.Stock)

	var sisaCart int64
	database.DB.Model(&models.CartItem{}).Where("user_id = ?", 7).Count(&sisaCart)
	assert.Equal(t, int64(0), sisaCart)
}

func TestProcessPayment_TanpaFileGagal(t *testing.T) {
	database.ConnectTestDatabase()

	order := models.Order{OrderKey: "mpg_xyz", Status: models.OrderStatusPending}
	assert.NoError(t, database.DB.Create(&order).Error)

	gw := gateway.NewManualGateway(gateway.Settings{MaxFiles: 1})
	_, err := gw.ProcessPayment(&order, nil, "")
	assert.ErrorIs(t, err, gateway.ErrPaymentFailed)

	// Tidak ada state setengah jadi: order tetap pending, log nol
	var saved models.Order
	assert.NoError(t, database.DB.First(&saved, order.ID).Error)
	assert.Equal(t, models.OrderStatusPending, saved.Status)

	var jumlahLog int64
	database.DB.Model(&models.PaymentLog{}).Count(&jumlahLog)
	assert.Equal(t, int64(0), jumlahLog)
}

func TestLoadSettings_DefaultKalauBelumAda(t *testing.T) {
	database.ConnectTestDatabase()

	s := gateway.LoadSettings()
	assert.True(t, s.Enabled)
	assert.Equal(t, 1, s.MaxFiles)
	assert.True(t, s.AutoSync)
}

func TestSaveSettings_ClampMaxFiles(t *testing.T) {
	database.ConnectTestDatabase()

	s := gateway.DefaultSettings()
	s.MaxFiles = 42
	assert.NoError(t, gateway.SaveSettings(s))
	assert.Equal(t, 5, gateway.LoadSettings().MaxFiles)

	s.MaxFiles = -3
	assert.NoError(t, gateway.SaveSettings(s))
	assert.Equal(t, 1, gateway.LoadSettings().MaxFiles)
}
