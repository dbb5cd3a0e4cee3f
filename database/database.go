package database

import (
	"log"

	"mpg-backend/models"
	"mpg-backend/utils"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDatabase() {
	connect(utils.GetEnv("DB_PATH", "mpg.db"))
}

// Khusus untuk test: SQLite in-memory, satu koneksi biar databasenya tidak
// kebagi-bagi antar koneksi pool.
func ConnectTestDatabase() {
	connect(":memory:")

	sqlDB, err := DB.DB()
	if err != nil {
		log.Fatal("Gagal ambil koneksi sql:", err)
	}
	sqlDB.SetMaxOpenConns(1)
}

func connect(dsn string) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Gagal konek database:", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderNote{},
		&models.PaymentLog{},
		&models.GatewaySetting{},
		&models.AdminPreference{},
	)
	if err != nil {
		log.Fatal("Gagal migrasi database:", err)
	}

	DB = db
}
