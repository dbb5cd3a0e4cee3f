package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"mpg-backend/database"
	"mpg-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// GET /api/admin/payment-logs/export?month=11&year=2025
// Export log pembayaran ke Excel untuk rekap manual
func ExportPaymentLogs(c *gin.Context) {
	// 1. Filter Bulan & Tahun (Opsional, default = semua)
	monthStr := c.Query("month")
	yearStr := c.Query("year")

	var logs []models.PaymentLog
	query := database.DB.Order("created_at desc")

	if monthStr != "" && yearStr != "" {
		month, _ := strconv.Atoi(monthStr)
		year, _ := strconv.Atoi(yearStr)

		startDate := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
		endDate := startDate.AddDate(0, 1, 0) // Awal bulan depan

		query = query.Where("created_at >= ? AND created_at < ?", startDate, endDate)
	}

	query.Find(&logs)

	// 2. Buat File Excel
	f := excelize.NewFile()
	sheetName := "Log Pembayaran"
	f.SetSheetName("Sheet1", sheetName)

	// 3. Header (Baris 1)
	headers := []string{"No", "Tanggal", "Order", "Status Order", "Transaction ID", "File", "User", "Status"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, h)
	}

	// Style Header (Bold + Warna)
	styleHeader, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4F46E5"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	f.SetCellStyle(sheetName, "A1", "H1", styleHeader)

	// 4. Isi Data (Mulai Baris 2)
	row := 2
	for i, logRow := range logs {
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), i+1)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), logRow.CreatedAt.Format("02-01-2006 15:04"))
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), fmt.Sprintf("#%d", logRow.OrderID))
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), liveOrderStatus(logRow.OrderID))
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), logRow.TransactionID)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), logRow.FileName)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), displayName(logRow.UserID))
		f.SetCellValue(sheetName, fmt.Sprintf("H%d", row), logRow.Status)

		// Warna status (Hijau approved, Merah rejected)
		if logRow.Status == models.PaymentStatusApproved {
			styleApproved, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Color: "#10B981"}})
			f.SetCellStyle(sheetName, fmt.Sprintf("H%d", row), fmt.Sprintf("H%d", row), styleApproved)
		} else if logRow.Status == models.PaymentStatusRejected {
			styleRejected, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Color: "#EF4444"}})
			f.SetCellStyle(sheetName, fmt.Sprintf("H%d", row), fmt.Sprintf("H%d", row), styleRejected)
		}

		row++
	}

	// Lebar kolom biar kebaca
	f.SetColWidth(sheetName, "A", "A", 5)
	f.SetColWidth(sheetName, "B", "B", 18)
	f.SetColWidth(sheetName, "C", "D", 12)
	f.SetColWidth(sheetName, "E", "F", 25)
	f.SetColWidth(sheetName, "G", "H", 14)

	// 5. Kirim File ke Browser
	fileName := fmt.Sprintf("Log_Pembayaran_%s.xlsx", time.Now().Format("20060102"))

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", fileName))
	c.Header("Content-Transfer-Encoding", "binary")

	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Gagal generate excel"})
	}
}
