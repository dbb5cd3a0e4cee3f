package handlers

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"

	"mpg-backend/database"
	"mpg-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// POST /api/admin/payment-logs/:id/analyze
// Minta AI membaca screenshot dan menilai apakah terlihat seperti bukti
// transfer yang sah. HANYA saran untuk admin — status log tidak pernah
// diubah dari sini, keputusan tetap manual.
func AnalyzeScreenshot(c *gin.Context) {
	logID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID log tidak valid"})
		return
	}

	var logRow models.PaymentLog
	if err := database.DB.First(&logRow, logID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Log pembayaran tidak ditemukan."})
		return
	}

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "API Key Gemini belum disetting di .env"})
		return
	}

	filePath, err := FileStore.Path(logRow.FileName)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nama file di log tidak valid"})
		return
	}

	imgData, err := os.ReadFile(filePath)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "File screenshot sudah tidak ada di server"})
		return
	}

	ctx := c.Request.Context()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Gagal konek ke Gemini"})
		return
	}
	defer client.Close()

	model := client.GenerativeModel("gemini-2.0-flash")

	prompt := "Gambar ini di-upload customer sebagai bukti transfer pembayaran."
	if logRow.TransactionID != "" {
		prompt += fmt.Sprintf(" Customer mencantumkan transaction ID: %s.", logRow.TransactionID)
	}
	prompt += " Apakah gambar ini terlihat seperti screenshot bukti transfer yang sah?" +
		" Sebutkan bank/e-wallet, nominal, dan tanda-tanda janggal kalau ada. Jawab singkat."

	resp, err := model.GenerateContent(ctx,
		genai.ImageData(imageFormat(logRow.FileName), imgData),
		genai.Text(prompt),
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Analisa AI gagal. Silakan verifikasi manual."})
		return
	}

	analysis := extractText(resp)
	if analysis == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "AI tidak memberi jawaban. Silakan verifikasi manual."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"log_id":   logRow.ID,
		"status":   logRow.Status, // Tidak berubah, cuma info
		"analysis": analysis,
	})
}

// Format gambar untuk genai.ImageData ("jpeg", "png", dst) dari ekstensi
func imageFormat(fileName string) string {
	i := strings.LastIndex(fileName, ".")
	if i < 0 {
		return "png"
	}
	ext := strings.ToLower(fileName[i+1:])
	if ext == "jpg" {
		return "jpeg"
	}
	return ext
}

func extractText(resp *genai.GenerateContentResponse) string {
	var b strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				b.WriteString(string(text))
			}
		}
	}
	return strings.TrimSpace(b.String())
}
