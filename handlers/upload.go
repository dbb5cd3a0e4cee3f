package handlers

import (
	"errors"
	"net/http"

	"mpg-backend/gateway"

	"github.com/gin-gonic/gin"
)

// FileStore diinject dari main.go (folder upload & base URL dari .env)
var FileStore *gateway.FileStore

// POST /api/upload (multipart, field "file")
// Terima satu screenshot, validasi, simpan ke folder upload.
// Hasilnya diakumulasi client sampai order disubmit.
func UploadFile(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Tidak ada file yang diupload.", "code": "upload_error"})
		return
	}

	// Validasi: ukuran -> tipe -> isi (urutan penting, kode error spesifik)
	if vErr := gateway.ValidateUpload(fileHeader); vErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Message, "code": vErr.Code})
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Upload file gagal.", "code": "upload_error"})
		return
	}
	defer src.Close()

	storedName, publicURL, err := FileStore.Store(fileHeader.Filename, src)
	if err != nil {
		// Gagal simpan = tidak ada state apapun yang berubah
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Gagal menyimpan file upload."})
		return
	}

	// Payload ini yang ditampung client di daftar uploaded_files
	c.JSON(http.StatusOK, gin.H{
		"name": storedName,
		"path": publicURL,
		"size": fileHeader.Size,
		"type": fileHeader.Header.Get("Content-Type"),
	})
}

// POST /api/upload/delete {filename}
// Customer batal pakai file sebelum submit. File yang sudah tidak ada
// bukan error fatal, cukup 404.
func DeleteFile(c *gin.Context) {
	var input struct {
		Filename string `json:"filename" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nama file tidak valid."})
		return
	}

	err := FileStore.Delete(gateway.SanitizeFileName(input.Filename))
	if errors.Is(err, gateway.ErrFileNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "File tidak ditemukan."})
		return
	}
	if errors.Is(err, gateway.ErrBadFileName) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nama file tidak valid."})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Gagal menghapus file."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "File berhasil dihapus."})
}
