package gateway

import (
	"image"
	"mime/multipart"
	"path/filepath"
	"strings"

	// Daftarkan decoder untuk semua tipe yang diizinkan
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// Maksimal ukuran file bukti pembayaran: 5MB
const MaxFileSize = 5 * 1024 * 1024

var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// Tipe yang disimpulkan dari ekstensi nama file (fallback kalau
// Content-Type dari browser tidak bisa dipercaya)
var extTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// ValidationError membawa kode mesin + pesan untuk user.
// Kode: upload_error, file_too_large, invalid_file_type, invalid_image
type ValidationError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validasi file upload: error transport, ukuran, tipe, lalu isi.
// Cek pertama yang gagal langsung menang dengan kodenya sendiri —
// tidak ada penerimaan parsial.
func ValidateUpload(fh *multipart.FileHeader) *ValidationError {
	if fh == nil {
		return &ValidationError{Code: "upload_error", Message: "Upload file gagal."}
	}

	// 1. Ukuran maksimal 5MB
	if fh.Size > MaxFileSize {
		return &ValidationError{Code: "file_too_large", Message: "Ukuran file melebihi batas 5MB."}
	}

	// 2. Tipe file: cek Content-Type yang dideklarasikan ATAU tipe dari ekstensi
	declared := strings.ToLower(fh.Header.Get("Content-Type"))
	if i := strings.Index(declared, ";"); i >= 0 {
		declared = strings.TrimSpace(declared[:i])
	}
	extType := extTypes[strings.ToLower(filepath.Ext(fh.Filename))]

	if !allowedTypes[declared] && !allowedTypes[extType] {
		return &ValidationError{Code: "invalid_file_type", Message: "Hanya file gambar yang diizinkan (jpeg/png/gif/webp)."}
	}

	// 3. Cek keamanan tambahan: isinya harus benar-benar gambar yang bisa didecode
	src, err := fh.Open()
	if err != nil {
		return &ValidationError{Code: "upload_error", Message: "Upload file gagal."}
	}
	defer src.Close()

	if _, _, err := image.DecodeConfig(src); err != nil {
		return &ValidationError{Code: "invalid_image", Message: "File gambar tidak valid."}
	}

	return nil
}
