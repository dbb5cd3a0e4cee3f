package gateway_test

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"mpg-backend/gateway"

	"github.com/stretchr/testify/assert"
)

// Rakit multipart.FileHeader beneran lewat request palsu, biar Size dan
// Content-Type-nya keisi seperti upload asli
func makeFileHeader(t *testing.T, filename, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	h.Set("Content-Type", contentType)

	part, err := w.CreatePart(h)
	assert.NoError(t, err)
	_, err = part.Write(content)
	assert.NoError(t, err)
	assert.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/upload", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	assert.NoError(t, req.ParseMultipartForm(32<<20))

	return req.MultipartForm.File["file"][0]
}

func tinyPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})

	var buf bytes.Buffer
	assert.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestValidateUpload_ValidPNG(t *testing.T) {
	fh := makeFileHeader(t, "bukti.png", "image/png", tinyPNG(t))
	assert.Nil(t, gateway.ValidateUpload(fh))
}

func TestValidateUpload_FileTooLarge(t *testing.T) {
	// Di atas 5MB harus ditolak file_too_large, APAPUN tipenya
	big := make([]byte, gateway.MaxFileSize+1)
	fh := makeFileHeader(t, "gede.png", "image/png", big)

	vErr := gateway.ValidateUpload(fh)
	assert.NotNil(t, vErr)
	assert.Equal(t, "file_too_large", vErr.Code)
}

func TestValidateUpload_InvalidFileType(t *testing.T) {
	fh := makeFileHeader(t, "resume.pdf", "application/pdf", []byte("%PDF-1.4"))

	vErr := gateway.ValidateUpload(fh)
	assert.NotNil(t, vErr)
	assert.Equal(t, "invalid_file_type", vErr.Code)
}

func TestValidateUpload_InvalidImageContent(t *testing.T) {
	// Content-Type ngaku png tapi isinya bukan gambar
	fh := makeFileHeader(t, "palsu.png", "image/png", []byte("bukan gambar sama sekali"))

	vErr := gateway.ValidateUpload(fh)
	assert.NotNil(t, vErr)
	assert.Equal(t, "invalid_image", vErr.Code)
}

func TestValidateUpload_FallbackKeEkstensi(t *testing.T) {
	// Browser kadang kirim octet-stream; tipe dari ekstensi .png harus lolos
	fh := makeFileHeader(t, "bukti.png", "application/octet-stream", tinyPNG(t))
	assert.Nil(t, gateway.ValidateUpload(fh))
}

func TestValidateUpload_NilHeader(t *testing.T) {
	vErr := gateway.ValidateUpload(nil)
	assert.NotNil(t, vErr)
	assert.Equal(t, "upload_error", vErr.Code)
}
