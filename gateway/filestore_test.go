package gateway_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mpg-backend/gateway"

	"github.com/stretchr/testify/assert"
)

func TestFileStore_StoreNamaUnik(t *testing.T) {
	fs := gateway.NewFileStore(t.TempDir(), "http://localhost:8080/uploads")

	// Tiga kali upload nama sama -> tiga nama beda, tidak ada yang ketimpa
	name1, url1, err := fs.Store("bukti.png", strings.NewReader("isi-1"))
	assert.NoError(t, err)
	name2, _, err := fs.Store("bukti.png", strings.NewReader("isi-2"))
	assert.NoError(t, err)
	name3, _, err := fs.Store("bukti.png", strings.NewReader("isi-3"))
	assert.NoError(t, err)

	assert.Equal(t, "bukti.png", name1)
	assert.Equal(t, "bukti-1.png", name2)
	assert.Equal(t, "bukti-2.png", name3)
	assert.Equal(t, "http://localhost:8080/uploads/bukti.png", url1)

	// Isi file pertama tetap utuh
	data, err := os.ReadFile(filepath.Join(fs.Dir, "bukti.png"))
	assert.NoError(t, err)
	assert.Equal(t, "isi-1", string(data))
}

func TestFileStore_Delete(t *testing.T) {
	fs := gateway.NewFileStore(t.TempDir(), "http://localhost:8080/uploads")

	name, _, err := fs.Store("hapus aku.png", strings.NewReader("x"))
	assert.NoError(t, err)
	assert.Equal(t, "hapus-aku.png", name)

	assert.NoError(t, fs.Delete(name))

	// Hapus file yang sudah tidak ada -> ErrFileNotFound, bukan crash
	err = fs.Delete(name)
	assert.ErrorIs(t, err, gateway.ErrFileNotFound)
}

func TestFileStore_TolakPathTraversal(t *testing.T) {
	fs := gateway.NewFileStore(t.TempDir(), "http://localhost:8080/uploads")

	err := fs.Delete("../../etc/passwd")
	assert.ErrorIs(t, err, gateway.ErrBadFileName)

	err = fs.Delete(".rahasia")
	assert.ErrorIs(t, err, gateway.ErrBadFileName)

	err = fs.Delete("")
	assert.ErrorIs(t, err, gateway.ErrBadFileName)
}

func TestSanitizeFileName(t *testing.T) {
	assert.Equal(t, "bukti-transfer.png", gateway.SanitizeFileName("bukti transfer.png"))
	assert.Equal(t, "buktipng", gateway.SanitizeFileName("bukti✓png"))
	assert.Equal(t, "passwd", gateway.SanitizeFileName("../../etc/passwd"))
	assert.Equal(t, "file", gateway.SanitizeFileName("///"))
}
