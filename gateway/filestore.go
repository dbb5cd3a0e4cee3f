package gateway

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrFileNotFound = errors.New("file tidak ditemukan")
	ErrBadFileName  = errors.New("nama file tidak valid")
)

// FileStore: satu folder flat untuk semua screenshot yang diterima.
// Nama file dijamin unik lewat suffix angka, jadi upload paralel tidak
// saling menimpa (tanpa locking, cukup unique-name generation).
type FileStore struct {
	Dir     string
	BaseURL string // Prefix URL publik, misal http://localhost:8080/uploads
}

func NewFileStore(dir, baseURL string) *FileStore {
	return &FileStore{Dir: dir, BaseURL: strings.TrimRight(baseURL, "/")}
}

// Simpan file ke folder upload. Return nama file final + URL publiknya.
func (fs *FileStore) Store(originalName string, src io.Reader) (string, string, error) {
	// Buat folder uploads jika belum ada
	if err := os.MkdirAll(fs.Dir, 0755); err != nil {
		return "", "", err
	}

	name := fs.uniqueName(SanitizeFileName(originalName))
	fullPath := filepath.Join(fs.Dir, name)

	// O_EXCL: kalau ternyata keduluan file lain dengan nama sama, gagal
	// daripada menimpa
	dst, err := os.OpenFile(fullPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return "", "", err
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(fullPath) // Simpan setengah jalan tidak boleh ninggalin sisa
		return "", "", err
	}

	if err := dst.Close(); err != nil {
		os.Remove(fullPath)
		return "", "", err
	}

	return name, fs.BaseURL + "/" + name, nil
}

// Hapus file berdasarkan nama. File tidak ada -> ErrFileNotFound (bukan fatal).
func (fs *FileStore) Delete(name string) error {
	fullPath, err := fs.Path(name)
	if err != nil {
		return err
	}

	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		return ErrFileNotFound
	}

	return os.Remove(fullPath)
}

// Path absolut file di dalam folder upload, dengan penjagaan path traversal.
func (fs *FileStore) Path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", ErrBadFileName
	}
	return filepath.Join(fs.Dir, name), nil
}

// Bersihkan nama file: sisakan huruf/angka/titik/strip/underscore,
// spasi jadi strip. Nama kosong dapat fallback.
func SanitizeFileName(name string) string {
	name = filepath.Base(name)

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('-')
		}
	}

	clean := strings.Trim(b.String(), ".")
	if clean == "" {
		clean = "file"
	}
	return clean
}

// Cari nama yang belum dipakai: name.ext, name-1.ext, name-2.ext, dst.
func (fs *FileStore) uniqueName(name string) string {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)

	candidate := name
	for i := 1; ; i++ {
		if _, err := os.Stat(filepath.Join(fs.Dir, candidate)); os.IsNotExist(err) {
			return candidate
		}
		candidate = fmt.Sprintf("%s-%d%s", base, i, ext)
	}
}
