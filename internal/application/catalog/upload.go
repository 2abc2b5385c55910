package catalog

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Upload archivo subido guardado en disco durante la importación.
// Close lo elimina; el llamador lo difiere justo después de SaveUpload.
type Upload struct {
	Name string // nombre original
	Path string
	Size int64
}

// SaveUpload copia src a un archivo temporal en dir (os.TempDir() si está vacío).
// El nombre en disco es aleatorio; solo se conserva la extensión original.
func SaveUpload(dir, originalName string, src io.Reader) (*Upload, error) {
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("crear directorio temporal: %w", err)
	}
	ext := strings.ToLower(filepath.Ext(originalName))
	path := filepath.Join(dir, "upload-"+uuid.NewString()+ext)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("crear archivo temporal: %w", err)
	}
	u := &Upload{Name: originalName, Path: path}
	n, copyErr := io.Copy(f, src)
	closeErr := f.Close()
	if err := errors.Join(copyErr, closeErr); err != nil {
		_ = u.Close()
		return nil, fmt.Errorf("guardar archivo temporal: %w", err)
	}
	u.Size = n
	return u, nil
}

// IsSpreadsheet indica si el archivo se lee con excelize en lugar de como texto delimitado.
func (u *Upload) IsSpreadsheet() bool {
	return strings.EqualFold(filepath.Ext(u.Name), ".xlsx")
}

// OpenText abre el archivo descartando un BOM UTF-8 inicial.
func (u *Upload) OpenText() (io.ReadCloser, error) {
	f, err := os.Open(u.Path)
	if err != nil {
		return nil, err
	}
	r := transform.NewReader(f, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	return readCloser{Reader: r, Closer: f}, nil
}

// Open abre el archivo tal cual (binario).
func (u *Upload) Open() (io.ReadCloser, error) {
	return os.Open(u.Path)
}

// Close elimina el archivo. Es idempotente.
func (u *Upload) Close() error {
	if err := os.Remove(u.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

type readCloser struct {
	io.Reader
	io.Closer
}
