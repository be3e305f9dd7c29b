package storage

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// DiskStore grava imagens no disco local sob um nome gerado e as expõe pelo
// prefixo público configurado (ex.: /images/<arquivo>).
type DiskStore struct {
	dir        string
	publicPath string
	maxBytes   int64
}

// NewDiskStore garante a existência do diretório de uploads.
func NewDiskStore(dir, publicPath string, maxBytes int64) (*DiskStore, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("storage: diretório de uploads obrigatório")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: criar diretório: %w", err)
	}
	return &DiskStore{dir: dir, publicPath: strings.TrimRight(publicPath, "/"), maxBytes: maxBytes}, nil
}

// Dir devolve o diretório local servido pela rota estática.
func (s *DiskStore) Dir() string {
	return s.dir
}

// Upload valida tipo e tamanho e grava o arquivo com nome <uuid>-<original>.
func (s *DiskStore) Upload(ctx context.Context, input UploadInput) (*UploadResult, error) {
	if !AllowedImageType(input.ContentType) {
		return nil, ErrUnsupportedType
	}
	if s.maxBytes > 0 && int64(len(input.Body)) > s.maxBytes {
		return nil, ErrTooLarge
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	filename := uuid.NewString() + "-" + sanitizeFilename(input.OriginalName, input.ContentType)
	target := filepath.Join(s.dir, filename)

	if err := os.WriteFile(target, input.Body, 0o644); err != nil {
		return nil, fmt.Errorf("storage: gravar arquivo: %w", err)
	}

	return &UploadResult{
		Filename: filename,
		URL:      s.publicPath + "/" + filename,
	}, nil
}

// Remove apaga um arquivo gerado anteriormente. Usado ao substituir a imagem
// de perfil; a ausência do arquivo não é erro.
func (s *DiskStore) Remove(filename string) error {
	if strings.TrimSpace(filename) == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, path.Base(filename)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func sanitizeFilename(original, contentType string) string {
	base := path.Base(strings.TrimSpace(original))
	base = unsafeFilenameChars.ReplaceAllString(base, "_")
	if base == "" || base == "." || base == ".." {
		base = "image" + allowedImageTypes[contentType]
	}
	return base
}
