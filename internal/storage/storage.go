package storage

import (
	"context"
	"errors"
)

var (
	// ErrTooLarge indica arquivo acima do limite configurado.
	ErrTooLarge = errors.New("storage: arquivo excede o tamanho máximo")
	// ErrUnsupportedType indica content-type fora da lista permitida.
	ErrUnsupportedType = errors.New("storage: tipo de arquivo não suportado")
)

// allowedImageTypes espelha o filtro de upload do contrato: PNG/JPEG/JPG/GIF.
var allowedImageTypes = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/gif":  ".gif",
}

// UploadInput representa uma operação de upload de imagem de perfil.
type UploadInput struct {
	OriginalName string
	ContentType  string
	Body         []byte
}

// UploadResult descreve o artefato persistido.
type UploadResult struct {
	// Filename é o nome gerado sob o diretório de uploads.
	Filename string
	// URL é o caminho público servido pela rota estática.
	URL string
}

// Store define o comportamento para guardar imagens de perfil.
type Store interface {
	Upload(ctx context.Context, input UploadInput) (*UploadResult, error)
}

// AllowedImageType informa se o content-type está na lista permitida.
func AllowedImageType(contentType string) bool {
	_, ok := allowedImageTypes[contentType]
	return ok
}
