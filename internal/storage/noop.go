package storage

import (
	"context"
	"errors"
)

// NoopUploader devuelve error indicando que no hay backend configurado.
type NoopUploader struct{}

// Upload siempre retorna error, señalando que el recurso no está disponible.
func (NoopUploader) Upload(ctx context.Context, input UploadInput) (*UploadResult, error) {
	return nil, errors.New("storage: uploader no configurado")
}
