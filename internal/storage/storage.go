package storage

import "context"

// UploadInput representa una operación de subida simple (firma o evidencia).
type UploadInput struct {
	Key          string
	Body         []byte
	ContentType  string
	CacheControl string
}

// UploadResult describe el artefacto persistido. URL es la referencia opaca
// que las solicitudes de cierre citan como firma_ref o evidencia.
type UploadResult struct {
	URL  string
	ETag string
}

// Uploader define el comportamiento básico para almacenar blobs.
type Uploader interface {
	Upload(ctx context.Context, input UploadInput) (*UploadResult, error)
}
