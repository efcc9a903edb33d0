package blob

import "context"

// Store es el bucket de imágenes del BaaS.
type Store interface {
	// Upload sube el objeto y devuelve su URL pública.
	Upload(ctx context.Context, path string, content []byte, contentType string) (string, error)

	// Delete acepta el path del objeto o su URL pública completa.
	Delete(ctx context.Context, pathOrURL string) error
}
