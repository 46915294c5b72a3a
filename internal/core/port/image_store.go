package port

import "context"

// ImageStorePort сохраняет байты изображения под заданным ключом
// и возвращает публично доступный URL
type ImageStorePort interface {
	SaveImage(ctx context.Context, key string, data []byte, contentType string) (string, error)
}
