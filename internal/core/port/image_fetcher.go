package port

import "context"

// FetchedImage - скачанные байты изображения вместе с типом содержимого
type FetchedImage struct {
	Data        []byte
	ContentType string
}

// ImageFetcherPort скачивает изображения и проверяет доступность
// уже захостенных публичных URL
type ImageFetcherPort interface {
	FetchImage(ctx context.Context, imageURL string) (*FetchedImage, error)

	// Validate делает HEAD-запрос к публичному URL. Ошибка не инвалидирует
	// загрузку, вызывающая сторона лишь логирует её.
	Validate(ctx context.Context, publicURL string) error
}
