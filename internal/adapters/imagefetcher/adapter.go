package imagefetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"property-scraper-service/internal/core/domain"
	"property-scraper-service/internal/core/port"
)

// Площадки отдают изображения только "браузерам", поэтому представляемся им
const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// maxImageSize защищает пайплайн от бесконечных тел ответа
const maxImageSize = 20 << 20 // 20 MiB

// Adapter скачивает байты изображений и проверяет доступность уже
// захостенных публичных URL
type Adapter struct {
	client *http.Client
	logger port.LoggerPort
}

func NewAdapter(logger port.LoggerPort) *Adapter {
	return &Adapter{
		client: &http.Client{Timeout: 30 * time.Second},
		logger: logger.WithFields(port.Fields{"component": "image_fetcher"}),
	}
}

func (a *Adapter) FetchImage(ctx context.Context, imageURL string) (*port.FetchedImage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, &domain.FetchError{URL: imageURL, Reason: err.Error()}
	}
	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Accept", "image/*,*/*;q=0.8")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, &domain.FetchError{URL: imageURL, Reason: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.FetchError{URL: imageURL, StatusCode: resp.StatusCode, Reason: resp.Status}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageSize))
	if err != nil {
		return nil, &domain.FetchError{URL: imageURL, Reason: err.Error()}
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType != "" && !isImageContentType(contentType) {
		a.logger.Warn("Unexpected content type for image", port.Fields{"url": imageURL, "content_type": contentType})
	}

	return &port.FetchedImage{Data: data, ContentType: contentType}, nil
}

// Validate делает HEAD-запрос к публичному URL. Ответ с ошибкой не
// инвалидирует загрузку, вызывающая сторона только логирует её.
func (a *Adapter) Validate(ctx context.Context, publicURL string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, publicURL, nil)
	if err != nil {
		return err
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("public url %s responded with status %d", publicURL, resp.StatusCode)
	}
	return nil
}

func isImageContentType(contentType string) bool {
	return len(contentType) >= 6 && contentType[:6] == "image/"
}
