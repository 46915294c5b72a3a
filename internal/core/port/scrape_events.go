package port

import (
	"context"

	"property-scraper-service/internal/core/domain"
)

// ScrapeEventsPort публикует сохраненные записи для внешних потребителей.
// Публикация best-effort: отказ брокера не должен ломать сохранение.
type ScrapeEventsPort interface {
	PublishSaved(ctx context.Context, records []domain.PropertyRecord) error
}
