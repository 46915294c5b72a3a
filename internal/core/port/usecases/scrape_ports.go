package usecases

import (
	"context"

	"property-scraper-service/internal/core/domain"
)

// Порты верхнеуровневых операций скрейпинга, которые потребляет REST-слой

type ScrapeURLPort interface {
	Execute(ctx context.Context, pageURL string) ([]domain.PropertyRecord, error)
}

type ScrapeHTMLPort interface {
	Execute(ctx context.Context, htmlContent, originLabel string) ([]domain.PropertyRecord, error)
}

// ScrapeBulkPort принимает список URL, разделенных переводами строк
type ScrapeBulkPort interface {
	Execute(ctx context.Context, rawURLs string) ([]domain.PropertyRecord, error)
}
