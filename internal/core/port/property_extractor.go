package port

import (
	"context"

	"property-scraper-service/internal/core/domain"
)

// PropertyExtractorPort - внешняя AI-способность извлечения объявлений из HTML.
// Контракт fail-open: при любом отказе адаптер возвращает пустой список,
// а не ошибку, чтобы одна плохая страница не валила пакетный прогон.
type PropertyExtractorPort interface {
	ExtractProperties(ctx context.Context, htmlContent string) ([]domain.CandidateProperty, error)
}
