package port

import (
	"context"

	"property-scraper-service/internal/core/domain"
)

// ContentEnhancerPort - внешняя AI-способность улучшения текста объявления.
// Вызывается только когда заголовок и описание непустые; при ошибке
// вызывающая сторона оставляет оригинальный текст.
type ContentEnhancerPort interface {
	Enhance(ctx context.Context, title, description string) (domain.EnhancedContent, error)
}
