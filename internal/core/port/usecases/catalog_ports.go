package usecases

import (
	"context"

	"property-scraper-service/internal/core/domain"
)

// CatalogPort - операции над персистентной коллекцией записей
type CatalogPort interface {
	List(ctx context.Context) ([]domain.PropertyRecord, error)

	// Save вливает записи по дедуплицирующему merge-алгоритму
	Save(ctx context.Context, records []domain.PropertyRecord) error

	// Update заменяет запись по точному id; отсутствие записи - ошибка
	Update(ctx context.Context, record domain.PropertyRecord) error

	// Delete удаляет по id; отсутствие записи трактуется как успех
	Delete(ctx context.Context, id string) error

	History(ctx context.Context) ([]domain.HistoryEntry, error)
}

// ReEnhancePort повторно прогоняет AI-улучшение для сохраненной записи
type ReEnhancePort interface {
	Execute(ctx context.Context, id string) (domain.PropertyRecord, error)
}
