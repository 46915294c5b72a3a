package port

import (
	"context"

	"property-scraper-service/internal/core/domain"
)

// PropertyStoragePort - хранилище коллекции записей целиком.
// Контракт: полное чтение и полная атомарная перезапись, никаких
// построчных операций. Порядок записей хранилище сохраняет как есть.
type PropertyStoragePort interface {
	LoadAll(ctx context.Context) ([]domain.PropertyRecord, error)
	ReplaceAll(ctx context.Context, records []domain.PropertyRecord) error
}

// HistoryStoragePort - такое же полноколлекционное хранилище для истории
type HistoryStoragePort interface {
	LoadAll(ctx context.Context) ([]domain.HistoryEntry, error)
	ReplaceAll(ctx context.Context, entries []domain.HistoryEntry) error
}
