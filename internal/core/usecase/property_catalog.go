package usecase

import (
	"context"
	"sync"
	"time"

	"property-scraper-service/internal/constants"
	"property-scraper-service/internal/core/domain"
	"property-scraper-service/internal/core/port"

	"github.com/google/uuid"
)

// PropertyCatalogUseCase владеет персистентными коллекциями записей и
// истории. Каждая мутация - это полный цикл чтение-изменение-перезапись
// под одним writer-мьютексом: бэкенды хранят коллекцию целиком, и без
// мьютекса конкурентные запросы молча перетирали бы друг друга.
type PropertyCatalogUseCase struct {
	mu sync.RWMutex

	storage        port.PropertyStoragePort
	historyStorage port.HistoryStoragePort
	events         port.ScrapeEventsPort // опционален, nil = выключено
	logger         port.LoggerPort
}

func NewPropertyCatalogUseCase(
	storage port.PropertyStoragePort,
	historyStorage port.HistoryStoragePort,
	events port.ScrapeEventsPort,
	logger port.LoggerPort,
) *PropertyCatalogUseCase {
	return &PropertyCatalogUseCase{
		storage:        storage,
		historyStorage: historyStorage,
		events:         events,
		logger:         logger.WithFields(port.Fields{"component": "property_catalog"}),
	}
}

func (uc *PropertyCatalogUseCase) List(ctx context.Context) ([]domain.PropertyRecord, error) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()

	records, err := uc.storage.LoadAll(ctx)
	if err != nil {
		return nil, &domain.StorageError{Op: "load", Err: err}
	}
	return records, nil
}

// Save вливает новые записи в коллекцию по merge-алгоритму: совпадение
// ищется по лестнице сигналов (см. domain.FindMatch), при совпадении поля
// перезаписываются целиком, но id существующей записи сохраняется, чтобы
// внешние ссылки на запись оставались валидными. Новые записи вставляются
// в голову коллекции.
func (uc *PropertyCatalogUseCase) Save(ctx context.Context, records []domain.PropertyRecord) error {
	if len(records) == 0 {
		return nil
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	existing, err := uc.storage.LoadAll(ctx)
	if err != nil {
		return &domain.StorageError{Op: "load", Err: err}
	}

	merged := 0
	for _, rec := range records {
		idx := domain.FindMatch(existing, rec)
		if idx >= 0 {
			rec.ID = existing[idx].ID
			existing[idx] = rec
			merged++
			continue
		}
		existing = append([]domain.PropertyRecord{rec}, existing...)
	}

	if err := uc.storage.ReplaceAll(ctx, existing); err != nil {
		return &domain.StorageError{Op: "replace", Err: err}
	}

	uc.logger.Info("Records merged into catalog", port.Fields{
		"incoming": len(records), "updated": merged, "inserted": len(records) - merged,
	})

	// Публикация событий best-effort: брокер не является system of record
	if uc.events != nil {
		if err := uc.events.PublishSaved(ctx, records); err != nil {
			uc.logger.Warn("Failed to publish saved records", port.Fields{"error": err.Error()})
		}
	}

	return nil
}

// Update заменяет запись по точному id. Отсутствие записи - жесткая ошибка,
// в отличие от Delete: эту асимметрию требует контракт хранилища.
func (uc *PropertyCatalogUseCase) Update(ctx context.Context, record domain.PropertyRecord) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	existing, err := uc.storage.LoadAll(ctx)
	if err != nil {
		return &domain.StorageError{Op: "load", Err: err}
	}

	for i, rec := range existing {
		if rec.ID == record.ID {
			existing[i] = record
			if err := uc.storage.ReplaceAll(ctx, existing); err != nil {
				return &domain.StorageError{Op: "replace", Err: err}
			}
			return nil
		}
	}

	return &domain.NotFoundError{ID: record.ID}
}

// Delete идемпотентен: удаление уже отсутствующей записи - no-op
func (uc *PropertyCatalogUseCase) Delete(ctx context.Context, id string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	existing, err := uc.storage.LoadAll(ctx)
	if err != nil {
		return &domain.StorageError{Op: "load", Err: err}
	}

	filtered := make([]domain.PropertyRecord, 0, len(existing))
	for _, rec := range existing {
		if rec.ID != id {
			filtered = append(filtered, rec)
		}
	}

	if len(filtered) == len(existing) {
		uc.logger.Warn("Delete requested for unknown property, treating as success", port.Fields{"id": id})
		return nil
	}

	if err := uc.storage.ReplaceAll(ctx, filtered); err != nil {
		return &domain.StorageError{Op: "replace", Err: err}
	}
	return nil
}

func (uc *PropertyCatalogUseCase) History(ctx context.Context) ([]domain.HistoryEntry, error) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()

	entries, err := uc.historyStorage.LoadAll(ctx)
	if err != nil {
		return nil, &domain.StorageError{Op: "load history", Err: err}
	}
	return entries, nil
}

// AppendHistory добавляет запись аудита в голову списка и обрезает список
// до последних записей (самые новые первыми)
func (uc *PropertyCatalogUseCase) AppendHistory(ctx context.Context, entryType domain.HistoryType, details string, propertyCount int) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	entries, err := uc.historyStorage.LoadAll(ctx)
	if err != nil {
		return &domain.StorageError{Op: "load history", Err: err}
	}

	entry := domain.HistoryEntry{
		ID:            "hist-" + uuid.NewString(),
		Type:          entryType,
		Details:       details,
		PropertyCount: propertyCount,
		Date:          time.Now().UTC(),
	}

	entries = append([]domain.HistoryEntry{entry}, entries...)
	if len(entries) > constants.HistoryLimit {
		entries = entries[:constants.HistoryLimit]
	}

	if err := uc.historyStorage.ReplaceAll(ctx, entries); err != nil {
		return &domain.StorageError{Op: "replace history", Err: err}
	}
	return nil
}
