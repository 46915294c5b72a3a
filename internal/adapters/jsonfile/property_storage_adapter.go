package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"property-scraper-service/internal/core/domain"
)

// PropertyStorageAdapter хранит коллекцию записей одним JSON-файлом.
// Перезапись атомарна: пишем во временный файл и переименовываем, чтобы
// конкурентный читатель никогда не видел недописанную коллекцию.
type PropertyStorageAdapter struct {
	path string
}

func NewPropertyStorageAdapter(dataDir string) (*PropertyStorageAdapter, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", dataDir, err)
	}
	return &PropertyStorageAdapter{path: filepath.Join(dataDir, "properties.json")}, nil
}

func (a *PropertyStorageAdapter) LoadAll(ctx context.Context) ([]domain.PropertyRecord, error) {
	data, err := os.ReadFile(a.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// Файла еще нет - пустая коллекция
			return []domain.PropertyRecord{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", a.path, err)
	}

	var records []domain.PropertyRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", a.path, err)
	}
	if records == nil {
		records = []domain.PropertyRecord{}
	}
	return records, nil
}

func (a *PropertyStorageAdapter) ReplaceAll(ctx context.Context, records []domain.PropertyRecord) error {
	return writeJSONAtomically(a.path, records)
}

// writeJSONAtomically сериализует значение и подменяет файл через rename
func writeJSONAtomically(path string, value interface{}) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal collection for %s: %w", path, err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
