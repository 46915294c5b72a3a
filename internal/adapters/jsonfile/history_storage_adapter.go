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

// HistoryStorageAdapter - такое же файловое хранилище для истории операций
type HistoryStorageAdapter struct {
	path string
}

func NewHistoryStorageAdapter(dataDir string) (*HistoryStorageAdapter, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", dataDir, err)
	}
	return &HistoryStorageAdapter{path: filepath.Join(dataDir, "history.json")}, nil
}

func (a *HistoryStorageAdapter) LoadAll(ctx context.Context) ([]domain.HistoryEntry, error) {
	data, err := os.ReadFile(a.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []domain.HistoryEntry{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", a.path, err)
	}

	var entries []domain.HistoryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", a.path, err)
	}
	if entries == nil {
		entries = []domain.HistoryEntry{}
	}
	return entries, nil
}

func (a *HistoryStorageAdapter) ReplaceAll(ctx context.Context, entries []domain.HistoryEntry) error {
	return writeJSONAtomically(a.path, entries)
}
