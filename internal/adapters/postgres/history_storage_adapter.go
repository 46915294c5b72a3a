package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"property-scraper-service/internal/core/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// HistoryStorageAdapter - аналогичное полноколлекционное хранилище истории
type HistoryStorageAdapter struct {
	pool *pgxpool.Pool
}

const createHistoryTable = `
CREATE TABLE IF NOT EXISTS scrape_history (
	position BIGINT PRIMARY KEY,
	data     JSONB NOT NULL
)`

func NewHistoryStorageAdapter(ctx context.Context, pool *pgxpool.Pool) (*HistoryStorageAdapter, error) {
	if _, err := pool.Exec(ctx, createHistoryTable); err != nil {
		return nil, fmt.Errorf("failed to ensure scrape_history table: %w", err)
	}
	return &HistoryStorageAdapter{pool: pool}, nil
}

func (a *HistoryStorageAdapter) LoadAll(ctx context.Context) ([]domain.HistoryEntry, error) {
	rows, err := a.pool.Query(ctx, `SELECT data FROM scrape_history ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query scrape_history: %w", err)
	}
	defer rows.Close()

	entries := []domain.HistoryEntry{}
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		var entry domain.HistoryEntry
		if err := json.Unmarshal(data, &entry); err != nil {
			return nil, fmt.Errorf("failed to parse history row: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read scrape_history: %w", err)
	}
	return entries, nil
}

func (a *HistoryStorageAdapter) ReplaceAll(ctx context.Context, entries []domain.HistoryEntry) error {
	tx, err := a.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM scrape_history`); err != nil {
		return fmt.Errorf("failed to clear scrape_history: %w", err)
	}

	if len(entries) > 0 {
		copyRows := make([][]interface{}, 0, len(entries))
		for i, entry := range entries {
			data, err := json.Marshal(entry)
			if err != nil {
				return fmt.Errorf("failed to marshal history entry %s: %w", entry.ID, err)
			}
			copyRows = append(copyRows, []interface{}{int64(i), string(data)})
		}

		_, err = tx.CopyFrom(ctx,
			pgx.Identifier{"scrape_history"},
			[]string{"position", "data"},
			pgx.CopyFromRows(copyRows),
		)
		if err != nil {
			return fmt.Errorf("failed to copy history entries: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit history replace: %w", err)
	}
	return nil
}
