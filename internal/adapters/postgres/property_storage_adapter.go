package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"property-scraper-service/internal/core/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PropertyStorageAdapter реализует полноколлекционный контракт хранилища
// поверх PostgreSQL: записи лежат как JSONB-документы с позицией, чтение -
// вся таблица по порядку, перезапись - DELETE + COPY в одной транзакции.
// Merge-алгоритм остается в ядре; база хранит коллекцию как есть.
type PropertyStorageAdapter struct {
	pool *pgxpool.Pool
}

const createPropertiesTable = `
CREATE TABLE IF NOT EXISTS scraped_properties (
	position BIGINT PRIMARY KEY,
	data     JSONB NOT NULL
)`

func NewPropertyStorageAdapter(ctx context.Context, pool *pgxpool.Pool) (*PropertyStorageAdapter, error) {
	if _, err := pool.Exec(ctx, createPropertiesTable); err != nil {
		return nil, fmt.Errorf("failed to ensure scraped_properties table: %w", err)
	}
	return &PropertyStorageAdapter{pool: pool}, nil
}

func (a *PropertyStorageAdapter) LoadAll(ctx context.Context) ([]domain.PropertyRecord, error) {
	rows, err := a.pool.Query(ctx, `SELECT data FROM scraped_properties ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query scraped_properties: %w", err)
	}
	defer rows.Close()

	records := []domain.PropertyRecord{}
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan property row: %w", err)
		}
		var rec domain.PropertyRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, fmt.Errorf("failed to parse property row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read scraped_properties: %w", err)
	}
	return records, nil
}

func (a *PropertyStorageAdapter) ReplaceAll(ctx context.Context, records []domain.PropertyRecord) error {
	tx, err := a.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM scraped_properties`); err != nil {
		return fmt.Errorf("failed to clear scraped_properties: %w", err)
	}

	if len(records) > 0 {
		copyRows := make([][]interface{}, 0, len(records))
		for i, rec := range records {
			data, err := json.Marshal(rec)
			if err != nil {
				return fmt.Errorf("failed to marshal property %s: %w", rec.ID, err)
			}
			copyRows = append(copyRows, []interface{}{int64(i), string(data)})
		}

		// COPY значительно быстрее пачки INSERT на полной перезаписи
		_, err = tx.CopyFrom(ctx,
			pgx.Identifier{"scraped_properties"},
			[]string{"position", "data"},
			pgx.CopyFromRows(copyRows),
		)
		if err != nil {
			return fmt.Errorf("failed to copy properties: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit properties replace: %w", err)
	}
	return nil
}
