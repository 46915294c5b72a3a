package imagestore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"property-scraper-service/internal/core/port"
)

// LocalDiskAdapter хостит изображения в публично раздаваемой директории.
// Это файловый эквивалент объектного хранилища: положили байты под ключом,
// вернули публичный URL. Раздачей занимается REST-сервер (/images/*).
type LocalDiskAdapter struct {
	dir           string
	publicBaseURL string
	logger        port.LoggerPort
}

func NewLocalDiskAdapter(dir, publicBaseURL string, logger port.LoggerPort) (*LocalDiskAdapter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create images directory %s: %w", dir, err)
	}

	return &LocalDiskAdapter{
		dir:           dir,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		logger:        logger.WithFields(port.Fields{"component": "image_store"}),
	}, nil
}

func (a *LocalDiskAdapter) SaveImage(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	// Base отрезает возможные компоненты пути в ключе
	fileName := filepath.Base(key)
	path := filepath.Join(a.dir, fileName)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write image %s: %w", fileName, err)
	}

	a.logger.Debug("Image stored", port.Fields{"file": fileName, "bytes": len(data), "content_type": contentType})
	return a.publicBaseURL + "/images/" + fileName, nil
}

// Dir возвращает директорию с изображениями для монтирования в REST-сервер
func (a *LocalDiskAdapter) Dir() string {
	return a.dir
}
