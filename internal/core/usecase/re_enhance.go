package usecase

import (
	"context"

	"property-scraper-service/internal/core/domain"
	"property-scraper-service/internal/core/port"
)

// ReEnhanceUseCase повторно улучшает текст сохраненной записи, всегда
// отталкиваясь от оригинальной (как извлеченной) копии, а не от уже
// улучшенной - иначе текст деградирует с каждым прогоном.
type ReEnhanceUseCase struct {
	enhancer port.ContentEnhancerPort
	catalog  *PropertyCatalogUseCase
	logger   port.LoggerPort
}

func NewReEnhanceUseCase(enhancer port.ContentEnhancerPort, catalog *PropertyCatalogUseCase, logger port.LoggerPort) *ReEnhanceUseCase {
	return &ReEnhanceUseCase{
		enhancer: enhancer,
		catalog:  catalog,
		logger:   logger.WithFields(port.Fields{"component": "re_enhance"}),
	}
}

func (uc *ReEnhanceUseCase) Execute(ctx context.Context, id string) (domain.PropertyRecord, error) {
	records, err := uc.catalog.List(ctx)
	if err != nil {
		return domain.PropertyRecord{}, err
	}

	var record *domain.PropertyRecord
	for i := range records {
		if records[i].ID == id {
			record = &records[i]
			break
		}
	}
	if record == nil {
		return domain.PropertyRecord{}, &domain.NotFoundError{ID: id}
	}

	enhanced, err := uc.enhancer.Enhance(ctx, record.OriginalTitle, record.OriginalDescription)
	if err != nil {
		return domain.PropertyRecord{}, err
	}

	record.Title = enhanced.Title
	record.Description = enhanced.Description
	record.EnhancedTitle = &enhanced.Title
	record.EnhancedDescription = &enhanced.Description

	if err := uc.catalog.Update(ctx, *record); err != nil {
		return domain.PropertyRecord{}, err
	}

	return *record, nil
}
