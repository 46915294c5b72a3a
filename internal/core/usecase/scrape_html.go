package usecase

import (
	"context"

	"property-scraper-service/internal/constants"
	"property-scraper-service/internal/core/domain"
	"property-scraper-service/internal/core/port"
)

// ScrapeHTMLUseCase обрабатывает вставленный вручную HTML: тот же пайплайн,
// но без сетевого fetch. originLabel подставляется в original_url записей
// (реальный URL страницы, если пользователь его указал, иначе сентинел).
type ScrapeHTMLUseCase struct {
	extractor port.PropertyExtractorPort
	processor *CandidateProcessor
	catalog   *PropertyCatalogUseCase
	logger    port.LoggerPort
}

func NewScrapeHTMLUseCase(
	extractor port.PropertyExtractorPort,
	processor *CandidateProcessor,
	catalog *PropertyCatalogUseCase,
	logger port.LoggerPort,
) *ScrapeHTMLUseCase {
	return &ScrapeHTMLUseCase{
		extractor: extractor,
		processor: processor,
		catalog:   catalog,
		logger:    logger.WithFields(port.Fields{"component": "scrape_html"}),
	}
}

func (uc *ScrapeHTMLUseCase) Execute(ctx context.Context, htmlContent, originLabel string) ([]domain.PropertyRecord, error) {
	if len(htmlContent) < constants.MinHTMLLength {
		return nil, &domain.ValidationError{Reason: "html content is too short"}
	}
	if originLabel == "" {
		originLabel = domain.HTMLOriginLabel
	}

	uc.logger.Info("Scraping pasted HTML", port.Fields{"length": len(htmlContent), "origin": originLabel})

	candidates, err := uc.extractor.ExtractProperties(ctx, htmlContent)
	if err != nil {
		uc.logger.Error("Extractor returned an error, degrading to zero candidates", err, nil)
		candidates = nil
	}

	records := uc.processor.ProcessAll(ctx, candidates, originLabel)

	if err := uc.catalog.Save(ctx, records); err != nil {
		return nil, err
	}
	if err := uc.catalog.AppendHistory(ctx, domain.HistoryTypeHTML, constants.PastedHTMLDetails, len(records)); err != nil {
		return nil, err
	}

	return records, nil
}
