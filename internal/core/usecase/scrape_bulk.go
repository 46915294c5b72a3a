package usecase

import (
	"context"
	"strings"

	"property-scraper-service/internal/core/domain"
	"property-scraper-service/internal/core/port"
)

// ScrapeBulkUseCase прогоняет пайплайн по списку URL строго последовательно.
// Это намеренный троттлинг, чтобы не молотить целевые сайты; параллелить
// без явного rate-limit нельзя.
type ScrapeBulkUseCase struct {
	pipeline *ScrapeURLUseCase
	logger   port.LoggerPort
}

func NewScrapeBulkUseCase(pipeline *ScrapeURLUseCase, logger port.LoggerPort) *ScrapeBulkUseCase {
	return &ScrapeBulkUseCase{
		pipeline: pipeline,
		logger:   logger.WithFields(port.Fields{"component": "scrape_bulk"}),
	}
}

// Execute принимает URL, разделенные переводами строк. Отказ любого этапа
// для одного URL изолируется: этот URL дает ноль записей, цикл продолжается.
func (uc *ScrapeBulkUseCase) Execute(ctx context.Context, rawURLs string) ([]domain.PropertyRecord, error) {
	urls := parseBulkURLs(rawURLs)
	if len(urls) == 0 {
		return nil, &domain.ValidationError{Reason: "no valid urls found in bulk input"}
	}

	uc.logger.Info("Starting bulk scrape", port.Fields{"urls": len(urls)})

	allRecords := []domain.PropertyRecord{}
	for _, pageURL := range urls {
		records, err := uc.pipeline.scrapePage(ctx, pageURL, domain.HistoryTypeBulk, "Bulk operation included: "+pageURL)
		if err != nil {
			uc.logger.Error("Bulk scrape failed for url, continuing", err, port.Fields{"url": pageURL})
			continue
		}
		allRecords = append(allRecords, records...)
	}

	uc.logger.Info("Bulk scrape finished", port.Fields{"urls": len(urls), "records": len(allRecords)})
	return allRecords, nil
}

func parseBulkURLs(rawURLs string) []string {
	lines := strings.Split(rawURLs, "\n")
	urls := make([]string, 0, len(lines))
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			urls = append(urls, trimmed)
		}
	}
	return urls
}
