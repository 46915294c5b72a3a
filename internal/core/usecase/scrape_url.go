package usecase

import (
	"context"
	"net/url"

	"property-scraper-service/internal/core/domain"
	"property-scraper-service/internal/core/port"
)

// ScrapeURLUseCase - полный пайплайн для одной страницы:
// fetch -> extract -> обработка кандидатов -> merge в каталог -> история
type ScrapeURLUseCase struct {
	fetcher   port.PageFetcherPort
	extractor port.PropertyExtractorPort
	processor *CandidateProcessor
	catalog   *PropertyCatalogUseCase
	logger    port.LoggerPort
}

func NewScrapeURLUseCase(
	fetcher port.PageFetcherPort,
	extractor port.PropertyExtractorPort,
	processor *CandidateProcessor,
	catalog *PropertyCatalogUseCase,
	logger port.LoggerPort,
) *ScrapeURLUseCase {
	return &ScrapeURLUseCase{
		fetcher:   fetcher,
		extractor: extractor,
		processor: processor,
		catalog:   catalog,
		logger:    logger.WithFields(port.Fields{"component": "scrape_url"}),
	}
}

func (uc *ScrapeURLUseCase) Execute(ctx context.Context, pageURL string) ([]domain.PropertyRecord, error) {
	if err := validatePageURL(pageURL); err != nil {
		return nil, err
	}

	return uc.scrapePage(ctx, pageURL, domain.HistoryTypeURL, pageURL)
}

// scrapePage - общая часть для одиночного и пакетного режимов.
// Ошибка fetch или хранилища поднимается наверх; отказ извлечения
// деградирует до нуля кандидатов на границе адаптера.
func (uc *ScrapeURLUseCase) scrapePage(ctx context.Context, pageURL string, entryType domain.HistoryType, details string) ([]domain.PropertyRecord, error) {
	uc.logger.Info("Scraping page", port.Fields{"url": pageURL})

	htmlContent, err := uc.fetcher.FetchHTML(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	candidates, err := uc.extractor.ExtractProperties(ctx, htmlContent)
	if err != nil {
		// Адаптер fail-open и сюда попадать не должен, но на всякий случай
		// деградируем так же, как он сам: ноль кандидатов
		uc.logger.Error("Extractor returned an error, degrading to zero candidates", err, port.Fields{"url": pageURL})
		candidates = nil
	}

	records := uc.processor.ProcessAll(ctx, candidates, pageURL)

	if err := uc.catalog.Save(ctx, records); err != nil {
		return nil, err
	}
	if err := uc.catalog.AppendHistory(ctx, entryType, details, len(records)); err != nil {
		return nil, err
	}

	uc.logger.Info("Page scraped", port.Fields{"url": pageURL, "records": len(records)})
	return records, nil
}

func validatePageURL(pageURL string) error {
	if pageURL == "" {
		return &domain.ValidationError{Reason: "url is required"}
	}
	parsed, err := url.Parse(pageURL)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return &domain.ValidationError{Reason: "url must be an absolute http(s) URL"}
	}
	return nil
}
