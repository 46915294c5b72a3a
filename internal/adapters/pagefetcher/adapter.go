package pagefetcher

import (
	"context"

	"property-scraper-service/internal/core/domain"
	"property-scraper-service/internal/core/port"

	"github.com/gocolly/colly/v2"
	"github.com/gocolly/colly/v2/extensions"
)

// Adapter получает HTML страниц объявлений. Один родительский коллектор,
// на каждый запрос - клон с подставленным User-Agent реального браузера,
// чтобы не спотыкаться о примитивную защиту от ботов.
type Adapter struct {
	collector *colly.Collector
	logger    port.LoggerPort
}

func NewAdapter(logger port.LoggerPort) *Adapter {
	c := colly.NewCollector(colly.AllowURLRevisit())

	return &Adapter{
		collector: c,
		logger:    logger.WithFields(port.Fields{"component": "page_fetcher"}),
	}
}

// FetchHTML делает один GET без ретраев: политика повторов принадлежит
// вызывающей стороне. Ошибка всегда включает проблемный URL и статус.
func (a *Adapter) FetchHTML(ctx context.Context, pageURL string) (string, error) {
	collector := a.collector.Clone()

	// На каждый запрос подставляется User-Agent реального браузера
	// и Referer, имитирующий навигацию
	extensions.RandomUserAgent(collector)
	extensions.Referer(collector)

	var body []byte
	var fetchErr error

	collector.OnRequest(func(r *colly.Request) {
		r.Headers.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,image/apng,*/*;q=0.8")
		r.Headers.Set("Accept-Language", "en-US,en;q=0.9")
		a.logger.Debug("Fetching page", port.Fields{"url": r.URL.String()})
	})

	collector.OnResponse(func(r *colly.Response) {
		body = r.Body
	})

	collector.OnError(func(r *colly.Response, err error) {
		statusCode := 0
		if r != nil {
			statusCode = r.StatusCode
		}
		fetchErr = &domain.FetchError{URL: pageURL, StatusCode: statusCode, Reason: err.Error()}
	})

	if err := collector.Visit(pageURL); err != nil {
		if fetchErr != nil {
			return "", fetchErr
		}
		return "", &domain.FetchError{URL: pageURL, Reason: err.Error()}
	}
	collector.Wait()

	if fetchErr != nil {
		return "", fetchErr
	}
	return string(body), nil
}
