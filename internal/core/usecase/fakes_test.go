package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"property-scraper-service/internal/core/domain"
	"property-scraper-service/internal/core/port"
)

// Фейки для тестов ядра. Хранилища - в памяти, внешние способности -
// настраиваемые заглушки.

type nopLogger struct{}

func (l *nopLogger) Info(msg string, fields port.Fields)             {}
func (l *nopLogger) Warn(msg string, fields port.Fields)             {}
func (l *nopLogger) Error(msg string, err error, fields port.Fields) {}
func (l *nopLogger) Debug(msg string, fields port.Fields)            {}
func (l *nopLogger) WithFields(fields port.Fields) port.LoggerPort   { return l }

type memPropertyStorage struct {
	mu           sync.Mutex
	records      []domain.PropertyRecord
	loadErr      error
	replaceErr   error
	replaceCalls int
}

func (s *memPropertyStorage) LoadAll(ctx context.Context) ([]domain.PropertyRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	out := make([]domain.PropertyRecord, len(s.records))
	copy(out, s.records)
	return out, nil
}

func (s *memPropertyStorage) ReplaceAll(ctx context.Context, records []domain.PropertyRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.replaceErr != nil {
		return s.replaceErr
	}
	s.replaceCalls++
	s.records = make([]domain.PropertyRecord, len(records))
	copy(s.records, records)
	return nil
}

type memHistoryStorage struct {
	mu      sync.Mutex
	entries []domain.HistoryEntry
}

func (s *memHistoryStorage) LoadAll(ctx context.Context) ([]domain.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.HistoryEntry, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

func (s *memHistoryStorage) ReplaceAll(ctx context.Context, entries []domain.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make([]domain.HistoryEntry, len(entries))
	copy(s.entries, entries)
	return nil
}

// fakePageFetcher отдает HTML по карте url->содержимое
type fakePageFetcher struct {
	pages map[string]string
}

func (f *fakePageFetcher) FetchHTML(ctx context.Context, pageURL string) (string, error) {
	html, ok := f.pages[pageURL]
	if !ok {
		return "", &domain.FetchError{URL: pageURL, StatusCode: 404, Reason: "not found"}
	}
	return html, nil
}

// fakeExtractor возвращает кандидатов по подстроке, найденной в HTML
type fakeExtractor struct {
	byMarker map[string][]domain.CandidateProperty
	err      error
}

func (f *fakeExtractor) ExtractProperties(ctx context.Context, htmlContent string) ([]domain.CandidateProperty, error) {
	if f.err != nil {
		return nil, f.err
	}
	for marker, candidates := range f.byMarker {
		if strings.Contains(htmlContent, marker) {
			return candidates, nil
		}
	}
	return []domain.CandidateProperty{}, nil
}

// fakeEnhancer добавляет префикс к заголовку либо падает
type fakeEnhancer struct {
	mu    sync.Mutex
	err   error
	calls int
}

func (f *fakeEnhancer) Enhance(ctx context.Context, title, description string) (domain.EnhancedContent, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.err != nil {
		return domain.EnhancedContent{}, f.err
	}
	return domain.EnhancedContent{
		Title:       "Enhanced: " + title,
		Description: "Enhanced: " + description,
	}, nil
}

// fakeImageFetcher отдает картинки по карте url->байты; отсутствие = 404
type fakeImageFetcher struct {
	mu          sync.Mutex
	images      map[string][]byte
	contentType string
	validateErr error
}

func (f *fakeImageFetcher) FetchImage(ctx context.Context, imageURL string) (*port.FetchedImage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.images[imageURL]
	if !ok {
		return nil, &domain.FetchError{URL: imageURL, StatusCode: 404, Reason: "not found"}
	}
	ct := f.contentType
	if ct == "" {
		ct = "image/jpeg"
	}
	return &port.FetchedImage{Data: data, ContentType: ct}, nil
}

func (f *fakeImageFetcher) Validate(ctx context.Context, publicURL string) error {
	return f.validateErr
}

// fakeImageStore хостит изображения под фиксированным базовым URL
type fakeImageStore struct {
	mu      sync.Mutex
	saved   map[string][]byte
	saveErr error
}

func newFakeImageStore() *fakeImageStore {
	return &fakeImageStore{saved: make(map[string][]byte)}
}

func (f *fakeImageStore) SaveImage(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return "", f.saveErr
	}
	f.saved[key] = data
	return "http://host.local/images/" + key, nil
}

// fakeEvents фиксирует опубликованные пачки
type fakeEvents struct {
	mu        sync.Mutex
	published [][]domain.PropertyRecord
	err       error
}

func (f *fakeEvents) PublishSaved(ctx context.Context, records []domain.PropertyRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, records)
	return nil
}

func newTestCatalog(storage *memPropertyStorage, history *memHistoryStorage, events port.ScrapeEventsPort) *PropertyCatalogUseCase {
	return NewPropertyCatalogUseCase(storage, history, events, &nopLogger{})
}

var errBoom = fmt.Errorf("boom")
