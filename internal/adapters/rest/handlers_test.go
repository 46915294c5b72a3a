package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"property-scraper-service/internal/core/domain"
	"property-scraper-service/internal/core/port"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (l *nopLogger) Info(msg string, fields port.Fields)             {}
func (l *nopLogger) Warn(msg string, fields port.Fields)             {}
func (l *nopLogger) Error(msg string, err error, fields port.Fields) {}
func (l *nopLogger) Debug(msg string, fields port.Fields)            {}
func (l *nopLogger) WithFields(fields port.Fields) port.LoggerPort   { return l }

type fakeScrapeUC struct {
	records []domain.PropertyRecord
	err     error
	gotArg  string
}

func (f *fakeScrapeUC) Execute(ctx context.Context, arg string) ([]domain.PropertyRecord, error) {
	f.gotArg = arg
	return f.records, f.err
}

type fakeScrapeHTMLUC struct {
	records   []domain.PropertyRecord
	err       error
	gotHTML   string
	gotOrigin string
}

func (f *fakeScrapeHTMLUC) Execute(ctx context.Context, html, origin string) ([]domain.PropertyRecord, error) {
	f.gotHTML = html
	f.gotOrigin = origin
	return f.records, f.err
}

type fakeCatalogUC struct {
	records []domain.PropertyRecord
	history []domain.HistoryEntry
	saved   []domain.PropertyRecord
	updated *domain.PropertyRecord
	deleted string
	err     error
}

func (f *fakeCatalogUC) List(ctx context.Context) ([]domain.PropertyRecord, error) {
	return f.records, f.err
}

func (f *fakeCatalogUC) Save(ctx context.Context, records []domain.PropertyRecord) error {
	f.saved = append(f.saved, records...)
	return f.err
}

func (f *fakeCatalogUC) Update(ctx context.Context, record domain.PropertyRecord) error {
	if f.err != nil {
		return f.err
	}
	f.updated = &record
	return nil
}

func (f *fakeCatalogUC) Delete(ctx context.Context, id string) error {
	f.deleted = id
	return f.err
}

func (f *fakeCatalogUC) History(ctx context.Context) ([]domain.HistoryEntry, error) {
	return f.history, f.err
}

type fakeReEnhanceUC struct {
	record domain.PropertyRecord
	err    error
	gotID  string
}

func (f *fakeReEnhanceUC) Execute(ctx context.Context, id string) (domain.PropertyRecord, error) {
	f.gotID = id
	return f.record, f.err
}

func newTestServer(scrapeURL *fakeScrapeUC, scrapeHTML *fakeScrapeHTMLUC, scrapeBulk *fakeScrapeUC, catalog *fakeCatalogUC, reEnhance *fakeReEnhanceUC) *httptest.Server {
	scrapeHandler := NewScrapeHandler(scrapeURL, scrapeHTML, scrapeBulk)
	catalogHandler := NewCatalogHandler(catalog, reEnhance)
	srv := NewServer("0", []string{"*"}, scrapeHandler, catalogHandler, "", &nopLogger{})
	return httptest.NewServer(srv.httpServer.Handler)
}

func TestScrapeURLEndpoint(t *testing.T) {
	scrapeURL := &fakeScrapeUC{records: []domain.PropertyRecord{{ID: "prop-1", Title: "Flat"}}}
	ts := newTestServer(scrapeURL, &fakeScrapeHTMLUC{}, &fakeScrapeUC{}, &fakeCatalogUC{}, &fakeReEnhanceUC{})
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/api/v1/scrape/url", "application/json",
		strings.NewReader(`{"url": "https://site.test/listing"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "https://site.test/listing", scrapeURL.gotArg)

	var records []domain.PropertyRecord
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&records))
	require.Len(t, records, 1)
	assert.Equal(t, "prop-1", records[0].ID)
}

func TestScrapeURLEndpoint_ValidationErrorIs400(t *testing.T) {
	scrapeURL := &fakeScrapeUC{err: &domain.ValidationError{Reason: "url is required"}}
	ts := newTestServer(scrapeURL, &fakeScrapeHTMLUC{}, &fakeScrapeUC{}, &fakeCatalogUC{}, &fakeReEnhanceUC{})
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/api/v1/scrape/url", "application/json", strings.NewReader(`{"url": ""}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body["error"], "url is required")
}

func TestScrapeURLEndpoint_FetchErrorIs502(t *testing.T) {
	scrapeURL := &fakeScrapeUC{err: &domain.FetchError{URL: "https://site.test/x", StatusCode: 403, Reason: "forbidden"}}
	ts := newTestServer(scrapeURL, &fakeScrapeHTMLUC{}, &fakeScrapeUC{}, &fakeCatalogUC{}, &fakeReEnhanceUC{})
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/api/v1/scrape/url", "application/json",
		strings.NewReader(`{"url": "https://site.test/x"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestScrapeHTMLEndpoint_PassesOrigin(t *testing.T) {
	scrapeHTML := &fakeScrapeHTMLUC{records: []domain.PropertyRecord{}}
	ts := newTestServer(&fakeScrapeUC{}, scrapeHTML, &fakeScrapeUC{}, &fakeCatalogUC{}, &fakeReEnhanceUC{})
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/api/v1/scrape/html", "application/json",
		strings.NewReader(`{"html": "<html>...</html>", "origin": "https://site.test/src"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "<html>...</html>", scrapeHTML.gotHTML)
	assert.Equal(t, "https://site.test/src", scrapeHTML.gotOrigin)
}

func TestPropertiesEndpoints(t *testing.T) {
	catalog := &fakeCatalogUC{records: []domain.PropertyRecord{{ID: "prop-1"}}}
	ts := newTestServer(&fakeScrapeUC{}, &fakeScrapeHTMLUC{}, &fakeScrapeUC{}, catalog, &fakeReEnhanceUC{})
	defer ts.Close()

	// GET list
	resp, err := http.Get(ts.URL + "/api/v1/properties")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// POST save
	resp, err = http.Post(ts.URL+"/api/v1/properties", "application/json",
		strings.NewReader(`{"id": "prop-new", "title": "Manual"}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Len(t, catalog.saved, 1)
	assert.Equal(t, "prop-new", catalog.saved[0].ID)

	// PUT update: id из URL главнее, чем id в теле
	req, err := http.NewRequest(http.MethodPut, ts.URL+"/api/v1/properties/prop-1",
		strings.NewReader(`{"id": "ignored", "title": "Edited"}`))
	require.NoError(t, err)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, catalog.updated)
	assert.Equal(t, "prop-1", catalog.updated.ID)
	assert.Equal(t, "Edited", catalog.updated.Title)

	// DELETE
	req, err = http.NewRequest(http.MethodDelete, ts.URL+"/api/v1/properties/prop-1", nil)
	require.NoError(t, err)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "prop-1", catalog.deleted)
}

func TestUpdateEndpoint_NotFoundIs404(t *testing.T) {
	catalog := &fakeCatalogUC{err: &domain.NotFoundError{ID: "prop-ghost"}}
	ts := newTestServer(&fakeScrapeUC{}, &fakeScrapeHTMLUC{}, &fakeScrapeUC{}, catalog, &fakeReEnhanceUC{})
	defer ts.Close()

	req, err := http.NewRequest(http.MethodPut, ts.URL+"/api/v1/properties/prop-ghost",
		strings.NewReader(`{"title": "x"}`))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestReEnhanceEndpoint(t *testing.T) {
	reEnhance := &fakeReEnhanceUC{record: domain.PropertyRecord{ID: "prop-1", Title: "Enhanced"}}
	ts := newTestServer(&fakeScrapeUC{}, &fakeScrapeHTMLUC{}, &fakeScrapeUC{}, &fakeCatalogUC{}, reEnhance)
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/api/v1/properties/prop-1/enhance", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "prop-1", reEnhance.gotID)

	var record domain.PropertyRecord
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&record))
	assert.Equal(t, "Enhanced", record.Title)
}

func TestHistoryEndpoint(t *testing.T) {
	catalog := &fakeCatalogUC{history: []domain.HistoryEntry{{ID: "hist-1", Type: domain.HistoryTypeURL}}}
	ts := newTestServer(&fakeScrapeUC{}, &fakeScrapeHTMLUC{}, &fakeScrapeUC{}, catalog, &fakeReEnhanceUC{})
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/v1/history")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var entries []domain.HistoryEntry
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "hist-1", entries[0].ID)
}

func TestInvalidJSONBodyIs400(t *testing.T) {
	ts := newTestServer(&fakeScrapeUC{}, &fakeScrapeHTMLUC{}, &fakeScrapeUC{}, &fakeCatalogUC{}, &fakeReEnhanceUC{})
	defer ts.Close()

	for _, path := range []string{"/api/v1/scrape/url", "/api/v1/scrape/html", "/api/v1/scrape/bulk", "/api/v1/properties"} {
		resp, err := http.Post(ts.URL+path, "application/json", strings.NewReader("{broken"))
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "path %s", path)
	}
}
