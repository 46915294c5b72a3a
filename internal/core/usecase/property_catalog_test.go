package usecase

import (
	"context"
	"fmt"
	"testing"

	"property-scraper-service/internal/constants"
	"property-scraper-service/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogSave_InsertsNewRecordsAtHead(t *testing.T) {
	storage := &memPropertyStorage{}
	catalog := newTestCatalog(storage, &memHistoryStorage{}, nil)

	first := domain.PropertyRecord{ID: "prop-1", OriginalURL: "https://site.test/a", Title: "A"}
	second := domain.PropertyRecord{ID: "prop-2", OriginalURL: "https://site.test/b", Title: "B"}

	require.NoError(t, catalog.Save(context.Background(), []domain.PropertyRecord{first}))
	require.NoError(t, catalog.Save(context.Background(), []domain.PropertyRecord{second}))

	records, err := catalog.List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "prop-2", records[0].ID, "newest record should be first")
	assert.Equal(t, "prop-1", records[1].ID)
}

func TestCatalogSave_MergeKeepsExistingID(t *testing.T) {
	storage := &memPropertyStorage{}
	catalog := newTestCatalog(storage, &memHistoryStorage{}, nil)

	original := domain.PropertyRecord{
		ID:          "prop-original",
		OriginalURL: "https://site.test/listing/1",
		Title:       "Old title",
		Price:       "1000",
	}
	require.NoError(t, catalog.Save(context.Background(), []domain.PropertyRecord{original}))

	rescraped := domain.PropertyRecord{
		ID:          "prop-rescraped",
		OriginalURL: "https://site.test/listing/1",
		Title:       "New title",
		Price:       "1200",
	}
	require.NoError(t, catalog.Save(context.Background(), []domain.PropertyRecord{rescraped}))

	records, err := catalog.List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1, "re-scrape of the same URL must not create a second record")
	assert.Equal(t, "prop-original", records[0].ID, "merge must keep the first-seen id")
	assert.Equal(t, "New title", records[0].Title)
	assert.Equal(t, "1200", records[0].Price)
}

func TestCatalogSave_MergeFallsBackToTitleAndLocation(t *testing.T) {
	storage := &memPropertyStorage{}
	catalog := newTestCatalog(storage, &memHistoryStorage{}, nil)

	pasted := domain.PropertyRecord{
		ID:            "prop-1",
		OriginalURL:   domain.HTMLOriginLabel,
		OriginalTitle: "Cozy flat",
		Location:      "Dubai Marina",
	}
	require.NoError(t, catalog.Save(context.Background(), []domain.PropertyRecord{pasted}))

	pastedAgain := domain.PropertyRecord{
		ID:            "prop-2",
		OriginalURL:   domain.HTMLOriginLabel,
		OriginalTitle: "Cozy flat",
		Location:      "Dubai Marina",
	}
	require.NoError(t, catalog.Save(context.Background(), []domain.PropertyRecord{pastedAgain}))

	differentLocation := domain.PropertyRecord{
		ID:            "prop-3",
		OriginalURL:   domain.HTMLOriginLabel,
		OriginalTitle: "Cozy flat",
		Location:      "JLT",
	}
	require.NoError(t, catalog.Save(context.Background(), []domain.PropertyRecord{differentLocation}))

	records, err := catalog.List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "prop-3", records[0].ID)
	assert.Equal(t, "prop-1", records[1].ID)
}

func TestCatalogSave_EmptyInputSkipsStorage(t *testing.T) {
	storage := &memPropertyStorage{}
	catalog := newTestCatalog(storage, &memHistoryStorage{}, nil)

	require.NoError(t, catalog.Save(context.Background(), nil))
	assert.Zero(t, storage.replaceCalls)
}

func TestCatalogSave_PublishesEvents(t *testing.T) {
	events := &fakeEvents{}
	catalog := newTestCatalog(&memPropertyStorage{}, &memHistoryStorage{}, events)

	rec := domain.PropertyRecord{ID: "prop-1", OriginalURL: "https://site.test/a"}
	require.NoError(t, catalog.Save(context.Background(), []domain.PropertyRecord{rec}))

	require.Len(t, events.published, 1)
	assert.Equal(t, "prop-1", events.published[0][0].ID)
}

func TestCatalogSave_EventFailureDoesNotFailSave(t *testing.T) {
	events := &fakeEvents{err: errBoom}
	storage := &memPropertyStorage{}
	catalog := newTestCatalog(storage, &memHistoryStorage{}, events)

	rec := domain.PropertyRecord{ID: "prop-1", OriginalURL: "https://site.test/a"}
	require.NoError(t, catalog.Save(context.Background(), []domain.PropertyRecord{rec}))
	assert.Equal(t, 1, storage.replaceCalls)
}

func TestCatalogUpdate_UnknownIDReturnsNotFound(t *testing.T) {
	catalog := newTestCatalog(&memPropertyStorage{}, &memHistoryStorage{}, nil)

	err := catalog.Update(context.Background(), domain.PropertyRecord{ID: "prop-ghost"})
	var notFound *domain.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "prop-ghost", notFound.ID)
}

func TestCatalogUpdate_ReplacesMatchingRecord(t *testing.T) {
	storage := &memPropertyStorage{records: []domain.PropertyRecord{
		{ID: "prop-1", Title: "Old"},
		{ID: "prop-2", Title: "Other"},
	}}
	catalog := newTestCatalog(storage, &memHistoryStorage{}, nil)

	require.NoError(t, catalog.Update(context.Background(), domain.PropertyRecord{ID: "prop-1", Title: "New"}))

	records, err := catalog.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "New", records[0].Title)
	assert.Equal(t, "Other", records[1].Title)
}

func TestCatalogDelete_IsIdempotent(t *testing.T) {
	storage := &memPropertyStorage{records: []domain.PropertyRecord{{ID: "prop-1"}}}
	catalog := newTestCatalog(storage, &memHistoryStorage{}, nil)

	require.NoError(t, catalog.Delete(context.Background(), "prop-1"))
	require.NoError(t, catalog.Delete(context.Background(), "prop-1"), "second delete must be a no-op")

	records, err := catalog.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestCatalogAppendHistory_TrimsToLimitNewestFirst(t *testing.T) {
	history := &memHistoryStorage{}
	catalog := newTestCatalog(&memPropertyStorage{}, history, nil)

	total := constants.HistoryLimit + 10
	for i := 0; i < total; i++ {
		details := fmt.Sprintf("scrape #%d", i)
		require.NoError(t, catalog.AppendHistory(context.Background(), domain.HistoryTypeURL, details, i))
	}

	entries, err := catalog.History(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, constants.HistoryLimit)
	assert.Equal(t, fmt.Sprintf("scrape #%d", total-1), entries[0].Details, "newest entry must be first")
	assert.Equal(t, fmt.Sprintf("scrape #%d", total-constants.HistoryLimit), entries[constants.HistoryLimit-1].Details)
}

func TestCatalogList_WrapsStorageError(t *testing.T) {
	storage := &memPropertyStorage{loadErr: errBoom}
	catalog := newTestCatalog(storage, &memHistoryStorage{}, nil)

	_, err := catalog.List(context.Background())
	var storageErr *domain.StorageError
	require.ErrorAs(t, err, &storageErr)
	assert.ErrorIs(t, err, errBoom)
}
