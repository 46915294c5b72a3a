package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindMatch_URLDecidesWhenBothPresent(t *testing.T) {
	existing := []PropertyRecord{
		{ID: "prop-1", OriginalURL: "https://site.test/a", ReferenceID: "REF-1"},
		{ID: "prop-2", OriginalURL: "https://site.test/b"},
	}

	incoming := PropertyRecord{OriginalURL: "https://site.test/b"}
	assert.Equal(t, 1, FindMatch(existing, incoming))

	// Совпадающий reference_id не спасает при разных URL: URL надежнее
	differentURL := PropertyRecord{OriginalURL: "https://site.test/other", ReferenceID: "REF-1"}
	assert.Equal(t, -1, FindMatch(existing, differentURL))
}

func TestFindMatch_SentinelURLFallsThroughToReferenceID(t *testing.T) {
	existing := []PropertyRecord{
		{ID: "prop-1", OriginalURL: HTMLOriginLabel, ReferenceID: "REF-42"},
	}

	incoming := PropertyRecord{OriginalURL: HTMLOriginLabel, ReferenceID: "REF-42"}
	assert.Equal(t, 0, FindMatch(existing, incoming))

	other := PropertyRecord{OriginalURL: HTMLOriginLabel, ReferenceID: "REF-43"}
	assert.Equal(t, -1, FindMatch(existing, other))
}

func TestFindMatch_PageLinkFallback(t *testing.T) {
	existing := []PropertyRecord{
		{ID: "prop-1", OriginalURL: HTMLOriginLabel, PageLink: "https://site.test/details/7"},
	}

	incoming := PropertyRecord{PageLink: "https://site.test/details/7"}
	assert.Equal(t, 0, FindMatch(existing, incoming))
}

func TestFindMatch_TitleAndLocationFallback(t *testing.T) {
	existing := []PropertyRecord{
		{ID: "prop-1", OriginalTitle: "Cozy flat", Location: "Marina"},
	}

	assert.Equal(t, 0, FindMatch(existing, PropertyRecord{OriginalTitle: "Cozy flat", Location: "Marina"}))
	assert.Equal(t, -1, FindMatch(existing, PropertyRecord{OriginalTitle: "Cozy flat", Location: "JLT"}))
	assert.Equal(t, -1, FindMatch(existing, PropertyRecord{OriginalTitle: "Other flat", Location: "Marina"}))
}

func TestFindMatch_NoSignalsNeverMatches(t *testing.T) {
	existing := []PropertyRecord{{ID: "prop-1"}, {ID: "prop-2"}}
	assert.Equal(t, -1, FindMatch(existing, PropertyRecord{}))
}
