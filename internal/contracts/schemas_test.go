package contracts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateExtractedProperties_AcceptsValidPayloads(t *testing.T) {
	payloads := []string{
		`{"properties": []}`,
		`{"properties": [{"title": "Flat", "description": "Nice", "bedrooms": 2, "image_urls": ["https://cdn.test/1.png"]}]}`,
		// Лишние поля допустимы: модель иногда добавляет свои
		`{"properties": [{"title": "Flat", "description": "Nice", "confidence": 0.9}]}`,
	}
	for _, payload := range payloads {
		assert.NoError(t, ValidateExtractedProperties([]byte(payload)), "payload: %s", payload)
	}
}

func TestValidateExtractedProperties_RejectsInvalidPayloads(t *testing.T) {
	payloads := map[string]string{
		"not json":              `{not json`,
		"missing properties":    `{}`,
		"missing title":         `{"properties": [{"description": "Nice"}]}`,
		"missing description":   `{"properties": [{"title": "Flat"}]}`,
		"negative bedrooms":     `{"properties": [{"title": "Flat", "description": "Nice", "bedrooms": -1}]}`,
		"non-integer bathrooms": `{"properties": [{"title": "Flat", "description": "Nice", "bathrooms": "two"}]}`,
		"properties not array":  `{"properties": {}}`,
	}
	for name, payload := range payloads {
		t.Run(name, func(t *testing.T) {
			require.Error(t, ValidateExtractedProperties([]byte(payload)))
		})
	}
}
