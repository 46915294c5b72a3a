package claudeai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  string
	}{
		{
			"bare object",
			`{"properties": []}`,
			`{"properties": []}`,
		},
		{
			"fenced block",
			"Here you go:\n```json\n{\"properties\": []}\n```\nDone.",
			`{"properties": []}`,
		},
		{
			"fence without language tag",
			"```\n{\"a\": 1}\n```",
			`{"a": 1}`,
		},
		{
			"surrounding commentary",
			"Sure! The result is {\"a\": {\"b\": 2}} as requested.",
			`{"a": {"b": 2}}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractJSON(tt.reply)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractJSON_NoObject(t *testing.T) {
	for _, reply := range []string{"", "no json here", "]["} {
		_, err := extractJSON(reply)
		require.Error(t, err, "reply %q", reply)
	}
}

func TestToCandidate_AppliesDefaults(t *testing.T) {
	cand := toCandidate(extractedProperty{
		Title:     "Flat",
		Bedrooms:  -2,
		Bathrooms: -1,
	})

	assert.Equal(t, "Flat", cand.Title)
	assert.Zero(t, cand.Bedrooms, "negative counts are clamped to zero")
	assert.Zero(t, cand.Bathrooms)
	assert.NotNil(t, cand.Features)
	assert.Empty(t, cand.Features)
	assert.NotNil(t, cand.ImageURLs)
	assert.Empty(t, cand.ImageURLs)
}

func TestToCandidate_CopiesAllFields(t *testing.T) {
	in := extractedProperty{
		Title:                  "Flat",
		Description:            "Nice",
		Price:                  "120000 AED",
		Location:               "Marina",
		Bedrooms:               2,
		Bathrooms:              1,
		Features:               []string{"balcony"},
		ReferenceID:            "REF-7",
		ReraRegistrationNumber: "RERA-9",
		AgentPhone:             "+971-50-000",
		PageLink:               "https://site.test/details/7",
		ImageURLs:              []string{"https://cdn.test/1.png"},
	}

	cand := toCandidate(in)
	assert.Equal(t, "120000 AED", cand.Price)
	assert.Equal(t, "REF-7", cand.ReferenceID)
	assert.Equal(t, "RERA-9", cand.ReraRegistrationNumber)
	assert.Equal(t, "+971-50-000", cand.AgentPhone)
	assert.Equal(t, []string{"balcony"}, cand.Features)
	assert.Equal(t, []string{"https://cdn.test/1.png"}, cand.ImageURLs)
}
