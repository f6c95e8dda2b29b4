package extract

import (
	"testing"

	"article-extract-worker/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int       { return &n }
func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }

func TestNormalizeRequest_Defaults(t *testing.T) {
	req := &models.ExtractionRequest{
		HTML: "<html><body><p>hello</p></body></html>",
		URL:  "https://example.com/a",
	}

	html, url, opts, err := NormalizeRequest(req, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, req.HTML, html)
	assert.Equal(t, req.URL, url)
	assert.False(t, opts.Debug)
	assert.Equal(t, 0, opts.MaxElemsToParse)
	assert.Equal(t, 5, opts.NbTopCandidates)
	assert.Equal(t, 500, opts.CharThreshold)
	assert.Empty(t, opts.ClassesToPreserve)
	assert.False(t, opts.KeepClasses)
	assert.False(t, opts.DisableJSONLD)
	assert.Nil(t, opts.AllowedVideoRegex)
}

func TestNormalizeRequest_MissingFields(t *testing.T) {
	tests := []struct {
		name string
		req  *models.ExtractionRequest
	}{
		{"missing html", &models.ExtractionRequest{URL: "https://example.com"}},
		{"missing url", &models.ExtractionRequest{HTML: "<html></html>"}},
		{"blank html", &models.ExtractionRequest{HTML: "   ", URL: "https://example.com"}},
		{"both missing", &models.ExtractionRequest{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, err := NormalizeRequest(tt.req, DefaultOptions())
			require.Error(t, err)

			var validationErr *models.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, "Invalid input: Missing HTML content or URL.", err.Error())
		})
	}
}

// Explicit zero and false are honored as overrides, not treated as unset
func TestNormalizeRequest_ExplicitZeroHonored(t *testing.T) {
	req := &models.ExtractionRequest{
		HTML:          "<html><body><p>hello</p></body></html>",
		URL:           "https://example.com/a",
		CharThreshold: intPtr(0),
		KeepClasses:   boolPtr(false),
	}

	defaults := DefaultOptions()
	defaults.KeepClasses = true

	_, _, opts, err := NormalizeRequest(req, defaults)
	require.NoError(t, err)
	assert.Equal(t, 0, opts.CharThreshold)
	assert.False(t, opts.KeepClasses)
}

func TestNormalizeRequest_InvalidExplicitValues(t *testing.T) {
	base := models.ExtractionRequest{
		HTML: "<html><body><p>hello</p></body></html>",
		URL:  "https://example.com/a",
	}

	tests := []struct {
		name   string
		mutate func(r *models.ExtractionRequest)
	}{
		{"negative maxElemsToParse", func(r *models.ExtractionRequest) { r.MaxElemsToParse = intPtr(-1) }},
		{"zero nbTopCandidates", func(r *models.ExtractionRequest) { r.NbTopCandidates = intPtr(0) }},
		{"negative charThreshold", func(r *models.ExtractionRequest) { r.CharThreshold = intPtr(-5) }},
		{"bad video regex", func(r *models.ExtractionRequest) { r.AllowedVideoRegex = strPtr("((") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := base
			tt.mutate(&req)

			_, _, _, err := NormalizeRequest(&req, DefaultOptions())
			var validationErr *models.ValidationError
			require.ErrorAs(t, err, &validationErr)
		})
	}
}

func TestNormalizeRequest_AllOptionsResolved(t *testing.T) {
	req := &models.ExtractionRequest{
		HTML:              "<html><body><p>hello</p></body></html>",
		URL:               "https://example.com/a",
		Debug:             boolPtr(true),
		MaxElemsToParse:   intPtr(100),
		NbTopCandidates:   intPtr(3),
		CharThreshold:     intPtr(50),
		ClassesToPreserve: []string{"highlight", "caption"},
		KeepClasses:       boolPtr(true),
		DisableJSONLD:     boolPtr(true),
		AllowedVideoRegex: strPtr(`youtube\.com|vimeo\.com`),
	}

	_, _, opts, err := NormalizeRequest(req, DefaultOptions())
	require.NoError(t, err)

	assert.True(t, opts.Debug)
	assert.Equal(t, 100, opts.MaxElemsToParse)
	assert.Equal(t, 3, opts.NbTopCandidates)
	assert.Equal(t, 50, opts.CharThreshold)
	assert.Equal(t, []string{"highlight", "caption"}, opts.ClassesToPreserve)
	assert.True(t, opts.KeepClasses)
	assert.True(t, opts.DisableJSONLD)
	require.NotNil(t, opts.AllowedVideoRegex)
	assert.True(t, opts.AllowedVideoRegex.MatchString("https://youtube.com/embed/x"))
}

// Normalization must not mutate the defaults it resolves against
func TestNormalizeRequest_DefaultsUntouched(t *testing.T) {
	defaults := DefaultOptions()
	req := &models.ExtractionRequest{
		HTML:          "<html><body><p>hello</p></body></html>",
		URL:           "https://example.com/a",
		CharThreshold: intPtr(9),
	}

	_, _, _, err := NormalizeRequest(req, defaults)
	require.NoError(t, err)
	assert.Equal(t, 500, defaults.CharThreshold)
}
