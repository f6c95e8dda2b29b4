package extract

import (
	"strings"
	"testing"

	"article-extract-worker/internal/models"

	"github.com/go-shiori/dom"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildCfg() BuildConfig {
	return BuildConfig{SuppressWarnings: true, Logger: zerolog.Nop()}
}

func TestBuildDocument(t *testing.T) {
	doc, err := BuildDocument("<html><head><title>t</title></head><body><p>hi</p></body></html>", "https://example.com/post/1", buildCfg())
	require.NoError(t, err)

	require.NotNil(t, doc.Root)
	require.NotNil(t, doc.BaseURL)
	assert.Equal(t, "example.com", doc.BaseURL.Hostname())
	assert.Contains(t, textContent(doc.Body()), "hi")
}

// Lenient parsing: malformed markup still yields a best-effort document
func TestBuildDocument_MalformedHTML(t *testing.T) {
	doc, err := BuildDocument("<p>unclosed <div><span>nested <b>text", "https://example.com", buildCfg())
	require.NoError(t, err)
	assert.Contains(t, textContent(doc.Body()), "text")
}

func TestBuildDocument_InvalidBaseURL(t *testing.T) {
	_, err := BuildDocument("<html></html>", "http://bad url/with spaces", buildCfg())
	require.Error(t, err)

	var buildErr *models.BuildError
	require.ErrorAs(t, err, &buildErr)
}

func TestDocument_CloneRootIsIndependent(t *testing.T) {
	doc, err := BuildDocument("<html><body><p>original</p></body></html>", "https://example.com", buildCfg())
	require.NoError(t, err)

	clone := doc.CloneRoot()
	require.NotSame(t, doc.Root, clone)

	// Mutating the clone must not leak into the shared tree
	paragraphs := dom.GetElementsByTagName(clone, "p")
	require.NotEmpty(t, paragraphs)
	paragraphs[0].FirstChild.Data = "mutated"

	assert.Contains(t, textContent(doc.Body()), "original")
	assert.NotContains(t, textContent(doc.Body()), "mutated")
}

func TestDocument_CountElements(t *testing.T) {
	doc, err := BuildDocument("<html><body><p>a</p><p>b</p></body></html>", "https://example.com", buildCfg())
	require.NoError(t, err)

	// html, head, body, p, p
	assert.Equal(t, 5, doc.CountElements())
}

func TestBuildDocument_EmptyDocumentWarnsWhenNotSuppressed(t *testing.T) {
	var buf strings.Builder
	cfg := BuildConfig{SuppressWarnings: false, Logger: zerolog.New(&buf)}

	_, err := BuildDocument("<html><body></body></html>", "https://example.com", cfg)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "no textual content")

	buf.Reset()
	cfg.SuppressWarnings = true
	_, err = BuildDocument("<html><body></body></html>", "https://example.com", cfg)
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "no textual content")
}
