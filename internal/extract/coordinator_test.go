package extract

import (
	"context"
	"testing"

	"article-extract-worker/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubEngine is a scriptable engine for coordinator tests
type stubEngine struct {
	name      string
	available bool
	article   *models.Article
	err       error
	calls     int
}

func (s *stubEngine) Name() string    { return s.name }
func (s *stubEngine) Available() bool { return s.available }

func (s *stubEngine) Extract(ctx context.Context, doc *Document, opts Options) (*models.Article, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	// Return a copy so the coordinator's mutations stay per-call
	article := *s.article
	return &article, nil
}

func testDoc(t *testing.T) *Document {
	t.Helper()
	return mustBuild(t, "<html><body><p>irrelevant</p></body></html>", "https://example.com")
}

func TestCoordinator_PrimarySuccess(t *testing.T) {
	primary := &stubEngine{name: "primary", available: true, article: &models.Article{Content: "<p>hello</p>"}}
	fallback := &stubEngine{name: "fallback", available: true, article: &models.Article{Content: "<p>other</p>"}}

	c := NewCoordinator([]Engine{primary, fallback}, zerolog.Nop())
	article, err := c.Extract(context.Background(), testDoc(t), DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, "primary", article.Mode)
	assert.Equal(t, 1, primary.calls)
	assert.Zero(t, fallback.calls)
}

func TestCoordinator_FallbackOnFailure(t *testing.T) {
	primary := &stubEngine{name: "primary", available: true,
		err: &models.ExtractionError{Engine: "primary", Reason: "no extractable content"}}
	fallback := &stubEngine{name: "fallback", available: true, article: &models.Article{Content: "<p>other</p>"}}

	c := NewCoordinator([]Engine{primary, fallback}, zerolog.Nop())
	article, err := c.Extract(context.Background(), testDoc(t), DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, "fallback", article.Mode)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, fallback.calls)
}

func TestCoordinator_UnavailableEngineSkipped(t *testing.T) {
	primary := &stubEngine{name: "primary", available: false}
	fallback := &stubEngine{name: "fallback", available: true, article: &models.Article{Content: "<p>other</p>"}}

	c := NewCoordinator([]Engine{primary, fallback}, zerolog.Nop())
	article, err := c.Extract(context.Background(), testDoc(t), DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, "fallback", article.Mode)
	assert.Zero(t, primary.calls, "unavailable engine must not be invoked")
}

func TestCoordinator_AllEnginesFail(t *testing.T) {
	primary := &stubEngine{name: "primary", available: true,
		err: &models.ExtractionError{Engine: "primary", Reason: "no extractable content"}}
	second := &stubEngine{name: "second", available: false}
	third := &stubEngine{name: "third", available: true,
		err: &models.ExtractionError{Engine: "third", Reason: "content below threshold (12 < 500 chars)"}}

	c := NewCoordinator([]Engine{primary, second, third}, zerolog.Nop())
	_, err := c.Extract(context.Background(), testDoc(t), DefaultOptions())
	require.Error(t, err)

	var allFailed *models.AllEnginesFailedError
	require.ErrorAs(t, err, &allFailed)
	require.Len(t, allFailed.Attempts, 3)

	// The message names every attempted engine with its own reason, and
	// unavailability is distinguishable from finding nothing
	msg := err.Error()
	assert.Contains(t, msg, "primary: no extractable content")
	assert.Contains(t, msg, "second: engine unavailable")
	assert.Contains(t, msg, "third: content below threshold")
}

func TestCoordinator_SanitizesEveryResult(t *testing.T) {
	engine := &stubEngine{name: "dirty", available: true,
		article: &models.Article{Content: `<p onclick="x()">text</p><script>bad()</script>`}}

	c := NewCoordinator([]Engine{engine}, zerolog.Nop())
	article, err := c.Extract(context.Background(), testDoc(t), DefaultOptions())
	require.NoError(t, err)

	assert.NotContains(t, article.Content, "onclick")
	assert.NotContains(t, article.Content, "<script")
	assert.Contains(t, article.Content, "text")
}

func TestCoordinator_ContextCancellationAborts(t *testing.T) {
	primary := &stubEngine{name: "primary", available: true,
		err: &models.ExtractionError{Engine: "primary", Reason: "no extractable content"}}
	fallback := &stubEngine{name: "fallback", available: true, article: &models.Article{Content: "<p>x</p>"}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewCoordinator([]Engine{primary, fallback}, zerolog.Nop())
	_, err := c.Extract(ctx, testDoc(t), DefaultOptions())
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, primary.calls)
	assert.Zero(t, fallback.calls)
}
