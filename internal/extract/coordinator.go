package extract

import (
	"context"
	"errors"

	"article-extract-worker/internal/models"

	"github.com/rs/zerolog"
)

// Coordinator routes a request through the configured engines in priority
// order and returns the first successful, sanitized article. Engine order is
// fixed at construction and never re-evaluated per request.
type Coordinator struct {
	engines []Engine
	logger  zerolog.Logger
}

func NewCoordinator(engines []Engine, logger zerolog.Logger) *Coordinator {
	return &Coordinator{engines: engines, logger: logger}
}

// Engines returns the configured engine names in priority order
func (c *Coordinator) Engines() []string {
	names := make([]string, len(c.engines))
	for i, e := range c.engines {
		names[i] = e.Name()
	}
	return names
}

// Extract tries each engine against the same document and options. An
// unavailable engine and an engine that found nothing both advance to the
// next one, but are recorded distinctly. On success the article is sanitized
// and tagged with the producing engine's name. When every engine fails the
// aggregated error names each attempt and its reason. Context cancellation
// aborts immediately instead of burning through the remaining engines.
func (c *Coordinator) Extract(ctx context.Context, doc *Document, opts Options) (*models.Article, error) {
	var attempts []models.EngineFailure

	for _, engine := range c.engines {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if !engine.Available() {
			err := &models.EngineUnavailableError{Engine: engine.Name()}
			c.logger.Warn().Str("engine", engine.Name()).Msg("engine unavailable, trying next")
			attempts = append(attempts, models.EngineFailure{Engine: engine.Name(), Reason: failureReason(engine.Name(), err)})
			continue
		}

		article, err := engine.Extract(ctx, doc, opts)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, err
			}
			c.logger.Debug().Str("engine", engine.Name()).Err(err).Msg("engine failed, trying next")
			attempts = append(attempts, models.EngineFailure{Engine: engine.Name(), Reason: failureReason(engine.Name(), err)})
			continue
		}

		article.Mode = engine.Name()
		SanitizeArticle(article, opts)
		return article, nil
	}

	return nil, &models.AllEnginesFailedError{Attempts: attempts}
}

// failureReason strips the engine's own name prefix from its error so the
// aggregate message does not repeat it
func failureReason(engine string, err error) string {
	var extractionErr *models.ExtractionError
	if errors.As(err, &extractionErr) {
		return extractionErr.Reason
	}
	var unavailableErr *models.EngineUnavailableError
	if errors.As(err, &unavailableErr) {
		return "engine unavailable"
	}
	return err.Error()
}
