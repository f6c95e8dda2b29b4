package extract

import (
	"context"
	"fmt"

	"article-extract-worker/internal/models"

	"github.com/rs/zerolog"
)

// Engine identifiers, also used as the mode tag on responses
const (
	EngineReadability = "readability"
	EngineHeuristic   = "dom-heuristic"
	EnginePlaintext   = "plaintext"
)

// Engine is a content extraction capability. The primary engine runs the
// full readability algorithm; fallbacks trade fidelity for availability.
type Engine interface {
	// Name returns the engine identifier used for the mode tag
	Name() string

	// Available reports whether the engine can be invoked at all.
	// Unavailability is distinct from running and finding nothing.
	Available() bool

	// Extract runs the engine against the shared document. It returns an
	// ExtractionError when no acceptable content is found. The returned
	// article is unsanitized; the coordinator owns sanitization.
	Extract(ctx context.Context, doc *Document, opts Options) (*models.Article, error)
}

// NewEngines builds engines for the given identifiers, preserving order.
// Unknown identifiers are a configuration error.
func NewEngines(names []string, logger zerolog.Logger) ([]Engine, error) {
	engines := make([]Engine, 0, len(names))
	for _, name := range names {
		switch name {
		case EngineReadability:
			engines = append(engines, NewReadabilityEngine(logger))
		case EngineHeuristic:
			engines = append(engines, NewHeuristicEngine(logger))
		case EnginePlaintext:
			engines = append(engines, NewPlaintextEngine(logger))
		default:
			return nil, fmt.Errorf("unknown extraction engine %q", name)
		}
	}
	return engines, nil
}
