package extract

import (
	"context"
	"strings"

	"article-extract-worker/internal/models"

	readability "github.com/go-shiori/go-readability"
	"github.com/rs/zerolog"
)

// ReadabilityEngine is the primary engine. It delegates to the Mozilla
// Readability algorithm via go-readability, which scores DOM candidates and
// returns the highest-fidelity article of the configured engines.
type ReadabilityEngine struct {
	logger zerolog.Logger
}

func NewReadabilityEngine(logger zerolog.Logger) *ReadabilityEngine {
	return &ReadabilityEngine{logger: logger}
}

func (e *ReadabilityEngine) Name() string {
	return EngineReadability
}

func (e *ReadabilityEngine) Available() bool {
	return true
}

// Extract runs the readability parser against a clone of the document. The
// parser mutates the tree during analysis, so the shared document must not
// be handed to it directly.
func (e *ReadabilityEngine) Extract(ctx context.Context, doc *Document, opts Options) (*models.Article, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	parser := readability.NewParser()
	parser.Debug = opts.Debug
	parser.MaxElemsToParse = opts.MaxElemsToParse
	parser.NTopCandidates = opts.NbTopCandidates
	parser.CharThresholds = opts.CharThreshold
	parser.KeepClasses = opts.KeepClasses
	parser.DisableJSONLD = opts.DisableJSONLD
	if len(opts.ClassesToPreserve) > 0 {
		parser.ClassesToPreserve = append(parser.ClassesToPreserve, opts.ClassesToPreserve...)
	}
	if opts.AllowedVideoRegex != nil {
		parser.AllowedVideoRegex = opts.AllowedVideoRegex
	}

	article, err := parser.ParseDocument(doc.CloneRoot(), doc.BaseURL)
	if err != nil {
		return nil, &models.ExtractionError{Engine: e.Name(), Reason: err.Error()}
	}

	text := strings.TrimSpace(article.TextContent)
	if text == "" {
		return nil, &models.ExtractionError{Engine: e.Name(), Reason: "no extractable content"}
	}
	if len(text) < opts.CharThreshold {
		return nil, &models.ExtractionError{
			Engine: e.Name(),
			Reason: belowThresholdReason(len(text), opts.CharThreshold),
		}
	}

	content := article.Content
	if opts.Serializer != nil && article.Node != nil {
		content = opts.Serializer(article.Node)
	}

	length := article.Length
	if length == 0 {
		length = len(text)
	}

	// The parser leaves the title empty when the document has no <title>
	// or metadata title; fall back to the leading heading.
	title := article.Title
	if title == "" {
		title = documentTitle(doc)
	}

	e.logger.Debug().Str("engine", e.Name()).Int("length", length).Msg("extraction succeeded")

	return &models.Article{
		Title:       title,
		Byline:      article.Byline,
		Content:     content,
		TextContent: article.TextContent,
		Excerpt:     article.Excerpt,
		Length:      length,
		SiteName:    article.SiteName,
		Image:       article.Image,
		Favicon:     article.Favicon,
	}, nil
}
