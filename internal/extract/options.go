// Package extract implements the article extraction pipeline: request
// normalization, document building, the extraction engines, sanitization,
// and the fallback coordination between engines.
package extract

import (
	"fmt"
	"regexp"
	"strings"

	"article-extract-worker/internal/models"

	"golang.org/x/net/html"
)

// Options are the effective extraction options for one request, with every
// field resolved to a concrete value
type Options struct {
	Debug             bool
	MaxElemsToParse   int
	NbTopCandidates   int
	CharThreshold     int
	ClassesToPreserve []string
	KeepClasses       bool
	DisableJSONLD     bool

	// AllowedVideoRegex is nil when the engine default applies
	AllowedVideoRegex *regexp.Regexp

	// Serializer overrides the engine's content serialization when set.
	// It is a process-level hook, never populated from the wire.
	Serializer func(node *html.Node) string
}

// DefaultOptions returns the all-defaults option set
func DefaultOptions() Options {
	return Options{
		NbTopCandidates: 5,
		CharThreshold:   500,
	}
}

// NormalizeRequest validates a request and resolves its options over the
// given process defaults. Each option resolves independently: an explicit
// value wins, including explicit zero and false, otherwise the default
// applies. Explicit values outside an option's documented domain are a
// ValidationError. The function is pure apart from regex compilation.
func NormalizeRequest(req *models.ExtractionRequest, defaults Options) (string, string, Options, error) {
	opts := defaults

	if strings.TrimSpace(req.HTML) == "" || strings.TrimSpace(req.URL) == "" {
		return "", "", opts, &models.ValidationError{Reason: "Missing HTML content or URL."}
	}

	if req.Debug != nil {
		opts.Debug = *req.Debug
	}
	if req.MaxElemsToParse != nil {
		if *req.MaxElemsToParse < 0 {
			return "", "", opts, &models.ValidationError{Reason: fmt.Sprintf("maxElemsToParse must be >= 0, got %d", *req.MaxElemsToParse)}
		}
		opts.MaxElemsToParse = *req.MaxElemsToParse
	}
	if req.NbTopCandidates != nil {
		if *req.NbTopCandidates < 1 {
			return "", "", opts, &models.ValidationError{Reason: fmt.Sprintf("nbTopCandidates must be >= 1, got %d", *req.NbTopCandidates)}
		}
		opts.NbTopCandidates = *req.NbTopCandidates
	}
	if req.CharThreshold != nil {
		if *req.CharThreshold < 0 {
			return "", "", opts, &models.ValidationError{Reason: fmt.Sprintf("charThreshold must be >= 0, got %d", *req.CharThreshold)}
		}
		opts.CharThreshold = *req.CharThreshold
	}
	if len(req.ClassesToPreserve) > 0 {
		opts.ClassesToPreserve = append([]string(nil), req.ClassesToPreserve...)
	}
	if req.KeepClasses != nil {
		opts.KeepClasses = *req.KeepClasses
	}
	if req.DisableJSONLD != nil {
		opts.DisableJSONLD = *req.DisableJSONLD
	}
	if req.AllowedVideoRegex != nil {
		re, err := regexp.Compile(*req.AllowedVideoRegex)
		if err != nil {
			return "", "", opts, &models.ValidationError{Reason: fmt.Sprintf("allowedVideoRegex does not compile: %v", err)}
		}
		opts.AllowedVideoRegex = re
	}

	return req.HTML, req.URL, opts, nil
}
