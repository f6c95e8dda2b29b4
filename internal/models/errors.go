// Package models defines typed errors for better error handling and context.
package models

import (
	"fmt"
	"strings"
)

// ValidationError represents a malformed or incomplete request
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("Invalid input: %s", e.Reason)
}

// BuildError represents a failure to construct a document from the request
type BuildError struct {
	URL string
	Err error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("document build failed for %s: %v", e.URL, e.Err)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

// ExtractionError represents a specific engine finding no extractable content
type ExtractionError struct {
	Engine string
	Reason string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Engine, e.Reason)
}

// EngineUnavailableError represents an engine that could not be reached at
// all, as opposed to one that ran and found nothing
type EngineUnavailableError struct {
	Engine string
}

func (e *EngineUnavailableError) Error() string {
	return fmt.Sprintf("%s: engine unavailable", e.Engine)
}

// EngineFailure records one engine's attempt inside an aggregated failure
type EngineFailure struct {
	Engine string
	Reason string
}

// AllEnginesFailedError aggregates the failure of every configured engine.
// The message names each attempted engine and its individual reason.
type AllEnginesFailedError struct {
	Attempts []EngineFailure
}

func (e *AllEnginesFailedError) Error() string {
	if len(e.Attempts) == 0 {
		return "extraction failed: no engines configured"
	}
	parts := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		parts = append(parts, fmt.Sprintf("%s: %s", a.Engine, a.Reason))
	}
	return "extraction failed: " + strings.Join(parts, "; ")
}
