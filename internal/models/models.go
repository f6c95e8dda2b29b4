// Package models defines the wire types exchanged over the worker's
// line-delimited JSON protocol.
package models

import "encoding/json"

// ExtractionRequest represents one incoming request line. Extraction option
// fields are flattened at the top level of the JSON object. Option fields are
// pointers so that an absent field and an explicit zero value can be told
// apart: explicit values always win over process defaults.
type ExtractionRequest struct {
	HTML string `json:"html"`
	URL  string `json:"url"`

	Debug             *bool    `json:"debug,omitempty"`
	MaxElemsToParse   *int     `json:"maxElemsToParse,omitempty"`
	NbTopCandidates   *int     `json:"nbTopCandidates,omitempty"`
	CharThreshold     *int     `json:"charThreshold,omitempty"`
	ClassesToPreserve []string `json:"classesToPreserve,omitempty"`
	KeepClasses       *bool    `json:"keepClasses,omitempty"`
	DisableJSONLD     *bool    `json:"disableJSONLD,omitempty"`
	AllowedVideoRegex *string  `json:"allowedVideoRegex,omitempty"`

	// Serializer cannot travel as JSON; the field is accepted so callers
	// sending the legacy null value do not trip decoding. A custom
	// serializer is configured process-wide instead.
	Serializer json.RawMessage `json:"serializer,omitempty"`
}

// Article represents one successful response line
type Article struct {
	Title       string `json:"title"`
	Byline      string `json:"byline"`
	Content     string `json:"content"`
	TextContent string `json:"textContent,omitempty"`
	Excerpt     string `json:"excerpt"`
	Length      int    `json:"length"`
	SiteName    string `json:"siteName"`
	Image       string `json:"image,omitempty"`
	Favicon     string `json:"favicon,omitempty"`

	// Mode names the engine that produced this result
	Mode string `json:"mode"`
}

// ErrorResult represents one failed response line
type ErrorResult struct {
	Error string `json:"error"`
}
