package extract

import (
	"fmt"
	"strings"
)

// CleanWhitespace removes excessive whitespace from text content
func CleanWhitespace(text string) string {
	if text == "" {
		return ""
	}

	cleaned := text
	for strings.Contains(cleaned, TripleNewline) {
		cleaned = strings.ReplaceAll(cleaned, TripleNewline, DoubleNewline)
	}
	for strings.Contains(cleaned, DoubleSpace) {
		cleaned = strings.ReplaceAll(cleaned, DoubleSpace, SingleSpace)
	}
	return strings.TrimSpace(cleaned)
}

// ContainsAny checks if a string contains any of the substrings (case-insensitive)
func ContainsAny(s string, substrings []string) bool {
	sLower := strings.ToLower(s)
	for _, substr := range substrings {
		if strings.Contains(sLower, strings.ToLower(substr)) {
			return true
		}
	}
	return false
}

func belowThresholdReason(got, threshold int) string {
	return fmt.Sprintf("content below threshold (%d < %d chars)", got, threshold)
}
