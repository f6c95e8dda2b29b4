package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ContentQuality represents quality metrics for a candidate content container
type ContentQuality struct {
	Score              int     // 0-100 confidence score
	ParagraphCount     int     // number of paragraphs
	AvgParagraphLength int     // average characters per paragraph
	HasHeaders         bool    // contains headings
	LinkDensity        float64 // linked characters / total characters
	WordCount          int     // estimated word count
	TextLength         int     // total trimmed text length
}

// ScoreCandidate analyzes a candidate container and returns quality metrics.
// Used by the heuristic engine to rank content containers when several
// selectors match.
func ScoreCandidate(s *goquery.Selection) ContentQuality {
	text := strings.TrimSpace(s.Text())
	if text == "" {
		return ContentQuality{}
	}

	paragraphCount := 0
	totalParagraphChars := 0
	s.Find("p").Each(func(i int, p *goquery.Selection) {
		t := strings.TrimSpace(p.Text())
		if t != "" {
			paragraphCount++
			totalParagraphChars += len(t)
		}
	})

	avgParagraphLength := 0
	if paragraphCount > 0 {
		avgParagraphLength = totalParagraphChars / paragraphCount
	}

	hasHeaders := s.Find("h1, h2, h3, h4, h5, h6").Length() > 0

	linkedChars := 0
	s.Find("a").Each(func(i int, a *goquery.Selection) {
		linkedChars += len(strings.TrimSpace(a.Text()))
	})
	linkDensity := 0.0
	if len(text) > 0 {
		linkDensity = float64(linkedChars) / float64(len(text))
	}

	wordCount := len(strings.Fields(text))

	return ContentQuality{
		Score:              calculateOverallScore(wordCount, paragraphCount, avgParagraphLength, hasHeaders, linkDensity),
		ParagraphCount:     paragraphCount,
		AvgParagraphLength: avgParagraphLength,
		HasHeaders:         hasHeaders,
		LinkDensity:        linkDensity,
		WordCount:          wordCount,
		TextLength:         len(text),
	}
}

// calculateOverallScore computes a 0-100 quality score
func calculateOverallScore(wordCount, paragraphCount, avgParagraphLength int,
	hasHeaders bool, linkDensity float64) int {

	score := 0

	// Word count scoring (0-25 points)
	switch {
	case wordCount >= 500:
		score += 25
	case wordCount >= 200:
		score += 20
	case wordCount >= 100:
		score += 15
	case wordCount >= 50:
		score += 10
	}

	// Paragraph count scoring (0-20 points)
	switch {
	case paragraphCount >= 5:
		score += 20
	case paragraphCount >= 3:
		score += 15
	case paragraphCount >= 2:
		score += 10
	case paragraphCount >= 1:
		score += 5
	}

	// Average paragraph length scoring (0-20 points)
	switch {
	case avgParagraphLength >= 200:
		score += 20
	case avgParagraphLength >= 100:
		score += 15
	case avgParagraphLength >= 50:
		score += 10
	case avgParagraphLength >= 20:
		score += 5
	}

	// Structure scoring (0-15 points)
	if hasHeaders {
		score += 15
	}

	// Link density scoring: navigation blocks are mostly links (0-20 points,
	// heavy link density deducts)
	switch {
	case linkDensity <= 0.1:
		score += 20
	case linkDensity <= 0.25:
		score += 10
	case linkDensity > 0.5:
		score -= 20
	}

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return score
}
