package extract

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"article-extract-worker/internal/models"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
)

// HeuristicEngine is the first fallback. It locates the main content
// container through a selector chain (article, main, common content class
// names), ranks candidates with the quality scorer, and serializes the best
// container as the article body. Lower fidelity than the readability engine
// but much lighter, and it copes with pages whose structure defeats
// candidate scoring.
type HeuristicEngine struct {
	logger zerolog.Logger
}

func NewHeuristicEngine(logger zerolog.Logger) *HeuristicEngine {
	return &HeuristicEngine{logger: logger}
}

func (e *HeuristicEngine) Name() string {
	return EngineHeuristic
}

func (e *HeuristicEngine) Available() bool {
	return true
}

func (e *HeuristicEngine) Extract(ctx context.Context, doc *Document, opts Options) (*models.Article, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if opts.MaxElemsToParse > 0 {
		if n := doc.CountElements(); n > opts.MaxElemsToParse {
			return nil, &models.ExtractionError{
				Engine: e.Name(),
				Reason: fmt.Sprintf("document exceeds element budget (%d > %d)", n, opts.MaxElemsToParse),
			}
		}
	}

	gdoc := goquery.NewDocumentFromNode(doc.CloneRoot())

	container := e.findBestContainer(gdoc, opts.NbTopCandidates)
	if container == nil {
		container = gdoc.Find("body")
	}

	// Drop boilerplate before serializing the container
	container.Find(NonContentTags).Remove()
	stripClasses(container, opts)

	text := CleanWhitespace(container.Text())
	if text == "" {
		return nil, &models.ExtractionError{Engine: e.Name(), Reason: "no extractable content"}
	}
	if len(text) < opts.CharThreshold {
		return nil, &models.ExtractionError{
			Engine: e.Name(),
			Reason: belowThresholdReason(len(text), opts.CharThreshold),
		}
	}

	content, err := goquery.OuterHtml(container)
	if err != nil {
		return nil, &models.ExtractionError{Engine: e.Name(), Reason: fmt.Sprintf("serializing content: %v", err)}
	}
	if opts.Serializer != nil && len(container.Nodes) > 0 {
		content = opts.Serializer(container.Nodes[0])
	}

	image, favicon := LeadImage(gdoc, doc.BaseURL)

	article := &models.Article{
		Title:       e.extractTitle(gdoc),
		Byline:      e.extractByline(gdoc),
		Content:     content,
		TextContent: text,
		Excerpt:     e.extractExcerpt(gdoc),
		Length:      len(text),
		SiteName:    e.extractSiteName(gdoc, doc),
		Image:       image,
		Favicon:     favicon,
	}

	e.logger.Debug().Str("engine", e.Name()).Int("length", article.Length).Msg("extraction succeeded")
	return article, nil
}

// findBestContainer ranks every container matched by the content selector
// chain and returns the highest scoring one. nbTopCandidates bounds how many
// matches are scored.
func (e *HeuristicEngine) findBestContainer(doc *goquery.Document, nbTopCandidates int) *goquery.Selection {
	type candidate struct {
		sel     *goquery.Selection
		quality ContentQuality
	}

	var candidates []candidate
	for _, selector := range strings.Split(ContentSelectors, ", ") {
		doc.Find(selector).EachWithBreak(func(i int, s *goquery.Selection) bool {
			candidates = append(candidates, candidate{sel: s, quality: ScoreCandidate(s)})
			return len(candidates) < nbTopCandidates
		})
		if len(candidates) >= nbTopCandidates {
			break
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].quality.Score != candidates[j].quality.Score {
			return candidates[i].quality.Score > candidates[j].quality.Score
		}
		return candidates[i].quality.TextLength > candidates[j].quality.TextLength
	})
	return candidates[0].sel
}

// extractTitle extracts the page title with fallback strategies
func (e *HeuristicEngine) extractTitle(doc *goquery.Document) string {
	if title := FindMetaTag(doc, OGTitle, ""); title != "" {
		return title
	}
	if title := FindMetaTag(doc, "", TwitterTitle); title != "" {
		return title
	}
	if title := strings.TrimSpace(doc.Find("h1").First().Text()); title != "" {
		return title
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}

// extractByline extracts author information with fallback strategies
func (e *HeuristicEngine) extractByline(doc *goquery.Document) string {
	if author := FindMetaTag(doc, "", MetaAuthor); author != "" {
		return author
	}
	byline := strings.TrimSpace(doc.Find("[rel='author'], .byline, .author").First().Text())
	if len(byline) > 120 {
		// A paragraph-sized "byline" is almost certainly a misidentified block
		return ""
	}
	return byline
}

// extractExcerpt extracts a short description with fallback strategies
func (e *HeuristicEngine) extractExcerpt(doc *goquery.Document) string {
	if desc := FindMetaTag(doc, OGDescription, ""); desc != "" {
		return desc
	}
	if desc := FindMetaTag(doc, "", TwitterDesc); desc != "" {
		return desc
	}
	if desc := FindMetaTag(doc, "", MetaDesc); desc != "" {
		return desc
	}

	excerpt := strings.TrimSpace(doc.Find("p").First().Text())
	if len(excerpt) > MinExcerptLen && len(excerpt) < MaxExcerptLen {
		return excerpt
	}
	return ""
}

// extractSiteName extracts the site name, falling back to the host
func (e *HeuristicEngine) extractSiteName(doc *goquery.Document, d *Document) string {
	if name := FindMetaTag(doc, OGSiteName, ""); name != "" {
		return name
	}
	if d.BaseURL != nil {
		return d.BaseURL.Hostname()
	}
	return ""
}

// stripClasses removes class attributes the request does not ask to keep.
// With keepClasses set every class survives; otherwise only the classes in
// classesToPreserve do.
func stripClasses(container *goquery.Selection, opts Options) {
	if opts.KeepClasses {
		return
	}

	preserve := make(map[string]bool, len(opts.ClassesToPreserve))
	for _, c := range opts.ClassesToPreserve {
		preserve[c] = true
	}

	container.Find("[class]").AddSelection(container.Filter("[class]")).Each(func(i int, s *goquery.Selection) {
		class, _ := s.Attr("class")
		var kept []string
		for _, c := range strings.Fields(class) {
			if preserve[c] {
				kept = append(kept, c)
			}
		}
		if len(kept) == 0 {
			s.RemoveAttr("class")
			return
		}
		s.SetAttr("class", strings.Join(kept, " "))
	})
}
