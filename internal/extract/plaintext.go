package extract

import (
	"context"
	"strings"

	"article-extract-worker/internal/models"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/dom"
	"github.com/rs/zerolog"
	"golang.org/x/net/html"
)

// PlaintextEngine is the last-resort fallback. It walks the parse tree
// directly, collecting headings, paragraphs, and list items while skipping
// boilerplate containers, and rebuilds a minimal HTML fragment from the
// collected text. No candidate scoring, no dependency beyond the parser,
// so it succeeds on almost anything with enough text in the body.
type PlaintextEngine struct {
	logger zerolog.Logger
}

func NewPlaintextEngine(logger zerolog.Logger) *PlaintextEngine {
	return &PlaintextEngine{logger: logger}
}

func (e *PlaintextEngine) Name() string {
	return EnginePlaintext
}

func (e *PlaintextEngine) Available() bool {
	return true
}

type textBlock struct {
	tag  string
	text string
}

func (e *PlaintextEngine) Extract(ctx context.Context, doc *Document, opts Options) (*models.Article, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	root := contentRoot(doc)
	blocks := collectBlocks(root)

	var text strings.Builder
	var content strings.Builder
	for _, b := range blocks {
		if text.Len() > 0 {
			text.WriteString(DoubleNewline)
		}
		text.WriteString(b.text)

		content.WriteString("<")
		content.WriteString(b.tag)
		content.WriteString(">")
		content.WriteString(html.EscapeString(b.text))
		content.WriteString("</")
		content.WriteString(b.tag)
		content.WriteString(">")
	}

	plain := CleanWhitespace(text.String())
	if plain == "" {
		return nil, &models.ExtractionError{Engine: e.Name(), Reason: "no extractable content"}
	}
	if len(plain) < opts.CharThreshold {
		return nil, &models.ExtractionError{
			Engine: e.Name(),
			Reason: belowThresholdReason(len(plain), opts.CharThreshold),
		}
	}

	title := documentTitle(doc)
	siteName := ""
	if doc.BaseURL != nil {
		siteName = doc.BaseURL.Hostname()
	}
	image, favicon := LeadImage(goquery.NewDocumentFromNode(doc.Root), doc.BaseURL)

	article := &models.Article{
		Title:       title,
		Content:     "<div>" + content.String() + "</div>",
		TextContent: plain,
		Excerpt:     firstSentenceExcerpt(blocks),
		Length:      len(plain),
		SiteName:    siteName,
		Image:       image,
		Favicon:     favicon,
	}

	e.logger.Debug().Str("engine", e.Name()).Int("length", article.Length).Msg("extraction succeeded")
	return article, nil
}

// contentRoot prefers <main> and <article> over <body>
func contentRoot(doc *Document) *html.Node {
	for _, tag := range []string{"main", "article"} {
		if nodes := dom.GetElementsByTagName(doc.Root, tag); len(nodes) > 0 {
			return nodes[0]
		}
	}
	return doc.Body()
}

// collectBlocks gathers text-bearing blocks in document order, skipping
// script/style/nav and cookie/consent boilerplate
func collectBlocks(root *html.Node) []textBlock {
	var blocks []textBlock

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			name := strings.ToLower(n.Data)
			switch name {
			case "script", "style", "noscript", "nav", "header", "footer", "aside", "iframe", "form":
				return
			case "h1", "h2", "h3", "h4", "h5", "h6":
				if text := collapseText(dom.TextContent(n)); text != "" {
					blocks = append(blocks, textBlock{tag: name, text: text})
				}
				return
			case "p", "li", "blockquote", "pre":
				if text := collapseText(dom.TextContent(n)); text != "" {
					blocks = append(blocks, textBlock{tag: "p", text: text})
				}
				return
			}
			if isBoilerplateContainer(n) {
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return blocks
}

// isBoilerplateContainer returns true if the element looks like a
// cookie/consent banner or similar chrome
func isBoilerplateContainer(n *html.Node) bool {
	for _, attr := range n.Attr {
		key := strings.ToLower(attr.Key)
		if key != "id" && key != "class" && key != "role" && key != "aria-label" {
			continue
		}
		if ContainsAny(attr.Val, []string{"cookie", "consent", "gdpr", "banner", "sidebar", "comment"}) {
			return true
		}
	}
	return false
}

func documentTitle(doc *Document) string {
	if titles := dom.GetElementsByTagName(doc.Root, "title"); len(titles) > 0 {
		return collapseText(dom.TextContent(titles[0]))
	}
	if h1s := dom.GetElementsByTagName(doc.Root, "h1"); len(h1s) > 0 {
		return collapseText(dom.TextContent(h1s[0]))
	}
	return ""
}

// firstSentenceExcerpt uses the first paragraph-sized block as the excerpt
func firstSentenceExcerpt(blocks []textBlock) string {
	for _, b := range blocks {
		if b.tag == "p" && len(b.text) > MinExcerptLen {
			if len(b.text) > MaxExcerptLen {
				return b.text[:MaxExcerptLen]
			}
			return b.text
		}
	}
	return ""
}

// collapseText trims and collapses internal whitespace runs to single spaces
func collapseText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
