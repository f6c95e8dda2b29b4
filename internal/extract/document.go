package extract

import (
	"net/url"
	"strings"

	"article-extract-worker/internal/models"

	"github.com/go-shiori/dom"
	"github.com/rs/zerolog"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

// Document is a parsed page anchored at its base URL. It is built once per
// request and shared read-only between engines; engines that need to mutate
// the tree work on a clone.
type Document struct {
	Root    *html.Node
	BaseURL *url.URL
	RawHTML string
}

// BuildConfig controls document construction diagnostics. It is passed
// explicitly per call so individual builds stay independently configurable.
type BuildConfig struct {
	// SuppressWarnings drops per-document markup diagnostics, which would
	// otherwise flood stderr during batch processing
	SuppressWarnings bool

	Logger zerolog.Logger
}

// BuildDocument parses raw HTML into a navigable document anchored at
// baseURL. Parsing is lenient: malformed markup yields a best-effort tree,
// and only catastrophic input (an undecodable byte stream, an unparsable
// base URL) produces a BuildError. The parser performs no network I/O;
// external resources are never fetched and scripts are inert parse data.
func BuildDocument(rawHTML, baseURL string, cfg BuildConfig) (*Document, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, &models.BuildError{URL: baseURL, Err: err}
	}

	// Decode legacy charsets to UTF-8 before parsing. The content-type
	// hint is empty; detection runs off <meta> tags and byte sniffing.
	reader, err := charset.NewReader(strings.NewReader(rawHTML), "")
	if err != nil {
		return nil, &models.BuildError{URL: baseURL, Err: err}
	}

	root, err := dom.Parse(reader)
	if err != nil {
		return nil, &models.BuildError{URL: baseURL, Err: err}
	}

	doc := &Document{Root: root, BaseURL: base, RawHTML: rawHTML}

	if !cfg.SuppressWarnings {
		if strings.TrimSpace(textContent(doc.Body())) == "" {
			cfg.Logger.Warn().Str("url", baseURL).Msg("document parsed with no textual content")
		}
	}
	cfg.Logger.Debug().Str("url", baseURL).Int("bytes", len(rawHTML)).Msg("document built")

	return doc, nil
}

// Body returns the document's body element, or the root when the parser
// produced none
func (d *Document) Body() *html.Node {
	if bodies := dom.GetElementsByTagName(d.Root, "body"); len(bodies) > 0 {
		return bodies[0]
	}
	return d.Root
}

// CloneRoot returns a deep copy of the parse tree for engines that mutate
// the DOM during analysis
func (d *Document) CloneRoot() *html.Node {
	return dom.Clone(d.Root, true)
}

// CountElements reports the number of element nodes in the tree, used to
// enforce the maxElemsToParse budget
func (d *Document) CountElements() int {
	count := 0
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			count++
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(d.Root)
	return count
}

func textContent(n *html.Node) string {
	if n == nil {
		return ""
	}
	return dom.TextContent(n)
}
