// Package extract constants shared across the extraction engines.
package extract

// Content extraction selectors
const (
	ContentSelectors = "article, main, [role='main'], .content, .post-content, .entry-content, .article-content, .story-content"
	NonContentTags   = "script, style, noscript, nav, header, footer, aside, form, iframe"
)

// Meta tag properties
const (
	OGTitle       = "og:title"
	OGDescription = "og:description"
	OGSiteName    = "og:site_name"
	OGImage       = "og:image"
	OGImageSecure = "og:image:secure_url"
	OGImageWidth  = "og:image:width"
	OGImageHeight = "og:image:height"
	TwitterTitle  = "twitter:title"
	TwitterDesc   = "twitter:description"
	MetaDesc      = "description"
	MetaAuthor    = "author"
)

// Text processing constants
const (
	DoubleNewline = "\n\n"
	TripleNewline = "\n\n\n"
	DoubleSpace   = "  "
	SingleSpace   = " "
)

// Excerpt bounds for the heuristic first-paragraph fallback
const (
	MinExcerptLen = 50
	MaxExcerptLen = 300
)
