package extract

import (
	"strings"

	"article-extract-worker/internal/models"

	"github.com/microcosm-cc/bluemonday"
)

// SanitizePolicy builds the bluemonday policy for one request. The baseline
// is the UGC policy: scripts, inline event handlers, and javascript: URLs
// are removed while headings, paragraphs, lists, tables, and images
// survive. Request options widen it:
//   - class attributes are allowed only when the request asked to keep
//     classes (the engines have already stripped non-preserved ones);
//   - iframes are allowed only when allowedVideoRegex is set, and then only
//     with a src matching the pattern.
func SanitizePolicy(opts Options) *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()

	if opts.KeepClasses || len(opts.ClassesToPreserve) > 0 {
		policy.AllowAttrs("class").Globally()
	}

	if opts.AllowedVideoRegex != nil {
		policy.AllowAttrs("src").Matching(opts.AllowedVideoRegex).OnElements("iframe")
		policy.AllowAttrs("width", "height", "allowfullscreen", "frameborder").OnElements("iframe")
	}

	return policy
}

// SanitizeArticle cleans an article's content in place. Every article passes
// through here before leaving the coordinator; there is no path that returns
// engine output unsanitized. The transformation is idempotent.
func SanitizeArticle(article *models.Article, opts Options) {
	policy := SanitizePolicy(opts)
	article.Content = strings.TrimSpace(policy.Sanitize(article.Content))
}
