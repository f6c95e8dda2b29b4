package extract

import (
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ImageCandidate represents a potential lead image with scoring data
type ImageCandidate struct {
	URL       string
	Width     int
	Height    int
	InArticle bool
	Score     float64
	Area      int
}

// Image filtering thresholds. Candidates are judged purely from markup
// (attributes and meta tags); nothing is ever fetched.
const (
	minImageShortSide = 200
	minImageArea      = 40000
	minImageAspect    = 0.4
	maxImageAspect    = 3.0
)

var (
	badImageHintRe = regexp.MustCompile(`(?i)(sprite|icon|favicon|logo|avatar|emoji|placeholder|pixel|tracker|ads?|adserver|promo|beacon)`)
	imageExtRe     = regexp.MustCompile(`\.(jpe?g|png|gif|webp|avif)(?:$|[?#])`)
)

// adImageSizes are standard display-ad dimensions, rejected outright
var adImageSizes = map[string]bool{
	"728x90": true, "970x90": true, "970x250": true, "468x60": true,
	"320x50": true, "300x50": true, "300x250": true, "336x280": true,
	"300x600": true, "160x600": true, "120x600": true, "250x250": true,
	"200x200": true, "180x150": true, "234x60": true, "120x240": true,
	"88x31": true,
}

// LeadImage picks the best lead image and the favicon for a page. og:image
// wins when present and plausible; otherwise <img> tags are scored by the
// declared dimensions, with ad sizes and sprite/icon hints filtered out.
// Sizing comes from markup attributes only, so pages that declare nothing
// yield no image.
func LeadImage(doc *goquery.Document, base *url.URL) (image, favicon string) {
	candidates := collectImageCandidates(doc, base)

	filtered := candidates[:0]
	for _, c := range candidates {
		if keepImageCandidate(c) {
			filtered = append(filtered, c)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		if filtered[i].Score != filtered[j].Score {
			return filtered[i].Score > filtered[j].Score
		}
		return filtered[i].Area > filtered[j].Area
	})

	if len(filtered) > 0 {
		image = filtered[0].URL
	}
	return image, findFavicon(doc, base)
}

func collectImageCandidates(doc *goquery.Document, base *url.URL) []ImageCandidate {
	var candidates []ImageCandidate

	if og := ogImageCandidate(doc, base); og != nil {
		candidates = append(candidates, *og)
	}

	doc.Find("img").Each(func(i int, s *goquery.Selection) {
		src, ok := s.Attr("src")
		if !ok || src == "" {
			if src, ok = s.Attr("data-src"); !ok || src == "" {
				return
			}
		}
		abs := toAbsoluteURL(src, base)
		if abs == "" {
			return
		}

		width := attrInt(s, "width")
		height := attrInt(s, "height")
		inArticle := s.ParentsFiltered("article, main").Length() > 0

		candidates = append(candidates, ImageCandidate{
			URL:       abs,
			Width:     width,
			Height:    height,
			InArticle: inArticle,
			Area:      width * height,
			Score:     scoreImage(width, height, inArticle, false),
		})
	})

	return candidates
}

// ogImageCandidate extracts Open Graph image metadata
func ogImageCandidate(doc *goquery.Document, base *url.URL) *ImageCandidate {
	src := FindMetaTag(doc, OGImage, "")
	if src == "" {
		src = FindMetaTag(doc, OGImageSecure, "")
	}
	if src == "" {
		return nil
	}

	abs := toAbsoluteURL(src, base)
	if abs == "" {
		return nil
	}

	width, _ := strconv.Atoi(FindMetaTag(doc, OGImageWidth, ""))
	height, _ := strconv.Atoi(FindMetaTag(doc, OGImageHeight, ""))

	return &ImageCandidate{
		URL:    abs,
		Width:  width,
		Height: height,
		Area:   width * height,
		Score:  scoreImage(width, height, true, true),
	}
}

func scoreImage(width, height int, inArticle, isOg bool) float64 {
	score := float64(width*height) / 10000.0
	if inArticle {
		score += 20
	}
	if isOg {
		// og:image is the author's declared lead image
		score += 50
	}
	return score
}

func keepImageCandidate(c ImageCandidate) bool {
	if badImageHintRe.MatchString(c.URL) {
		return false
	}
	if c.Width > 0 && c.Height > 0 {
		if adImageSizes[strconv.Itoa(c.Width)+"x"+strconv.Itoa(c.Height)] {
			return false
		}
		short := c.Width
		if c.Height < short {
			short = c.Height
		}
		if short < minImageShortSide || c.Area < minImageArea {
			return false
		}
		aspect := float64(c.Width) / float64(c.Height)
		if aspect < minImageAspect || aspect > maxImageAspect {
			return false
		}
		return true
	}
	// No declared dimensions: keep only if the URL at least looks like a
	// real image file
	return imageExtRe.MatchString(strings.ToLower(c.URL))
}

// findFavicon resolves the page favicon from link tags, defaulting to the
// conventional /favicon.ico location
func findFavicon(doc *goquery.Document, base *url.URL) string {
	var href string
	doc.Find("link").EachWithBreak(func(i int, s *goquery.Selection) bool {
		rel, _ := s.Attr("rel")
		for _, token := range strings.Fields(strings.ToLower(rel)) {
			if token == "icon" || token == "shortcut" {
				if h, ok := s.Attr("href"); ok && h != "" {
					href = h
					return false
				}
			}
		}
		return true
	})

	if href != "" {
		return toAbsoluteURL(href, base)
	}
	if base != nil && base.Host != "" {
		return base.Scheme + "://" + base.Host + "/favicon.ico"
	}
	return ""
}

func attrInt(s *goquery.Selection, name string) int {
	v, ok := s.Attr(name)
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// toAbsoluteURL resolves a possibly relative reference against the page URL
func toAbsoluteURL(ref string, base *url.URL) string {
	u, err := url.Parse(strings.TrimSpace(ref))
	if err != nil {
		return ""
	}
	if base != nil {
		u = base.ResolveReference(u)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	return u.String()
}
