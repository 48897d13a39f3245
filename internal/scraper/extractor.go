package scraper

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/wishwell/wishwell/internal/models"
)

// extractProduct dispatches to a site-specific extractor by hostname
// substring, checked in fixed priority. Unknown hosts fall through to the
// Open Graph based generic extractor.
func extractProduct(doc *goquery.Document, pageURL string) models.ProductInfo {
	host := hostnameOf(pageURL)

	switch {
	case strings.Contains(host, "amazon."):
		return extractAmazon(doc)
	case strings.Contains(host, "ebay."):
		return extractEbay(doc)
	case strings.Contains(host, "idealo."):
		return extractIdealo(doc)
	default:
		return extractGeneric(doc, pageURL)
	}
}

func hostnameOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}

// firstText returns the trimmed text of the first selector yielding a
// non-empty result. The selector order encodes known layout quirks per
// site and must not be reordered.
func firstText(doc *goquery.Document, selectors []string) string {
	for _, selector := range selectors {
		if text := strings.TrimSpace(doc.Find(selector).First().Text()); text != "" {
			return text
		}
	}
	return ""
}

// firstAttr returns the trimmed attribute value of the first selector
// yielding a non-empty result.
func firstAttr(doc *goquery.Document, selectors []string, attr string) string {
	for _, selector := range selectors {
		if val := strings.TrimSpace(doc.Find(selector).First().AttrOr(attr, "")); val != "" {
			return val
		}
	}
	return ""
}

// metaContent reads the content attribute of a named Open Graph style
// meta property.
func metaContent(doc *goquery.Document, property string) string {
	selector := `meta[property="` + property + `"]`
	return strings.TrimSpace(doc.Find(selector).First().AttrOr("content", ""))
}

// resolveURL turns a possibly relative href into an absolute URL against
// the page it was scraped from. Protocol-relative URLs are pinned to
// https.
func resolveURL(pageURL, href string) string {
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "//") {
		return "https:" + href
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
