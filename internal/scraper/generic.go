package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/wishwell/wishwell/internal/models"
)

// extractGeneric handles hosts without explicit selector support. Open
// Graph tags are the most reliable signal on arbitrary markup; the page
// title and first image are last resorts. Price is taken only from
// og:price meta tags, since guessing price selectors on unknown sites
// produces garbage more often than data.
func extractGeneric(doc *goquery.Document, pageURL string) models.ProductInfo {
	var info models.ProductInfo

	info.Title = metaContent(doc, "og:title")
	if info.Title == "" {
		info.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}

	info.ImageURL = metaContent(doc, "og:image")
	if info.ImageURL == "" {
		if src := strings.TrimSpace(doc.Find("img").First().AttrOr("src", "")); src != "" {
			info.ImageURL = resolveURL(pageURL, src)
		}
	}

	if amount := metaContent(doc, "og:price:amount"); amount != "" {
		info.Price = amount
		info.Currency = DetectCurrency(metaContent(doc, "og:price:currency"))
	}

	return info
}
