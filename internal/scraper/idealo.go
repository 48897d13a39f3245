package scraper

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/wishwell/wishwell/internal/models"
)

var (
	idealoTitleSelectors = []string{
		".oopStage-title",
		`[data-testid="product-title"]`,
	}
	idealoImageSelectors = []string{
		".oopStage-galleryCollageImage img",
		`[data-testid="gallery-image"] img`,
	}
	idealoPriceSelectors = []string{
		".oopStage-conditionButton-wrapper-text strong",
		`[data-testid="detailOffersPriceRange"]`,
	}
)

// extractIdealo tries Idealo's product-page structure first. The page is
// heavily JS-rendered, so when the primary selectors come back empty the
// extractor falls back to Open Graph and product meta tags, which Idealo
// ships in the static markup.
func extractIdealo(doc *goquery.Document) models.ProductInfo {
	info := models.ProductInfo{
		Title:    firstText(doc, idealoTitleSelectors),
		ImageURL: firstAttr(doc, idealoImageSelectors, "src"),
	}

	if raw := firstText(doc, idealoPriceSelectors); raw != "" {
		info.Price, info.Currency = ParsePrice(raw)
	}

	if info.Title == "" {
		info.Title = metaContent(doc, "og:title")
	}
	if info.ImageURL == "" {
		info.ImageURL = metaContent(doc, "og:image")
	}
	if info.Price == "" {
		if amount := metaContent(doc, "product:price:amount"); amount != "" {
			info.Price = amount
			info.Currency = DetectCurrency(metaContent(doc, "product:price:currency"))
		}
	}

	return info
}
