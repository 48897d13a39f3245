package scraper

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/wishwell/wishwell/internal/models"
)

// Current eBay layout first, legacy item-page classes after.
var (
	ebayTitleSelectors = []string{
		".x-item-title__mainTitle .ux-textspans",
		"h1.x-item-title__mainTitle",
		"#itemTitle",
	}
	ebayImageSelectors = []string{
		".ux-image-carousel-item img",
		"#icImg",
	}
	ebayPriceSelectors = []string{
		".x-price-primary .ux-textspans",
		"#prcIsum",
		"#mm-saleDscPrc",
	}
)

func extractEbay(doc *goquery.Document) models.ProductInfo {
	info := models.ProductInfo{
		Title:    firstText(doc, ebayTitleSelectors),
		ImageURL: firstAttr(doc, ebayImageSelectors, "src"),
	}

	if raw := firstText(doc, ebayPriceSelectors); raw != "" {
		info.Price, info.Currency = ParsePrice(raw)
	}

	return info
}
