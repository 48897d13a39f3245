package scraper

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/wishwell/wishwell/internal/models"
)

var (
	amazonTitleSelectors = []string{
		"#productTitle",
	}
	amazonImageSelectors = []string{
		"#landingImage",
		".imgTagWrapper img",
	}
	amazonPriceSelectors = []string{
		".a-price .a-offscreen",
		"#priceblock_ourprice",
	}
)

func extractAmazon(doc *goquery.Document) models.ProductInfo {
	info := models.ProductInfo{
		Title:    firstText(doc, amazonTitleSelectors),
		ImageURL: firstAttr(doc, amazonImageSelectors, "src"),
	}

	if raw := firstText(doc, amazonPriceSelectors); raw != "" {
		info.Price, info.Currency = ParsePrice(raw)
	}

	return info
}
