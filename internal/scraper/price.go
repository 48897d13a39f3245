package scraper

import (
	"regexp"
	"strings"

	"github.com/wishwell/wishwell/internal/models"
)

var (
	priceSymbolPattern = regexp.MustCompile(`[€£$]|[A-Za-z]`)
	priceDigitsPattern = regexp.MustCompile(`\d[\d.,]*`)
)

// ParsePrice pulls a display price and currency out of free-form price text
// scraped from a product page. Currency symbols and letters are stripped;
// the locale formatting of the number itself ("29,99" vs "1,234.99") is
// passed through verbatim for downstream display to interpret.
func ParsePrice(text string) (string, models.Currency) {
	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return "", ""
	}

	currency := detectCurrencySymbol(text)

	price := strings.TrimSpace(priceSymbolPattern.ReplaceAllString(text, ""))
	return price, currency
}

// parseWishlistPrice matches the first contiguous run of digits, dots and
// commas instead of stripping symbols. Tuned against Amazon wishlist markup
// and deliberately kept separate from ParsePrice.
func parseWishlistPrice(text string) (string, models.Currency) {
	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return "", ""
	}

	currency := detectCurrencySymbol(text)

	return priceDigitsPattern.FindString(text), currency
}

// detectCurrencySymbol checks for a currency symbol or ISO code, first
// match wins: EUR before GBP before USD. No match leaves the currency
// unset rather than guessed.
func detectCurrencySymbol(text string) models.Currency {
	upper := strings.ToUpper(text)
	switch {
	case strings.Contains(text, "€") || strings.Contains(upper, "EUR"):
		return models.CurrencyEUR
	case strings.Contains(text, "£") || strings.Contains(upper, "GBP"):
		return models.CurrencyGBP
	case strings.Contains(text, "$") || strings.Contains(upper, "USD"):
		return models.CurrencyUSD
	default:
		return ""
	}
}

// DetectCurrency normalizes currency tokens sourced from meta tags, where
// sites write anything from "EUR" to "pound". Unknown tokens are left
// unset.
func DetectCurrency(code string) models.Currency {
	switch strings.ToUpper(strings.TrimSpace(code)) {
	case "EUR", "EURO":
		return models.CurrencyEUR
	case "GBP", "POUND":
		return models.CurrencyGBP
	case "USD", "DOLLAR":
		return models.CurrencyUSD
	default:
		return ""
	}
}
