package scraper

import (
	"encoding/json"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/wishwell/wishwell/internal/models"
	"github.com/wishwell/wishwell/internal/urlcheck"
)

// Container selectors for wishlist item nodes, tried in order; the first
// one matching at least one element wins.
var wishlistContainerSelectors = []string{
	"[data-id]",
	".g-item-sortable",
	"#g-items li[data-itemid]",
	".a-spacing-none.g-item-sortable",
}

var (
	wishlistTitleSelectors = []string{
		"h3 a",
		"h5 a",
		`[id*="itemName"] a`,
	}
	wishlistLinkSelectors = []string{
		"h3 a",
		"h5 a",
		`[id*="itemName"] a`,
		"a.a-link-normal",
	}
	wishlistPriceSelectors = []string{
		".a-price .a-offscreen",
		`[id*="itemPrice"]`,
		".a-price-whole",
		".itemPriceRow",
	}
	wishlistDescriptionSelectors = []string{
		`[id*="itemComment"]`,
		".g-comment-quote",
		".g-wishlist-comment",
		`[id*="item-comment"]`,
		".a-size-base.a-color-tertiary",
	}
	wishlistQuantitySelectors = []string{
		`[id*="itemRequested"]`,
		".g-requested-quantity",
		`[id*="itemQuantityRow"]`,
		".a-size-small.itemAvailability",
	}
	wishlistPurchasedSelectors = []string{
		`[id*="itemPurchased"]`,
		".g-purchased-quantity",
		`[id*="itemPurchasedRow"]`,
	}
)

var (
	bareDigitsPattern    = regexp.MustCompile(`^[\d.,€£$]+$`)
	quantityPattern      = regexp.MustCompile(`(?i)(?:requested|wanted|qty|quantity)[:\s]*(\d+)`)
	purchasedPattern     = regexp.MustCompile(`(?i)(?:has|purchased|owned|received)[:\s]*(\d+)`)
	imageSizeSLPattern   = regexp.MustCompile(`_SL\d+_`)
	imageSizeACULPattern = regexp.MustCompile(`_AC_UL\d+_`)
	imageSizeSRPattern   = regexp.MustCompile(`_SR\d+,\d+_`)
)

// IsAmazonWishlistURL reports whether raw points at an Amazon wishlist
// page. This is a stricter check layered on top of the general SSRF
// validation; it gates the wishlist import path only.
func IsAmazonWishlistURL(raw string) bool {
	if !urlcheck.IsSafe(raw) {
		return false
	}

	u, err := url.Parse(raw)
	if err != nil {
		return false
	}

	host := strings.ToLower(u.Hostname())
	if !strings.Contains(host, "amazon.") {
		return false
	}

	path := strings.ToLower(u.Path)
	return strings.Contains(path, "/wishlist/") || strings.Contains(path, "/hz/wishlist/")
}

// extractWishlistItems walks the item nodes of a parsed wishlist page.
// Nodes without a resolvable title are dropped silently; per-field misses
// leave the field at its default. An empty result is a valid outcome
// meaning the page loaded but no recognizable items were found.
func extractWishlistItems(doc *goquery.Document, pageURL string) []models.WishlistItem {
	var nodes *goquery.Selection
	for _, selector := range wishlistContainerSelectors {
		if found := doc.Find(selector); found.Length() > 0 {
			nodes = found
			break
		}
	}

	items := []models.WishlistItem{}
	if nodes == nil {
		return items
	}

	nodes.Each(func(_ int, node *goquery.Selection) {
		if item, ok := extractWishlistItem(node, pageURL); ok {
			items = append(items, item)
		}
	})

	return items
}

func extractWishlistItem(node *goquery.Selection, pageURL string) (models.WishlistItem, bool) {
	title := extractItemTitle(node)
	if title == "" {
		return models.WishlistItem{}, false
	}

	item := models.WishlistItem{
		Title:       title,
		URL:         extractItemURL(node, pageURL),
		ImageURL:    extractItemImage(node, pageURL),
		Description: extractItemDescription(node),
		Quantity:    1,
	}

	if raw := nodeFirstText(node, wishlistPriceSelectors); raw != "" {
		item.Price, item.Currency = parseWishlistPrice(raw)
	}

	item.Priority, item.Importance = extractItemPriority(node)

	if qty, ok := extractItemCount(node, wishlistQuantitySelectors, quantityPattern, "data-quantity"); ok && qty >= 1 {
		item.Quantity = qty
	}
	if purchased, ok := extractItemCount(node, wishlistPurchasedSelectors, purchasedPattern, ""); ok && purchased >= 0 {
		item.PurchasedQuantity = purchased
	}

	return item, true
}

func extractItemTitle(node *goquery.Selection) string {
	if title := nodeFirstText(node, wishlistTitleSelectors); title != "" {
		return title
	}
	// Some layouts only carry the name in a link's title attribute.
	return strings.TrimSpace(node.Find("a[title]").First().AttrOr("title", ""))
}

func extractItemURL(node *goquery.Selection, pageURL string) string {
	for _, selector := range wishlistLinkSelectors {
		if href := strings.TrimSpace(node.Find(selector).First().AttrOr("href", "")); href != "" {
			return resolveURL(pageURL, href)
		}
	}
	return ""
}

// extractItemDescription filters scraped noise out of comment candidates:
// anything short, price-shaped or containing cart boilerplate is not a
// real owner comment.
func extractItemDescription(node *goquery.Selection) string {
	candidates := make([]string, 0, len(wishlistDescriptionSelectors)+1)
	for _, selector := range wishlistDescriptionSelectors {
		candidates = append(candidates, strings.TrimSpace(node.Find(selector).First().Text()))
	}
	candidates = append(candidates, strings.TrimSpace(node.AttrOr("data-comment", "")))

	for _, text := range candidates {
		if text == "" || len(text) <= 3 {
			continue
		}
		if bareDigitsPattern.MatchString(text) {
			continue
		}
		if strings.Contains(strings.ToLower(text), "add to cart") {
			continue
		}
		return text
	}
	return ""
}

func extractItemImage(node *goquery.Selection, pageURL string) string {
	img := node.Find("img").First()

	var src string
	for _, attr := range []string{"src", "data-src", "data-a-dynamic-image", "data-old-hires"} {
		val := strings.TrimSpace(img.AttrOr(attr, ""))
		// data-a-dynamic-image usually holds a JSON map, not a plain URL;
		// those values fall through to the JSON decode below.
		if val == "" || strings.HasPrefix(val, "{") {
			continue
		}
		src = val
		break
	}

	// Amazon hides the full-size URLs in a JSON map keyed by URL. A parse
	// failure falls through to "no image", never aborts the item.
	if src == "" {
		if raw := img.AttrOr("data-a-dynamic-image", ""); raw != "" {
			var urls map[string]json.RawMessage
			if err := json.Unmarshal([]byte(raw), &urls); err == nil && len(urls) > 0 {
				keys := make([]string, 0, len(urls))
				for k := range urls {
					keys = append(keys, k)
				}
				sort.Strings(keys)
				src = keys[0]
			}
		}
	}

	if src == "" {
		return ""
	}

	return normalizeImageURL(src, pageURL)
}

// normalizeImageURL upgrades thumbnail URLs to a higher resolution variant
// and makes protocol-relative or root-relative URLs absolute.
func normalizeImageURL(src, pageURL string) string {
	src = imageSizeSLPattern.ReplaceAllString(src, "_SL500_")
	src = imageSizeACULPattern.ReplaceAllString(src, "_AC_UL500_")
	src = imageSizeSRPattern.ReplaceAllString(src, "_SR500,500_")

	switch {
	case strings.HasPrefix(src, "//"):
		return "https:" + src
	case strings.HasPrefix(src, "/"):
		if u, err := url.Parse(pageURL); err == nil && u.Host != "" {
			return "https://" + u.Host + src
		}
		return src
	default:
		return src
	}
}

// extractItemPriority maps Amazon's inverted 1 (highest) to 5 (lowest)
// priority scale onto the app's 0-4 scale. A free-text hint from the
// reposition params runs after the attribute mapping and overrides it.
func extractItemPriority(node *goquery.Selection) (int, models.Importance) {
	priority := 0
	importance := models.ImportanceNiceToHave

	raw := node.AttrOr("data-priority", "")
	if raw == "" {
		raw = node.Find("[data-priority]").First().AttrOr("data-priority", "")
	}
	if amazonPriority, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil && amazonPriority >= 1 && amazonPriority <= 5 {
		priority = 5 - amazonPriority
		switch amazonPriority {
		case 1:
			importance = models.ImportanceMustHave
		case 2:
			importance = models.ImportanceWouldLove
		case 3, 4:
			importance = models.ImportanceNiceToHave
		case 5:
			importance = models.ImportanceNotSure
		}
	}

	params := node.AttrOr("data-reposition-action-params", "")
	if params == "" {
		params = node.Find("[data-reposition-action-params]").First().AttrOr("data-reposition-action-params", "")
	}
	hint := strings.ToLower(params)
	switch {
	case strings.Contains(hint, "highest") || strings.Contains(hint, "most wanted"):
		priority = 4
		importance = models.ImportanceMustHave
	case strings.Contains(hint, "high") || strings.Contains(hint, "really want"):
		priority = 3
		importance = models.ImportanceWouldLove
	}

	return priority, importance
}

// extractItemCount scans the candidate selectors for text matching the
// given pattern and optionally falls back to a data attribute on the node.
func extractItemCount(node *goquery.Selection, selectors []string, pattern *regexp.Regexp, dataAttr string) (int, bool) {
	for _, selector := range selectors {
		text := node.Find(selector).First().Text()
		if text == "" {
			continue
		}
		if m := pattern.FindStringSubmatch(text); len(m) > 1 {
			if n, err := strconv.Atoi(m[1]); err == nil {
				return n, true
			}
		}
	}

	if dataAttr != "" {
		if raw := strings.TrimSpace(node.AttrOr(dataAttr, "")); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil {
				return n, true
			}
		}
	}

	return 0, false
}

// nodeFirstText is firstText scoped to a single item node.
func nodeFirstText(node *goquery.Selection, selectors []string) string {
	for _, selector := range selectors {
		if text := strings.TrimSpace(node.Find(selector).First().Text()); text != "" {
			return text
		}
	}
	return ""
}
