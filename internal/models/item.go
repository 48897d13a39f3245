package models

// Currency is the set of currencies the price normalizer can detect.
// Anything else is left unset rather than guessed.
type Currency string

const (
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
	CurrencyUSD Currency = "USD"
)

// Importance is the app-internal wanting scale an item can carry.
type Importance string

const (
	ImportanceMustHave   Importance = "must-have"
	ImportanceWouldLove  Importance = "would-love"
	ImportanceNiceToHave Importance = "nice-to-have"
	ImportanceNotSure    Importance = "not-sure"
)

// ProductInfo is the best-effort result of scraping a single product page.
// Every field is optional; an absent field means "could not determine",
// never an error. TimedOut and Blocked signal that the remote host did not
// answer in time and is suspected of rejecting automated clients, so the
// caller should fall back to manual entry.
type ProductInfo struct {
	Title    string   `json:"title,omitempty"`
	ImageURL string   `json:"image_url,omitempty"`
	Price    string   `json:"price,omitempty"`
	Currency Currency `json:"currency,omitempty"`
	TimedOut bool     `json:"timed_out,omitempty"`
	Blocked  bool     `json:"blocked,omitempty"`
}

// WishlistItem is one entry scraped from an Amazon wishlist page. Title is
// the only required field; nodes without a resolvable title are dropped
// during extraction. PurchasedQuantity is a raw best-effort reading and is
// not validated against Quantity here.
type WishlistItem struct {
	Title             string     `json:"title"`
	URL               string     `json:"url,omitempty"`
	ImageURL          string     `json:"image_url,omitempty"`
	Price             string     `json:"price,omitempty"`
	Currency          Currency   `json:"currency,omitempty"`
	Priority          int        `json:"priority"`
	Importance        Importance `json:"importance"`
	Quantity          int        `json:"quantity"`
	PurchasedQuantity int        `json:"purchased_quantity"`
	Description       string     `json:"description,omitempty"`
}
