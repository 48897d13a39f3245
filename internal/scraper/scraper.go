// Package scraper implements the product and wishlist extraction pipeline:
// URL validation, rate limiting, fetching and selector-based extraction of
// structured product data from third-party pages.
package scraper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/wishwell/wishwell/internal/fetcher"
	"github.com/wishwell/wishwell/internal/models"
	"github.com/wishwell/wishwell/internal/ratelimit"
	"github.com/wishwell/wishwell/internal/urlcheck"
)

// ErrInvalidWishlistURL is returned when a wishlist import is attempted on
// a URL that is not an Amazon wishlist page.
var ErrInvalidWishlistURL = errors.New("invalid amazon wishlist url")

// PageFetcher abstracts the outbound fetch so tests can substitute static
// HTML for live pages.
type PageFetcher interface {
	Fetch(ctx context.Context, url string, timeout time.Duration) (string, error)
}

type Service struct {
	fetcher PageFetcher
	limiter ratelimit.Limiter
	logger  *slog.Logger
}

func NewService(f PageFetcher, limiter ratelimit.Limiter, logger *slog.Logger) *Service {
	return &Service{
		fetcher: f,
		limiter: limiter,
		logger:  logger.With("component", "scraper"),
	}
}

// ExtractProductInfo fetches a product page and extracts title, image and
// price on a best-effort basis. It never returns an error: unsafe URLs,
// rate-limited requests and fetch failures all come back as an empty
// result, and a timeout additionally carries the TimedOut/Blocked flags so
// the caller can suggest manual entry. This keeps the failure surface of
// the manual-entry fallback UX minimal.
func (s *Service) ExtractProductInfo(ctx context.Context, rawURL string) models.ProductInfo {
	if !urlcheck.IsSafe(rawURL) {
		s.logger.Warn("rejected unsafe product url", "url", rawURL)
		return models.ProductInfo{}
	}

	if !s.limiter.Allow(ratelimit.GlobalKey) {
		s.logger.Info("product fetch rate limited", "url", rawURL)
		return models.ProductInfo{}
	}

	html, err := s.fetcher.Fetch(ctx, rawURL, fetcher.ProductTimeout)
	if err != nil {
		if errors.Is(err, fetcher.ErrTimeout) {
			s.logger.Warn("product fetch timed out, host may block automation", "url", rawURL)
			return models.ProductInfo{TimedOut: true, Blocked: true}
		}
		s.logger.Warn("product fetch failed", "url", rawURL, "error", err)
		return models.ProductInfo{}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		s.logger.Warn("failed to parse product page", "url", rawURL, "error", err)
		return models.ProductInfo{}
	}

	return extractProduct(doc, rawURL)
}

// ImportAmazonWishlist fetches an Amazon wishlist page and extracts its
// items. Unlike product extraction this is an explicit user action, so
// fetch failures surface as descriptive errors instead of an empty result.
// An empty slice with a nil error means the page loaded but no
// recognizable items were found, e.g. a private or empty wishlist.
func (s *Service) ImportAmazonWishlist(ctx context.Context, rawURL string) ([]models.WishlistItem, error) {
	if !IsAmazonWishlistURL(rawURL) {
		return nil, ErrInvalidWishlistURL
	}

	html, err := s.fetcher.Fetch(ctx, rawURL, fetcher.WishlistTimeout)
	if err != nil {
		if errors.Is(err, fetcher.ErrTimeout) {
			return nil, fmt.Errorf("amazon did not respond in time and may be blocking automated requests: %w", err)
		}
		return nil, fmt.Errorf("failed to load wishlist page: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse wishlist page: %w", err)
	}

	items := extractWishlistItems(doc, rawURL)
	s.logger.Info("extracted wishlist items", "url", rawURL, "count", len(items))
	return items, nil
}
