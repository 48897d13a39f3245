package scraper

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wishwell/wishwell/internal/fetcher"
	"github.com/wishwell/wishwell/internal/models"
	"github.com/wishwell/wishwell/internal/ratelimit"
)

type stubFetcher struct {
	html        string
	err         error
	calls       int
	lastURL     string
	lastTimeout time.Duration
}

func (s *stubFetcher) Fetch(_ context.Context, url string, timeout time.Duration) (string, error) {
	s.calls++
	s.lastURL = url
	s.lastTimeout = timeout
	return s.html, s.err
}

type allowAll struct{}

func (allowAll) Allow(string) bool { return true }

type denyAll struct{}

func (denyAll) Allow(string) bool { return false }

func newTestService(f PageFetcher, limiter ratelimit.Limiter) *Service {
	return NewService(f, limiter, slog.Default())
}

func TestExtractProductInfoHappyPath(t *testing.T) {
	stub := &stubFetcher{html: `<html><body>
		<span id="productTitle">Widget</span>
		<span class="a-price"><span class="a-offscreen">€9.99</span></span>
	</body></html>`}
	svc := newTestService(stub, allowAll{})

	info := svc.ExtractProductInfo(context.Background(), "https://www.amazon.de/dp/B000TEST")

	assert.Equal(t, "Widget", info.Title)
	assert.Equal(t, "9.99", info.Price)
	assert.Equal(t, models.CurrencyEUR, info.Currency)
	assert.Equal(t, fetcher.ProductTimeout, stub.lastTimeout)
}

func TestExtractProductInfoRejectsUnsafeURL(t *testing.T) {
	stub := &stubFetcher{}
	svc := newTestService(stub, allowAll{})

	tests := []string{
		"javascript:alert(1)",
		"http://127.0.0.1/admin",
		"http://192.168.1.1/router",
		"not a url",
	}

	for _, url := range tests {
		info := svc.ExtractProductInfo(context.Background(), url)
		assert.Equal(t, models.ProductInfo{}, info, "url %q must yield an empty result", url)
	}

	assert.Zero(t, stub.calls, "unsafe urls must never reach the network")
}

func TestExtractProductInfoRateLimited(t *testing.T) {
	stub := &stubFetcher{html: "<html></html>"}
	svc := newTestService(stub, denyAll{})

	info := svc.ExtractProductInfo(context.Background(), "https://example.com/p/1")

	// Indistinguishable from "no data found" on purpose.
	assert.Equal(t, models.ProductInfo{}, info)
	assert.Zero(t, stub.calls)
}

func TestExtractProductInfoTimeoutSetsSentinelFlags(t *testing.T) {
	stub := &stubFetcher{err: fetcher.ErrTimeout}
	svc := newTestService(stub, allowAll{})

	info := svc.ExtractProductInfo(context.Background(), "https://slow.example.com/p/1")

	assert.True(t, info.TimedOut)
	assert.True(t, info.Blocked)
	assert.Empty(t, info.Title)
	assert.Empty(t, info.Price)
	assert.Empty(t, info.ImageURL)
}

func TestExtractProductInfoFetchErrorYieldsEmptyResult(t *testing.T) {
	stub := &stubFetcher{err: fetcher.ErrStatusNotOK}
	svc := newTestService(stub, allowAll{})

	info := svc.ExtractProductInfo(context.Background(), "https://example.com/p/404")

	assert.Equal(t, models.ProductInfo{}, info)
}

func TestImportAmazonWishlistRejectsInvalidURL(t *testing.T) {
	stub := &stubFetcher{}
	svc := newTestService(stub, allowAll{})

	_, err := svc.ImportAmazonWishlist(context.Background(), "https://example.com/hz/wishlist/ls/ABC")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidWishlistURL)
	assert.Zero(t, stub.calls)
}

func TestImportAmazonWishlistTimeoutMentionsBlocking(t *testing.T) {
	stub := &stubFetcher{err: fetcher.ErrTimeout}
	svc := newTestService(stub, allowAll{})

	_, err := svc.ImportAmazonWishlist(context.Background(), "https://www.amazon.de/hz/wishlist/ls/ABC")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "blocking")
}

func TestImportAmazonWishlistPropagatesFetchFailure(t *testing.T) {
	stub := &stubFetcher{err: fetcher.ErrStatusNotOK}
	svc := newTestService(stub, allowAll{})

	_, err := svc.ImportAmazonWishlist(context.Background(), "https://www.amazon.de/hz/wishlist/ls/ABC")

	require.Error(t, err)
	assert.ErrorIs(t, err, fetcher.ErrStatusNotOK)
}

func TestImportAmazonWishlistUsesWishlistTimeout(t *testing.T) {
	stub := &stubFetcher{html: "<html></html>"}
	svc := newTestService(stub, allowAll{})

	items, err := svc.ImportAmazonWishlist(context.Background(), "https://www.amazon.de/hz/wishlist/ls/ABC")

	require.NoError(t, err)
	assert.Empty(t, items, "no recognizable items is a valid outcome, not an error")
	assert.Equal(t, fetcher.WishlistTimeout, stub.lastTimeout)
}

func TestImportAmazonWishlistBypassesRateLimiter(t *testing.T) {
	stub := &stubFetcher{html: "<html></html>"}
	svc := newTestService(stub, denyAll{})

	_, err := svc.ImportAmazonWishlist(context.Background(), "https://www.amazon.de/hz/wishlist/ls/ABC")

	require.NoError(t, err)
	assert.Equal(t, 1, stub.calls, "wishlist import is single-shot and not throttled")
}
