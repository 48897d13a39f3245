package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Sites with bot detection often reject Go's default client identifier, so
// every request carries a stable desktop-browser fingerprint.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

const (
	// ProductTimeout bounds a single-product page fetch.
	ProductTimeout = 8 * time.Second
	// WishlistTimeout bounds an Amazon wishlist page fetch. The multi-item
	// page is bulkier and tolerates more latency.
	WishlistTimeout = 15 * time.Second
)

var (
	// ErrTimeout indicates the remote host did not answer before the
	// deadline, often a sign the site is blocking automated clients.
	ErrTimeout = errors.New("request timed out")
	// ErrStatusNotOK indicates a non-2xx response.
	ErrStatusNotOK = errors.New("unexpected http status")
)

// Fetcher performs outbound page fetches with a browser user agent and a
// per-call deadline.
type Fetcher struct {
	client *http.Client
}

// New returns a Fetcher using the provided client. Pass nil to use a
// default client; timeouts are enforced per call via context, not on the
// client itself.
func New(client *http.Client) *Fetcher {
	if client == nil {
		client = &http.Client{}
	}
	return &Fetcher{client: client}
}

// Fetch GETs the page and returns its raw HTML. A timeout is reported as
// ErrTimeout and a non-2xx status as ErrStatusNotOK so callers can
// distinguish "slow or blocking" from "answered with an error".
func (f *Fetcher) Fetch(ctx context.Context, url string, timeout time.Duration) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9,de;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", ErrTimeout
		}
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: %d", ErrStatusNotOK, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	return string(body), nil
}
