package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchSendsBrowserHeaders(t *testing.T) {
	var gotUA, gotAccept string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		w.Write([]byte("<html><body>ok</body></html>"))
	}))
	defer server.Close()

	f := New(server.Client())
	html, err := f.Fetch(context.Background(), server.URL, time.Second)

	require.NoError(t, err)
	assert.Contains(t, html, "ok")
	assert.Contains(t, gotUA, "Mozilla/5.0", "requests must not carry Go's default user agent")
	assert.Contains(t, gotAccept, "text/html")
}

func TestFetchNonOKStatus(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{name: "not found", status: http.StatusNotFound},
		{name: "forbidden", status: http.StatusForbidden},
		{name: "server error", status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			f := New(server.Client())
			_, err := f.Fetch(context.Background(), server.URL, time.Second)

			require.Error(t, err)
			assert.ErrorIs(t, err, ErrStatusNotOK)
		})
	}
}

func TestFetchTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(500 * time.Millisecond):
		}
		w.Write([]byte("too late"))
	}))
	defer server.Close()

	f := New(server.Client())
	_, err := f.Fetch(context.Background(), server.URL, 50*time.Millisecond)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTimeout, "a deadline hit must be distinguishable from other failures")
}

func TestFetchRedirectFollowed(t *testing.T) {
	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>final</html>"))
	}))
	defer target.Close()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, target.URL, http.StatusFound)
	}))
	defer server.Close()

	f := New(nil)
	html, err := f.Fetch(context.Background(), server.URL, time.Second)

	require.NoError(t, err)
	assert.True(t, strings.Contains(html, "final"))
}
