package urlcheck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSafe(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want bool
	}{
		{name: "public https url", url: "https://www.amazon.de/dp/B08XYZ", want: true},
		{name: "public http url", url: "http://example.com/product", want: true},
		{name: "malformed url", url: "://not-a-url", want: false},
		{name: "relative url", url: "/products/42", want: false},
		{name: "javascript scheme", url: "javascript:alert(1)", want: false},
		{name: "data scheme", url: "data:text/html,<h1>x</h1>", want: false},
		{name: "file scheme", url: "file:///etc/passwd", want: false},
		{name: "localhost", url: "http://localhost/admin", want: false},
		{name: "localhost with port", url: "http://localhost:8080/admin", want: false},
		{name: "loopback", url: "http://127.0.0.1/", want: false},
		{name: "loopback range", url: "http://127.1.2.3/", want: false},
		{name: "ipv6 loopback", url: "http://[::1]/", want: false},
		{name: "private 192.168", url: "https://192.168.1.1/router", want: false},
		{name: "private 10.x", url: "http://10.0.0.1/internal", want: false},
		{name: "private 172.16-31 middle", url: "http://172.20.5.5/", want: false},
		{name: "private 172 range lower bound", url: "http://172.16.0.1/", want: false},
		{name: "private 172 range upper bound", url: "http://172.31.255.254/", want: false},
		{name: "172 below private range", url: "http://172.15.0.1/", want: true},
		{name: "172 above private range", url: "http://172.32.0.1/", want: true},
		{name: "empty string", url: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSafe(tt.url))
		})
	}
}
