package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wishwell/wishwell/internal/models"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		wantPrice    string
		wantCurrency models.Currency
	}{
		{name: "euro symbol with comma decimal", input: "€ 29,99", wantPrice: "29,99", wantCurrency: models.CurrencyEUR},
		{name: "dollar symbol", input: "$19.99", wantPrice: "19.99", wantCurrency: models.CurrencyUSD},
		{name: "pound symbol", input: "£5.49", wantPrice: "5.49", wantCurrency: models.CurrencyGBP},
		{name: "empty input", input: "", wantPrice: "", wantCurrency: ""},
		{name: "iso code EUR", input: "EUR 12,50", wantPrice: "12,50", wantCurrency: models.CurrencyEUR},
		{name: "trailing symbol", input: "1.234,99 €", wantPrice: "1.234,99", wantCurrency: models.CurrencyEUR},
		{name: "thousands with dollar", input: "$1,234.99", wantPrice: "1,234.99", wantCurrency: models.CurrencyUSD},
		{name: "no currency marker", input: "42,00", wantPrice: "42,00", wantCurrency: ""},
		{name: "euro wins over dollar", input: "€10 ($11)", wantPrice: "10 (11)", wantCurrency: models.CurrencyEUR},
		{name: "whitespace collapsed", input: "  €   9,99  ", wantPrice: "9,99", wantCurrency: models.CurrencyEUR},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			price, currency := ParsePrice(tt.input)
			assert.Equal(t, tt.wantPrice, price)
			assert.Equal(t, tt.wantCurrency, currency)
		})
	}
}

func TestParseWishlistPrice(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		wantPrice    string
		wantCurrency models.Currency
	}{
		{name: "plain euro price", input: "€29,99", wantPrice: "29,99", wantCurrency: models.CurrencyEUR},
		{name: "price buried in text", input: "Price: $24.99 - In Stock", wantPrice: "24.99", wantCurrency: models.CurrencyUSD},
		{name: "thousands separator kept", input: "£1,299.00", wantPrice: "1,299.00", wantCurrency: models.CurrencyGBP},
		{name: "no digits", input: "Currently unavailable", wantPrice: "", wantCurrency: ""},
		{name: "empty input", input: "", wantPrice: "", wantCurrency: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			price, currency := parseWishlistPrice(tt.input)
			assert.Equal(t, tt.wantPrice, price)
			assert.Equal(t, tt.wantCurrency, currency)
		})
	}
}

func TestDetectCurrency(t *testing.T) {
	tests := []struct {
		input string
		want  models.Currency
	}{
		{input: "EUR", want: models.CurrencyEUR},
		{input: "euro", want: models.CurrencyEUR},
		{input: "GBP", want: models.CurrencyGBP},
		{input: "Pound", want: models.CurrencyGBP},
		{input: "USD", want: models.CurrencyUSD},
		{input: "dollar", want: models.CurrencyUSD},
		{input: " usd ", want: models.CurrencyUSD},
		{input: "JPY", want: ""},
		{input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectCurrency(tt.input))
		})
	}
}
