// internal/providers/keywords_test.go
package providers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractTicker(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"known company name", "What is Apple's stock price?", "AAPL"},
		{"known name lowercase", "how is microsoft doing today", "MSFT"},
		{"alias resolves", "latest facebook earnings", "META"},
		{"explicit ticker", "Show me the RSI for NVDA", "NVDA"},
		{"stopwords skipped", "What is the CEO of AMD saying about AI?", "AMD"},
		{"no candidate", "how is the economy doing", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractTicker(tt.query))
		})
	}
}

// A question naming several companies must resolve to the same ticker on
// every run.
func TestExtractTicker_MultipleCompaniesDeterministic(t *testing.T) {
	for i := 0; i < 100; i++ {
		assert.Equal(t, "AAPL", ExtractTicker("Compare Apple vs Microsoft performance this year"))
	}
}

func TestResolveEconomicSeries(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantSeries string
		wantOK     bool
	}{
		{"inflation", "What is the current inflation rate?", "CPIAUCSL", true},
		{"core inflation wins over inflation", "what is core inflation doing", "CPILFESL", true},
		{"gdp", "US GDP growth last quarter", "GDP", true},
		{"unemployment", "current unemployment rate", "UNRATE", true},
		{"fed funds", "where is the federal funds rate", "FEDFUNDS", true},
		{"no match", "What is Apple's stock price?", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			series, label, ok := ResolveEconomicSeries(tt.query)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantSeries, series)
			if ok {
				assert.NotEmpty(t, label)
			}
		})
	}
}

func TestResolveInstruments(t *testing.T) {
	assert.Equal(t, []string{"BTC-USD"}, ResolveInstruments("what is bitcoin worth"))
	assert.Equal(t, []string{"BTC-USD", "ETH-USD"}, ResolveInstruments("compare bitcoin and ethereum"))
	assert.Equal(t, []string{"BTC-USD"}, ResolveInstruments("how is crypto doing"), "generic questions default to BTC")
	assert.Equal(t, []string{"XRP-USD"}, ResolveInstruments("price of ripple today"))
}
