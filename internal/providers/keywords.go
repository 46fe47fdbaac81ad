// internal/providers/keywords.go
package providers

import (
	"regexp"
	"strings"
)

// Static keyword mappings, immutable after startup. These keep the provider
// plumbing free of oracle calls: common entity names resolve instantly and
// anything else falls back to an uppercase-token heuristic.

// companyTickers maps well-known company names to their primary ticker.
// Ordered so a question naming several companies resolves to the same
// ticker on every run: the first listed match wins.
var companyTickers = []struct {
	name   string
	ticker string
}{
	{"apple", "AAPL"},
	{"microsoft", "MSFT"},
	{"google", "GOOGL"},
	{"alphabet", "GOOGL"},
	{"amazon", "AMZN"},
	{"tesla", "TSLA"},
	{"nvidia", "NVDA"},
	{"meta", "META"},
	{"facebook", "META"},
	{"netflix", "NFLX"},
	{"intel", "INTC"},
	{"amd", "AMD"},
	{"boeing", "BA"},
	{"disney", "DIS"},
	{"walmart", "WMT"},
	{"jpmorgan", "JPM"},
	{"visa", "V"},
	{"berkshire", "BRK-B"},
}

// tickerPattern matches standalone uppercase tokens that look like tickers.
var tickerPattern = regexp.MustCompile(`\b[A-Z]{1,5}\b`)

// tickerStopwords are uppercase tokens that appear in questions but are not
// tickers.
var tickerStopwords = map[string]bool{
	"A": true, "I": true, "US": true, "USA": true, "ETF": true, "IPO": true,
	"CEO": true, "GDP": true, "P": true, "E": true, "PE": true, "RSI": true,
	"SEC": true, "THE": true, "AI": true, "ESG": true, "MACD": true, "SMA": true,
	"FX": true, "EPS": true, "Q": true, "YOY": true, "VS": true,
}

// ExtractTicker resolves the most likely ticker from a question. Known
// company names win over the uppercase heuristic.
func ExtractTicker(query string) string {
	lower := strings.ToLower(query)
	for _, entry := range companyTickers {
		if strings.Contains(lower, entry.name) {
			return entry.ticker
		}
	}

	for _, tok := range tickerPattern.FindAllString(query, -1) {
		if !tickerStopwords[tok] {
			return tok
		}
	}
	return ""
}

// fredSeries maps economic keywords to FRED series ids, taken from the
// indicators the system is asked about most.
var fredSeries = []struct {
	keyword string
	series  string
	label   string
}{
	{"core inflation", "CPILFESL", "Core CPI (less food & energy)"},
	{"inflation", "CPIAUCSL", "Consumer Price Index (all urban consumers)"},
	{"consumer price", "CPIAUCSL", "Consumer Price Index (all urban consumers)"},
	{"cpi", "CPIAUCSL", "Consumer Price Index (all urban consumers)"},
	{"pce", "PCEPI", "PCE price index"},
	{"gdp", "GDP", "Gross Domestic Product"},
	{"unemployment", "UNRATE", "Unemployment rate"},
	{"jobless", "UNRATE", "Unemployment rate"},
	{"payroll", "PAYEMS", "Total nonfarm payrolls"},
	{"federal funds", "FEDFUNDS", "Effective federal funds rate"},
	{"interest rate", "FEDFUNDS", "Effective federal funds rate"},
	{"mortgage", "MORTGAGE30US", "30-year fixed mortgage average"},
	{"10-year", "DGS10", "10-year treasury constant maturity"},
	{"treasury", "DGS10", "10-year treasury constant maturity"},
	{"retail sales", "RSAFS", "Advance retail sales"},
	{"consumer sentiment", "UMCSENT", "University of Michigan consumer sentiment"},
	{"housing starts", "HOUST", "Housing starts"},
	{"industrial production", "INDPRO", "Industrial production index"},
}

// ResolveEconomicSeries maps a question to a FRED series id and label.
func ResolveEconomicSeries(query string) (series, label string, ok bool) {
	lower := strings.ToLower(query)
	for _, entry := range fredSeries {
		if strings.Contains(lower, entry.keyword) {
			return entry.series, entry.label, true
		}
	}
	return "", "", false
}

// cryptoInstruments maps crypto names to CoinDesk instrument ids.
var cryptoInstruments = []struct {
	keyword    string
	instrument string
}{
	{"bitcoin", "BTC-USD"},
	{"btc", "BTC-USD"},
	{"ethereum", "ETH-USD"},
	{"eth", "ETH-USD"},
	{"solana", "SOL-USD"},
	{"dogecoin", "DOGE-USD"},
	{"ripple", "XRP-USD"},
	{"xrp", "XRP-USD"},
	{"cardano", "ADA-USD"},
	{"litecoin", "LTC-USD"},
}

// ResolveInstruments maps a question to CoinDesk instruments, defaulting to
// BTC-USD for generic crypto questions.
func ResolveInstruments(query string) []string {
	lower := strings.ToLower(query)
	var out []string
	seen := make(map[string]bool)
	for _, entry := range cryptoInstruments {
		if strings.Contains(lower, entry.keyword) && !seen[entry.instrument] {
			seen[entry.instrument] = true
			out = append(out, entry.instrument)
		}
	}
	if len(out) == 0 {
		out = []string{"BTC-USD"}
	}
	return out
}
