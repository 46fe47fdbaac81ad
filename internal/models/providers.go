// internal/models/providers.go
package models

// ProviderID identifies one external data source. The catalog is closed: the
// router may only ever select from these seven, and the retriever treats
// anything else as unknown.
type ProviderID string

const (
	ProviderYahooFinance ProviderID = "yahoo_finance"
	ProviderPolygon      ProviderID = "polygon_io"
	ProviderFRED         ProviderID = "fred"
	ProviderNewsAPI      ProviderID = "newsapi"
	ProviderTavily       ProviderID = "tavily"
	ProviderSECEdgar     ProviderID = "sec_edgar"
	ProviderCoinDesk     ProviderID = "coindesk"
)

// Catalog is the fixed set of routable providers, in registration order.
var Catalog = []ProviderID{
	ProviderYahooFinance,
	ProviderPolygon,
	ProviderFRED,
	ProviderNewsAPI,
	ProviderTavily,
	ProviderSECEdgar,
	ProviderCoinDesk,
}

// IsKnownProvider reports whether id belongs to the catalog.
func IsKnownProvider(id ProviderID) bool {
	for _, known := range Catalog {
		if id == known {
			return true
		}
	}
	return false
}

// CatalogStrings returns the catalog as plain strings, for schema enums.
func CatalogStrings() []string {
	out := make([]string, 0, len(Catalog))
	for _, id := range Catalog {
		out = append(out, string(id))
	}
	return out
}
