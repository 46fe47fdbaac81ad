// internal/models/query_types.go
package models

type QueryType string

const (
	QueryTypeStockPrice        QueryType = "stock_price"
	QueryTypeCompanyAnalysis   QueryType = "company_analysis"
	QueryTypeTechnicalAnalysis QueryType = "technical_analysis"
	QueryTypeEconomicData      QueryType = "economic_data"
	QueryTypeMarketNews        QueryType = "market_news"
	QueryTypeSectorAnalysis    QueryType = "sector_analysis"
	QueryTypeGeneralResearch   QueryType = "general_research"
)

// QueryTypeStrings returns every query type as a plain string, for schema enums.
func QueryTypeStrings() []string {
	return []string{
		string(QueryTypeStockPrice),
		string(QueryTypeCompanyAnalysis),
		string(QueryTypeTechnicalAnalysis),
		string(QueryTypeEconomicData),
		string(QueryTypeMarketNews),
		string(QueryTypeSectorAnalysis),
		string(QueryTypeGeneralResearch),
	}
}
