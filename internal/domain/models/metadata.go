package models

// TickerMetadata holds the descriptive data fetched per ticker from the
// Fundamentus detail page and kept in the on-disk cache between runs.
//
// LastQuote keeps the source format (DD/MM/YYYY); it is parsed by the
// staleness filter, not here. Any field may be empty when the page omits it.
type TickerMetadata struct {
	Ticker      string `json:"papel"`
	CompanyName string `json:"empresa"`
	Sector      string `json:"setor"`
	Subsector   string `json:"subsetor"`
	LastQuote   string `json:"data_ult_cotacao"`
}

// RawTable is the untyped screener table as scraped: header texts in page
// order and one slice of cell texts per row.
type RawTable struct {
	Headers []string
	Rows    [][]string
}
