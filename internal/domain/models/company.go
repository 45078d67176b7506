package models

// Company represents one row of the ranking table for a single ticker.
//
// The source table (Fundamentus "resultado") only carries ratios. Fields in the
// "derived" block are reconstructed from those ratios by the ranking pipeline.
//
// JSON names are the canonical field names used by every output artifact
// (CSV header, JSON records, API responses).
//
// Column mapping (Portuguese header → field):
//
//	Papel             → Ticker
//	Cotação           → Price
//	P/L               → PriceToEarnings
//	P/VP              → PriceToBook
//	PSR               → PriceToSales
//	Div.Yield         → DividendYield (%)
//	P/Ativo           → PriceToAssets
//	P/Cap.Giro        → PriceToWorkingCapital
//	P/EBIT            → PriceToEBIT
//	P/Ativ Circ.Liq   → PriceToNetCurrentAssets
//	EV/EBIT           → EVToEBIT
//	EV/EBITDA         → EVToEBITDA
//	Mrg Ebit          → EBITMargin (%)
//	Mrg. Líq.         → NetMargin (%)
//	Liq. Corr.        → CurrentLiquidity
//	ROIC              → ROIC (%)
//	ROE               → ROE (%)
//	Liq.2meses        → Liquidity2M
//	Patrim. Líq       → NetEquity
//	Dív.Brut/ Patrim. → GrossDebtToEquity
//	Cresc. Rec.5a     → RevenueGrowth5Y (%)
type Company struct {
	// Identity and metadata
	Ticker        string `json:"papel" example:"WEGE3"`
	CompanyName   string `json:"empresa" example:"WEG SA"`
	Sector        string `json:"setor" example:"Máquinas e Equipamentos"`
	Subsector     string `json:"subsetor" example:"Motores, Compressores e Outros"`
	LastQuoteDate Date   `json:"ultCotacao" swaggertype:"string" example:"2024-05-10"`
	LastQuote     string `json:"-"` // DD/MM/YYYY as scraped, parsed by the staleness filter

	// Raw indicators
	Price                   float64 `json:"cotacao" example:"38.12"`
	PriceToEarnings         float64 `json:"pByL"`
	PriceToBook             float64 `json:"pByVp"`
	PriceToSales            float64 `json:"psr"`
	DividendYield           float64 `json:"dividendYield"`
	PriceToAssets           float64 `json:"pByAtivo"`
	PriceToWorkingCapital   float64 `json:"pByCapitalGiro"`
	PriceToEBIT             float64 `json:"pByEbit"`
	PriceToNetCurrentAssets float64 `json:"pByAtivoCircLiq"`
	EVToEBIT                float64 `json:"evByEbit"`
	EVToEBITDA              float64 `json:"evByEbitda"`
	EBITMargin              float64 `json:"margemEbit"`
	NetMargin               float64 `json:"margemLiq"`
	CurrentLiquidity        float64 `json:"liqCorr"`
	ROIC                    float64 `json:"roic"`
	ROE                     float64 `json:"roe"`
	Liquidity2M             float64 `json:"liqDoisMeses"`
	NetEquity               float64 `json:"patrimonioLiquido"`
	GrossDebtToEquity       float64 `json:"dividaBrutaByPatrimonio"`
	RevenueGrowth5Y         float64 `json:"crescRec"`

	// Derived
	MarketValue     float64 `json:"valorMercado"`
	ShareCount      float64 `json:"numeroAcoes"`
	EBIT            float64 `json:"ebit"`
	EnterpriseValue float64 `json:"valorFirma"`
	SmallCap        bool    `json:"smallcap"`
	EVToEBITRank    int     `json:"evByEbitRanking"`
	ROICRank        int     `json:"roicRanking"`
	MagicScore      int     `json:"magicValue"`
	MagicRank       int     `json:"magicRanking"`
	PriceToTop30    float64 `json:"cotacaoToTop30"`
}
