package export

import (
	"strconv"

	"github.com/guttosm/b3rank/internal/domain/models"
)

// Columns is the CSV header, in output order. Names match the JSON fields.
var Columns = []string{
	"magicRanking", "papel", "empresa", "setor", "subsetor", "ultCotacao",
	"cotacao", "cotacaoToTop30", "magicValue", "evByEbitRanking", "roicRanking",
	"evByEbit", "roic", "smallcap",
	"pByL", "pByVp", "psr", "dividendYield", "pByAtivo", "pByCapitalGiro", "pByEbit",
	"pByAtivoCircLiq", "evByEbitda", "margemEbit", "margemLiq", "liqCorr", "roe",
	"liqDoisMeses", "patrimonioLiquido", "dividaBrutaByPatrimonio", "crescRec",
	"valorMercado", "numeroAcoes", "ebit", "valorFirma",
}

func record(c models.Company) []string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	i := strconv.Itoa
	return []string{
		i(c.MagicRank), c.Ticker, c.CompanyName, c.Sector, c.Subsector, c.LastQuoteDate.String(),
		f(c.Price), f(c.PriceToTop30), i(c.MagicScore), i(c.EVToEBITRank), i(c.ROICRank),
		f(c.EVToEBIT), f(c.ROIC), strconv.FormatBool(c.SmallCap),
		f(c.PriceToEarnings), f(c.PriceToBook), f(c.PriceToSales), f(c.DividendYield), f(c.PriceToAssets),
		f(c.PriceToWorkingCapital), f(c.PriceToEBIT), f(c.PriceToNetCurrentAssets), f(c.EVToEBITDA),
		f(c.EBITMargin), f(c.NetMargin), f(c.CurrentLiquidity), f(c.ROE), f(c.Liquidity2M),
		f(c.NetEquity), f(c.GrossDebtToEquity), f(c.RevenueGrowth5Y),
		f(c.MarketValue), f(c.ShareCount), f(c.EBIT), f(c.EnterpriseValue),
	}
}
