package ranking

import (
	"fmt"
	"strings"

	"github.com/guttosm/b3rank/internal/domain/models"
	"github.com/guttosm/b3rank/internal/logger"
)

// Canonical field names, as used in every output artifact.
const (
	FieldTicker                  = "papel"
	FieldPrice                   = "cotacao"
	FieldPriceToEarnings         = "pByL"
	FieldPriceToBook             = "pByVp"
	FieldPriceToSales            = "psr"
	FieldDividendYield           = "dividendYield"
	FieldPriceToAssets           = "pByAtivo"
	FieldPriceToWorkingCapital   = "pByCapitalGiro"
	FieldPriceToEBIT             = "pByEbit"
	FieldPriceToNetCurrentAssets = "pByAtivoCircLiq"
	FieldEVToEBIT                = "evByEbit"
	FieldEVToEBITDA              = "evByEbitda"
	FieldEBITMargin              = "margemEbit"
	FieldNetMargin               = "margemLiq"
	FieldCurrentLiquidity        = "liqCorr"
	FieldROIC                    = "roic"
	FieldROE                     = "roe"
	FieldLiquidity2M             = "liqDoisMeses"
	FieldNetEquity               = "patrimonioLiquido"
	FieldGrossDebtToEquity       = "dividaBrutaByPatrimonio"
	FieldRevenueGrowth5Y         = "crescRec"
)

// ColumnNames maps the screener's header text to the canonical field name.
// Headers not listed here are dropped by Normalize.
var ColumnNames = map[string]string{
	"Papel":             FieldTicker,
	"Cotação":           FieldPrice,
	"P/L":               FieldPriceToEarnings,
	"P/VP":              FieldPriceToBook,
	"PSR":               FieldPriceToSales,
	"Div.Yield":         FieldDividendYield,
	"P/Ativo":           FieldPriceToAssets,
	"P/Cap.Giro":        FieldPriceToWorkingCapital,
	"P/EBIT":            FieldPriceToEBIT,
	"P/Ativ Circ.Liq":   FieldPriceToNetCurrentAssets,
	"EV/EBIT":           FieldEVToEBIT,
	"EV/EBITDA":         FieldEVToEBITDA,
	"Mrg Ebit":          FieldEBITMargin,
	"Mrg. Líq.":         FieldNetMargin,
	"Liq. Corr.":        FieldCurrentLiquidity,
	"ROIC":              FieldROIC,
	"ROE":               FieldROE,
	"Liq.2meses":        FieldLiquidity2M,
	"Patrim. Líq":       FieldNetEquity,
	"Dív.Brut/ Patrim.": FieldGrossDebtToEquity,
	"Cresc. Rec.5a":     FieldRevenueGrowth5Y,
}

// PercentageFields are published as "12,3%" and must parse cleanly; a bad
// value in any of them aborts the run.
var PercentageFields = map[string]bool{
	FieldRevenueGrowth5Y: true,
	FieldNetMargin:       true,
	FieldEBITMargin:      true,
	FieldROE:             true,
	FieldDividendYield:   true,
	FieldROIC:            true,
}

// numericField returns the address of the float64 backing a canonical field.
func numericField(c *models.Company, field string) *float64 {
	switch field {
	case FieldPrice:
		return &c.Price
	case FieldPriceToEarnings:
		return &c.PriceToEarnings
	case FieldPriceToBook:
		return &c.PriceToBook
	case FieldPriceToSales:
		return &c.PriceToSales
	case FieldDividendYield:
		return &c.DividendYield
	case FieldPriceToAssets:
		return &c.PriceToAssets
	case FieldPriceToWorkingCapital:
		return &c.PriceToWorkingCapital
	case FieldPriceToEBIT:
		return &c.PriceToEBIT
	case FieldPriceToNetCurrentAssets:
		return &c.PriceToNetCurrentAssets
	case FieldEVToEBIT:
		return &c.EVToEBIT
	case FieldEVToEBITDA:
		return &c.EVToEBITDA
	case FieldEBITMargin:
		return &c.EBITMargin
	case FieldNetMargin:
		return &c.NetMargin
	case FieldCurrentLiquidity:
		return &c.CurrentLiquidity
	case FieldROIC:
		return &c.ROIC
	case FieldROE:
		return &c.ROE
	case FieldLiquidity2M:
		return &c.Liquidity2M
	case FieldNetEquity:
		return &c.NetEquity
	case FieldGrossDebtToEquity:
		return &c.GrossDebtToEquity
	case FieldRevenueGrowth5Y:
		return &c.RevenueGrowth5Y
	}
	return nil
}

// Normalize renames the raw headers to canonical fields, parses every numeric
// cell and keeps only rows with EV/EBIT > 0.
//
// It fails on:
//   - a header row without Papel or EV/EBIT
//   - a row whose cell count differs from the header count
//   - a percentage field that does not parse
//   - a non-empty numeric cell that does not parse
//
// Empty cells in non-percentage fields become 0.
func Normalize(raw models.RawTable) (Table, error) {
	fields := make([]string, len(raw.Headers))
	seen := map[string]bool{}
	for i, h := range raw.Headers {
		name, ok := ColumnNames[strings.TrimSpace(h)]
		if !ok {
			logger.L().Debug().Str("header", h).Msg("unrecognized column dropped")
			continue
		}
		fields[i] = name
		seen[name] = true
	}
	for _, required := range []string{FieldTicker, FieldEVToEBIT} {
		if !seen[required] {
			return nil, fmt.Errorf("missing required column %q", required)
		}
	}

	out := make(Table, 0, len(raw.Rows))
	for n, row := range raw.Rows {
		if len(row) != len(fields) {
			return nil, fmt.Errorf("row %d: expected %d cells, got %d", n+1, len(fields), len(row))
		}
		c, err := recordToCompany(fields, row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", n+1, err)
		}
		out = append(out, c)
	}

	return FilterPositiveEVToEBIT(out), nil
}

// recordToCompany converts one row whose cells are aligned with fields.
func recordToCompany(fields, row []string) (models.Company, error) {
	var c models.Company
	for i, field := range fields {
		if field == FieldTicker {
			c.Ticker = strings.ToUpper(strings.TrimSpace(row[i]))
		}
	}

	for i, field := range fields {
		dst := numericField(&c, field)
		if dst == nil {
			continue
		}
		cell := strings.TrimSpace(row[i])

		if PercentageFields[field] {
			v, err := ParsePercent(cell)
			if err != nil {
				return c, fmt.Errorf("ticker %s field %s: %w", c.Ticker, field, err)
			}
			*dst = v
			continue
		}

		if cell == "" {
			continue
		}
		v, err := ParseNumber(cell)
		if err != nil {
			return c, fmt.Errorf("ticker %s field %s: %w", c.Ticker, field, err)
		}
		*dst = v
	}
	return c, nil
}

// FilterPositiveEVToEBIT keeps rows with EV/EBIT strictly greater than zero.
func FilterPositiveEVToEBIT(t Table) Table {
	return t.Filter(func(c models.Company) bool { return c.EVToEBIT > 0 })
}
