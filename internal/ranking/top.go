package ranking

import "github.com/guttosm/b3rank/internal/domain/models"

// DefaultTopN is the size of the portfolio the price estimate targets.
const DefaultTopN = 30

// EstimatePriceToTop sets PriceToTop30 on every row: the share price at which
// the company's magic score would match the score of the company at rank n,
// holding its ROIC rank fixed. Rows already above rank n get 0, as does any
// row for which no lower price exists inside the model.
//
// When the table has fewer than n rows there is no reference score and every
// row gets 0.
func EstimatePriceToTop(t Table, n int) Table {
	out := t.Clone()
	for i := range out {
		out[i].PriceToTop30 = 0
	}

	ref, ok := rowAtMagicRank(out, n)
	if !ok {
		return out
	}
	byEVRank := make(map[int]models.Company, len(out))
	for _, c := range out {
		byEVRank[c.EVToEBITRank] = c
	}

	for i := range out {
		out[i].PriceToTop30 = ZeroOnError(priceToTop(out[i], ref.MagicScore, n, byEVRank))
	}
	return out
}

// priceToTop computes the estimate for one row. Every failure returns an
// error, mapped to 0 by the caller.
func priceToTop(c models.Company, refScore, n int, byEVRank map[int]models.Company) (float64, error) {
	if c.MagicRank < n {
		return 0, nil
	}

	target := refScore - c.ROICRank
	if target <= 0 {
		return 0, errNoTarget
	}
	// Exact match only; the nearest rank is not a substitute.
	peer, ok := byEVRank[target]
	if !ok {
		return 0, errNoTarget
	}

	netDebt := c.MarketValue - c.EnterpriseValue
	targetMarketValue := c.EBIT*peer.EVToEBIT - netDebt
	price, err := Divide(targetMarketValue, c.ShareCount)
	if err != nil {
		return 0, err
	}
	if price > c.Price {
		return 0, errNoTarget
	}
	return price, nil
}

func rowAtMagicRank(t Table, rank int) (models.Company, bool) {
	for _, c := range t {
		if c.MagicRank == rank {
			return c, true
		}
	}
	return models.Company{}, false
}
