package ranking

// The screener publishes ratios only. The functions below rebuild absolute
// figures from them and must run in this order, since each one reads the
// field written by the previous step:
//
//	market value → share count → EBIT → enterprise value

// DeriveValuation runs the whole derivation chain.
func DeriveValuation(t Table) Table {
	t = WithMarketValue(t)
	t = WithShareCount(t)
	t = WithEBIT(t)
	return WithEnterpriseValue(t)
}

// WithMarketValue sets MarketValue = PriceToBook × NetEquity.
func WithMarketValue(t Table) Table {
	out := t.Clone()
	for i := range out {
		out[i].MarketValue = ZeroOnError(out[i].PriceToBook*out[i].NetEquity, nil)
	}
	return out
}

// WithShareCount sets ShareCount = MarketValue / Price, or 0 without a price.
func WithShareCount(t Table) Table {
	out := t.Clone()
	for i := range out {
		out[i].ShareCount = ZeroOnError(Divide(out[i].MarketValue, out[i].Price))
	}
	return out
}

// WithEBIT sets EBIT = Price / PriceToEBIT × ShareCount, or 0 when the ratio
// cannot be divided.
func WithEBIT(t Table) Table {
	out := t.Clone()
	for i := range out {
		perShare, err := Divide(out[i].Price, out[i].PriceToEBIT)
		out[i].EBIT = ZeroOnError(perShare*out[i].ShareCount, err)
	}
	return out
}

// WithEnterpriseValue sets EnterpriseValue = EBIT × EVToEBIT, or 0 when EBIT is 0.
func WithEnterpriseValue(t Table) Table {
	out := t.Clone()
	for i := range out {
		if out[i].EBIT == 0 {
			out[i].EnterpriseValue = 0
			continue
		}
		out[i].EnterpriseValue = ZeroOnError(out[i].EBIT*out[i].EVToEBIT, nil)
	}
	return out
}
