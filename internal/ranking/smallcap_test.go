package ranking

import "testing"

func TestFlagSmallCaps(t *testing.T) {
	cases := []struct {
		equity float64
		want   bool
	}{
		{equity: 300_000_000.00, want: true},
		{equity: 299_999_999.99, want: true},
		{equity: 300_000_000.01, want: false},
		{equity: 0, want: true},
		{equity: -5_000_000, want: true},
		{equity: 12_000_000_000, want: false},
	}
	for _, c := range cases {
		out := FlagSmallCaps(Table{{Ticker: "X", NetEquity: c.equity}}, DefaultSmallCapThreshold)
		if out[0].SmallCap != c.want {
			t.Fatalf("equity=%.2f smallcap=%v, want %v", c.equity, out[0].SmallCap, c.want)
		}
	}
}
