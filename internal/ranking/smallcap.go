package ranking

// DefaultSmallCapThreshold is the net equity (BRL) at or below which a
// company is flagged as small-cap.
const DefaultSmallCapThreshold = 300_000_000.00

// FlagSmallCaps sets SmallCap = NetEquity <= threshold. A company exactly at
// the threshold is small-cap.
func FlagSmallCaps(t Table, threshold float64) Table {
	out := t.Clone()
	for i := range out {
		out[i].SmallCap = !(out[i].NetEquity > threshold)
	}
	return out
}
