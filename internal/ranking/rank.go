package ranking

import (
	"sort"

	"github.com/guttosm/b3rank/internal/domain/models"
)

// Ranking stages assign ranks without reordering the table. Ranks are
// 1-based and dense over exactly the rows they receive.

// RankEVToEBIT ranks ascending by EV/EBIT: the cheapest company is rank 1.
// Equal ratios are ordered by ticker.
func RankEVToEBIT(t Table) Table {
	out := t.Clone()
	order := sortedIndexes(out, func(a, b models.Company) bool {
		if a.EVToEBIT != b.EVToEBIT {
			return a.EVToEBIT < b.EVToEBIT
		}
		return a.Ticker < b.Ticker
	})
	for rank, idx := range order {
		out[idx].EVToEBITRank = rank + 1
	}
	return out
}

// RankROIC ranks descending by ROIC: the highest return is rank 1.
// Equal returns are ordered by ticker.
func RankROIC(t Table) Table {
	out := t.Clone()
	order := sortedIndexes(out, func(a, b models.Company) bool {
		if a.ROIC != b.ROIC {
			return a.ROIC > b.ROIC
		}
		return a.Ticker < b.Ticker
	})
	for rank, idx := range order {
		out[idx].ROICRank = rank + 1
	}
	return out
}

// RankMagic sets MagicScore = EVToEBITRank + ROICRank and ranks ascending by
// score. Equal scores keep the order the rows have in t.
func RankMagic(t Table) Table {
	out := t.Clone()
	for i := range out {
		out[i].MagicScore = out[i].EVToEBITRank + out[i].ROICRank
	}
	order := sortedIndexes(out, func(a, b models.Company) bool {
		return a.MagicScore < b.MagicScore
	})
	for rank, idx := range order {
		out[idx].MagicRank = rank + 1
	}
	return out
}

// Rank runs the EV/EBIT, ROIC and magic ranking stages in order.
func Rank(t Table) Table {
	return RankMagic(RankROIC(RankEVToEBIT(t)))
}

// SortByMagicRank returns the table ordered by magic rank.
func SortByMagicRank(t Table) Table {
	out := t.Clone()
	sort.SliceStable(out, func(i, j int) bool { return out[i].MagicRank < out[j].MagicRank })
	return out
}

// sortedIndexes returns the row indexes of t stably sorted by less.
func sortedIndexes(t Table, less func(a, b models.Company) bool) []int {
	idx := make([]int, len(t))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool { return less(t[idx[i]], t[idx[j]]) })
	return idx
}
