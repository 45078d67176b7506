package ranking

import (
	"fmt"
	"math/rand"
	"testing"
)

func scenarioTable() Table {
	return Table{
		{Ticker: "AAA", EVToEBIT: 5, ROIC: 0.30},
		{Ticker: "BBB", EVToEBIT: 2, ROIC: 0.10},
		{Ticker: "CCC", EVToEBIT: 8, ROIC: 0.50},
	}
}

func randomTable(n int, seed int64) Table {
	r := rand.New(rand.NewSource(seed))
	t := make(Table, n)
	for i := range t {
		t[i].Ticker = fmt.Sprintf("T%03d", i)
		// coarse values so ties actually happen
		t[i].EVToEBIT = float64(r.Intn(20) + 1)
		t[i].ROIC = float64(r.Intn(40) - 5)
	}
	return t
}

func TestRank_Scenario(t *testing.T) {
	out := Rank(scenarioTable())

	want := map[string][4]int{ // ev rank, roic rank, score, magic rank
		"AAA": {2, 2, 4, 1},
		"BBB": {1, 3, 4, 2},
		"CCC": {3, 1, 4, 3},
	}
	for _, c := range out {
		w := want[c.Ticker]
		got := [4]int{c.EVToEBITRank, c.ROICRank, c.MagicScore, c.MagicRank}
		if got != w {
			t.Fatalf("%s: got %v want %v", c.Ticker, got, w)
		}
	}
	if got := fmt.Sprint(out.Tickers()); got != "[AAA BBB CCC]" {
		t.Fatalf("ranking must not reorder the table, got %s", got)
	}
}

func TestRank_Bijection(t *testing.T) {
	tbl := Rank(randomTable(120, 7))
	n := len(tbl)

	for _, tc := range []struct {
		name string
		rank func(i int) int
	}{
		{"ev/ebit", func(i int) int { return tbl[i].EVToEBITRank }},
		{"roic", func(i int) int { return tbl[i].ROICRank }},
		{"magic", func(i int) int { return tbl[i].MagicRank }},
	} {
		seen := make(map[int]bool, n)
		for i := range tbl {
			r := tc.rank(i)
			if r < 1 || r > n || seen[r] {
				t.Fatalf("%s rank %d out of range or duplicated", tc.name, r)
			}
			seen[r] = true
		}
	}

	for _, c := range tbl {
		if c.MagicScore != c.EVToEBITRank+c.ROICRank {
			t.Fatalf("%s: score %d != %d+%d", c.Ticker, c.MagicScore, c.EVToEBITRank, c.ROICRank)
		}
		if c.EVToEBITRank == 1 {
			for _, o := range tbl {
				if o.EVToEBIT < c.EVToEBIT {
					t.Fatalf("rank 1 EV/EBIT %v is not the minimum (%v)", c.EVToEBIT, o.EVToEBIT)
				}
			}
		}
		if c.ROICRank == 1 {
			for _, o := range tbl {
				if o.ROIC > c.ROIC {
					t.Fatalf("rank 1 ROIC %v is not the maximum (%v)", c.ROIC, o.ROIC)
				}
			}
		}
	}
}

func TestRankMagic_StableTieBreak(t *testing.T) {
	tbl := Rank(randomTable(80, 11))
	sorted := SortByMagicRank(tbl)

	pos := map[string]int{}
	for i, c := range tbl {
		pos[c.Ticker] = i
	}
	for i := 1; i < len(sorted); i++ {
		prev, cur := sorted[i-1], sorted[i]
		if prev.MagicScore > cur.MagicScore {
			t.Fatalf("magic rank not ascending by score at %d", i)
		}
		if prev.MagicScore == cur.MagicScore && pos[prev.Ticker] > pos[cur.Ticker] {
			t.Fatalf("tie between %s and %s not broken by table order", prev.Ticker, cur.Ticker)
		}
	}
}

func TestRank_Idempotent(t *testing.T) {
	first := Rank(randomTable(60, 3))

	for name, again := range map[string]Table{
		"same order":      Rank(first),
		"sorted by magic": Rank(SortByMagicRank(first)),
	} {
		byTicker := map[string][3]int{}
		for _, c := range again {
			byTicker[c.Ticker] = [3]int{c.EVToEBITRank, c.ROICRank, c.MagicRank}
		}
		for _, c := range first {
			if byTicker[c.Ticker] != [3]int{c.EVToEBITRank, c.ROICRank, c.MagicRank} {
				t.Fatalf("%s: ranks changed for %s", name, c.Ticker)
			}
		}
	}
}

func TestRank_Empty(t *testing.T) {
	if out := Rank(Table{}); len(out) != 0 {
		t.Fatalf("expected empty table")
	}
}
