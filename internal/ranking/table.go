package ranking

import "github.com/guttosm/b3rank/internal/domain/models"

// Table is the working set of company rows. Stages never mutate the table
// they receive; they return a copy.
type Table []models.Company

// Clone returns a shallow copy of t. Company has no reference fields, so the
// copy is independent of the original.
func (t Table) Clone() Table {
	if t == nil {
		return nil
	}
	out := make(Table, len(t))
	copy(out, t)
	return out
}

// Filter returns the rows for which keep reports true, preserving order.
func (t Table) Filter(keep func(models.Company) bool) Table {
	out := make(Table, 0, len(t))
	for _, c := range t {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}

// Tickers lists the ticker of every row in table order.
func (t Table) Tickers() []string {
	out := make([]string, len(t))
	for i, c := range t {
		out[i] = c.Ticker
	}
	return out
}
