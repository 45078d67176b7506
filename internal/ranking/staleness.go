package ranking

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/guttosm/b3rank/internal/domain/models"
	"github.com/guttosm/b3rank/internal/logger"
)

// Cutoff returns the oldest acceptable last-quote date (exclusive) for a run
// at now: the first day of the current month, or December 1st of the previous
// year when now is in January.
func Cutoff(now time.Time) models.Date {
	if now.Month() == time.January {
		return models.NewDate(now.Year()-1, time.December, 1)
	}
	return models.NewDate(now.Year(), now.Month(), 1)
}

// ParseQuoteDate parses the detail page's DD/MM/YYYY date.
func ParseQuoteDate(s string) (models.Date, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 3 {
		return models.Date{}, fmt.Errorf("invalid quote date %q: expected DD/MM/YYYY", s)
	}

	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return models.Date{}, fmt.Errorf("invalid quote date %q: %w", s, err)
		}
		nums[i] = n
	}
	day, month, year := nums[0], nums[1], nums[2]

	d := models.NewDate(year, time.Month(month), day)
	// time.Date normalizes out-of-range values (31/02 → 03/03); reject those.
	if d.Day() != day || int(d.Month()) != month || d.Year() != year {
		return models.Date{}, fmt.Errorf("invalid quote date %q: out of range", s)
	}
	return d, nil
}

// RemoveStale parses each row's last-quote date and keeps the rows quoted
// strictly after Cutoff(now). A row whose date cannot be parsed is dropped
// and logged; it never aborts the run.
//
// Rows that already carry a LastQuoteDate and no raw LastQuote (e.g. reloaded
// from storage) are filtered on that date.
func RemoveStale(t Table, now time.Time) Table {
	cutoff := Cutoff(now)
	out := make(Table, 0, len(t))
	for _, c := range t {
		if c.LastQuote != "" || c.LastQuoteDate.IsZero() {
			d, err := ParseQuoteDate(c.LastQuote)
			if err != nil {
				logger.L().Warn().Str("ticker", c.Ticker).Err(err).Msg("row dropped: bad quote date")
				continue
			}
			c.LastQuoteDate = d
		}
		if !c.LastQuoteDate.After(cutoff.Time) {
			continue
		}
		out = append(out, c)
	}
	return out
}
