package ingestion

import "time"

// fixedHolidays are B3 closures that fall on the same month-day every year.
var fixedHolidays = map[string]struct{}{
	"01-01": {}, // Confraternização Universal
	"04-21": {}, // Tiradentes
	"05-01": {}, // Dia do Trabalho
	"09-07": {}, // Independência
	"10-12": {}, // Nossa Senhora Aparecida
	"11-02": {}, // Finados
	"11-15": {}, // Proclamação da República
	"12-24": {}, // Véspera de Natal (no trading session)
	"12-25": {}, // Natal
	"12-31": {}, // Último dia do ano (no trading session)
}

// blackConsciousnessFrom is the first year Nov 20 became a national holiday.
const blackConsciousnessFrom = 2024

// SnapshotDay returns the B3 business day a run started at now belongs to,
// as a UTC midnight so it compares cleanly against DATE columns.
func SnapshotDay(now time.Time) time.Time {
	d := LastNBusinessDays(1, now)[0]
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}

// LastNBusinessDays returns the last n B3 business days (most recent first),
// starting at from's calendar day.
func LastNBusinessDays(n int, from time.Time) []time.Time {
	out := make([]time.Time, 0, n)
	d := truncateToDate(from)

	for len(out) < n {
		if IsBusinessDay(d) {
			out = append(out, d)
		}
		d = d.AddDate(0, 0, -1)
	}
	return out
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// IsBusinessDay reports whether B3 holds a regular session on d.
func IsBusinessDay(d time.Time) bool {
	if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return false
	}

	key := d.Format("01-02")
	if _, ok := fixedHolidays[key]; ok {
		return false
	}
	if key == "11-20" && d.Year() >= blackConsciousnessFrom {
		return false
	}

	easter := easterSunday(d.Year())
	y, m, day := d.Date()
	for _, offset := range []int{-48, -47, -2, 60} { // carnival mon/tue, good friday, corpus christi
		h := easter.AddDate(0, 0, offset)
		if h.Year() == y && h.Month() == m && h.Day() == day {
			return false
		}
	}
	return true
}

// easterSunday returns the date of Easter Sunday for a given year
// (Meeus/Jones/Butcher algorithm).
func easterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := ((h + l - 7*m + 114) % 31) + 1

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}
