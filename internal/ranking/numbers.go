package ranking

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrDivisionByZero is returned by Divide when the divisor is zero.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrNotFinite is returned by Divide when an operand or the result is NaN or ±Inf.
	ErrNotFinite = errors.New("non-finite operand or result")
)

// Divide returns a/b, or an error when the quotient is not a usable number.
//
// Derived fields never surface these errors: stages pass the result through
// ZeroOnError, so a failed division reads as 0 in the table. Keeping the error
// here lets tests tell a fallback zero from a computed one.
func Divide(a, b float64) (float64, error) {
	if !isFinite(a) || !isFinite(b) {
		return 0, ErrNotFinite
	}
	if b == 0 {
		return 0, ErrDivisionByZero
	}
	q := a / b
	if !isFinite(q) {
		return 0, ErrNotFinite
	}
	return q, nil
}

// ZeroOnError maps a failed computation to 0.
func ZeroOnError(v float64, err error) float64 {
	if err != nil || !isFinite(v) {
		return 0
	}
	return v
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ParseNumber parses a pt-BR formatted number ("1.234,56") into a float64.
// Thousands separators are dropped and the decimal comma becomes a point.
// NaN and infinities are rejected.
func ParseNumber(s string) (float64, error) {
	clean := strings.TrimSpace(s)
	clean = strings.ReplaceAll(clean, ".", "")
	clean = strings.ReplaceAll(clean, ",", ".")
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q: %w", s, err)
	}
	if !isFinite(v) {
		return 0, fmt.Errorf("invalid number %q: %w", s, ErrNotFinite)
	}
	return v, nil
}

// ParsePercent parses a pt-BR percentage ("12,3%") into a plain number (12.3).
func ParsePercent(s string) (float64, error) {
	return ParseNumber(strings.TrimSuffix(strings.TrimSpace(s), "%"))
}

// errNoTarget marks an estimate with no feasible value inside the model.
var errNoTarget = errors.New("no feasible target")
