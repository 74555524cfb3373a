package leaguestanding

import (
	"math"
	"strconv"
)

type QuotientKind uint8

const (
	// QuotientUndefined is 0 won over 0 lost; it ranks like a finite zero.
	QuotientUndefined QuotientKind = iota
	QuotientFinite
	// QuotientInfinite is a positive count over nothing lost; it ranks above every finite value.
	QuotientInfinite
)

// Quotient is won divided by lost for sets or balls.
type Quotient struct {
	Kind  QuotientKind
	Value float64
}

func NewQuotient(won, lost int) Quotient {
	switch {
	case lost == 0 && won > 0:
		return Quotient{Kind: QuotientInfinite}
	case lost == 0:
		return Quotient{Kind: QuotientUndefined}
	default:
		return Quotient{Kind: QuotientFinite, Value: float64(won) / float64(lost)}
	}
}

func (q Quotient) IsInfinite() bool {
	return q.Kind == QuotientInfinite
}

// Float returns the numeric value, +Inf for an infinite quotient.
func (q Quotient) Float() float64 {
	switch q.Kind {
	case QuotientInfinite:
		return math.Inf(1)
	case QuotientFinite:
		return q.Value
	default:
		return 0
	}
}

// Compare returns -1, 0 or +1 as q ranks below, equal to or above other.
func (q Quotient) Compare(other Quotient) int {
	switch {
	case q.IsInfinite() && other.IsInfinite():
		return 0
	case q.IsInfinite():
		return 1
	case other.IsInfinite():
		return -1
	}

	a, b := q.Float(), other.Float()
	switch {
	case a > b:
		return 1
	case a < b:
		return -1
	default:
		return 0
	}
}

func (q Quotient) String() string {
	if q.IsInfinite() {
		return "∞"
	}
	return strconv.FormatFloat(q.Float(), 'f', 3, 64)
}
