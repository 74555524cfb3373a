package leaguestanding

import (
	"math"
	"testing"
)

func TestNewQuotient(t *testing.T) {
	t.Parallel()

	cases := []struct {
		won, lost int
		kind      QuotientKind
		value     float64
	}{
		{won: 9, lost: 3, kind: QuotientFinite, value: 3},
		{won: 6, lost: 0, kind: QuotientInfinite},
		{won: 0, lost: 0, kind: QuotientUndefined},
		{won: 0, lost: 4, kind: QuotientFinite, value: 0},
	}

	for _, tc := range cases {
		got := NewQuotient(tc.won, tc.lost)
		if got.Kind != tc.kind {
			t.Fatalf("%d/%d: unexpected kind %d", tc.won, tc.lost, got.Kind)
		}
		if got.Kind != QuotientInfinite && got.Float() != tc.value {
			t.Fatalf("%d/%d: unexpected value %f", tc.won, tc.lost, got.Float())
		}
	}

	if !math.IsInf(NewQuotient(6, 0).Float(), 1) {
		t.Fatalf("expected +Inf float for infinite quotient")
	}
}

func TestQuotientCompare(t *testing.T) {
	inf := NewQuotient(6, 0)
	three := NewQuotient(9, 3)
	undefined := NewQuotient(0, 0)
	zero := NewQuotient(0, 5)

	if inf.Compare(three) != 1 || three.Compare(inf) != -1 {
		t.Fatalf("infinity must rank above finite values")
	}
	if inf.Compare(NewQuotient(1, 0)) != 0 {
		t.Fatalf("infinities must compare equal")
	}
	if undefined.Compare(zero) != 0 {
		t.Fatalf("undefined must rank like zero")
	}
	if three.Compare(NewQuotient(6, 2)) != 0 {
		t.Fatalf("equal ratios must compare equal")
	}
	if zero.Compare(three) != -1 {
		t.Fatalf("expected zero below three")
	}
	if inf.String() != "∞" || three.String() != "3.000" {
		t.Fatalf("unexpected strings: %s %s", inf, three)
	}
}
