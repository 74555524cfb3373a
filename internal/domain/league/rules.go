package league

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidRules = errors.New("invalid league rules")

// ScoringMode decides how a match result is entered.
type ScoringMode string

const (
	// ScoringModeAggregate records only the final set count, optionally with ball totals.
	ScoringModeAggregate ScoringMode = "AGGREGATE_SCORE"
	// ScoringModeSetScores records every set individually.
	ScoringModeSetScores ScoringMode = "SET_SCORES"
)

func ParseScoringMode(v string) (ScoringMode, error) {
	switch mode := ScoringMode(strings.ToUpper(strings.TrimSpace(v))); mode {
	case ScoringModeAggregate, ScoringModeSetScores:
		return mode, nil
	default:
		return "", fmt.Errorf("%w: unknown scoring mode %q", ErrInvalidRules, v)
	}
}

func (m ScoringMode) Valid() bool {
	return m == ScoringModeAggregate || m == ScoringModeSetScores
}

// Rules stores per-league scoring parameters.
type Rules struct {
	ScoringMode      ScoringMode
	SetsToWin        int
	PointsWin30      int
	PointsWin31      int
	PointsWin32      int
	PointsLoss32     int
	HasReturnMatches bool
}

func DefaultRules() Rules {
	return Rules{
		ScoringMode:  ScoringModeSetScores,
		SetsToWin:    3,
		PointsWin30:  3,
		PointsWin31:  3,
		PointsWin32:  2,
		PointsLoss32: 1,
	}
}

// MaxSets is the longest possible match, e.g. 5 sets for best-of-five.
func (r Rules) MaxSets() int {
	return 2*r.SetsToWin - 1
}

func (r Rules) Validate() error {
	if !r.ScoringMode.Valid() {
		return fmt.Errorf("%w: unknown scoring mode %q", ErrInvalidRules, r.ScoringMode)
	}
	if r.SetsToWin != 2 && r.SetsToWin != 3 {
		return fmt.Errorf("%w: sets to win must be 2 or 3, got %d", ErrInvalidRules, r.SetsToWin)
	}
	for name, points := range map[string]int{
		"win 3-0":  r.PointsWin30,
		"win 3-1":  r.PointsWin31,
		"win 3-2":  r.PointsWin32,
		"loss 2-3": r.PointsLoss32,
	} {
		if points < 0 {
			return fmt.Errorf("%w: points for %s must be >= 0", ErrInvalidRules, name)
		}
	}

	return nil
}
