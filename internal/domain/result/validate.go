package result

import "github.com/cyklop/vb-liga-manager-sub000/internal/domain/league"

const (
	regularSetPoints  = 25
	decidingSetPoints = 15
	minimumLead       = 2
)

// Validate checks a submitted score against the league rules and derives the stored result.
// Every rejection is a *ScoreError wrapping ErrInvalidScore.
func Validate(raw RawScore, rules league.Rules) (MatchResult, error) {
	if rules.SetsToWin != 2 && rules.SetsToWin != 3 {
		return MatchResult{}, fieldError("setsToWin", "must be 2 or 3, got %d", rules.SetsToWin)
	}

	switch rules.ScoringMode {
	case league.ScoringModeAggregate:
		return validateAggregate(raw, rules)
	case league.ScoringModeSetScores:
		return validateSets(raw, rules)
	default:
		return MatchResult{}, fieldError("scoringMode", "unsupported scoring mode %q", rules.ScoringMode)
	}
}

func validateAggregate(raw RawScore, rules league.Rules) (MatchResult, error) {
	if raw.HomeSets == nil {
		return MatchResult{}, fieldError("homeSets", "is required")
	}
	if raw.AwaySets == nil {
		return MatchResult{}, fieldError("awaySets", "is required")
	}
	home, away := *raw.HomeSets, *raw.AwaySets
	if home < 0 {
		return MatchResult{}, fieldError("homeSets", "must not be negative")
	}
	if away < 0 {
		return MatchResult{}, fieldError("awaySets", "must not be negative")
	}

	homeWins := home == rules.SetsToWin && away < rules.SetsToWin
	awayWins := away == rules.SetsToWin && home < rules.SetsToWin
	if !homeWins && !awayWins {
		return MatchResult{}, fieldError("score", "exactly one side must win %d sets, got %d:%d", rules.SetsToWin, home, away)
	}

	if raw.BallsHome != nil && *raw.BallsHome < 0 {
		return MatchResult{}, fieldError("ballsHome", "must not be negative")
	}
	if raw.BallsAway != nil && *raw.BallsAway < 0 {
		return MatchResult{}, fieldError("ballsAway", "must not be negative")
	}

	out := MatchResult{
		SetsHome:  home,
		SetsAway:  away,
		BallsHome: copyInt(raw.BallsHome),
		BallsAway: copyInt(raw.BallsAway),
		Decided:   true,
	}
	out.PointsHome, out.PointsAway = LeaguePoints(rules, home, away)
	return out, nil
}

func validateSets(raw RawScore, rules league.Rules) (MatchResult, error) {
	maxSets := rules.MaxSets()
	if len(raw.Sets) > maxSets {
		return MatchResult{}, fieldError("sets", "at most %d sets allowed, got %d", maxSets, len(raw.Sets))
	}

	out := MatchResult{Sets: make([]SetScore, 0, len(raw.Sets))}
	gap := false
	for i, set := range raw.Sets {
		setNumber := i + 1

		if set.Home == nil && set.Away == nil {
			gap = true
			out.Sets = append(out.Sets, SetScore{})
			continue
		}
		if set.Home == nil || set.Away == nil {
			return MatchResult{}, setError(setNumber, "both scores are required")
		}

		home, away := *set.Home, *set.Away
		if home < 0 || away < 0 {
			return MatchResult{}, setError(setNumber, "scores must not be negative")
		}
		if home == 0 && away == 0 {
			gap = true
			out.HasPlaceholder = true
			out.Sets = append(out.Sets, SetScore{Home: IntPtr(0), Away: IntPtr(0)})
			continue
		}
		if gap {
			return MatchResult{}, setError(setNumber, "follows a set that was not played")
		}
		if out.SetsHome >= rules.SetsToWin || out.SetsAway >= rules.SetsToWin {
			return MatchResult{}, setError(setNumber, "match already decided")
		}

		minPoints := regularSetPoints
		if setNumber == maxSets {
			minPoints = decidingSetPoints
		}
		if err := checkSet(setNumber, home, away, minPoints); err != nil {
			return MatchResult{}, err
		}

		if home > away {
			out.SetsHome++
		} else {
			out.SetsAway++
		}
		out.Sets = append(out.Sets, SetScore{Home: IntPtr(home), Away: IntPtr(away)})
	}

	out.Sets = trimUnentered(out.Sets)
	out.Decided = out.SetsHome >= rules.SetsToWin || out.SetsAway >= rules.SetsToWin
	if out.Decided {
		out.PointsHome, out.PointsAway = LeaguePoints(rules, out.SetsHome, out.SetsAway)
	}
	return out, nil
}

func checkSet(setNumber, home, away, minPoints int) error {
	if home == away {
		return setError(setNumber, "a set cannot end in a tie (%d:%d)", home, away)
	}

	winner, loser := home, away
	if away > home {
		winner, loser = away, home
	}
	lead := winner - loser

	switch {
	case winner < minPoints:
		return setError(setNumber, "winning side must reach at least %d points", minPoints)
	case winner == minPoints && lead < minimumLead:
		return setError(setNumber, "winning side needs a lead of at least %d points", minimumLead)
	case winner > minPoints && lead != minimumLead:
		return setError(setNumber, "a set beyond %d points must be won by exactly %d", minPoints, minimumLead)
	}
	return nil
}

// trimUnentered drops trailing sets without any value.
func trimUnentered(sets []SetScore) []SetScore {
	end := len(sets)
	for end > 0 && sets[end-1].Home == nil && sets[end-1].Away == nil {
		end--
	}
	return sets[:end]
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	return IntPtr(*v)
}
