package result

import "github.com/cyklop/vb-liga-manager-sub000/internal/domain/league"

// Award returns the league points of winner and loser, given how many sets the loser took.
func Award(rules league.Rules, loserSets int) (winner, loser int) {
	switch loserSets {
	case 0:
		return rules.PointsWin30, 0
	case 1:
		return rules.PointsWin31, 0
	case 2:
		return rules.PointsWin32, rules.PointsLoss32
	default:
		return 0, 0
	}
}

// LeaguePoints maps a set count to league points for home and away. Level set counts award nothing.
func LeaguePoints(rules league.Rules, setsHome, setsAway int) (home, away int) {
	switch {
	case setsHome > setsAway:
		home, away = Award(rules, setsAway)
	case setsAway > setsHome:
		away, home = Award(rules, setsHome)
	}
	return home, away
}
