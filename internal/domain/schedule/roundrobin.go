package schedule

import (
	"errors"
	"fmt"

	"github.com/cyklop/vb-liga-manager-sub000/internal/domain/fixture"
	"github.com/cyklop/vb-liga-manager-sub000/internal/domain/team"
)

var ErrInvalidInput = errors.New("invalid schedule input")

const minTeams = 2

// slot is one position in the rotation; a bye slot pads odd rosters.
type slot struct {
	team  team.Team
	isBye bool
}

// Generate builds a round-robin fixture list with the circle method.
//
// Slot 0 stays fixed while the other slots rotate one step per round. The fixed slot plays the
// first rotating slot and is at home in odd-numbered rounds (round index even); the remaining
// slots pair from the outside in, and the earlier slot of pair i is at home when i and the round
// index share parity. Pairs involving the bye are dropped. With hasReturnMatches every first-leg
// fixture is mirrored into a second leg whose rounds continue after the first.
//
// Fixture ids are left empty for the repository to assign.
func Generate(teams []team.Team, hasReturnMatches bool) ([]fixture.Fixture, error) {
	if len(teams) < minTeams {
		return nil, fmt.Errorf("%w: at least %d teams required, got %d", ErrInvalidInput, minTeams, len(teams))
	}

	seen := make(map[string]struct{}, len(teams))
	slots := make([]slot, 0, len(teams)+1)
	for _, item := range teams {
		if item.ID == "" {
			return nil, fmt.Errorf("%w: team id is required", ErrInvalidInput)
		}
		if _, exists := seen[item.ID]; exists {
			return nil, fmt.Errorf("%w: duplicate team %s", ErrInvalidInput, item.ID)
		}
		seen[item.ID] = struct{}{}
		slots = append(slots, slot{team: item})
	}
	if len(slots)%2 == 1 {
		slots = append(slots, slot{isBye: true})
	}

	n := len(slots)
	rounds := n - 1
	fixed := slots[0]
	rotating := append([]slot(nil), slots[1:]...)

	firstLeg := make([]fixture.Fixture, 0, rounds*n/2)
	for r := 0; r < rounds; r++ {
		if r > 0 {
			rotate(rotating)
		}

		home, away := fixed, rotating[0]
		if r%2 == 1 {
			home, away = away, home
		}
		firstLeg = appendPairing(firstLeg, r+1, home, away)

		for i := 1; i < n/2; i++ {
			home, away := rotating[i], rotating[n-1-i]
			if i%2 != r%2 {
				home, away = away, home
			}
			firstLeg = appendPairing(firstLeg, r+1, home, away)
		}
	}

	out := firstLeg
	if hasReturnMatches {
		out = make([]fixture.Fixture, 0, 2*len(firstLeg))
		out = append(out, firstLeg...)
		for _, item := range firstLeg {
			out = append(out, fixture.Fixture{
				Round:      item.Round + rounds,
				HomeTeamID: item.AwayTeamID,
				AwayTeamID: item.HomeTeamID,
			})
		}
	}

	availability := make(map[string]string, len(teams))
	for _, item := range teams {
		availability[item.ID] = item.Availability
	}
	for i := range out {
		out[i].Order = i + 1
		out[i].SuggestedTime = SuggestKickoff(availability[out[i].HomeTeamID])
	}

	return out, nil
}

// Rounds returns how many rounds one leg needs for teamCount teams.
func Rounds(teamCount int) int {
	if teamCount < minTeams {
		return 0
	}
	if teamCount%2 == 1 {
		return teamCount
	}
	return teamCount - 1
}

func appendPairing(out []fixture.Fixture, round int, home, away slot) []fixture.Fixture {
	if home.isBye || away.isBye {
		return out
	}
	return append(out, fixture.Fixture{
		LeagueID:   home.team.LeagueID,
		Round:      round,
		HomeTeamID: home.team.ID,
		AwayTeamID: away.team.ID,
	})
}

// rotate moves the last slot to the front.
func rotate(slots []slot) {
	last := slots[len(slots)-1]
	copy(slots[1:], slots[:len(slots)-1])
	slots[0] = last
}
