package leaguestanding

import (
	"context"
	"errors"
	"sort"

	"github.com/cyklop/vb-liga-manager-sub000/internal/domain/league"
	"github.com/cyklop/vb-liga-manager-sub000/internal/domain/result"
	"github.com/cyklop/vb-liga-manager-sub000/internal/domain/team"
	"github.com/cyklop/vb-liga-manager-sub000/internal/platform/logging"
)

var ErrUnknownTeamReference = errors.New("unknown team reference")

// Outcome is one decided match fed into the table.
type Outcome struct {
	FixtureID  string
	HomeTeamID string
	AwayTeamID string
	Result     result.MatchResult
}

// Calculator builds league tables. It holds no state besides its logger and is safe for concurrent use.
type Calculator struct {
	logger *logging.Logger
}

func NewCalculator(logger *logging.Logger) *Calculator {
	if logger == nil {
		logger = logging.Default()
	}
	return &Calculator{logger: logger}
}

// Compute returns one row per team, ranked by points, wins, set difference, set quotient,
// ball difference, ball quotient and finally team name. Outcomes naming a team outside the
// roster are logged and skipped.
func (c *Calculator) Compute(ctx context.Context, teams []team.Team, rules league.Rules, outcomes []Outcome) []Standing {
	rows := make([]Standing, len(teams))
	indexByTeam := make(map[string]int, len(teams))
	for i, item := range teams {
		rows[i] = Standing{
			LeagueID: item.LeagueID,
			TeamID:   item.ID,
			TeamName: item.Name,
		}
		indexByTeam[item.ID] = i
	}

	for _, outcome := range outcomes {
		homeIdx, homeOK := indexByTeam[outcome.HomeTeamID]
		awayIdx, awayOK := indexByTeam[outcome.AwayTeamID]
		if !homeOK || !awayOK {
			unknown := outcome.HomeTeamID
			if homeOK {
				unknown = outcome.AwayTeamID
			}
			c.logger.WarnContext(ctx, "skip outcome referencing team outside roster",
				"fixture_id", outcome.FixtureID,
				"team_id", unknown,
				"error", ErrUnknownTeamReference,
			)
			continue
		}

		res := outcome.Result
		ballsHome, ballsAway := res.BallTotals()
		pointsHome, pointsAway := result.LeaguePoints(rules, res.SetsHome, res.SetsAway)

		home := &rows[homeIdx]
		away := &rows[awayIdx]
		home.Played++
		away.Played++
		home.SetsWon += res.SetsHome
		home.SetsLost += res.SetsAway
		away.SetsWon += res.SetsAway
		away.SetsLost += res.SetsHome
		home.BallsWon += ballsHome
		home.BallsLost += ballsAway
		away.BallsWon += ballsAway
		away.BallsLost += ballsHome
		home.Points += pointsHome
		away.Points += pointsAway

		if res.SetsHome > res.SetsAway {
			home.Won++
			away.Lost++
		} else {
			away.Won++
			home.Lost++
		}
	}

	for i := range rows {
		row := &rows[i]
		row.SetDifference = row.SetsWon - row.SetsLost
		row.SetQuotient = NewQuotient(row.SetsWon, row.SetsLost)
		row.BallDifference = row.BallsWon - row.BallsLost
		row.BallQuotient = NewQuotient(row.BallsWon, row.BallsLost)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return ranksAbove(rows[i], rows[j])
	})
	for i := range rows {
		rows[i].Position = i + 1
	}

	return rows
}

// Compute builds a table with the process default logger.
func Compute(ctx context.Context, teams []team.Team, rules league.Rules, outcomes []Outcome) []Standing {
	return NewCalculator(logging.Default()).Compute(ctx, teams, rules, outcomes)
}

func ranksAbove(a, b Standing) bool {
	if a.Points != b.Points {
		return a.Points > b.Points
	}
	if a.Won != b.Won {
		return a.Won > b.Won
	}
	if a.SetDifference != b.SetDifference {
		return a.SetDifference > b.SetDifference
	}
	if cmp := a.SetQuotient.Compare(b.SetQuotient); cmp != 0 {
		return cmp > 0
	}
	if a.BallDifference != b.BallDifference {
		return a.BallDifference > b.BallDifference
	}
	if cmp := a.BallQuotient.Compare(b.BallQuotient); cmp != 0 {
		return cmp > 0
	}
	if a.TeamName != b.TeamName {
		return a.TeamName < b.TeamName
	}
	return a.TeamID < b.TeamID
}
