package httpapi

import (
	"github.com/cyklop/vb-liga-manager-sub000/internal/domain/fixture"
	"github.com/cyklop/vb-liga-manager-sub000/internal/domain/league"
	"github.com/cyklop/vb-liga-manager-sub000/internal/domain/leaguestanding"
	"github.com/cyklop/vb-liga-manager-sub000/internal/domain/result"
	"github.com/cyklop/vb-liga-manager-sub000/internal/usecase"
)

type generateScheduleRequest struct {
	Force bool `json:"force"`
}

type reorderFixturesRequest struct {
	FixtureIDs []string `json:"fixture_ids" validate:"required,min=1,dive,required"`
}

type setScoreRequest struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}

// scoreRequest carries either the aggregate fields or the set list; the league's scoring mode
// decides which one is read.
type scoreRequest struct {
	HomeSets  *int              `json:"home_sets"`
	AwaySets  *int              `json:"away_sets"`
	BallsHome *int              `json:"balls_home"`
	BallsAway *int              `json:"balls_away"`
	Sets      []setScoreRequest `json:"sets"`
}

type importResultItemRequest struct {
	FixtureID string `json:"fixture_id" validate:"required"`
	scoreRequest
}

type importResultsRequest struct {
	Results []importResultItemRequest `json:"results" validate:"required,min=1,max=500,dive"`
}

func (r scoreRequest) toRawScore() result.RawScore {
	raw := result.RawScore{
		HomeSets:  r.HomeSets,
		AwaySets:  r.AwaySets,
		BallsHome: r.BallsHome,
		BallsAway: r.BallsAway,
	}
	if len(r.Sets) > 0 {
		raw.Sets = make([]result.SetScore, 0, len(r.Sets))
		for _, set := range r.Sets {
			raw.Sets = append(raw.Sets, result.SetScore{Home: set.Home, Away: set.Away})
		}
	}
	return raw
}

type rulesDTO struct {
	ScoringMode      string `json:"scoring_mode"`
	SetsToWin        int    `json:"sets_to_win"`
	MaxSets          int    `json:"max_sets"`
	PointsWin30      int    `json:"points_win_3_0"`
	PointsWin31      int    `json:"points_win_3_1"`
	PointsWin32      int    `json:"points_win_3_2"`
	PointsLoss32     int    `json:"points_loss_2_3"`
	HasReturnMatches bool   `json:"has_return_matches"`
}

type leagueDTO struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Season string   `json:"season,omitempty"`
	Rules  rulesDTO `json:"rules"`
}

type teamDTO struct {
	ID           string `json:"id"`
	LeagueID     string `json:"league_id"`
	Name         string `json:"name"`
	Availability string `json:"availability,omitempty"`
}

type setScoreDTO struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}

type resultDTO struct {
	SetsHome       int           `json:"sets_home"`
	SetsAway       int           `json:"sets_away"`
	BallsHome      int           `json:"balls_home"`
	BallsAway      int           `json:"balls_away"`
	Sets           []setScoreDTO `json:"sets,omitempty"`
	Decided        bool          `json:"decided"`
	PointsHome     int           `json:"points_home"`
	PointsAway     int           `json:"points_away"`
	HasPlaceholder bool          `json:"has_placeholder,omitempty"`
}

type fixtureDTO struct {
	ID            string     `json:"id"`
	LeagueID      string     `json:"league_id"`
	Round         int        `json:"round"`
	Order         int        `json:"order"`
	HomeTeamID    string     `json:"home_team_id"`
	HomeTeamName  string     `json:"home_team_name,omitempty"`
	AwayTeamID    string     `json:"away_team_id"`
	AwayTeamName  string     `json:"away_team_name,omitempty"`
	SuggestedTime string     `json:"suggested_time,omitempty"`
	Result        *resultDTO `json:"result,omitempty"`
}

type leagueStandingDTO struct {
	Position       int    `json:"position"`
	TeamID         string `json:"team_id"`
	TeamName       string `json:"team_name"`
	Played         int    `json:"played"`
	Won            int    `json:"won"`
	Lost           int    `json:"lost"`
	Points         int    `json:"points"`
	SetsWon        int    `json:"sets_won"`
	SetsLost       int    `json:"sets_lost"`
	SetDifference  int    `json:"set_difference"`
	SetQuotient    string `json:"set_quotient"`
	BallsWon       int    `json:"balls_won"`
	BallsLost      int    `json:"balls_lost"`
	BallDifference int    `json:"ball_difference"`
	BallQuotient   string `json:"ball_quotient"`
}

type leagueTableDTO struct {
	League    leagueDTO           `json:"league"`
	Standings []leagueStandingDTO `json:"standings"`
}

type importItemDTO struct {
	Index     int        `json:"index"`
	FixtureID string     `json:"fixture_id"`
	Status    string     `json:"status"`
	Message   string     `json:"message,omitempty"`
	Result    *resultDTO `json:"result,omitempty"`
}

type importReportDTO struct {
	Total    int             `json:"total"`
	Stored   int             `json:"stored"`
	Rejected int             `json:"rejected"`
	Failed   int             `json:"failed"`
	Items    []importItemDTO `json:"items"`
}

func leagueToDTO(v league.League) leagueDTO {
	return leagueDTO{
		ID:     v.ID,
		Name:   v.Name,
		Season: v.Season,
		Rules: rulesDTO{
			ScoringMode:      string(v.Rules.ScoringMode),
			SetsToWin:        v.Rules.SetsToWin,
			MaxSets:          v.Rules.MaxSets(),
			PointsWin30:      v.Rules.PointsWin30,
			PointsWin31:      v.Rules.PointsWin31,
			PointsWin32:      v.Rules.PointsWin32,
			PointsLoss32:     v.Rules.PointsLoss32,
			HasReturnMatches: v.Rules.HasReturnMatches,
		},
	}
}

func fixtureToDTO(v fixture.Fixture, teamNameByID map[string]string) fixtureDTO {
	return fixtureDTO{
		ID:            v.ID,
		LeagueID:      v.LeagueID,
		Round:         v.Round,
		Order:         v.Order,
		HomeTeamID:    v.HomeTeamID,
		HomeTeamName:  teamNameByID[v.HomeTeamID],
		AwayTeamID:    v.AwayTeamID,
		AwayTeamName:  teamNameByID[v.AwayTeamID],
		SuggestedTime: v.SuggestedTime,
		Result:        resultToDTO(v.Result),
	}
}

func resultToDTO(v *result.MatchResult) *resultDTO {
	if v == nil {
		return nil
	}

	ballsHome, ballsAway := v.BallTotals()
	out := &resultDTO{
		SetsHome:       v.SetsHome,
		SetsAway:       v.SetsAway,
		BallsHome:      ballsHome,
		BallsAway:      ballsAway,
		Decided:        v.Decided,
		PointsHome:     v.PointsHome,
		PointsAway:     v.PointsAway,
		HasPlaceholder: v.HasPlaceholder,
	}
	for _, set := range v.Sets {
		out.Sets = append(out.Sets, setScoreDTO{Home: set.Home, Away: set.Away})
	}
	return out
}

func standingsToDTO(items []leaguestanding.Standing) []leagueStandingDTO {
	out := make([]leagueStandingDTO, 0, len(items))
	for _, item := range items {
		out = append(out, leagueStandingDTO{
			Position:       item.Position,
			TeamID:         item.TeamID,
			TeamName:       item.TeamName,
			Played:         item.Played,
			Won:            item.Won,
			Lost:           item.Lost,
			Points:         item.Points,
			SetsWon:        item.SetsWon,
			SetsLost:       item.SetsLost,
			SetDifference:  item.SetDifference,
			SetQuotient:    item.SetQuotient.String(),
			BallsWon:       item.BallsWon,
			BallsLost:      item.BallsLost,
			BallDifference: item.BallDifference,
			BallQuotient:   item.BallQuotient.String(),
		})
	}
	return out
}

func importReportToDTO(v usecase.ImportReport) importReportDTO {
	out := importReportDTO{
		Total:    v.Total,
		Stored:   v.Stored,
		Rejected: v.Rejected,
		Failed:   v.Failed,
		Items:    make([]importItemDTO, 0, len(v.Items)),
	}
	for _, item := range v.Items {
		out.Items = append(out.Items, importItemDTO{
			Index:     item.Index,
			FixtureID: item.FixtureID,
			Status:    item.Status,
			Message:   item.Message,
			Result:    resultToDTO(item.Result),
		})
	}
	return out
}
