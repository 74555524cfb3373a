package postgres

import (
	"database/sql"
	"time"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/cyklop/vb-liga-manager-sub000/internal/domain/fixture"
	"github.com/cyklop/vb-liga-manager-sub000/internal/domain/result"
)

type fixtureTableModel struct {
	ID            int64          `db:"id"`
	PublicID      string         `db:"public_id"`
	LeagueID      string         `db:"league_public_id"`
	Round         int            `db:"round"`
	DisplayOrder  int            `db:"display_order"`
	HomeTeamID    string         `db:"home_team_public_id"`
	AwayTeamID    string         `db:"away_team_public_id"`
	SuggestedTime string         `db:"suggested_time"`
	Result        sql.NullString `db:"result"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

// resultDocument is the JSONB layout of fixtures.result.
type resultDocument struct {
	SetsHome       int               `json:"sets_home"`
	SetsAway       int               `json:"sets_away"`
	BallsHome      *int              `json:"balls_home,omitempty"`
	BallsAway      *int              `json:"balls_away,omitempty"`
	Sets           []result.SetScore `json:"sets,omitempty"`
	Decided        bool              `json:"decided"`
	PointsHome     int               `json:"points_home"`
	PointsAway     int               `json:"points_away"`
	HasPlaceholder bool              `json:"has_placeholder,omitempty"`
}

func (m fixtureTableModel) toDomain() (fixture.Fixture, error) {
	res, err := decodeResult(m.Result)
	if err != nil {
		return fixture.Fixture{}, crerr.Wrapf(err, "fixture %s", m.PublicID)
	}

	return fixture.Fixture{
		ID:            m.PublicID,
		LeagueID:      m.LeagueID,
		Round:         m.Round,
		Order:         m.DisplayOrder,
		HomeTeamID:    m.HomeTeamID,
		AwayTeamID:    m.AwayTeamID,
		SuggestedTime: m.SuggestedTime,
		Result:        res,
	}, nil
}

func encodeResult(res *result.MatchResult) (sql.NullString, error) {
	if res == nil {
		return sql.NullString{}, nil
	}

	encoded, err := sonic.Marshal(resultDocument{
		SetsHome:       res.SetsHome,
		SetsAway:       res.SetsAway,
		BallsHome:      res.BallsHome,
		BallsAway:      res.BallsAway,
		Sets:           res.Sets,
		Decided:        res.Decided,
		PointsHome:     res.PointsHome,
		PointsAway:     res.PointsAway,
		HasPlaceholder: res.HasPlaceholder,
	})
	if err != nil {
		return sql.NullString{}, crerr.Wrap(err, "encode match result")
	}

	return sql.NullString{String: string(encoded), Valid: true}, nil
}

func decodeResult(raw sql.NullString) (*result.MatchResult, error) {
	if !raw.Valid || raw.String == "" || raw.String == "null" {
		return nil, nil
	}

	var doc resultDocument
	if err := sonic.UnmarshalString(raw.String, &doc); err != nil {
		return nil, crerr.Wrap(err, "decode match result")
	}

	return &result.MatchResult{
		SetsHome:       doc.SetsHome,
		SetsAway:       doc.SetsAway,
		BallsHome:      doc.BallsHome,
		BallsAway:      doc.BallsAway,
		Sets:           doc.Sets,
		Decided:        doc.Decided,
		PointsHome:     doc.PointsHome,
		PointsAway:     doc.PointsAway,
		HasPlaceholder: doc.HasPlaceholder,
	}, nil
}
