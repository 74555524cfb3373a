package postgres

import (
	"time"

	"github.com/cyklop/vb-liga-manager-sub000/internal/domain/league"
)

type leagueTableModel struct {
	ID               int64      `db:"id"`
	PublicID         string     `db:"public_id"`
	Name             string     `db:"name"`
	Season           string     `db:"season"`
	ScoringMode      string     `db:"scoring_mode"`
	SetsToWin        int        `db:"sets_to_win"`
	PointsWin30      int        `db:"points_win_3_0"`
	PointsWin31      int        `db:"points_win_3_1"`
	PointsWin32      int        `db:"points_win_3_2"`
	PointsLoss32     int        `db:"points_loss_2_3"`
	HasReturnMatches bool       `db:"has_return_matches"`
	CreatedAt        time.Time  `db:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at"`
	DeletedAt        *time.Time `db:"deleted_at"`
}

func (m leagueTableModel) toDomain() league.League {
	return league.League{
		ID:     m.PublicID,
		Name:   m.Name,
		Season: m.Season,
		Rules: league.Rules{
			ScoringMode:      league.ScoringMode(m.ScoringMode),
			SetsToWin:        m.SetsToWin,
			PointsWin30:      m.PointsWin30,
			PointsWin31:      m.PointsWin31,
			PointsWin32:      m.PointsWin32,
			PointsLoss32:     m.PointsLoss32,
			HasReturnMatches: m.HasReturnMatches,
		},
	}
}
