package postgres

import (
	"time"

	"github.com/cyklop/vb-liga-manager-sub000/internal/domain/team"
)

type teamTableModel struct {
	ID           int64      `db:"id"`
	PublicID     string     `db:"public_id"`
	LeagueID     string     `db:"league_public_id"`
	Name         string     `db:"name"`
	Availability string     `db:"availability"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
	DeletedAt    *time.Time `db:"deleted_at"`
}

func (m teamTableModel) toDomain() team.Team {
	return team.Team{
		ID:           m.PublicID,
		LeagueID:     m.LeagueID,
		Name:         m.Name,
		Availability: m.Availability,
	}
}
