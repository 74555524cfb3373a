package postgres

import (
	"context"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/cyklop/vb-liga-manager-sub000/internal/domain/team"
	"github.com/cyklop/vb-liga-manager-sub000/internal/platform/resilience"
)

const selectTeamColumns = `
SELECT id, public_id, league_public_id, name, availability, created_at, updated_at, deleted_at
FROM teams`

type TeamRepository struct {
	db    *sqlx.DB
	guard guard
}

func NewTeamRepository(db *sqlx.DB, breaker *resilience.CircuitBreaker) *TeamRepository {
	return &TeamRepository{db: db, guard: guard{breaker: breaker}}
}

// ListByLeague returns the roster in registration order.
func (r *TeamRepository) ListByLeague(ctx context.Context, leagueID string) ([]team.Team, error) {
	var rows []teamTableModel
	query := selectTeamColumns + ` WHERE league_public_id = $1 AND deleted_at IS NULL ORDER BY id`
	err := r.guard.run(func() error {
		return r.db.SelectContext(ctx, &rows, query, leagueID)
	})
	if err != nil {
		return nil, crerr.Wrapf(err, "select teams of league %s", leagueID)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *TeamRepository) GetByID(ctx context.Context, leagueID, teamID string) (team.Team, bool, error) {
	var row teamTableModel
	query := selectTeamColumns + ` WHERE league_public_id = $1 AND public_id = $2 AND deleted_at IS NULL`
	err := r.guard.run(func() error {
		return r.db.GetContext(ctx, &row, query, leagueID, teamID)
	})
	if err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, crerr.Wrapf(err, "get team %s", teamID)
	}

	return row.toDomain(), true, nil
}
