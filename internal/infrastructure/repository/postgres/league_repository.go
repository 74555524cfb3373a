package postgres

import (
	"context"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/cyklop/vb-liga-manager-sub000/internal/domain/league"
	"github.com/cyklop/vb-liga-manager-sub000/internal/platform/resilience"
)

const selectLeagueColumns = `
SELECT id, public_id, name, season, scoring_mode, sets_to_win,
       points_win_3_0, points_win_3_1, points_win_3_2, points_loss_2_3,
       has_return_matches, created_at, updated_at, deleted_at
FROM leagues`

type LeagueRepository struct {
	db    *sqlx.DB
	guard guard
}

func NewLeagueRepository(db *sqlx.DB, breaker *resilience.CircuitBreaker) *LeagueRepository {
	return &LeagueRepository{db: db, guard: guard{breaker: breaker}}
}

func (r *LeagueRepository) List(ctx context.Context) ([]league.League, error) {
	var rows []leagueTableModel
	query := selectLeagueColumns + ` WHERE deleted_at IS NULL ORDER BY id`
	err := r.guard.run(func() error {
		return r.db.SelectContext(ctx, &rows, query)
	})
	if err != nil {
		return nil, crerr.Wrap(err, "select leagues")
	}

	out := make([]league.League, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *LeagueRepository) GetByID(ctx context.Context, leagueID string) (league.League, bool, error) {
	var row leagueTableModel
	query := selectLeagueColumns + ` WHERE public_id = $1 AND deleted_at IS NULL`
	err := r.guard.run(func() error {
		return r.db.GetContext(ctx, &row, query, leagueID)
	})
	if err != nil {
		if isNotFound(err) {
			return league.League{}, false, nil
		}
		return league.League{}, false, crerr.Wrapf(err, "get league %s", leagueID)
	}

	return row.toDomain(), true, nil
}
