package postgres

import (
	"context"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/cyklop/vb-liga-manager-sub000/internal/domain/fixture"
	"github.com/cyklop/vb-liga-manager-sub000/internal/domain/result"
	"github.com/cyklop/vb-liga-manager-sub000/internal/platform/id"
	"github.com/cyklop/vb-liga-manager-sub000/internal/platform/resilience"
)

const selectFixtureColumns = `
SELECT id, public_id, league_public_id, round, display_order,
       home_team_public_id, away_team_public_id, suggested_time, result,
       created_at, updated_at
FROM fixtures`

type FixtureRepository struct {
	db    *sqlx.DB
	ids   id.Generator
	guard guard
}

func NewFixtureRepository(db *sqlx.DB, ids id.Generator, breaker *resilience.CircuitBreaker) *FixtureRepository {
	if ids == nil {
		ids = id.NewUUIDGenerator()
	}
	return &FixtureRepository{db: db, ids: ids, guard: guard{breaker: breaker}}
}

func (r *FixtureRepository) ListByLeague(ctx context.Context, leagueID string) ([]fixture.Fixture, error) {
	var rows []fixtureTableModel
	query := selectFixtureColumns + ` WHERE league_public_id = $1 ORDER BY display_order, id`
	err := r.guard.run(func() error {
		return r.db.SelectContext(ctx, &rows, query, leagueID)
	})
	if err != nil {
		return nil, crerr.Wrapf(err, "select fixtures of league %s", leagueID)
	}

	out := make([]fixture.Fixture, 0, len(rows))
	for _, row := range rows {
		item, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}

	return out, nil
}

func (r *FixtureRepository) GetByID(ctx context.Context, leagueID, fixtureID string) (fixture.Fixture, bool, error) {
	var row fixtureTableModel
	query := selectFixtureColumns + ` WHERE league_public_id = $1 AND public_id = $2`
	err := r.guard.run(func() error {
		return r.db.GetContext(ctx, &row, query, leagueID, fixtureID)
	})
	if err != nil {
		if isNotFound(err) {
			return fixture.Fixture{}, false, nil
		}
		return fixture.Fixture{}, false, crerr.Wrapf(err, "get fixture %s", fixtureID)
	}

	item, err := row.toDomain()
	if err != nil {
		return fixture.Fixture{}, false, err
	}
	return item, true, nil
}

func (r *FixtureRepository) ReplaceByLeague(ctx context.Context, leagueID string, items []fixture.Fixture) ([]fixture.Fixture, error) {
	var stored []fixture.Fixture
	err := r.guard.run(func() error {
		var err error
		stored, err = r.replaceByLeague(ctx, leagueID, items)
		return err
	})
	if err != nil {
		return nil, err
	}
	return stored, nil
}

func (r *FixtureRepository) replaceByLeague(ctx context.Context, leagueID string, items []fixture.Fixture) ([]fixture.Fixture, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, crerr.Wrap(err, "begin replace fixtures tx")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM fixtures WHERE league_public_id = $1`, leagueID); err != nil {
		return nil, crerr.Wrapf(err, "delete fixtures of league %s", leagueID)
	}

	stored := make([]fixture.Fixture, 0, len(items))
	for _, item := range items {
		publicID, err := r.ids.NewID()
		if err != nil {
			return nil, crerr.Wrap(err, "generate fixture id")
		}
		item.ID = publicID
		item.LeagueID = leagueID

		encoded, err := encodeResult(item.Result)
		if err != nil {
			return nil, err
		}

		sqlQuery, args, err := sqlx.Named(`
INSERT INTO fixtures (public_id, league_public_id, round, display_order, home_team_public_id, away_team_public_id, suggested_time, result)
VALUES (:public_id, :league_public_id, :round, :display_order, :home_team_public_id, :away_team_public_id, :suggested_time, :result)`, map[string]any{
			"public_id":           item.ID,
			"league_public_id":    leagueID,
			"round":               item.Round,
			"display_order":       item.Order,
			"home_team_public_id": item.HomeTeamID,
			"away_team_public_id": item.AwayTeamID,
			"suggested_time":      item.SuggestedTime,
			"result":              encoded,
		})
		if err != nil {
			return nil, crerr.Wrapf(err, "bind insert fixture round %d", item.Round)
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(sqlQuery), args...); err != nil {
			return nil, crerr.Wrapf(err, "insert fixture %s", item.ID)
		}
		stored = append(stored, item)
	}

	if err := tx.Commit(); err != nil {
		return nil, crerr.Wrap(err, "commit replace fixtures tx")
	}

	return stored, nil
}

func (r *FixtureRepository) SaveResult(ctx context.Context, leagueID, fixtureID string, res *result.MatchResult) error {
	encoded, err := encodeResult(res)
	if err != nil {
		return err
	}

	return r.guard.run(func() error {
		out, err := r.db.ExecContext(ctx, `
UPDATE fixtures
SET result = $3::jsonb, updated_at = NOW()
WHERE league_public_id = $1 AND public_id = $2`, leagueID, fixtureID, encoded)
		if err != nil {
			return crerr.Wrapf(err, "save result of fixture %s", fixtureID)
		}
		affected, err := out.RowsAffected()
		if err != nil {
			return crerr.Wrap(err, "read affected rows")
		}
		if affected == 0 {
			return rejectf("fixture %s not found in league %s", fixtureID, leagueID)
		}
		return nil
	})
}

func (r *FixtureRepository) Reorder(ctx context.Context, leagueID string, fixtureIDs []string) error {
	return r.guard.run(func() error {
		return r.reorder(ctx, leagueID, fixtureIDs)
	})
}

func (r *FixtureRepository) reorder(ctx context.Context, leagueID string, fixtureIDs []string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return crerr.Wrap(err, "begin reorder fixtures tx")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var total int
	if err := tx.GetContext(ctx, &total, `SELECT COUNT(1) FROM fixtures WHERE league_public_id = $1`, leagueID); err != nil {
		return crerr.Wrapf(err, "count fixtures of league %s", leagueID)
	}
	if total != len(fixtureIDs) {
		return rejectf("new order lists %d fixtures, league %s has %d", len(fixtureIDs), leagueID, total)
	}

	out, err := tx.ExecContext(ctx, `
UPDATE fixtures AS f
SET display_order = o.position, updated_at = NOW()
FROM unnest($2::text[]) WITH ORDINALITY AS o(public_id, position)
WHERE f.league_public_id = $1 AND f.public_id = o.public_id`, leagueID, pq.Array(fixtureIDs))
	if err != nil {
		return crerr.Wrapf(err, "reorder fixtures of league %s", leagueID)
	}
	affected, err := out.RowsAffected()
	if err != nil {
		return crerr.Wrap(err, "read affected rows")
	}
	if int(affected) != total {
		return rejectf("new order for league %s references unknown fixtures", leagueID)
	}

	if err := tx.Commit(); err != nil {
		return crerr.Wrap(err, "commit reorder fixtures tx")
	}
	return nil
}
