package postgres

import (
	"context"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/cyklop/vb-liga-manager-sub000/internal/infrastructure/repository/memory"
)

// BootstrapSeed inserts seed leagues and teams when the leagues table is empty.
func BootstrapSeed(ctx context.Context, db *sqlx.DB, seed memory.Seed) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM leagues WHERE deleted_at IS NULL`); err != nil {
		return crerr.Wrap(err, "count leagues for bootstrap seed")
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return crerr.Wrap(err, "begin seed tx")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, l := range seed.Leagues {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO leagues (public_id, name, season, scoring_mode, sets_to_win, points_win_3_0, points_win_3_1, points_win_3_2, points_loss_2_3, has_return_matches)
VALUES (:public_id, :name, :season, :scoring_mode, :sets_to_win, :points_win_3_0, :points_win_3_1, :points_win_3_2, :points_loss_2_3, :has_return_matches)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":          l.ID,
			"name":               l.Name,
			"season":             l.Season,
			"scoring_mode":       string(l.Rules.ScoringMode),
			"sets_to_win":        l.Rules.SetsToWin,
			"points_win_3_0":     l.Rules.PointsWin30,
			"points_win_3_1":     l.Rules.PointsWin31,
			"points_win_3_2":     l.Rules.PointsWin32,
			"points_loss_2_3":    l.Rules.PointsLoss32,
			"has_return_matches": l.Rules.HasReturnMatches,
		})
		if err != nil {
			return crerr.Wrapf(err, "bind seed league %s query", l.ID)
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(sqlQuery), args...); err != nil {
			return crerr.Wrapf(err, "seed league %s", l.ID)
		}
	}

	for _, t := range seed.Teams {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO teams (public_id, league_public_id, name, availability)
VALUES (:public_id, :league_public_id, :name, :availability)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":        t.ID,
			"league_public_id": t.LeagueID,
			"name":             t.Name,
			"availability":     t.Availability,
		})
		if err != nil {
			return crerr.Wrapf(err, "bind seed team %s query", t.ID)
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(sqlQuery), args...); err != nil {
			return crerr.Wrapf(err, "seed team %s", t.ID)
		}
	}

	if err := tx.Commit(); err != nil {
		return crerr.Wrap(err, "commit seed tx")
	}
	return nil
}
