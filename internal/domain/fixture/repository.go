package fixture

import (
	"context"

	"github.com/cyklop/vb-liga-manager-sub000/internal/domain/result"
)

// Repository stores the fixture list of a league.
type Repository interface {
	// ListByLeague returns fixtures sorted by Order.
	ListByLeague(ctx context.Context, leagueID string) ([]Fixture, error)
	GetByID(ctx context.Context, leagueID, fixtureID string) (Fixture, bool, error)
	// ReplaceByLeague drops the current list and stores items, assigning ids.
	ReplaceByLeague(ctx context.Context, leagueID string, items []Fixture) ([]Fixture, error)
	// SaveResult stores res on the fixture; a nil res clears it.
	SaveResult(ctx context.Context, leagueID, fixtureID string, res *result.MatchResult) error
	// Reorder assigns Order 1..N following fixtureIDs.
	Reorder(ctx context.Context, leagueID string, fixtureIDs []string) error
}
