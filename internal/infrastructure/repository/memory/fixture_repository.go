package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/cyklop/vb-liga-manager-sub000/internal/domain/fixture"
	"github.com/cyklop/vb-liga-manager-sub000/internal/domain/result"
	"github.com/cyklop/vb-liga-manager-sub000/internal/platform/id"
)

type FixtureRepository struct {
	mu               sync.RWMutex
	fixturesByLeague map[string][]fixture.Fixture
	ids              id.Generator
}

func NewFixtureRepository(ids id.Generator, fixtures []fixture.Fixture) *FixtureRepository {
	if ids == nil {
		ids = id.NewUUIDGenerator()
	}
	fixturesByLeague := make(map[string][]fixture.Fixture)
	for _, item := range fixtures {
		fixturesByLeague[item.LeagueID] = append(fixturesByLeague[item.LeagueID], cloneFixture(item))
	}
	for leagueID := range fixturesByLeague {
		sortByOrder(fixturesByLeague[leagueID])
	}

	return &FixtureRepository{fixturesByLeague: fixturesByLeague, ids: ids}
}

func (r *FixtureRepository) ListByLeague(_ context.Context, leagueID string) ([]fixture.Fixture, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.fixturesByLeague[leagueID]
	out := make([]fixture.Fixture, 0, len(items))
	for _, item := range items {
		out = append(out, cloneFixture(item))
	}
	return out, nil
}

func (r *FixtureRepository) GetByID(_ context.Context, leagueID, fixtureID string) (fixture.Fixture, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.fixturesByLeague[leagueID] {
		if item.ID == fixtureID {
			return cloneFixture(item), true, nil
		}
	}
	return fixture.Fixture{}, false, nil
}

func (r *FixtureRepository) ReplaceByLeague(_ context.Context, leagueID string, items []fixture.Fixture) ([]fixture.Fixture, error) {
	stored := make([]fixture.Fixture, 0, len(items))
	for _, item := range items {
		newID, err := r.ids.NewID()
		if err != nil {
			return nil, fmt.Errorf("generate fixture id: %w", err)
		}
		item = cloneFixture(item)
		item.ID = newID
		item.LeagueID = leagueID
		stored = append(stored, item)
	}
	sortByOrder(stored)

	r.mu.Lock()
	r.fixturesByLeague[leagueID] = stored
	r.mu.Unlock()

	out := make([]fixture.Fixture, 0, len(stored))
	for _, item := range stored {
		out = append(out, cloneFixture(item))
	}
	return out, nil
}

func (r *FixtureRepository) SaveResult(_ context.Context, leagueID, fixtureID string, res *result.MatchResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := r.fixturesByLeague[leagueID]
	for i := range items {
		if items[i].ID != fixtureID {
			continue
		}
		if res == nil {
			items[i].Result = nil
		} else {
			items[i].Result = res.Clone()
		}
		return nil
	}
	return fmt.Errorf("fixture %s not found in league %s", fixtureID, leagueID)
}

func (r *FixtureRepository) Reorder(_ context.Context, leagueID string, fixtureIDs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := r.fixturesByLeague[leagueID]
	if len(fixtureIDs) != len(items) {
		return fmt.Errorf("new order lists %d fixtures, league %s has %d", len(fixtureIDs), leagueID, len(items))
	}
	position := make(map[string]int, len(fixtureIDs))
	for i, fixtureID := range fixtureIDs {
		position[fixtureID] = i + 1
	}
	for _, item := range items {
		if _, ok := position[item.ID]; !ok {
			return fmt.Errorf("fixture %s missing from new order", item.ID)
		}
	}
	for i := range items {
		items[i].Order = position[items[i].ID]
	}
	sortByOrder(items)
	return nil
}

func sortByOrder(items []fixture.Fixture) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Order < items[j].Order
	})
}

func cloneFixture(item fixture.Fixture) fixture.Fixture {
	if item.Result != nil {
		item.Result = item.Result.Clone()
	}
	return item
}
