package memory

import (
	"context"
	"sync"

	"github.com/cyklop/vb-liga-manager-sub000/internal/domain/team"
)

type TeamRepository struct {
	mu       sync.RWMutex
	byLeague map[string][]team.Team
}

func NewTeamRepository(teams []team.Team) *TeamRepository {
	byLeague := make(map[string][]team.Team)
	for _, item := range teams {
		byLeague[item.LeagueID] = append(byLeague[item.LeagueID], item)
	}
	return &TeamRepository{byLeague: byLeague}
}

// ListByLeague keeps registration order, which is the rotation order of the schedule.
func (r *TeamRepository) ListByLeague(_ context.Context, leagueID string) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.byLeague[leagueID]
	out := make([]team.Team, len(items))
	copy(out, items)
	return out, nil
}

func (r *TeamRepository) GetByID(_ context.Context, leagueID, teamID string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.byLeague[leagueID] {
		if item.ID == teamID {
			return item, true, nil
		}
	}
	return team.Team{}, false, nil
}
