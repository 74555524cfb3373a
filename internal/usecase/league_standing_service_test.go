package usecase

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cyklop/vb-liga-manager-sub000/internal/domain/fixture"
	"github.com/cyklop/vb-liga-manager-sub000/internal/domain/league"
	"github.com/cyklop/vb-liga-manager-sub000/internal/domain/leaguestanding"
	"github.com/cyklop/vb-liga-manager-sub000/internal/domain/result"
	"github.com/cyklop/vb-liga-manager-sub000/internal/domain/team"
	"github.com/cyklop/vb-liga-manager-sub000/internal/platform/cache"
	"github.com/cyklop/vb-liga-manager-sub000/internal/platform/logging"
)

type stubLeagueRepository struct {
	byID map[string]league.League
}

func (s *stubLeagueRepository) List(context.Context) ([]league.League, error) {
	out := make([]league.League, 0, len(s.byID))
	for _, item := range s.byID {
		out = append(out, item)
	}
	return out, nil
}

func (s *stubLeagueRepository) GetByID(_ context.Context, leagueID string) (league.League, bool, error) {
	item, ok := s.byID[leagueID]
	return item, ok, nil
}

type stubTeamRepository struct {
	byLeague map[string][]team.Team
}

func (s *stubTeamRepository) ListByLeague(_ context.Context, leagueID string) ([]team.Team, error) {
	return s.byLeague[leagueID], nil
}

func (s *stubTeamRepository) GetByID(_ context.Context, leagueID, teamID string) (team.Team, bool, error) {
	for _, item := range s.byLeague[leagueID] {
		if item.ID == teamID {
			return item, true, nil
		}
	}
	return team.Team{}, false, nil
}

type stubFixtureRepository struct {
	fixture.Repository
	byLeague map[string][]fixture.Fixture
	listed   atomic.Int32
}

func (s *stubFixtureRepository) ListByLeague(_ context.Context, leagueID string) ([]fixture.Fixture, error) {
	s.listed.Add(1)
	return s.byLeague[leagueID], nil
}

func decided(id, home, away string, setsHome, setsAway int) fixture.Fixture {
	res, _ := result.Validate(result.RawScore{HomeSets: result.IntPtr(setsHome), AwaySets: result.IntPtr(setsAway)},
		league.Rules{ScoringMode: league.ScoringModeAggregate, SetsToWin: 3, PointsWin30: 3, PointsWin31: 3, PointsWin32: 2, PointsLoss32: 1})
	return fixture.Fixture{ID: id, HomeTeamID: home, AwayTeamID: away, Result: &res}
}

func standingsFixtures() (*stubLeagueRepository, *stubTeamRepository, *stubFixtureRepository) {
	leagues := &stubLeagueRepository{byID: map[string]league.League{
		"lg-1": {ID: "lg-1", Name: "Kreisliga", Rules: league.DefaultRules()},
		"lg-2": {ID: "lg-2", Name: "Bezirksliga", Rules: league.DefaultRules()},
	}}
	teams := &stubTeamRepository{byLeague: map[string][]team.Team{
		"lg-1": testTeams("lg-1", "A", "B", "C"),
		"lg-2": testTeams("lg-2", "X", "Y"),
	}}
	fixtures := &stubFixtureRepository{byLeague: map[string][]fixture.Fixture{
		"lg-1": {
			decided("f1", "t-A", "t-B", 3, 2),
			decided("f2", "t-C", "t-A", 0, 3),
			{ID: "f3", HomeTeamID: "t-B", AwayTeamID: "t-C", Result: &result.MatchResult{SetsHome: 1, SetsAway: 1}},
			{ID: "f4", HomeTeamID: "t-C", AwayTeamID: "t-B"},
		},
		"lg-2": {
			decided("f5", "t-Y", "t-X", 3, 0),
		},
	}}
	return leagues, teams, fixtures
}

func TestLeagueStandingService_ListByLeague_UsesDecidedFixturesOnly(t *testing.T) {
	t.Parallel()

	leagues, teams, fixtures := standingsFixtures()
	service := NewLeagueStandingService(leagues, teams, fixtures, nil, 0, logging.NewNop())

	rows, err := service.ListByLeague(context.Background(), "lg-1")
	if err != nil {
		t.Fatalf("list standings: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0].TeamID != "t-A" || rows[0].Points != 5 || rows[0].Played != 2 {
		t.Fatalf("unexpected leader: %+v", rows[0])
	}
	for _, row := range rows {
		if row.TeamID == "t-C" && row.Played != 1 {
			t.Fatalf("incomplete and unplayed fixtures must not count, got %+v", row)
		}
	}
}

func TestLeagueStandingService_CachesUntilInvalidated(t *testing.T) {
	t.Parallel()

	leagues, teams, fixtures := standingsFixtures()
	tables := cache.New[[]leaguestanding.Standing](time.Minute)
	service := NewLeagueStandingService(leagues, teams, fixtures, tables, 0, logging.NewNop())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := service.ListByLeague(ctx, "lg-1"); err != nil {
			t.Fatalf("list standings: %v", err)
		}
	}
	if got := fixtures.listed.Load(); got != 1 {
		t.Fatalf("expected one computation, got %d", got)
	}

	service.Invalidate(ctx, "lg-1")
	if _, err := service.ListByLeague(ctx, "lg-1"); err != nil {
		t.Fatalf("list standings: %v", err)
	}
	if got := fixtures.listed.Load(); got != 2 {
		t.Fatalf("expected recomputation after invalidate, got %d", got)
	}
}

func TestLeagueStandingService_ReturnsCopies(t *testing.T) {
	t.Parallel()

	leagues, teams, fixtures := standingsFixtures()
	service := NewLeagueStandingService(leagues, teams, fixtures, cache.New[[]leaguestanding.Standing](time.Minute), 0, nil)

	first, err := service.ListByLeague(context.Background(), "lg-1")
	if err != nil {
		t.Fatalf("list standings: %v", err)
	}
	first[0].Points = 99

	second, err := service.ListByLeague(context.Background(), "lg-1")
	if err != nil {
		t.Fatalf("list standings: %v", err)
	}
	if second[0].Points == 99 {
		t.Fatalf("cached table must not be shared with callers")
	}
}

func TestLeagueStandingService_Overview(t *testing.T) {
	t.Parallel()

	leagues, teams, fixtures := standingsFixtures()
	service := NewLeagueStandingService(leagues, teams, fixtures, nil, 2, logging.NewNop())

	tables, err := service.Overview(context.Background())
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if len(tables) != 2 {
		t.Fatalf("expected 2 tables, got %d", len(tables))
	}
	if tables[0].League.Name != "Bezirksliga" || tables[1].League.Name != "Kreisliga" {
		t.Fatalf("tables must be sorted by league name")
	}
	if tables[0].Standings[0].TeamID != "t-Y" {
		t.Fatalf("unexpected Bezirksliga leader: %+v", tables[0].Standings[0])
	}
}

// gatedFixtureRepository blocks the first ListByLeague call until release is closed.
type gatedFixtureRepository struct {
	fixture.Repository
	mu      sync.Mutex
	items   []fixture.Fixture
	calls   int
	entered chan struct{}
	release chan struct{}
}

func (r *gatedFixtureRepository) ListByLeague(context.Context, string) ([]fixture.Fixture, error) {
	r.mu.Lock()
	r.calls++
	first := r.calls == 1
	snapshot := slices.Clone(r.items)
	r.mu.Unlock()

	if first {
		close(r.entered)
		<-r.release
	}
	return snapshot, nil
}

func (r *gatedFixtureRepository) replace(items []fixture.Fixture) {
	r.mu.Lock()
	r.items = items
	r.mu.Unlock()
}

func TestLeagueStandingService_InvalidateDuringLoadIsNotLost(t *testing.T) {
	t.Parallel()

	leagues, teams, _ := standingsFixtures()
	fixtures := &gatedFixtureRepository{
		items:   []fixture.Fixture{{ID: "f1", HomeTeamID: "t-A", AwayTeamID: "t-B"}},
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	service := NewLeagueStandingService(leagues, teams, fixtures, cache.New[[]leaguestanding.Standing](time.Minute), 0, logging.NewNop())
	ctx := context.Background()

	loaded := make(chan error, 1)
	go func() {
		_, err := service.ListByLeague(ctx, "lg-1")
		loaded <- err
	}()

	<-fixtures.entered
	fixtures.replace([]fixture.Fixture{decided("f1", "t-A", "t-B", 3, 0)})
	service.Invalidate(ctx, "lg-1")
	close(fixtures.release)
	if err := <-loaded; err != nil {
		t.Fatalf("list standings: %v", err)
	}

	rows, err := service.ListByLeague(ctx, "lg-1")
	if err != nil {
		t.Fatalf("list standings: %v", err)
	}
	for _, row := range rows {
		if row.TeamID == "t-A" && (row.Played != 1 || row.Won != 1) {
			t.Fatalf("expected the saved result in the table, got %+v", row)
		}
	}
}
