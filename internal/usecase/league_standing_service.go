package usecase

import (
	"context"
	"fmt"
	"slices"
	"sort"

	"github.com/sourcegraph/conc/pool"

	"github.com/cyklop/vb-liga-manager-sub000/internal/domain/fixture"
	"github.com/cyklop/vb-liga-manager-sub000/internal/domain/league"
	"github.com/cyklop/vb-liga-manager-sub000/internal/domain/leaguestanding"
	"github.com/cyklop/vb-liga-manager-sub000/internal/domain/team"
	"github.com/cyklop/vb-liga-manager-sub000/internal/platform/cache"
	"github.com/cyklop/vb-liga-manager-sub000/internal/platform/logging"
)

const (
	standingsCachePrefix   = "standings:"
	defaultOverviewWorkers = 4
)

// LeagueTable is the current table of one league.
type LeagueTable struct {
	League    league.League
	Standings []leaguestanding.Standing
}

type LeagueStandingService struct {
	leagueRepo      league.Repository
	teamRepo        team.Repository
	fixtureRepo     fixture.Repository
	calculator      *leaguestanding.Calculator
	tables          *cache.Store[[]leaguestanding.Standing]
	overviewWorkers int
	logger          *logging.Logger
}

func NewLeagueStandingService(
	leagueRepo league.Repository,
	teamRepo team.Repository,
	fixtureRepo fixture.Repository,
	tables *cache.Store[[]leaguestanding.Standing],
	overviewWorkers int,
	logger *logging.Logger,
) *LeagueStandingService {
	if tables == nil {
		tables = cache.Disabled[[]leaguestanding.Standing]()
	}
	if overviewWorkers <= 0 {
		overviewWorkers = defaultOverviewWorkers
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &LeagueStandingService{
		leagueRepo:      leagueRepo,
		teamRepo:        teamRepo,
		fixtureRepo:     fixtureRepo,
		calculator:      leaguestanding.NewCalculator(logger.Named("standings")),
		tables:          tables,
		overviewWorkers: overviewWorkers,
		logger:          logger,
	}
}

// ListByLeague returns the table of a league computed from every decided fixture.
func (s *LeagueStandingService) ListByLeague(ctx context.Context, leagueID string) ([]leaguestanding.Standing, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueStandingService.ListByLeague", leagueAttr(leagueID))
	defer span.End()

	lg, err := requireLeague(ctx, s.leagueRepo, leagueID)
	if err != nil {
		return nil, err
	}

	return s.table(ctx, lg)
}

// Overview computes the tables of all leagues concurrently.
func (s *LeagueStandingService) Overview(ctx context.Context) ([]LeagueTable, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueStandingService.Overview")
	defer span.End()

	leagues, err := s.leagueRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list leagues: %w", err)
	}

	p := pool.NewWithResults[LeagueTable]().
		WithContext(ctx).
		WithCancelOnError().
		WithMaxGoroutines(s.overviewWorkers)
	for _, lg := range leagues {
		p.Go(func(ctx context.Context) (LeagueTable, error) {
			rows, err := s.table(ctx, lg)
			if err != nil {
				return LeagueTable{}, fmt.Errorf("league=%s: %w", lg.ID, err)
			}
			return LeagueTable{League: lg, Standings: rows}, nil
		})
	}

	tables, err := p.Wait()
	if err != nil {
		recordSpanError(span, err)
		return nil, err
	}
	sort.SliceStable(tables, func(i, j int) bool {
		return tables[i].League.Name < tables[j].League.Name
	})
	return tables, nil
}

// Invalidate drops the cached table of a league.
func (s *LeagueStandingService) Invalidate(ctx context.Context, leagueID string) {
	s.tables.Delete(ctx, standingsCachePrefix+leagueID)
}

func (s *LeagueStandingService) table(ctx context.Context, lg league.League) ([]leaguestanding.Standing, error) {
	rows, err := s.tables.GetOrLoad(ctx, standingsCachePrefix+lg.ID, func(ctx context.Context) ([]leaguestanding.Standing, error) {
		return s.compute(ctx, lg)
	})
	if err != nil {
		return nil, err
	}
	return slices.Clone(rows), nil
}

func (s *LeagueStandingService) compute(ctx context.Context, lg league.League) ([]leaguestanding.Standing, error) {
	teams, err := s.teamRepo.ListByLeague(ctx, lg.ID)
	if err != nil {
		return nil, fmt.Errorf("list teams by league: %w", err)
	}
	fixtures, err := s.fixtureRepo.ListByLeague(ctx, lg.ID)
	if err != nil {
		return nil, fmt.Errorf("list fixtures by league: %w", err)
	}

	outcomes := make([]leaguestanding.Outcome, 0, len(fixtures))
	for _, item := range fixtures {
		if !item.IsDecided() {
			continue
		}
		outcomes = append(outcomes, leaguestanding.Outcome{
			FixtureID:  item.ID,
			HomeTeamID: item.HomeTeamID,
			AwayTeamID: item.AwayTeamID,
			Result:     *item.Result,
		})
	}

	rows := s.calculator.Compute(ctx, teams, lg.Rules, outcomes)
	s.logger.DebugContext(ctx, "standings computed",
		"league_id", lg.ID,
		"teams", len(teams),
		"outcomes", len(outcomes),
	)
	return rows, nil
}
