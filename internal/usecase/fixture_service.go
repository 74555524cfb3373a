package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/cyklop/vb-liga-manager-sub000/internal/domain/fixture"
	"github.com/cyklop/vb-liga-manager-sub000/internal/domain/league"
	"github.com/cyklop/vb-liga-manager-sub000/internal/domain/schedule"
	"github.com/cyklop/vb-liga-manager-sub000/internal/domain/team"
	"github.com/cyklop/vb-liga-manager-sub000/internal/platform/logging"
)

// StandingsInvalidator drops a cached table once fixtures or results of a league change.
type StandingsInvalidator interface {
	Invalidate(ctx context.Context, leagueID string)
}

type noopInvalidator struct{}

func (noopInvalidator) Invalidate(context.Context, string) {}

type FixtureService struct {
	leagueRepo  league.Repository
	teamRepo    team.Repository
	fixtureRepo fixture.Repository
	standings   StandingsInvalidator
	logger      *logging.Logger
}

func NewFixtureService(
	leagueRepo league.Repository,
	teamRepo team.Repository,
	fixtureRepo fixture.Repository,
	standings StandingsInvalidator,
	logger *logging.Logger,
) *FixtureService {
	if standings == nil {
		standings = noopInvalidator{}
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &FixtureService{
		leagueRepo:  leagueRepo,
		teamRepo:    teamRepo,
		fixtureRepo: fixtureRepo,
		standings:   standings,
		logger:      logger,
	}
}

func (s *FixtureService) ListByLeague(ctx context.Context, leagueID string) ([]fixture.Fixture, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.ListByLeague", leagueAttr(leagueID))
	defer span.End()

	lg, err := requireLeague(ctx, s.leagueRepo, leagueID)
	if err != nil {
		return nil, err
	}

	fixtures, err := s.fixtureRepo.ListByLeague(ctx, lg.ID)
	if err != nil {
		return nil, fmt.Errorf("list fixtures by league: %w", err)
	}

	return fixtures, nil
}

// GenerateSchedule replaces the fixture list of a league with a fresh round robin.
// A league that already has results is only regenerated with force.
func (s *FixtureService) GenerateSchedule(ctx context.Context, leagueID string, force bool) ([]fixture.Fixture, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.GenerateSchedule", leagueAttr(leagueID))
	defer span.End()

	lg, err := requireLeague(ctx, s.leagueRepo, leagueID)
	if err != nil {
		return nil, err
	}

	teams, err := s.teamRepo.ListByLeague(ctx, lg.ID)
	if err != nil {
		return nil, fmt.Errorf("list teams by league: %w", err)
	}

	current, err := s.fixtureRepo.ListByLeague(ctx, lg.ID)
	if err != nil {
		return nil, fmt.Errorf("list fixtures by league: %w", err)
	}
	reported := 0
	for _, item := range current {
		if item.HasResult() {
			reported++
		}
	}
	if reported > 0 && !force {
		return nil, fmt.Errorf("%w: league=%s already has %d reported results", ErrConflict, lg.ID, reported)
	}

	generated, err := schedule.Generate(teams, lg.Rules.HasReturnMatches)
	if err != nil {
		recordSpanError(span, err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	for i := range generated {
		generated[i].LeagueID = lg.ID
	}

	stored, err := s.fixtureRepo.ReplaceByLeague(ctx, lg.ID, generated)
	if err != nil {
		recordSpanError(span, err)
		return nil, fmt.Errorf("replace fixtures by league: %w", err)
	}
	s.standings.Invalidate(ctx, lg.ID)

	s.logger.InfoContext(ctx, "schedule generated",
		"league_id", lg.ID,
		"teams", len(teams),
		"fixtures", len(stored),
		"return_matches", lg.Rules.HasReturnMatches,
		"dropped_results", reported,
	)
	return stored, nil
}

// Reorder sets the display order of every fixture in a league. fixtureIDs must list each fixture exactly once.
func (s *FixtureService) Reorder(ctx context.Context, leagueID string, fixtureIDs []string) ([]fixture.Fixture, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.Reorder", leagueAttr(leagueID))
	defer span.End()

	lg, err := requireLeague(ctx, s.leagueRepo, leagueID)
	if err != nil {
		return nil, err
	}

	current, err := s.fixtureRepo.ListByLeague(ctx, lg.ID)
	if err != nil {
		return nil, fmt.Errorf("list fixtures by league: %w", err)
	}
	if len(fixtureIDs) != len(current) {
		return nil, fmt.Errorf("%w: expected %d fixture ids, got %d", ErrInvalidInput, len(current), len(fixtureIDs))
	}

	known := make(map[string]struct{}, len(current))
	for _, item := range current {
		known[item.ID] = struct{}{}
	}
	ordered := make([]string, 0, len(fixtureIDs))
	seen := make(map[string]struct{}, len(fixtureIDs))
	for _, raw := range fixtureIDs {
		id := strings.TrimSpace(raw)
		if _, ok := known[id]; !ok {
			return nil, fmt.Errorf("%w: fixture=%s does not belong to league=%s", ErrInvalidInput, id, lg.ID)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: fixture=%s listed twice", ErrInvalidInput, id)
		}
		seen[id] = struct{}{}
		ordered = append(ordered, id)
	}

	if err := s.fixtureRepo.Reorder(ctx, lg.ID, ordered); err != nil {
		recordSpanError(span, err)
		return nil, fmt.Errorf("reorder fixtures: %w", err)
	}

	fixtures, err := s.fixtureRepo.ListByLeague(ctx, lg.ID)
	if err != nil {
		return nil, fmt.Errorf("list fixtures by league: %w", err)
	}
	return fixtures, nil
}
