package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/cyklop/vb-liga-manager-sub000/internal/domain/fixture"
	"github.com/cyklop/vb-liga-manager-sub000/internal/domain/league"
	"github.com/cyklop/vb-liga-manager-sub000/internal/domain/result"
	"github.com/cyklop/vb-liga-manager-sub000/internal/domain/team"
	fixturemock "github.com/cyklop/vb-liga-manager-sub000/internal/mocks/domain/fixture"
	leaguemock "github.com/cyklop/vb-liga-manager-sub000/internal/mocks/domain/league"
	teammock "github.com/cyklop/vb-liga-manager-sub000/internal/mocks/domain/team"
)

type invalidationRecorder struct {
	leagues []string
}

func (r *invalidationRecorder) Invalidate(_ context.Context, leagueID string) {
	r.leagues = append(r.leagues, leagueID)
}

func testLeague(id string, withReturn bool) league.League {
	rules := league.DefaultRules()
	rules.HasReturnMatches = withReturn
	return league.League{ID: id, Name: "Bezirksliga", Rules: rules}
}

func testTeams(leagueID string, names ...string) []team.Team {
	out := make([]team.Team, 0, len(names))
	for _, name := range names {
		out = append(out, team.Team{ID: "t-" + name, LeagueID: leagueID, Name: name, Availability: "Mittwochs 20 Uhr"})
	}
	return out
}

func TestFixtureService_GenerateSchedule_ReplacesFixtures(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	leagueID := "lg-1"
	leagueRepo := leaguemock.NewRepository(t)
	teamRepo := teammock.NewRepository(t)
	fixtureRepo := fixturemock.NewRepository(t)
	recorder := &invalidationRecorder{}

	leagueRepo.On("GetByID", mock.Anything, leagueID).Return(testLeague(leagueID, true), true, nil).Once()
	teamRepo.On("ListByLeague", mock.Anything, leagueID).Return(testTeams(leagueID, "A", "B", "C", "D"), nil).Once()
	fixtureRepo.On("ListByLeague", mock.Anything, leagueID).Return([]fixture.Fixture{}, nil).Once()
	fixtureRepo.
		On("ReplaceByLeague", mock.Anything, leagueID, mock.MatchedBy(func(items []fixture.Fixture) bool {
			if len(items) != 12 {
				return false
			}
			for i, item := range items {
				if item.LeagueID != leagueID || item.Order != i+1 || item.SuggestedTime != "20:00" {
					return false
				}
			}
			return items[len(items)-1].Round == 6
		})).
		Return(func(_ context.Context, _ string, items []fixture.Fixture) ([]fixture.Fixture, error) {
			for i := range items {
				items[i].ID = "fx-" + string(rune('a'+i))
			}
			return items, nil
		}).
		Once()

	service := NewFixtureService(leagueRepo, teamRepo, fixtureRepo, recorder, nil)
	got, err := service.GenerateSchedule(ctx, leagueID, false)
	if err != nil {
		t.Fatalf("generate schedule: %v", err)
	}
	if len(got) != 12 || got[0].ID == "" {
		t.Fatalf("unexpected stored fixtures: %+v", got)
	}
	if len(recorder.leagues) != 1 || recorder.leagues[0] != leagueID {
		t.Fatalf("expected standings invalidation, got %v", recorder.leagues)
	}
}

func TestFixtureService_GenerateSchedule_ConflictWhenResultsExist(t *testing.T) {
	t.Parallel()

	leagueID := "lg-1"
	leagueRepo := leaguemock.NewRepository(t)
	teamRepo := teammock.NewRepository(t)
	fixtureRepo := fixturemock.NewRepository(t)

	leagueRepo.On("GetByID", mock.Anything, leagueID).Return(testLeague(leagueID, false), true, nil).Once()
	teamRepo.On("ListByLeague", mock.Anything, leagueID).Return(testTeams(leagueID, "A", "B"), nil).Once()
	fixtureRepo.On("ListByLeague", mock.Anything, leagueID).Return([]fixture.Fixture{
		{ID: "fx-1", LeagueID: leagueID, HomeTeamID: "t-A", AwayTeamID: "t-B", Result: &result.MatchResult{SetsHome: 3, Decided: true}},
	}, nil).Once()

	service := NewFixtureService(leagueRepo, teamRepo, fixtureRepo, nil, nil)
	if _, err := service.GenerateSchedule(context.Background(), leagueID, false); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestFixtureService_GenerateSchedule_TooFewTeams(t *testing.T) {
	t.Parallel()

	leagueID := "lg-1"
	leagueRepo := leaguemock.NewRepository(t)
	teamRepo := teammock.NewRepository(t)
	fixtureRepo := fixturemock.NewRepository(t)

	leagueRepo.On("GetByID", mock.Anything, leagueID).Return(testLeague(leagueID, false), true, nil).Once()
	teamRepo.On("ListByLeague", mock.Anything, leagueID).Return(testTeams(leagueID, "A"), nil).Once()
	fixtureRepo.On("ListByLeague", mock.Anything, leagueID).Return(nil, nil).Once()

	service := NewFixtureService(leagueRepo, teamRepo, fixtureRepo, nil, nil)
	if _, err := service.GenerateSchedule(context.Background(), leagueID, true); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestFixtureService_Reorder(t *testing.T) {
	t.Parallel()

	leagueID := "lg-1"
	current := []fixture.Fixture{
		{ID: "fx-1", LeagueID: leagueID, Order: 1},
		{ID: "fx-2", LeagueID: leagueID, Order: 2},
		{ID: "fx-3", LeagueID: leagueID, Order: 3},
	}

	cases := []struct {
		name    string
		ids     []string
		wantErr error
	}{
		{name: "missing fixture", ids: []string{"fx-1", "fx-2"}, wantErr: ErrInvalidInput},
		{name: "foreign fixture", ids: []string{"fx-1", "fx-2", "fx-9"}, wantErr: ErrInvalidInput},
		{name: "duplicate fixture", ids: []string{"fx-1", "fx-1", "fx-2"}, wantErr: ErrInvalidInput},
		{name: "valid permutation", ids: []string{"fx-3", "fx-1", "fx-2"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			leagueRepo := leaguemock.NewRepository(t)
			fixtureRepo := fixturemock.NewRepository(t)
			leagueRepo.On("GetByID", mock.Anything, leagueID).Return(testLeague(leagueID, false), true, nil).Once()
			fixtureRepo.On("ListByLeague", mock.Anything, leagueID).Return(current, nil).Once()
			if tc.wantErr == nil {
				fixtureRepo.On("Reorder", mock.Anything, leagueID, tc.ids).Return(nil).Once()
				fixtureRepo.On("ListByLeague", mock.Anything, leagueID).Return([]fixture.Fixture{
					{ID: "fx-3", Order: 1}, {ID: "fx-1", Order: 2}, {ID: "fx-2", Order: 3},
				}, nil).Once()
			}

			service := NewFixtureService(leagueRepo, teammock.NewRepository(t), fixtureRepo, nil, nil)
			got, err := service.Reorder(context.Background(), leagueID, tc.ids)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("reorder: %v", err)
			}
			if got[0].ID != "fx-3" {
				t.Fatalf("unexpected order: %+v", got)
			}
		})
	}
}
