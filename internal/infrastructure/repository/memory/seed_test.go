package memory

import (
	"testing"

	"github.com/cyklop/vb-liga-manager-sub000/internal/domain/league"
)

func TestParseSeed(t *testing.T) {
	data := []byte(`
leagues:
  - id: landesliga
    name: Landesliga
    season: 2024/25
    rules:
      scoring_mode: aggregate_score
      sets_to_win: 2
      points_win_3_2: 1
      return_matches: true
    teams:
      - id: tv-a
        name: TV A
        availability: "Di 19:30"
      - id: tv-b
        name: TV B
`)

	seed, err := ParseSeed(data)
	if err != nil {
		t.Fatalf("parse seed: %v", err)
	}
	if len(seed.Leagues) != 1 || len(seed.Teams) != 2 {
		t.Fatalf("unexpected seed: %+v", seed)
	}

	rules := seed.Leagues[0].Rules
	if rules.ScoringMode != league.ScoringModeAggregate || rules.SetsToWin != 2 || !rules.HasReturnMatches {
		t.Fatalf("unexpected rules: %+v", rules)
	}
	if rules.PointsWin32 != 1 || rules.PointsWin30 != league.DefaultRules().PointsWin30 {
		t.Fatalf("expected explicit and default points, got %+v", rules)
	}
	if seed.Teams[0].LeagueID != "landesliga" || seed.Teams[0].Availability != "Di 19:30" {
		t.Fatalf("unexpected team: %+v", seed.Teams[0])
	}
}

func TestParseSeed_RejectsInvalidRules(t *testing.T) {
	data := []byte(`
leagues:
  - id: x
    name: X
    rules:
      sets_to_win: 4
`)
	if _, err := ParseSeed(data); err == nil {
		t.Fatalf("expected error for invalid sets_to_win")
	}
}

func TestDefaultSeed_IsValid(t *testing.T) {
	seed := DefaultSeed()
	for _, lg := range seed.Leagues {
		if err := lg.Validate(); err != nil {
			t.Fatalf("invalid default league %s: %v", lg.ID, err)
		}
	}
	for _, item := range seed.Teams {
		if err := item.Validate(); err != nil {
			t.Fatalf("invalid default team %s: %v", item.ID, err)
		}
	}
}
