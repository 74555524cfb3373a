package memory

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cyklop/vb-liga-manager-sub000/internal/domain/league"
	"github.com/cyklop/vb-liga-manager-sub000/internal/domain/team"
)

const (
	LeagueIDBezirksligaNord = "bezirksliga-nord-2024"
	LeagueIDKreisligaMixed  = "kreisliga-mixed-2024"
)

// Seed is the initial content of the in-memory repositories.
type Seed struct {
	Leagues []league.League
	Teams   []team.Team
}

type seedFile struct {
	Leagues []seedLeague `yaml:"leagues"`
}

type seedLeague struct {
	ID     string     `yaml:"id"`
	Name   string     `yaml:"name"`
	Season string     `yaml:"season"`
	Rules  seedRules  `yaml:"rules"`
	Teams  []seedTeam `yaml:"teams"`
}

type seedRules struct {
	ScoringMode   string `yaml:"scoring_mode"`
	SetsToWin     int    `yaml:"sets_to_win"`
	PointsWin30   *int   `yaml:"points_win_3_0"`
	PointsWin31   *int   `yaml:"points_win_3_1"`
	PointsWin32   *int   `yaml:"points_win_3_2"`
	PointsLoss32  *int   `yaml:"points_loss_2_3"`
	ReturnMatches bool   `yaml:"return_matches"`
}

type seedTeam struct {
	ID           string `yaml:"id"`
	Name         string `yaml:"name"`
	Availability string `yaml:"availability"`
}

// LoadSeed reads leagues and their teams from a YAML file. Omitted rule values fall back to league.DefaultRules.
func LoadSeed(path string) (Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Seed{}, fmt.Errorf("read seed file: %w", err)
	}
	return ParseSeed(data)
}

func ParseSeed(data []byte) (Seed, error) {
	var file seedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Seed{}, fmt.Errorf("parse seed file: %w", err)
	}

	var seed Seed
	for _, raw := range file.Leagues {
		rules, err := raw.Rules.toRules()
		if err != nil {
			return Seed{}, fmt.Errorf("league %s: %w", raw.ID, err)
		}
		lg := league.League{
			ID:     strings.TrimSpace(raw.ID),
			Name:   strings.TrimSpace(raw.Name),
			Season: strings.TrimSpace(raw.Season),
			Rules:  rules,
		}
		if err := lg.Validate(); err != nil {
			return Seed{}, err
		}
		seed.Leagues = append(seed.Leagues, lg)

		for _, rawTeam := range raw.Teams {
			item := team.Team{
				ID:           strings.TrimSpace(rawTeam.ID),
				LeagueID:     lg.ID,
				Name:         strings.TrimSpace(rawTeam.Name),
				Availability: strings.TrimSpace(rawTeam.Availability),
			}
			if err := item.Validate(); err != nil {
				return Seed{}, fmt.Errorf("league %s: %w", lg.ID, err)
			}
			seed.Teams = append(seed.Teams, item)
		}
	}

	return seed, nil
}

func (r seedRules) toRules() (league.Rules, error) {
	rules := league.DefaultRules()
	if r.ScoringMode != "" {
		mode, err := league.ParseScoringMode(r.ScoringMode)
		if err != nil {
			return league.Rules{}, err
		}
		rules.ScoringMode = mode
	}
	if r.SetsToWin != 0 {
		rules.SetsToWin = r.SetsToWin
	}
	if r.PointsWin30 != nil {
		rules.PointsWin30 = *r.PointsWin30
	}
	if r.PointsWin31 != nil {
		rules.PointsWin31 = *r.PointsWin31
	}
	if r.PointsWin32 != nil {
		rules.PointsWin32 = *r.PointsWin32
	}
	if r.PointsLoss32 != nil {
		rules.PointsLoss32 = *r.PointsLoss32
	}
	rules.HasReturnMatches = r.ReturnMatches
	return rules, nil
}

// DefaultSeed is used when no seed file is configured.
func DefaultSeed() Seed {
	mixed := league.DefaultRules()
	mixed.ScoringMode = league.ScoringModeAggregate
	mixed.SetsToWin = 2
	mixed.PointsWin30 = 2
	mixed.PointsWin31 = 2
	mixed.PointsWin32 = 0
	mixed.PointsLoss32 = 0

	nord := league.DefaultRules()
	nord.HasReturnMatches = true

	return Seed{
		Leagues: []league.League{
			{ID: LeagueIDBezirksligaNord, Name: "Bezirksliga Nord", Season: "2024/25", Rules: nord},
			{ID: LeagueIDKreisligaMixed, Name: "Kreisliga Mixed", Season: "2024/25", Rules: mixed},
		},
		Teams: []team.Team{
			{ID: "tsv-eintracht", LeagueID: LeagueIDBezirksligaNord, Name: "TSV Eintracht", Availability: "Dienstags ab 19:30"},
			{ID: "vc-blau-weiss", LeagueID: LeagueIDBezirksligaNord, Name: "VC Blau-Weiß", Availability: "Mittwoch 20 Uhr"},
			{ID: "sv-nordstern", LeagueID: LeagueIDBezirksligaNord, Name: "SV Nordstern", Availability: "Freitags 18:45"},
			{ID: "tg-hafen", LeagueID: LeagueIDBezirksligaNord, Name: "TG Hafen", Availability: "nach Absprache"},
			{ID: "sc-moewen", LeagueID: LeagueIDKreisligaMixed, Name: "SC Möwen", Availability: "Do 19 Uhr"},
			{ID: "vfl-duene", LeagueID: LeagueIDKreisligaMixed, Name: "VfL Düne", Availability: "Montags 20:15"},
			{ID: "tus-watt", LeagueID: LeagueIDKreisligaMixed, Name: "TuS Watt"},
		},
	}
}
