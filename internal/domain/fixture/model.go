package fixture

import "github.com/cyklop/vb-liga-manager-sub000/internal/domain/result"

// Fixture represents one scheduled match. Home/away and Round are fixed once generated;
// only Order and Result change afterwards.
type Fixture struct {
	ID         string
	LeagueID   string
	Round      int
	Order      int
	HomeTeamID string
	AwayTeamID string
	// SuggestedTime is "HH:MM" or empty when nothing could be inferred.
	SuggestedTime string
	Result        *result.MatchResult
}

func (f Fixture) HasResult() bool {
	return f.Result != nil
}

// IsDecided reports whether the fixture carries a result that counts for the table.
func (f Fixture) IsDecided() bool {
	return f.Result != nil && f.Result.Decided
}

// Involves reports whether teamID plays in the fixture.
func (f Fixture) Involves(teamID string) bool {
	return f.HomeTeamID == teamID || f.AwayTeamID == teamID
}
