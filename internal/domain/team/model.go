package team

import "fmt"

// Team is a club entered in a league.
type Team struct {
	ID       string
	LeagueID string
	Name     string
	// Availability is free text such as "Mittwochs ab 19:30" and only feeds kickoff suggestions.
	Availability string
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.LeagueID == "" {
		return fmt.Errorf("team league id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}
