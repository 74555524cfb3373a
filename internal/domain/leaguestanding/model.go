package leaguestanding

// Standing represents a league table row for one team.
type Standing struct {
	LeagueID       string
	TeamID         string
	TeamName       string
	Position       int
	Played         int
	Won            int
	Lost           int
	Points         int
	SetsWon        int
	SetsLost       int
	SetDifference  int
	SetQuotient    Quotient
	BallsWon       int
	BallsLost      int
	BallDifference int
	BallQuotient   Quotient
}
