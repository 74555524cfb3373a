package result

// SetScore holds one set. A nil side means the value was not entered.
type SetScore struct {
	Home *int `json:"home,omitempty"`
	Away *int `json:"away,omitempty"`
}

// Played reports whether both values are present and the set is not the 0:0 placeholder.
func (s SetScore) Played() bool {
	if s.Home == nil || s.Away == nil {
		return false
	}
	return *s.Home != 0 || *s.Away != 0
}

// RawScore is an unvalidated result as submitted by a user.
type RawScore struct {
	HomeSets  *int
	AwaySets  *int
	BallsHome *int
	BallsAway *int
	Sets      []SetScore
}

// MatchResult is a validated result. SetsHome/SetsAway are the set counts of the match.
type MatchResult struct {
	SetsHome  int
	SetsAway  int
	BallsHome *int
	BallsAway *int
	Sets      []SetScore
	// Decided is true once one side has reached the sets needed to win.
	Decided    bool
	PointsHome int
	PointsAway int
	// HasPlaceholder flags a 0:0 set kept as "not yet entered".
	HasPlaceholder bool
}

// BallTotals returns ball points for both sides, summed from the set list when present.
func (r MatchResult) BallTotals() (home, away int) {
	if len(r.Sets) > 0 {
		for _, set := range r.Sets {
			if !set.Played() {
				continue
			}
			home += *set.Home
			away += *set.Away
		}
		return home, away
	}
	if r.BallsHome != nil {
		home = *r.BallsHome
	}
	if r.BallsAway != nil {
		away = *r.BallsAway
	}
	return home, away
}

func IntPtr(v int) *int {
	return &v
}

// Clone returns a deep copy so stored results never alias caller memory.
func (r MatchResult) Clone() *MatchResult {
	out := r
	out.BallsHome = copyInt(r.BallsHome)
	out.BallsAway = copyInt(r.BallsAway)
	if r.Sets != nil {
		out.Sets = make([]SetScore, len(r.Sets))
		for i, set := range r.Sets {
			out.Sets[i] = SetScore{Home: copyInt(set.Home), Away: copyInt(set.Away)}
		}
	}
	return &out
}
