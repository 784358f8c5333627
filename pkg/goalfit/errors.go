package goalfit

import "fmt"

// DataSufficiencyError reports a team whose parameters cannot be identified
// because it has no home or no away matches in the input
type DataSufficiencyError struct {
	Team        string `json:"team"`
	HomeMatches int    `json:"home_matches"`
	AwayMatches int    `json:"away_matches"`
}

func (e *DataSufficiencyError) Error() string {
	return fmt.Sprintf("insufficient data for team %s: %d home matches, %d away matches (at least one of each is required)",
		e.Team, e.HomeMatches, e.AwayMatches)
}

// NumericDomainError reports a non-positive expected scoring rate encountered
// during likelihood evaluation, which indicates a degenerate input
type NumericDomainError struct {
	HomeTeam  string  `json:"home_team"`
	AwayTeam  string  `json:"away_team"`
	Rate      float64 `json:"rate"`
	Iteration int     `json:"iteration"`
}

func (e *NumericDomainError) Error() string {
	return fmt.Sprintf("non-positive expected rate %g for %s vs %s at iteration %d",
		e.Rate, e.HomeTeam, e.AwayTeam, e.Iteration)
}
