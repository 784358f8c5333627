package goalfit

import (
	"fmt"
	"sort"
)

// Match represents a single completed football match result.
// Matches are the immutable input to the estimator and are never mutated.
type Match struct {
	Date      string `json:"date,omitempty"`
	Season    string `json:"season,omitempty"`
	HomeTeam  string `json:"homeTeam"`
	AwayTeam  string `json:"awayTeam"`
	HomeGoals int    `json:"homeGoals"`
	AwayGoals int    `json:"awayGoals"`
}

// Validate checks the structural invariants of a single match
func (m *Match) Validate() error {
	if m.HomeTeam == "" || m.AwayTeam == "" {
		return fmt.Errorf("match is missing a team name: %q vs %q", m.HomeTeam, m.AwayTeam)
	}
	if m.HomeTeam == m.AwayTeam {
		return fmt.Errorf("team cannot play itself: %s", m.HomeTeam)
	}
	if m.HomeGoals < 0 || m.AwayGoals < 0 {
		return fmt.Errorf("negative goal count in %s vs %s: %d-%d",
			m.HomeTeam, m.AwayTeam, m.HomeGoals, m.AwayGoals)
	}
	return nil
}

// Result returns "H" for a home win, "D" for a draw, "A" for an away win
func (m *Match) Result() string {
	if m.HomeGoals > m.AwayGoals {
		return "H"
	} else if m.HomeGoals < m.AwayGoals {
		return "A"
	}
	return "D"
}

// ExtractTeams returns the sorted list of distinct team names in the matches
func ExtractTeams(matches []Match) []string {
	seen := make(map[string]bool)
	for _, match := range matches {
		seen[match.HomeTeam] = true
		seen[match.AwayTeam] = true
	}

	teams := make([]string, 0, len(seen))
	for team := range seen {
		teams = append(teams, team)
	}
	sort.Strings(teams)
	return teams
}

// validateMatches checks the whole dataset before estimation begins
func validateMatches(matches []Match) error {
	if len(matches) == 0 {
		return fmt.Errorf("no match data provided")
	}
	for i := range matches {
		if err := matches[i].Validate(); err != nil {
			return fmt.Errorf("invalid match at index %d: %w", i, err)
		}
	}
	return nil
}
