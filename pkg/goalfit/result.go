package goalfit

import (
	"fmt"
	"time"
)

// FitResult is the immutable output of a single estimation run: the frozen
// parameter set plus convergence diagnostics. It is produced by Fit,
// consumed by rendering and optionally persisted.
type FitResult struct {
	Model string   `json:"model"`
	Teams []string `json:"teams"`

	Alpha map[string]float64 `json:"alpha"` // home attack strength
	Beta  map[string]float64 `json:"beta"`  // away defense weakness
	Gamma map[string]float64 `json:"gamma"` // home defense weakness
	Delta map[string]float64 `json:"delta"` // away attack strength

	LogLikelihood    float64       `json:"log_likelihood"`
	Iterations       int           `json:"iterations"`
	Converged        bool          `json:"converged"`
	Trace            []float64     `json:"trace"` // per-iteration log-likelihood
	FreeParameters   int           `json:"free_parameters"`
	MatchesProcessed int           `json:"matches_processed"`
	ProcessingTime   time.Duration `json:"processing_time"`
}

// TeamCoefficients bundles the four fitted parameters of one team
type TeamCoefficients struct {
	Team        string  `json:"team"`
	HomeAttack  float64 `json:"home_attack"`  // alpha
	AwayDefense float64 `json:"away_defense"` // beta
	HomeDefense float64 `json:"home_defense"` // gamma
	AwayAttack  float64 `json:"away_attack"`  // delta
}

// Coefficients returns the fitted parameters for a single team
func (r *FitResult) Coefficients(team string) (TeamCoefficients, error) {
	if _, ok := r.Alpha[team]; !ok {
		return TeamCoefficients{}, fmt.Errorf("team %s not present in fit", team)
	}
	return TeamCoefficients{
		Team:        team,
		HomeAttack:  r.Alpha[team],
		AwayDefense: r.Beta[team],
		HomeDefense: r.Gamma[team],
		AwayAttack:  r.Delta[team],
	}, nil
}

// ExpectedGoals returns the fitted scoring rates for a fixture:
// alpha_home*beta_away goals for the home side, gamma_home*delta_away for
// the away side
func (r *FitResult) ExpectedGoals(homeTeam, awayTeam string) (float64, float64, error) {
	if _, ok := r.Alpha[homeTeam]; !ok {
		return 0, 0, fmt.Errorf("team %s not present in fit", homeTeam)
	}
	if _, ok := r.Beta[awayTeam]; !ok {
		return 0, 0, fmt.Errorf("team %s not present in fit", awayTeam)
	}
	lambdaHome := r.Alpha[homeTeam] * r.Beta[awayTeam]
	lambdaAway := r.Gamma[homeTeam] * r.Delta[awayTeam]
	return lambdaHome, lambdaAway, nil
}
