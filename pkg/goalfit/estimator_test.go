package goalfit_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/richard-senior/goalfit/pkg/goalfit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// threeTeamMatches is a complete double round-robin between three teams
// with literal scores
func threeTeamMatches() []goalfit.Match {
	return []goalfit.Match{
		{HomeTeam: "A", AwayTeam: "B", HomeGoals: 2, AwayGoals: 1},
		{HomeTeam: "B", AwayTeam: "C", HomeGoals: 1, AwayGoals: 1},
		{HomeTeam: "C", AwayTeam: "A", HomeGoals: 0, AwayGoals: 2},
		{HomeTeam: "A", AwayTeam: "C", HomeGoals: 3, AwayGoals: 0},
		{HomeTeam: "B", AwayTeam: "A", HomeGoals: 2, AwayGoals: 0},
		{HomeTeam: "C", AwayTeam: "B", HomeGoals: 1, AwayGoals: 1},
	}
}

// assertNormalized checks the identifiability constraint on a finished fit
func assertNormalized(t *testing.T, result *goalfit.FitResult) {
	t.Helper()

	sumAlpha, sumBeta, sumGamma, sumDelta := 0.0, 0.0, 0.0, 0.0
	for _, team := range result.Teams {
		sumAlpha += result.Alpha[team]
		sumBeta += result.Beta[team]
		sumGamma += result.Gamma[team]
		sumDelta += result.Delta[team]
	}

	assert.InDelta(t, sumAlpha, sumBeta, 1e-9, "sum(alpha) must equal sum(beta)")
	assert.InDelta(t, sumGamma, sumDelta, 1e-9, "sum(gamma) must equal sum(delta)")
}

// assertMonotoneTrace checks the log-likelihood never decreases across iterations
func assertMonotoneTrace(t *testing.T, trace []float64) {
	t.Helper()

	for i := 1; i < len(trace); i++ {
		assert.GreaterOrEqual(t, trace[i], trace[i-1]-1e-6,
			"log-likelihood decreased at iteration %d: %f -> %f", i, trace[i-1], trace[i])
	}
}

func TestEndToEndThreeTeams(t *testing.T) {
	matches := threeTeamMatches()

	options := goalfit.DefaultFitOptions()
	options.MaxIterations = 100

	result, err := goalfit.Fit(matches, options)
	require.NoError(t, err, "Estimation failed on valid input")

	assert.True(t, result.Converged, "Expected convergence within 100 iterations")
	assert.LessOrEqual(t, result.Iterations, 100)
	assert.Equal(t, []string{"A", "B", "C"}, result.Teams)
	assert.Equal(t, 6, result.MatchesProcessed)

	for _, team := range result.Teams {
		coefficients, err := result.Coefficients(team)
		require.NoError(t, err)

		for _, value := range []float64{
			coefficients.HomeAttack, coefficients.AwayDefense,
			coefficients.HomeDefense, coefficients.AwayAttack,
		} {
			assert.False(t, math.IsNaN(value) || math.IsInf(value, 0),
				"non-finite parameter for team %s", team)
			assert.Greater(t, value, 0.0, "non-positive parameter for team %s", team)
		}
	}

	assertNormalized(t, result)
	assertMonotoneTrace(t, result.Trace)
	assert.Equal(t, result.LogLikelihood, result.Trace[len(result.Trace)-1])
}

func TestMonotonicLikelihood(t *testing.T) {
	// A larger seeded dataset: six teams, four double round-robins
	rng := rand.New(rand.NewSource(7))
	teams := []string{"Arsenal", "Burnley", "Chelsea", "Derby", "Everton", "Fulham"}

	var matches []goalfit.Match
	for round := 0; round < 4; round++ {
		for _, home := range teams {
			for _, away := range teams {
				if home == away {
					continue
				}
				matches = append(matches, goalfit.Match{
					HomeTeam:  home,
					AwayTeam:  away,
					HomeGoals: goalfit.PoissonSample(1.5, rng),
					AwayGoals: goalfit.PoissonSample(1.1, rng),
				})
			}
		}
	}

	result, err := goalfit.Fit(matches, goalfit.DefaultFitOptions())
	require.NoError(t, err)

	assertMonotoneTrace(t, result.Trace)
	assertNormalized(t, result)
}

func TestParameterRecovery(t *testing.T) {
	// Matches sampled from known parameters; with enough replicates the
	// fitted expected-goal products must approach the true ones
	trueAlpha := map[string]float64{"A": 1.4, "B": 1.2, "C": 1.0, "D": 0.8}
	trueBeta := map[string]float64{"A": 1.3, "B": 1.1, "C": 0.9, "D": 0.7}
	trueGamma := map[string]float64{"A": 0.8, "B": 1.0, "C": 1.1, "D": 1.2}
	trueDelta := map[string]float64{"A": 1.2, "B": 1.0, "C": 0.9, "D": 0.8}

	teams := []string{"A", "B", "C", "D"}
	rng := rand.New(rand.NewSource(42))

	var matches []goalfit.Match
	for replicate := 0; replicate < 40; replicate++ {
		for _, home := range teams {
			for _, away := range teams {
				if home == away {
					continue
				}
				muHome := trueAlpha[home] * trueBeta[away]
				muAway := trueGamma[home] * trueDelta[away]
				matches = append(matches, goalfit.Match{
					HomeTeam:  home,
					AwayTeam:  away,
					HomeGoals: goalfit.PoissonSample(muHome, rng),
					AwayGoals: goalfit.PoissonSample(muAway, rng),
				})
			}
		}
	}

	result, err := goalfit.Fit(matches, goalfit.DefaultFitOptions())
	require.NoError(t, err)
	require.True(t, result.Converged)

	// Compare on expected-goal products, which are invariant to the
	// normalization scale
	for _, home := range teams {
		for _, away := range teams {
			if home == away {
				continue
			}
			fittedHome, fittedAway, err := result.ExpectedGoals(home, away)
			require.NoError(t, err)

			assert.InDelta(t, trueAlpha[home]*trueBeta[away], fittedHome, 0.35,
				"home rate for %s vs %s", home, away)
			assert.InDelta(t, trueGamma[home]*trueDelta[away], fittedAway, 0.35,
				"away rate for %s vs %s", home, away)
		}
	}
}

func TestDegenerateInputRejection(t *testing.T) {
	// Nomads never play at home, so their parameters are unidentifiable
	matches := []goalfit.Match{
		{HomeTeam: "A", AwayTeam: "B", HomeGoals: 1, AwayGoals: 0},
		{HomeTeam: "B", AwayTeam: "A", HomeGoals: 2, AwayGoals: 2},
		{HomeTeam: "A", AwayTeam: "Nomads", HomeGoals: 3, AwayGoals: 1},
		{HomeTeam: "B", AwayTeam: "Nomads", HomeGoals: 0, AwayGoals: 0},
	}

	result, err := goalfit.Fit(matches, goalfit.DefaultFitOptions())
	require.Error(t, err)
	assert.Nil(t, result)

	var sufficiencyErr *goalfit.DataSufficiencyError
	require.ErrorAs(t, err, &sufficiencyErr, "expected a DataSufficiencyError")
	assert.Equal(t, "Nomads", sufficiencyErr.Team)
	assert.Equal(t, 0, sufficiencyErr.HomeMatches)
	assert.Equal(t, 2, sufficiencyErr.AwayMatches)
}

func TestInvalidInputs(t *testing.T) {
	_, err := goalfit.Fit(nil, goalfit.DefaultFitOptions())
	assert.Error(t, err, "empty input must be rejected")

	_, err = goalfit.Fit([]goalfit.Match{
		{HomeTeam: "A", AwayTeam: "A", HomeGoals: 1, AwayGoals: 1},
	}, goalfit.DefaultFitOptions())
	assert.Error(t, err, "a team playing itself must be rejected")

	_, err = goalfit.Fit([]goalfit.Match{
		{HomeTeam: "A", AwayTeam: "B", HomeGoals: -1, AwayGoals: 0},
		{HomeTeam: "B", AwayTeam: "A", HomeGoals: 0, AwayGoals: 0},
	}, goalfit.DefaultFitOptions())
	assert.Error(t, err, "negative goals must be rejected")
}

func TestNonConvergenceIsNonFatal(t *testing.T) {
	options := goalfit.DefaultFitOptions()
	options.MaxIterations = 1

	result, err := goalfit.Fit(threeTeamMatches(), options)
	require.NoError(t, err, "hitting the iteration bound must not be an error")

	assert.False(t, result.Converged)
	assert.Equal(t, 1, result.Iterations)
	assertNormalized(t, result)
}
