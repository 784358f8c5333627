package goalfit_test

import (
	"math/rand"
	"testing"

	"github.com/richard-senior/goalfit/pkg/goalfit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoissonProb(t *testing.T) {
	total := 0.0
	for k := 0; k <= 50; k++ {
		p := goalfit.PoissonProb(1.5, k)
		assert.GreaterOrEqual(t, p, 0.0)
		total += p
	}
	assert.InDelta(t, 1.0, total, 1e-9, "pmf must sum to one")

	assert.Equal(t, 1.0, goalfit.PoissonProb(0.0, 0))
	assert.Equal(t, 0.0, goalfit.PoissonProb(0.0, 3))
	assert.Equal(t, 0.0, goalfit.PoissonProb(2.0, -1))
}

func TestPoissonSampleMean(t *testing.T) {
	rng := rand.New(rand.NewSource(99))

	total := 0
	samples := 10000
	for i := 0; i < samples; i++ {
		value := goalfit.PoissonSample(2.5, rng)
		assert.GreaterOrEqual(t, value, 0)
		total += value
	}

	mean := float64(total) / float64(samples)
	assert.InDelta(t, 2.5, mean, 0.1, "sample mean should approach lambda")
}

func TestScoreProbabilityMatrix(t *testing.T) {
	result, err := goalfit.Fit(threeTeamMatches(), goalfit.DefaultFitOptions())
	require.NoError(t, err)

	matrix, err := goalfit.ScoreProbabilityMatrix(result, "A", "B")
	require.NoError(t, err)

	total := 0.0
	for _, row := range matrix {
		for _, p := range row {
			assert.GreaterOrEqual(t, p, 0.0)
			total += p
		}
	}
	// The matrix truncates at the configured goal range, so mass falls just
	// short of one
	assert.Greater(t, total, 0.95)
	assert.LessOrEqual(t, total, 1.0+1e-9)

	homeWin, draw, awayWin := goalfit.OutcomeProbabilities(matrix)
	assert.InDelta(t, total, homeWin+draw+awayWin, 1e-9)

	homeGoals, awayGoals := goalfit.MostLikelyScore(matrix)
	assert.GreaterOrEqual(t, homeGoals, 0)
	assert.GreaterOrEqual(t, awayGoals, 0)
	assert.Less(t, homeGoals, len(matrix))
	assert.Less(t, awayGoals, len(matrix))

	_, err = goalfit.ScoreProbabilityMatrix(result, "A", "Unknown")
	assert.Error(t, err, "unknown team must be rejected")
}
