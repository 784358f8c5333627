package goalfit_test

import (
	"testing"

	"github.com/richard-senior/goalfit/pkg/goalfit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitArtifactRoundTrip(t *testing.T) {
	require.NoError(t, goalfit.InitDatabase(":memory:"))
	defer goalfit.CloseDatabase()

	fitted, err := goalfit.Fit(threeTeamMatches(), goalfit.DefaultFitOptions())
	require.NoError(t, err)

	id, err := goalfit.SaveFitResult(fitted)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	loaded, err := goalfit.LoadFitResult(id)
	require.NoError(t, err)

	assert.Equal(t, fitted.Model, loaded.Model)
	assert.Equal(t, fitted.Teams, loaded.Teams)
	assert.Equal(t, fitted.Iterations, loaded.Iterations)
	assert.Equal(t, fitted.Converged, loaded.Converged)
	assert.Equal(t, fitted.FreeParameters, loaded.FreeParameters)
	assert.Equal(t, fitted.MatchesProcessed, loaded.MatchesProcessed)
	assert.InDelta(t, fitted.LogLikelihood, loaded.LogLikelihood, 1e-9)

	for _, team := range fitted.Teams {
		assert.InDelta(t, fitted.Alpha[team], loaded.Alpha[team], 1e-9)
		assert.InDelta(t, fitted.Beta[team], loaded.Beta[team], 1e-9)
		assert.InDelta(t, fitted.Gamma[team], loaded.Gamma[team], 1e-9)
		assert.InDelta(t, fitted.Delta[team], loaded.Delta[team], 1e-9)
	}
}

func TestLoadFitResultMissing(t *testing.T) {
	require.NoError(t, goalfit.InitDatabase(":memory:"))
	defer goalfit.CloseDatabase()

	// Ensure the tables exist before querying a nonexistent id
	fitted, err := goalfit.Fit(threeTeamMatches(), goalfit.DefaultFitOptions())
	require.NoError(t, err)
	_, err = goalfit.SaveFitResult(fitted)
	require.NoError(t, err)

	_, err = goalfit.LoadFitResult("no-such-artifact")
	assert.Error(t, err)
}

func TestSaveFitResultOverwrite(t *testing.T) {
	require.NoError(t, goalfit.InitDatabase(":memory:"))
	defer goalfit.CloseDatabase()

	fitted, err := goalfit.Fit(threeTeamMatches(), goalfit.DefaultFitOptions())
	require.NoError(t, err)

	// Two saves of the same fit produce two distinct artifacts
	first, err := goalfit.SaveFitResult(fitted)
	require.NoError(t, err)
	second, err := goalfit.SaveFitResult(fitted)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	loaded, err := goalfit.LoadFitResult(first)
	require.NoError(t, err)
	assert.Equal(t, fitted.Teams, loaded.Teams)
}
