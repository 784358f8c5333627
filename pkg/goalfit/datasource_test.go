package goalfit_test

import (
	"testing"

	"github.com/richard-senior/goalfit/pkg/goalfit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResultsCSV(t *testing.T) {
	csvData := `Div,Date,HomeTeam,AwayTeam,FTHG,FTAG
E0,16/08/25,Arsenal,Chelsea,2,1
E0,17/08/25,Everton,Fulham,0,0
E0,23/08/25,Chelsea,Arsenal,,
E0,24/08/25,Fulham,Everton,3,2
`

	matches, err := goalfit.ParseResultsCSV(csvData)
	require.NoError(t, err)

	// The fixture without a full-time score is skipped, not an error
	require.Len(t, matches, 3)

	assert.Equal(t, "Arsenal", matches[0].HomeTeam)
	assert.Equal(t, "Chelsea", matches[0].AwayTeam)
	assert.Equal(t, 2, matches[0].HomeGoals)
	assert.Equal(t, 1, matches[0].AwayGoals)
	assert.Equal(t, "16/08/25", matches[0].Date)
	assert.Equal(t, "H", matches[0].Result())

	assert.Equal(t, "D", matches[1].Result())
	assert.Equal(t, "Fulham", matches[2].HomeTeam)
}

func TestParseResultsCSVWithBOM(t *testing.T) {
	csvData := "\ufeffDiv,Date,HomeTeam,AwayTeam,FTHG,FTAG\nE0,16/08/25,Arsenal,Chelsea,2,1\n"

	matches, err := goalfit.ParseResultsCSV(csvData)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "Arsenal", matches[0].HomeTeam)
}

func TestParseResultsCSVEmpty(t *testing.T) {
	matches, err := goalfit.ParseResultsCSV("")
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestParseResultsHTML(t *testing.T) {
	htmlContent := `<html><body><table>
	<tr><th>Home</th><th>Away</th><th>HG</th><th>AG</th></tr>
	<tr><td>Arsenal</td><td>Chelsea</td><td>2</td><td>1</td></tr>
	<tr><td>Everton</td><td>Fulham</td><td>0</td><td>0</td></tr>
	<tr><td>Chelsea</td><td>Arsenal</td><td>P</td><td>P</td></tr>
	</table></body></html>`

	matches, err := goalfit.ParseResultsHTML(htmlContent)
	require.NoError(t, err)

	// The postponed fixture with non-numeric scores is skipped
	require.Len(t, matches, 2)
	assert.Equal(t, "Arsenal", matches[0].HomeTeam)
	assert.Equal(t, "Chelsea", matches[0].AwayTeam)
	assert.Equal(t, 2, matches[0].HomeGoals)
	assert.Equal(t, "Everton", matches[1].HomeTeam)
	assert.Equal(t, 0, matches[1].AwayGoals)
}

func TestMatchValidation(t *testing.T) {
	valid := goalfit.Match{HomeTeam: "A", AwayTeam: "B", HomeGoals: 1, AwayGoals: 0}
	assert.NoError(t, valid.Validate())

	selfPlay := goalfit.Match{HomeTeam: "A", AwayTeam: "A", HomeGoals: 1, AwayGoals: 0}
	assert.Error(t, selfPlay.Validate())

	negative := goalfit.Match{HomeTeam: "A", AwayTeam: "B", HomeGoals: -1, AwayGoals: 0}
	assert.Error(t, negative.Validate())

	unnamed := goalfit.Match{HomeTeam: "", AwayTeam: "B", HomeGoals: 1, AwayGoals: 0}
	assert.Error(t, unnamed.Validate())
}

func TestExtractTeams(t *testing.T) {
	teams := goalfit.ExtractTeams(threeTeamMatches())
	assert.Equal(t, []string{"A", "B", "C"}, teams, "teams must be sorted and deduplicated")
}
