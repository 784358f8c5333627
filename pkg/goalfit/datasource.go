package goalfit

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/richard-senior/goalfit/internal/logger"
)

/////////////////////////////////////////////////////////////////////////
////// Match Result Loading
/////////////////////////////////////////////////////////////////////////

// LoadMatchesCSV reads a results file in the football-data.co.uk column
// layout and returns the completed matches it contains
func LoadMatchesCSV(path string) ([]Match, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read results file %s: %w", path, err)
	}
	return ParseResultsCSV(string(data))
}

// ParseResultsCSV parses CSV data with HomeTeam/AwayTeam/FTHG/FTAG columns
// (football-data.co.uk layout) into Match values. Rows without a full-time
// score are skipped; the loader, not the estimator, owns data cleanliness.
func ParseResultsCSV(csvData string) ([]Match, error) {
	reader := csv.NewReader(strings.NewReader(csvData))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}

	if len(records) == 0 {
		return []Match{}, nil
	}

	// Header row, with BOM cleanup on the first column
	headers := records[0]
	if len(headers) > 0 {
		headers[0] = strings.TrimPrefix(headers[0], "\ufeff")
	}

	var matches []Match

	for i, record := range records[1:] {
		row := make(map[string]string)
		for j, value := range record {
			if j < len(headers) {
				row[headers[j]] = strings.TrimSpace(value)
			}
		}

		// Skip empty rows
		if row["HomeTeam"] == "" || row["AwayTeam"] == "" {
			continue
		}

		match, err := parseResultsRow(row)
		if err != nil {
			logger.Warn("Skipping match at row", i+2, err)
			continue
		}
		matches = append(matches, match)
	}

	return matches, nil
}

// parseResultsRow converts one CSV row into a Match
func parseResultsRow(row map[string]string) (Match, error) {
	homeGoals, err := strconv.Atoi(row["FTHG"])
	if err != nil {
		return Match{}, fmt.Errorf("missing or invalid full-time home goals: %q", row["FTHG"])
	}
	awayGoals, err := strconv.Atoi(row["FTAG"])
	if err != nil {
		return Match{}, fmt.Errorf("missing or invalid full-time away goals: %q", row["FTAG"])
	}

	match := Match{
		Date:      row["Date"],
		Season:    row["Season"],
		HomeTeam:  row["HomeTeam"],
		AwayTeam:  row["AwayTeam"],
		HomeGoals: homeGoals,
		AwayGoals: awayGoals,
	}

	if err := match.Validate(); err != nil {
		return Match{}, err
	}
	return match, nil
}

// ParseResultsHTML extracts match results from an HTML results table. Each
// table row is expected to carry four cells: home team, away team, home
// goals, away goals. Malformed rows are logged and skipped.
func ParseResultsHTML(htmlContent string) ([]Match, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var matches []Match

	doc.Find("table tr").Each(func(i int, s *goquery.Selection) {
		cells := s.Find("td")
		if cells.Length() < 4 {
			return // header or malformed row
		}

		homeTeam := strings.TrimSpace(cells.Eq(0).Text())
		awayTeam := strings.TrimSpace(cells.Eq(1).Text())
		homeGoals, errHome := strconv.Atoi(strings.TrimSpace(cells.Eq(2).Text()))
		awayGoals, errAway := strconv.Atoi(strings.TrimSpace(cells.Eq(3).Text()))

		if errHome != nil || errAway != nil {
			logger.Warn("Skipping HTML row with non-numeric score:", homeTeam, "vs", awayTeam)
			return
		}

		match := Match{
			HomeTeam:  homeTeam,
			AwayTeam:  awayTeam,
			HomeGoals: homeGoals,
			AwayGoals: awayGoals,
		}
		if err := match.Validate(); err != nil {
			logger.Warn("Skipping invalid HTML row:", err)
			return
		}
		matches = append(matches, match)
	})

	return matches, nil
}
