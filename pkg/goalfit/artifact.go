package goalfit

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/richard-senior/goalfit/internal/logger"
)

// Compile-time checks that the artifact rows implement Persistable
var _ Persistable = (*FitRecord)(nil)
var _ Persistable = (*TeamRating)(nil)

// FitRecord is the persisted diagnostics row of a fit artifact
type FitRecord struct {
	ID               string    `json:"id" column:"id" dbtype:"TEXT" primary:"true" index:"true"`
	Model            string    `json:"model" column:"model" dbtype:"TEXT NOT NULL"`
	LogLikelihood    float64   `json:"logLikelihood" column:"log_likelihood" dbtype:"REAL DEFAULT 0.0"`
	Iterations       int       `json:"iterations" column:"iterations" dbtype:"INTEGER DEFAULT 0"`
	Converged        bool      `json:"converged" column:"converged" dbtype:"INTEGER DEFAULT 0"`
	FreeParameters   int       `json:"freeParameters" column:"free_parameters" dbtype:"INTEGER DEFAULT 0"`
	MatchesProcessed int       `json:"matchesProcessed" column:"matches_processed" dbtype:"INTEGER DEFAULT 0"`
	CreatedAt        time.Time `json:"createdAt" column:"created_at" dbtype:"DATETIME DEFAULT CURRENT_TIMESTAMP"`
}

func (f *FitRecord) GetTableName() string {
	return "fit"
}

func (f *FitRecord) GetPrimaryKey() map[string]any {
	return map[string]any{"id": f.ID}
}

func (f *FitRecord) BeforeSave() error {
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now()
	}
	return nil
}

// TeamRating is one persisted team row of a fit artifact
type TeamRating struct {
	FitID       string  `json:"fitId" column:"fit_id" dbtype:"TEXT NOT NULL" primary:"true" index:"true"`
	Team        string  `json:"team" column:"team" dbtype:"TEXT NOT NULL" primary:"true" index:"true"`
	HomeAttack  float64 `json:"homeAttack" column:"home_attack" dbtype:"REAL DEFAULT 1.0"`
	AwayDefense float64 `json:"awayDefense" column:"away_defense" dbtype:"REAL DEFAULT 1.0"`
	HomeDefense float64 `json:"homeDefense" column:"home_defense" dbtype:"REAL DEFAULT 1.0"`
	AwayAttack  float64 `json:"awayAttack" column:"away_attack" dbtype:"REAL DEFAULT 1.0"`
}

func (r *TeamRating) GetTableName() string {
	return "rating"
}

func (r *TeamRating) GetPrimaryKey() map[string]any {
	return map[string]any{"fit_id": r.FitID, "team": r.Team}
}

func (r *TeamRating) BeforeSave() error {
	return nil
}

/////////////////////////////////////////////////////////////////////////
////// Fit Artifact Persistence
/////////////////////////////////////////////////////////////////////////

// SaveFitResult persists a fit as a diagnostics row plus one rating row per
// team and returns the generated artifact ID. The per-iteration trace is a
// working diagnostic and is not persisted.
func SaveFitResult(result *FitResult) (string, error) {
	if err := CreateTable(&FitRecord{}); err != nil {
		return "", err
	}
	if err := CreateTable(&TeamRating{}); err != nil {
		return "", err
	}

	id := uuid.NewString()

	record := &FitRecord{
		ID:               id,
		Model:            result.Model,
		LogLikelihood:    result.LogLikelihood,
		Iterations:       result.Iterations,
		Converged:        result.Converged,
		FreeParameters:   result.FreeParameters,
		MatchesProcessed: result.MatchesProcessed,
	}
	if err := Save(record); err != nil {
		return "", fmt.Errorf("failed to save fit record: %w", err)
	}

	for _, team := range result.Teams {
		rating := &TeamRating{
			FitID:       id,
			Team:        team,
			HomeAttack:  result.Alpha[team],
			AwayDefense: result.Beta[team],
			HomeDefense: result.Gamma[team],
			AwayAttack:  result.Delta[team],
		}
		if err := Save(rating); err != nil {
			return "", fmt.Errorf("failed to save rating for %s: %w", team, err)
		}
	}

	logger.Info("Saved fit artifact", id, "with", len(result.Teams), "team ratings")
	return id, nil
}

// LoadFitResult reconstructs a previously persisted fit artifact
func LoadFitResult(id string) (*FitResult, error) {
	record := &FitRecord{}
	if err := FindByPrimaryKey(record, map[string]any{"id": id}); err != nil {
		return nil, fmt.Errorf("failed to load fit %s: %w", id, err)
	}

	rows, err := FindWhere(&TeamRating{}, "fit_id = ?", id)
	if err != nil {
		return nil, fmt.Errorf("failed to load ratings for fit %s: %w", id, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("fit %s has no team ratings", id)
	}

	result := &FitResult{
		Model:            record.Model,
		Alpha:            make(map[string]float64, len(rows)),
		Beta:             make(map[string]float64, len(rows)),
		Gamma:            make(map[string]float64, len(rows)),
		Delta:            make(map[string]float64, len(rows)),
		LogLikelihood:    record.LogLikelihood,
		Iterations:       record.Iterations,
		Converged:        record.Converged,
		FreeParameters:   record.FreeParameters,
		MatchesProcessed: record.MatchesProcessed,
	}

	for _, row := range rows {
		rating, ok := row.(*TeamRating)
		if !ok {
			return nil, fmt.Errorf("unexpected type in rating results for fit %s", id)
		}
		result.Teams = append(result.Teams, rating.Team)
		result.Alpha[rating.Team] = rating.HomeAttack
		result.Beta[rating.Team] = rating.AwayDefense
		result.Gamma[rating.Team] = rating.HomeDefense
		result.Delta[rating.Team] = rating.AwayAttack
	}
	sort.Strings(result.Teams)

	return result, nil
}
