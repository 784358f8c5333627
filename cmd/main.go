package main

import (
	"fmt"
	"os"

	"github.com/richard-senior/goalfit/internal/logger"
	"github.com/richard-senior/goalfit/pkg/goalfit"
)

func main() {
	logger.SetShowDateTime(true)

	if len(os.Args) < 2 {
		logger.Fatal("usage: goalfit <results.csv> [config.yaml]")
	}

	if len(os.Args) > 2 {
		config, err := goalfit.LoadConfig(os.Args[2])
		if err != nil {
			logger.Fatal("Could not load configuration:", err)
		}
		goalfit.UpdateConfig(config)
	}

	matches, err := goalfit.LoadMatchesCSV(os.Args[1])
	if err != nil {
		logger.Fatal("Could not load match results:", err)
	}
	logger.Info("Loaded", len(matches), "matches covering", len(goalfit.ExtractTeams(matches)), "teams")

	// Fit the model hierarchy from the maximal restriction up to the full model
	restrictions := []*goalfit.Restriction{
		goalfit.IdenticalTeams(),
		goalfit.AttackOnly(),
		goalfit.FullModel(),
	}

	fits := make([]*goalfit.FitResult, 0, len(restrictions))
	for _, restriction := range restrictions {
		options := goalfit.DefaultFitOptions()
		options.Restriction = restriction

		result, err := goalfit.Fit(matches, options)
		if err != nil {
			logger.Fatal("Estimation failed for model", restriction.ModelName(), err)
		}
		if !result.Converged {
			logger.Warn("Model did not converge within iteration bound:", result.Model)
		}

		fits = append(fits, result)
		fmt.Println(goalfit.RenderCoefficientTable(result))
	}

	// Compare each restricted variant against the full model
	full := fits[len(fits)-1]
	var ratios []goalfit.LikelihoodRatio
	for _, fit := range fits[:len(fits)-1] {
		ratios = append(ratios, goalfit.CompareModels(full, fit))
	}
	fmt.Println(goalfit.RenderModelComparison(ratios))

	id, err := goalfit.SaveFitResult(full)
	if err != nil {
		logger.Error("Could not persist fit artifact:", err)
		os.Exit(1)
	}
	logger.Info("Persisted full-model fit artifact", id)
}
