package goalfit

import (
	"math"
	"math/rand"
)

// PoissonProb calculates Poisson probability P(X = k) where X ~ Poisson(lambda)
func PoissonProb(lambda float64, k int) float64 {
	if k < 0 {
		return 0
	}
	if lambda <= 0 {
		if k == 0 {
			return 1.0
		}
		return 0
	}

	// Use log space for numerical stability
	logProb := float64(k)*math.Log(lambda) - lambda - logFactorial(k)
	return math.Exp(logProb)
}

// logFactorial computes log(n!) for Poisson calculations
func logFactorial(n int) float64 {
	if n <= 1 {
		return 0
	}
	result := 0.0
	for i := 2; i <= n; i++ {
		result += math.Log(float64(i))
	}
	return result
}

// PoissonSample generates a single random number from a Poisson distribution
// using Knuth's algorithm, with a normal approximation for large lambda.
// The caller supplies the source so sampling can be seeded deterministically.
func PoissonSample(lambda float64, rng *rand.Rand) int {
	if lambda <= 0 {
		return 0
	}

	if lambda < 30 {
		L := math.Exp(-lambda)
		k := 0
		p := 1.0

		for p > L {
			k++
			p *= rng.Float64()
		}
		return k - 1
	}

	// Normal approximation for large lambda
	normal := rng.NormFloat64()
	sample := int(math.Round(lambda + math.Sqrt(lambda)*normal))
	if sample < 0 {
		return 0
	}
	return sample
}

// ScoreProbabilityMatrix builds the scoreline probability matrix for a
// fixture under the fitted independent-Poisson model. Entry [h][a] is the
// probability of the home side scoring h and the away side scoring a, for
// goals 0 to Config.GoalRange-1.
func ScoreProbabilityMatrix(result *FitResult, homeTeam, awayTeam string) ([][]float64, error) {
	lambdaHome, lambdaAway, err := result.ExpectedGoals(homeTeam, awayTeam)
	if err != nil {
		return nil, err
	}

	size := Config.GoalRange
	matrix := make([][]float64, size)
	for h := 0; h < size; h++ {
		matrix[h] = make([]float64, size)
		for a := 0; a < size; a++ {
			matrix[h][a] = PoissonProb(lambdaHome, h) * PoissonProb(lambdaAway, a)
		}
	}

	return matrix, nil
}

// OutcomeProbabilities sums the scoreline matrix into home win, draw and
// away win probabilities (lower triangle, diagonal, upper triangle)
func OutcomeProbabilities(matrix [][]float64) (homeWin, draw, awayWin float64) {
	for h := range matrix {
		for a := range matrix[h] {
			if h > a {
				homeWin += matrix[h][a]
			} else if h == a {
				draw += matrix[h][a]
			} else {
				awayWin += matrix[h][a]
			}
		}
	}
	return homeWin, draw, awayWin
}

// MostLikelyScore returns the scoreline with the highest probability
func MostLikelyScore(matrix [][]float64) (homeGoals, awayGoals int) {
	maxProb := 0.0
	for h := range matrix {
		for a := range matrix[h] {
			if matrix[h][a] > maxProb {
				maxProb = matrix[h][a]
				homeGoals = h
				awayGoals = a
			}
		}
	}
	return homeGoals, awayGoals
}
