package goalfit

import (
	"math"
	"time"

	"github.com/richard-senior/goalfit/internal/logger"
)

// FitOptions configures a single estimation run
type FitOptions struct {
	MaxIterations int          `json:"max_iterations"` // Iteration bound, the sole termination guarantee
	Tolerance     float64      `json:"tolerance"`      // Convergence tolerance
	Restriction   *Restriction `json:"-"`              // Parameter tying, nil means the full model
	Debug         bool         `json:"debug"`          // Enable progress output during estimation
}

// DefaultFitOptions returns fit options taken from the global configuration
func DefaultFitOptions() FitOptions {
	return FitOptions{
		MaxIterations: Config.MaxIterations,
		Tolerance:     Config.Tolerance,
	}
}

// Estimator computes maximum-likelihood team parameters by coordinate ascent.
// Holding the away-side parameters fixed, the optimal home-side parameters
// have a closed form (the Poisson rate MLE with per-match offsets), and
// symmetrically for the away side. Alternating the two exact updates gives a
// non-decreasing log-likelihood at every iteration.
type Estimator struct {
	matches   []Match
	options   FitOptions
	teams     []string
	rateFloor float64

	alpha map[string]float64 // home attack strength
	beta  map[string]float64 // away defense weakness
	gamma map[string]float64 // home defense weakness
	delta map[string]float64 // away attack strength
}

// NewEstimator creates a new estimator instance over the given matches
func NewEstimator(matches []Match, options FitOptions) *Estimator {
	if options.MaxIterations <= 0 {
		options.MaxIterations = Config.MaxIterations
	}
	if options.Tolerance <= 0 {
		options.Tolerance = Config.Tolerance
	}

	return &Estimator{
		matches:   matches,
		options:   options,
		teams:     ExtractTeams(matches),
		rateFloor: Config.RateFloor,
	}
}

// Fit is a convenience wrapper around NewEstimator().Fit()
func Fit(matches []Match, options FitOptions) (*FitResult, error) {
	return NewEstimator(matches, options).Fit()
}

// Fit runs the coordinate-ascent optimization to convergence or the
// iteration bound. It is a pure function over its inputs: a failed or
// non-converged fit corrupts no shared state, and independent fits may be
// run concurrently by the caller.
func (e *Estimator) Fit() (*FitResult, error) {
	startTime := time.Now()

	if err := validateMatches(e.matches); err != nil {
		return nil, err
	}
	if err := e.checkSufficiency(); err != nil {
		return nil, err
	}

	e.initParams()

	restriction := e.options.Restriction
	tolerance := e.options.Tolerance
	maxIterations := e.options.MaxIterations

	if e.options.Debug {
		logger.Debug("Starting estimation for", len(e.teams), "teams over", len(e.matches), "matches")
	}

	trace := make([]float64, 0, maxIterations)
	prevLogLikelihood := 0.0
	converged := false
	iterations := 0

	for iter := 0; iter < maxIterations; iter++ {
		previous := e.snapshot()

		e.updateHomeSide()
		e.updateAwaySide()
		e.rescale()

		logLikelihood, err := e.logLikelihood(iter)
		if err != nil {
			return nil, err
		}
		trace = append(trace, logLikelihood)
		iterations = iter + 1

		if e.options.Debug && iter%50 == 0 && iter > 0 {
			logger.Debug("Iteration", iter, "log-likelihood", logLikelihood)
		}

		// Converged when the likelihood gain or the aggregate L1 parameter
		// change drops below tolerance
		if iter > 0 {
			if math.Abs(logLikelihood-prevLogLikelihood) < tolerance || e.parameterDelta(previous) < tolerance {
				converged = true
				prevLogLikelihood = logLikelihood
				break
			}
		}
		prevLogLikelihood = logLikelihood
	}

	if e.options.Debug {
		logger.Debug("Estimation finished:", iterations, "iterations, converged", converged)
	}

	result := &FitResult{
		Model:            restriction.ModelName(),
		Teams:            e.teams,
		Alpha:            e.alpha,
		Beta:             e.beta,
		Gamma:            e.gamma,
		Delta:            e.delta,
		LogLikelihood:    prevLogLikelihood,
		Iterations:       iterations,
		Converged:        converged,
		Trace:            trace,
		FreeParameters:   restriction.FreeParameters(e.teams),
		MatchesProcessed: len(e.matches),
		ProcessingTime:   time.Since(startTime),
	}
	return result, nil
}

// checkSufficiency verifies every team has at least one home and one away
// match, without which its parameters are unidentifiable
func (e *Estimator) checkSufficiency() error {
	homeCounts := make(map[string]int)
	awayCounts := make(map[string]int)
	for _, match := range e.matches {
		homeCounts[match.HomeTeam]++
		awayCounts[match.AwayTeam]++
	}

	for _, team := range e.teams {
		if homeCounts[team] == 0 || awayCounts[team] == 0 {
			return &DataSufficiencyError{
				Team:        team,
				HomeMatches: homeCounts[team],
				AwayMatches: awayCounts[team],
			}
		}
	}
	return nil
}

// initParams starts every parameter at 1.0, which already satisfies the
// normalization constraint sum(alpha)==sum(beta), sum(gamma)==sum(delta)
func (e *Estimator) initParams() {
	e.alpha = make(map[string]float64, len(e.teams))
	e.beta = make(map[string]float64, len(e.teams))
	e.gamma = make(map[string]float64, len(e.teams))
	e.delta = make(map[string]float64, len(e.teams))
	for _, team := range e.teams {
		e.alpha[team] = 1.0
		e.beta[team] = 1.0
		e.gamma[team] = 1.0
		e.delta[team] = 1.0
	}
}

// updateHomeSide recomputes alpha and gamma holding beta and delta fixed.
// The MLE of a Poisson rate with fixed per-match offsets is the ratio of
// observed goals to the sum of offsets. Tied parameters pool their
// numerators and denominators and receive a single shared value.
func (e *Estimator) updateHomeSide() {
	restriction := e.options.Restriction

	numAttack := make(map[string]float64)
	denAttack := make(map[string]float64)
	numDefense := make(map[string]float64)
	denDefense := make(map[string]float64)

	for _, match := range e.matches {
		attackGroup := restriction.group(HomeAttack, match.HomeTeam)
		numAttack[attackGroup] += float64(match.HomeGoals)
		denAttack[attackGroup] += e.beta[match.AwayTeam]

		defenseGroup := restriction.group(HomeDefense, match.HomeTeam)
		numDefense[defenseGroup] += float64(match.AwayGoals)
		denDefense[defenseGroup] += e.delta[match.AwayTeam]
	}

	for _, team := range e.teams {
		attackGroup := restriction.group(HomeAttack, team)
		e.alpha[team] = e.flooredRatio(numAttack[attackGroup], denAttack[attackGroup])

		defenseGroup := restriction.group(HomeDefense, team)
		e.gamma[team] = e.flooredRatio(numDefense[defenseGroup], denDefense[defenseGroup])
	}
}

// updateAwaySide recomputes beta and delta holding alpha and gamma fixed
func (e *Estimator) updateAwaySide() {
	restriction := e.options.Restriction

	numDefense := make(map[string]float64)
	denDefense := make(map[string]float64)
	numAttack := make(map[string]float64)
	denAttack := make(map[string]float64)

	for _, match := range e.matches {
		defenseGroup := restriction.group(AwayDefense, match.AwayTeam)
		numDefense[defenseGroup] += float64(match.HomeGoals)
		denDefense[defenseGroup] += e.alpha[match.HomeTeam]

		attackGroup := restriction.group(AwayAttack, match.AwayTeam)
		numAttack[attackGroup] += float64(match.AwayGoals)
		denAttack[attackGroup] += e.gamma[match.HomeTeam]
	}

	for _, team := range e.teams {
		defenseGroup := restriction.group(AwayDefense, team)
		e.beta[team] = e.flooredRatio(numDefense[defenseGroup], denDefense[defenseGroup])

		attackGroup := restriction.group(AwayAttack, team)
		e.delta[team] = e.flooredRatio(numAttack[attackGroup], denAttack[attackGroup])
	}
}

// flooredRatio applies the closed-form ratio update with the configured
// rate floor, the tie-break for teams that never score (or never concede)
func (e *Estimator) flooredRatio(num, den float64) float64 {
	if den <= 0 {
		return e.rateFloor
	}
	value := num / den
	if value < e.rateFloor {
		return e.rateFloor
	}
	return value
}

// rescale enforces the identifiability constraint sum(alpha)==sum(beta) and
// sum(gamma)==sum(delta). One side is scaled up and the other down by the
// same factor, so every product alpha_i*beta_j and gamma_i*delta_j, and
// therefore the likelihood, is unchanged.
func (e *Estimator) rescale() {
	sumAlpha := sumValues(e.alpha)
	sumBeta := sumValues(e.beta)
	if sumAlpha > 0 && sumBeta > 0 {
		factor := math.Sqrt(sumBeta / sumAlpha)
		scaleValues(e.alpha, factor)
		scaleValues(e.beta, 1.0/factor)
	}

	sumGamma := sumValues(e.gamma)
	sumDelta := sumValues(e.delta)
	if sumGamma > 0 && sumDelta > 0 {
		factor := math.Sqrt(sumDelta / sumGamma)
		scaleValues(e.gamma, factor)
		scaleValues(e.delta, 1.0/factor)
	}
}

// logLikelihood computes the joint log-likelihood of all observed scores,
// up to the constant log(x!) terms which do not depend on the parameters
func (e *Estimator) logLikelihood(iteration int) (float64, error) {
	logLikelihood := 0.0

	for _, match := range e.matches {
		muHome := e.alpha[match.HomeTeam] * e.beta[match.AwayTeam]
		muAway := e.gamma[match.HomeTeam] * e.delta[match.AwayTeam]

		// The negated comparison also catches NaN
		if !(muHome > 0) {
			return 0, &NumericDomainError{
				HomeTeam:  match.HomeTeam,
				AwayTeam:  match.AwayTeam,
				Rate:      muHome,
				Iteration: iteration,
			}
		}
		if !(muAway > 0) {
			return 0, &NumericDomainError{
				HomeTeam:  match.HomeTeam,
				AwayTeam:  match.AwayTeam,
				Rate:      muAway,
				Iteration: iteration,
			}
		}

		logLikelihood += float64(match.HomeGoals)*math.Log(muHome) - muHome
		logLikelihood += float64(match.AwayGoals)*math.Log(muAway) - muAway
	}

	return logLikelihood, nil
}

// paramSnapshot holds copies of the four parameter vectors for change tracking
type paramSnapshot struct {
	alpha, beta, gamma, delta map[string]float64
}

func (e *Estimator) snapshot() paramSnapshot {
	return paramSnapshot{
		alpha: copyValues(e.alpha),
		beta:  copyValues(e.beta),
		gamma: copyValues(e.gamma),
		delta: copyValues(e.delta),
	}
}

// parameterDelta returns the L1 distance between the current parameters and
// a previous snapshot, summed across all four vectors
func (e *Estimator) parameterDelta(previous paramSnapshot) float64 {
	delta := 0.0
	for _, team := range e.teams {
		delta += math.Abs(e.alpha[team] - previous.alpha[team])
		delta += math.Abs(e.beta[team] - previous.beta[team])
		delta += math.Abs(e.gamma[team] - previous.gamma[team])
		delta += math.Abs(e.delta[team] - previous.delta[team])
	}
	return delta
}

func sumValues(values map[string]float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}

func scaleValues(values map[string]float64, factor float64) {
	for k, v := range values {
		values[k] = v * factor
	}
}

func copyValues(values map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(values))
	for k, v := range values {
		out[k] = v
	}
	return out
}
