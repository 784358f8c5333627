package goalfit

/**
* Goalfit is a golang library for estimating per-team scoring strengths from
* football match results under the independent Poisson goal model.
* Each team carries four multiplicative parameters: home attack (alpha),
* away defense weakness (beta), home defense weakness (gamma) and away
* attack (delta). For a match with team i at home against team j the home
* side scores Poisson(alpha_i * beta_j) goals and the away side scores
* Poisson(gamma_i * delta_j) goals, independently.
 */
