package goalfit

// ParamKind identifies one of the four per-team parameter vectors
type ParamKind int

const (
	HomeAttack  ParamKind = iota // alpha
	AwayDefense                  // beta
	HomeDefense                  // gamma
	AwayAttack                   // delta
)

var allParamKinds = []ParamKind{HomeAttack, AwayDefense, HomeDefense, AwayAttack}

// Restriction defines a nested model variant by tying parameters across
// teams. Teams mapped to the same group for a given parameter kind share a
// single variable during the update steps. A nil Restriction is the full
// model, one parameter per team per kind.
type Restriction struct {
	Name  string
	Group func(param ParamKind, team string) string
}

// FullModel returns the unrestricted model, one parameter per team per kind
func FullModel() *Restriction {
	return &Restriction{
		Name: "full",
		Group: func(param ParamKind, team string) string {
			return team
		},
	}
}

// IdenticalTeams returns the maximal restriction, a single shared
// alpha/beta/gamma/delta for every team
func IdenticalTeams() *Restriction {
	return &Restriction{
		Name: "identical-teams",
		Group: func(param ParamKind, team string) string {
			return "league"
		},
	}
}

// AttackOnly lets attacking strengths vary by team while pooling the
// defensive weaknesses into a single shared value per side
func AttackOnly() *Restriction {
	return &Restriction{
		Name: "attack-only",
		Group: func(param ParamKind, team string) string {
			if param == HomeAttack || param == AwayAttack {
				return team
			}
			return "league"
		},
	}
}

// group resolves the shared-variable key for a parameter, defaulting to one
// variable per team
func (r *Restriction) group(param ParamKind, team string) string {
	if r == nil || r.Group == nil {
		return team
	}
	return r.Group(param, team)
}

// ModelName returns the restriction name, "full" for the nil restriction
func (r *Restriction) ModelName() string {
	if r == nil || r.Name == "" {
		return "full"
	}
	return r.Name
}

// FreeParameters counts the distinct free parameters of the restricted
// model over the given teams. The two normalization constraints each remove
// one degree of freedom.
func (r *Restriction) FreeParameters(teams []string) int {
	total := 0
	for _, param := range allParamKinds {
		groups := make(map[string]bool)
		for _, team := range teams {
			groups[r.group(param, team)] = true
		}
		total += len(groups)
	}
	return total - 2
}

// LikelihoodRatio reports the comparison of a restricted model nested in a
// fuller one. The statistic is referred to a chi-squared distribution with
// the given degrees of freedom by the caller; this package only reports it.
type LikelihoodRatio struct {
	Full             string  `json:"full"`
	Restricted       string  `json:"restricted"`
	Statistic        float64 `json:"statistic"`
	DegreesOfFreedom int     `json:"degrees_of_freedom"`
}

// CompareModels computes the likelihood-ratio statistic
// 2*(logLik(full) - logLik(restricted)) and the difference in
// free-parameter counts between the two fitted models
func CompareModels(full, restricted *FitResult) LikelihoodRatio {
	return LikelihoodRatio{
		Full:             full.Model,
		Restricted:       restricted.Model,
		Statistic:        2.0 * (full.LogLikelihood - restricted.LogLikelihood),
		DegreesOfFreedom: full.FreeParameters - restricted.FreeParameters,
	}
}
