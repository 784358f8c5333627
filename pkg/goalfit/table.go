package goalfit

import (
	"fmt"
	"strings"
)

/////////////////////////////////////////////////////////////////////////
////// Report Rendering
/////////////////////////////////////////////////////////////////////////

// RenderCoefficientTable formats the fitted team coefficients as a
// plain-text table with a diagnostics footer
func RenderCoefficientTable(result *FitResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Model: %s\n", result.Model)
	fmt.Fprintf(&b, "%-24s %12s %12s %12s %12s\n",
		"Team", "HomeAttack", "AwayDefense", "HomeDefense", "AwayAttack")
	fmt.Fprintf(&b, "%s\n", strings.Repeat("-", 76))

	for _, team := range result.Teams {
		fmt.Fprintf(&b, "%-24s %12.4f %12.4f %12.4f %12.4f\n",
			truncateString(team, 24),
			result.Alpha[team], result.Beta[team], result.Gamma[team], result.Delta[team])
	}

	fmt.Fprintf(&b, "%s\n", strings.Repeat("-", 76))
	fmt.Fprintf(&b, "log-likelihood: %.4f  iterations: %d  converged: %v  free parameters: %d\n",
		result.LogLikelihood, result.Iterations, result.Converged, result.FreeParameters)

	return b.String()
}

// RenderModelComparison formats likelihood-ratio comparisons between nested
// model variants. The statistic refers to a chi-squared distribution with
// the listed degrees of freedom; interpretation is left to the reader.
func RenderModelComparison(ratios []LikelihoodRatio) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%-36s %12s %6s\n", "Comparison", "2*dLogLik", "df")
	fmt.Fprintf(&b, "%s\n", strings.Repeat("-", 56))

	for _, ratio := range ratios {
		label := fmt.Sprintf("%s vs %s", ratio.Full, ratio.Restricted)
		fmt.Fprintf(&b, "%-36s %12.4f %6d\n",
			truncateString(label, 36), ratio.Statistic, ratio.DegreesOfFreedom)
	}

	return b.String()
}

// truncateString truncates a string to maxLen characters
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
