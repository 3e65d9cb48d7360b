// Package scoring computes the deterministic security score for a candidate
// subdomain name.
package scoring

import (
	"strings"
)

// lowEffortTokens each cost 20 points when present. A name containing two
// distinct tokens loses 40; repeats of the same token count once.
var lowEffortTokens = []string{"test", "demo", "temp", "tmp"}

// Score rates a name from 0 to 100. Pure function of the input: no clock,
// no randomness, no state.
func Score(name string) int {
	score := 100

	if len(name) < 5 {
		score -= 10
	}
	if !strings.ContainsAny(name, "0123456789") {
		score -= 5
	}
	if strings.Count(name, "-") > 2 {
		score -= 15
	}
	for _, token := range lowEffortTokens {
		if strings.Contains(name, token) {
			score -= 20
		}
	}

	return max(score, 0)
}

// Recommendations returns advisory strings for the caller to surface. Lower
// scores accumulate more of them.
func Recommendations(score int) []string {
	var recs []string
	if score < 80 {
		recs = append(recs, "Consider using a more complex subdomain name")
	}
	if score < 60 {
		recs = append(recs, "Avoid using common words or patterns")
	}
	if score < 40 {
		recs = append(recs, "Security review recommended before deployment")
	}
	return recs
}
