package enrich

import (
	"strings"

	"github.com/agentstation/sirenrich/pkg/registry"
)

// similarityThreshold is the minimum name-similarity score for the
// secondary address search to accept a candidate on name alone.
const similarityThreshold = 10

// chooseByAddress picks the most plausible candidate from a secondary
// address search: the one whose name most resembles the company name, or
// failing that, the best candidate whose activity mentions one of the
// configured keywords.
func (r *Rules) chooseByAddress(companyName string, candidates []registry.Candidate) *registry.Candidate {
	var (
		best              *registry.Candidate
		bestScore         = float64(-1)
		bestActivity      *registry.Candidate
		bestActivityScore = float64(-1)
	)

	for i := range candidates {
		c := &candidates[i]
		score := stringSimilarity(companyName, c.NomComplet)

		combined := strings.ToUpper(c.NomComplet + " " + c.ObjetSocial + " " + c.Description + " " + c.ActivitePrincipale)
		hasKeyword := false
		for _, keyword := range r.ActivityKeywords {
			if strings.Contains(combined, keyword) {
				hasKeyword = true
				break
			}
		}

		if score > similarityThreshold && score > bestScore {
			bestScore = score
			best = c
		}
		if hasKeyword && (bestActivity == nil || score > bestActivityScore) {
			bestActivityScore = score
			bestActivity = c
		}
	}

	if best != nil {
		return best
	}
	return bestActivity
}

// stringSimilarity scores how alike two names are: positional character
// agreement plus a bonus for similar lengths. Crude, but enough to sort a
// handful of candidates sharing an address.
func stringSimilarity(s1, s2 string) float64 {
	a := strings.ToUpper(s1)
	b := strings.ToUpper(s2)
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	common := 0
	for i := 0; i < n; i++ {
		if a[i] == b[i] {
			common++
		}
	}

	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	lengthDiff := 1 - float64(abs(len(a)-len(b)))/float64(maxLen)

	return float64(common) + lengthDiff*5
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
