package enrich

import "github.com/agentstation/sirenrich/pkg/registry"

// Selector chooses which candidate to keep for a row. It returns the index
// into candidates, or -1 to keep none. Candidates arrive in the service's
// own relevance order.
type Selector func(rec InputRecord, candidates []registry.Candidate) int

// FirstCandidate trusts the service's ranking and keeps the first
// candidate. This is the default policy.
func FirstCandidate(_ InputRecord, candidates []registry.Candidate) int {
	if len(candidates) == 0 {
		return -1
	}
	return 0
}

// PreferAddressMatch keeps the first candidate whose registered address
// matches the input address, falling back to the first candidate.
func PreferAddressMatch(rules *Rules) Selector {
	return func(rec InputRecord, candidates []registry.Candidate) int {
		if len(candidates) == 0 {
			return -1
		}
		if rules.UsableAddress(rec.Address) {
			for i, c := range candidates {
				if rules.AddressesMatch(rec.Address, c.Siege.Adresse) {
					return i
				}
			}
		}
		return 0
	}
}
