package enrich

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// postalCodeRe finds a French postal code in a raw address.
var postalCodeRe = regexp.MustCompile(`\b\d{5}\b`)

// foldDiacritics strips combining marks so "Orléans" compares equal to
// "Orleans".
var foldDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// CleanAddress normalizes an address for comparison: diacritics folded,
// uppercased, common French street words abbreviated, punctuation dropped,
// whitespace collapsed.
func (r *Rules) CleanAddress(address string) string {
	if address == "" {
		return ""
	}

	if folded, _, err := transform.String(foldDiacritics, address); err == nil {
		address = folded
	}
	address = strings.ToUpper(address)

	// Keep only letters, digits and spaces.
	var b strings.Builder
	b.Grow(len(address))
	for _, c := range address {
		switch {
		case unicode.IsLetter(c) || unicode.IsDigit(c):
			b.WriteRune(c)
		default:
			b.WriteRune(' ')
		}
	}

	words := strings.Fields(b.String())
	for i, word := range words {
		for _, abbr := range r.Abbreviations {
			if word == abbr.From {
				words[i] = abbr.To
				break
			}
		}
	}

	return strings.Join(words, " ")
}

// UsableAddress reports whether an input address carries enough information
// to compare against the registry.
func (r *Rules) UsableAddress(address string) bool {
	trimmed := strings.TrimSpace(address)
	return trimmed != "" && !r.IsPlaceholder(trimmed)
}

// AddressesMatch reports whether the input-supplied address agrees with the
// registry's address. The tolerance is heuristic: normalized substring
// containment counts as a match, a differing postal code forces a
// non-match, and otherwise enough word overlap decides.
func (r *Rules) AddressesMatch(original, api string) bool {
	if original == "" || api == "" {
		return false
	}
	if !r.UsableAddress(original) {
		return false
	}

	normOriginal := r.CleanAddress(original)
	normAPI := r.CleanAddress(api)
	if normOriginal == "" || normAPI == "" {
		return false
	}

	if strings.Contains(normAPI, normOriginal) || strings.Contains(normOriginal, normAPI) {
		return true
	}

	// Differing postal codes are decisive regardless of street overlap.
	originalCP := postalCodeRe.FindString(original)
	apiCP := postalCodeRe.FindString(api)
	if originalCP != "" && apiCP != "" && originalCP != apiCP {
		return false
	}

	originalWords := strings.Fields(normOriginal)
	apiWords := make(map[string]bool)
	for _, w := range strings.Fields(normAPI) {
		apiWords[w] = true
	}

	common := 0
	seen := make(map[string]bool)
	for _, w := range originalWords {
		if apiWords[w] && !seen[w] {
			common++
			seen[w] = true
		}
	}

	required := int(float64(len(originalWords)) * r.WordOverlap)
	if required < r.MinCommonWords {
		required = r.MinCommonWords
	}
	return common >= required
}
