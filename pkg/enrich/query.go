package enrich

import "strings"

// SimplifyName reduces a company name to the form that searches best:
// decoration after a separator is cut, and a trailing city name is dropped
// unless it is part of the business name itself.
func (r *Rules) SimplifyName(name string) string {
	simplified := strings.TrimSpace(name)

	for _, sep := range r.Separators {
		if idx := strings.Index(simplified, sep); idx >= 0 {
			simplified = strings.TrimSpace(simplified[:idx])
			break
		}
	}

	words := strings.Fields(simplified)
	if len(words) < 2 {
		return simplified
	}

	if !r.endsWithCity(words) {
		return simplified
	}

	// "BAR ST MALO" is a business named after the city; keep "ST <CITY>"
	// together and only strip it when enough of the name remains.
	if len(words) > 2 && isSaint(words[len(words)-2]) && r.isCity(words[len(words)-1]) {
		if len(words) > 3 {
			return strings.Join(words[:len(words)-2], " ")
		}
		return simplified
	}

	for i := 1; i <= 3 && i < len(words); i++ {
		candidate := strings.Join(words[len(words)-i:], " ")
		if r.isCity(candidate) {
			return strings.Join(words[:len(words)-i], " ")
		}
	}

	return simplified
}

// AddressSearchTerms extracts the searchable parts of an address for the
// secondary lookup: house numbers and street-type words.
func (r *Rules) AddressSearchTerms(address string) string {
	var kept []string
	for _, part := range strings.Fields(address) {
		if containsDigit(part) || r.isStreetWord(part) {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, " ")
}

// endsWithCity reports whether the last one to three words form a known
// city name.
func (r *Rules) endsWithCity(words []string) bool {
	for i := 1; i <= 3 && i < len(words); i++ {
		if r.isCity(strings.Join(words[len(words)-i:], " ")) {
			return true
		}
	}
	return false
}

func (r *Rules) isCity(s string) bool {
	upper := strings.ToUpper(s)
	for _, city := range r.Cities {
		if upper == city {
			return true
		}
	}
	return false
}

func (r *Rules) isStreetWord(s string) bool {
	lower := strings.ToLower(s)
	for _, w := range r.StreetWords {
		if lower == w {
			return true
		}
	}
	return false
}

func isSaint(s string) bool {
	upper := strings.ToUpper(s)
	return upper == "ST" || upper == "SAINT"
}

func containsDigit(s string) bool {
	for _, c := range s {
		if c >= '0' && c <= '9' {
			return true
		}
	}
	return false
}
