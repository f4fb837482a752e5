package enrich

import (
	"os"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/sirenrich/pkg/errors"
)

// Abbreviation is one whole-word rewrite applied during address
// normalization.
type Abbreviation struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// Rules holds the tunable matching policy: the heuristics here were
// calibrated against real registry data and are deliberately configuration,
// not code. Load overrides from a YAML file with LoadRules.
type Rules struct {
	// Abbreviations are whole-word rewrites applied to both addresses
	// before comparison.
	Abbreviations []Abbreviation `yaml:"abbreviations"`

	// Separators cut a company name at the first occurrence; text after a
	// separator is decoration ("ACME ELEC - Agence de Lyon").
	Separators []string `yaml:"separators"`

	// Cities is the list of city names stripped from the end of a company
	// name before querying.
	Cities []string `yaml:"cities"`

	// Placeholders are input address values that carry no information and
	// never match anything.
	Placeholders []string `yaml:"placeholders"`

	// ActivityKeywords drive the secondary address-search fallback: a
	// candidate whose name or activity mentions one of these is preferred
	// when no candidate name resembles the input.
	ActivityKeywords []string `yaml:"activity_keywords"`

	// StreetWords are the address tokens kept when building a secondary
	// search query from an address.
	StreetWords []string `yaml:"street_words"`

	// MinCommonWords is the minimum number of shared words for two
	// addresses to match on word overlap.
	MinCommonWords int `yaml:"min_common_words"`

	// WordOverlap is the fraction of the input address words that must
	// appear in the registry address for an overlap match.
	WordOverlap float64 `yaml:"word_overlap"`

	// MaxAlternates caps how many alternate officers are emitted per row.
	MaxAlternates int `yaml:"max_alternates"`
}

// DefaultRules returns the built-in matching policy.
func DefaultRules() *Rules {
	return &Rules{
		Abbreviations: []Abbreviation{
			{From: "BOULEVARD", To: "BD"},
			{From: "AVENUE", To: "AV"},
			{From: "ROUTE", To: "RTE"},
			{From: "RUE", To: "R"},
			{From: "SAINT", To: "ST"},
			{From: "SAINTE", To: "STE"},
		},
		Separators: []string{" - ", " | ", " – ", " : ", " / "},
		Cities: []string{
			"PARIS", "LYON", "MARSEILLE", "TOULOUSE", "NICE", "NANTES", "MONTPELLIER",
			"STRASBOURG", "BORDEAUX", "LILLE", "RENNES", "REIMS", "TOULON", "GRENOBLE",
			"DIJON", "ANGERS", "NÎMES", "VILLEURBANNE", "SAINT-DENIS", "ASNIÈRES", "CAEN",
			"SAINT-ÉTIENNE", "ROUEN", "NANCY", "ORLÉANS", "LIMOGES", "MULHOUSE",
			"SAINT-PAUL", "ROUBAIX", "DUNKERQUE", "PERPIGNAN", "AMIENS", "BOULOGNE",
			"BESANÇON", "BREST", "CANNES", "METZ", "ANTIBES", "HONFLEUR", "HYMER", "FECAMP",
		},
		Placeholders: []string{"·", ".", "-", "/"},
		ActivityKeywords: []string{
			"ELEC", "ELECTR", "ELECTRIC", "ELECTRONIQUE", "CÂBLAGE", "CABLAGE",
			"CABL", "INSTAL", "COURANT", "TELECOM", "ENERGI", "ENERGIE",
		},
		StreetWords: []string{
			"rue", "avenue", "boulevard", "bd", "av", "rte", "route",
			"allée", "all", "chemin", "impasse", "place", "quai",
		},
		MinCommonWords: 2,
		WordOverlap:    0.3,
		MaxAlternates:  5,
	}
}

// LoadRules reads a YAML policy file and overlays it on the defaults.
// Fields absent from the file keep their default values.
func LoadRules(path string) (*Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}

	rules := DefaultRules()
	if err := yaml.Unmarshal(data, rules); err != nil {
		return nil, errors.WrapParse("yaml", path, err)
	}
	return rules, nil
}

// IsPlaceholder reports whether the given address value is a contentless
// placeholder.
func (r *Rules) IsPlaceholder(address string) bool {
	for _, p := range r.Placeholders {
		if address == p {
			return true
		}
	}
	return false
}
