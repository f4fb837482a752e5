package enrich

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanAddress(t *testing.T) {
	rules := DefaultRules()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"uppercases and collapses", "12 rue  de la   Paix", "12 R DE LA PAIX"},
		{"abbreviates street words", "10 Boulevard Haussmann", "10 BD HAUSSMANN"},
		{"abbreviates avenue and saint", "3 Avenue de Saint Mandé", "3 AV DE ST MANDE"},
		{"strips punctuation", "12, rue de la Paix (Bât. B)", "12 R DE LA PAIX BAT B"},
		{"folds diacritics", "5 allée des Érables, Orléans", "5 ALLEE DES ERABLES ORLEANS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rules.CleanAddress(tt.input))
		})
	}
}

func TestAddressesMatch(t *testing.T) {
	rules := DefaultRules()

	tests := []struct {
		name     string
		original string
		api      string
		want     bool
	}{
		{
			"case and whitespace insensitive",
			"12 Rue de la Paix, Paris",
			"12 rue de la paix, paris",
			true,
		},
		{
			"different streets do not match",
			"5 Avenue Foch",
			"10 Boulevard Haussmann",
			false,
		},
		{
			"abbreviated form matches expanded form",
			"10 BD HAUSSMANN 75009 PARIS",
			"10 Boulevard Haussmann 75009 Paris",
			true,
		},
		{
			"substring containment matches",
			"12 rue de la Paix",
			"12 RUE DE LA PAIX 75002 PARIS",
			true,
		},
		{
			"diacritics are ignored",
			"5 allee des Erables Orleans",
			"5 Allée des Érables Orléans",
			true,
		},
		{
			"postal code disagreement is decisive",
			"12 rue Victor Hugo 75015 Paris grande galerie",
			"12 rue Victor Hugo 69002 Paris grande galerie",
			false,
		},
		{
			"word overlap above threshold matches",
			"Zone Industrielle des Chasseurs 14600 Honfleur",
			"14600 Honfleur ZI des Chasseurs batiment C",
			true,
		},
		{
			"empty original never matches",
			"",
			"12 rue de la Paix",
			false,
		},
		{
			"empty api address never matches",
			"12 rue de la Paix",
			"",
			false,
		},
		{
			"placeholder input never matches",
			"·",
			"12 rue de la Paix",
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rules.AddressesMatch(tt.original, tt.api))
		})
	}
}

func TestUsableAddress(t *testing.T) {
	rules := DefaultRules()

	assert.True(t, rules.UsableAddress("12 rue de la Paix"))
	assert.False(t, rules.UsableAddress(""))
	assert.False(t, rules.UsableAddress("   "))
	assert.False(t, rules.UsableAddress("·"))
	assert.False(t, rules.UsableAddress("."))
	assert.False(t, rules.UsableAddress("-"))
	assert.False(t, rules.UsableAddress("/"))
}
