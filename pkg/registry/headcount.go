package registry

// headcountLabels maps the registry's tranche_effectif_salarie codes to
// human-readable descriptions. The raw code is an internal detail and is
// never written to the outputs; only the label is.
var headcountLabels = map[string]string{
	"NN": "Unité non-employeuse ou présumée non-employeuse",
	"00": "0 salarié (a employé des salariés)",
	"01": "1 ou 2 salariés",
	"02": "3 à 5 salariés",
	"03": "6 à 9 salariés",
	"11": "10 à 19 salariés",
	"12": "20 à 49 salariés",
	"21": "50 à 99 salariés",
	"22": "100 à 199 salariés",
	"31": "200 à 249 salariés",
	"32": "250 à 499 salariés",
	"41": "500 à 999 salariés",
	"42": "1000 à 1999 salariés",
	"51": "2000 à 4999 salariés",
	"52": "5000 à 9999 salariés",
	"53": "10000 salariés et plus",
}

// HeadcountLabel translates a tranche_effectif_salarie code into its
// human-readable description. Unknown non-empty codes yield "null", matching
// how the registry itself renders missing headcount bands.
func HeadcountLabel(code string) string {
	if code == "" {
		return ""
	}
	if label, ok := headcountLabels[code]; ok {
		return label
	}
	return "null"
}
