package reconciler

import (
	"strconv"
	"strings"

	"github.com/agentstation/sirenrich/internal/tabular"
	"github.com/agentstation/sirenrich/pkg/enrich"
)

// alternateSlots is how many numbered Dirigeant<N>_* column groups the
// output carries.
const alternateSlots = 5

// matchColumn holds the address verdict and drives the conditional fills.
const matchColumn = "Match_Adresse"

// generatedColumns are the output columns this pipeline appends. They are
// scrubbed from the input on reruns; numbered Dirigeant<N>_* columns are
// caught by prefix.
var generatedColumns = map[string]bool{
	"SIREN":              true,
	"Nom_Raison_Sociale": true,
	"Adresse":            true,
	"Etat_Administratif": true,
	"Tranche_Effectif":   true,
	"Annee_Creation":     true,
	"Prenoms_Dirigeants": true,
	"Nom_Dirigeant":      true,
	"Prenom_Dirigeant":   true,
	"Qualite_Dirigeant":  true,
	"Age_Dirigeant":      true,
	matchColumn:          true,
}

// appendResultColumns adds one output column per enriched field. The
// headcount code never appears: only its label does.
func appendResultColumns(table *tabular.Table, records []enrich.Record) {
	column := func(name string, value func(enrich.Record) string) {
		values := make([]string, len(records))
		for i, rec := range records {
			values[i] = value(rec)
		}
		table.AddColumn(name, values)
	}

	column("SIREN", func(r enrich.Record) string { return r.Siren })
	column("Nom_Raison_Sociale", func(r enrich.Record) string { return r.LegalName })
	column("Adresse", func(r enrich.Record) string { return r.Address })
	column("Etat_Administratif", func(r enrich.Record) string { return r.AdminState })
	column("Tranche_Effectif", func(r enrich.Record) string { return r.Headcount })
	column("Annee_Creation", func(r enrich.Record) string { return r.CreationYear })
	column("Prenoms_Dirigeants", func(r enrich.Record) string { return strings.Join(r.FirstNames, ", ") })
	column("Nom_Dirigeant", func(r enrich.Record) string { return r.Officer.Surname })
	column("Prenom_Dirigeant", func(r enrich.Record) string { return r.Officer.FirstName })
	column("Qualite_Dirigeant", func(r enrich.Record) string { return r.Officer.Role })
	column("Age_Dirigeant", func(r enrich.Record) string { return r.Officer.Age })
	column("Dirigeants", func(r enrich.Record) string { return r.OfficersDisplay })
	column(matchColumn, matchValue)

	for slot := 0; slot < alternateSlots; slot++ {
		prefix := "Dirigeant" + strconv.Itoa(slot+1) + "_"
		column(prefix+"Nom", alternateField(slot, func(d enrich.OfficerDetail) string { return d.Surname }))
		column(prefix+"Prenom", alternateField(slot, func(d enrich.OfficerDetail) string { return d.FirstName }))
		column(prefix+"Qualite", alternateField(slot, func(d enrich.OfficerDetail) string { return d.Role }))
		column(prefix+"Age", alternateField(slot, func(d enrich.OfficerDetail) string { return d.Age }))
	}
}

func alternateField(slot int, field func(enrich.OfficerDetail) string) func(enrich.Record) string {
	return func(r enrich.Record) string {
		if slot >= len(r.Alternates) {
			return ""
		}
		return field(r.Alternates[slot])
	}
}

// matchValue renders the address verdict: empty when there was no
// candidate or no usable input address to compare.
func matchValue(r enrich.Record) string {
	switch {
	case r.AddressMatch:
		return "Oui"
	case r.AddressMismatch:
		return "Non"
	default:
		return ""
	}
}

// buildHighlight maps the match verdicts to spreadsheet fills.
func buildHighlight(table *tabular.Table, records []enrich.Record) *tabular.Highlight {
	h := &tabular.Highlight{MatchColumn: table.ColumnIndex(matchColumn)}
	for i, rec := range records {
		switch {
		case rec.AddressMatch:
			h.MatchRows = append(h.MatchRows, i)
		case rec.AddressMismatch:
			h.MismatchRows = append(h.MismatchRows, i)
		}
	}
	return h
}
