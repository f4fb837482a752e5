// Package enrich implements the per-row enrichment pipeline: it queries the
// company registry for each input record, picks the best candidate, and
// derives the officer and address-reconciliation fields that end up in the
// output spreadsheet.
package enrich

// InputRecord is one row of the input table. It is immutable once read.
type InputRecord struct {
	// Company is the company name to look up. Required.
	Company string

	// Address is the address supplied alongside the name, used to
	// disambiguate candidates and to flag mismatches. Optional.
	Address string
}

// OfficerDetail is one officer of the matched company, flattened for output.
type OfficerDetail struct {
	Surname   string
	FirstName string
	Prenoms   string
	Role      string
	Age       string
	Corporate bool

	birthYear string
}

// Record is the result of enriching one InputRecord. Registry fields are
// empty when no candidate was found or the lookup failed; the record is
// terminal once the writers consume it.
type Record struct {
	Input InputRecord

	// Registry fields of the chosen candidate.
	Siren         string
	LegalName     string
	Address       string
	AdminState    string
	HeadcountCode string // internal only, never written to output
	Headcount     string
	CreationYear  string

	// Principal officer (the youngest when birth years are known).
	Officer OfficerDetail

	// Alternate officers, deduplicated, capped.
	Alternates []OfficerDetail

	// FirstNames is the ordered, deduplicated list of officer first given
	// names.
	FirstNames []string

	// OfficersDisplay is the combined one-line officers string.
	OfficersDisplay string

	// Found reports whether a candidate was chosen for this row.
	Found bool

	// LookupFailed reports whether the registry lookup failed (transport
	// error, rate limit). The row still appears in output, with empty
	// registry fields.
	LookupFailed bool

	// AddressMatch reports whether the supplied address agrees with the
	// registry's address for the chosen candidate.
	AddressMatch bool

	// AddressMismatch is true when a candidate was chosen, the supplied
	// address is usable, and it disagrees with the registry's address.
	// Mismatch rows are highlighted in the spreadsheet output.
	AddressMismatch bool
}
