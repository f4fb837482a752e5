package reconciler

import (
	"time"

	"github.com/agentstation/sirenrich/pkg/enrich"
)

// Summary is the batch outcome reported at the end of a run.
type Summary struct {
	// Rows is the total number of data rows processed.
	Rows int `json:"rows" yaml:"rows"`

	// Found counts rows matched to a registry candidate.
	Found int `json:"found" yaml:"found"`

	// NotFound counts rows with a company name but no candidate.
	NotFound int `json:"not_found" yaml:"not_found"`

	// Skipped counts rows without a company name.
	Skipped int `json:"skipped" yaml:"skipped"`

	// LookupFailures counts rows whose registry lookup errored.
	LookupFailures int `json:"lookup_failures" yaml:"lookup_failures"`

	// AddressMatches counts rows whose input address agrees with the
	// registry.
	AddressMatches int `json:"address_matches" yaml:"address_matches"`

	// AddressMismatches counts rows flagged for address disagreement.
	AddressMismatches int `json:"address_mismatches" yaml:"address_mismatches"`

	// OutputPath is the enriched workbook written.
	OutputPath string `json:"output_path" yaml:"output_path"`

	// CSVPath is the CSV export written beside it.
	CSVPath string `json:"csv_path" yaml:"csv_path"`
}

func newSummary(records []enrich.Record) *Summary {
	s := &Summary{Rows: len(records)}
	for _, rec := range records {
		switch {
		case rec.Input.Company == "":
			s.Skipped++
		case rec.Found:
			s.Found++
		default:
			s.NotFound++
		}
		if rec.LookupFailed {
			s.LookupFailures++
		}
		if rec.AddressMatch {
			s.AddressMatches++
		}
		if rec.AddressMismatch {
			s.AddressMismatches++
		}
	}
	return s
}

// csvFileName returns the timestamped CSV export name.
func csvFileName() string {
	return "results_" + time.Now().Format("20060102_150405") + ".csv"
}
