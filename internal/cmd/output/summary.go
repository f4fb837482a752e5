package output

import (
	"os"
	"strconv"

	"github.com/agentstation/sirenrich/pkg/reconciler"
)

// summaryView wraps a run summary with its table layout.
type summaryView struct {
	*reconciler.Summary
}

// TableData renders the summary as a property/value table.
func (v summaryView) TableData() Data {
	rows := [][]string{
		{"Rows", strconv.Itoa(v.Rows)},
		{"Found", strconv.Itoa(v.Found)},
		{"Not found", strconv.Itoa(v.NotFound)},
		{"Skipped", strconv.Itoa(v.Skipped)},
		{"Lookup failures", strconv.Itoa(v.LookupFailures)},
		{"Address matches", strconv.Itoa(v.AddressMatches)},
		{"Address mismatches", strconv.Itoa(v.AddressMismatches)},
		{"Output", v.OutputPath},
		{"CSV export", v.CSVPath},
	}
	return Data{Headers: []string{"Property", "Value"}, Rows: rows}
}

// FormatSummary writes the run summary to stdout in the given format.
func FormatSummary(summary *reconciler.Summary, format Format) error {
	formatter := NewFormatter(format)

	switch format {
	case FormatJSON, FormatYAML:
		return formatter.Format(os.Stdout, summary)
	default:
		return formatter.Format(os.Stdout, summaryView{summary})
	}
}
