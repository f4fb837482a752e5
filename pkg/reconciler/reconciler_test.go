package reconciler

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/sirenrich/internal/tabular"
	"github.com/agentstation/sirenrich/pkg/enrich"
	"github.com/agentstation/sirenrich/pkg/errors"
	"github.com/agentstation/sirenrich/pkg/logging"
)

// stubEnricher answers from a fixed map keyed by company name.
type stubEnricher struct {
	mu      sync.Mutex
	results map[string]enrich.Record
	calls   []string
}

func (s *stubEnricher) Enrich(_ context.Context, rec enrich.InputRecord) enrich.Record {
	s.mu.Lock()
	s.calls = append(s.calls, rec.Company)
	s.mu.Unlock()

	out, ok := s.results[rec.Company]
	if !ok {
		return enrich.Record{Input: rec}
	}
	out.Input = rec
	return out
}

func writeInput(t *testing.T, dir string, headers []string, rows [][]string) string {
	t.Helper()
	path := filepath.Join(dir, "input.xlsx")
	require.NoError(t, tabular.WriteXLSX(path, &tabular.Table{Headers: headers, Rows: rows}, nil))
	return path
}

func acmeRecord() enrich.Record {
	return enrich.Record{
		Found:        true,
		Siren:        "111222333",
		LegalName:    "ACME SARL",
		Address:      "1 RUE HAUTE 75001 PARIS",
		AdminState:   "A",
		Headcount:    "10 à 19 salariés",
		CreationYear: "2001",
		Officer:      enrich.OfficerDetail{Surname: "DUPONT", FirstName: "Jean", Role: "Gérant", Age: "51 ans"},
		FirstNames:   []string{"Jean"},
		AddressMatch: true,
	}
}

func TestRunWritesEnrichedOutput(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir,
		[]string{"Company", "Address"},
		[][]string{
			{"ACME", "1 rue Haute, Paris"},
			{"GHOST", "2 rue Basse, Lyon"},
		})
	output := filepath.Join(dir, "out.xlsx")

	stub := &stubEnricher{results: map[string]enrich.Record{"ACME": acmeRecord()}}
	r := New(stub, WithLogger(logging.Nop()))

	summary, err := r.Run(context.Background(), input, output)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Rows)
	assert.Equal(t, 1, summary.Found)
	assert.Equal(t, 1, summary.NotFound)
	assert.Equal(t, output, summary.OutputPath)

	table, err := tabular.ReadXLSX(output)
	require.NoError(t, err)

	// Input columns survive, output columns follow.
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "ACME", table.Cell(0, table.ColumnIndex("Company")))
	assert.Equal(t, "111222333", table.Cell(0, table.ColumnIndex("SIREN")))
	assert.Equal(t, "ACME SARL", table.Cell(0, table.ColumnIndex("Nom_Raison_Sociale")))
	assert.Equal(t, "10 à 19 salariés", table.Cell(0, table.ColumnIndex("Tranche_Effectif")))
	assert.Equal(t, "Jean", table.Cell(0, table.ColumnIndex("Prenoms_Dirigeants")))
	assert.Equal(t, "Oui", table.Cell(0, table.ColumnIndex(matchColumn)))

	// Unmatched rows survive with empty enrichment fields.
	assert.Equal(t, "GHOST", table.Cell(1, table.ColumnIndex("Company")))
	assert.Equal(t, "", table.Cell(1, table.ColumnIndex("SIREN")))
	assert.Equal(t, "", table.Cell(1, table.ColumnIndex(matchColumn)))

	// The raw headcount code is never a column.
	assert.Equal(t, -1, table.ColumnIndex("Tranche_Effectif_Salarie"))
}

func TestRunWritesCSVBesideOutput(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, []string{"Company"}, [][]string{{"ACME"}})
	output := filepath.Join(dir, "out.xlsx")

	stub := &stubEnricher{results: map[string]enrich.Record{"ACME": acmeRecord()}}
	summary, err := New(stub, WithLogger(logging.Nop())).Run(context.Background(), input, output)
	require.NoError(t, err)

	require.NotEmpty(t, summary.CSVPath)
	assert.Equal(t, dir, filepath.Dir(summary.CSVPath))

	data, err := os.ReadFile(summary.CSVPath)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, data[:3])
}

func TestRunSkipsBlankCompanies(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir,
		[]string{"Company", "Address"},
		[][]string{
			{"ACME", ""},
			{"", "3 rue du Vide"},
		})

	stub := &stubEnricher{results: map[string]enrich.Record{"ACME": acmeRecord()}}
	summary, err := New(stub, WithLogger(logging.Nop())).Run(context.Background(), input, filepath.Join(dir, "out.xlsx"))
	require.NoError(t, err)

	assert.Equal(t, []string{"ACME"}, stub.calls)
	assert.Equal(t, 1, summary.Skipped)

	// The blank row still appears in the output.
	table, err := tabular.ReadXLSX(summary.OutputPath)
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)
}

func TestRunMissingCompanyColumn(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, []string{"Société"}, [][]string{{"ACME"}})
	output := filepath.Join(dir, "out.xlsx")

	_, err := New(&stubEnricher{}, WithLogger(logging.Nop())).Run(context.Background(), input, output)
	require.Error(t, err)
	assert.True(t, errors.IsConfig(err))

	// Nothing was written.
	_, statErr := os.Stat(output)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunUnreadableInput(t *testing.T) {
	dir := t.TempDir()
	_, err := New(&stubEnricher{}, WithLogger(logging.Nop())).Run(context.Background(), filepath.Join(dir, "missing.xlsx"), filepath.Join(dir, "out.xlsx"))
	require.Error(t, err)
	assert.True(t, errors.IsConfig(err))
}

func TestRunScrubsGeneratedColumns(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir,
		[]string{"Company", "SIREN", "Dirigeant1_Nom", "Nom", "Unnamed: 8"},
		[][]string{{"ACME", "stale", "stale", "stale", "stale"}})

	stub := &stubEnricher{results: map[string]enrich.Record{"ACME": acmeRecord()}}
	summary, err := New(stub, WithLogger(logging.Nop())).Run(context.Background(), input, filepath.Join(dir, "out.xlsx"))
	require.NoError(t, err)

	table, err := tabular.ReadXLSX(summary.OutputPath)
	require.NoError(t, err)

	// Stale values from a previous run are replaced, not duplicated.
	assert.Equal(t, -1, table.ColumnIndex("Nom"))
	assert.Equal(t, -1, table.ColumnIndex("Unnamed: 8"))
	assert.Equal(t, "111222333", table.Cell(0, table.ColumnIndex("SIREN")))

	seen := map[string]int{}
	for _, h := range table.Headers {
		seen[h]++
	}
	assert.Equal(t, 1, seen["SIREN"])
	assert.Equal(t, 1, seen["Dirigeant1_Nom"])
}

func TestRunAlternateOfficerColumns(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, []string{"Company"}, [][]string{{"ACME"}})

	rec := acmeRecord()
	rec.Alternates = []enrich.OfficerDetail{
		{Surname: "MARTIN", FirstName: "Paul", Role: "Directeur général", Age: "40 ans"},
	}
	stub := &stubEnricher{results: map[string]enrich.Record{"ACME": rec}}

	summary, err := New(stub, WithLogger(logging.Nop())).Run(context.Background(), input, filepath.Join(dir, "out.xlsx"))
	require.NoError(t, err)

	table, err := tabular.ReadXLSX(summary.OutputPath)
	require.NoError(t, err)

	assert.Equal(t, "MARTIN", table.Cell(0, table.ColumnIndex("Dirigeant1_Nom")))
	assert.Equal(t, "Paul", table.Cell(0, table.ColumnIndex("Dirigeant1_Prenom")))
	assert.Equal(t, "", table.Cell(0, table.ColumnIndex("Dirigeant2_Nom")))
	// All five slots exist even when fewer alternates do.
	assert.GreaterOrEqual(t, table.ColumnIndex("Dirigeant5_Age"), 0)
}

func TestRunConcurrentMatchesSerial(t *testing.T) {
	dir := t.TempDir()
	rows := [][]string{
		{"ACME"}, {"GHOST"}, {"ACME"}, {"GHOST"}, {"ACME"},
		{"GHOST"}, {"ACME"}, {"GHOST"}, {"ACME"}, {"GHOST"},
	}
	input := writeInput(t, dir, []string{"Company"}, rows)

	run := func(concurrency int, out string) *tabular.Table {
		stub := &stubEnricher{results: map[string]enrich.Record{"ACME": acmeRecord()}}
		summary, err := New(stub, WithLogger(logging.Nop()), WithConcurrency(concurrency)).
			Run(context.Background(), input, filepath.Join(dir, out))
		require.NoError(t, err)
		table, err := tabular.ReadXLSX(summary.OutputPath)
		require.NoError(t, err)
		return table
	}

	serial := run(1, "serial.xlsx")
	concurrent := run(4, "concurrent.xlsx")

	// Same rows, same order, regardless of how many lookups run at once.
	assert.Equal(t, serial.Headers, concurrent.Headers)
	assert.Equal(t, serial.Rows, concurrent.Rows)
}

func TestRunLookupFailureCounted(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, []string{"Company"}, [][]string{{"FLAKY"}})

	stub := &stubEnricher{results: map[string]enrich.Record{
		"FLAKY": {LookupFailed: true},
	}}
	summary, err := New(stub, WithLogger(logging.Nop())).Run(context.Background(), input, filepath.Join(dir, "out.xlsx"))
	require.NoError(t, err)

	assert.Equal(t, 1, summary.LookupFailures)
	assert.Equal(t, 1, summary.NotFound)

	// The failed row is still written.
	table, err := tabular.ReadXLSX(summary.OutputPath)
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "FLAKY", table.Cell(0, 0))
}
