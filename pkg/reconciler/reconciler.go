// Package reconciler drives the batch: it reads the input workbook,
// enriches every row against the registry, and writes the enriched xlsx
// and CSV outputs. Row order in equals row order out.
package reconciler

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/agentstation/sirenrich/internal/tabular"
	"github.com/agentstation/sirenrich/pkg/enrich"
	"github.com/agentstation/sirenrich/pkg/errors"
	"github.com/agentstation/sirenrich/pkg/logging"
)

// Input column names. Company is required; Address is used when present.
const (
	companyColumn = "Company"
	addressColumn = "Address"
)

// legacyColumns are leftovers from earlier runs of the pipeline, scrubbed
// from the input before enrichment so reruns stay idempotent.
var legacyColumns = []string{"Nom", "Unnamed: 8", "Siren"}

// Enricher enriches one input row. *enrich.Enricher satisfies it.
type Enricher interface {
	Enrich(ctx context.Context, rec enrich.InputRecord) enrich.Record
}

// Reconciler runs the whole batch.
type Reconciler struct {
	enricher    Enricher
	logger      *zerolog.Logger
	concurrency int
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithLogger sets the batch logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(r *Reconciler) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithConcurrency sets how many rows are enriched in flight at once.
// Values below 1 mean serial.
func WithConcurrency(n int) Option {
	return func(r *Reconciler) {
		if n > 0 {
			r.concurrency = n
		}
	}
}

// New creates a Reconciler around an enricher.
func New(enricher Enricher, opts ...Option) *Reconciler {
	r := &Reconciler{
		enricher:    enricher,
		logger:      logging.Default(),
		concurrency: 1,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run reads the workbook at inputPath, enriches each row, and writes the
// enriched workbook to outputPath plus a timestamped CSV beside it. The
// returned Summary covers every processed row.
func (r *Reconciler) Run(ctx context.Context, inputPath, outputPath string) (*Summary, error) {
	table, err := r.readInput(inputPath)
	if err != nil {
		return nil, err
	}

	companyIdx := table.ColumnIndex(companyColumn)
	addressIdx := table.ColumnIndex(addressColumn)

	r.logger.Info().
		Int("rows", len(table.Rows)).
		Str("input", inputPath).
		Msg("Starting enrichment")

	records, err := r.enrichRows(ctx, table, companyIdx, addressIdx)
	if err != nil {
		return nil, err
	}

	appendResultColumns(table, records)

	summary := newSummary(records)

	highlight := buildHighlight(table, records)
	if err := tabular.WriteXLSX(outputPath, table, highlight); err != nil {
		return summary, fmt.Errorf("writing %d enriched rows: %w", summary.Rows, err)
	}
	summary.OutputPath = outputPath

	csvPath := csvPathFor(outputPath)
	if err := tabular.WriteCSV(csvPath, table); err != nil {
		return summary, fmt.Errorf("writing %d enriched rows: %w", summary.Rows, err)
	}
	summary.CSVPath = csvPath

	r.logger.Info().
		Int("rows", summary.Rows).
		Int("found", summary.Found).
		Int("mismatches", summary.AddressMismatches).
		Int("failures", summary.LookupFailures).
		Msg("Enrichment complete")

	return summary, nil
}

// readInput loads the workbook and validates its shape. An unreadable or
// malformed input is a configuration problem: nothing has been written
// yet and the run aborts.
func (r *Reconciler) readInput(path string) (*tabular.Table, error) {
	table, err := tabular.ReadXLSX(path)
	if err != nil {
		return nil, errors.NewConfigError("input", "cannot read workbook", err)
	}

	table.DropColumns(scrubColumns(table)...)

	if table.ColumnIndex(companyColumn) < 0 {
		return nil, errors.NewConfigError("input", "missing required column \""+companyColumn+"\"", nil)
	}
	return table, nil
}

// scrubColumns lists the columns to drop before enrichment: known legacy
// leftovers plus any column a previous run appended.
func scrubColumns(table *tabular.Table) []string {
	scrub := append([]string{}, legacyColumns...)
	for _, h := range table.Headers {
		if generatedColumns[h] || strings.HasPrefix(h, "Dirigeant") {
			scrub = append(scrub, h)
		}
	}
	return scrub
}

// enrichRows produces one enrich.Record per table row, preserving row
// order. Rows without a company name are skipped, not looked up.
func (r *Reconciler) enrichRows(ctx context.Context, table *tabular.Table, companyIdx, addressIdx int) ([]enrich.Record, error) {
	records := make([]enrich.Record, len(table.Rows))

	inputAt := func(i int) enrich.InputRecord {
		rec := enrich.InputRecord{Company: strings.TrimSpace(table.Cell(i, companyIdx))}
		if addressIdx >= 0 {
			rec.Address = strings.TrimSpace(table.Cell(i, addressIdx))
		}
		return rec
	}

	if r.concurrency <= 1 {
		for i := range table.Rows {
			if err := ctx.Err(); err != nil {
				return nil, errors.ErrCanceled
			}
			rec := inputAt(i)
			if rec.Company == "" {
				records[i] = enrich.Record{Input: rec}
				continue
			}
			records[i] = r.enricher.Enrich(ctx, rec)
		}
		return records, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for i := range table.Rows {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rec := inputAt(i)
			if rec.Company == "" {
				records[i] = enrich.Record{Input: rec}
				return nil
			}
			records[i] = r.enricher.Enrich(gctx, rec)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.ErrCanceled
	}
	return records, nil
}

// csvPathFor derives the CSV export path: results_<timestamp>.csv in the
// output workbook's directory.
func csvPathFor(outputPath string) string {
	return filepath.Join(filepath.Dir(outputPath), csvFileName())
}
