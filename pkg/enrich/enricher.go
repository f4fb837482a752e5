package enrich

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/sirenrich/pkg/logging"
	"github.com/agentstation/sirenrich/pkg/registry"
)

// Lookup is the registry search collaborator. *registry.Client satisfies it.
type Lookup interface {
	Search(ctx context.Context, query string) ([]registry.Candidate, error)
}

// Enricher enriches one input record at a time against the registry.
// Lookup failures are recovered locally: the row comes back with empty
// registry fields and the batch carries on.
type Enricher struct {
	lookup   Lookup
	rules    *Rules
	selector Selector
	logger   *zerolog.Logger
	now      func() time.Time
}

// EnricherOption configures an Enricher.
type EnricherOption func(*Enricher)

// WithRules overrides the default matching policy.
func WithRules(rules *Rules) EnricherOption {
	return func(e *Enricher) {
		if rules != nil {
			e.rules = rules
		}
	}
}

// WithSelector overrides the candidate selection policy.
func WithSelector(selector Selector) EnricherOption {
	return func(e *Enricher) {
		if selector != nil {
			e.selector = selector
		}
	}
}

// WithLogger sets the logger used for per-row warnings and debug output.
func WithLogger(logger *zerolog.Logger) EnricherOption {
	return func(e *Enricher) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithClock overrides the time source used for officer ages, for tests.
func WithClock(now func() time.Time) EnricherOption {
	return func(e *Enricher) {
		if now != nil {
			e.now = now
		}
	}
}

// New creates an Enricher backed by the given lookup collaborator.
func New(lookup Lookup, opts ...EnricherOption) *Enricher {
	e := &Enricher{
		lookup:   lookup,
		rules:    DefaultRules(),
		selector: FirstCandidate,
		logger:   logging.Default(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Rules returns the enricher's matching policy.
func (e *Enricher) Rules() *Rules {
	return e.rules
}

// Enrich looks the record's company up in the registry and merges the
// chosen candidate's fields into an enriched Record. It never fails the
// batch: lookup errors yield a record with empty registry fields.
func (e *Enricher) Enrich(ctx context.Context, rec InputRecord) Record {
	record := Record{Input: rec}

	query := e.rules.SimplifyName(rec.Company)
	e.logger.Debug().Str("company", rec.Company).Str("query", query).Msg("Searching registry")

	candidates, err := e.lookup.Search(ctx, query)
	if err != nil {
		e.logger.Warn().Err(err).Str("company", rec.Company).Msg("Lookup failed, continuing with empty registry fields")
		record.LookupFailed = true
		return record
	}

	if len(candidates) == 0 {
		candidates = e.searchByAddress(ctx, rec)
	}

	idx := e.selector(rec, candidates)
	if idx < 0 || idx >= len(candidates) {
		e.logger.Debug().Str("company", rec.Company).Msg("No candidate found")
		return record
	}
	chosen := candidates[idx]

	record.Found = true
	record.Siren = chosen.Siren
	record.LegalName = chosen.NomComplet
	record.Address = chosen.Siege.Adresse
	record.AdminState = chosen.EtatAdministratif
	record.HeadcountCode = chosen.Siege.TrancheEffectifSalarie
	record.Headcount = registry.HeadcountLabel(chosen.Siege.TrancheEffectifSalarie)
	record.CreationYear = chosen.CreationYear()

	officers := e.rules.SummarizeOfficers(chosen.Dirigeants, e.now().Year())
	record.Officer = officers.Principal
	record.Alternates = officers.Alternates
	record.FirstNames = officers.FirstNames
	record.OfficersDisplay = officers.Display

	if e.rules.UsableAddress(rec.Address) {
		record.AddressMatch = e.rules.AddressesMatch(rec.Address, chosen.Siege.Adresse)
		record.AddressMismatch = !record.AddressMatch
	}

	return record
}

// searchByAddress is the secondary lookup for companies whose name finds
// nothing: query by the address's street tokens and keep the candidate
// whose name or activity is most plausible.
func (e *Enricher) searchByAddress(ctx context.Context, rec InputRecord) []registry.Candidate {
	if !e.rules.UsableAddress(rec.Address) {
		return nil
	}

	terms := e.rules.AddressSearchTerms(rec.Address)
	if terms == "" {
		return nil
	}

	e.logger.Debug().Str("company", rec.Company).Str("query", terms).Msg("Secondary search by address")

	candidates, err := e.lookup.Search(ctx, terms)
	if err != nil {
		e.logger.Warn().Err(err).Str("company", rec.Company).Msg("Secondary address search failed")
		return nil
	}
	if len(candidates) == 0 {
		return nil
	}

	chosen := e.rules.chooseByAddress(rec.Company, candidates)
	if chosen == nil {
		e.logger.Debug().Str("company", rec.Company).Msg("No plausible candidate at this address")
		return nil
	}

	e.logger.Info().Str("company", rec.Company).Str("match", chosen.NomComplet).Msg("Matched by address search")
	return []registry.Candidate{*chosen}
}
