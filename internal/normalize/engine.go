// Package normalize converts a raw observation set of heterogeneous,
// provider-specific fields scraped from web pages or extracted from PDF
// text into one canonical, schema-valid credit file plus a diagnostics
// envelope. The whole run is a pure, synchronous transformation: no I/O, no
// shared state, byte-identical output for identical input.
package normalize

import (
	"fmt"
	"time"

	"github.com/fairscore/crednorm/internal/model"
	"github.com/fairscore/crednorm/internal/validate"
)

// Run executes one normalization pass. Validation errors mark the result
// unsuccessful but the best-effort assembled file is always returned, so the
// caller decides whether to block sending. A panic anywhere inside the run
// is caught here, exactly once, and converted into a single system-domain
// error; no exception ever escapes this boundary.
func Run(set *model.RawObservationSet, cfg model.RunConfig, page *model.PageInfo, now time.Time) (result *model.Result) {
	result = &model.Result{}

	defer func() {
		if r := recover(); r != nil {
			result.Errors = append(result.Errors, model.NormalizationError{
				Code:    model.ErrInternal,
				Domain:  model.DomainSystem,
				Message: fmt.Sprintf("internal error: %v", r),
			})
			result.Success = false
			result.Summary.Errors = len(result.Errors)
		}
	}()

	ctx := newContext(now)

	// Import batches exist for every source system the adapter reported,
	// even ones no section ends up referencing.
	for _, raw := range set.Metadata.SourceSystemsFound {
		ctx.registerImport(set.Metadata, raw)
	}

	ctx.buildSubject(set, page)
	ctx.buildAddresses(set)
	ctx.buildElectoralRoll(set)
	ctx.buildTradelines(set)
	ctx.buildSearches(set)
	ctx.buildCreditScores(set, page)
	ctx.buildFinancialAssociates(set)
	ctx.buildIndicators(set)

	file := ctx.assemble(set, cfg)

	errs := validate.Schema(file)
	errs = append(errs, validate.References(file)...)

	result.CreditFile = file
	result.Errors = errs
	result.Warnings = ctx.warnings
	result.Success = len(errs) == 0
	result.Summary = summarize(file, ctx.warnings, errs)
	return result
}

func summarize(file *model.CreditFile, warnings []model.NormalizationWarning, errs []model.NormalizationError) model.Summary {
	s := model.Summary{
		Imports:             len(file.Imports),
		Organisations:       len(file.Organisations),
		Addresses:           len(file.Addresses),
		AddressAssociations: len(file.AddressAssociations),
		AddressLinks:        len(file.AddressLinks),
		Tradelines:          len(file.Tradelines),
		Searches:            len(file.Searches),
		CreditScores:        len(file.CreditScores),
		ElectoralRoll:       len(file.ElectoralRoll),
		FinancialAssociates: len(file.FinancialAssociates),
		Warnings:            len(warnings),
		Errors:              len(errs),
	}
	if file.Subject != nil {
		s.SubjectNames = len(file.Subject.Names)
	}
	return s
}
