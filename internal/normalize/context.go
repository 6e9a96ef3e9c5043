package normalize

import (
	"time"

	"github.com/fairscore/crednorm/internal/ident"
	"github.com/fairscore/crednorm/internal/mapper"
	"github.com/fairscore/crednorm/internal/model"
)

// Context is the single explicit mutable run state threaded through every
// stage: accumulator collections, dedup registries and ID counters. One
// Context is created per run and discarded with it; there is no shared or
// module-level state, so independent runs never interact.
type Context struct {
	seq     *ident.Sequencer
	now     time.Time
	runDate string

	imports        []model.ImportBatch
	importBySource map[model.SourceSystem]string

	organisations []model.Organisation
	orgIndex      map[string]int // normalized org name -> organisations index

	addresses []model.Address
	addrIndex map[string]int // normalized single line -> addresses index

	subject             model.Subject
	addressAssociations []model.AddressAssociation
	addressLinks        []model.AddressLink
	tradelines          []model.Tradeline
	searches            []model.SearchRecord
	creditScores        []model.CreditScore
	electoralRoll       []model.ElectoralRollEntry
	financialAssociates []model.FinancialAssociate
	indicators          *model.Indicators

	warnings []model.NormalizationWarning
}

func newContext(now time.Time) *Context {
	return &Context{
		seq:            ident.NewSequencer(),
		now:            now.UTC(),
		runDate:        now.UTC().Format("2006-01-02"),
		importBySource: make(map[model.SourceSystem]string),
		orgIndex:       make(map[string]int),
		addrIndex:      make(map[string]int),
	}
}

// Warn appends a non-fatal diagnostic; the offending field is simply left
// out of its entity.
func (c *Context) Warn(domain model.Domain, field, rawValue, message string) {
	c.warnings = append(c.warnings, model.NormalizationWarning{
		Domain:   domain,
		Field:    field,
		RawValue: rawValue,
		Message:  message,
	})
}

// registerImport ensures an import batch exists for the raw source-system
// label and returns its ID. Import IDs are content-addressed on the
// provenance triple so re-running the same input mints the same IDs.
func (c *Context) registerImport(meta model.Metadata, rawSource string) string {
	source, _ := mapper.SourceSystem(rawSource)
	if id, ok := c.importBySource[source]; ok {
		return id
	}
	id := ident.ContentID("imp", meta.AdapterID, meta.ExtractedAt, string(source))
	c.importBySource[source] = id
	c.imports = append(c.imports, model.ImportBatch{
		ImportID:       id,
		SourceSystem:   source,
		AdapterID:      meta.AdapterID,
		AdapterVersion: meta.AdapterVersion,
		ExtractedAt:    meta.ExtractedAt,
		SourceURI:      meta.SourceURI,
		ContentHash:    meta.ContentHash,
	})
	return id
}
