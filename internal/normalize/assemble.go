package normalize

import (
	"github.com/fairscore/crednorm/internal/ident"
	"github.com/fairscore/crednorm/internal/model"
)

// assemble freezes the run context into the immutable output envelope.
// Collections attach only when non-empty; nothing mutates the file after
// this point.
func (c *Context) assemble(set *model.RawObservationSet, cfg model.RunConfig) *model.CreditFile {
	meta := set.Metadata
	file := &model.CreditFile{
		SchemaVersion: model.SchemaVersion,
		FileID:        ident.ContentID("file", meta.AdapterID, meta.ExtractedAt, meta.SourceURI),
		SubjectID:     cfg.DefaultSubjectID,
		CreatedAt:     c.now.Format("2006-01-02T15:04:05Z"),
		CurrencyCode:  cfg.CurrencyCode,
		Imports:       c.imports,
	}

	if len(c.subject.Names) > 0 || len(c.subject.DatesOfBirth) > 0 {
		subject := c.subject
		file.Subject = &subject
	}
	if len(c.organisations) > 0 {
		file.Organisations = c.organisations
	}
	if len(c.addresses) > 0 {
		file.Addresses = c.addresses
	}
	if len(c.addressAssociations) > 0 {
		file.AddressAssociations = c.addressAssociations
	}
	if len(c.addressLinks) > 0 {
		file.AddressLinks = c.addressLinks
	}
	if len(c.tradelines) > 0 {
		file.Tradelines = c.tradelines
	}
	if len(c.searches) > 0 {
		file.Searches = c.searches
	}
	if len(c.creditScores) > 0 {
		file.CreditScores = c.creditScores
	}
	if len(c.electoralRoll) > 0 {
		file.ElectoralRoll = c.electoralRoll
	}
	if len(c.financialAssociates) > 0 {
		file.FinancialAssociates = c.financialAssociates
	}
	file.Indicators = c.indicators

	return file
}
