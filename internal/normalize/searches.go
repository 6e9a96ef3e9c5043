package normalize

import (
	"github.com/fairscore/crednorm/internal/mapper"
	"github.com/fairscore/crednorm/internal/model"
)

// buildSearches emits one search footprint per grouped observation and
// registers the searching organisation with the searcher role.
func (c *Context) buildSearches(set *model.RawObservationSet) {
	for _, group := range GroupByDomain(set, model.DomainSearches) {
		name, ok := group.Field("searcher_name")
		if !ok {
			name, _ = group.Field("organisation")
		}

		record := model.SearchRecord{
			SearchID:       c.seq.Next("srch"),
			SourceImportID: c.registerImport(set.Metadata, group.SourceSystem),
			SearcherName:   name,
		}
		if name != "" {
			record.OrganisationID = c.RegisterOrganisation(name, model.RoleSearcher)
		}

		section, _ := group.Field("section")
		searchType, visibility, matched := mapper.SearchSection(section)
		record.SearchType = searchType
		record.Visibility = visibility
		if !matched && section != "" {
			c.Warn(model.DomainSearches, "section", section, "unrecognized search section")
		}

		if raw, ok := group.Field("search_date"); ok {
			if date, ok := parseDate(raw); ok {
				record.SearchDate = date
			} else {
				c.Warn(model.DomainSearches, "search_date", raw, "unparseable date")
			}
		}
		if purpose, ok := group.Field("purpose"); ok {
			record.Purpose = purpose
		}

		// Nothing identifies the searcher and nothing else was scraped:
		// skip rather than emit a record made only of defaults.
		if record.SearcherName == "" && record.SearchDate == "" && record.Purpose == "" {
			continue
		}
		c.searches = append(c.searches, record)
	}
}
