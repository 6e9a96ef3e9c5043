package normalize

import (
	"strings"

	"github.com/fairscore/crednorm/internal/model"
)

// buildSubject collects name and date-of-birth observations. The page-info
// subject name seeds the primary name only when the scraped sections
// produced none of their own.
func (c *Context) buildSubject(set *model.RawObservationSet, page *model.PageInfo) {
	seenNames := make(map[string]bool)
	seenDOBs := make(map[string]bool)

	addName := func(name, importID string) {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			return
		}
		key := strings.ToLower(strings.Join(strings.Fields(trimmed), " "))
		if seenNames[key] {
			return
		}
		seenNames[key] = true
		c.subject.Names = append(c.subject.Names, model.SubjectName{
			FullName:       trimmed,
			SourceImportID: importID,
			Primary:        len(c.subject.Names) == 0,
		})
	}

	addDOB := func(raw, fieldName string) {
		date, ok := parseDate(raw)
		if !ok {
			c.Warn(model.DomainSubject, fieldName, raw, "unparseable date of birth")
			return
		}
		if !seenDOBs[date] {
			seenDOBs[date] = true
			c.subject.DatesOfBirth = append(c.subject.DatesOfBirth, date)
		}
	}

	for _, group := range GroupByDomain(set, model.DomainSubject) {
		importID := c.registerImport(set.Metadata, group.SourceSystem)
		if name, ok := group.Field("full_name"); ok {
			addName(name, importID)
		} else if name, ok := group.Field("name"); ok {
			addName(name, importID)
		}
		if raw, ok := group.Field("date_of_birth"); ok {
			addDOB(raw, "date_of_birth")
		}
		if raw, ok := group.Field("dob"); ok {
			addDOB(raw, "dob")
		}
	}

	// Electoral roll listings sometimes carry the only DOB on the report.
	for _, group := range GroupByDomain(set, model.DomainElectoralRoll) {
		if raw, ok := group.Field("dob"); ok {
			addDOB(raw, "dob")
		}
	}

	if len(c.subject.Names) == 0 && page != nil && page.SubjectName != "" {
		addName(page.SubjectName, "")
	}
}
