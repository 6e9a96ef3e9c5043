package normalize

import (
	"github.com/fairscore/crednorm/internal/address"
	"github.com/fairscore/crednorm/internal/model"
)

// buildElectoralRoll emits one register entry per grouped observation.
func (c *Context) buildElectoralRoll(set *model.RawObservationSet) {
	for _, group := range GroupByDomain(set, model.DomainElectoralRoll) {
		if len(group.Fields) == 0 {
			continue
		}
		entry := model.ElectoralRollEntry{
			EntryID:        c.seq.Next("roll"),
			SourceImportID: c.registerImport(set.Metadata, group.SourceSystem),
		}
		if name, ok := group.Field("name"); ok {
			entry.Name = name
		}
		if raw, ok := group.Field("address"); ok && raw != "" {
			entry.AddressID = c.RegisterAddress(address.Parse(raw))
		}
		if raw, ok := group.Field("start_date"); ok {
			if date, ok := parseDate(raw); ok {
				entry.StartDate = date
			} else {
				c.Warn(model.DomainElectoralRoll, "start_date", raw, "unparseable date")
			}
		}
		if raw, ok := group.Field("end_date"); ok {
			if date, ok := parseDate(raw); ok {
				entry.EndDate = date
			} else {
				c.Warn(model.DomainElectoralRoll, "end_date", raw, "unparseable date")
			}
		}
		// Listed with no end date means currently registered.
		if raw, ok := group.Field("current"); ok {
			if b, ok := parseBool(raw); ok {
				entry.Current = b
			} else {
				c.Warn(model.DomainElectoralRoll, "current", raw, "unparseable flag")
			}
		} else {
			entry.Current = entry.EndDate == ""
		}
		c.electoralRoll = append(c.electoralRoll, entry)
	}
}
