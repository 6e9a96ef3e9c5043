package normalize

import (
	"github.com/fairscore/crednorm/internal/address"
	"github.com/fairscore/crednorm/internal/model"
)

// buildFinancialAssociates emits one associate per grouped observation.
func (c *Context) buildFinancialAssociates(set *model.RawObservationSet) {
	for _, group := range GroupByDomain(set, model.DomainFinancialAssociates) {
		name, ok := group.Field("name")
		if !ok || name == "" {
			if len(group.Fields) > 0 {
				c.Warn(model.DomainFinancialAssociates, "name", "", "associate observation without a name")
			}
			continue
		}
		associate := model.FinancialAssociate{
			AssociateID:    c.seq.Next("assoc"),
			SourceImportID: c.registerImport(set.Metadata, group.SourceSystem),
			Name:           name,
		}
		if rel, ok := group.Field("relationship"); ok {
			associate.Relationship = rel
		}
		if raw, ok := group.Field("address"); ok && raw != "" {
			associate.AddressID = c.RegisterAddress(address.Parse(raw))
		}
		c.financialAssociates = append(c.financialAssociates, associate)
	}
}
