package normalize

import (
	"github.com/fairscore/crednorm/internal/address"
	"github.com/fairscore/crednorm/internal/mapper"
	"github.com/fairscore/crednorm/internal/model"
)

// buildAddresses registers every observed address through the dedup registry
// and emits one association per observation. Linked addresses (reported
// moves) become AddressLink records between canonical entities.
func (c *Context) buildAddresses(set *model.RawObservationSet) {
	for _, group := range GroupByDomain(set, model.DomainAddresses) {
		raw, ok := group.Field("address")
		if !ok || raw == "" {
			continue
		}
		importID := c.registerImport(set.Metadata, group.SourceSystem)
		addrID := c.RegisterAddress(address.Parse(raw))
		if addrID == "" {
			c.Warn(model.DomainAddresses, "address", raw, "address produced no usable parts")
			continue
		}

		role := model.AddressRoleOther
		if roleText, ok := group.Field("role"); ok {
			mapped, matched := mapper.AddressRole(roleText)
			role = mapped
			if !matched {
				c.Warn(model.DomainAddresses, "role", roleText, "unrecognized address role")
			}
		}

		assoc := model.AddressAssociation{
			AssociationID:  c.seq.Next("aa"),
			AddressID:      addrID,
			Role:           role,
			SourceImportID: importID,
		}
		if fromRaw, ok := group.Field("from_date"); ok {
			if date, ok := parseDate(fromRaw); ok {
				assoc.FromDate = date
			} else {
				c.Warn(model.DomainAddresses, "from_date", fromRaw, "unparseable date")
			}
		}
		if toRaw, ok := group.Field("to_date"); ok {
			if date, ok := parseDate(toRaw); ok {
				assoc.ToDate = date
			} else {
				c.Warn(model.DomainAddresses, "to_date", toRaw, "unparseable date")
			}
		}
		c.addressAssociations = append(c.addressAssociations, assoc)

		// A reported previous address links toward this one; a reported next
		// address links away from it.
		if linkedRaw, ok := group.Field("linked_from"); ok && linkedRaw != "" {
			if linkedID := c.RegisterAddress(address.Parse(linkedRaw)); linkedID != "" {
				c.addressLinks = append(c.addressLinks, model.AddressLink{
					LinkID:         c.seq.Next("al"),
					FromAddressID:  linkedID,
					ToAddressID:    addrID,
					SourceImportID: importID,
				})
			}
		}
		if linkedRaw, ok := group.Field("linked_to"); ok && linkedRaw != "" {
			if linkedID := c.RegisterAddress(address.Parse(linkedRaw)); linkedID != "" {
				c.addressLinks = append(c.addressLinks, model.AddressLink{
					LinkID:         c.seq.Next("al"),
					FromAddressID:  addrID,
					ToAddressID:    linkedID,
					SourceImportID: importID,
				})
			}
		}
	}
}
