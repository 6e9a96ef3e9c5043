package normalize

import (
	"strings"

	"github.com/fairscore/crednorm/internal/address"
	"github.com/fairscore/crednorm/internal/ident"
	"github.com/fairscore/crednorm/internal/model"
)

// legalSuffixes are stripped from organisation names before computing the
// dedup key, so "Test Bank PLC" and "Test Bank" resolve to one entity.
var legalSuffixes = []string{
	"plc", "ltd", "limited", "llp", "llc", "inc", "co", "group", "uk",
}

// orgKey normalizes an organisation name into its registry key.
func orgKey(name string) string {
	folded := ident.NormalizeKeyPart(name)
	words := strings.Fields(folded)
	for len(words) > 0 && isLegalSuffix(words[len(words)-1]) {
		words = words[:len(words)-1]
	}
	if len(words) == 0 {
		// Name was nothing but suffixes; fall back to the folded original.
		return folded
	}
	return strings.Join(words, " ")
}

// RegisterAddress resolves a parsed address to its canonical entity,
// inserting it on first sight. One canonical Address exists per distinct
// normalized single-line string; repeat registrations return the existing ID
// without inserting a duplicate. Write-once-per-key, read-many.
func (c *Context) RegisterAddress(parsed address.Parsed) string {
	key := parsed.SingleLine()
	if key == "" {
		return ""
	}
	if idx, ok := c.addrIndex[key]; ok {
		return c.addresses[idx].AddressID
	}
	id := ident.ContentID("addr", key)
	c.addrIndex[key] = len(c.addresses)
	c.addresses = append(c.addresses, model.Address{
		AddressID:            id,
		Line1:                parsed.Line1,
		Line2:                parsed.Line2,
		TownCity:             parsed.TownCity,
		Postcode:             parsed.Postcode,
		CountryCode:          parsed.CountryCode,
		NormalizedSingleLine: key,
	})
	return id
}

// RegisterOrganisation resolves an organisation name to its canonical
// entity, inserting it on first sight. A repeat registration with a new role
// appends the role to the existing entity; entity identity never changes.
func (c *Context) RegisterOrganisation(name string, role model.OrganisationRole) string {
	key := orgKey(name)
	if key == "" {
		return ""
	}
	if idx, ok := c.orgIndex[key]; ok {
		org := &c.organisations[idx]
		if !hasRole(org.Roles, role) {
			org.Roles = append(org.Roles, role)
		}
		return org.OrganisationID
	}
	id := ident.ContentID("org", key)
	c.orgIndex[key] = len(c.organisations)
	c.organisations = append(c.organisations, model.Organisation{
		OrganisationID: id,
		Name:           name,
		Roles:          []model.OrganisationRole{role},
	})
	return id
}

func hasRole(roles []model.OrganisationRole, role model.OrganisationRole) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

func isLegalSuffix(word string) bool {
	for _, s := range legalSuffixes {
		if word == s {
			return true
		}
	}
	return false
}
