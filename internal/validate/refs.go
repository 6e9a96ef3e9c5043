package validate

import (
	"fmt"

	"github.com/fairscore/crednorm/internal/model"
)

// References checks referential closure: every foreign-key-shaped field must
// resolve to an entity declared in the same file. Dangling references are
// reported, never repaired.
func References(file *model.CreditFile) []model.NormalizationError {
	var errs []model.NormalizationError

	imports := make(map[string]bool, len(file.Imports))
	for _, imp := range file.Imports {
		imports[imp.ImportID] = true
	}
	addresses := make(map[string]bool, len(file.Addresses))
	for _, addr := range file.Addresses {
		addresses[addr.AddressID] = true
	}
	organisations := make(map[string]bool, len(file.Organisations))
	for _, org := range file.Organisations {
		organisations[org.OrganisationID] = true
	}

	report := func(domain model.Domain, path, kind, id string) {
		errs = append(errs, model.NormalizationError{
			Code:    model.ErrDanglingReference,
			Domain:  domain,
			Path:    path,
			Message: fmt.Sprintf("%s %q does not resolve to a declared entity", kind, id),
		})
	}
	checkImport := func(domain model.Domain, path, id string) {
		if id != "" && !imports[id] {
			report(domain, path, "source_import_id", id)
		}
	}
	checkAddress := func(domain model.Domain, path, id string) {
		if id != "" && !addresses[id] {
			report(domain, path, "address_id", id)
		}
	}
	checkOrg := func(domain model.Domain, path, id string) {
		if id != "" && !organisations[id] {
			report(domain, path, "organisation_id", id)
		}
	}

	if file.Subject != nil {
		for i, name := range file.Subject.Names {
			checkImport(model.DomainSubject, fmt.Sprintf("subject/names/%d", i), name.SourceImportID)
		}
	}
	for _, assoc := range file.AddressAssociations {
		path := "address_associations/" + assoc.AssociationID
		checkAddress(model.DomainAddresses, path, assoc.AddressID)
		checkImport(model.DomainAddresses, path, assoc.SourceImportID)
		if assoc.AddressID == "" {
			report(model.DomainAddresses, path, "address_id", "")
		}
	}
	for _, link := range file.AddressLinks {
		path := "address_links/" + link.LinkID
		checkAddress(model.DomainAddresses, path, link.FromAddressID)
		checkAddress(model.DomainAddresses, path, link.ToAddressID)
		checkImport(model.DomainAddresses, path, link.SourceImportID)
	}
	for _, tl := range file.Tradelines {
		path := "tradelines/" + tl.TradelineID
		checkImport(model.DomainTradelines, path, tl.SourceImportID)
		checkOrg(model.DomainTradelines, path, tl.OrganisationID)
	}
	for _, search := range file.Searches {
		path := "searches/" + search.SearchID
		checkImport(model.DomainSearches, path, search.SourceImportID)
		checkOrg(model.DomainSearches, path, search.OrganisationID)
	}
	for _, score := range file.CreditScores {
		checkImport(model.DomainCreditScores, "credit_scores/"+score.ScoreID, score.SourceImportID)
	}
	for _, entry := range file.ElectoralRoll {
		path := "electoral_roll/" + entry.EntryID
		checkImport(model.DomainElectoralRoll, path, entry.SourceImportID)
		checkAddress(model.DomainElectoralRoll, path, entry.AddressID)
	}
	for _, assoc := range file.FinancialAssociates {
		path := "financial_associates/" + assoc.AssociateID
		checkImport(model.DomainFinancialAssociates, path, assoc.SourceImportID)
		checkAddress(model.DomainFinancialAssociates, path, assoc.AddressID)
	}

	return errs
}
