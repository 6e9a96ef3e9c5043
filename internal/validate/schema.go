// Package validate runs read-only checks over an assembled credit file:
// structural/enum/required-field rules and referential-integrity rules.
// Validators report violations; they never repair or mutate the payload.
package validate

import (
	"fmt"
	"regexp"

	"github.com/fairscore/crednorm/internal/model"
)

var (
	idPattern    = regexp.MustCompile(`^[a-z]+:[0-9a-f]{1,8}$`)
	datePattern  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	monthPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)
)

var validAccountTypes = map[model.AccountType]bool{
	model.AccountTypeCreditCard: true, model.AccountTypeBudgetAccount: true,
	model.AccountTypeMortgage: true, model.AccountTypeRental: true,
	model.AccountTypeSecuredLoan: true, model.AccountTypeUnsecuredLoan: true,
	model.AccountTypeCurrentAccount: true, model.AccountTypeUtility: true,
	model.AccountTypeTelecoms: true, model.AccountTypeOverdraft: true,
	model.AccountTypeOther: true,
}

var validStatuses = map[model.PaymentStatus]bool{
	model.StatusUpToDate: true, model.StatusInArrears: true,
	model.StatusDefaulted: true, model.StatusSettled: true,
	model.StatusArrangement: true, model.StatusRepossession: true,
	model.StatusQuery: true, model.StatusUnknown: true,
}

var validSearchTypes = map[model.SearchType]bool{
	model.SearchCreditApplication: true, model.SearchQuotation: true,
	model.SearchIdentityCheck: true, model.SearchAccountReview: true,
	model.SearchDebtCollection: true, model.SearchOther: true,
}

var validAddressRoles = map[model.AddressRole]bool{
	model.AddressRoleCurrent: true, model.AddressRolePrevious: true,
	model.AddressRoleCorrespondence: true, model.AddressRoleLinked: true,
	model.AddressRoleOther: true,
}

// Schema checks identifier patterns, required fields, enum membership,
// date/month formats and the two at-least-one-of disjunctions. Pure,
// read-only pass; returns every violation found.
func Schema(file *model.CreditFile) []model.NormalizationError {
	var errs []model.NormalizationError

	report := func(domain model.Domain, path, format string, args ...any) {
		errs = append(errs, model.NormalizationError{
			Code:    model.ErrSchemaViolation,
			Domain:  domain,
			Path:    path,
			Message: fmt.Sprintf(format, args...),
		})
	}

	checkID := func(domain model.Domain, path, id string) {
		if !idPattern.MatchString(id) {
			report(domain, path, "identifier %q does not match the required pattern", id)
		}
	}
	checkDate := func(domain model.Domain, path, date string) {
		if date != "" && !datePattern.MatchString(date) {
			report(domain, path, "date %q is not YYYY-MM-DD", date)
		}
	}

	if file.SchemaVersion == "" {
		report(model.DomainSystem, "schema_version", "schema_version is required")
	}
	if file.CurrencyCode == "" {
		report(model.DomainSystem, "currency_code", "currency_code is required")
	}
	checkID(model.DomainSystem, "file_id", file.FileID)
	checkID(model.DomainSystem, "subject_id", file.SubjectID)

	for _, imp := range file.Imports {
		checkID(model.DomainSystem, "imports/"+imp.ImportID, imp.ImportID)
		if imp.SourceSystem == "" {
			report(model.DomainSystem, "imports/"+imp.ImportID, "source_system is required")
		}
		if imp.ExtractedAt == "" {
			report(model.DomainSystem, "imports/"+imp.ImportID, "extracted_at is required")
		}
	}

	if file.Subject != nil {
		for i, dob := range file.Subject.DatesOfBirth {
			checkDate(model.DomainSubject, fmt.Sprintf("subject/dates_of_birth/%d", i), dob)
		}
	}

	for _, org := range file.Organisations {
		path := "organisations/" + org.OrganisationID
		checkID(model.DomainSystem, path, org.OrganisationID)
		if org.Name == "" {
			report(model.DomainSystem, path, "organisation name is required")
		}
		if len(org.Roles) == 0 {
			report(model.DomainSystem, path, "organisation must carry at least one role")
		}
		for _, role := range org.Roles {
			if role != model.RoleFurnisher && role != model.RoleSearcher {
				report(model.DomainSystem, path, "unknown organisation role %q", role)
			}
		}
	}

	for _, addr := range file.Addresses {
		path := "addresses/" + addr.AddressID
		checkID(model.DomainAddresses, path, addr.AddressID)
		if addr.CountryCode == "" {
			report(model.DomainAddresses, path, "country_code is required")
		}
		if addr.NormalizedSingleLine == "" {
			report(model.DomainAddresses, path, "normalized_single_line is required")
		}
	}

	for _, assoc := range file.AddressAssociations {
		path := "address_associations/" + assoc.AssociationID
		checkID(model.DomainAddresses, path, assoc.AssociationID)
		if !validAddressRoles[assoc.Role] {
			report(model.DomainAddresses, path, "unknown address role %q", assoc.Role)
		}
		checkDate(model.DomainAddresses, path, assoc.FromDate)
		checkDate(model.DomainAddresses, path, assoc.ToDate)
	}

	for _, link := range file.AddressLinks {
		checkID(model.DomainAddresses, "address_links/"+link.LinkID, link.LinkID)
	}

	for _, tl := range file.Tradelines {
		path := "tradelines/" + tl.TradelineID
		checkID(model.DomainTradelines, path, tl.TradelineID)
		checkID(model.DomainTradelines, path+"/canonical_id", tl.CanonicalID)
		if !validAccountTypes[tl.AccountType] {
			report(model.DomainTradelines, path, "unknown account type %q", tl.AccountType)
		}
		if !validStatuses[tl.AccountStatus] {
			report(model.DomainTradelines, path, "unknown account status %q", tl.AccountStatus)
		}
		// Furnisher identity disjunction: an organisation reference or a raw
		// name, one of the two must be present.
		if tl.OrganisationID == "" && tl.FurnisherName == "" {
			report(model.DomainTradelines, path, "tradeline requires organisation_id or furnisher_name")
		}
		checkDate(model.DomainTradelines, path+"/opened_date", tl.OpenedDate)
		checkDate(model.DomainTradelines, path+"/closed_date", tl.ClosedDate)
		for i, metric := range tl.MonthlyMetrics {
			mpath := fmt.Sprintf("%s/monthly_metrics/%d", path, i)
			if !monthPattern.MatchString(metric.Period) {
				report(model.DomainTradelines, mpath, "period %q is not YYYY-MM", metric.Period)
			}
			if metric.PaymentStatus != "" && !validStatuses[metric.PaymentStatus] {
				report(model.DomainTradelines, mpath, "unknown payment status %q", metric.PaymentStatus)
			}
			// Metric value disjunction: status, balance or raw text.
			if metric.PaymentStatus == "" && metric.Balance == nil && metric.RawStatus == "" {
				report(model.DomainTradelines, mpath, "monthly metric carries no value")
			}
		}
		for i, event := range tl.Events {
			epath := fmt.Sprintf("%s/events/%d", path, i)
			if event.EventType != model.EventDefault && event.EventType != model.EventSettled && event.EventType != model.EventArrangementToPay {
				report(model.DomainTradelines, epath, "unknown event type %q", event.EventType)
			}
			if event.EventDate == "" {
				report(model.DomainTradelines, epath, "event date is required")
			} else {
				checkDate(model.DomainTradelines, epath, event.EventDate)
			}
		}
		for i, snapshot := range tl.Snapshots {
			checkDate(model.DomainTradelines, fmt.Sprintf("%s/snapshots/%d", path, i), snapshot.AsOfDate)
		}
	}

	for _, search := range file.Searches {
		path := "searches/" + search.SearchID
		checkID(model.DomainSearches, path, search.SearchID)
		if !validSearchTypes[search.SearchType] {
			report(model.DomainSearches, path, "unknown search type %q", search.SearchType)
		}
		if search.Visibility != model.VisibilityVisible && search.Visibility != model.VisibilityInvisible {
			report(model.DomainSearches, path, "unknown visibility %q", search.Visibility)
		}
		// Searcher identity disjunction, mirroring tradelines.
		if search.OrganisationID == "" && search.SearcherName == "" {
			report(model.DomainSearches, path, "search requires organisation_id or searcher_name")
		}
		checkDate(model.DomainSearches, path, search.SearchDate)
	}

	for _, score := range file.CreditScores {
		path := "credit_scores/" + score.ScoreID
		checkID(model.DomainCreditScores, path, score.ScoreID)
		if score.Score < 0 {
			report(model.DomainCreditScores, path, "score must be non-negative")
		}
		checkDate(model.DomainCreditScores, path, score.ScoreDate)
	}

	for _, entry := range file.ElectoralRoll {
		path := "electoral_roll/" + entry.EntryID
		checkID(model.DomainElectoralRoll, path, entry.EntryID)
		checkDate(model.DomainElectoralRoll, path, entry.StartDate)
		checkDate(model.DomainElectoralRoll, path, entry.EndDate)
	}

	for _, assoc := range file.FinancialAssociates {
		path := "financial_associates/" + assoc.AssociateID
		checkID(model.DomainFinancialAssociates, path, assoc.AssociateID)
		if assoc.Name == "" {
			report(model.DomainFinancialAssociates, path, "associate name is required")
		}
	}

	return errs
}
