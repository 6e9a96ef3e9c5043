package mapper

import "github.com/fairscore/crednorm/internal/model"

var accountTypeRules = []rule[model.AccountType]{
	{anyOf(contains("credit card"), contains("creditcard"), contains("store card"), contains("charge card")), model.AccountTypeCreditCard},
	{contains("budget"), model.AccountTypeBudgetAccount},
	{contains("mortgage"), model.AccountTypeMortgage},
	{anyOf(contains("rental"), contains("rent agreement"), contains("tenancy")), model.AccountTypeRental},
	{anyOf(contains("secured loan"), contains("hire purchase"), contains("car finance"), contains("vehicle finance")), model.AccountTypeSecuredLoan},
	{anyOf(contains("unsecured"), contains("personal loan"), contains("payday")), model.AccountTypeUnsecuredLoan},
	{anyOf(contains("current account"), contains("bank account"), contains("basic account")), model.AccountTypeCurrentAccount},
	{contains("overdraft"), model.AccountTypeOverdraft},
	{anyOf(contains("gas"), contains("electric"), contains("energy"), contains("water"), contains("utility")), model.AccountTypeUtility},
	{anyOf(contains("mobile"), contains("telecom"), contains("broadband"), contains("phone")), model.AccountTypeTelecoms},
	// plain "loan" after the specific loan kinds
	{contains("loan"), model.AccountTypeUnsecuredLoan},
}

// AccountType canonicalizes a free-text account type. Miss yields "other".
func AccountType(text string) (model.AccountType, bool) {
	return lookup(accountTypeRules, text, model.AccountTypeOther)
}

// Order matters below: "Defaulted & Closed" must canonicalize to defaulted,
// so the default rule precedes the settled/closed rules.
var accountStatusRules = []rule[model.PaymentStatus]{
	{contains("default"), model.StatusDefaulted},
	{contains("arrangement"), model.StatusArrangement},
	{contains("repossess"), model.StatusRepossession},
	{anyOf(contains("settled"), contains("satisfied")), model.StatusSettled},
	{anyOf(contains("late"), contains("arrears"), contains("missed"), contains("delinquent"), contains("behind")), model.StatusInArrears},
	{anyOf(exact("ok", "current", "good", "active"), contains("up to date"), contains("up-to-date")), model.StatusUpToDate},
	{anyOf(contains("closed"), contains("paid off")), model.StatusSettled},
	{anyOf(contains("quer"), contains("dispute")), model.StatusQuery},
}

// AccountStatus canonicalizes a free-text account status into the shared
// payment-status enum. Miss yields "unknown".
func AccountStatus(text string) (model.PaymentStatus, bool) {
	return lookup(accountStatusRules, text, model.StatusUnknown)
}

// pdfCodeTable maps the single-character status codes printed in a source
// system's PDF payment-history grid. Kept separate from the free-text status
// mapper: "6" means six months in arrears here, not a score.
type pdfCodeTable map[string]model.PaymentStatus

var pdfDigitCodes = pdfCodeTable{
	"0":  model.StatusUpToDate,
	"1":  model.StatusInArrears,
	"2":  model.StatusInArrears,
	"3":  model.StatusInArrears,
	"4":  model.StatusInArrears,
	"5":  model.StatusInArrears,
	"6":  model.StatusInArrears,
	"D":  model.StatusDefaulted,
	"S":  model.StatusSettled,
	"A":  model.StatusArrangement,
	"AR": model.StatusArrangement,
	"R":  model.StatusRepossession,
	"Q":  model.StatusQuery,
	"U":  model.StatusUnknown,
}

var pdfTransUnionCodes = pdfCodeTable{
	"OK": model.StatusUpToDate,
	"0":  model.StatusUpToDate,
	"1":  model.StatusInArrears,
	"2":  model.StatusInArrears,
	"3":  model.StatusInArrears,
	"4":  model.StatusInArrears,
	"5":  model.StatusInArrears,
	"6":  model.StatusInArrears,
	"D":  model.StatusDefaulted,
	"S":  model.StatusSettled,
	"A":  model.StatusArrangement,
	"AP": model.StatusArrangement,
	"R":  model.StatusRepossession,
	"Q":  model.StatusQuery,
	"U":  model.StatusUnknown,
}

var pdfCodesBySource = map[model.SourceSystem]pdfCodeTable{
	model.SourceExperian:   pdfDigitCodes,
	model.SourceEquifax:    pdfDigitCodes,
	model.SourceCRIF:       pdfDigitCodes,
	model.SourceTransUnion: pdfTransUnionCodes,
}

// PDFStatusCode canonicalizes a single-character (or two-character) grid
// status code for the given source system. Unknown sources fall back to the
// digit table. Miss yields "unknown".
func PDFStatusCode(source model.SourceSystem, code string) (model.PaymentStatus, bool) {
	table, ok := pdfCodesBySource[source]
	if !ok {
		table = pdfDigitCodes
	}
	if status, ok := table[code]; ok {
		return status, true
	}
	return model.StatusUnknown, false
}

// searchSection pairs a search type with its lender visibility.
type searchSection struct {
	Type       model.SearchType
	Visibility model.Visibility
}

var searchSectionRules = []rule[searchSection]{
	{anyOf(contains("hard"), contains("credit application"), contains("application search")), searchSection{model.SearchCreditApplication, model.VisibilityVisible}},
	{anyOf(contains("soft"), contains("quotation"), contains("quote")), searchSection{model.SearchQuotation, model.VisibilityInvisible}},
	{anyOf(contains("identity"), contains("id check"), contains("identification")), searchSection{model.SearchIdentityCheck, model.VisibilityInvisible}},
	{anyOf(contains("account review"), contains("account management")), searchSection{model.SearchAccountReview, model.VisibilityInvisible}},
	{anyOf(contains("debt collection"), contains("collection"), contains("tracing")), searchSection{model.SearchDebtCollection, model.VisibilityInvisible}},
}

// SearchSection canonicalizes a search section title into (type, visibility).
// Miss yields (other, invisible): an unclassified footprint must not be
// presented as lender-visible.
func SearchSection(text string) (model.SearchType, model.Visibility, bool) {
	s, ok := lookup(searchSectionRules, text, searchSection{model.SearchOther, model.VisibilityInvisible})
	return s.Type, s.Visibility, ok
}

var addressRoleRules = []rule[model.AddressRole]{
	{anyOf(exact("current"), contains("current address"), contains("present")), model.AddressRoleCurrent},
	{anyOf(contains("previous"), contains("prior"), contains("former")), model.AddressRolePrevious},
	{anyOf(contains("correspondence"), contains("mailing"), contains("contact address")), model.AddressRoleCorrespondence},
	{anyOf(contains("linked"), contains("associated")), model.AddressRoleLinked},
}

// AddressRole canonicalizes an address-association role label. Miss yields "other".
func AddressRole(text string) (model.AddressRole, bool) {
	return lookup(addressRoleRules, text, model.AddressRoleOther)
}

var sourceSystemRules = []rule[model.SourceSystem]{
	{contains("experian"), model.SourceExperian},
	{contains("equifax"), model.SourceEquifax},
	{anyOf(contains("transunion"), contains("trans union"), contains("callcredit"), hasPrefix("tu")), model.SourceTransUnion},
	{contains("crif"), model.SourceCRIF},
}

// SourceSystem normalizes a raw credit reference agency label. Miss yields "other".
func SourceSystem(text string) (model.SourceSystem, bool) {
	return lookup(sourceSystemRules, text, model.SourceOther)
}

var termTypeByAccountType = map[model.AccountType]model.TermType{
	model.AccountTypeCreditCard:    model.TermRevolving,
	model.AccountTypeBudgetAccount: model.TermRevolving,
	model.AccountTypeMortgage:      model.TermMortgage,
	model.AccountTypeRental:        model.TermRental,
	model.AccountTypeSecuredLoan:   model.TermInstallment,
	model.AccountTypeUnsecuredLoan: model.TermInstallment,
}

// TermTypeFor infers the repayment term type from the canonical account type.
func TermTypeFor(accountType model.AccountType) model.TermType {
	if t, ok := termTypeByAccountType[accountType]; ok {
		return t
	}
	return model.TermOther
}
