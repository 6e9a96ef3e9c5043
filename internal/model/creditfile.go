package model

// SchemaVersion is the canonical credit file schema emitted by this engine.
const SchemaVersion = "1.0"

// AccountType is the closed set of canonical tradeline account types.
type AccountType string

const (
	AccountTypeCreditCard     AccountType = "credit_card"
	AccountTypeBudgetAccount  AccountType = "budget_account"
	AccountTypeMortgage       AccountType = "mortgage"
	AccountTypeRental         AccountType = "rental"
	AccountTypeSecuredLoan    AccountType = "secured_loan"
	AccountTypeUnsecuredLoan  AccountType = "unsecured_loan"
	AccountTypeCurrentAccount AccountType = "current_account"
	AccountTypeUtility        AccountType = "utility"
	AccountTypeTelecoms       AccountType = "telecommunications"
	AccountTypeOverdraft      AccountType = "overdraft"
	AccountTypeOther          AccountType = "other"
)

// PaymentStatus is the canonical payment-status enum shared by account
// status, monthly metrics and PDF grid codes.
type PaymentStatus string

const (
	StatusUpToDate     PaymentStatus = "up_to_date"
	StatusInArrears    PaymentStatus = "in_arrears"
	StatusDefaulted    PaymentStatus = "defaulted"
	StatusSettled      PaymentStatus = "settled"
	StatusArrangement  PaymentStatus = "arrangement"
	StatusRepossession PaymentStatus = "repossession"
	StatusQuery        PaymentStatus = "query"
	StatusUnknown      PaymentStatus = "unknown"
)

// TermType classifies repayment structure, inferred from account type.
type TermType string

const (
	TermRevolving   TermType = "revolving"
	TermMortgage    TermType = "mortgage"
	TermRental      TermType = "rental"
	TermInstallment TermType = "installment"
	TermOther       TermType = "other"
)

// EventType is a tradeline lifecycle event kind.
type EventType string

const (
	EventDefault          EventType = "default"
	EventSettled          EventType = "settled"
	EventArrangementToPay EventType = "arrangement_to_pay"
)

// SearchType classifies a credit search footprint.
type SearchType string

const (
	SearchCreditApplication SearchType = "credit_application"
	SearchQuotation         SearchType = "quotation"
	SearchIdentityCheck     SearchType = "identity_check"
	SearchAccountReview     SearchType = "account_review"
	SearchDebtCollection    SearchType = "debt_collection"
	SearchOther             SearchType = "other"
)

// Visibility says whether a search is visible to other lenders.
type Visibility string

const (
	VisibilityVisible   Visibility = "visible"
	VisibilityInvisible Visibility = "invisible"
)

// AddressRole classifies how an address relates to the subject.
type AddressRole string

const (
	AddressRoleCurrent        AddressRole = "current"
	AddressRolePrevious       AddressRole = "previous"
	AddressRoleCorrespondence AddressRole = "correspondence"
	AddressRoleLinked         AddressRole = "linked"
	AddressRoleOther          AddressRole = "other"
)

// OrganisationRole is a capacity in which an organisation appears in the file.
type OrganisationRole string

const (
	RoleFurnisher OrganisationRole = "furnisher"
	RoleSearcher  OrganisationRole = "searcher"
)

// SourceSystem is a normalized credit reference agency name.
type SourceSystem string

const (
	SourceExperian   SourceSystem = "experian"
	SourceEquifax    SourceSystem = "equifax"
	SourceTransUnion SourceSystem = "transunion"
	SourceCRIF       SourceSystem = "crif"
	SourceOther      SourceSystem = "other"
)

// ImportBatch records one ingestion of one source system's data in one run.
type ImportBatch struct {
	ImportID       string       `json:"import_id"`
	SourceSystem   SourceSystem `json:"source_system"`
	AdapterID      string       `json:"adapter_id"`
	AdapterVersion string       `json:"adapter_version,omitempty"`
	ExtractedAt    string       `json:"extracted_at"`
	SourceURI      string       `json:"source_uri,omitempty"`
	ContentHash    string       `json:"content_hash,omitempty"`
}

// SubjectName is one observed name for the file subject.
type SubjectName struct {
	FullName       string `json:"full_name"`
	SourceImportID string `json:"source_import_id,omitempty"`
	Primary        bool   `json:"primary,omitempty"`
}

// Subject aggregates all identity observations for the person the file is about.
type Subject struct {
	Names        []SubjectName `json:"names,omitempty"`
	DatesOfBirth []string      `json:"dates_of_birth,omitempty"`
}

// Organisation is a deduplicated lender or searcher. Roles accumulate across
// observations; identity never changes once registered.
type Organisation struct {
	OrganisationID string             `json:"organisation_id"`
	Name           string             `json:"name"`
	Roles          []OrganisationRole `json:"roles"`
}

// Address is one deduplicated postal address. NormalizedSingleLine is the
// dedup key: uppercased, whitespace-collapsed concatenation of the parts.
type Address struct {
	AddressID            string `json:"address_id"`
	Line1                string `json:"line_1,omitempty"`
	Line2                string `json:"line_2,omitempty"`
	TownCity             string `json:"town_city,omitempty"`
	Postcode             string `json:"postcode,omitempty"`
	CountryCode          string `json:"country_code"`
	NormalizedSingleLine string `json:"normalized_single_line"`
}

// AddressAssociation ties the subject to an address in a given role; repeated
// observations of the same address produce one association each.
type AddressAssociation struct {
	AssociationID  string      `json:"association_id"`
	AddressID      string      `json:"address_id"`
	Role           AddressRole `json:"role"`
	SourceImportID string      `json:"source_import_id,omitempty"`
	FromDate       string      `json:"from_date,omitempty"`
	ToDate         string      `json:"to_date,omitempty"`
}

// AddressLink records that a source system links two addresses (e.g. a
// reported move between them).
type AddressLink struct {
	LinkID         string `json:"link_id"`
	FromAddressID  string `json:"from_address_id"`
	ToAddressID    string `json:"to_address_id"`
	SourceImportID string `json:"source_import_id,omitempty"`
}

// TradelineTerms describes the repayment terms of an account, present only
// when the source reported a term count or payment amount.
type TradelineTerms struct {
	TermType         TermType `json:"term_type"`
	TermCount        *int     `json:"term_count,omitempty"`
	PaymentAmount    *float64 `json:"payment_amount,omitempty"`
	PaymentFrequency string   `json:"payment_frequency,omitempty"`
}

// TradelineSnapshot is a point-in-time balance/limit reading.
type TradelineSnapshot struct {
	Balance     *float64 `json:"balance,omitempty"`
	CreditLimit *float64 `json:"credit_limit,omitempty"`
	AsOfDate    string   `json:"as_of_date,omitempty"`
	StatusText  string   `json:"status_text,omitempty"`
}

// TradelineMonthlyMetric is one month's payment observation. At least one of
// PaymentStatus, Balance or RawStatus must be present.
type TradelineMonthlyMetric struct {
	Period        string        `json:"period"` // YYYY-MM
	PaymentStatus PaymentStatus `json:"payment_status,omitempty"`
	Balance       *float64      `json:"balance,omitempty"`
	RawStatus     string        `json:"raw_status,omitempty"`
}

// TradelineEvent is a detected lifecycle event on an account.
type TradelineEvent struct {
	EventType EventType `json:"event_type"`
	EventDate string    `json:"event_date"`
}

// Tradeline is one credit account as reported by one source system.
// CanonicalID correlates the same underlying account across source systems;
// at least one of OrganisationID or FurnisherName must be present.
type Tradeline struct {
	TradelineID    string                   `json:"tradeline_id"`
	SourceImportID string                   `json:"source_import_id,omitempty"`
	CanonicalID    string                   `json:"canonical_id"`
	OrganisationID string                   `json:"organisation_id,omitempty"`
	FurnisherName  string                   `json:"furnisher_name,omitempty"`
	AccountType    AccountType              `json:"account_type"`
	AccountStatus  PaymentStatus            `json:"account_status"`
	Identifiers    []string                 `json:"identifiers,omitempty"`
	Last4          string                   `json:"last_4,omitempty"`
	OpenedDate     string                   `json:"opened_date,omitempty"`
	ClosedDate     string                   `json:"closed_date,omitempty"`
	Terms          *TradelineTerms          `json:"terms,omitempty"`
	Snapshots      []TradelineSnapshot      `json:"snapshots,omitempty"`
	MonthlyMetrics []TradelineMonthlyMetric `json:"monthly_metrics,omitempty"`
	Events         []TradelineEvent         `json:"events,omitempty"`
}

// SearchRecord is one credit search footprint. At least one of
// OrganisationID or SearcherName must be present.
type SearchRecord struct {
	SearchID       string     `json:"search_id"`
	SourceImportID string     `json:"source_import_id,omitempty"`
	OrganisationID string     `json:"organisation_id,omitempty"`
	SearcherName   string     `json:"searcher_name,omitempty"`
	SearchType     SearchType `json:"search_type"`
	Visibility     Visibility `json:"visibility"`
	SearchDate     string     `json:"search_date,omitempty"`
	Purpose        string     `json:"purpose,omitempty"`
}

// CreditScore is one score reading from one source system.
type CreditScore struct {
	ScoreID        string `json:"score_id"`
	SourceImportID string `json:"source_import_id,omitempty"`
	Provider       string `json:"provider,omitempty"`
	Score          int    `json:"score"`
	MaxScore       *int   `json:"max_score,omitempty"`
	ScoreDate      string `json:"score_date,omitempty"`
	ScoreBand      string `json:"score_band,omitempty"`
}

// ElectoralRollEntry is one electoral register listing.
type ElectoralRollEntry struct {
	EntryID        string `json:"entry_id"`
	SourceImportID string `json:"source_import_id,omitempty"`
	AddressID      string `json:"address_id,omitempty"`
	Name           string `json:"name,omitempty"`
	StartDate      string `json:"start_date,omitempty"`
	EndDate        string `json:"end_date,omitempty"`
	Current        bool   `json:"current,omitempty"`
}

// FinancialAssociate is a person financially linked to the subject.
type FinancialAssociate struct {
	AssociateID    string `json:"associate_id"`
	SourceImportID string `json:"source_import_id,omitempty"`
	Name           string `json:"name"`
	Relationship   string `json:"relationship,omitempty"`
	AddressID      string `json:"address_id,omitempty"`
}

// Indicators carries presence-only flags for report blocks where only
// boilerplate exclusion is reliable. No structured extraction is
// attempted for these.
type Indicators struct {
	FraudMarkersPresent  bool `json:"fraud_markers_present"`
	NoticesPresent       bool `json:"notices_present"`
	PublicRecordsPresent bool `json:"public_records_present"`
	GoneAwayPresent      bool `json:"gone_away_present"`
}

// CreditFile is the canonical schema-valid output record. Entity collections
// are omitted when empty rather than emitted as empty lists.
type CreditFile struct {
	SchemaVersion string `json:"schema_version"`
	FileID        string `json:"file_id"`
	SubjectID     string `json:"subject_id"`
	CreatedAt     string `json:"created_at"`
	CurrencyCode  string `json:"currency_code"`

	Imports []ImportBatch `json:"imports"`

	Subject             *Subject             `json:"subject,omitempty"`
	Organisations       []Organisation       `json:"organisations,omitempty"`
	Addresses           []Address            `json:"addresses,omitempty"`
	AddressAssociations []AddressAssociation `json:"address_associations,omitempty"`
	AddressLinks        []AddressLink        `json:"address_links,omitempty"`
	Tradelines          []Tradeline          `json:"tradelines,omitempty"`
	Searches            []SearchRecord       `json:"searches,omitempty"`
	CreditScores        []CreditScore        `json:"credit_scores,omitempty"`
	ElectoralRoll       []ElectoralRollEntry `json:"electoral_roll,omitempty"`
	FinancialAssociates []FinancialAssociate `json:"financial_associates,omitempty"`
	Indicators          *Indicators          `json:"indicators,omitempty"`
}
