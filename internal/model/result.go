package model

// ErrorCode classifies a normalization error.
type ErrorCode string

const (
	ErrSchemaViolation   ErrorCode = "schema_violation"
	ErrDanglingReference ErrorCode = "dangling_reference"
	ErrInternal          ErrorCode = "internal"
)

// NormalizationError is a structural or referential violation. Errors block
// sending downstream but never prevent best-effort assembly.
type NormalizationError struct {
	Code    ErrorCode `json:"code"`
	Domain  Domain    `json:"domain"`
	Path    string    `json:"path,omitempty"` // entity/field the error points at
	Message string    `json:"message"`
}

// NormalizationWarning records a non-fatal parse miss: the offending field is
// omitted from its entity and the run carries on.
type NormalizationWarning struct {
	Domain   Domain `json:"domain"`
	Field    string `json:"field,omitempty"`
	RawValue string `json:"raw_value,omitempty"`
	Message  string `json:"message"`
}

// Summary counts what the run produced per domain.
type Summary struct {
	Imports             int `json:"imports"`
	SubjectNames        int `json:"subject_names"`
	Organisations       int `json:"organisations"`
	Addresses           int `json:"addresses"`
	AddressAssociations int `json:"address_associations"`
	AddressLinks        int `json:"address_links"`
	Tradelines          int `json:"tradelines"`
	Searches            int `json:"searches"`
	CreditScores        int `json:"credit_scores"`
	ElectoralRoll       int `json:"electoral_roll"`
	FinancialAssociates int `json:"financial_associates"`
	Warnings            int `json:"warnings"`
	Errors              int `json:"errors"`
}

// Result is the complete normalization outcome. Errors is non-empty exactly
// when Success is false; CreditFile is still populated in that case so the
// caller can decide whether to block sending.
type Result struct {
	Success    bool                   `json:"success"`
	CreditFile *CreditFile            `json:"creditFile"`
	Errors     []NormalizationError   `json:"errors,omitempty"`
	Warnings   []NormalizationWarning `json:"warnings,omitempty"`
	Summary    Summary                `json:"summary"`
}
