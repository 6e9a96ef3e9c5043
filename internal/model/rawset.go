package model

// Domain identifies which part of a credit report a section of raw fields
// was scraped or extracted from.
type Domain string

const (
	DomainSubject             Domain = "subject"
	DomainAddresses           Domain = "addresses"
	DomainElectoralRoll       Domain = "electoral_roll"
	DomainTradelines          Domain = "tradelines"
	DomainSearches            Domain = "searches"
	DomainCreditScores        Domain = "credit_scores"
	DomainFinancialAssociates Domain = "financial_associates"
	DomainIndicators          Domain = "indicators"
	DomainSystem              Domain = "system" // internal failures, never set by adapters
)

// Confidence is the adapter's own estimate of how reliably a field was read.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// Field is one raw name/value observation as the adapter saw it.
// Fields sharing (domain, GroupKey) describe one logical observation,
// e.g. one tradeline as reported by one source system.
type Field struct {
	Name       string     `json:"name" yaml:"name"`
	Value      string     `json:"value" yaml:"value"`
	GroupKey   string     `json:"groupKey,omitempty" yaml:"groupKey,omitempty"`
	Confidence Confidence `json:"confidence,omitempty" yaml:"confidence,omitempty"`
}

// Section is one block of fields from one report domain. SourceSystem is the
// raw provider label as scraped; empty when the adapter could not tell.
type Section struct {
	Domain       Domain  `json:"domain" yaml:"domain"`
	SourceSystem string  `json:"sourceSystem,omitempty" yaml:"sourceSystem,omitempty"`
	Fields       []Field `json:"fields" yaml:"fields"`
}

// Metadata carries provenance for one extraction run of one report.
type Metadata struct {
	SourceSystemsFound []string `json:"sourceSystemsFound" yaml:"sourceSystemsFound"`
	AdapterID          string   `json:"adapterId" yaml:"adapterId"`
	AdapterVersion     string   `json:"adapterVersion" yaml:"adapterVersion"`
	ExtractedAt        string   `json:"extractedAt" yaml:"extractedAt"`
	SourceURI          string   `json:"sourceUri" yaml:"sourceUri"`
	ContentHash        string   `json:"contentHash" yaml:"contentHash"`
}

// RawObservationSet is the complete adapter output for one report: provenance
// plus every scraped section. It is the sole data input to normalization.
type RawObservationSet struct {
	Metadata Metadata  `json:"metadata" yaml:"metadata"`
	Sections []Section `json:"sections" yaml:"sections"`
}

// SectionsFor returns the sections belonging to the given domain, in input order.
func (s *RawObservationSet) SectionsFor(domain Domain) []Section {
	var out []Section
	for _, sec := range s.Sections {
		if sec.Domain == domain {
			out = append(out, sec)
		}
	}
	return out
}

// RunConfig is the small per-run configuration supplied by the caller.
type RunConfig struct {
	DefaultSubjectID string `json:"defaultSubjectId" yaml:"defaultSubjectId"`
	CurrencyCode     string `json:"currencyCode" yaml:"currencyCode"`
}

// PageInfo is optional page-level context detected alongside the raw fields.
// SubjectName seeds the subject's primary name and ReportDate backfills
// score dates when the scraped sections carry neither.
type PageInfo struct {
	SiteName    string   `json:"siteName" yaml:"siteName"`
	SubjectName string   `json:"subjectName,omitempty" yaml:"subjectName,omitempty"`
	ReportDate  string   `json:"reportDate,omitempty" yaml:"reportDate,omitempty"`
	Providers   []string `json:"providers,omitempty" yaml:"providers,omitempty"`
}
