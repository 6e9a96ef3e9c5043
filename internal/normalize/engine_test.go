package normalize

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairscore/crednorm/internal/model"
)

var runClock = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

func runCfg() model.RunConfig {
	return model.RunConfig{DefaultSubjectID: "subject:1", CurrencyCode: "GBP"}
}

func fixtureSet() *model.RawObservationSet {
	return &model.RawObservationSet{
		Metadata: model.Metadata{
			SourceSystemsFound: []string{"Experian", "Equifax"},
			AdapterID:          "web-checkmyfile",
			AdapterVersion:     "1.4.0",
			ExtractedAt:        "2026-09-01T11:00:00Z",
			SourceURI:          "https://portal.example.com/report/123",
			ContentHash:        "9f2c4a11",
		},
		Sections: []model.Section{
			{
				Domain:       model.DomainSubject,
				SourceSystem: "Experian",
				Fields: []model.Field{
					{Name: "full_name", Value: "Jordan Smith", Confidence: model.ConfidenceHigh},
					{Name: "date_of_birth", Value: "14/03/1985"},
				},
			},
			{
				Domain:       model.DomainAddresses,
				SourceSystem: "Experian",
				Fields: []model.Field{
					{Name: "address", Value: "10 Downing Street, Westminster, London, SW1A 2AA", GroupKey: "addr1"},
					{Name: "role", Value: "Current Address", GroupKey: "addr1"},
				},
			},
			{
				Domain:       model.DomainAddresses,
				SourceSystem: "Equifax",
				Fields: []model.Field{
					{Name: "address", Value: "10 DOWNING STREET, Westminster, London, sw1a2aa", GroupKey: "addr2"},
					{Name: "role", Value: "Current", GroupKey: "addr2"},
				},
			},
			{
				Domain:       model.DomainTradelines,
				SourceSystem: "Experian",
				Fields: []model.Field{
					{Name: "account_status", Value: "Up to date", GroupKey: "tl1:Test Bank - Credit Card - Ending 1234"},
					{Name: "opened_date", Value: "2020-01-15", GroupKey: "tl1:Test Bank - Credit Card - Ending 1234"},
					{Name: "balance", Value: "£1,250.00", GroupKey: "tl1:Test Bank - Credit Card - Ending 1234"},
					{Name: "payment_history_2025_02", Value: "Late Payment", GroupKey: "tl1:Test Bank - Credit Card - Ending 1234"},
				},
			},
			{
				Domain:       model.DomainTradelines,
				SourceSystem: "Equifax",
				Fields: []model.Field{
					{Name: "account_status", Value: "Up to date", GroupKey: "tl2:Test Bank - Credit Card - Ending 1234"},
					{Name: "opened_date", Value: "2020-01-15", GroupKey: "tl2:Test Bank - Credit Card - Ending 1234"},
				},
			},
			{
				Domain:       model.DomainSearches,
				SourceSystem: "Equifax",
				Fields: []model.Field{
					{Name: "searcher_name", Value: "Test Bank", GroupKey: "s1"},
					{Name: "section", Value: "Hard Searches", GroupKey: "s1"},
					{Name: "search_date", Value: "2026-07-01", GroupKey: "s1"},
				},
			},
			{
				Domain:       model.DomainCreditScores,
				SourceSystem: "Experian",
				Fields: []model.Field{
					{Name: "score", Value: "851", GroupKey: "sc1"},
					{Name: "max_score", Value: "999", GroupKey: "sc1"},
				},
			},
		},
	}
}

func TestRun_Success(t *testing.T) {
	result := Run(fixtureSet(), runCfg(), nil, runClock)
	require.NotNil(t, result.CreditFile)
	assert.True(t, result.Success)
	assert.Empty(t, result.Errors)
	assert.Equal(t, model.SchemaVersion, result.CreditFile.SchemaVersion)
	assert.Equal(t, "GBP", result.CreditFile.CurrencyCode)
	assert.Equal(t, "2026-09-01T12:00:00Z", result.CreditFile.CreatedAt)
}

func TestRun_Deterministic(t *testing.T) {
	a := Run(fixtureSet(), runCfg(), nil, runClock)
	b := Run(fixtureSet(), runCfg(), nil, runClock)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("two runs over identical input differ (-first +second):\n%s", diff)
	}
}

func TestRun_AddressDedup(t *testing.T) {
	result := Run(fixtureSet(), runCfg(), nil, runClock)
	file := result.CreditFile

	// Two observations of the same normalized single line: one canonical
	// Address, one association per observation.
	require.Len(t, file.Addresses, 1)
	require.Len(t, file.AddressAssociations, 2)
	for _, assoc := range file.AddressAssociations {
		assert.Equal(t, file.Addresses[0].AddressID, assoc.AddressID)
		assert.Equal(t, model.AddressRoleCurrent, assoc.Role)
	}
	// The two associations come from different imports.
	assert.NotEqual(t, file.AddressAssociations[0].SourceImportID, file.AddressAssociations[1].SourceImportID)
}

func TestRun_TradelineCrossSourceCorrelation(t *testing.T) {
	result := Run(fixtureSet(), runCfg(), nil, runClock)
	file := result.CreditFile

	require.Len(t, file.Tradelines, 2)
	a, b := file.Tradelines[0], file.Tradelines[1]
	assert.NotEqual(t, a.TradelineID, b.TradelineID)
	assert.Equal(t, a.CanonicalID, b.CanonicalID, "same account seen by two sources must share canonical_id")
	assert.Equal(t, a.OrganisationID, b.OrganisationID)

	require.Len(t, file.Organisations, 1)
	assert.Contains(t, file.Organisations[0].Roles, model.RoleFurnisher)
	// The same lender also ran a search, so the searcher role accumulated
	// on the one canonical organisation.
	assert.Contains(t, file.Organisations[0].Roles, model.RoleSearcher)
}

func TestRun_MonthlyMetricFromScrapedField(t *testing.T) {
	result := Run(fixtureSet(), runCfg(), nil, runClock)
	var with *model.Tradeline
	for i := range result.CreditFile.Tradelines {
		if len(result.CreditFile.Tradelines[i].MonthlyMetrics) > 0 {
			with = &result.CreditFile.Tradelines[i]
		}
	}
	require.NotNil(t, with)
	metric := with.MonthlyMetrics[0]
	assert.Equal(t, "2025-02", metric.Period)
	assert.Equal(t, model.StatusInArrears, metric.PaymentStatus)
	assert.Equal(t, "Late Payment", metric.RawStatus)
}

func TestRun_DefaultEventDateFallsBackToClosedDate(t *testing.T) {
	set := fixtureSet()
	set.Sections = append(set.Sections, model.Section{
		Domain:       model.DomainTradelines,
		SourceSystem: "Experian",
		Fields: []model.Field{
			{Name: "account_status", Value: "Defaulted", GroupKey: "dl:Loan Co - Personal Loan"},
			{Name: "closed_date", Value: "2023-06-30", GroupKey: "dl:Loan Co - Personal Loan"},
		},
	})
	result := Run(set, runCfg(), nil, runClock)

	var defaulted *model.Tradeline
	for i := range result.CreditFile.Tradelines {
		if result.CreditFile.Tradelines[i].AccountStatus == model.StatusDefaulted {
			defaulted = &result.CreditFile.Tradelines[i]
		}
	}
	require.NotNil(t, defaulted)
	require.Len(t, defaulted.Events, 1)
	assert.Equal(t, model.EventDefault, defaulted.Events[0].EventType)
	assert.Equal(t, "2023-06-30", defaulted.Events[0].EventDate)
}

func TestRun_SettledEventRequiresClosedDate(t *testing.T) {
	set := fixtureSet()
	set.Sections = append(set.Sections, model.Section{
		Domain:       model.DomainTradelines,
		SourceSystem: "Experian",
		Fields: []model.Field{
			{Name: "account_status", Value: "Settled", GroupKey: "st:Loan Co - Personal Loan"},
		},
	})
	result := Run(set, runCfg(), nil, runClock)
	for _, tl := range result.CreditFile.Tradelines {
		if tl.AccountStatus == model.StatusSettled {
			assert.Empty(t, tl.Events, "settled without a closed date must not fire an event")
		}
	}
}

func TestRun_PDFGridMetrics(t *testing.T) {
	set := fixtureSet()
	set.Sections = append(set.Sections, model.Section{
		Domain:       model.DomainTradelines,
		SourceSystem: "TransUnion",
		Fields: []model.Field{
			{Name: "payment_history_grid", Value: "J 2025 0 2024 1 F 2025 0 2024 -\nKey to payment history\n0 up to date", GroupKey: "pg:Card Co - Credit Card"},
		},
	})
	result := Run(set, runCfg(), nil, runClock)

	var grid *model.Tradeline
	for i := range result.CreditFile.Tradelines {
		if result.CreditFile.Tradelines[i].FurnisherName == "Card Co" {
			grid = &result.CreditFile.Tradelines[i]
		}
	}
	require.NotNil(t, grid)
	require.Len(t, grid.MonthlyMetrics, 3, "placeholder cell must be filtered")

	byPeriod := map[string]model.TradelineMonthlyMetric{}
	for _, m := range grid.MonthlyMetrics {
		byPeriod[m.Period] = m
	}
	assert.Equal(t, model.StatusUpToDate, byPeriod["2025-01"].PaymentStatus)
	assert.Equal(t, model.StatusInArrears, byPeriod["2024-01"].PaymentStatus)
	assert.Equal(t, model.StatusUpToDate, byPeriod["2025-02"].PaymentStatus)
}

func TestRun_UnparseableScoreDropsEntityWithWarning(t *testing.T) {
	set := fixtureSet()
	set.Sections = append(set.Sections, model.Section{
		Domain:       model.DomainCreditScores,
		SourceSystem: "Equifax",
		Fields: []model.Field{
			{Name: "score", Value: "N/A", GroupKey: "sc2"},
		},
	})
	result := Run(set, runCfg(), nil, runClock)

	require.Len(t, result.CreditFile.CreditScores, 1, "only the parseable score survives")

	found := false
	for _, w := range result.Warnings {
		if w.Domain == model.DomainCreditScores && w.RawValue == "N/A" {
			found = true
		}
	}
	assert.True(t, found, "expected a credit_scores warning mentioning N/A")
}

func TestRun_ReferentialClosure(t *testing.T) {
	result := Run(fixtureSet(), runCfg(), nil, runClock)
	file := result.CreditFile

	imports := map[string]bool{}
	for _, imp := range file.Imports {
		imports[imp.ImportID] = true
	}
	for _, tl := range file.Tradelines {
		assert.True(t, imports[tl.SourceImportID])
	}
	for _, assoc := range file.AddressAssociations {
		assert.True(t, imports[assoc.SourceImportID])
	}
	for _, s := range file.Searches {
		assert.True(t, imports[s.SourceImportID])
	}
}

func TestRun_PageInfoSeedsSubjectAndScoreDate(t *testing.T) {
	set := fixtureSet()
	// Remove the scraped subject name so the page info has to seed it.
	set.Sections = set.Sections[1:]
	page := &model.PageInfo{
		SiteName:    "checkmyfile",
		SubjectName: "J. Smith",
		ReportDate:  "2026-08-30",
	}
	result := Run(set, runCfg(), page, runClock)
	file := result.CreditFile

	require.NotNil(t, file.Subject)
	require.Len(t, file.Subject.Names, 1)
	assert.Equal(t, "J. Smith", file.Subject.Names[0].FullName)
	assert.True(t, file.Subject.Names[0].Primary)

	require.Len(t, file.CreditScores, 1)
	assert.Equal(t, "2026-08-30", file.CreditScores[0].ScoreDate)
}

func TestRun_MinimalTradelineFromHeadingOnly(t *testing.T) {
	set := &model.RawObservationSet{
		Metadata: fixtureSet().Metadata,
		Sections: []model.Section{
			{
				Domain:       model.DomainTradelines,
				SourceSystem: "Experian",
				Fields: []model.Field{
					{Name: "heading", Value: "", GroupKey: "Mystery Lender - Quantum Account"},
				},
			},
		},
	}
	result := Run(set, runCfg(), nil, runClock)

	require.Len(t, result.CreditFile.Tradelines, 1)
	tl := result.CreditFile.Tradelines[0]
	assert.Equal(t, "Mystery Lender", tl.FurnisherName)
	assert.Equal(t, model.AccountTypeOther, tl.AccountType)
	assert.Equal(t, model.StatusUnknown, tl.AccountStatus)

	found := false
	for _, w := range result.Warnings {
		if w.Domain == model.DomainTradelines && w.RawValue == "Quantum Account" {
			found = true
		}
	}
	assert.True(t, found, "expected an unrecognized-account-type warning")
}

func TestRun_ElectoralRollEntry(t *testing.T) {
	set := fixtureSet()
	set.Sections = append(set.Sections, model.Section{
		Domain:       model.DomainElectoralRoll,
		SourceSystem: "Equifax",
		Fields: []model.Field{
			{Name: "name", Value: "Jordan Smith", GroupKey: "er1"},
			{Name: "address", Value: "10 Downing Street, Westminster, London, SW1A 2AA", GroupKey: "er1"},
			{Name: "start_date", Value: "01/05/2021", GroupKey: "er1"},
			{Name: "dob", Value: "02/07/1960", GroupKey: "er1"},
		},
	})
	result := Run(set, runCfg(), nil, runClock)
	file := result.CreditFile

	assert.True(t, result.Success)
	require.Len(t, file.ElectoralRoll, 1)
	entry := file.ElectoralRoll[0]
	assert.Equal(t, "Jordan Smith", entry.Name)
	assert.Equal(t, "2021-05-01", entry.StartDate)
	// No end date on the listing means currently registered.
	assert.True(t, entry.Current)

	// The listed address resolves to the same canonical entity the
	// addresses domain registered.
	require.Len(t, file.Addresses, 1)
	assert.Equal(t, file.Addresses[0].AddressID, entry.AddressID)

	// The register listing carried the only second DOB on the report.
	require.NotNil(t, file.Subject)
	assert.Contains(t, file.Subject.DatesOfBirth, "1985-03-14")
	assert.Contains(t, file.Subject.DatesOfBirth, "1960-07-02")
}

func TestRun_ElectoralRollExplicitEndDate(t *testing.T) {
	set := fixtureSet()
	set.Sections = append(set.Sections, model.Section{
		Domain:       model.DomainElectoralRoll,
		SourceSystem: "Equifax",
		Fields: []model.Field{
			{Name: "name", Value: "Jordan Smith", GroupKey: "er1"},
			{Name: "start_date", Value: "2018-05-01", GroupKey: "er1"},
			{Name: "end_date", Value: "2020-11-30", GroupKey: "er1"},
		},
	})
	result := Run(set, runCfg(), nil, runClock)

	require.Len(t, result.CreditFile.ElectoralRoll, 1)
	entry := result.CreditFile.ElectoralRoll[0]
	assert.Equal(t, "2020-11-30", entry.EndDate)
	assert.False(t, entry.Current)
}

func TestRun_FinancialAssociates(t *testing.T) {
	set := fixtureSet()
	set.Sections = append(set.Sections, model.Section{
		Domain:       model.DomainFinancialAssociates,
		SourceSystem: "Experian",
		Fields: []model.Field{
			{Name: "name", Value: "Alex Smith", GroupKey: "fa1"},
			{Name: "relationship", Value: "Joint account holder", GroupKey: "fa1"},
			{Name: "address", Value: "10 Downing Street, Westminster, London, SW1A 2AA", GroupKey: "fa1"},
			{Name: "relationship", Value: "Joint mortgage", GroupKey: "fa2"},
		},
	})
	result := Run(set, runCfg(), nil, runClock)
	file := result.CreditFile

	assert.True(t, result.Success)
	// The nameless observation is dropped with a warning.
	require.Len(t, file.FinancialAssociates, 1)
	associate := file.FinancialAssociates[0]
	assert.Equal(t, "Alex Smith", associate.Name)
	assert.Equal(t, "Joint account holder", associate.Relationship)

	require.Len(t, file.Addresses, 1)
	assert.Equal(t, file.Addresses[0].AddressID, associate.AddressID)

	found := false
	for _, w := range result.Warnings {
		if w.Domain == model.DomainFinancialAssociates {
			found = true
		}
	}
	assert.True(t, found, "expected a warning for the associate observation without a name")
}

func TestRun_Indicators(t *testing.T) {
	set := fixtureSet()
	set.Sections = append(set.Sections, model.Section{
		Domain:       model.DomainIndicators,
		SourceSystem: "Experian",
		Fields: []model.Field{
			{Name: "fraud_markers_present", Value: "true"},
			{Name: "notices_present", Value: "false"},
			{Name: "gone_away_present", Value: "perhaps"},
		},
	})
	result := Run(set, runCfg(), nil, runClock)
	file := result.CreditFile

	require.NotNil(t, file.Indicators)
	assert.True(t, file.Indicators.FraudMarkersPresent)
	assert.False(t, file.Indicators.NoticesPresent)
	assert.False(t, file.Indicators.PublicRecordsPresent)
	// The unparseable flag warns and stays false.
	assert.False(t, file.Indicators.GoneAwayPresent)

	found := false
	for _, w := range result.Warnings {
		if w.Domain == model.DomainIndicators && w.RawValue == "perhaps" {
			found = true
		}
	}
	assert.True(t, found, "expected an indicators warning for the unparseable flag")
}

func TestRun_NoIndicatorsWithoutFlags(t *testing.T) {
	result := Run(fixtureSet(), runCfg(), nil, runClock)
	assert.Nil(t, result.CreditFile.Indicators, "no flags scraped, no indicators record")
}

func TestRun_AddressLinks(t *testing.T) {
	set := fixtureSet()
	set.Sections = append(set.Sections, model.Section{
		Domain:       model.DomainAddresses,
		SourceSystem: "Experian",
		Fields: []model.Field{
			{Name: "address", Value: "1 Old Lane, Leeds, LS1 4AP", GroupKey: "addr3"},
			{Name: "role", Value: "Previous Address", GroupKey: "addr3"},
			{Name: "linked_to", Value: "10 Downing Street, Westminster, London, SW1A 2AA", GroupKey: "addr3"},
		},
	})
	result := Run(set, runCfg(), nil, runClock)
	file := result.CreditFile

	assert.True(t, result.Success)
	require.Len(t, file.Addresses, 2)
	require.Len(t, file.AddressLinks, 1)
	link := file.AddressLinks[0]

	ids := map[string]bool{}
	for _, addr := range file.Addresses {
		ids[addr.AddressID] = true
	}
	assert.True(t, ids[link.FromAddressID], "link source must resolve to a declared address")
	assert.True(t, ids[link.ToAddressID], "link target must resolve to a declared address")
	assert.NotEqual(t, link.FromAddressID, link.ToAddressID)

	// The linked target is the canonical entity the other sections already
	// registered, not a duplicate.
	var previous *model.Address
	for i := range file.Addresses {
		if file.Addresses[i].Postcode == "LS1 4AP" {
			previous = &file.Addresses[i]
		}
	}
	require.NotNil(t, previous)
	assert.Equal(t, previous.AddressID, link.FromAddressID)
}

func TestRun_ScoreProviderNormalized(t *testing.T) {
	result := Run(fixtureSet(), runCfg(), nil, runClock)
	file := result.CreditFile

	require.Len(t, file.CreditScores, 1)
	score := file.CreditScores[0]
	assert.Equal(t, string(model.SourceExperian), score.Provider)

	for _, imp := range file.Imports {
		if imp.ImportID == score.SourceImportID {
			assert.Equal(t, string(imp.SourceSystem), score.Provider)
		}
	}
}

func TestRun_EmptyInput(t *testing.T) {
	set := &model.RawObservationSet{Metadata: fixtureSet().Metadata}
	result := Run(set, runCfg(), nil, runClock)
	assert.True(t, result.Success)
	require.NotNil(t, result.CreditFile)
	assert.Len(t, result.CreditFile.Imports, 2)
	assert.Empty(t, result.CreditFile.Tradelines)
}
