package normalize

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/fairscore/crednorm/internal/grid"
	"github.com/fairscore/crednorm/internal/ident"
	"github.com/fairscore/crednorm/internal/mapper"
	"github.com/fairscore/crednorm/internal/model"
)

// heading is the parsed tradeline correlation key:
// [prefix:]Lender - AccountType[ - Ending NNNN].
type heading struct {
	Prefix      string
	Lender      string
	AccountType string
	Last4       string
}

var endingPattern = regexp.MustCompile(`(?i)^ending\s+(\d{2,4})$`)

// paymentHistoryField matches scraped per-month history fields,
// e.g. payment_history_2025_02.
var paymentHistoryField = regexp.MustCompile(`^payment_history_(\d{4})_(\d{2})$`)

// parseHeading decomposes a tradeline group key. Missing pieces stay empty;
// the parse never fails outright.
func parseHeading(key string) heading {
	var h heading
	if key == "" || key == UngroupedKey {
		return h
	}
	rest := key
	if idx := strings.Index(rest, ":"); idx >= 0 && !strings.Contains(rest[:idx], " ") {
		h.Prefix = rest[:idx]
		rest = rest[idx+1:]
	}
	parts := strings.Split(rest, " - ")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if len(parts) > 0 {
		h.Lender = parts[0]
	}
	if len(parts) > 1 {
		h.AccountType = parts[1]
	}
	if len(parts) > 2 {
		if m := endingPattern.FindStringSubmatch(parts[2]); m != nil {
			h.Last4 = m[1]
		}
	}
	return h
}

// buildTradelines is the most involved stage: it resolves the furnisher,
// canonicalizes type and status, computes the cross-source canonical ID,
// assembles metrics/terms/snapshots and detects lifecycle events. Missing
// fields degrade to a minimal record with warnings; the stage never fails a
// group outright.
func (c *Context) buildTradelines(set *model.RawObservationSet) {
	for _, group := range GroupByDomain(set, model.DomainTradelines) {
		parsed := parseHeading(group.Key)

		furnisher, _ := group.Field("furnisher_name")
		if furnisher == "" {
			furnisher = parsed.Lender
		}
		if group.Key == UngroupedKey && furnisher == "" {
			c.Warn(model.DomainTradelines, "", "", "ungrouped tradeline fields with no furnisher; skipped")
			continue
		}

		tl := model.Tradeline{
			TradelineID:    c.seq.Next("tl"),
			SourceImportID: c.registerImport(set.Metadata, group.SourceSystem),
			FurnisherName:  furnisher,
		}
		if furnisher != "" {
			tl.OrganisationID = c.RegisterOrganisation(furnisher, model.RoleFurnisher)
		}

		typeText, _ := group.Field("account_type")
		if typeText == "" {
			typeText = parsed.AccountType
		}
		accountType, matched := mapper.AccountType(typeText)
		tl.AccountType = accountType
		if !matched {
			c.Warn(model.DomainTradelines, "account_type", typeText, "unrecognized account type")
		}

		statusText, _ := group.Field("account_status")
		status, matched := mapper.AccountStatus(statusText)
		tl.AccountStatus = status
		if !matched && statusText != "" {
			c.Warn(model.DomainTradelines, "account_status", statusText, "unrecognized account status")
		}

		tl.Last4 = parsed.Last4
		if number, ok := group.Field("account_number"); ok && number != "" {
			tl.Identifiers = append(tl.Identifiers, number)
			if tl.Last4 == "" {
				if digits := trailingDigits(number); len(digits) >= 4 {
					tl.Last4 = digits[len(digits)-4:]
				}
			}
		}

		tl.OpenedDate = c.dateField(group, "opened_date")
		tl.ClosedDate = c.dateField(group, "closed_date")
		defaultDate := c.dateField(group, "default_date")

		// The canonical ID correlates the same underlying account across
		// source systems: each source mints its own tradeline_id, but the
		// hash of (furnisher, type, last4, opened) is shared.
		tl.CanonicalID = ident.ContentID("acct",
			orgKey(furnisher), string(tl.AccountType), tl.Last4, tl.OpenedDate)

		tl.MonthlyMetrics = c.buildMonthlyMetrics(group)
		tl.Terms = c.buildTerms(group, tl.AccountType)
		tl.Snapshots = c.buildSnapshots(group, statusText)
		tl.Events = c.detectEvents(tl, defaultDate)

		c.tradelines = append(c.tradelines, tl)
	}
}

func (c *Context) dateField(group *Group, name string) string {
	raw, ok := group.Field(name)
	if !ok || raw == "" {
		return ""
	}
	date, parsed := parseDate(raw)
	if !parsed {
		c.Warn(model.DomainTradelines, name, raw, "unparseable date")
		return ""
	}
	return date
}

// buildMonthlyMetrics reads both field shapes: one scraped field per month
// (payment_history_YYYY_MM with display text) and, for PDF sources, a single
// payment_history_grid field holding the flattened token stream.
func (c *Context) buildMonthlyMetrics(group *Group) []model.TradelineMonthlyMetric {
	var metrics []model.TradelineMonthlyMetric

	var monthFields []string
	for name := range group.Fields {
		if paymentHistoryField.MatchString(name) {
			monthFields = append(monthFields, name)
		}
	}
	sort.Strings(monthFields)

	for _, name := range monthFields {
		m := paymentHistoryField.FindStringSubmatch(name)
		raw, _ := group.Field(name)
		metric := model.TradelineMonthlyMetric{
			Period:    fmt.Sprintf("%s-%s", m[1], m[2]),
			RawStatus: raw,
		}
		status, matched := mapper.AccountStatus(raw)
		if matched {
			metric.PaymentStatus = status
		} else if raw != "" {
			c.Warn(model.DomainTradelines, name, raw, "unrecognized payment status")
		}
		if metric.RawStatus == "" && metric.PaymentStatus == "" {
			continue
		}
		metrics = append(metrics, metric)
	}

	if text, ok := group.Field("payment_history_grid"); ok && text != "" {
		source, _ := mapper.SourceSystem(group.SourceSystem)
		cells := grid.Reconstruct(grid.Tokenize(text))
		periods := make([]string, 0, len(cells))
		for period := range cells {
			periods = append(periods, period)
		}
		sort.Strings(periods)
		for _, period := range periods {
			code := cells[period]
			metric := model.TradelineMonthlyMetric{
				Period:    period,
				RawStatus: code,
			}
			status, matched := mapper.PDFStatusCode(source, code)
			if matched {
				metric.PaymentStatus = status
			} else {
				c.Warn(model.DomainTradelines, "payment_history_grid", code, "unrecognized status code")
			}
			metrics = append(metrics, metric)
		}
	}

	return metrics
}

// buildTerms emits a terms record only when the source reported a term
// count or payment amount; the term type itself is inferred from the
// account type.
func (c *Context) buildTerms(group *Group, accountType model.AccountType) *model.TradelineTerms {
	countRaw, hasCount := group.Field("term_count")
	amountRaw, hasAmount := group.Field("payment_amount")
	if !hasCount && !hasAmount {
		return nil
	}

	terms := &model.TradelineTerms{TermType: mapper.TermTypeFor(accountType)}
	if hasCount {
		if count, ok := parseInt(countRaw); ok {
			terms.TermCount = &count
		} else {
			c.Warn(model.DomainTradelines, "term_count", countRaw, "unparseable term count")
		}
	}
	if hasAmount {
		if amount, ok := parseAmount(amountRaw); ok {
			terms.PaymentAmount = &amount
		} else {
			c.Warn(model.DomainTradelines, "payment_amount", amountRaw, "unparseable amount")
		}
	}
	if freq, ok := group.Field("payment_frequency"); ok {
		terms.PaymentFrequency = freq
	}
	return terms
}

// buildSnapshots emits a point-in-time reading only when any balance, limit
// or as-of-date field is present.
func (c *Context) buildSnapshots(group *Group, statusText string) []model.TradelineSnapshot {
	balanceRaw, hasBalance := group.Field("balance")
	limitRaw, hasLimit := group.Field("credit_limit")
	asOfRaw, hasAsOf := group.Field("as_of_date")
	if !hasBalance && !hasLimit && !hasAsOf {
		return nil
	}

	snapshot := model.TradelineSnapshot{StatusText: statusText}
	if hasBalance {
		if balance, ok := parseAmount(balanceRaw); ok {
			snapshot.Balance = &balance
		} else {
			c.Warn(model.DomainTradelines, "balance", balanceRaw, "unparseable amount")
		}
	}
	if hasLimit {
		if limit, ok := parseAmount(limitRaw); ok {
			snapshot.CreditLimit = &limit
		} else {
			c.Warn(model.DomainTradelines, "credit_limit", limitRaw, "unparseable amount")
		}
	}
	if hasAsOf {
		if date, ok := parseDate(asOfRaw); ok {
			snapshot.AsOfDate = date
		} else {
			c.Warn(model.DomainTradelines, "as_of_date", asOfRaw, "unparseable date")
		}
	}
	return []model.TradelineSnapshot{snapshot}
}

// detectEvents derives lifecycle events from the canonical status plus
// whichever dates survived parsing:
//   - default always fires on a defaulted status; the date falls back
//     through default date, closed date, opened date, then the run date
//   - settled fires only when a closed date exists
//   - arrangement_to_pay fires on an arrangement status, dated from the
//     opened date or the run date
func (c *Context) detectEvents(tl model.Tradeline, defaultDate string) []model.TradelineEvent {
	var events []model.TradelineEvent

	switch tl.AccountStatus {
	case model.StatusDefaulted:
		date := firstNonEmpty(defaultDate, tl.ClosedDate, tl.OpenedDate, c.runDate)
		events = append(events, model.TradelineEvent{EventType: model.EventDefault, EventDate: date})
	case model.StatusSettled:
		if tl.ClosedDate != "" {
			events = append(events, model.TradelineEvent{EventType: model.EventSettled, EventDate: tl.ClosedDate})
		}
	case model.StatusArrangement:
		date := firstNonEmpty(tl.OpenedDate, c.runDate)
		events = append(events, model.TradelineEvent{EventType: model.EventArrangementToPay, EventDate: date})
	}

	return events
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func trailingDigits(s string) string {
	end := len(s)
	start := end
	for start > 0 && s[start-1] >= '0' && s[start-1] <= '9' {
		start--
	}
	return s[start:end]
}
