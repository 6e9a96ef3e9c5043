package normalize

import "github.com/fairscore/crednorm/internal/model"

// buildIndicators reads the presence-only flags. These blocks are detected
// by excluding known boilerplate, so only a boolean survives extraction; no
// structured fields are inferred from them.
func (c *Context) buildIndicators(set *model.RawObservationSet) {
	indicators := &model.Indicators{}
	flags := []struct {
		name   string
		target *bool
	}{
		{"fraud_markers_present", &indicators.FraudMarkersPresent},
		{"notices_present", &indicators.NoticesPresent},
		{"public_records_present", &indicators.PublicRecordsPresent},
		{"gone_away_present", &indicators.GoneAwayPresent},
	}

	found := false
	for _, group := range GroupByDomain(set, model.DomainIndicators) {
		for _, flag := range flags {
			raw, ok := group.Field(flag.name)
			if !ok {
				continue
			}
			value, parsed := parseBool(raw)
			if !parsed {
				c.Warn(model.DomainIndicators, flag.name, raw, "unparseable flag")
				continue
			}
			*flag.target = value
			found = true
		}
	}
	if found {
		c.indicators = indicators
	}
}
