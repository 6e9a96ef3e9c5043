package normalize

import (
	"github.com/fairscore/crednorm/internal/mapper"
	"github.com/fairscore/crednorm/internal/model"
)

// buildCreditScores emits one score per grouped observation. An unparseable
// score value drops the whole entity with a warning: a score record without
// a score is meaningless downstream.
func (c *Context) buildCreditScores(set *model.RawObservationSet, page *model.PageInfo) {
	reportDate := ""
	if page != nil && page.ReportDate != "" {
		if date, ok := parseDate(page.ReportDate); ok {
			reportDate = date
		}
	}

	for _, group := range GroupByDomain(set, model.DomainCreditScores) {
		raw, ok := group.Field("score")
		if !ok {
			continue
		}
		value, parsed := parseInt(raw)
		if !parsed {
			c.Warn(model.DomainCreditScores, "score", raw, "unparseable score value")
			continue
		}

		// The provider label goes through the same normalization as the
		// import's source system so the two fields always agree.
		provider, _ := mapper.SourceSystem(group.SourceSystem)
		score := model.CreditScore{
			ScoreID:        c.seq.Next("score"),
			SourceImportID: c.registerImport(set.Metadata, group.SourceSystem),
			Provider:       string(provider),
			Score:          value,
		}
		if raw, ok := group.Field("max_score"); ok {
			if max, ok := parseInt(raw); ok {
				score.MaxScore = &max
			} else {
				c.Warn(model.DomainCreditScores, "max_score", raw, "unparseable score value")
			}
		}
		if band, ok := group.Field("score_band"); ok {
			score.ScoreBand = band
		}
		if raw, ok := group.Field("score_date"); ok {
			if date, ok := parseDate(raw); ok {
				score.ScoreDate = date
			} else {
				c.Warn(model.DomainCreditScores, "score_date", raw, "unparseable date")
			}
		}
		if score.ScoreDate == "" {
			score.ScoreDate = reportDate
		}
		c.creditScores = append(c.creditScores, score)
	}
}
