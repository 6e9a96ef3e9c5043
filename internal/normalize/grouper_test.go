package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairscore/crednorm/internal/model"
)

func TestGroupByDomain_PartitionsByKey(t *testing.T) {
	set := &model.RawObservationSet{
		Sections: []model.Section{
			{
				Domain:       model.DomainTradelines,
				SourceSystem: "Experian",
				Fields: []model.Field{
					{Name: "a", Value: "1", GroupKey: "g1"},
					{Name: "b", Value: "2", GroupKey: "g2"},
					{Name: "c", Value: "3", GroupKey: "g1"},
					{Name: "loose", Value: "x"},
				},
			},
			{Domain: model.DomainSearches, Fields: []model.Field{{Name: "other", Value: "y"}}},
		},
	}

	groups := GroupByDomain(set, model.DomainTradelines)
	require.Len(t, groups, 3)
	assert.Equal(t, "g1", groups[0].Key)
	assert.Equal(t, "g2", groups[1].Key)
	assert.Equal(t, UngroupedKey, groups[2].Key)
	assert.Len(t, groups[0].Fields, 2)
	assert.Equal(t, "Experian", groups[0].SourceSystem)
}

func TestGroupByDomain_MergesSectionsAndOverwritesDuplicates(t *testing.T) {
	set := &model.RawObservationSet{
		Sections: []model.Section{
			{Domain: model.DomainAddresses, Fields: []model.Field{{Name: "address", Value: "first", GroupKey: "g"}}},
			{Domain: model.DomainAddresses, Fields: []model.Field{{Name: "address", Value: "second", GroupKey: "g"}}},
		},
	}
	groups := GroupByDomain(set, model.DomainAddresses)
	require.Len(t, groups, 1)
	v, ok := groups[0].Field("address")
	assert.True(t, ok)
	assert.Equal(t, "second", v, "later duplicate field names overwrite earlier ones")
}

func TestGroupByDomain_EmptyDomain(t *testing.T) {
	set := &model.RawObservationSet{}
	assert.Empty(t, GroupByDomain(set, model.DomainTradelines))
}
