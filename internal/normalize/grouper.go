package normalize

import "github.com/fairscore/crednorm/internal/model"

// UngroupedKey names the reserved group that collects fields carrying no
// group key of their own.
const UngroupedKey = "__ungrouped__"

// Group is one logical observation: all fields sharing a (domain, groupKey)
// pair, e.g. one tradeline as seen by one source system.
type Group struct {
	Key          string
	SourceSystem string // raw provider label from the owning section
	Fields       map[string]model.Field
}

// Field returns the named field's value and whether it was observed.
func (g *Group) Field(name string) (string, bool) {
	f, ok := g.Fields[name]
	if !ok {
		return "", false
	}
	return f.Value, true
}

// GroupByDomain partitions the set's raw fields for one domain into groups,
// preserving first-seen group order. Multiple sections of the same domain
// merge into the same grouping; a later duplicate field name within a group
// overwrites the earlier one. Pure function, no side effects.
func GroupByDomain(set *model.RawObservationSet, domain model.Domain) []*Group {
	var ordered []*Group
	index := make(map[string]*Group)

	for _, section := range set.SectionsFor(domain) {
		for _, field := range section.Fields {
			key := field.GroupKey
			if key == "" {
				key = UngroupedKey
			}
			g, ok := index[key]
			if !ok {
				g = &Group{
					Key:          key,
					SourceSystem: section.SourceSystem,
					Fields:       make(map[string]model.Field),
				}
				index[key] = g
				ordered = append(ordered, g)
			}
			if g.SourceSystem == "" {
				g.SourceSystem = section.SourceSystem
			}
			g.Fields[field.Name] = field
		}
	}

	return ordered
}
