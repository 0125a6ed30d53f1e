package filter

import (
	"github.com/angelcm/onboard-dash-go/internal/models"
	"github.com/angelcm/onboard-dash-go/internal/store"
)

// Predicate is a boolean test over one record.
type Predicate func(models.Record) bool

// Build compiles a FilterState into a single conjunctive predicate. Each
// set dimension contributes one AND term; unset dimensions contribute
// nothing. The registered-date term is always present and inclusive on
// both ends; records without a registration date always fail it.
func Build(st models.FilterState) Predicate {
	terms := []Predicate{
		func(r models.Record) bool {
			if r.Registered == nil {
				return false
			}
			return !r.Registered.Before(st.RegisteredFrom) && !r.Registered.After(st.RegisteredTo)
		},
	}
	if st.Country != nil {
		v := *st.Country
		terms = append(terms, func(r models.Record) bool { return r.Country == v })
	}
	if st.SubscriptionType != nil {
		v := *st.SubscriptionType
		terms = append(terms, func(r models.Record) bool { return r.SubscriptionType == v })
	}
	if st.Status != nil {
		v := *st.Status
		terms = append(terms, func(r models.Record) bool { return r.Onboarded == v })
	}
	if st.Channel != nil {
		v := *st.Channel
		terms = append(terms, func(r models.Record) bool { return r.HeardFrom == v })
	}
	return func(r models.Record) bool {
		for _, t := range terms {
			if !t(r) {
				return false
			}
		}
		return true
	}
}

// Apply filters records through p in a single pass, preserving input
// order. Pure: the input slice is never modified.
func Apply(records []models.Record, p Predicate) []models.Record {
	out := make([]models.Record, 0, len(records))
	for _, r := range records {
		if p(r) {
			out = append(out, r)
		}
	}
	return out
}

// Defaults builds the startup FilterState for a dataset: every
// categorical unset, date range spanning the dataset's registration
// bounds.
func Defaults(s *store.RecordStore) models.FilterState {
	var st models.FilterState
	if min, max, ok := s.RegisteredBounds(); ok {
		st.RegisteredFrom = min
		st.RegisteredTo = max
	}
	return st
}
