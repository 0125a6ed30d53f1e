package store

import (
	"sort"
	"time"

	"github.com/angelcm/onboard-dash-go/internal/models"
)

// RecordStore owns the immutable base dataset. It is built once at
// startup and never mutated afterwards, so reads need no locking.
type RecordStore struct {
	records []models.Record
}

func NewRecordStore(records []models.Record) *RecordStore {
	return &RecordStore{records: records}
}

// All returns the base dataset in load order. Callers must treat the
// slice as read-only.
func (s *RecordStore) All() []models.Record { return s.records }

func (s *RecordStore) Len() int { return len(s.records) }

// RegisteredBounds returns the min and max user_registered dates across
// the dataset. ok is false when no record carries a registration date.
func (s *RecordStore) RegisteredBounds() (min, max time.Time, ok bool) {
	for _, r := range s.records {
		if r.Registered == nil {
			continue
		}
		d := *r.Registered
		if !ok {
			min, max, ok = d, d, true
			continue
		}
		if d.Before(min) {
			min = d
		}
		if d.After(max) {
			max = d
		}
	}
	return min, max, ok
}

// Countries returns the sorted distinct non-absent country values, for
// populating the country filter dropdown.
func (s *RecordStore) Countries() []string {
	return s.distinct(func(r models.Record) string { return r.Country })
}

// SubscriptionTypes returns the sorted distinct non-absent subscription
// type values.
func (s *RecordStore) SubscriptionTypes() []string {
	return s.distinct(func(r models.Record) string { return r.SubscriptionType })
}

// Channels returns the sorted distinct non-absent acquisition channel
// values.
func (s *RecordStore) Channels() []string {
	return s.distinct(func(r models.Record) string { return r.HeardFrom })
}

func (s *RecordStore) distinct(get func(models.Record) string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range s.records {
		v := get(r)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
