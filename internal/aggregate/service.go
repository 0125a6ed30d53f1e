package aggregate

import (
	"sort"

	"github.com/angelcm/onboard-dash-go/internal/filter"
	"github.com/angelcm/onboard-dash-go/internal/geo"
	"github.com/angelcm/onboard-dash-go/internal/models"
	"github.com/angelcm/onboard-dash-go/internal/store"
)

// Dimension is a categorical field a distribution can be computed over.
type Dimension struct {
	Name  string
	value func(models.Record) string
}

var (
	Channel = Dimension{"channel", func(r models.Record) string { return r.HeardFrom }}
	Goals   = Dimension{"goals", func(r models.Record) string { return r.Goals }}
	Learn   = Dimension{"learn", func(r models.Record) string { return r.Learn }}
)

var dimensions = map[string]Dimension{
	Channel.Name: Channel,
	Goals.Name:   Goals,
	Learn.Name:   Learn,
}

// DimensionByName resolves a distribution dimension from its API name.
func DimensionByName(name string) (Dimension, bool) {
	d, ok := dimensions[name]
	return d, ok
}

// Service answers aggregate queries over the base dataset filtered by a
// caller-supplied FilterState. Every query recomputes from scratch; no
// results are cached across filter changes.
type Service struct{ st *store.RecordStore }

func NewService(st *store.RecordStore) *Service { return &Service{st: st} }

func (s *Service) subset(fs models.FilterState) []models.Record {
	return filter.Apply(s.st.All(), filter.Build(fs))
}

func (s *Service) Summary(fs models.FilterState) models.Summary {
	return Summarize(s.subset(fs))
}

func (s *Service) Distribution(fs models.FilterState, dim Dimension) []models.DistributionRow {
	return Distribution(s.subset(fs), dim)
}

func (s *Service) CountryRates(fs models.FilterState) []models.CountryRate {
	return CountryRates(s.subset(fs))
}

// Summarize computes the scalar metrics for a working subset. The rate
// is defined as exactly 0 for an empty subset.
func Summarize(subset []models.Record) models.Summary {
	m := models.Summary{Total: len(subset)}
	for _, r := range subset {
		if r.Onboarded == models.StatusOnboarded {
			m.SurveyCompleted++
		}
	}
	if m.Total > 0 {
		m.OnboardingRate = round1(100 * float64(m.SurveyCompleted) / float64(m.Total))
	}
	return m
}

// Distribution groups a working subset by one categorical dimension,
// excluding absent values, and returns counts with percentages of the
// non-absent total. Order: descending count, ties ascending by label.
func Distribution(subset []models.Record, dim Dimension) []models.DistributionRow {
	counts := make(map[string]int)
	for _, r := range subset {
		if v := dim.value(r); v != "" {
			counts[v]++
		}
	}
	total := 0
	for _, n := range counts {
		total += n
	}
	rows := make([]models.DistributionRow, 0, len(counts))
	for label, n := range counts {
		rows = append(rows, models.DistributionRow{
			Label:      label,
			Count:      n,
			Percentage: round1(100 * float64(n) / float64(total)),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Label < rows[j].Label
	})
	return rows
}

// CountryRates computes the per-country onboarding artifact. Country
// names are canonicalized through the geo alias table before grouping;
// records without a country are excluded. Sorted by canonical key.
func CountryRates(subset []models.Record) []models.CountryRate {
	byCountry := make(map[string]*models.CountryRate)
	for _, r := range subset {
		if r.Country == "" {
			continue
		}
		key := geo.Canonical(r.Country)
		cr, ok := byCountry[key]
		if !ok {
			cr = &models.CountryRate{Country: key}
			byCountry[key] = cr
		}
		cr.Total++
		if r.Onboarded == models.StatusOnboarded {
			cr.Onboarded++
		}
	}
	out := make([]models.CountryRate, 0, len(byCountry))
	for _, cr := range byCountry {
		cr.Rate = round1(100 * float64(cr.Onboarded) / float64(cr.Total))
		out = append(out, *cr)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Country < out[j].Country })
	return out
}

func round1(f float64) float64 { return float64(int64(f*10+0.5)) / 10 }
