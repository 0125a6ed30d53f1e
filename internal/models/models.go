package models

import "time"

// OnboardStatus is the survey-completion state of a record.
// Empty string means the field was absent in the source data.
type OnboardStatus string

const (
	StatusOnboarded    OnboardStatus = "onboarded"
	StatusNotOnboarded OnboardStatus = "not-onboarded"
)

// Record is one row of the onboarding dataset after normalization.
// Absent categorical values are folded to "" at load time; absent dates
// are nil.
type Record struct {
	UserID           string
	Paid             bool
	Registered       *time.Time
	Onboarded        OnboardStatus
	SubscriptionType string
	CompletedDate    *time.Time
	Country          string
	HeardFrom        string
	Goals            string
	Learn            string
}

// FilterState holds one session's active filters. Nil pointer means
// "All" for that dimension; it is never conflated with an empty string.
// The registered range is always set (defaults to the dataset's min/max).
type FilterState struct {
	Country          *string        `json:"country,omitempty"`
	SubscriptionType *string        `json:"subscription_type,omitempty"`
	Status           *OnboardStatus `json:"onboarding_status,omitempty"`
	Channel          *string        `json:"channel,omitempty"`
	RegisteredFrom   time.Time      `json:"registered_from"`
	RegisteredTo     time.Time      `json:"registered_to"`
}

// Summary holds the scalar dashboard metrics.
type Summary struct {
	Total           int     `json:"total"`
	SurveyCompleted int     `json:"survey_completed"`
	OnboardingRate  float64 `json:"onboarding_rate"`
}

// DistributionRow is one group of a categorical distribution, ordered
// by descending count.
type DistributionRow struct {
	Label      string  `json:"label"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// CountryRate is the per-country onboarding artifact, keyed by the
// canonical country name.
type CountryRate struct {
	Country   string  `json:"country"`
	Total     int     `json:"total"`
	Onboarded int     `json:"onboarded"`
	Rate      float64 `json:"rate"`
}
