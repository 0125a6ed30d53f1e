package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/angelcm/onboard-dash-go/internal/models"
)

// DateLayout is the month/day/year format used by the source export.
const DateLayout = "1/2/2006"

// columns is the required header set. Order in the file does not matter;
// columns are located by name.
var columns = []string{
	"user_id",
	"user_paid",
	"user_registered",
	"onboarded",
	"subscription_type",
	"completed_date",
	"onboarding_country",
	"onboarding_heard_from_label",
	"onboarding_goals_label",
	"onboarding_learn_label",
}

// Load reads and parses the onboarding CSV at path. A missing file or an
// incompatible header is a fatal load error; row-level problems are not.
func Load(path string) ([]models.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads the CSV stream into normalized Records. Unparseable dates
// and short rows null the affected fields; the record is always retained.
func Parse(r io.Reader) ([]models.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(h)] = i
	}
	for _, c := range columns {
		if _, ok := idx[c]; !ok {
			return nil, fmt.Errorf("incompatible header: missing column %q", c)
		}
	}

	var records []models.Record
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// ragged quoting etc. — drop the raw line, keep loading
			continue
		}
		cell := func(name string) string {
			i := idx[name]
			if i >= len(row) {
				return ""
			}
			return normalize(row[i])
		}
		records = append(records, models.Record{
			UserID:           cell("user_id"),
			Paid:             cell("user_paid") == "1",
			Registered:       parseDate(cell("user_registered")),
			Onboarded:        parseStatus(cell("onboarded")),
			SubscriptionType: cell("subscription_type"),
			CompletedDate:    parseDate(cell("completed_date")),
			Country:          cell("onboarding_country"),
			HeardFrom:        cell("onboarding_heard_from_label"),
			Goals:            cell("onboarding_goals_label"),
			Learn:            cell("onboarding_learn_label"),
		})
	}
	return records, nil
}

// normalize trims a raw cell and folds the three absent forms (missing,
// literal "NULL", empty) into "".
func normalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "NULL" {
		return ""
	}
	return s
}

func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return nil
	}
	return &t
}

func parseStatus(s string) models.OnboardStatus {
	switch models.OnboardStatus(s) {
	case models.StatusOnboarded:
		return models.StatusOnboarded
	case models.StatusNotOnboarded:
		return models.StatusNotOnboarded
	}
	return ""
}
