package httpx

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelcm/onboard-dash-go/internal/aggregate"
	"github.com/angelcm/onboard-dash-go/internal/filter"
	"github.com/angelcm/onboard-dash-go/internal/models"
	"github.com/angelcm/onboard-dash-go/internal/session"
	"github.com/angelcm/onboard-dash-go/internal/store"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func newTestRouter() http.Handler {
	st := store.NewRecordStore([]models.Record{
		{UserID: "u1", Registered: date(2021, 1, 1), Country: "US", HeardFrom: "Google", Onboarded: models.StatusOnboarded},
		{UserID: "u2", Registered: date(2021, 2, 1), Country: "US", HeardFrom: "YouTube", Onboarded: models.StatusNotOnboarded},
		{UserID: "u3", Registered: date(2021, 3, 1), Country: "FR", HeardFrom: "Google", Onboarded: models.StatusOnboarded},
		{UserID: "u4", Registered: nil, Country: "", HeardFrom: "Friend", Onboarded: models.StatusOnboarded},
	})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRouter(logger, st, aggregate.NewService(st), session.NewManager(filter.Defaults(st)))
}

func do(t *testing.T, h http.Handler, method, path, sessionID, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rdr)
	if sessionID != "" {
		req.Header.Set("X-Session-ID", sessionID)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoints(t *testing.T) {
	h := newTestRouter()
	assert.Equal(t, 200, do(t, h, "GET", "/healthz", "", "").Code)
	assert.Equal(t, 200, do(t, h, "GET", "/readyz", "", "").Code)
}

func TestSummaryDefaultFilters(t *testing.T) {
	h := newTestRouter()
	w := do(t, h, "GET", "/api/summary", "", "")
	require.Equal(t, 200, w.Code)

	var m models.Summary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m))
	// default range keeps the three dated records; u4 has no
	// registration date and is excluded
	assert.Equal(t, 3, m.Total)
	assert.Equal(t, 2, m.SurveyCompleted)
	assert.Equal(t, 66.7, m.OnboardingRate)
}

func TestFilterChangeAndReset(t *testing.T) {
	h := newTestRouter()

	w := do(t, h, "POST", "/api/filters", "s1", `{"dimension":"country","value":"US"}`)
	require.Equal(t, 200, w.Code)

	w = do(t, h, "GET", "/api/summary", "s1", "")
	require.Equal(t, 200, w.Code)
	var m models.Summary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m))
	assert.Equal(t, 2, m.Total)
	assert.Equal(t, 50.0, m.OnboardingRate)

	w = do(t, h, "POST", "/api/filters/reset", "s1", "")
	require.Equal(t, 200, w.Code)

	w = do(t, h, "GET", "/api/summary", "s1", "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m))
	assert.Equal(t, 3, m.Total)
}

func TestSessionsAreIsolated(t *testing.T) {
	h := newTestRouter()

	do(t, h, "POST", "/api/filters", "alice", `{"dimension":"country","value":"FR"}`)

	w := do(t, h, "GET", "/api/summary", "bob", "")
	var m models.Summary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m))
	assert.Equal(t, 3, m.Total)

	w = do(t, h, "GET", "/api/summary", "alice", "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m))
	assert.Equal(t, 1, m.Total)
}

func TestFilterChangeValidation(t *testing.T) {
	h := newTestRouter()

	assert.Equal(t, 400, do(t, h, "POST", "/api/filters", "", `{"dimension":"favorite_color","value":"blue"}`).Code)
	assert.Equal(t, 400, do(t, h, "POST", "/api/filters", "", `{"dimension":"onboarding_status","value":"maybe"}`).Code)
	assert.Equal(t, 400, do(t, h, "POST", "/api/filters", "", `{"dimension":"registered_range","from":"2021-01-01","to":"2021-02-01"}`).Code)
	assert.Equal(t, 400, do(t, h, "POST", "/api/filters", "", `not json`).Code)
}

func TestRegisteredRangeChange(t *testing.T) {
	h := newTestRouter()

	w := do(t, h, "POST", "/api/filters", "s2", `{"dimension":"registered_range","from":"1/15/2021","to":"3/15/2021"}`)
	require.Equal(t, 200, w.Code)

	w = do(t, h, "GET", "/api/summary", "s2", "")
	var m models.Summary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m))
	assert.Equal(t, 2, m.Total) // u2 and u3
}

func TestDistributionEndpoint(t *testing.T) {
	h := newTestRouter()

	w := do(t, h, "GET", "/api/distribution/channel", "", "")
	require.Equal(t, 200, w.Code)
	var rows []models.DistributionRow
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "Google", rows[0].Label)
	assert.Equal(t, 2, rows[0].Count)

	assert.Equal(t, 400, do(t, h, "GET", "/api/distribution/country", "", "").Code)
}

func TestCountriesEndpoint(t *testing.T) {
	h := newTestRouter()

	w := do(t, h, "GET", "/api/countries", "", "")
	require.Equal(t, 200, w.Code)
	var rates []models.CountryRate
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rates))
	require.Len(t, rates, 2)
	assert.Equal(t, "FR", rates[0].Country)
	assert.Equal(t, "US", rates[1].Country)
}

func TestFiltersEndpointListsOptions(t *testing.T) {
	h := newTestRouter()

	w := do(t, h, "GET", "/api/filters", "", "")
	require.Equal(t, 200, w.Code)

	var resp struct {
		Options struct {
			Countries     []string `json:"countries"`
			Channels      []string `json:"channels"`
			RegisteredMin string   `json:"registered_min"`
			RegisteredMax string   `json:"registered_max"`
		} `json:"options"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"FR", "US"}, resp.Options.Countries)
	assert.Equal(t, []string{"Friend", "Google", "YouTube"}, resp.Options.Channels)
	assert.Equal(t, "1/1/2021", resp.Options.RegisteredMin)
	assert.Equal(t, "3/1/2021", resp.Options.RegisteredMax)
}
