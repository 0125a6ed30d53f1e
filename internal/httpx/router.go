package httpx

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelcm/onboard-dash-go/internal/aggregate"
	"github.com/angelcm/onboard-dash-go/internal/dataset"
	"github.com/angelcm/onboard-dash-go/internal/session"
	"github.com/angelcm/onboard-dash-go/internal/store"
	"github.com/angelcm/onboard-dash-go/internal/utils"
)

// filterChange is the wire form of a single-dimension filter update.
// Value applies to categorical dimensions (null clears); From/To apply
// to registered_range and use the dataset's m/d/y layout.
type filterChange struct {
	Dimension string  `json:"dimension"`
	Value     *string `json:"value"`
	From      string  `json:"from"`
	To        string  `json:"to"`
}

func NewRouter(log *slog.Logger, st *store.RecordStore, svc *aggregate.Service, sessions *session.Manager) http.Handler {
	mux := chi.NewRouter()
	mux.Use(utils.RequestID)
	mux.Use(utils.Logger(log))
	mux.Use(utils.Metrics)

	mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ok")) })
	mux.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ready")) })
	mux.Handle("/metrics", promhttp.Handler())

	// sess resolves the caller's session from X-Session-ID and echoes
	// the id back. A missing header falls back to one shared session so
	// single-user deployments work without client changes.
	sess := func(w http.ResponseWriter, r *http.Request) *session.Session {
		id := r.Header.Get("X-Session-ID")
		if id == "" {
			id = "default"
		}
		s, id := sessions.Get(id)
		w.Header().Set("X-Session-ID", id)
		return s
	}

	mux.Get("/api/filters", func(w http.ResponseWriter, r *http.Request) {
		s := sess(w, r)
		min, max, _ := st.RegisteredBounds()
		writeJSON(w, map[string]any{
			"state": s.State(),
			"options": map[string]any{
				"countries":          st.Countries(),
				"subscription_types": st.SubscriptionTypes(),
				"channels":           st.Channels(),
				"registered_min":     min.Format(dataset.DateLayout),
				"registered_max":     max.Format(dataset.DateLayout),
			},
		})
	})

	mux.Post("/api/filters", func(w http.ResponseWriter, r *http.Request) {
		s := sess(w, r)
		var fc filterChange
		if err := json.NewDecoder(r.Body).Decode(&fc); err != nil {
			http.Error(w, "bad request body", 400)
			return
		}
		c := session.Change{Dimension: fc.Dimension, Value: fc.Value}
		if fc.Dimension == session.DimRegisteredRange {
			from, err1 := time.Parse(dataset.DateLayout, fc.From)
			to, err2 := time.Parse(dataset.DateLayout, fc.To)
			if err1 != nil || err2 != nil {
				http.Error(w, "bad date (expected m/d/yyyy)", 400)
				return
			}
			c.From, c.To = from, to
		}
		if err := s.Set(c); err != nil {
			http.Error(w, err.Error(), 400)
			return
		}
		writeJSON(w, s.State())
	})

	mux.Post("/api/filters/reset", func(w http.ResponseWriter, r *http.Request) {
		s := sess(w, r)
		s.Reset()
		writeJSON(w, s.State())
	})

	mux.Get("/api/summary", func(w http.ResponseWriter, r *http.Request) {
		s := sess(w, r)
		writeJSON(w, svc.Summary(s.State()))
	})

	mux.Get("/api/distribution/{dimension}", func(w http.ResponseWriter, r *http.Request) {
		s := sess(w, r)
		dim, ok := aggregate.DimensionByName(chi.URLParam(r, "dimension"))
		if !ok {
			http.Error(w, "unknown dimension", 400)
			return
		}
		writeJSON(w, svc.Distribution(s.State(), dim))
	})

	mux.Get("/api/countries", func(w http.ResponseWriter, r *http.Request) {
		s := sess(w, r)
		writeJSON(w, svc.CountryRates(s.State()))
	})

	return mux
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", " ")
	enc.Encode(v)
}
