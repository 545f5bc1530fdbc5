package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"txevents/internal/props"
	"txevents/internal/publish"
	"txevents/pkg/types"
)

// Publisher is the slice of *publish.Publisher the HTTP layer needs.
type Publisher interface {
	Publish(types.Event) []publish.Result
	Listeners() []string
}

// PropertiesSource yields the effective configuration properties.
type PropertiesSource interface {
	ConfigProperties() props.ConfigProperties
}

// RecentEvents exposes recently delivered events, e.g. a memory listener.
type RecentEvents interface {
	Events() []types.Event
}

// Deps groups the collaborators of the admin surface. Recent may be nil.
type Deps struct {
	Publisher  Publisher
	Properties PropertiesSource
	Recent     RecentEvents
}

func NewMux(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	r.Use(MetricsMiddleware)
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Content-Type"},
		}))
	}
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/listeners", func(w http.ResponseWriter, r *http.Request) {
		ls := d.Publisher.Listeners()
		if ls == nil {
			ls = []string{}
		}
		writeJSON(w, http.StatusOK, types.ListenersResponse{Listeners: ls, Providers: publish.Providers()})
	})

	r.Get("/properties", func(w http.ResponseWriter, r *http.Request) {
		if d.Properties == nil {
			writeJSONError(w, http.StatusNotFound, "no properties source configured")
			return
		}
		writeJSON(w, http.StatusOK, types.PropertiesResponse{Properties: d.Properties.ConfigProperties().Map()})
	})

	r.Post("/events", func(w http.ResponseWriter, r *http.Request) {
		ct := r.Header.Get("Content-Type")
		if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
			writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		var req types.PublishRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		kind, err := types.ParseKind(req.Kind)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		if strings.TrimSpace(req.TransactionID) == "" {
			writeJSONError(w, http.StatusBadRequest, "transaction_id is required")
			return
		}
		id := uuid.NewString()
		e := types.NewTransactionEvent(kind, id, req.TransactionID, req.Participant, time.Now().UTC(), req.Fields)
		results := d.Publisher.Publish(e)
		resp := types.PublishResponse{ID: id, Results: make([]types.ListenerResult, 0, len(results))}
		for _, res := range results {
			lr := types.ListenerResult{Listener: res.Listener}
			if res.Err != nil {
				lr.Error = res.Err.Error()
			}
			resp.Results = append(resp.Results, lr)
		}
		writeJSON(w, http.StatusAccepted, resp)
	})

	r.Get("/events/recent", func(w http.ResponseWriter, r *http.Request) {
		if d.Recent == nil {
			writeJSONError(w, http.StatusNotFound, "recent events are not recorded")
			return
		}
		evts := d.Recent.Events()
		out := types.RecentEventsResponse{Events: make([]types.RecentEvent, 0, len(evts))}
		for _, e := range evts {
			out.Events = append(out.Events, types.RecentEvent{Kind: string(e.Kind()), Text: e.String()})
		}
		writeJSON(w, http.StatusOK, out)
	})

	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	return r
}
