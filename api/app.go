// Package api is the standalone JSON API variant: the same filtered data the
// dashboard renders, exposed as a single combined payload.
package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"salesboard/app"
	"salesboard/domain/sales"
)

// maxDataRecords caps the record array in the /api/data payload.
const maxDataRecords = 100

// App represents the JSON API application
type App struct {
	router *chi.Mux
	loader *app.Loader
}

// NewApp creates the API application over a shared loader.
func NewApp(loader *app.Loader) *App {
	a := &App{
		router: chi.NewRouter(),
		loader: loader,
	}

	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))

	a.router.Get("/api/data", a.handleData)
	a.router.Get("/healthz", a.handleHealth)

	return a
}

// Start starts the HTTP server.
func (a *App) Start(addr string) error {
	log.Printf("Starting salesboard API server on %s", addr)
	return http.ListenAndServe(addr, a.router)
}

// Router exposes the mux for tests.
func (a *App) Router() *chi.Mux {
	return a.router
}

// DataResponse is the combined /api/data payload.
type DataResponse struct {
	Metrics      MetricsPayload            `json:"metrics"`
	StatusCounts map[string]int            `json:"status_counts"`
	MonthlyData  map[string]map[string]int `json:"monthly_data"`
	Data         []sales.Record            `json:"data"`
}

// MetricsPayload is the headline block of the /api/data payload.
type MetricsPayload struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	NSF       int `json:"nsf"`
	Cancelled int `json:"cancelled"`
}

func (a *App) handleData(w http.ResponseWriter, r *http.Request) {
	table, err := a.loader.Table(r.Context())
	if err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}

	filtered := table.Apply(filterFromRequest(r))
	metrics := sales.Summarize(filtered)

	records := filtered.Records
	if len(records) > maxDataRecords {
		records = records[:maxDataRecords]
	}

	writeJSON(w, http.StatusOK, DataResponse{
		Metrics: MetricsPayload{
			Total:     metrics.Total,
			Active:    metrics.Active,
			NSF:       metrics.NSF,
			Cancelled: metrics.Cancelled,
		},
		StatusCounts: sales.StatusCounts(filtered),
		MonthlyData:  sales.MonthlyPivot(filtered),
		Data:         records,
	})
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := a.loader.Status()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"load":   status,
	})
}

// filterFromRequest parses the shared filter query parameters.
func filterFromRequest(r *http.Request) sales.Filter {
	q := r.URL.Query()
	f := sales.Filter{Agent: strings.TrimSpace(q.Get("agent"))}

	if start := q.Get("start"); start != "" {
		if t, err := time.Parse("2006-01-02", start); err == nil {
			f.Start = t
		}
	}
	if end := q.Get("end"); end != "" {
		if t, err := time.Parse("2006-01-02", end); err == nil {
			f.End = t.Add(24*time.Hour - time.Nanosecond)
		}
	}
	if categories := q.Get("categories"); categories != "" {
		for _, raw := range strings.Split(categories, ",") {
			if name := strings.ToUpper(strings.TrimSpace(raw)); name != "" {
				f.Categories = append(f.Categories, sales.Category(name))
			}
		}
	}
	if sources := q.Get("sources"); sources != "" {
		for _, raw := range strings.Split(sources, ",") {
			if name := strings.TrimSpace(raw); name != "" {
				f.Sources = append(f.Sources, name)
			}
		}
	}

	return f
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("[API] Failed to encode response: %v", err)
	}
}
