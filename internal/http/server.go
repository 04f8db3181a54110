// Package http exposes the fieldlog core as a JSON API. It is purely a
// consumer of the repository, query, report, and transfer layers; all
// formatting beyond JSON encoding is left to clients.
package http

import (
	"net/http"
	"time"

	"fieldlog/internal/middleware/trace"
	"fieldlog/internal/query"
	"fieldlog/internal/repo"
	"fieldlog/internal/report"
	"fieldlog/internal/services"
	"fieldlog/internal/store"
)

type Server struct {
	http.Server

	store    store.Store
	repo     *repo.Repository
	queries  *query.Engine
	reports  *report.Engine
	activity *services.ActivityService

	// now supplies the reference instant for the rolling reports;
	// overridden in tests.
	now func() time.Time
}

// NewServer configures routes, returning a ready-to-run server.
func NewServer(addr string, st store.Store, activity *services.ActivityService) *Server {
	q := query.New(st)
	s := &Server{
		store:    st,
		repo:     repo.New(st),
		queries:  q,
		reports:  report.New(q),
		activity: activity,
		now:      time.Now,
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("GET /drivers", s.handleListDrivers)
	mux.HandleFunc("POST /drivers", s.handleCreateDriver)
	mux.HandleFunc("PATCH /drivers/{id}", s.handleUpdateDriver)
	mux.HandleFunc("GET /drivers/{id}/activities", s.handleDriverActivities)
	mux.HandleFunc("GET /drivers/{id}/activities/last", s.handleDriverLastActivity)

	mux.HandleFunc("GET /vehicles", s.handleListVehicles)
	mux.HandleFunc("POST /vehicles", s.handleCreateVehicle)
	mux.HandleFunc("GET /vehicles/{id}/activities", s.handleVehicleActivities)
	mux.HandleFunc("GET /vehicles/{id}/activities/last", s.handleVehicleLastActivity)

	mux.HandleFunc("GET /activities", s.handleListActivities)
	mux.HandleFunc("POST /activities", s.handleCreateActivity)
	mux.HandleFunc("PATCH /activities/{id}", s.handleUpdateActivity)
	mux.HandleFunc("DELETE /activities/{id}", s.handleDeleteActivity)

	mux.HandleFunc("GET /reports/daily", s.handleDailyReport)
	mux.HandleFunc("GET /reports/weekly", s.handleWeeklyReport)
	mux.HandleFunc("GET /reports/monthly", s.handleMonthlyReport)
	mux.HandleFunc("GET /reports/range", s.handleRangeReport)
	mux.HandleFunc("GET /reports/drivers", s.handleDriverTotals)
	mux.HandleFunc("GET /reports/vehicles", s.handleVehicleTotals)
	mux.HandleFunc("GET /reports/totals", s.handleOverallTotals)

	mux.HandleFunc("GET /export", s.handleExport)
	mux.HandleFunc("POST /import", s.handleImport)

	tracer := trace.NewMiddleware()
	s.Server = http.Server{
		Addr:    addr,
		Handler: tracer.Middleware(mux),
	}

	return s
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
