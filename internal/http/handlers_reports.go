package http

import (
	"net/http"
)

func (s *Server) handleDailyReport(w http.ResponseWriter, r *http.Request) {
	at, err := s.reportReference(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.reports.Daily(r.Context(), at))
}

func (s *Server) handleWeeklyReport(w http.ResponseWriter, r *http.Request) {
	at, err := s.reportReference(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.reports.Weekly(r.Context(), at))
}

func (s *Server) handleMonthlyReport(w http.ResponseWriter, r *http.Request) {
	at, err := s.reportReference(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.reports.Monthly(r.Context(), at))
}

func (s *Server) handleRangeReport(w http.ResponseWriter, r *http.Request) {
	from, to := dateBounds(r)
	// Without both bounds this endpoint would quietly alias the overall
	// totals; the totals endpoint exists for that.
	if from == "" || to == "" {
		writeJSON(w, http.StatusUnprocessableEntity,
			errorResponse{Error: "from and to are required"})
		return
	}
	summary, err := s.reports.CustomRange(r.Context(), from, to)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleDriverTotals(w http.ResponseWriter, r *http.Request) {
	rows := s.reports.ByDriverTotals(r.Context(), s.repo.Drivers(r.Context()))
	writeJSON(w, http.StatusOK, orEmpty(rows))
}

func (s *Server) handleVehicleTotals(w http.ResponseWriter, r *http.Request) {
	rows := s.reports.ByVehicleTotals(r.Context(), s.repo.Vehicles(r.Context()))
	writeJSON(w, http.StatusOK, orEmpty(rows))
}

func (s *Server) handleOverallTotals(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.reports.OverallTotals(r.Context()))
}
