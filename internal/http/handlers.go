package http

import (
	"log/slog"
	"net/http"

	"fieldlog/internal/core"
	applog "fieldlog/internal/log"
	"fieldlog/internal/repo"
)

type createDriverRequest struct {
	Name              string `json:"name"`
	AssignedVehicleID string `json:"assignedVehicleId"`
}

func (s *Server) handleListDrivers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, orEmpty(s.repo.Drivers(r.Context())))
}

func (s *Server) handleCreateDriver(w http.ResponseWriter, r *http.Request) {
	var req createDriverRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return
	}

	d, err := s.repo.AddDriver(r.Context(), req.Name, req.AssignedVehicleID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, d)
}

type updateDriverRequest struct {
	Name              *string `json:"name"`
	AssignedVehicleID *string `json:"assignedVehicleId"`
}

func (s *Server) handleUpdateDriver(w http.ResponseWriter, r *http.Request) {
	var req updateDriverRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return
	}

	d, err := s.repo.UpdateDriver(r.Context(), r.PathValue("id"), repo.DriverPatch{
		Name:              req.Name,
		AssignedVehicleID: req.AssignedVehicleID,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

type createVehicleRequest struct {
	Label string `json:"label"`
}

func (s *Server) handleListVehicles(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, orEmpty(s.repo.Vehicles(r.Context())))
}

func (s *Server) handleCreateVehicle(w http.ResponseWriter, r *http.Request) {
	var req createVehicleRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return
	}

	v, err := s.repo.AddVehicle(r.Context(), req.Label)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, v)
}

type createActivityRequest struct {
	DriverID  string      `json:"driverId"`
	VehicleID string      `json:"vehicleId"`
	Location  string      `json:"location"`
	Date      string      `json:"date"`
	Revenue   core.Amount `json:"revenue"`
}

func (s *Server) handleCreateActivity(w http.ResponseWriter, r *http.Request) {
	var req createActivityRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return
	}

	a, err := s.activity.Create(r.Context(), core.Activity{
		DriverID:  req.DriverID,
		VehicleID: req.VehicleID,
		Location:  req.Location,
		Date:      req.Date,
		Revenue:   req.Revenue,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	slog.InfoContext(r.Context(), "Activity recorded",
		applog.FieldActivityID, a.ID,
		applog.FieldDriverID, a.DriverID,
		applog.FieldVehicleID, a.VehicleID,
		applog.FieldDate, a.Date)
	writeJSON(w, http.StatusCreated, a)
}

type updateActivityRequest struct {
	DriverID  *string      `json:"driverId"`
	VehicleID *string      `json:"vehicleId"`
	Location  *string      `json:"location"`
	Date      *string      `json:"date"`
	Revenue   *core.Amount `json:"revenue"`
}

func (s *Server) handleUpdateActivity(w http.ResponseWriter, r *http.Request) {
	var req updateActivityRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return
	}

	a, err := s.activity.Update(r.Context(), r.PathValue("id"), repo.ActivityPatch{
		DriverID:  req.DriverID,
		VehicleID: req.VehicleID,
		Location:  req.Location,
		Date:      req.Date,
		Revenue:   req.Revenue,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleDeleteActivity(w http.ResponseWriter, r *http.Request) {
	if err := s.activity.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListActivities(w http.ResponseWriter, r *http.Request) {
	from, to := dateBounds(r)
	writeJSON(w, http.StatusOK, orEmpty(s.queries.ByPeriod(r.Context(), from, to)))
}

func (s *Server) handleDriverActivities(w http.ResponseWriter, r *http.Request) {
	from, to := dateBounds(r)
	writeJSON(w, http.StatusOK, orEmpty(s.queries.ByDriver(r.Context(), r.PathValue("id"), from, to)))
}

func (s *Server) handleVehicleActivities(w http.ResponseWriter, r *http.Request) {
	from, to := dateBounds(r)
	writeJSON(w, http.StatusOK, orEmpty(s.queries.ByVehicle(r.Context(), r.PathValue("id"), from, to)))
}

func (s *Server) handleDriverLastActivity(w http.ResponseWriter, r *http.Request) {
	a, ok := s.queries.LastByDriver(r.Context(), r.PathValue("id"))
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "no activities for driver"})
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleVehicleLastActivity(w http.ResponseWriter, r *http.Request) {
	a, ok := s.queries.LastByVehicle(r.Context(), r.PathValue("id"))
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "no activities for vehicle"})
		return
	}
	writeJSON(w, http.StatusOK, a)
}
