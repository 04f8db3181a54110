package http

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"fieldlog/internal/transfer"
)

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	payload, err := transfer.Export(r.Context(), s.store, s.now())
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", transfer.ExportFilename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}

type importResponse struct {
	Drivers    int `json:"drivers"`
	Vehicles   int `json:"vehicles"`
	Activities int `json:"activities"`
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxImportBytes))
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to read import body", "error", err)
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unreadable request body"})
		return
	}

	snap, err := transfer.Import(r.Context(), s.store, payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, importResponse{
		Drivers:    len(snap.Drivers),
		Vehicles:   len(snap.Vehicles),
		Activities: len(snap.Activities),
	})
}
