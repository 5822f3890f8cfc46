package api

import (
	"encoding/json"
	"net/http"

	"karak-pos/internal/shift"
)

func (s *Server) exportShift(w http.ResponseWriter, r *http.Request) {
	snap, err := s.Shift.Export(r.Context())
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, snap)
}

func (s *Server) importShift(w http.ResponseWriter, r *http.Request) {
	var snap shift.Snapshot
	if err := json.NewDecoder(r.Body).Decode(&snap); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	if err := s.Shift.Import(r.Context(), snap); err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "imported"})
}

type resetShiftRequest struct {
	OpeningCash float64 `json:"openingCash"`
}

func (s *Server) resetShift(w http.ResponseWriter, r *http.Request) {
	var req resetShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	if err := s.Shift.Reset(r.Context(), req.OpeningCash); err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "reset"})
}

type archiveRequest struct {
	OlderThanDays int `json:"olderThanDays"`
}

func (s *Server) runArchive(w http.ResponseWriter, r *http.Request) {
	var req archiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	moved, err := s.Archive.Run(r.Context(), req.OlderThanDays)
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]int{"archived": moved})
}
