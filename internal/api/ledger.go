package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"karak-pos/internal/ledger"
)

func (s *Server) thermosState(w http.ResponseWriter, r *http.Request) {
	set, err := s.Thermos.State(r.Context())
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, set)
}

type thermosAdjustRequest struct {
	DeltaML float64 `json:"deltaMl"`
}

func (s *Server) thermosAdjust(w http.ResponseWriter, r *http.Request) {
	var req thermosAdjustRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	key := ledger.ThermosKey(chi.URLParam(r, "key"))
	if err := s.Thermos.Adjust(r.Context(), key, req.DeltaML); err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "adjusted"})
}

func (s *Server) thermosRefill(w http.ResponseWriter, r *http.Request) {
	key := ledger.ThermosKey(chi.URLParam(r, "key"))
	if err := s.Thermos.LogRefillAndReheat(r.Context(), key); err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "refilled"})
}

func (s *Server) thermosReheat(w http.ResponseWriter, r *http.Request) {
	key := ledger.ThermosKey(chi.URLParam(r, "key"))
	if err := s.Thermos.LogReheat(r.Context(), key); err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "reheated"})
}

func (s *Server) thermosResetRefills(w http.ResponseWriter, r *http.Request) {
	if err := s.Thermos.ResetRefillCounters(r.Context()); err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "reset"})
}

func (s *Server) inventoryLevels(w http.ResponseWriter, r *http.Request) {
	levels, err := s.Inventory.Levels(r.Context())
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, levels)
}

type inventoryAddRequest struct {
	Qty float64 `json:"qty"`
}

func (s *Server) inventoryAdd(w http.ResponseWriter, r *http.Request) {
	var req inventoryAddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	if err := s.Inventory.Add(r.Context(), chi.URLParam(r, "key"), req.Qty); err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "added"})
}

func (s *Server) timers(w http.ResponseWriter, r *http.Request) {
	all, err := s.Timers.All(r.Context())
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, all)
}

type startTimerRequest struct {
	Minutes int `json:"minutes"`
}

func (s *Server) startTimer(w http.ResponseWriter, r *http.Request) {
	var req startTimerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	typ := ledger.TimerType(chi.URLParam(r, "type"))
	if err := s.Timers.Start(r.Context(), typ, req.Minutes); err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "started"})
}

func (s *Server) stopTimer(w http.ResponseWriter, r *http.Request) {
	typ := ledger.TimerType(chi.URLParam(r, "type"))
	if err := s.Timers.Stop(r.Context(), typ); err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "stopped"})
}
