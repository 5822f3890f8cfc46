package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) shiftSummary(w http.ResponseWriter, r *http.Request) {
	sum, err := s.Reports.ShiftSummary(r.Context())
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, sum)
}

func (s *Server) dayReport(w http.ResponseWriter, r *http.Request) {
	rep, err := s.Reports.DayReport(r.Context(), chi.URLParam(r, "date"))
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, rep)
}

func (s *Server) consumables(w http.ResponseWriter, r *http.Request) {
	c, err := s.Reports.Consumables(r.Context())
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, c)
}

func (s *Server) netProfit(w http.ResponseWriter, r *http.Request) {
	p, err := s.Reports.NetProfit(r.Context())
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, p)
}

func (s *Server) breakeven(w http.ResponseWriter, r *http.Request) {
	be, err := s.Reports.Breakeven(r.Context())
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, be)
}

type breakevenTargetRequest struct {
	Target float64 `json:"target"`
}

func (s *Server) setBreakevenTarget(w http.ResponseWriter, r *http.Request) {
	var req breakevenTargetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	if err := s.Reports.SetBreakevenTarget(r.Context(), req.Target); err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (s *Server) rushHistogram(w http.ResponseWriter, r *http.Request) {
	bins, err := s.Reports.RushHistogram(r.Context())
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, bins)
}

func (s *Server) resetRush(w http.ResponseWriter, r *http.Request) {
	if err := s.Reports.ResetRush(r.Context()); err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "reset"})
}

func (s *Server) costs(w http.ResponseWriter, r *http.Request) {
	costs, err := s.Costs.Costs(r.Context())
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, costs)
}

// Item names carry slashes ("Biscuit / Other (0.100)"), so the item
// travels in the body rather than the path.
type updateCostRequest struct {
	Item string  `json:"item"`
	Cost float64 `json:"cost"`
}

func (s *Server) updateCost(w http.ResponseWriter, r *http.Request) {
	var req updateCostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	if err := s.Costs.UpdateCost(r.Context(), req.Item, req.Cost); err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "updated"})
}
