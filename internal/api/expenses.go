package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"karak-pos/internal/expense"
)

func (s *Server) listExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.Expenses.List(r.Context())
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, expenses)
}

func (s *Server) addExpense(w http.ResponseWriter, r *http.Request) {
	var req expense.Expense
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	e, err := s.Expenses.Add(r.Context(), req)
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusCreated, e)
}

func (s *Server) deleteExpense(w http.ResponseWriter, r *http.Request) {
	if err := s.Expenses.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) restock(w http.ResponseWriter, r *http.Request) {
	var req expense.Restock
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	e, err := s.Expenses.Restock(r.Context(), req)
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusCreated, e)
}

type wasteRequest struct {
	Item string  `json:"item"`
	Qty  float64 `json:"qty"`
}

func (s *Server) logWaste(w http.ResponseWriter, r *http.Request) {
	var req wasteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	wl, err := s.Expenses.LogWaste(r.Context(), req.Item, req.Qty)
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusCreated, wl)
}

func (s *Server) listWaste(w http.ResponseWriter, r *http.Request) {
	logs, err := s.Expenses.ListWaste(r.Context())
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, logs)
}
