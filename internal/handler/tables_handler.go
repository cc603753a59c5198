package handlers

import (
	"net/http"

	"microblog/internal/models"
)

type TablesResponse struct {
	CountTables int              `json:"countTables"`
	Rows        models.RowCounts `json:"rows"`
}

func (h *Handlers) TablesHandler(w http.ResponseWriter, r *http.Request) {
	count, err := h.StatsService.GetCountTablesBD(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	rows, err := h.StatsService.GetRowCounts(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	WriteSuccess(w, TablesResponse{CountTables: count, Rows: rows}, http.StatusOK)
}

func (h *Handlers) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.Health.HealthCheck(r.Context()); err != nil {
		if h.Log != nil {
			h.Log.Error(r.Context(), "health check failed", "error", err)
		}
		WriteError(w, "База данных недоступна", http.StatusServiceUnavailable)
		return
	}

	WriteSuccess(w, map[string]string{"status": "ok"}, http.StatusOK)
}
