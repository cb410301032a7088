// Package handler exposes the dashboard pipeline over plain JSON HTTP
// endpoints plus a websocket feed for live state updates.
package handler

import (
	"encoding/json"
	"net/http"

	"dashforge/internal/analyze"
	"dashforge/internal/domain"
	"dashforge/internal/export"
	"dashforge/internal/generate"
	"dashforge/internal/llm"
	"dashforge/internal/state"
)

// Service implements all API handlers. Exporter and LLM are optional;
// endpoints depending on them report an error when unset.
type Service struct {
	Analyzer     *analyze.Analyzer
	Domains      *domain.Registry
	Orchestrator *generate.Orchestrator
	Dashboards   *state.Store
	Exporter     *export.Exporter
	LLM          llm.Client
}

func NewService(domains *domain.Registry, orch *generate.Orchestrator, dashboards *state.Store) *Service {
	return &Service{
		Analyzer:     analyze.NewAnalyzer(domains),
		Domains:      domains,
		Orchestrator: orch,
		Dashboards:   dashboards,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"error": msg})
}

func readJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return false
	}
	return true
}
