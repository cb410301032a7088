package server

import (
	"net/http"

	"dashforge/internal/handler"
	"dashforge/internal/middleware"
)

func NewMux(svc *handler.Service) http.Handler {
	mux := http.NewServeMux()

	// API Handlers
	mux.HandleFunc("/api/analyze", svc.HandleAnalyze)
	mux.HandleFunc("/api/generate", svc.HandleGenerate)
	mux.HandleFunc("/api/resolve", svc.HandleResolve)
	mux.HandleFunc("/api/evolve", svc.HandleEvolve)
	mux.HandleFunc("/api/export", svc.HandleExport)
	mux.HandleFunc("/api/dashboards", svc.HandleDashboards)
	mux.HandleFunc("/api/domains", svc.HandleDomains)
	mux.HandleFunc("/api/domains/propose", svc.HandleDomainPropose)

	// Websocket
	mux.HandleFunc("/ws/state", svc.HandleStateWS)

	// Middleware
	return middleware.CORS(mux)
}
