package handler

import (
	"log"
	"net/http"
	"strings"

	"dashforge/internal/binding"
	"dashforge/internal/domain"
	"dashforge/internal/generate"
	"dashforge/internal/schema"
)

// HandleAnalyze classifies a data payload without generating anything.
func (s *Service) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var in struct {
		Data   any            `json:"data"`
		Domain *domain.Config `json:"domain,omitempty"`
	}
	if !readJSON(w, r, &in) {
		return
	}
	analysis := s.Analyzer.AnalyzeContext(in.Data, in.Domain)
	writeJSON(w, http.StatusOK, analysis)
}

type generateRequest struct {
	Title    string            `json:"title,omitempty"`
	Data     map[string]any    `json:"data"`
	Answers  map[string]string `json:"answers,omitempty"`
	DomainID string            `json:"domain_id,omitempty"`
}

type generateResponse struct {
	NeedsQuestions bool              `json:"needs_questions"`
	Questions      []domain.Question `json:"questions,omitempty"`
	DashboardID    string            `json:"dashboard_id,omitempty"`
	State          *generate.UIState `json:"state,omitempty"`
	Source         string            `json:"source,omitempty"`
	Reasoning      string            `json:"reasoning,omitempty"`
}

// HandleGenerate runs the full pipeline: analyze, orchestrate, and when a
// schema comes back, register a live dashboard.
func (s *Service) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var in generateRequest
	if !readJSON(w, r, &in) {
		return
	}
	if in.Data == nil {
		writeError(w, http.StatusBadRequest, "data is required")
		return
	}

	var custom *domain.Config
	if id := strings.TrimSpace(in.DomainID); id != "" {
		cfg, ok := s.Domains.Get(id)
		if !ok {
			writeError(w, http.StatusBadRequest, "unknown domain: "+id)
			return
		}
		custom = &cfg
	}

	analysis := s.Analyzer.AnalyzeContext(in.Data, custom)

	// Without answers the client gets the question set first.
	if len(in.Answers) == 0 && len(analysis.Questions) > 0 {
		writeJSON(w, http.StatusOK, generateResponse{
			NeedsQuestions: true,
			Questions:      analysis.Questions,
		})
		return
	}

	res := s.Orchestrator.Generate(r.Context(), in.Data, analysis, in.Answers)
	if res.NeedsQuestions {
		writeJSON(w, http.StatusOK, generateResponse{
			NeedsQuestions: true,
			Questions:      res.Questions,
			Source:         res.Source,
		})
		return
	}

	st := generate.CreateUIState(in.Data, res.Schema)
	d, err := s.Dashboards.Create(in.Title, in.Data, st)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, generateResponse{
		DashboardID: d.ID,
		State:       d.State,
		Source:      res.Source,
		Reasoning:   res.Reasoning,
	})
}

// HandleResolve resolves binding expressions in a prop bag against a data
// context. Useful for client-side previews.
func (s *Service) HandleResolve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var in struct {
		Props map[string]any `json:"props"`
		Data  map[string]any `json:"data"`
		Item  map[string]any `json:"item,omitempty"`
	}
	if !readJSON(w, r, &in) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"props": binding.ResolveProps(in.Props, in.Data, in.Item),
	})
}

// HandleEvolve applies one modification to a live dashboard and bumps its
// version.
func (s *Service) HandleEvolve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var in struct {
		DashboardID string                  `json:"dashboard_id"`
		Operation   string                  `json:"operation"`
		Path        string                  `json:"path,omitempty"`
		Value       *schema.ComponentSchema `json:"value,omitempty"`
	}
	if !readJSON(w, r, &in) {
		return
	}
	if strings.TrimSpace(in.Operation) == "" {
		writeError(w, http.StatusBadRequest, "operation is required")
		return
	}
	d := s.Dashboards.Get(in.DashboardID)
	if d == nil {
		writeError(w, http.StatusNotFound, "dashboard not found")
		return
	}

	generate.EvolveUI(d.State, in.Operation, in.Path, in.Value)
	updated, err := s.Dashboards.Update(d.ID, d.State)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"dashboard_id": updated.ID,
		"state":        updated.State,
	})
}

// HandleExport renders a dashboard to HTML and persists it.
func (s *Service) HandleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if s.Exporter == nil {
		writeError(w, http.StatusServiceUnavailable, "export store is not configured")
		return
	}
	var in struct {
		DashboardID string `json:"dashboard_id"`
		Title       string `json:"title,omitempty"`
	}
	if !readJSON(w, r, &in) {
		return
	}
	d := s.Dashboards.Get(in.DashboardID)
	if d == nil {
		writeError(w, http.StatusNotFound, "dashboard not found")
		return
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		title = d.Title
	}
	res, err := s.Exporter.Export(r.Context(), title, d.State, d.Data)
	if err != nil {
		log.Printf("export failed for dashboard %s: %v", d.ID, err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// HandleDashboards serves GET /api/dashboards and GET /api/dashboards?id=.
func (s *Service) HandleDashboards(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if id := strings.TrimSpace(r.URL.Query().Get("id")); id != "" {
		d := s.Dashboards.Get(id)
		if d == nil {
			writeError(w, http.StatusNotFound, "dashboard not found")
			return
		}
		writeJSON(w, http.StatusOK, d)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"dashboards": s.Dashboards.List()})
}

// HandleDomains lists known domain configs (GET) or saves a custom one
// (POST).
func (s *Service) HandleDomains(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]any{"domains": s.Domains.All()})
	case http.MethodPost:
		var cfg domain.Config
		if !readJSON(w, r, &cfg) {
			return
		}
		if err := s.Domains.Save(cfg); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "id": cfg.ID})
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// HandleDomainPropose asks the LLM to draft a domain config for an
// unrecognized data shape. The caller confirms and saves it separately.
func (s *Service) HandleDomainPropose(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if s.LLM == nil {
		writeError(w, http.StatusServiceUnavailable, "llm is not configured")
		return
	}
	var in struct {
		Data map[string]any `json:"data"`
	}
	if !readJSON(w, r, &in) {
		return
	}
	cfg, err := generate.ProposeDomain(r.Context(), s.LLM, in.Data)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"domain": cfg})
}
