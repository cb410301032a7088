package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"dashforge/internal/domain"
	"dashforge/internal/export"
	"dashforge/internal/generate"
	"dashforge/internal/state"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	domains := domain.NewRegistry(filepath.Join(t.TempDir(), "domains.json"))
	svc := NewService(domains, &generate.Orchestrator{}, state.NewStore())
	svc.Exporter = &export.Exporter{Store: export.NewMemoryStore()}
	return svc
}

func postJSON(t *testing.T, h http.HandlerFunc, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(raw))
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func githubPayload() map[string]any {
	return map[string]any{
		"stars":        float64(1250),
		"forks":        float64(89),
		"contributors": []any{map[string]any{"name": "alice", "commits": float64(120)}},
	}
}

func TestHandleAnalyze(t *testing.T) {
	svc := newTestService(t)
	rec := postJSON(t, svc.HandleAnalyze, map[string]any{"data": githubPayload()})
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body)
	}
	var out struct {
		DetectedContext string `json:"detected_context"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.DetectedContext != "github_repo" {
		t.Fatalf("detected context: %s", out.DetectedContext)
	}
}

func TestHandleGenerateAsksQuestionsFirst(t *testing.T) {
	svc := newTestService(t)
	rec := postJSON(t, svc.HandleGenerate, generateRequest{Data: githubPayload()})
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body)
	}
	var out generateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !out.NeedsQuestions || len(out.Questions) == 0 {
		t.Fatalf("expected questions, got %+v", out)
	}
	if out.DashboardID != "" {
		t.Fatal("no dashboard should exist yet")
	}
}

func TestHandleGenerateWithAnswers(t *testing.T) {
	svc := newTestService(t)
	rec := postJSON(t, svc.HandleGenerate, generateRequest{
		Data:    githubPayload(),
		Answers: map[string]string{"priority": "Overview of everything"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body)
	}
	var out generateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.NeedsQuestions {
		t.Fatal("answers were provided, should not ask again")
	}
	if out.DashboardID == "" || out.State == nil {
		t.Fatalf("expected a dashboard, got %+v", out)
	}
	if out.Source != generate.SourceDeterministic {
		t.Fatalf("expected deterministic source, got %s", out.Source)
	}
	if svc.Dashboards.Get(out.DashboardID) == nil {
		t.Fatal("dashboard should be registered in the store")
	}
}

func TestHandleGenerateRejectsMissingData(t *testing.T) {
	svc := newTestService(t)
	rec := postJSON(t, svc.HandleGenerate, map[string]any{})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d", rec.Code)
	}
}

func TestHandleResolve(t *testing.T) {
	svc := newTestService(t)
	rec := postJSON(t, svc.HandleResolve, map[string]any{
		"props": map[string]any{"value": "$data.stars", "label": "Stars"},
		"data":  map[string]any{"stars": float64(42)},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	var out struct {
		Props map[string]any `json:"props"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Props["value"] != float64(42) {
		t.Fatalf("binding unresolved: %v", out.Props)
	}
	if out.Props["label"] != "Stars" {
		t.Fatalf("literal prop changed: %v", out.Props)
	}
}

func generateDashboard(t *testing.T, svc *Service) string {
	t.Helper()
	rec := postJSON(t, svc.HandleGenerate, generateRequest{
		Data:    githubPayload(),
		Answers: map[string]string{"priority": "Overview of everything"},
	})
	var out generateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.DashboardID == "" {
		t.Fatalf("no dashboard: %s", rec.Body)
	}
	return out.DashboardID
}

func TestHandleEvolve(t *testing.T) {
	svc := newTestService(t)
	id := generateDashboard(t, svc)

	rec := postJSON(t, svc.HandleEvolve, map[string]any{
		"dashboard_id": id,
		"operation":    "remove",
		"path":         "children[0]",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body)
	}
	var out struct {
		State *generate.UIState `json:"state"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.State.Version != "1.0.1" {
		t.Fatalf("version should bump, got %s", out.State.Version)
	}
	if len(out.State.History) != 1 {
		t.Fatalf("history should record the change, got %d entries", len(out.State.History))
	}
}

func TestHandleEvolveUnknownDashboard(t *testing.T) {
	svc := newTestService(t)
	rec := postJSON(t, svc.HandleEvolve, map[string]any{
		"dashboard_id": "missing",
		"operation":    "remove",
	})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status %d", rec.Code)
	}
}

func TestHandleExport(t *testing.T) {
	svc := newTestService(t)
	id := generateDashboard(t, svc)

	rec := postJSON(t, svc.HandleExport, map[string]any{"dashboard_id": id})
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body)
	}
	var out export.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.ExportID == "" || len(out.Files) != 2 {
		t.Fatalf("unexpected export result: %+v", out)
	}
}

func TestHandleExportUnconfigured(t *testing.T) {
	svc := newTestService(t)
	svc.Exporter = nil
	rec := postJSON(t, svc.HandleExport, map[string]any{"dashboard_id": "x"})
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status %d", rec.Code)
	}
}

func TestHandleDashboards(t *testing.T) {
	svc := newTestService(t)
	id := generateDashboard(t, svc)

	req := httptest.NewRequest(http.MethodGet, "/api/dashboards?id="+id, nil)
	rec := httptest.NewRecorder()
	svc.HandleDashboards(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/dashboards", nil)
	rec = httptest.NewRecorder()
	svc.HandleDashboards(rec, req)
	var out struct {
		Dashboards []state.Dashboard `json:"dashboards"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out.Dashboards) != 1 {
		t.Fatalf("expected 1 dashboard, got %d", len(out.Dashboards))
	}
}

func TestHandleDomainsSaveAndList(t *testing.T) {
	svc := newTestService(t)
	rec := postJSON(t, svc.HandleDomains, domain.Config{
		ID:       "healthcare",
		Name:     "Healthcare",
		Keywords: []string{"patient", "appointment"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/domains", nil)
	getRec := httptest.NewRecorder()
	svc.HandleDomains(getRec, req)
	var out struct {
		Domains []domain.Config `json:"domains"`
	}
	if err := json.Unmarshal(getRec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	found := false
	for _, d := range out.Domains {
		if d.ID == "healthcare" {
			found = true
		}
	}
	if !found {
		t.Fatal("saved domain should be listed")
	}
}

func TestHandleDomainProposeUnconfigured(t *testing.T) {
	svc := newTestService(t)
	rec := postJSON(t, svc.HandleDomainPropose, map[string]any{"data": map[string]any{}})
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status %d", rec.Code)
	}
}
