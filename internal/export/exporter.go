package export

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"dashforge/internal/generate"
	"dashforge/internal/render"
	"dashforge/internal/util/jsonutil"
)

// Exporter renders a dashboard state into a standalone HTML page plus its
// schema JSON and persists both under a fresh export ID.
type Exporter struct {
	Store Store
}

type Result struct {
	ExportID string   `json:"export_id"`
	Files    []string `json:"files"`
	URL      string   `json:"url,omitempty"`
}

func (e *Exporter) Export(ctx context.Context, title string, state *generate.UIState, data map[string]any) (*Result, error) {
	if e == nil || e.Store == nil {
		return nil, fmt.Errorf("export store is not configured")
	}
	if state == nil {
		return nil, fmt.Errorf("ui state is required")
	}
	title = strings.TrimSpace(title)
	if title == "" {
		title = "Dashboard"
	}

	exportID := uuid.NewString()

	page := render.RenderDocument(title, state.Schema, data)
	if err := e.Store.Put(ctx, exportID, "index.html", []byte(page)); err != nil {
		return nil, fmt.Errorf("store html: %w", err)
	}

	raw, err := jsonutil.MarshalNoEscape(state)
	if err != nil {
		return nil, fmt.Errorf("marshal state: %w", err)
	}
	if err := e.Store.Put(ctx, exportID, "state.json", raw); err != nil {
		return nil, fmt.Errorf("store state: %w", err)
	}

	res := &Result{
		ExportID: exportID,
		Files:    []string{"index.html", "state.json"},
	}
	// Presigned URL is best effort; stores without URLs return "".
	if u, err := e.Store.GetURL(ctx, exportID, "index.html"); err == nil {
		res.URL = u
	}
	return res, nil
}
